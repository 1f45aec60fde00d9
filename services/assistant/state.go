package assistant

import (
	"fmt"
	"strconv"
	"strings"

	"matero/models"

	"github.com/google/uuid"
)

// Step is the dialogue state machine position.
type Step string

const (
	StepWelcome      Step = "welcome"
	StepSite         Step = "site"
	StepPriority     Step = "priority"
	StepItems        Step = "items"
	StepDisambiguate Step = "disambiguate"
	StepNotes        Step = "notes"
	StepConfirm      Step = "confirm"
	StepSubmitted    Step = "submitted"
)

// PendingDisambiguation snapshots an ambiguous item line while the user picks
// a candidate. It exists only while Step is StepDisambiguate.
type PendingDisambiguation struct {
	BaseToken string               `json:"baseToken"`
	Qty       int                  `json:"qty"`
	Options   []models.MaterialRef `json:"options"`
}

// ConvState is the complete per-conversation dialogue state. It is a value
// threaded through the reducer; the service persists it between turns.
// The display transcript and the AI-context transcript are kept separate so
// step prompts never leak into the AI prompt and raw AI exchanges never
// rewrite the step flow.
type ConvState struct {
	SessionID          string                 `json:"sessionId"`
	Step               Step                   `json:"step"`
	Draft              models.Draft           `json:"draft"`
	Pending            *PendingDisambiguation `json:"pending,omitempty"`
	AIEnabled          bool                   `json:"aiEnabled"`
	StreamEnabled      bool                   `json:"streamEnabled"`
	AwaitingCategories bool                   `json:"awaitingCategories,omitempty"`
	Transcript         []models.Message       `json:"transcript"`
	AIMessages         []models.Message       `json:"aiMessages"`
}

// NewConvState returns a fresh conversation pointing at the given chat
// session, positioned at the site step with the welcome prompt on record.
func NewConvState(sessionID string) ConvState {
	st := ConvState{
		SessionID: sessionID,
		Step:      StepSite,
	}
	st.addAssistant(msgWelcome)
	return st
}

type effect int

const (
	effectNone effect = iota
	effectSubmit
	effectEndSession
	effectNewSession
)

// turnOutput is what one reducer pass hands back to the orchestrator: the
// replies to show, a follow-up effect the service must perform, and whether
// this turn should also go to the AI augmentation layer.
type turnOutput struct {
	replies []string
	effect  effect
	wantAI  bool
}

// Assistant prompts and errors. Kept together so the dialogue reads in one place.
const (
	msgWelcome = "Hi! I can help you raise a material request. Which site is this for?"

	msgAskPriority  = "Got it. What's the priority? (low, medium, high, urgent)"
	msgBadPriority  = "Please pick a priority: low, medium, high or urgent."
	msgAskItems     = "Now add materials one per line, e.g. \"MTR-1001 x 5\" or \"cement 20\". Type 'list' to review, 'done' when finished."
	msgNoItemsYet   = "You haven't added any materials yet. Add at least one item before 'done'."
	msgBadItemLine  = "I couldn't read that. Use \"<material> x <quantity>\", e.g. \"steel bolt 20\"."
	msgAskNotes     = "Any notes for this request? Type your notes, or 'skip'."
	msgConfirmHint  = "Type 'submit' to send the request, or 'cancel' to discard it."
	msgCancelled    = "Request discarded. Which site is the new request for?"
	msgSessionEnded = "Session ended. Send a message to start a new one."
	msgNewSession   = "Started a new session. Which site is this request for?"
	msgAIOn         = "AI assistance is on. I'll also interpret free-form requests."
	msgAIOff        = "AI assistance is off."
	msgStreamOn     = "Streaming replies enabled."
	msgStreamOff    = "Streaming replies disabled."
	msgProcessing   = "Still working on your previous message, one moment."
)

func (st *ConvState) addUser(content string) {
	msg := models.Message{ID: uuid.New().String(), Role: models.RoleUser, Content: content}
	st.Transcript = append(st.Transcript, msg)
	st.AIMessages = append(st.AIMessages, msg)
}

func (st *ConvState) addAssistant(content string) {
	st.Transcript = append(st.Transcript, models.Message{
		ID:      uuid.New().String(),
		Role:    models.RoleAssistant,
		Content: content,
	})
}

// AddAIReply records a completed AI exchange on both transcripts.
func (st *ConvState) AddAIReply(content string) {
	msg := models.Message{ID: uuid.New().String(), Role: models.RoleAssistant, Content: content, Meta: "ai"}
	st.Transcript = append(st.Transcript, msg)
	st.AIMessages = append(st.AIMessages, msg)
}

func (st *ConvState) say(out *turnOutput, content string) {
	st.addAssistant(content)
	out.replies = append(out.replies, content)
}

// resetDraft clears the in-progress request and returns to the site step,
// preserving the session, toggles and transcripts.
func (st *ConvState) resetDraft() {
	st.Draft = models.Draft{}
	st.Pending = nil
	st.AwaitingCategories = false
	st.Step = StepSite
}

// reduce advances the dialogue by one user turn. It is a pure transition on
// the state value: all external work (AI calls, submission, logging) is
// signalled through the returned turnOutput and performed by the service.
func reduce(st ConvState, input string, catalog *Catalog) (ConvState, turnOutput) {
	var out turnOutput

	input = strings.TrimSpace(input)
	if input == "" {
		st.say(&out, "Please type a message.")
		return st, out
	}
	st.addUser(input)

	// Global commands short-circuit step handling. They also abandon a
	// pending category question, so the next message is step input again
	// (list materials re-arms it below).
	cmd := parseCommand(input)
	if cmd != cmdNone {
		st.AwaitingCategories = false
	}
	switch cmd {
	case cmdAIOn:
		st.AIEnabled = true
		st.say(&out, msgAIOn)
		return st, out
	case cmdAIOff:
		st.AIEnabled = false
		st.say(&out, msgAIOff)
		return st, out
	case cmdStreamOn:
		st.StreamEnabled = true
		st.say(&out, msgStreamOn)
		return st, out
	case cmdStreamOff:
		st.StreamEnabled = false
		st.say(&out, msgStreamOff)
		return st, out
	case cmdEndSession:
		st.resetDraft()
		st.say(&out, msgSessionEnded)
		out.effect = effectEndSession
		return st, out
	case cmdNewSession:
		st.resetDraft()
		st.say(&out, msgNewSession)
		out.effect = effectNewSession
		return st, out
	case cmdCancel:
		if st.Step == StepDisambiguate {
			// Local cancel: abandon the ambiguous line, keep the draft.
			st.Pending = nil
			st.Step = StepItems
			st.say(&out, "Okay, skipped that line. "+msgAskItems)
			return st, out
		}
		st.resetDraft()
		st.say(&out, msgCancelled)
		return st, out
	case cmdListMaterials:
		st.AwaitingCategories = true
		cats := catalog.Categories()
		if len(cats) == 0 {
			st.say(&out, "Which categories? Reply with names separated by commas, or 'all'.")
		} else {
			st.say(&out, fmt.Sprintf("Which categories? Available: %s. Reply with names separated by commas, or 'all'.",
				strings.Join(cats, ", ")))
		}
		return st, out
	}

	// Second phase of the material-list side conversation. It never moves Step.
	if st.AwaitingCategories {
		st.AwaitingCategories = false
		st.say(&out, renderMaterialList(catalog, input))
		return st, out
	}

	switch st.Step {
	case StepSubmitted:
		// The delayed reset hasn't fired yet; start fresh and treat this
		// input as the new site entry.
		st.resetDraft()
		st = reduceSite(st, input, catalog, &out)
	case StepWelcome, StepSite:
		st = reduceSite(st, input, catalog, &out)
	case StepPriority:
		p := strings.ToLower(input)
		if !models.ValidPriority(p) {
			st.say(&out, msgBadPriority)
			break
		}
		st.Draft.Priority = p
		st.Step = StepItems
		st.say(&out, msgAskItems)
	case StepItems:
		st = reduceItems(st, input, catalog, &out)
	case StepDisambiguate:
		st = reduceDisambiguate(st, input, &out)
	case StepNotes:
		if !strings.EqualFold(input, "skip") {
			st.Draft.Notes = input
		}
		st.Step = StepConfirm
		st.say(&out, draftSummary(st.Draft)+"\n"+msgConfirmHint)
	case StepConfirm:
		switch strings.ToLower(input) {
		case "submit":
			out.effect = effectSubmit
		default:
			st.say(&out, msgConfirmHint)
		}
	}

	out.wantAI = st.AIEnabled && out.effect == effectNone
	return st, out
}

func reduceSite(st ConvState, input string, catalog *Catalog, out *turnOutput) ConvState {
	site := input
	if canonical, ok := matchSite(catalog, input); ok {
		site = canonical
	}
	st.Draft.SiteName = site
	st.Step = StepPriority
	if site != input {
		st.say(out, fmt.Sprintf("Using site %q. %s", site, msgAskPriority))
	} else {
		st.say(out, msgAskPriority)
	}
	return st
}

func reduceItems(st ConvState, input string, catalog *Catalog, out *turnOutput) ConvState {
	switch strings.ToLower(input) {
	case "list":
		st.say(out, draftSummary(st.Draft))
		return st
	case "done":
		if len(st.Draft.Items) == 0 {
			st.say(out, msgNoItemsYet)
			return st
		}
		st.Step = StepNotes
		st.say(out, msgAskNotes)
		return st
	}

	token, qty, ok := parseItemLine(input)
	if !ok {
		st.say(out, msgBadItemLine)
		return st
	}

	matches := matchMaterials(catalog, token)
	switch {
	case len(matches) == 0:
		st.say(out, fmt.Sprintf("No material matches %q. Try 'list materials' to browse the catalog.", token))
	case len(matches) == 1:
		m := matches[0]
		st.Draft.Items = append(st.Draft.Items, models.RequestItem{
			MaterialID:   m.ID,
			MaterialName: m.DisplayName(),
			Quantity:     qty,
		})
		st.say(out, fmt.Sprintf("Added %s x %d. Anything else? Type 'done' when finished.", m.DisplayName(), qty))
	default:
		st.Pending = &PendingDisambiguation{BaseToken: token, Qty: qty, Options: matches}
		st.Step = StepDisambiguate
		st.say(out, renderOptions(matches))
	}
	return st
}

func reduceDisambiguate(st ConvState, input string, out *turnOutput) ConvState {
	if st.Pending == nil || len(st.Pending.Options) == 0 {
		// Step and pending record must agree; recover by returning to items.
		st.Pending = nil
		st.Step = StepItems
		st.say(out, msgAskItems)
		return st
	}

	k, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || k < 1 || k > len(st.Pending.Options) {
		st.say(out, fmt.Sprintf("Pick a number between 1 and %d, or 'cancel'.\n%s",
			len(st.Pending.Options), renderOptions(st.Pending.Options)))
		return st
	}

	m := st.Pending.Options[k-1]
	st.Draft.Items = append(st.Draft.Items, models.RequestItem{
		MaterialID:   m.ID,
		MaterialName: m.DisplayName(),
		Quantity:     st.Pending.Qty,
	})
	st.say(out, fmt.Sprintf("Added %s x %d. Anything else? Type 'done' when finished.", m.DisplayName(), st.Pending.Qty))
	st.Pending = nil
	st.Step = StepItems
	return st
}

func renderOptions(options []models.MaterialRef) string {
	var sb strings.Builder
	sb.WriteString("I found several matches, which one did you mean?\n")
	for i, m := range options {
		fmt.Fprintf(&sb, "%d. %s (%s)\n", i+1, m.DisplayName(), m.ID)
	}
	sb.WriteString("Reply with a number, or 'cancel' to skip.")
	return sb.String()
}

func renderMaterialList(catalog *Catalog, filter string) string {
	var materials []models.MaterialRef
	if strings.EqualFold(strings.TrimSpace(filter), "all") {
		materials = catalog.Materials
	} else {
		var unknown []string
		materials, unknown = catalog.ByCategory(strings.Split(filter, ","))
		if len(unknown) > 0 {
			return fmt.Sprintf("Unknown categories: %s. Known: %s. Type 'list materials' to try again.",
				strings.Join(unknown, ", "), strings.Join(catalog.Categories(), ", "))
		}
	}
	if len(materials) == 0 {
		return "No materials found."
	}

	var sb strings.Builder
	sb.WriteString("Catalog:\n")
	for _, m := range materials {
		fmt.Fprintf(&sb, "- %s (%s)", m.DisplayName(), m.ID)
		if m.Unit != "" {
			fmt.Fprintf(&sb, " [%s]", m.Unit)
		}
		if m.AvailableQuantity > 0 {
			fmt.Fprintf(&sb, " available: %g", m.AvailableQuantity)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func draftSummary(d models.Draft) string {
	var sb strings.Builder
	sb.WriteString("Current request:\n")
	fmt.Fprintf(&sb, "Site: %s\n", orDash(d.SiteName))
	fmt.Fprintf(&sb, "Priority: %s\n", orDash(d.Priority))
	if len(d.Items) == 0 {
		sb.WriteString("Items: (none)\n")
	} else {
		sb.WriteString("Items:\n")
		for _, it := range d.Items {
			fmt.Fprintf(&sb, "- %s x %d\n", it.MaterialName, it.Quantity)
		}
	}
	fmt.Fprintf(&sb, "Notes: %s", orDash(d.Notes))
	return sb.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
