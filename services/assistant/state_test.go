package assistant

import (
	"strings"
	"testing"
)

// runTurns feeds inputs through the reducer in order, returning the final
// state and the output of the last turn.
func runTurns(t *testing.T, st ConvState, inputs ...string) (ConvState, turnOutput) {
	t.Helper()
	catalog := testCatalog()
	var out turnOutput
	for _, input := range inputs {
		st, out = reduce(st, input, catalog)
	}
	return st, out
}

func lastReply(t *testing.T, out turnOutput) string {
	t.Helper()
	if len(out.replies) == 0 {
		t.Fatal("no replies")
	}
	return out.replies[len(out.replies)-1]
}

func TestReduceSiteStepCanonicalCorrection(t *testing.T) {
	st, out := runTurns(t, NewConvState("s1"), "riverside")
	if st.Step != StepPriority {
		t.Fatalf("step = %q, want priority", st.Step)
	}
	if st.Draft.SiteName != "Riverside Apartments" {
		t.Fatalf("site = %q, want canonical name", st.Draft.SiteName)
	}
	reply := lastReply(t, out)
	if !strings.Contains(reply, "Riverside Apartments") || !strings.Contains(reply, "priority") {
		t.Fatalf("reply = %q", reply)
	}
}

func TestReduceSiteStepAcceptsUnknownSiteVerbatim(t *testing.T) {
	st, out := runTurns(t, NewConvState("s1"), "New Dockyard Phase 2")
	if st.Draft.SiteName != "New Dockyard Phase 2" {
		t.Fatalf("site = %q", st.Draft.SiteName)
	}
	if st.Step != StepPriority {
		t.Fatalf("step = %q, want priority", st.Step)
	}
	if lastReply(t, out) != msgAskPriority {
		t.Fatalf("reply = %q", lastReply(t, out))
	}
}

func TestReducePriorityStep(t *testing.T) {
	for _, bad := range []string{"whenever", "soonish", "critical", ""} {
		st, out := runTurns(t, NewConvState("s1"), "riverside", bad)
		if st.Step != StepPriority || st.Draft.Priority != "" {
			t.Fatalf("priority %q must not advance: step=%q priority=%q", bad, st.Step, st.Draft.Priority)
		}
		if bad != "" && lastReply(t, out) != msgBadPriority {
			t.Fatalf("reply = %q", lastReply(t, out))
		}
	}

	for _, good := range []string{"low", "Medium", "HIGH", "urgent"} {
		st, _ := runTurns(t, NewConvState("s1"), "riverside", good)
		if st.Step != StepItems || st.Draft.Priority != strings.ToLower(good) {
			t.Fatalf("priority %q: step=%q priority=%q", good, st.Step, st.Draft.Priority)
		}
	}
}

func TestReduceItemsDoneWithoutItems(t *testing.T) {
	st, out := runTurns(t, NewConvState("s1"), "riverside", "low", "done")
	if st.Step != StepItems {
		t.Fatalf("step = %q, want items", st.Step)
	}
	if lastReply(t, out) != msgNoItemsYet {
		t.Fatalf("reply = %q", lastReply(t, out))
	}
}

func TestReduceItemsAddsUniqueMatch(t *testing.T) {
	st, out := runTurns(t, NewConvState("s1"), "riverside", "low", "bolt x 20")
	if st.Step != StepItems {
		t.Fatalf("step = %q, want items", st.Step)
	}
	if len(st.Draft.Items) != 1 {
		t.Fatalf("items = %+v", st.Draft.Items)
	}
	it := st.Draft.Items[0]
	if it.MaterialID != "MTR-1001" || it.Quantity != 20 {
		t.Fatalf("item = %+v", it)
	}
	if !strings.Contains(lastReply(t, out), "Added Steel Bolt M12 x 20") {
		t.Fatalf("reply = %q", lastReply(t, out))
	}
}

func TestReduceItemsUnparseableLine(t *testing.T) {
	st, out := runTurns(t, NewConvState("s1"), "riverside", "low", "some bolts please")
	if len(st.Draft.Items) != 0 || st.Step != StepItems {
		t.Fatalf("state changed unexpectedly: %+v", st.Draft)
	}
	if lastReply(t, out) != msgBadItemLine {
		t.Fatalf("reply = %q", lastReply(t, out))
	}
}

func TestReduceItemsNoCatalogMatch(t *testing.T) {
	_, out := runTurns(t, NewConvState("s1"), "riverside", "low", "granite 4")
	if !strings.Contains(lastReply(t, out), `No material matches "granite"`) {
		t.Fatalf("reply = %q", lastReply(t, out))
	}
}

func TestReduceDisambiguationRoundTrip(t *testing.T) {
	st, out := runTurns(t, NewConvState("s1"), "riverside", "low", "steel x 2")
	if st.Step != StepDisambiguate {
		t.Fatalf("step = %q, want disambiguate", st.Step)
	}
	if st.Pending == nil || len(st.Pending.Options) != 2 || st.Pending.Qty != 2 {
		t.Fatalf("pending = %+v", st.Pending)
	}
	if !strings.Contains(lastReply(t, out), "1. Steel Bolt M12") {
		t.Fatalf("reply = %q", lastReply(t, out))
	}

	// Out-of-range pick re-prompts without losing the pending line.
	st, out = runTurns(t, st, "9")
	if st.Step != StepDisambiguate || st.Pending == nil {
		t.Fatalf("invalid pick must stay in disambiguate: %+v", st)
	}
	if !strings.Contains(lastReply(t, out), "between 1 and 2") {
		t.Fatalf("reply = %q", lastReply(t, out))
	}

	st, _ = runTurns(t, st, "2")
	if st.Step != StepItems || st.Pending != nil {
		t.Fatalf("pick must return to items: step=%q pending=%+v", st.Step, st.Pending)
	}
	if len(st.Draft.Items) != 1 || st.Draft.Items[0].MaterialID != "MTR-1002" || st.Draft.Items[0].Quantity != 2 {
		t.Fatalf("items = %+v", st.Draft.Items)
	}
}

func TestReduceDisambiguationLocalCancelKeepsDraft(t *testing.T) {
	st, _ := runTurns(t, NewConvState("s1"), "riverside", "low", "bolt 5", "steel 2")
	if st.Step != StepDisambiguate {
		t.Fatalf("step = %q", st.Step)
	}

	st, out := runTurns(t, st, "cancel")
	if st.Step != StepItems || st.Pending != nil {
		t.Fatalf("local cancel must return to items: %+v", st)
	}
	if len(st.Draft.Items) != 1 {
		t.Fatalf("draft lost items: %+v", st.Draft.Items)
	}
	if !strings.Contains(lastReply(t, out), "skipped that line") {
		t.Fatalf("reply = %q", lastReply(t, out))
	}
}

func TestReduceGlobalCancelDiscardsDraft(t *testing.T) {
	st, out := runTurns(t, NewConvState("s1"), "riverside", "low", "bolt 5", "cancel")
	if st.Step != StepSite {
		t.Fatalf("step = %q, want site", st.Step)
	}
	if st.Draft.SiteName != "" || len(st.Draft.Items) != 0 {
		t.Fatalf("draft not cleared: %+v", st.Draft)
	}
	if lastReply(t, out) != msgCancelled {
		t.Fatalf("reply = %q", lastReply(t, out))
	}
}

func TestReduceNotesAndConfirm(t *testing.T) {
	st, out := runTurns(t, NewConvState("s1"),
		"riverside", "urgent", "MTR-1001 x 5", "done", "needed before Friday")
	if st.Step != StepConfirm || st.Draft.Notes != "needed before Friday" {
		t.Fatalf("step=%q notes=%q", st.Step, st.Draft.Notes)
	}
	summary := lastReply(t, out)
	for _, want := range []string{"Riverside Apartments", "urgent", "Steel Bolt M12 x 5", "needed before Friday", "submit"} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary missing %q:\n%s", want, summary)
		}
	}

	// Anything but submit/cancel re-prompts.
	st, out = runTurns(t, st, "what now?")
	if st.Step != StepConfirm || out.effect != effectNone {
		t.Fatalf("step=%q effect=%d", st.Step, out.effect)
	}
	if lastReply(t, out) != msgConfirmHint {
		t.Fatalf("reply = %q", lastReply(t, out))
	}

	_, out = runTurns(t, st, "Submit")
	if out.effect != effectSubmit {
		t.Fatalf("effect = %d, want submit", out.effect)
	}
}

func TestReduceNotesSkip(t *testing.T) {
	st, _ := runTurns(t, NewConvState("s1"), "riverside", "low", "bolt 1", "done", "SKIP")
	if st.Step != StepConfirm || st.Draft.Notes != "" {
		t.Fatalf("step=%q notes=%q", st.Step, st.Draft.Notes)
	}
}

func TestReduceToggles(t *testing.T) {
	st, out := runTurns(t, NewConvState("s1"), "ai on")
	if !st.AIEnabled || out.wantAI {
		t.Fatalf("toggle turn itself must not want AI: enabled=%v wantAI=%v", st.AIEnabled, out.wantAI)
	}

	// With AI on, an ordinary turn asks for augmentation.
	st, out = runTurns(t, st, "riverside")
	if !out.wantAI {
		t.Fatal("expected wantAI after enabling AI")
	}

	st, out = runTurns(t, st, "stream on")
	if !st.StreamEnabled || lastReply(t, out) != msgStreamOn {
		t.Fatalf("stream toggle failed: %+v", out)
	}

	st, _ = runTurns(t, st, "ai off")
	_, out = runTurns(t, st, "low")
	if out.wantAI {
		t.Fatal("wantAI must be false after ai off")
	}
}

func TestReduceListMaterialsSideConversation(t *testing.T) {
	st, out := runTurns(t, NewConvState("s1"), "riverside", "low", "list materials")
	if !st.AwaitingCategories || st.Step != StepItems {
		t.Fatalf("awaiting=%v step=%q", st.AwaitingCategories, st.Step)
	}
	if !strings.Contains(lastReply(t, out), "concrete") {
		t.Fatalf("reply = %q", lastReply(t, out))
	}

	st, out = runTurns(t, st, "concrete")
	if st.AwaitingCategories || st.Step != StepItems {
		t.Fatalf("side conversation must not move the step: %+v", st)
	}
	listing := lastReply(t, out)
	if !strings.Contains(listing, "Cement 50kg") || strings.Contains(listing, "Power Cable") {
		t.Fatalf("listing = %q", listing)
	}
}

func TestReduceListMaterialsInterruptedByCommand(t *testing.T) {
	st, _ := runTurns(t, NewConvState("s1"), "riverside", "low", "list materials")

	// A global command abandons the pending category question.
	st, out := runTurns(t, st, "ai on")
	if st.AwaitingCategories {
		t.Fatal("command must clear the pending category question")
	}
	if lastReply(t, out) != msgAIOn {
		t.Fatalf("reply = %q", lastReply(t, out))
	}

	// The next message is an ordinary item line again, not a filter.
	st, _ = runTurns(t, st, "bolt 4")
	if len(st.Draft.Items) != 1 || st.Draft.Items[0].MaterialID != "MTR-1001" {
		t.Fatalf("items = %+v", st.Draft.Items)
	}

	// Asking again re-arms the side conversation.
	st, _ = runTurns(t, st, "list materials")
	if !st.AwaitingCategories {
		t.Fatal("list materials should re-arm the category question")
	}
}

func TestReduceListMaterialsUnknownCategory(t *testing.T) {
	st, _ := runTurns(t, NewConvState("s1"), "riverside", "low", "list materials")
	_, out := runTurns(t, st, "plumbing")
	if !strings.Contains(lastReply(t, out), "Unknown categories: plumbing") {
		t.Fatalf("reply = %q", lastReply(t, out))
	}
}

func TestReduceListMaterialsAll(t *testing.T) {
	st, _ := runTurns(t, NewConvState("s1"), "riverside", "low", "list materials")
	_, out := runTurns(t, st, "all")
	listing := lastReply(t, out)
	for _, want := range []string{"Steel Bolt M12", "Power Cable 12mm", "Cement 50kg"} {
		if !strings.Contains(listing, want) {
			t.Fatalf("listing missing %q:\n%s", want, listing)
		}
	}
}

func TestReduceSubmittedStepStartsOver(t *testing.T) {
	st := NewConvState("s1")
	st.Step = StepSubmitted
	st.Draft.SiteName = "Old Site"

	st, _ = runTurns(t, st, "hilltop")
	if st.Step != StepPriority || st.Draft.SiteName != "Hilltop Mall" {
		t.Fatalf("step=%q site=%q", st.Step, st.Draft.SiteName)
	}
}

func TestReduceEmptyInput(t *testing.T) {
	st, out := runTurns(t, NewConvState("s1"), "   ")
	if st.Step != StepSite || len(st.Transcript) != 2 {
		t.Fatalf("blank input must not advance or record a user turn: %+v", st.Transcript)
	}
	if lastReply(t, out) != "Please type a message." {
		t.Fatalf("reply = %q", lastReply(t, out))
	}
}

func TestReduceEndSessionEffect(t *testing.T) {
	st, out := runTurns(t, NewConvState("s1"), "riverside", "end session")
	if out.effect != effectEndSession {
		t.Fatalf("effect = %d", out.effect)
	}
	if st.Step != StepSite || st.Draft.SiteName != "" {
		t.Fatalf("draft must be cleared: %+v", st.Draft)
	}
}

func TestReduceNewSessionEffect(t *testing.T) {
	_, out := runTurns(t, NewConvState("s1"), "riverside", "new session")
	if out.effect != effectNewSession {
		t.Fatalf("effect = %d", out.effect)
	}
	if lastReply(t, out) != msgNewSession {
		t.Fatalf("reply = %q", lastReply(t, out))
	}
}

func TestTranscriptsStaySeparate(t *testing.T) {
	st, _ := runTurns(t, NewConvState("s1"), "riverside", "low")
	// Step prompts go to the display transcript only.
	for _, m := range st.AIMessages {
		if m.Role == "assistant" {
			t.Fatalf("step prompt leaked into AI transcript: %q", m.Content)
		}
	}
	if len(st.AIMessages) != 2 {
		t.Fatalf("AI transcript should hold the two user turns, got %d", len(st.AIMessages))
	}
	if len(st.Transcript) <= len(st.AIMessages) {
		t.Fatalf("display transcript should include prompts: %d vs %d", len(st.Transcript), len(st.AIMessages))
	}
}
