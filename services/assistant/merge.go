package assistant

import (
	"fmt"
	"strconv"
	"strings"

	"matero/models"
)

// applyAction merges an AI-extracted action into the draft. The merge is
// idempotent and non-destructive: fields the user already filled stay as they
// are, and an item whose resolved id is already in the draft is never added
// twice, so repeated AI turns can't accumulate duplicates.
func applyAction(st ConvState, action *models.AssistantAction, catalog *Catalog) ConvState {
	if action == nil {
		return st
	}

	if action.SiteName != "" && st.Draft.SiteName == "" {
		st.Draft.SiteName = action.SiteName
		if st.Step == StepSite || st.Step == StepWelcome {
			st.Step = StepPriority
		}
	}

	if p := strings.ToLower(action.Priority); p != "" && p != st.Draft.Priority && models.ValidPriority(p) {
		st.Draft.Priority = p
		if st.Step == StepPriority {
			st.Step = StepItems
		}
	}

	for _, item := range action.Items {
		token := item.MaterialID
		if token == "" {
			token = item.MaterialName
		}
		if token == "" {
			token = item.Name
		}
		if token == "" {
			continue
		}
		matches := matchMaterials(catalog, token)
		if len(matches) == 0 {
			continue
		}
		m := matches[0]
		if st.Draft.HasItem(m.ID) {
			continue
		}
		st.Draft.Items = append(st.Draft.Items, models.RequestItem{
			MaterialID:   m.ID,
			MaterialName: m.DisplayName(),
			Quantity:     actionQuantity(item.Quantity),
		})
	}

	if action.Notes != "" && st.Draft.Notes == "" {
		st.Draft.Notes = action.Notes
	}

	return st
}

// actionQuantity coerces the loosely typed quantity field, defaulting to 1
// when it can't be read as a positive integer.
func actionQuantity(v interface{}) int {
	switch q := v.(type) {
	case float64:
		if q >= 1 {
			return int(q)
		}
	case int:
		if q >= 1 {
			return q
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(q)); err == nil && n >= 1 {
			return n
		}
	case fmt.Stringer:
		if n, err := strconv.Atoi(strings.TrimSpace(q.String())); err == nil && n >= 1 {
			return n
		}
	}
	return 1
}
