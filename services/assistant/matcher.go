package assistant

import (
	"strings"

	"matero/models"
)

// maxMatches caps how many fuzzy candidates are returned for one token.
const maxMatches = 8

// matchMaterials resolves a free-text token against the catalog. An exact id
// match (case-insensitive) short-circuits and wins outright; otherwise every
// material whose display names contain the token is returned in catalog
// order, capped to maxMatches. Zero or one result is a terminal outcome;
// two or more mean the caller must disambiguate.
func matchMaterials(catalog *Catalog, token string) []models.MaterialRef {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return nil
	}

	var exact []models.MaterialRef
	for _, m := range catalog.Materials {
		if strings.ToLower(m.ID) == token {
			exact = append(exact, m)
		}
	}
	if len(exact) > 0 {
		return exact
	}

	var partial []models.MaterialRef
	for _, m := range catalog.Materials {
		if strings.Contains(strings.ToLower(m.ItemName), token) ||
			strings.Contains(strings.ToLower(m.MaterialName), token) {
			partial = append(partial, m)
			if len(partial) == maxMatches {
				break
			}
		}
	}
	return partial
}

// matchSite looks for a single canonical site name containing the given text.
// The site step stays lenient: free text is accepted either way, but a unique
// match upgrades the input to the canonical name.
func matchSite(catalog *Catalog, text string) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return "", false
	}
	var found string
	count := 0
	for _, s := range catalog.Sites {
		if strings.Contains(strings.ToLower(s), needle) {
			found = s
			count++
			if count > 1 {
				return "", false
			}
		}
	}
	if count == 1 {
		return found, true
	}
	return "", false
}
