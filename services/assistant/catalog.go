package assistant

import (
	"context"
	"sort"
	"strings"
	"sync/atomic"

	catalogRepo "matero/database/repository/catalog"
	"matero/models"
	"matero/utils"

	"go.uber.org/zap"
)

// Catalog is an immutable snapshot of the material catalog and site list.
// A snapshot is loaded at startup and replaced wholesale by the refresh job;
// it never changes under a running turn.
type Catalog struct {
	Materials []models.MaterialRef
	Sites     []string
}

// Categories returns the distinct material categories in sorted order.
func (c *Catalog) Categories() []string {
	seen := map[string]bool{}
	var cats []string
	for _, m := range c.Materials {
		if m.Category == "" || seen[m.Category] {
			continue
		}
		seen[m.Category] = true
		cats = append(cats, m.Category)
	}
	sort.Strings(cats)
	return cats
}

// ByCategory returns materials whose category matches any of the given names,
// case-insensitive. Unknown names are reported back for a corrective message.
func (c *Catalog) ByCategory(names []string) (matched []models.MaterialRef, unknown []string) {
	want := map[string]bool{}
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" {
			want[n] = true
		}
	}
	found := map[string]bool{}
	for _, m := range c.Materials {
		if want[strings.ToLower(m.Category)] {
			matched = append(matched, m)
			found[strings.ToLower(m.Category)] = true
		}
	}
	for n := range want {
		if !found[n] {
			unknown = append(unknown, n)
		}
	}
	sort.Strings(unknown)
	return matched, unknown
}

// CatalogHolder owns the current snapshot and swaps it atomically on refresh.
type CatalogHolder struct {
	repo    catalogRepo.CatalogRepository
	current atomic.Value // *Catalog
}

func NewCatalogHolder(repo catalogRepo.CatalogRepository) *CatalogHolder {
	h := &CatalogHolder{repo: repo}
	h.current.Store(&Catalog{})
	return h
}

// Current returns the active snapshot. Never nil; an empty catalog simply
// yields zero matches everywhere.
func (h *CatalogHolder) Current() *Catalog {
	return h.current.Load().(*Catalog)
}

// Refresh reloads materials and sites from the repository. On failure the
// previous snapshot stays active.
func (h *CatalogHolder) Refresh(ctx context.Context) error {
	logger := utils.GetLogger()

	materials, err := h.repo.FetchMaterials(ctx)
	if err != nil {
		logger.Error("catalog refresh: materials fetch failed", zap.Error(err))
		return err
	}
	sites, err := h.repo.FetchSites(ctx)
	if err != nil {
		logger.Error("catalog refresh: sites fetch failed", zap.Error(err))
		return err
	}

	h.current.Store(&Catalog{Materials: materials, Sites: sites})
	logger.Info("catalog refreshed",
		zap.Int("materials", len(materials)),
		zap.Int("sites", len(sites)),
	)
	return nil
}
