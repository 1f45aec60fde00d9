package assistant

import (
	"fmt"
	"testing"

	"matero/models"
)

func testCatalog() *Catalog {
	return &Catalog{
		Materials: []models.MaterialRef{
			{ID: "MTR-1001", ItemName: "Steel Bolt M12", Category: "fasteners", Unit: "pcs", AvailableQuantity: 500},
			{ID: "MTR-1002", ItemName: "Steel Rod 8mm", Category: "steel", Unit: "pcs"},
			{ID: "MTR-2001", ItemName: "Cement 50kg", MaterialName: "Portland Cement", Category: "concrete", Unit: "bags"},
			{ID: "MTR-2002", ItemName: "White Cement 25kg", Category: "concrete", Unit: "bags"},
			{ID: "CBL-12", ItemName: "Power Cable 12mm", Category: "electrical", Unit: "m"},
		},
		Sites: []string{"Riverside Apartments", "Hilltop Mall"},
	}
}

func TestMatchMaterialsExactIDWins(t *testing.T) {
	got := matchMaterials(testCatalog(), "mtr-1001")
	if len(got) != 1 || got[0].ID != "MTR-1001" {
		t.Fatalf("got %+v, want single MTR-1001", got)
	}
}

func TestMatchMaterialsSubstringInCatalogOrder(t *testing.T) {
	got := matchMaterials(testCatalog(), "steel")
	if len(got) != 2 || got[0].ID != "MTR-1001" || got[1].ID != "MTR-1002" {
		t.Fatalf("got %+v, want MTR-1001 then MTR-1002", got)
	}
}

func TestMatchMaterialsMatchesMaterialName(t *testing.T) {
	got := matchMaterials(testCatalog(), "portland")
	if len(got) != 1 || got[0].ID != "MTR-2001" {
		t.Fatalf("got %+v, want MTR-2001", got)
	}
}

func TestMatchMaterialsNoMatch(t *testing.T) {
	if got := matchMaterials(testCatalog(), "granite"); len(got) != 0 {
		t.Fatalf("got %+v, want none", got)
	}
	if got := matchMaterials(testCatalog(), "   "); got != nil {
		t.Fatalf("blank token should match nothing, got %+v", got)
	}
}

func TestMatchMaterialsCapped(t *testing.T) {
	catalog := &Catalog{}
	for i := 0; i < maxMatches+4; i++ {
		catalog.Materials = append(catalog.Materials, models.MaterialRef{
			ID:       fmt.Sprintf("PIP-%02d", i),
			ItemName: fmt.Sprintf("PVC Pipe %d inch", i),
		})
	}
	if got := matchMaterials(catalog, "pipe"); len(got) != maxMatches {
		t.Fatalf("got %d matches, want %d", len(got), maxMatches)
	}
}

func TestMatchSite(t *testing.T) {
	catalog := testCatalog()

	if site, ok := matchSite(catalog, "riverside"); !ok || site != "Riverside Apartments" {
		t.Fatalf("got (%q, %v), want canonical Riverside Apartments", site, ok)
	}
	// "l" appears in both site names; ambiguity means no correction.
	if _, ok := matchSite(catalog, "l"); ok {
		t.Fatal("ambiguous needle should not match")
	}
	if _, ok := matchSite(catalog, "dockyard"); ok {
		t.Fatal("unknown site should not match")
	}
	if _, ok := matchSite(catalog, ""); ok {
		t.Fatal("empty needle should not match")
	}
}
