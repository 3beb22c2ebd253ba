package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/theirongolddev/julmat/internal/catalog"
	"github.com/theirongolddev/julmat/internal/model"
)

func resolveCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Families: []string{"Julbord", "Dessert"},
		Items: []model.Item{
			{Family: "Julbord", Category: "Fisk", Name: "Sill"},
			{Family: "Julbord", Category: "Fisk", Name: "Senapssill"},
			{Family: "Julbord", Category: "Kött", Name: "Julskinka"},
			{Family: "Dessert", Category: "Kall", Name: "Ris à la Malta"},
			{Family: "Dessert", Category: "Kall", Name: "Ostkaka"},
			{Family: "Julbord", Category: "Kall", Name: "Ostkaka"},
		},
	}
}

func TestResolveItem(t *testing.T) {
	cat := resolveCatalog()

	tests := []struct {
		arg  string
		want string // ID
	}{
		{"julbord__fisk__sill", "julbord__fisk__sill"},
		{"JULBORD__FISK__SILL", "julbord__fisk__sill"},
		{"sill", "julbord__fisk__sill"}, // exact name beats the Senapssill substring
		{"Julskinka", "julbord__kött__julskinka"},
		{"malta", "dessert__kall__ris à la malta"},
		{"skink", "julbord__kött__julskinka"},
		{"dessert__kall__ostkaka", "dessert__kall__ostkaka"},
	}

	for _, tt := range tests {
		it, err := resolveItem(cat, tt.arg)
		if err != nil {
			t.Errorf("resolveItem(%q) error: %v", tt.arg, err)
			continue
		}
		if it.ID() != tt.want {
			t.Errorf("resolveItem(%q) = %q, want %q", tt.arg, it.ID(), tt.want)
		}
	}
}

func TestResolveItem_Ambiguous(t *testing.T) {
	cat := resolveCatalog()

	_, err := resolveItem(cat, "ostkaka")
	if !errors.Is(err, errItemAmbiguous) {
		t.Fatalf("err = %v, want ambiguous", err)
	}
	if !strings.Contains(err.Error(), "dessert__kall__ostkaka") || !strings.Contains(err.Error(), "julbord__kall__ostkaka") {
		t.Errorf("error should list candidates: %v", err)
	}

	if _, err := resolveItem(cat, "kaka"); !errors.Is(err, errItemAmbiguous) {
		t.Errorf("substring ambiguity: err = %v", err)
	}
}

func TestResolveItem_NotFound(t *testing.T) {
	cat := resolveCatalog()
	for _, arg := range []string{"lutfisk", "", "   "} {
		if _, err := resolveItem(cat, arg); !errors.Is(err, errItemNotFound) {
			t.Errorf("resolveItem(%q) err = %v, want not found", arg, err)
		}
	}
}

func TestResolveItems_StopsAtFirstError(t *testing.T) {
	cat := resolveCatalog()

	items, err := resolveItems(cat, []string{"sill", "skink"})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[1].Name != "Julskinka" {
		t.Errorf("items = %+v", items)
	}

	if _, err := resolveItems(cat, []string{"sill", "lutfisk"}); err == nil {
		t.Error("expected error for unknown item")
	}
}

func TestCurrentFilter(t *testing.T) {
	cat := resolveCatalog()
	defer func(s, f, q, c string) {
		flagStatus, flagFamily, flagSearch, flagCategory = s, f, q, c
	}(flagStatus, flagFamily, flagSearch, flagCategory)

	flagStatus, flagFamily, flagSearch = "done", "Dessert", "kaka"
	f, err := currentFilter(cat)
	if err != nil {
		t.Fatal(err)
	}
	if f.Family != "Dessert" || f.Query != "kaka" || string(f.Status) != "done" {
		t.Errorf("filter = %+v", f)
	}

	flagCategory = "Kall"
	if _, err := currentFilter(cat); err != nil {
		t.Errorf("Kall is a Dessert category: %v", err)
	}
	flagCategory = "Fisk"
	if _, err := currentFilter(cat); err == nil {
		t.Error("Fisk is not a Dessert category")
	}
	flagCategory = ""

	flagFamily = "Frukost"
	if _, err := currentFilter(cat); err == nil {
		t.Error("unknown family should fail")
	}

	flagFamily, flagStatus = "", "eaten"
	if _, err := currentFilter(cat); err == nil {
		t.Error("unknown status should fail")
	}
}
