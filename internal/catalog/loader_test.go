package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

const sampleJSON = `{
  "families": ["Julbord", "Dessert"],
  "items": [
    {"family": "Julbord", "category": "Fisk", "name": "Gravlax", "notes": "dillsås"},
    {"family": "Julbord", "name": "Risgrynsgröt"},
    {"family": "Dessert", "category": "", "name": "Ris à la Malta"}
  ]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_FileNormalizesDefaults(t *testing.T) {
	path := writeFile(t, "data.json", sampleJSON)

	c, err := Load(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(c.Families) != 2 || c.Families[0] != "Julbord" {
		t.Fatalf("Families = %v", c.Families)
	}
	if len(c.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 3", len(c.Items))
	}
	if c.Items[1].Category != "Övrigt" {
		t.Errorf("missing category = %q, want Övrigt", c.Items[1].Category)
	}
	if c.Items[1].Notes != "" {
		t.Errorf("missing notes = %q, want empty", c.Items[1].Notes)
	}
	if c.Items[2].Category != "" {
		t.Errorf("explicit empty category = %q, want empty", c.Items[2].Category)
	}
	if c.Items[0].Notes != "dillsås" {
		t.Errorf("Notes = %q", c.Items[0].Notes)
	}
}

func TestLoad_CustomDefaultCategory(t *testing.T) {
	path := writeFile(t, "data.json", sampleJSON)

	c, err := Load(context.Background(), path, Options{DefaultCategory: "Other"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Items[1].Category != "Other" {
		t.Errorf("Category = %q, want Other", c.Items[1].Category)
	}
}

func TestLoad_MissingSections(t *testing.T) {
	c, err := Decode([]byte(`{}`), FormatJSON, "")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if c.Families == nil || len(c.Families) != 0 {
		t.Errorf("Families = %#v, want empty non-nil", c.Families)
	}
	if len(c.Items) != 0 {
		t.Errorf("Items = %v, want empty", c.Items)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "data.yaml", `
families: [Julbord]
items:
  - family: Julbord
    category: Kött
    name: Julskinka
  - family: Julbord
    name: Janssons frestelse
    notes: ansjovis
`)

	c, err := Load(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(c.Items))
	}
	if c.Items[1].Category != "Övrigt" || c.Items[1].Notes != "ansjovis" {
		t.Errorf("item = %+v", c.Items[1])
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.json"), Options{})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestLoad_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Cache-Control") != "no-store" {
			t.Errorf("Cache-Control = %q, want no-store", r.Header.Get("Cache-Control"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleJSON))
	}))
	defer srv.Close()

	c, err := Load(context.Background(), srv.URL+"/data.json", Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 3", len(c.Items))
	}
}

func TestLoad_URLNonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Load(context.Background(), srv.URL+"/data.json", Options{})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestFormatFor(t *testing.T) {
	tests := map[string]Format{
		"data.json":                        FormatJSON,
		"list.YAML":                        FormatYAML,
		"list.yml":                         FormatYAML,
		"https://example.com/d.yaml?v=2":   FormatYAML,
		"https://example.com/data":         FormatJSON,
	}
	for src, want := range tests {
		if got := FormatFor(src); got != want {
			t.Errorf("FormatFor(%q) = %v, want %v", src, got, want)
		}
	}
}

func TestCatalogLookupAndFamily(t *testing.T) {
	c, err := Decode([]byte(sampleJSON), FormatJSON, "")
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Family("Julbord"); len(got) != 2 {
		t.Errorf("Family(Julbord) = %d items, want 2", len(got))
	}
	it, ok := c.Lookup("julbord__fisk__gravlax")
	if !ok || it.Name != "Gravlax" {
		t.Errorf("Lookup = %+v, %v", it, ok)
	}
	if !c.HasFamily("Dessert") || c.HasFamily("Frukost") {
		t.Error("HasFamily mismatch")
	}
}
