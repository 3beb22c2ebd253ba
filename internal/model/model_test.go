package model

import "testing"

func TestItemID_DeterministicAndLowercase(t *testing.T) {
	a := Item{Family: "Julbord", Category: "Fisk", Name: "Gravlax", Notes: "med dillsås"}
	b := Item{Family: "julbord", Category: "FISK", Name: "gravlax"}

	if a.ID() != "julbord__fisk__gravlax" {
		t.Fatalf("ID() = %q, want julbord__fisk__gravlax", a.ID())
	}
	if a.ID() != b.ID() {
		t.Fatalf("items with the same triple must collide: %q vs %q", a.ID(), b.ID())
	}
	if a.ID() != a.ID() {
		t.Fatal("ID() is not deterministic")
	}
}

func TestEntryWith_PreservesOtherField(t *testing.T) {
	e := Entry{Cooked: true}
	got := e.With(FieldBought, true)
	if !got.Bought || !got.Cooked {
		t.Fatalf("With(bought) = %+v, want both true", got)
	}
	got = got.With(FieldCooked, false)
	if !got.Bought || got.Cooked {
		t.Fatalf("With(cooked=false) = %+v, want bought only", got)
	}
	if got.Done() {
		t.Fatal("entry with only bought must not be done")
	}
}

func TestParseField(t *testing.T) {
	tests := []struct {
		in      string
		want    Field
		wantErr bool
	}{
		{"bought", FieldBought, false},
		{" Cooked ", FieldCooked, false},
		{"lagad", FieldCooked, false},
		{"eaten", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseField(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseField(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err == nil && got != tt.want {
			t.Fatalf("ParseField(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		done, total, want int
	}{
		{0, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{5, 5, 100},
	}
	for _, tt := range tests {
		if got := Percent(tt.done, tt.total); got != tt.want {
			t.Errorf("Percent(%d, %d) = %d, want %d", tt.done, tt.total, got, tt.want)
		}
	}
}
