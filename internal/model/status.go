package model

import (
	"fmt"
	"strings"
)

// Entry holds the two progress flags for one item.
type Entry struct {
	Bought bool `json:"bought"`
	Cooked bool `json:"cooked"`
}

// Done reports whether the item is both bought and cooked.
func (e Entry) Done() bool {
	return e.Bought && e.Cooked
}

// Status maps item IDs to their entries. A missing key means both flags are
// false. Keys for items no longer in the data set are kept as-is.
type Status map[string]Entry

// Get returns the entry for id, or the zero entry.
func (s Status) Get(id string) Entry {
	return s[id]
}

// Clone returns a shallow copy safe to mutate.
func (s Status) Clone() Status {
	out := make(Status, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Field names one of the two progress flags.
type Field int

const (
	FieldBought Field = iota
	FieldCooked
)

func (f Field) String() string {
	switch f {
	case FieldBought:
		return "bought"
	case FieldCooked:
		return "cooked"
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// ParseField parses "bought" or "cooked" (case-insensitive).
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bought", "handlad":
		return FieldBought, nil
	case "cooked", "lagad":
		return FieldCooked, nil
	}
	return 0, fmt.Errorf("unknown field %q (want bought or cooked)", s)
}

// With returns a copy of e with field set to v, keeping the other flag.
func (e Entry) With(field Field, v bool) Entry {
	switch field {
	case FieldBought:
		e.Bought = v
	case FieldCooked:
		e.Cooked = v
	}
	return e
}

// Value returns the flag named by field.
func (e Entry) Value(field Field) bool {
	if field == FieldCooked {
		return e.Cooked
	}
	return e.Bought
}
