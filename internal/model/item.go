// Package model defines the checklist data types shared across julmat.
package model

import "strings"

// DefaultCategory is used for items that do not declare a category.
const DefaultCategory = "Övrigt"

// Item is a single food item on the checklist. Items are immutable once loaded.
type Item struct {
	Family   string `json:"family" yaml:"family"`
	Category string `json:"category" yaml:"category"`
	Name     string `json:"name" yaml:"name"`
	Notes    string `json:"notes" yaml:"notes"`
}

// ID returns the stable status key for the item: the lowercased join of
// family, category and name. Items sharing all three collide.
func (it Item) ID() string {
	return strings.ToLower(it.Family + "__" + it.Category + "__" + it.Name)
}

// Haystack is the lowercased text that free-text search runs against.
func (it Item) Haystack() string {
	return strings.ToLower(it.Name + " " + it.Category + " " + it.Family + " " + it.Notes)
}
