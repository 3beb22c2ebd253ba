// Package catalog loads the static family/item list that the checklist runs over.
package catalog

import (
	"github.com/theirongolddev/julmat/internal/model"
)

// Catalog is the normalized data set: the family order and every item.
type Catalog struct {
	Families []string
	Items    []model.Item
}

// rawDocument mirrors data.json. Optional fields are pointers so that an
// absent value can be told apart from an empty one.
type rawDocument struct {
	Families []string  `json:"families" yaml:"families"`
	Items    []rawItem `json:"items" yaml:"items"`
}

type rawItem struct {
	Family   string  `json:"family" yaml:"family"`
	Category *string `json:"category" yaml:"category"`
	Name     string  `json:"name" yaml:"name"`
	Notes    *string `json:"notes" yaml:"notes"`
}

// normalize fills defaults for missing fields.
func normalize(raw rawDocument, defaultCategory string) *Catalog {
	if defaultCategory == "" {
		defaultCategory = model.DefaultCategory
	}

	c := &Catalog{
		Families: raw.Families,
		Items:    make([]model.Item, 0, len(raw.Items)),
	}
	if c.Families == nil {
		c.Families = []string{}
	}

	for _, ri := range raw.Items {
		it := model.Item{
			Family:   ri.Family,
			Category: defaultCategory,
			Name:     ri.Name,
		}
		if ri.Category != nil {
			it.Category = *ri.Category
		}
		if ri.Notes != nil {
			it.Notes = *ri.Notes
		}
		c.Items = append(c.Items, it)
	}
	return c
}

// HasFamily reports whether name is one of the declared families.
func (c *Catalog) HasFamily(name string) bool {
	for _, f := range c.Families {
		if f == name {
			return true
		}
	}
	return false
}

// Family returns the items belonging to the named family, in file order.
func (c *Catalog) Family(name string) []model.Item {
	var out []model.Item
	for _, it := range c.Items {
		if it.Family == name {
			out = append(out, it)
		}
	}
	return out
}

// Lookup returns the item with the given ID. With colliding IDs the first
// item in file order wins.
func (c *Catalog) Lookup(id string) (model.Item, bool) {
	for _, it := range c.Items {
		if it.ID() == id {
			return it, true
		}
	}
	return model.Item{}, false
}
