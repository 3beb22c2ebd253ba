package checklist

import (
	"github.com/theirongolddev/julmat/internal/catalog"
	"github.com/theirongolddev/julmat/internal/model"
)

// Row is one visible item with its current entry.
type Row struct {
	ID    string      `json:"id"`
	Item  model.Item  `json:"item"`
	Entry model.Entry `json:"status"`
}

// Section is one family block: stats over the full list plus the visible,
// sorted rows.
type Section struct {
	Family string            `json:"family"`
	Stats  model.FamilyStats `json:"stats"`
	Rows   []Row             `json:"rows"`
}

// InView is the number of visible rows in the section.
func (s Section) InView() int {
	return len(s.Rows)
}

// View is everything a renderer needs for one frame.
type View struct {
	Totals   model.Totals `json:"totals"`
	Sections []Section    `json:"sections"`
	Visible  int          `json:"visible"`
}

// Empty reports whether nothing matches the filter.
func (v View) Empty() bool {
	return len(v.Sections) == 0
}

// BuildView filters the catalog, groups the visible items by family and
// sorts each group. With a family filter only that family is shown. Sections
// without visible rows are dropped only while a query or status filter is
// active.
func BuildView(c *catalog.Catalog, status model.Status, f Filter, s *Sorter) View {
	n := f.normalized()
	visible := f.Apply(c.Items, status)

	v := View{
		Totals:  GlobalStats(c.Items, status),
		Visible: len(visible),
	}

	families := c.Families
	if n.Family != AllFamilies {
		families = []string{n.Family}
	}

	byFamily := make(map[string][]model.Item)
	for _, it := range visible {
		byFamily[it.Family] = append(byFamily[it.Family], it)
	}

	for _, fam := range families {
		famVisible := byFamily[fam]
		if f.Active() && len(famVisible) == 0 {
			continue
		}

		s.SortItems(famVisible)
		sec := Section{
			Family: fam,
			Stats:  FamilyStats(c.Items, status, fam),
			Rows:   make([]Row, 0, len(famVisible)),
		}
		for _, it := range famVisible {
			id := it.ID()
			sec.Rows = append(sec.Rows, Row{ID: id, Item: it, Entry: status.Get(id)})
		}
		v.Sections = append(v.Sections, sec)
	}

	return v
}
