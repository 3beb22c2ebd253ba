package checklist

import (
	"github.com/theirongolddev/julmat/internal/model"
)

// FamilyStats counts total, bought, cooked and done items of one family over
// the whole list, independent of any filter.
func FamilyStats(items []model.Item, status model.Status, family string) model.FamilyStats {
	fs := model.FamilyStats{Family: family}
	for _, it := range items {
		if it.Family != family {
			continue
		}
		e := status.Get(it.ID())
		fs.Total++
		if e.Bought {
			fs.Bought++
		}
		if e.Cooked {
			fs.Cooked++
		}
		if e.Done() {
			fs.Done++
		}
	}
	return fs
}

// GlobalStats counts all items and the done ones. KPIs always use the
// unfiltered list.
func GlobalStats(items []model.Item, status model.Status) model.Totals {
	t := model.Totals{Total: len(items)}
	for _, it := range items {
		if status.Get(it.ID()).Done() {
			t.Done++
		}
	}
	return t
}

// Categories returns the distinct categories of a family (or of every item
// when family is AllFamilies), sorted with s.
func Categories(items []model.Item, family string, s *Sorter) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, it := range items {
		if family != AllFamilies && family != "" && it.Family != family {
			continue
		}
		if _, ok := seen[it.Category]; ok {
			continue
		}
		seen[it.Category] = struct{}{}
		out = append(out, it.Category)
	}
	s.SortStrings(out)
	return out
}
