// Package checklist filters, groups and aggregates checklist items.
package checklist

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/julmat/internal/model"
)

// AllFamilies is the family filter sentinel that matches every family.
const AllFamilies = "__all__"

// StatusFilter selects items by progress.
type StatusFilter string

const (
	StatusAll     StatusFilter = "all"
	StatusMissing StatusFilter = "missing" // not both bought and cooked
	StatusBought  StatusFilter = "bought"
	StatusCooked  StatusFilter = "cooked"
	StatusDone    StatusFilter = "done"
)

// StatusFilters lists the filters in UI order.
var StatusFilters = []StatusFilter{StatusAll, StatusMissing, StatusBought, StatusCooked, StatusDone}

// ParseStatusFilter accepts the filter names and the "__all__" sentinel.
// An empty string means all.
func ParseStatusFilter(s string) (StatusFilter, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "", AllFamilies, string(StatusAll):
		return StatusAll, nil
	}
	for _, f := range StatusFilters {
		if string(f) == v {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown status filter %q (want all, missing, bought, cooked or done)", s)
}

// Label returns the Swedish label used in the UI.
func (f StatusFilter) Label() string {
	switch f {
	case StatusMissing:
		return "Saknas"
	case StatusBought:
		return "Handlade"
	case StatusCooked:
		return "Lagade"
	case StatusDone:
		return "Klara"
	}
	return "Alla"
}

// Filter is the current search/family/category/status selection. An empty
// Category shows every category.
type Filter struct {
	Query    string
	Family   string
	Category string
	Status   StatusFilter
}

// normalized returns a copy with the query lowercased and trimmed and the
// empty family/status mapped to their sentinels.
func (f Filter) normalized() Filter {
	f.Query = strings.ToLower(strings.TrimSpace(f.Query))
	if f.Family == "" {
		f.Family = AllFamilies
	}
	if f.Status == "" || f.Status == AllFamilies {
		f.Status = StatusAll
	}
	return f
}

// Active reports whether a query, category or status filter narrows the
// view. Empty family sections are only hidden while a filter is active.
func (f Filter) Active() bool {
	n := f.normalized()
	return n.Query != "" || n.Category != "" || n.Status != StatusAll
}

// AllFamiliesSelected reports whether the family filter is the sentinel.
func (f Filter) AllFamiliesSelected() bool {
	return f.normalized().Family == AllFamilies
}

// Matches reports whether item passes query, family and status filters given
// its status entry. The query must already be lowercased and trimmed.
func Matches(item model.Item, query, family string, status StatusFilter, entry model.Entry) bool {
	if query != "" && !strings.Contains(item.Haystack(), query) {
		return false
	}
	if family != AllFamilies && family != "" && item.Family != family {
		return false
	}

	switch status {
	case StatusMissing:
		return !entry.Done()
	case StatusBought:
		return entry.Bought
	case StatusCooked:
		return entry.Cooked
	case StatusDone:
		return entry.Done()
	}
	return true
}

// Match is Matches plus the category filter, with the filter's own
// normalization applied.
func (f Filter) Match(item model.Item, entry model.Entry) bool {
	n := f.normalized()
	if n.Category != "" && item.Category != n.Category {
		return false
	}
	return Matches(item, n.Query, n.Family, n.Status, entry)
}

// Apply returns the visible subset of items in input order.
func (f Filter) Apply(items []model.Item, status model.Status) []model.Item {
	n := f.normalized()
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if n.Match(it, status.Get(it.ID())) {
			out = append(out, it)
		}
	}
	return out
}
