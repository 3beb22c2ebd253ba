package checklist

import (
	"sort"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/theirongolddev/julmat/internal/model"
)

// DefaultLocale is the collation locale used when none is configured.
const DefaultLocale = "sv"

// Sorter orders items with locale-aware string comparison. A collate.Collator
// keeps scratch buffers, so comparisons are serialized.
type Sorter struct {
	mu  sync.Mutex
	col *collate.Collator
}

// NewSorter returns a sorter for the BCP 47 locale tag. An unparsable tag
// falls back to DefaultLocale.
func NewSorter(locale string) *Sorter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Make(DefaultLocale)
	}
	return &Sorter{col: collate.New(tag)}
}

// Compare returns -1, 0 or 1 comparing a and b in the sorter's locale.
func (s *Sorter) Compare(a, b string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.col.CompareString(a, b)
}

// SortItems sorts items in place by category, then name. Ties keep their
// input order.
func (s *Sorter) SortItems(items []model.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sort.SliceStable(items, func(i, j int) bool {
		if c := s.col.CompareString(items[i].Category, items[j].Category); c != 0 {
			return c < 0
		}
		return s.col.CompareString(items[i].Name, items[j].Name) < 0
	})
}

// SortStrings sorts ss in place.
func (s *Sorter) SortStrings(ss []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sort.SliceStable(ss, func(i, j int) bool {
		return s.col.CompareString(ss[i], ss[j]) < 0
	})
}
