package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/julmat/internal/catalog"
	"github.com/theirongolddev/julmat/internal/model"
)

var (
	errItemNotFound  = errors.New("no such item")
	errItemAmbiguous = errors.New("ambiguous item")
)

// resolveItem finds the item arg refers to: an exact ID, then a unique
// case-insensitive name, then a unique name substring.
func resolveItem(cat *catalog.Catalog, arg string) (model.Item, error) {
	q := strings.ToLower(strings.TrimSpace(arg))
	if q == "" {
		return model.Item{}, fmt.Errorf("%w: empty name", errItemNotFound)
	}

	if it, ok := cat.Lookup(q); ok {
		return it, nil
	}

	var exact, partial []model.Item
	for _, it := range cat.Items {
		name := strings.ToLower(it.Name)
		if name == q {
			exact = append(exact, it)
		}
		if strings.Contains(name, q) {
			partial = append(partial, it)
		}
	}

	for _, matches := range [][]model.Item{exact, partial} {
		switch len(matches) {
		case 0:
			continue
		case 1:
			return matches[0], nil
		default:
			return model.Item{}, ambiguous(arg, matches)
		}
	}
	return model.Item{}, fmt.Errorf("%w: %q", errItemNotFound, arg)
}

// resolveItems resolves every argument, stopping at the first failure.
func resolveItems(cat *catalog.Catalog, args []string) ([]model.Item, error) {
	items := make([]model.Item, 0, len(args))
	for _, arg := range args {
		it, err := resolveItem(cat, arg)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func ambiguous(arg string, matches []model.Item) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%q matches %d items, use the ID:", arg, len(matches))
	for _, it := range matches {
		fmt.Fprintf(&b, "\n    %s  (%s / %s)", it.ID(), it.Family, it.Name)
	}
	return fmt.Errorf("%w: %s", errItemAmbiguous, b.String())
}
