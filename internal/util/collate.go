package util

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortNames returns a copy of names in the collation order of tag, ignoring case.
func SortNames(tag language.Tag, names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	collate.New(tag, collate.IgnoreCase).SortStrings(out)
	return out
}

// SortBy sorts items in place by key in the collation order of tag,
// ignoring case. Equal keys keep their relative order.
func SortBy[T any](tag language.Tag, items []T, key func(T) string) {
	c := collate.New(tag, collate.IgnoreCase)
	sort.SliceStable(items, func(i, j int) bool {
		return c.CompareString(key(items[i]), key(items[j])) < 0
	})
}
