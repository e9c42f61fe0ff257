package model

import (
	"sort"
	"strings"
)

// SortBySize sorts items by size descending, then by name ascending.
func SortBySize(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Size != items[j].Size {
			return items[i].Size > items[j].Size
		}
		return items[i].Name < items[j].Name
	})
}

// SortByName sorts items by name, case-insensitively.
func SortByName(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
}

// TopBySize returns a copy of items sorted by size descending and truncated
// to at most n entries. n <= 0 returns the full sorted copy.
func TopBySize(items []Item, n int) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	SortBySize(out)
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
