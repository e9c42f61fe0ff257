package cache

import (
	"sort"

	"github.com/lumipallolabs/dirscope/internal/category"
	"github.com/lumipallolabs/dirscope/internal/scan"
)

// CategoryDelta is the change in one category between two scans.
type CategoryDelta struct {
	Category category.Category
	Bytes    int64 // current minus previous
	Count    int64
}

// Diff compares the current snapshot against a previous one and returns the
// non-zero per-category changes, largest absolute byte change first.
// A nil previous yields deltas equal to the current totals.
func Diff(current, previous *scan.Snapshot) []CategoryDelta {
	var deltas []CategoryDelta
	for _, cat := range category.All {
		cur := current.Categories[cat]
		var prev scan.CategoryTotal
		if previous != nil {
			prev = previous.Categories[cat]
		}
		d := CategoryDelta{
			Category: cat,
			Bytes:    cur.Bytes - prev.Bytes,
			Count:    cur.Count - prev.Count,
		}
		if d.Bytes != 0 || d.Count != 0 {
			deltas = append(deltas, d)
		}
	}

	sort.SliceStable(deltas, func(i, j int) bool {
		return abs(deltas[i].Bytes) > abs(deltas[j].Bytes)
	})
	return deltas
}

// TotalDelta returns the change in the global byte total between two scans.
func TotalDelta(current, previous *scan.Snapshot) int64 {
	if previous == nil {
		return current.Counts.TotalBytes
	}
	return current.Counts.TotalBytes - previous.Counts.TotalBytes
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
