package cache

import (
	"testing"

	"github.com/lumipallolabs/dirscope/internal/category"
	"github.com/lumipallolabs/dirscope/internal/scan"
)

func snapWith(totals map[category.Category]scan.CategoryTotal, total int64) *scan.Snapshot {
	return &scan.Snapshot{
		Categories: totals,
		Counts:     scan.Counts{TotalBytes: total},
	}
}

func TestDiff(t *testing.T) {
	prev := snapWith(map[category.Category]scan.CategoryTotal{
		category.Video:  {Bytes: 100, Count: 1},
		category.Images: {Bytes: 50, Count: 5},
	}, 150)
	cur := snapWith(map[category.Category]scan.CategoryTotal{
		category.Video:  {Bytes: 300, Count: 2},
		category.Images: {Bytes: 50, Count: 5},
		category.Audio:  {Bytes: 10, Count: 1},
	}, 360)

	deltas := Diff(cur, prev)
	if len(deltas) != 2 {
		t.Fatalf("got %d deltas, want 2 (unchanged categories omitted): %+v", len(deltas), deltas)
	}

	// Largest absolute change first.
	if deltas[0].Category != category.Video || deltas[0].Bytes != 200 {
		t.Errorf("first delta = %+v, want Video +200", deltas[0])
	}
	if deltas[1].Category != category.Audio || deltas[1].Bytes != 10 {
		t.Errorf("second delta = %+v, want Audio +10", deltas[1])
	}

	if got := TotalDelta(cur, prev); got != 210 {
		t.Errorf("TotalDelta = %d, want 210", got)
	}
}

func TestDiffNilPrevious(t *testing.T) {
	cur := snapWith(map[category.Category]scan.CategoryTotal{
		category.Code: {Bytes: 42, Count: 3},
	}, 42)

	deltas := Diff(cur, nil)
	if len(deltas) != 1 || deltas[0].Bytes != 42 {
		t.Errorf("deltas = %+v, want the full current totals", deltas)
	}
	if TotalDelta(cur, nil) != 42 {
		t.Error("TotalDelta against nil should equal current total")
	}
}
