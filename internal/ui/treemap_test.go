package ui

import (
	"testing"

	"github.com/jeffwilliams/squarify"

	"github.com/lumipallolabs/dirscope/internal/category"
	"github.com/lumipallolabs/dirscope/internal/scan"
)

func TestSquarifyDirect(t *testing.T) {
	root := &treemapItem{
		size: 300,
		children: []*treemapItem{
			{size: 100},
			{size: 100},
			{size: 100},
		},
	}

	rect := squarify.Rect{X: 0, Y: 0, W: 76, H: 22}

	blocks, metas := squarify.Squarify(root, rect, squarify.Options{
		MaxDepth: 1,
		Sort:     true,
	})

	// Children come back at depth 0; the root itself is not returned.
	depth0 := 0
	for i := range blocks {
		if i < len(metas) && metas[i].Depth == 0 {
			depth0++
		}
	}
	if depth0 != 3 {
		t.Errorf("expected 3 depth-0 blocks, got %d", depth0)
	}
}

func TestTreemapLayout(t *testing.T) {
	panel := NewTreemapPanel()
	panel.SetSize(80, 24)
	panel.SetTotals(map[category.Category]scan.CategoryTotal{
		category.Video:  {Bytes: 100 * 1024 * 1024, Count: 10},
		category.Images: {Bytes: 50 * 1024 * 1024, Count: 200},
		category.Audio:  {Bytes: 10 * 1024 * 1024, Count: 30},
	})

	blocks := panel.Blocks()
	if len(blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(blocks))
	}

	contentW, contentH := 80-4, 24-2
	seen := make(map[category.Category]bool)
	for _, b := range blocks {
		seen[b.Category] = true
		if b.X < 0 || b.Y < 0 || b.X+b.Width > contentW || b.Y+b.Height > contentH {
			t.Errorf("block %s out of bounds: %+v", b.Category, b)
		}
		if b.Width < 1 || b.Height < 1 {
			t.Errorf("degenerate block %s: %+v", b.Category, b)
		}
	}
	for _, cat := range []category.Category{category.Video, category.Images, category.Audio} {
		if !seen[cat] {
			t.Errorf("category %s missing from layout", cat)
		}
	}

	// The largest category should get the largest block.
	var videoArea, audioArea int
	for _, b := range blocks {
		area := b.Width * b.Height
		switch b.Category {
		case category.Video:
			videoArea = area
		case category.Audio:
			audioArea = area
		}
	}
	if videoArea <= audioArea {
		t.Errorf("video area %d not larger than audio area %d", videoArea, audioArea)
	}
}

func TestTreemapEmptyTotals(t *testing.T) {
	panel := NewTreemapPanel()
	panel.SetSize(80, 24)
	panel.SetTotals(nil)

	if got := len(panel.Blocks()); got != 0 {
		t.Errorf("got %d blocks for empty totals, want 0", got)
	}
	if panel.View() == "" {
		t.Error("empty treemap should still render a panel")
	}
}
