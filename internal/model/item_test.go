package model

import (
	"testing"

	"github.com/lumipallolabs/dirscope/internal/category"
)

func TestDisplayCategory(t *testing.T) {
	file := Item{Name: "a.mp4", Kind: KindFile, Category: category.Video}
	if got := file.DisplayCategory(); got != category.Video {
		t.Errorf("file DisplayCategory = %q, want %q", got, category.Video)
	}

	dir := Item{Name: "sub", Kind: KindDir}
	if got := dir.DisplayCategory(); got != category.Folder {
		t.Errorf("dir DisplayCategory = %q, want %q", got, category.Folder)
	}
}

func TestSortBySize(t *testing.T) {
	items := []Item{
		{Name: "b", Size: 10},
		{Name: "a", Size: 10},
		{Name: "c", Size: 30},
	}
	SortBySize(items)

	if items[0].Name != "c" {
		t.Errorf("largest first: got %q", items[0].Name)
	}
	// Equal sizes break ties by name.
	if items[1].Name != "a" || items[2].Name != "b" {
		t.Errorf("tie-break by name: got %q, %q", items[1].Name, items[2].Name)
	}
}

func TestTopBySize(t *testing.T) {
	items := []Item{
		{Name: "small", Size: 1},
		{Name: "big", Size: 100},
		{Name: "mid", Size: 50},
	}

	top := TopBySize(items, 2)
	if len(top) != 2 || top[0].Name != "big" || top[1].Name != "mid" {
		t.Errorf("unexpected top-2: %+v", top)
	}

	// Input order untouched.
	if items[0].Name != "small" {
		t.Error("TopBySize must not reorder its input")
	}

	if got := TopBySize(items, 0); len(got) != 3 {
		t.Errorf("n<=0 returns all, got %d", len(got))
	}
}

func TestDriveUsedPercent(t *testing.T) {
	d := Drive{TotalBytes: 1000, FreeBytes: 250}
	if d.UsedBytes() != 750 {
		t.Errorf("UsedBytes = %d, want 750", d.UsedBytes())
	}
	if d.UsedPercent() != 75 {
		t.Errorf("UsedPercent = %v, want 75", d.UsedPercent())
	}

	var zero Drive
	if zero.UsedPercent() != 0 {
		t.Error("zero drive should report 0% used")
	}
}
