package cache

import (
	"testing"

	"github.com/lumipallolabs/dirscope/internal/category"
	"github.com/lumipallolabs/dirscope/internal/model"
	"github.com/lumipallolabs/dirscope/internal/scan"
)

func sampleSnapshot(root string, total int64) *scan.Snapshot {
	return &scan.Snapshot{
		Root:   root,
		Status: scan.StatusCompleted,
		Items: []model.Item{
			{Path: root + "/a.mp4", Name: "a.mp4", Size: total, Category: category.Video},
		},
		Categories: map[category.Category]scan.CategoryTotal{
			category.Video: {Bytes: total, Count: 1},
		},
		Counts: scan.Counts{Files: 1, TotalBytes: total},
	}
}

func TestSaveAndLoadLatest(t *testing.T) {
	c := New(t.TempDir())

	if err := c.Save(sampleSnapshot("/data", 100)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := c.LoadLatest("/data")
	if err != nil {
		t.Fatalf("LoadLatest failed: %v", err)
	}

	if loaded.Root != "/data" {
		t.Errorf("root = %q", loaded.Root)
	}
	if loaded.Counts.TotalBytes != 100 {
		t.Errorf("total = %d, want 100", loaded.Counts.TotalBytes)
	}
	if len(loaded.Items) != 1 || loaded.Items[0].Name != "a.mp4" {
		t.Errorf("items = %+v", loaded.Items)
	}
	if loaded.Categories[category.Video].Bytes != 100 {
		t.Errorf("video total = %+v", loaded.Categories[category.Video])
	}
}

func TestLoadLatestNoCache(t *testing.T) {
	c := New(t.TempDir())
	if _, err := c.LoadLatest("/nowhere"); err == nil {
		t.Error("expected error for missing cache")
	}
}

func TestRootsDoNotCollide(t *testing.T) {
	c := New(t.TempDir())

	if err := c.Save(sampleSnapshot("/one", 1)); err != nil {
		t.Fatal(err)
	}
	if err := c.Save(sampleSnapshot("/two", 2)); err != nil {
		t.Fatal(err)
	}

	one, err := c.LoadLatest("/one")
	if err != nil {
		t.Fatal(err)
	}
	if one.Counts.TotalBytes != 1 {
		t.Errorf("loaded wrong root's snapshot: total = %d", one.Counts.TotalBytes)
	}
}
