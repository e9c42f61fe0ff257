package scan

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/lumipallolabs/dirscope/internal/category"
)

// fakeMover records moves without touching the filesystem.
type fakeMover struct {
	moved []string
	err   error
}

func (m *fakeMover) Move(path string) error {
	if m.err != nil {
		return m.err
	}
	m.moved = append(m.moved, path)
	return nil
}

func scanMedia(t *testing.T) (*Results, string) {
	t.Helper()
	root := mediaTree(t)
	w := NewWalker(Config{MaxDepth: DepthUnlimited})
	if snap := w.Scan(context.Background(), root, nil); snap.Status != StatusCompleted {
		t.Fatalf("scan status = %s", snap.Status)
	}
	return w.Results(), w.Results().Root()
}

func TestRemoveFile(t *testing.T) {
	results, root := scanMedia(t)
	mover := &fakeMover{}

	target := filepath.Join(root, "a.mp4")
	if err := results.Remove(target, mover); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if len(mover.moved) != 1 || mover.moved[0] != target {
		t.Errorf("mover saw %v, want [%s]", mover.moved, target)
	}

	snap := results.Snapshot(StatusCompleted, nil)
	if snap.Counts.TotalBytes != 300 {
		t.Errorf("total = %d, want 300 after removing 1000", snap.Counts.TotalBytes)
	}
	if got := snap.Categories[category.Video]; got.Bytes != 0 || got.Count != 0 {
		t.Errorf("video total = %+v, want zeroed", got)
	}
	for _, it := range snap.Items {
		if it.Path == target {
			t.Error("removed item still present")
		}
	}
}

func TestRemoveUpdatesAncestors(t *testing.T) {
	results, root := scanMedia(t)

	target := filepath.Join(root, "sub", "c.txt")
	if err := results.Remove(target, &fakeMover{}); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	snap := results.Snapshot(StatusCompleted, nil)
	for _, it := range snap.Items {
		if it.Name == "sub" && it.Size != 0 {
			t.Errorf("ancestor sub still carries %d bytes", it.Size)
		}
	}
	if snap.Counts.TotalBytes != 1200 {
		t.Errorf("total = %d, want 1200", snap.Counts.TotalBytes)
	}
}

func TestRemoveDirectoryDropsSubtree(t *testing.T) {
	results, root := scanMedia(t)

	if err := results.Remove(filepath.Join(root, "sub"), &fakeMover{}); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	snap := results.Snapshot(StatusCompleted, nil)
	if snap.Counts.Dirs != 0 || snap.Counts.Files != 2 {
		t.Errorf("dirs=%d files=%d, want 0 and 2", snap.Counts.Dirs, snap.Counts.Files)
	}
	if snap.Counts.TotalBytes != 1200 {
		t.Errorf("total = %d, want 1200", snap.Counts.TotalBytes)
	}
	if got := snap.Categories[category.Documents]; got.Bytes != 0 || got.Count != 0 {
		t.Errorf("documents total = %+v, want zeroed", got)
	}
	for _, it := range snap.Items {
		if it.Name == "sub" || it.Name == "c.txt" {
			t.Errorf("subtree item %s still present", it.Name)
		}
	}
}

func TestRemoveMissingIsIdempotentFailure(t *testing.T) {
	results, root := scanMedia(t)
	target := filepath.Join(root, "b.jpg")

	if err := results.Remove(target, &fakeMover{}); err != nil {
		t.Fatalf("first Remove failed: %v", err)
	}
	before := results.Snapshot(StatusCompleted, nil)

	err := results.Remove(target, &fakeMover{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Remove = %v, want ErrNotFound", err)
	}

	after := results.Snapshot(StatusCompleted, nil)
	if after.Counts != before.Counts {
		t.Errorf("counts changed on failed remove: %+v vs %+v", after.Counts, before.Counts)
	}
}

func TestRemoveMoverFailureLeavesStateUntouched(t *testing.T) {
	results, root := scanMedia(t)
	before := results.Snapshot(StatusCompleted, nil)

	moveErr := errors.New("trash unavailable")
	err := results.Remove(filepath.Join(root, "a.mp4"), &fakeMover{err: moveErr})
	if !errors.Is(err, moveErr) {
		t.Fatalf("Remove = %v, want wrapped mover error", err)
	}

	after := results.Snapshot(StatusCompleted, nil)
	if after.Counts != before.Counts {
		t.Errorf("counts changed after failed move: %+v vs %+v", after.Counts, before.Counts)
	}
	if len(after.Items) != len(before.Items) {
		t.Errorf("item count changed after failed move")
	}
}

func TestSnapshotIsolation(t *testing.T) {
	results, root := scanMedia(t)

	snap := results.Snapshot(StatusCompleted, nil)
	if err := results.Remove(filepath.Join(root, "a.mp4"), &fakeMover{}); err != nil {
		t.Fatal(err)
	}

	// The earlier snapshot is unaffected by later mutation.
	if snap.Counts.TotalBytes != 1300 {
		t.Errorf("old snapshot mutated: total = %d", snap.Counts.TotalBytes)
	}
	var hasA bool
	for _, it := range snap.Items {
		if it.Name == "a.mp4" {
			hasA = true
		}
	}
	if !hasA {
		t.Error("old snapshot lost an item after live-set mutation")
	}
}
