package core

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lumipallolabs/dirscope/internal/cache"
	"github.com/lumipallolabs/dirscope/internal/scan"
	"github.com/lumipallolabs/dirscope/internal/stats"
	"github.com/lumipallolabs/dirscope/internal/trash"
)

// testController wires a controller to temp-dir backed services so tests
// never touch the real home directory.
func testController(t *testing.T, root string) *Controller {
	t.Helper()

	m := stats.NewManagerAt(filepath.Join(t.TempDir(), "stats.json"))
	if err := m.Load(); err != nil {
		t.Fatal(err)
	}

	c := &Controller{
		customRoot:   root,
		maxDepth:     scan.DepthUnlimited,
		statsManager: m,
		snapshots:    cache.New(t.TempDir()),
		mover:        trash.NewAt(t.TempDir()),
		eventCh:      make(chan Event, 100),
	}
	t.Cleanup(c.Stop)
	return c
}

func buildTree(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	write := func(path string, size int) {
		t.Helper()
		if err := os.WriteFile(path, bytes.Repeat([]byte{'x'}, size), 0644); err != nil {
			t.Fatal(err)
		}
	}
	write(filepath.Join(tmp, "a.mp4"), 1000)
	write(filepath.Join(tmp, "b.jpg"), 200)
	if err := os.MkdirAll(filepath.Join(tmp, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	write(filepath.Join(tmp, "sub", "c.txt"), 100)
	return tmp
}

// drain consumes a scan's event channel and returns its completion event.
func drain(t *testing.T, ch <-chan Event) ScanCompletedEvent {
	t.Helper()

	var completed *ScanCompletedEvent
	timeout := time.After(10 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				if completed == nil {
					t.Fatal("channel closed without a completion event")
				}
				return *completed
			}
			if done, isDone := ev.(ScanCompletedEvent); isDone {
				if completed != nil {
					t.Fatal("more than one completion event")
				}
				completed = &done
			}
		case <-timeout:
			t.Fatal("timed out waiting for scan events")
		}
	}
}

func TestStartScanDeliversEvents(t *testing.T) {
	root := buildTree(t)
	c := testController(t, root)

	ch, err := c.StartScan(context.Background())
	if err != nil {
		t.Fatalf("StartScan failed: %v", err)
	}

	first, ok := <-ch
	if !ok {
		t.Fatal("channel closed before any event")
	}
	started, isStart := first.(ScanStartedEvent)
	if !isStart {
		t.Fatalf("first event = %T, want ScanStartedEvent", first)
	}
	if started.Root != root {
		t.Errorf("started root = %q, want %q", started.Root, root)
	}

	done := drain(t, ch)
	if done.Snapshot.Status != scan.StatusCompleted {
		t.Fatalf("status = %v, want completed", done.Snapshot.Status)
	}
	if done.Snapshot.Counts.Files != 3 || done.Snapshot.Counts.TotalBytes != 1300 {
		t.Errorf("counts = %+v, want 3 files / 1300 bytes", done.Snapshot.Counts)
	}

	state := c.ScanState()
	if state.Phase != PhaseComplete {
		t.Errorf("phase = %v, want complete", state.Phase)
	}
	if c.LatestSnapshot() == nil {
		t.Error("LatestSnapshot is nil after a completed scan")
	}
}

func TestStartScanInvalidRoot(t *testing.T) {
	c := testController(t, filepath.Join(t.TempDir(), "missing"))

	ch, err := c.StartScan(context.Background())
	if err != nil {
		t.Fatalf("StartScan failed: %v", err)
	}

	done := drain(t, ch)
	if done.Snapshot.Status != scan.StatusInvalidRoot {
		t.Errorf("status = %v, want invalid root", done.Snapshot.Status)
	}
	if done.Snapshot.Err == nil {
		t.Error("invalid-root snapshot carries no error")
	}
}

func TestRestartCancelsPriorScan(t *testing.T) {
	root := buildTree(t)
	c := testController(t, root)

	first, err := c.StartScan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.StartScan(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	// The first scan's channel must already be terminated by the time
	// StartScan returned the second.
	firstDone := drain(t, first)
	if s := firstDone.Snapshot.Status; s != scan.StatusCompleted && s != scan.StatusCancelled {
		t.Errorf("first scan status = %v", s)
	}

	secondDone := drain(t, second)
	if secondDone.Snapshot.Status != scan.StatusCompleted {
		t.Errorf("second scan status = %v, want completed", secondDone.Snapshot.Status)
	}
}

func TestDeleteFreesSpace(t *testing.T) {
	root := buildTree(t)
	c := testController(t, root)

	ch, err := c.StartScan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	drain(t, ch)

	target := filepath.Join(root, "a.mp4")
	freed, err := c.Delete(target)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if freed != 1000 {
		t.Errorf("freed = %d, want 1000", freed)
	}
	if _, err := os.Lstat(target); !os.IsNotExist(err) {
		t.Error("deleted file still present at original path")
	}

	state := c.FreedState()
	if state.Session != 1000 || state.Lifetime != 1000 {
		t.Errorf("freed state = %+v, want 1000/1000", state)
	}

	snap := c.LatestSnapshot()
	if snap.Counts.TotalBytes != 300 {
		t.Errorf("total after delete = %d, want 300", snap.Counts.TotalBytes)
	}

	select {
	case ev := <-c.Events():
		deleted, ok := ev.(ItemDeletedEvent)
		if !ok {
			t.Fatalf("event = %T, want ItemDeletedEvent", ev)
		}
		if deleted.Path != target || deleted.Size != 1000 {
			t.Errorf("deletion event = %+v", deleted)
		}
	default:
		t.Error("no deletion event emitted")
	}
}

func TestDeleteRejectedWhileScanning(t *testing.T) {
	root := buildTree(t)
	c := testController(t, root)
	c.scan.Phase = PhaseScanning

	if _, err := c.Delete(filepath.Join(root, "a.mp4")); !errors.Is(err, ErrScanActive) {
		t.Errorf("err = %v, want ErrScanActive", err)
	}
}

func TestDeleteUnknownPath(t *testing.T) {
	root := buildTree(t)
	c := testController(t, root)

	ch, err := c.StartScan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	drain(t, ch)

	if _, err := c.Delete(filepath.Join(root, "nope.bin")); !errors.Is(err, scan.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if got := c.FreedState(); got.Session != 0 {
		t.Errorf("failed delete changed freed state: %+v", got)
	}
}

func TestScanDiffAgainstPreviousRun(t *testing.T) {
	root := buildTree(t)
	c := testController(t, root)

	ch, err := c.StartScan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	first := drain(t, ch)
	if len(first.Deltas) != 0 {
		t.Errorf("first scan has deltas: %+v", first.Deltas)
	}

	if err := os.WriteFile(filepath.Join(root, "new.wav"),
		bytes.Repeat([]byte{'x'}, 500), 0644); err != nil {
		t.Fatal(err)
	}

	ch, err = c.StartScan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	second := drain(t, ch)

	if second.TotalDelta != 500 {
		t.Errorf("total delta = %d, want 500", second.TotalDelta)
	}
	if len(second.Deltas) != 1 || second.Deltas[0].Bytes != 500 {
		t.Errorf("deltas = %+v, want one +500 entry", second.Deltas)
	}
}
