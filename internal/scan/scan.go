// Package scan implements the incremental directory scanning engine: an
// ordered depth-first walk that classifies entries, aggregates sizes per
// category, and streams point-in-time snapshots to a consumer while the
// walk is still running.
package scan

import (
	"context"

	"github.com/lumipallolabs/dirscope/internal/category"
	"github.com/lumipallolabs/dirscope/internal/model"
)

// DepthUnlimited disables the depth bound.
const DepthUnlimited = -1

// DefaultEmitEvery is the progress cadence: a snapshot is emitted after this
// many items, or whenever a directory is fully processed, whichever comes first.
const DefaultEmitEvery = 50

// Config controls a single scan.
type Config struct {
	// MaxDepth bounds the traversal. Top-level entries are depth 0; a
	// directory at depth d is descended into only if d+1 <= MaxDepth.
	// DepthUnlimited removes the bound.
	MaxDepth int

	// EmitEvery overrides the progress cadence. Zero means DefaultEmitEvery.
	EmitEvery int
}

// Status tags a snapshot with the state of the scan that produced it.
type Status int

const (
	StatusRunning Status = iota
	StatusCompleted
	StatusCancelled
	StatusInvalidRoot
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	case StatusInvalidRoot:
		return "invalid-root"
	default:
		return "unknown"
	}
}

// CategoryTotal is the running aggregate for one category.
type CategoryTotal struct {
	Bytes int64
	Count int64
}

// Counts holds the top-level running counters of a scan.
type Counts struct {
	Files       int64
	Dirs        int64
	TotalBytes  int64 // sum of file item sizes; directories are not double-counted
	SkippedDirs int64 // directories recorded unreadable
	SkippedFiles int64

	// Largest single file seen so far. Ties go to the first discovered.
	LargestPath string
	LargestSize int64
}

// Snapshot is an immutable point-in-time view of a scan. Items are value
// copies in discovery order (pre-order, parents before children), so every
// later snapshot's item list extends every earlier one.
type Snapshot struct {
	Root       string
	Status     Status
	Err        error
	Items      []model.Item
	Categories map[category.Category]CategoryTotal
	Counts     Counts
}

// Start launches a scan on its own goroutine and returns immediately.
// onProgress receives intermediate snapshots at the configured cadence;
// onComplete receives exactly one final snapshot, tagged completed,
// cancelled, or invalid-root. Cancel via ctx.
func Start(ctx context.Context, root string, cfg Config, onProgress, onComplete func(*Snapshot)) {
	w := NewWalker(cfg)
	go func() {
		final := w.Scan(ctx, root, onProgress)
		if onComplete != nil {
			onComplete(final)
		}
	}()
}
