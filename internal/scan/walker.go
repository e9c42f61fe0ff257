package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lumipallolabs/dirscope/internal/category"
	"github.com/lumipallolabs/dirscope/internal/logging"
	"github.com/lumipallolabs/dirscope/internal/model"
)

// errInvalidRoot aborts the walk before it starts.
var errInvalidRoot = errors.New("root is not a readable directory")

// Walker runs one ordered depth-first scan. Unlike a parallel walk, it
// preserves discovery order so every progress snapshot's item list is a
// prefix-consistent extension of the previous one.
type Walker struct {
	cfg        Config
	results    *Results
	onProgress func(*Snapshot)
	sinceEmit  int
}

// NewWalker creates a walker for a single scan.
func NewWalker(cfg Config) *Walker {
	if cfg.EmitEvery <= 0 {
		cfg.EmitEvery = DefaultEmitEvery
	}
	return &Walker{cfg: cfg}
}

// Results returns the live result set. Valid once Scan has returned; the
// consumer may then serve deletes against it.
func (w *Walker) Results() *Results {
	return w.results
}

// Scan walks root depth-first and returns the final snapshot, tagged
// completed, cancelled, or invalid-root. It blocks until the walk ends;
// use Start for the asynchronous form. Per-entry errors never abort the
// walk and no error escapes as a panic.
func (w *Walker) Scan(ctx context.Context, root string, onProgress func(*Snapshot)) *Snapshot {
	w.onProgress = onProgress

	abs, err := filepath.Abs(root)
	if err == nil {
		var info os.FileInfo
		info, err = os.Lstat(abs)
		if err == nil && !info.IsDir() {
			err = errInvalidRoot
		}
	}
	if err != nil {
		w.results = newResults(root)
		return w.results.Snapshot(StatusInvalidRoot, fmt.Errorf("%w: %s", errInvalidRoot, root))
	}

	w.results = newResults(abs)

	logging.Scan.Printf("scan start root=%s maxDepth=%d", abs, w.cfg.MaxDepth)

	walkErr := w.walkDir(ctx, abs, 0, nil)
	switch {
	case errors.Is(walkErr, errInvalidRoot):
		return w.results.Snapshot(StatusInvalidRoot, fmt.Errorf("%w: %s", errInvalidRoot, root))
	case walkErr != nil:
		// Only cancellation propagates out of the walk.
		logging.Scan.Printf("scan cancelled root=%s", abs)
		return w.results.Snapshot(StatusCancelled, nil)
	}

	logging.Scan.Printf("scan complete root=%s files=%d bytes=%d",
		abs, w.results.counts.Files, w.results.counts.TotalBytes)
	return w.results.Snapshot(StatusCompleted, nil)
}

// walkDir processes the entries of one directory. Entries are recorded at
// the given depth; parent is the directory's own item, nil for the root.
func (w *Walker) walkDir(ctx context.Context, dir string, depth int, ancestors []*model.Item) error {
	// Cancellation is polled once per directory, so the worst-case latency
	// to honor it is the current directory's entries, not the subtree.
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if len(ancestors) == 0 {
			return errInvalidRoot
		}
		logging.Scan.Printf("unreadable dir %s: %v", dir, err)
		w.results.markUnreadable(ancestors[len(ancestors)-1])
		return nil
	}

	for _, entry := range entries {
		// Symlinks are never followed and never recorded; following them
		// risks cycles and double counting.
		if entry.Type()&fs.ModeSymlink != 0 {
			continue
		}

		path := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			item := &model.Item{
				Path:  path,
				Name:  entry.Name(),
				Kind:  model.KindDir,
				Depth: depth,
			}
			w.results.addDir(item)
			w.bump()

			if w.cfg.MaxDepth == DepthUnlimited || depth+1 <= w.cfg.MaxDepth {
				if err := w.walkDir(ctx, path, depth+1, append(ancestors, item)); err != nil {
					return err
				}
			}
			continue
		}

		if !entry.Type().IsRegular() {
			continue
		}

		item := &model.Item{
			Path:     path,
			Name:     entry.Name(),
			Kind:     model.KindFile,
			Category: category.Categorize(entry.Name()),
			Depth:    depth,
		}
		info, err := entry.Info()
		if err != nil {
			item.Unreadable = true
		} else {
			item.Size = info.Size()
		}
		w.results.addFile(item, ancestors)
		w.bump()
	}

	w.emit()
	return nil
}

// bump counts one processed item and emits a progress snapshot at the
// configured cadence.
func (w *Walker) bump() {
	w.sinceEmit++
	if w.sinceEmit >= w.cfg.EmitEvery {
		w.emit()
	}
}

// emit delivers a progress snapshot synchronously; a slow consumer
// throttles the walk, bounded by the emit cadence.
func (w *Walker) emit() {
	if w.sinceEmit == 0 || w.onProgress == nil {
		w.sinceEmit = 0
		return
	}
	w.sinceEmit = 0
	w.onProgress(w.results.Snapshot(StatusRunning, nil))
}
