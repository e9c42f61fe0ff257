// Package summary produces one-shot aggregate statistics for a directory
// tree using a parallel walk. Unlike the interactive scan engine it makes
// no ordering promises, which is what lets it fan the traversal out across
// workers.
package summary

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"

	"github.com/lumipallolabs/dirscope/internal/category"
	"github.com/lumipallolabs/dirscope/internal/model"
	"github.com/lumipallolabs/dirscope/internal/scan"
)

// DefaultProgressInterval is the default cadence for progress callbacks.
const DefaultProgressInterval = 500 * time.Millisecond

// Options configures a summary run.
type Options struct {
	// Path is the directory to analyze.
	Path string
	// MaxDepth bounds traversal; scan.DepthUnlimited removes the bound.
	// Top-level entries are depth 0, matching the interactive scanner.
	MaxDepth int
	// TopN is the number of largest files to report.
	TopN int
	// MinSize excludes files smaller than this many bytes.
	MinSize int64
	// ProgressInterval controls the progress hook cadence.
	ProgressInterval time.Duration
}

// Result holds the aggregated statistics.
type Result struct {
	Root       string
	Files      int64
	Dirs       int64
	TotalBytes int64
	Categories map[category.Category]scan.CategoryTotal
	TopFiles   []model.Item
	Errors     int64
	Elapsed    time.Duration
}

// collector aggregates from concurrent fastwalk callbacks under a mutex.
type collector struct {
	mu         sync.Mutex
	files      int64
	dirs       int64
	totalBytes int64
	errors     int64
	categories map[category.Category]scan.CategoryTotal
	items      []model.Item
}

func (c *collector) addError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors++
}

func (c *collector) addDir() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirs++
}

func (c *collector) addFile(item model.Item) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.files++
	c.totalBytes += item.Size

	total := c.categories[item.Category]
	total.Count++
	total.Bytes += item.Size
	c.categories[item.Category] = total

	c.items = append(c.items, item)
}

func (c *collector) progress() (files, bytes int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.files, c.totalBytes
}

// startProgressReporter invokes hook(files, bytes) on each tick until ctx
// is done.
func startProgressReporter(ctx context.Context, c *collector, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}
	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				hook(c.progress())
			case <-ctx.Done():
				return
			}
		}
	}()
}

// depthOf returns the depth of path relative to root, with top-level
// entries at 0.
func depthOf(path, root string) int {
	rel := strings.TrimPrefix(path, root)
	rel = strings.TrimPrefix(rel, string(filepath.Separator))
	return strings.Count(rel, string(filepath.Separator))
}

// Run walks opts.Path in parallel and returns aggregate statistics.
// Cancellation via ctx aborts the walk with the context's error.
func Run(ctx context.Context, opts Options, progressHook func(int64, int64)) (*Result, error) {
	if opts.Path == "" {
		opts.Path = "."
	}
	if opts.TopN <= 0 {
		opts.TopN = 20
	}

	abs, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	if info, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("accessing path %q: %w", opts.Path, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("path %q is not a directory", opts.Path)
	}

	c := &collector{categories: make(map[category.Category]scan.CategoryTotal)}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	startProgressReporter(ctx, c, progressHook, opts.ProgressInterval)

	start := time.Now()

	conf := &fastwalk.Config{
		Follow: false, // never follow symlinks
	}

	walkErr := fastwalk.Walk(conf, abs, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			c.addError()
			return nil
		}
		if path == abs {
			return nil
		}

		depth := depthOf(path, abs)
		if opts.MaxDepth != scan.DepthUnlimited && depth > opts.MaxDepth {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			c.addDir()
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			c.addError()
			return nil
		}
		if info.Size() < opts.MinSize {
			return nil
		}

		c.addFile(model.Item{
			Path:     path,
			Name:     d.Name(),
			Kind:     model.KindFile,
			Size:     info.Size(),
			Category: category.Categorize(d.Name()),
			Depth:    depth,
		})
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return &Result{
		Root:       abs,
		Files:      c.files,
		Dirs:       c.dirs,
		TotalBytes: c.totalBytes,
		Categories: c.categories,
		TopFiles:   model.TopBySize(c.items, opts.TopN),
		Errors:     c.errors,
		Elapsed:    time.Since(start),
	}, nil
}
