package scan

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/lumipallolabs/dirscope/internal/category"
	"github.com/lumipallolabs/dirscope/internal/model"
)

// ErrNotFound is returned by Remove when the path is not in the result set.
var ErrNotFound = errors.New("item not found in scan results")

// Mover relocates a filesystem object to the recoverable-deletion area.
type Mover interface {
	Move(path string) error
}

// MoverFunc adapts a function to the Mover interface.
type MoverFunc func(path string) error

// Move implements Mover.
func (f MoverFunc) Move(path string) error { return f(path) }

// Results is the live result set of one scan. The walker is its sole writer
// while the scan runs; afterwards Remove may mutate it. All mutation and
// snapshotting happens under the mutex so a delete and an in-flight
// directory update can never interleave into a torn total.
type Results struct {
	mu         sync.Mutex
	root       string
	items      []*model.Item
	byPath     map[string]*model.Item
	categories map[category.Category]CategoryTotal
	counts     Counts
}

func newResults(root string) *Results {
	return &Results{
		root:       root,
		byPath:     make(map[string]*model.Item),
		categories: make(map[category.Category]CategoryTotal),
	}
}

// Root returns the scan root.
func (r *Results) Root() string {
	return r.root
}

// Item returns a copy of the recorded item at path.
func (r *Results) Item(path string) (model.Item, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.byPath[path]
	if !ok {
		return model.Item{}, false
	}
	return *item, true
}

// addFile records a discovered file and charges its bytes to the matching
// category, every ancestor directory, and the global total.
func (r *Results) addFile(item *model.Item, ancestors []*model.Item) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, item)
	r.byPath[item.Path] = item

	r.counts.Files++
	r.counts.TotalBytes += item.Size

	total := r.categories[item.Category]
	total.Count++
	total.Bytes += item.Size
	r.categories[item.Category] = total

	for _, dir := range ancestors {
		dir.Size += item.Size
	}

	if item.Unreadable {
		r.counts.SkippedFiles++
		return
	}
	// Strictly greater, so the first discovered wins exact ties.
	if item.Size > r.counts.LargestSize || r.counts.LargestPath == "" {
		r.counts.LargestSize = item.Size
		r.counts.LargestPath = item.Path
	}
}

// addDir records a discovered directory. Its size starts at zero and grows
// as descendants are charged to it via addFile.
func (r *Results) addDir(item *model.Item) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, item)
	r.byPath[item.Path] = item
	r.counts.Dirs++
	if item.Unreadable {
		r.counts.SkippedDirs++
	}
}

// markUnreadable flags an already-recorded directory that failed to list.
func (r *Results) markUnreadable(item *model.Item) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !item.Unreadable {
		item.Unreadable = true
		r.counts.SkippedDirs++
	}
}

// Snapshot returns an immutable deep-enough copy of the current state.
// Items are value copies, so later mutation of live directory sizes is
// never observed through an already-delivered snapshot.
func (r *Results) Snapshot(status Status, err error) *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]model.Item, len(r.items))
	for i, it := range r.items {
		items[i] = *it
	}

	categories := make(map[category.Category]CategoryTotal, len(r.categories))
	for cat, total := range r.categories {
		categories[cat] = total
	}

	return &Snapshot{
		Root:       r.root,
		Status:     status,
		Err:        err,
		Items:      items,
		Categories: categories,
		Counts:     r.counts,
	}
}

// Remove relocates the item at path via mover and drops it from the result
// set, subtracting its bytes from its category total, every ancestor
// directory, and the global total. Removing a directory drops its recorded
// subtree. On any failure the result set is left unmodified.
func (r *Results) Remove(path string, mover Mover) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.byPath[path]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	if err := mover.Move(path); err != nil {
		return fmt.Errorf("moving %s to trash: %w", path, err)
	}

	prefix := path + string(filepath.Separator)
	removed := func(p string) bool {
		return p == path || (item.IsDir() && strings.HasPrefix(p, prefix))
	}

	var freedBytes int64
	kept := r.items[:0]
	for _, it := range r.items {
		if !removed(it.Path) {
			kept = append(kept, it)
			continue
		}
		delete(r.byPath, it.Path)
		if it.IsDir() {
			r.counts.Dirs--
			if it.Unreadable {
				r.counts.SkippedDirs--
			}
			continue
		}
		r.counts.Files--
		r.counts.TotalBytes -= it.Size
		freedBytes += it.Size
		if it.Unreadable {
			r.counts.SkippedFiles--
		}
		total := r.categories[it.Category]
		total.Count--
		total.Bytes -= it.Size
		r.categories[it.Category] = total
	}
	r.items = kept

	// Discharge the freed bytes from every surviving ancestor directory.
	for p := filepath.Dir(path); len(p) > len(r.root); p = filepath.Dir(p) {
		if dir, ok := r.byPath[p]; ok {
			dir.Size -= freedBytes
		}
		if p == filepath.Dir(p) {
			break
		}
	}

	return nil
}
