// Package cache persists completed scan snapshots so the next run can show
// what changed since the last one.
package cache

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/lumipallolabs/dirscope/internal/category"
	"github.com/lumipallolabs/dirscope/internal/model"
	"github.com/lumipallolabs/dirscope/internal/scan"
)

// Cache stores snapshots under a directory, one timestamped file per save.
type Cache struct {
	dir string
}

// New creates a cache in the given directory.
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// DefaultDir returns the default cache directory.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".dirscope"
	}
	return filepath.Join(home, ".dirscope", "cache")
}

// entry is the gob payload. Snapshot.Err is not persisted; only completed
// snapshots are cached.
type entry struct {
	Root       string
	SavedAt    time.Time
	Items      []model.Item
	Categories map[category.Category]scan.CategoryTotal
	Counts     scan.Counts
}

// rootKey derives a stable filename component from a scan root.
func rootKey(root string) string {
	h := fnv.New64a()
	h.Write([]byte(root))
	return fmt.Sprintf("%016x", h.Sum64())
}

// Save persists a completed snapshot for its root.
func (c *Cache) Save(snap *scan.Snapshot) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.gob.gz",
		rootKey(snap.Root),
		time.Now().Format("2006-01-02_150405"))

	file, err := os.Create(filepath.Join(c.dir, filename))
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer file.Close()

	gzWriter := gzip.NewWriter(file)
	defer gzWriter.Close()

	e := entry{
		Root:       snap.Root,
		SavedAt:    time.Now(),
		Items:      snap.Items,
		Categories: snap.Categories,
		Counts:     snap.Counts,
	}
	if err := gob.NewEncoder(gzWriter).Encode(e); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// LoadLatest loads the most recent snapshot saved for root.
func (c *Cache) LoadLatest(root string) (*scan.Snapshot, error) {
	pattern := filepath.Join(c.dir, fmt.Sprintf("%s_*.gob.gz", rootKey(root)))
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no cached scan for %s", root)
	}

	// Filenames embed the timestamp, so the lexicographic max is the latest.
	sort.Strings(files)
	latest := files[len(files)-1]

	file, err := os.Open(latest)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer file.Close()

	gzReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("gzip reader: %w", err)
	}
	defer gzReader.Close()

	var e entry
	if err := gob.NewDecoder(gzReader).Decode(&e); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	return &scan.Snapshot{
		Root:       e.Root,
		Status:     scan.StatusCompleted,
		Items:      e.Items,
		Categories: e.Categories,
		Counts:     e.Counts,
	}, nil
}
