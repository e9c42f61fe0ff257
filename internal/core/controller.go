package core

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/lumipallolabs/dirscope/internal/cache"
	"github.com/lumipallolabs/dirscope/internal/logging"
	"github.com/lumipallolabs/dirscope/internal/model"
	"github.com/lumipallolabs/dirscope/internal/scan"
	"github.com/lumipallolabs/dirscope/internal/stats"
	"github.com/lumipallolabs/dirscope/internal/trash"
	"github.com/lumipallolabs/dirscope/internal/watcher"
)

// MinSignificantSize is the minimum size for a watcher-detected deletion to
// count in freed stats
const MinSignificantSize = 200 * 1024 // 200 KB

// ErrScanActive is returned by Delete while a scan is running.
var ErrScanActive = errors.New("cannot delete while a scan is running")

// ErrNoScan is returned by Delete before any scan has produced results.
var ErrNoScan = errors.New("no scan results to delete from")

// Controller manages the core application logic without UI dependencies
type Controller struct {
	mu sync.RWMutex

	// State
	drives        []model.Drive
	selectedDrive int
	customRoot    string
	maxDepth      int
	scan          ScanState
	freed         FreedState
	latest        *scan.Snapshot

	// Current scan
	walker     *scan.Walker
	results    *scan.Results
	cancelScan context.CancelFunc
	scanDone   chan struct{}

	// Internal services
	mover        scan.Mover
	watcher      *watcher.Watcher
	statsManager *stats.Manager
	snapshots    *cache.Cache

	// Deletion and watcher notifications outlive individual scans.
	eventCh chan Event
}

// NewController creates a new application controller. customRoot overrides
// drive selection when non-empty; maxDepth bounds every scan this controller
// runs (scan.DepthUnlimited for none).
func NewController(customRoot string, maxDepth int) *Controller {
	drives, _ := model.GetDrives()

	statsMgr := stats.NewManager()
	if err := statsMgr.Load(); err != nil {
		logging.Debug.Printf("Failed to load stats: %v", err)
	}

	c := &Controller{
		drives:       drives,
		customRoot:   customRoot,
		maxDepth:     maxDepth,
		statsManager: statsMgr,
		snapshots:    cache.New(cache.DefaultDir()),
		eventCh:      make(chan Event, 100),
		freed: FreedState{
			Lifetime: statsMgr.FreedLifetime(),
		},
	}

	if t, err := trash.New(); err != nil {
		logging.Debug.Printf("Trash unavailable: %v", err)
	} else {
		c.mover = t
	}

	// Find saved default root
	if customRoot == "" {
		defaultRoot := statsMgr.DefaultRoot()
		for i, d := range drives {
			if d.Path == defaultRoot {
				c.selectedDrive = i
				break
			}
		}
	}

	return c
}

// Events returns the persistent notification channel for deletions.
func (c *Controller) Events() <-chan Event {
	return c.eventCh
}

// State returns a read-only snapshot of the current state
func (c *Controller) State() AppState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return AppState{
		Drives:        c.drives,
		SelectedDrive: c.selectedDrive,
		CustomRoot:    c.customRoot,
		Scan:          c.scan,
		Freed:         c.freed,
		Snapshot:      c.latest,
	}
}

// Drives returns the available drives
func (c *Controller) Drives() []model.Drive {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.drives
}

// SelectedDrive returns the currently selected drive
func (c *Controller) SelectedDrive() *model.Drive {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.selectedDrive < 0 || c.selectedDrive >= len(c.drives) {
		return nil
	}
	drive := c.drives[c.selectedDrive]
	return &drive
}

// HasSavedDefaultRoot returns true if there's a valid saved scan target
func (c *Controller) HasSavedDefaultRoot() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.customRoot != "" {
		return true
	}

	defaultRoot := c.statsManager.DefaultRoot()
	for _, d := range c.drives {
		if d.Path == defaultRoot {
			return true
		}
	}
	return false
}

// ScanState returns the current scan state
func (c *Controller) ScanState() ScanState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scan
}

// FreedState returns the current freed space state
func (c *Controller) FreedState() FreedState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.freed
}

// MaxDepth returns the depth bound applied to scans.
func (c *Controller) MaxDepth() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.maxDepth
}

// RestoreDepthPreference applies the saved depth limit. Called when the
// user gave no explicit limit on the command line.
func (c *Controller) RestoreDepthPreference() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.maxDepth = c.statsManager.DepthLimit()
}

// SetMaxDepth updates the depth bound for subsequent scans and persists it
// as the user's preference.
func (c *Controller) SetMaxDepth(depth int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.maxDepth = depth
	c.statsManager.SetDepthLimit(depth)
}

// LatestSnapshot returns the most recent snapshot, nil before any scan.
func (c *Controller) LatestSnapshot() *scan.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.latest
}

// SelectDrive selects a drive by index and prepares for scanning
func (c *Controller) SelectDrive(idx int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if idx < 0 || idx >= len(c.drives) {
		return nil
	}

	c.selectedDrive = idx
	c.freed.Session = 0
	c.latest = nil

	// Save as default
	c.statsManager.SetDefaultRoot(c.drives[idx].Path)

	c.emit(DriveChangedEvent{
		Drive: &c.drives[idx],
		Index: idx,
	})

	return nil
}

// scanTarget resolves the path the next scan should walk. Caller holds mu.
func (c *Controller) scanTarget() string {
	if c.customRoot != "" {
		return c.customRoot
	}
	if c.selectedDrive >= 0 && c.selectedDrive < len(c.drives) {
		return c.drives[c.selectedDrive].Path
	}
	return ""
}

// StartScan begins scanning the selected drive or custom path. At most one
// scan runs at a time; a prior scan is cancelled and fully drained before
// the new one starts, so its completion snapshot is delivered first.
func (c *Controller) StartScan(ctx context.Context) (<-chan Event, error) {
	c.CancelScan()

	c.mu.Lock()

	scanPath := c.scanTarget()
	if scanPath == "" {
		c.mu.Unlock()
		return nil, nil
	}

	scanCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	c.walker = scan.NewWalker(scan.Config{MaxDepth: c.maxDepth})
	c.results = nil
	c.latest = nil
	c.cancelScan = cancel
	c.scanDone = done
	c.scan = ScanState{
		Phase:     PhaseScanning,
		Root:      scanPath,
		MaxDepth:  c.maxDepth,
		StartTime: time.Now(),
	}
	walker := c.walker

	c.mu.Unlock()

	eventCh := make(chan Event, 100)

	go c.runScan(scanCtx, walker, scanPath, eventCh, done)

	return eventCh, nil
}

// runScan executes the scan in a goroutine
func (c *Controller) runScan(ctx context.Context, walker *scan.Walker, path string, eventCh chan Event, done chan struct{}) {
	defer close(done)
	defer close(eventCh)

	logging.Debug.Printf("[Controller] Starting scan of %s", path)

	c.mu.RLock()
	depth := c.scan.MaxDepth
	c.mu.RUnlock()

	eventCh <- ScanStartedEvent{Root: path, MaxDepth: depth}

	final := walker.Scan(ctx, path, func(snap *scan.Snapshot) {
		c.mu.Lock()
		c.scan.FilesScanned = snap.Counts.Files
		c.scan.DirsScanned = snap.Counts.Dirs
		c.scan.BytesFound = snap.Counts.TotalBytes
		c.latest = snap
		c.mu.Unlock()

		// Delivered synchronously; a full channel throttles the walk
		// instead of dropping a snapshot.
		eventCh <- ScanProgressEvent{Snapshot: snap}
	})

	var deltas []cache.CategoryDelta
	var totalDelta int64
	if final.Status == scan.StatusCompleted {
		previous, err := c.snapshots.LoadLatest(final.Root)
		if err == nil {
			deltas = cache.Diff(final, previous)
			totalDelta = cache.TotalDelta(final, previous)
		}
		if err := c.snapshots.Save(final); err != nil {
			logging.Debug.Printf("Failed to cache snapshot: %v", err)
		}
	}

	c.mu.Lock()
	c.scan.Phase = PhaseComplete
	c.scan.FilesScanned = final.Counts.Files
	c.scan.DirsScanned = final.Counts.Dirs
	c.scan.BytesFound = final.Counts.TotalBytes
	if final.Status != scan.StatusInvalidRoot {
		c.results = walker.Results()
	}
	c.latest = final
	c.mu.Unlock()

	if final.Status == scan.StatusInvalidRoot {
		eventCh <- ErrorEvent{Err: final.Err}
	}
	eventCh <- ScanCompletedEvent{
		Snapshot:   final,
		Deltas:     deltas,
		TotalDelta: totalDelta,
	}

	logging.Debug.Printf("[Controller] Scan done: status=%s files=%d bytes=%d",
		final.Status, final.Counts.Files, final.Counts.TotalBytes)
}

// CancelScan stops any in-flight scan and waits for its completion snapshot
// to be delivered.
func (c *Controller) CancelScan() {
	c.mu.Lock()
	cancel := c.cancelScan
	done := c.scanDone
	c.cancelScan = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Delete moves the item at path to the trash and removes it from the scan
// results. Deletion is rejected while a scan is running. Returns the bytes
// freed.
func (c *Controller) Delete(path string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.scan.IsScanning() {
		return 0, ErrScanActive
	}
	if c.results == nil {
		return 0, ErrNoScan
	}
	if c.mover == nil {
		return 0, trash.ErrUnsupported
	}

	item, ok := c.results.Item(path)
	if !ok {
		return 0, scan.ErrNotFound
	}
	size := item.Size

	if err := c.results.Remove(path, c.mover); err != nil {
		return 0, err
	}

	c.freed.Session += size
	c.freed.Lifetime += size
	c.statsManager.AddFreed(size)
	c.latest = c.results.Snapshot(c.latest.Status, c.latest.Err)

	c.emit(ItemDeletedEvent{
		Path:          path,
		Size:          size,
		SessionFreed:  c.freed.Session,
		LifetimeFreed: c.freed.Lifetime,
	})

	logging.Debug.Printf("Deleted %s (%d bytes, session=%d)", path, size, c.freed.Session)
	return size, nil
}

// StartWatching starts the filesystem watcher for the current scan root
func (c *Controller) StartWatching() (<-chan Event, error) {
	c.mu.Lock()

	watchPath := c.scanTarget()
	if watchPath == "" || c.results == nil {
		c.mu.Unlock()
		return nil, nil
	}

	// Stop existing watcher
	if c.watcher != nil {
		_ = c.watcher.Stop()
	}

	w, err := watcher.New()
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.watcher = w
	c.mu.Unlock()

	if err := w.AddRecursive(watchPath); err != nil {
		logging.Debug.Printf("Failed to add recursive watch: %v", err)
	}
	w.Start()
	logging.Debug.Printf("Filesystem watcher started for %s", watchPath)

	eventCh := make(chan Event, 100)

	go c.watchLoop(w, eventCh)

	return eventCh, nil
}

// watchLoop processes filesystem events
func (c *Controller) watchLoop(w *watcher.Watcher, eventCh chan Event) {
	defer close(eventCh)

	for event := range w.Events() {
		if event.Type == watcher.EventDeleted {
			c.handleExternalDeletion(event.Path, eventCh)
		}
	}
}

// handleExternalDeletion reconciles the result set with a deletion that
// happened outside the app. The object is already gone, so the bookkeeping
// runs with a no-op mover.
func (c *Controller) handleExternalDeletion(path string, eventCh chan Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.results == nil || c.scan.IsScanning() {
		return
	}

	item, ok := c.results.Item(path)
	if !ok {
		logging.Debug.Printf("Watcher: DELETE event for unknown path: %s", path)
		return
	}
	size := item.Size

	noop := scan.MoverFunc(func(string) error { return nil })
	if err := c.results.Remove(path, noop); err != nil {
		return
	}
	c.latest = c.results.Snapshot(c.latest.Status, c.latest.Err)

	if size < MinSignificantSize {
		return
	}

	c.freed.Session += size
	c.freed.Lifetime += size
	c.statsManager.AddFreed(size)

	select {
	case eventCh <- ExternalDeletionEvent{
		Path:          path,
		Size:          size,
		SessionFreed:  c.freed.Session,
		LifetimeFreed: c.freed.Lifetime,
	}:
	default:
	}

	logging.Debug.Printf("Watcher: freed %d bytes (session: %d, lifetime: %d)",
		size, c.freed.Session, c.freed.Lifetime)
}

// Stop cancels any running scan and cleans up resources
func (c *Controller) Stop() {
	c.CancelScan()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.watcher != nil {
		_ = c.watcher.Stop()
	}
	if c.statsManager != nil {
		_ = c.statsManager.Close()
	}
}

// emit sends an event to all listeners
func (c *Controller) emit(event Event) {
	select {
	case c.eventCh <- event:
	default:
		// Channel full, drop event
	}
}
