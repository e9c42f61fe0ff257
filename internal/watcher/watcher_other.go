//go:build !darwin

package watcher

import "sync"

// Watcher is inert on platforms without a wired change-notification API.
// Deletions made outside the app are picked up on the next rescan instead.
type Watcher struct {
	mu     sync.Mutex
	closed bool

	eventCh chan Event
}

// New creates a new filesystem watcher.
func New() (*Watcher, error) {
	return &Watcher{
		eventCh: make(chan Event, 100),
	}, nil
}

// Events returns the channel for receiving filesystem events.
func (w *Watcher) Events() <-chan Event {
	return w.eventCh
}

// AddRecursive registers a root to watch. No-op here.
func (w *Watcher) AddRecursive(root string) error {
	return nil
}

// Start begins watching for events. No-op here.
func (w *Watcher) Start() {
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	close(w.eventCh)
	return nil
}
