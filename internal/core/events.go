package core

import (
	"github.com/lumipallolabs/dirscope/internal/cache"
	"github.com/lumipallolabs/dirscope/internal/model"
	"github.com/lumipallolabs/dirscope/internal/scan"
)

// Event represents a state change from the controller
type Event interface {
	isEvent()
}

// ScanStartedEvent is emitted when a scan begins
type ScanStartedEvent struct {
	Root     string
	MaxDepth int
}

func (ScanStartedEvent) isEvent() {}

// ScanProgressEvent carries an intermediate snapshot. Each snapshot's item
// list extends the previous one in discovery order.
type ScanProgressEvent struct {
	Snapshot *scan.Snapshot
}

func (ScanProgressEvent) isEvent() {}

// ScanCompletedEvent is emitted exactly once per scan, whether it finished,
// was cancelled, or failed on an invalid root. Deltas compare the completed
// scan against the previous cached scan of the same root, when one exists.
type ScanCompletedEvent struct {
	Snapshot   *scan.Snapshot
	Deltas     []cache.CategoryDelta
	TotalDelta int64
}

func (ScanCompletedEvent) isEvent() {}

// DriveChangedEvent is emitted when the active drive changes
type DriveChangedEvent struct {
	Drive *model.Drive
	Index int
}

func (DriveChangedEvent) isEvent() {}

// ItemDeletedEvent is emitted after a successful user-requested deletion.
type ItemDeletedEvent struct {
	Path          string
	Size          int64
	SessionFreed  int64
	LifetimeFreed int64
}

func (ItemDeletedEvent) isEvent() {}

// ExternalDeletionEvent is emitted when the filesystem watcher observes a
// deletion that did not go through the controller.
type ExternalDeletionEvent struct {
	Path          string
	Size          int64
	SessionFreed  int64
	LifetimeFreed int64
}

func (ExternalDeletionEvent) isEvent() {}

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Err error
}

func (ErrorEvent) isEvent() {}
