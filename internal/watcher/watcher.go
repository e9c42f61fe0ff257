// Package watcher reports filesystem deletions under a scanned root so the
// result set can be reconciled with changes made outside the app.
package watcher

// EventType represents the type of filesystem event
type EventType int

const (
	EventDeleted EventType = iota
	EventCreated
	EventModified
)

// Event represents a filesystem change event
type Event struct {
	Type EventType
	Path string
}
