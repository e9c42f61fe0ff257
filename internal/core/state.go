package core

import (
	"time"

	"github.com/lumipallolabs/dirscope/internal/model"
	"github.com/lumipallolabs/dirscope/internal/scan"
)

// Phase represents the lifecycle stage of the current scan.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseScanning
	PhaseComplete
)

// String returns a human-readable phase name
func (p Phase) String() string {
	switch p {
	case PhaseScanning:
		return "Scanning files"
	case PhaseComplete:
		return "Complete"
	default:
		return ""
	}
}

// ScanState holds the progress of the current scan.
type ScanState struct {
	Phase        Phase
	Root         string
	MaxDepth     int
	StartTime    time.Time
	FilesScanned int64
	DirsScanned  int64
	BytesFound   int64
}

// IsScanning returns true while a scan is in flight.
func (s ScanState) IsScanning() bool {
	return s.Phase == PhaseScanning
}

// Elapsed returns time since scan started
func (s ScanState) Elapsed() time.Duration {
	if s.StartTime.IsZero() {
		return 0
	}
	return time.Since(s.StartTime).Truncate(time.Second)
}

// FreedState tracks space recovered from deletions.
type FreedState struct {
	Session  int64 // Bytes freed this session
	Lifetime int64 // Bytes freed all time
}

// AppState holds the complete application state (read-only view)
type AppState struct {
	Drives        []model.Drive
	SelectedDrive int
	CustomRoot    string // If scanning a custom path instead of a drive
	Scan          ScanState
	Freed         FreedState
	Snapshot      *scan.Snapshot
}
