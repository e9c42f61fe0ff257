// Package stats persists user preferences and lifetime counters between runs.
package stats

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/lumipallolabs/dirscope/internal/scan"
)

// Stats is the on-disk state.
type Stats struct {
	FreedLifetime int64  `json:"freed_lifetime"`
	DefaultRoot   string `json:"default_root,omitempty"`
	DepthLimit    int    `json:"depth_limit"` // scan.DepthUnlimited when unbounded
}

// Manager handles loading and debounced saving of stats.
type Manager struct {
	path         string
	stats        Stats
	mu           sync.RWMutex
	dirty        bool
	saveTimer    *time.Timer
	saveDuration time.Duration
}

// NewManager creates a manager backed by the default stats file.
func NewManager() *Manager {
	return NewManagerAt(defaultPath())
}

// NewManagerAt creates a manager backed by the given file. Used by tests
// and custom setups.
func NewManagerAt(path string) *Manager {
	return &Manager{
		path:         path,
		saveDuration: 2 * time.Second, // debounce saves
	}
}

func defaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".dirscope-stats.json"
	}
	return filepath.Join(home, ".dirscope", "stats.json")
}

// Load reads stats from disk. A missing file starts fresh.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			m.stats = Stats{DepthLimit: scan.DepthUnlimited}
			return nil
		}
		return err
	}

	m.stats = Stats{DepthLimit: scan.DepthUnlimited}
	return json.Unmarshal(data, &m.stats)
}

// Save writes stats to disk immediately.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveLocked()
}

func (m *Manager) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(m.stats, "", "  ")
	if err != nil {
		return err
	}

	m.dirty = false
	return os.WriteFile(m.path, data, 0644)
}

// FreedLifetime returns the bytes freed across all sessions.
func (m *Manager) FreedLifetime() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats.FreedLifetime
}

// DefaultRoot returns the saved scan root, if any.
func (m *Manager) DefaultRoot() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats.DefaultRoot
}

// DepthLimit returns the saved depth preference.
func (m *Manager) DepthLimit() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats.DepthLimit
}

// SetDefaultRoot saves the scan root preference.
func (m *Manager) SetDefaultRoot(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stats.DefaultRoot == path {
		return
	}
	m.stats.DefaultRoot = path
	m.scheduleSaveLocked()
}

// SetDepthLimit saves the depth preference.
func (m *Manager) SetDepthLimit(depth int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stats.DepthLimit == depth {
		return
	}
	m.stats.DepthLimit = depth
	m.scheduleSaveLocked()
}

// AddFreed adds to the lifetime freed counter.
func (m *Manager) AddFreed(bytes int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stats.FreedLifetime += bytes
	m.scheduleSaveLocked()
}

func (m *Manager) scheduleSaveLocked() {
	m.dirty = true

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.saveTimer = time.AfterFunc(m.saveDuration, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.dirty {
			_ = m.saveLocked() // best effort for background saves
		}
	})
}

// Close flushes any pending save.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveTimer != nil {
		m.saveTimer.Stop()
		m.saveTimer = nil
	}
	if m.dirty {
		return m.saveLocked()
	}
	return nil
}
