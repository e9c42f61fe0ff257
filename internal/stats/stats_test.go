package stats

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/lumipallolabs/dirscope/internal/scan"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	return &Manager{
		path:         filepath.Join(t.TempDir(), "stats.json"),
		saveDuration: 10 * time.Millisecond,
	}
}

func TestLoadFreshDefaults(t *testing.T) {
	m := testManager(t)
	if err := m.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.DepthLimit() != scan.DepthUnlimited {
		t.Errorf("fresh depth limit = %d, want unlimited", m.DepthLimit())
	}
	if m.FreedLifetime() != 0 {
		t.Errorf("fresh freed = %d, want 0", m.FreedLifetime())
	}
}

func TestRoundTrip(t *testing.T) {
	m := testManager(t)
	if err := m.Load(); err != nil {
		t.Fatal(err)
	}

	m.AddFreed(4096)
	m.SetDefaultRoot("/data")
	m.SetDepthLimit(5)
	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	again := &Manager{path: m.path, saveDuration: time.Second}
	if err := again.Load(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if again.FreedLifetime() != 4096 {
		t.Errorf("freed = %d, want 4096", again.FreedLifetime())
	}
	if again.DefaultRoot() != "/data" {
		t.Errorf("root = %q, want /data", again.DefaultRoot())
	}
	if again.DepthLimit() != 5 {
		t.Errorf("depth = %d, want 5", again.DepthLimit())
	}
}

func TestCloseWithoutChangesIsNoop(t *testing.T) {
	m := testManager(t)
	if err := m.Load(); err != nil {
		t.Fatal(err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}
