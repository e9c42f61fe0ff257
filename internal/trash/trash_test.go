package trash

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMove(t *testing.T) {
	tmp := t.TempDir()
	tr := NewAt(filepath.Join(tmp, "trash"))

	src := filepath.Join(tmp, "doc.txt")
	if err := os.WriteFile(src, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := tr.Move(src); err != nil {
		t.Fatalf("Move failed: %v", err)
	}

	if _, err := os.Lstat(src); !os.IsNotExist(err) {
		t.Error("source still exists after move")
	}

	moved := filepath.Join(tmp, "trash", "files", "doc.txt")
	data, err := os.ReadFile(moved)
	if err != nil {
		t.Fatalf("moved file unreadable: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("moved content = %q", data)
	}

	info, err := os.ReadFile(filepath.Join(tmp, "trash", "info", "doc.txt.trashinfo"))
	if err != nil {
		t.Fatalf("trashinfo missing: %v", err)
	}
	if !strings.Contains(string(info), "Path="+src) {
		t.Errorf("trashinfo lacks original path: %q", info)
	}
}

func TestMoveCollision(t *testing.T) {
	tmp := t.TempDir()
	tr := NewAt(filepath.Join(tmp, "trash"))

	for i := 0; i < 3; i++ {
		src := filepath.Join(tmp, "doc.txt")
		if err := os.WriteFile(src, []byte("v"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := tr.Move(src); err != nil {
			t.Fatalf("move %d failed: %v", i, err)
		}
	}

	for _, name := range []string{"doc.txt", "doc_1.txt", "doc_2.txt"} {
		if _, err := os.Lstat(filepath.Join(tmp, "trash", "files", name)); err != nil {
			t.Errorf("expected %s in trash: %v", name, err)
		}
	}
}

func TestMoveDirectory(t *testing.T) {
	tmp := t.TempDir()
	tr := NewAt(filepath.Join(tmp, "trash"))

	src := filepath.Join(tmp, "bundle")
	if err := os.MkdirAll(src, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "inner.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := tr.Move(src); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmp, "trash", "files", "bundle", "inner.txt")); err != nil {
		t.Errorf("directory contents lost: %v", err)
	}
}

func TestMoveMissingSource(t *testing.T) {
	tmp := t.TempDir()
	tr := NewAt(filepath.Join(tmp, "trash"))

	if err := tr.Move(filepath.Join(tmp, "gone.txt")); err == nil {
		t.Error("expected error for missing source")
	}
}
