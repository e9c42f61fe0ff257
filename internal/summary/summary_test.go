package summary

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/lumipallolabs/dirscope/internal/category"
	"github.com/lumipallolabs/dirscope/internal/scan"
)

func buildTree(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	write := func(path string, size int) {
		t.Helper()
		if err := os.WriteFile(path, bytes.Repeat([]byte{'x'}, size), 0644); err != nil {
			t.Fatal(err)
		}
	}
	write(filepath.Join(tmp, "a.mp4"), 1000)
	write(filepath.Join(tmp, "b.jpg"), 200)
	if err := os.MkdirAll(filepath.Join(tmp, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	write(filepath.Join(tmp, "sub", "c.txt"), 100)
	return tmp
}

func TestRun(t *testing.T) {
	root := buildTree(t)

	res, err := Run(context.Background(), Options{Path: root, MaxDepth: scan.DepthUnlimited}, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.Files != 3 || res.Dirs != 1 {
		t.Errorf("files=%d dirs=%d, want 3 and 1", res.Files, res.Dirs)
	}
	if res.TotalBytes != 1300 {
		t.Errorf("total = %d, want 1300", res.TotalBytes)
	}
	if got := res.Categories[category.Video]; got.Bytes != 1000 || got.Count != 1 {
		t.Errorf("video = %+v", got)
	}
	if len(res.TopFiles) == 0 || res.TopFiles[0].Name != "a.mp4" {
		t.Errorf("top files = %+v, want a.mp4 first", res.TopFiles)
	}
}

func TestRunDepthZero(t *testing.T) {
	root := buildTree(t)

	res, err := Run(context.Background(), Options{Path: root, MaxDepth: 0}, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.TotalBytes != 1200 {
		t.Errorf("total = %d, want 1200 (sub unexplored)", res.TotalBytes)
	}
	if res.Files != 2 {
		t.Errorf("files = %d, want 2", res.Files)
	}
}

func TestRunMinSize(t *testing.T) {
	root := buildTree(t)

	res, err := Run(context.Background(),
		Options{Path: root, MaxDepth: scan.DepthUnlimited, MinSize: 500}, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.Files != 1 || res.TotalBytes != 1000 {
		t.Errorf("files=%d total=%d, want only a.mp4 counted", res.Files, res.TotalBytes)
	}
}

func TestRunRejectsBadPath(t *testing.T) {
	if _, err := Run(context.Background(),
		Options{Path: filepath.Join(t.TempDir(), "missing")}, nil); err == nil {
		t.Error("expected error for missing path")
	}
}
