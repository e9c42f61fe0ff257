package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/lumipallolabs/dirscope/internal/category"
	"github.com/lumipallolabs/dirscope/internal/model"
	"github.com/lumipallolabs/dirscope/internal/scan"
	"github.com/lumipallolabs/dirscope/internal/summary"
)

func sampleResult() *summary.Result {
	return &summary.Result{
		Root:       "/data",
		Files:      3,
		Dirs:       1,
		TotalBytes: 1300,
		Categories: map[category.Category]scan.CategoryTotal{
			category.Video:  {Bytes: 1000, Count: 1},
			category.Images: {Bytes: 200, Count: 1},
			category.Code:   {Bytes: 100, Count: 1},
		},
		TopFiles: []model.Item{
			{Path: "/data/a.mp4", Name: "a.mp4", Size: 1000},
		},
		Elapsed: 42 * time.Millisecond,
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	writeTable(&buf, sampleResult())
	out := buf.String()

	for _, want := range []string{"/data", "Video", "/data/a.mp4", "1.0 kB"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}

	// Largest category first.
	if strings.Index(out, "Video") > strings.Index(out, "Images") {
		t.Error("categories not ordered by size")
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, sampleResult()); err != nil {
		t.Fatalf("writeJSON failed: %v", err)
	}

	var decoded summaryJSON
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Root != "/data" || decoded.TotalBytes != 1300 {
		t.Errorf("decoded = %+v", decoded)
	}
	if len(decoded.Categories) != 3 || decoded.Categories[0].Category != "Video" {
		t.Errorf("categories = %+v, want Video first", decoded.Categories)
	}
	if len(decoded.TopFiles) != 1 || decoded.TopFiles[0].Bytes != 1000 {
		t.Errorf("top files = %+v", decoded.TopFiles)
	}
}

func TestExecuteVersion(t *testing.T) {
	if code := Execute([]string{"--version"}); code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
}

func TestExecuteBadMinSize(t *testing.T) {
	if code := Execute([]string{"--min-size", "banana"}); code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
}

func TestExecuteBadFlag(t *testing.T) {
	if code := Execute([]string{"--no-such-flag"}); code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
}
