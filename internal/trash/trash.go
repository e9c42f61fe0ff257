// Package trash moves filesystem objects to the OS recoverable-deletion
// area instead of erasing them.
package trash

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrUnsupported is returned on platforms without a known trash location.
var ErrUnsupported = errors.New("trash is not supported on this platform")

// Trash relocates items into a files directory and, when infoDir is set,
// writes freedesktop-style .trashinfo sidecars so desktop environments can
// restore them.
type Trash struct {
	filesDir string
	infoDir  string
}

// New returns the trash for the current platform.
func New() (*Trash, error) {
	return platformTrash()
}

// NewAt returns a trash rooted at dir, with freedesktop files/info layout.
// Used by tests and custom setups.
func NewAt(dir string) *Trash {
	return &Trash{
		filesDir: filepath.Join(dir, "files"),
		infoDir:  filepath.Join(dir, "info"),
	}
}

// Move relocates src into the trash. Name collisions get a numeric suffix
// (report.pdf, report_1.pdf, ...). The move is a rename, so src must live
// on the same filesystem as the trash directory.
func (t *Trash) Move(src string) error {
	if err := os.MkdirAll(t.filesDir, 0755); err != nil {
		return fmt.Errorf("creating trash dir: %w", err)
	}

	dest := t.freeName(filepath.Base(src))
	if err := os.Rename(src, dest); err != nil {
		return fmt.Errorf("moving to trash: %w", err)
	}

	if t.infoDir != "" {
		if err := t.writeInfo(src, dest); err != nil {
			// The item is already in the trash; a missing sidecar only
			// loses restore metadata.
			return nil
		}
	}
	return nil
}

// freeName returns a destination path in filesDir that does not exist yet.
func (t *Trash) freeName(base string) string {
	dest := filepath.Join(t.filesDir, base)
	if _, err := os.Lstat(dest); err != nil {
		return dest
	}

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for n := 1; ; n++ {
		dest = filepath.Join(t.filesDir, fmt.Sprintf("%s_%d%s", stem, n, ext))
		if _, err := os.Lstat(dest); err != nil {
			return dest
		}
	}
}

func (t *Trash) writeInfo(src, dest string) error {
	if err := os.MkdirAll(t.infoDir, 0755); err != nil {
		return err
	}
	info := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		src, time.Now().Format("2006-01-02T15:04:05"))
	name := filepath.Base(dest) + ".trashinfo"
	return os.WriteFile(filepath.Join(t.infoDir, name), []byte(info), 0644)
}
