//go:build darwin

package trash

import (
	"os"
	"path/filepath"
)

// platformTrash uses ~/.Trash. Finder keeps its own metadata, so no
// sidecar files are written.
func platformTrash() (*Trash, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &Trash{filesDir: filepath.Join(home, ".Trash")}, nil
}
