//go:build !darwin && !windows

package trash

import (
	"os"
	"path/filepath"
)

// platformTrash follows the freedesktop.org trash spec: files and info
// directories under $XDG_DATA_HOME/Trash.
func platformTrash() (*Trash, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	root := filepath.Join(dataHome, "Trash")
	return &Trash{
		filesDir: filepath.Join(root, "files"),
		infoDir:  filepath.Join(root, "info"),
	}, nil
}
