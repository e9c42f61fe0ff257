//go:build darwin

package model

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

func getPlatformDrives() ([]Drive, error) {
	root := Drive{Name: "Macintosh HD", Path: "/"}
	root.TotalBytes, root.FreeBytes = getDiskSpace("/")
	drives := []Drive{root}

	// Mounted external volumes live under /Volumes.
	entries, err := os.ReadDir("/Volumes")
	if err != nil {
		return drives, nil
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		path := filepath.Join("/Volumes", entry.Name())

		var stat unix.Statfs_t
		if err := unix.Statfs(path, &stat); err != nil {
			continue
		}
		if isFilteredFilesystem(unix.ByteSliceToString(stat.Fstypename[:])) {
			continue
		}

		d := Drive{Name: entry.Name(), Path: path}
		d.TotalBytes, d.FreeBytes = getDiskSpace(path)
		if d.TotalBytes > 0 {
			drives = append(drives, d)
		}
	}

	return drives, nil
}

// getDiskSpace returns total and free bytes for the filesystem holding path.
func getDiskSpace(path string) (total, free int64) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, 0
	}
	total = int64(stat.Blocks) * int64(stat.Bsize)
	free = int64(stat.Bavail) * int64(stat.Bsize)
	return total, free
}

// isFilteredFilesystem filters out network and pseudo filesystems.
func isFilteredFilesystem(fsType string) bool {
	switch fsType {
	case "smbfs", "nfs", "afpfs", "webdav", "cifs",
		"devfs", "autofs", "mtmfs", "nullfs":
		return true
	}
	return false
}
