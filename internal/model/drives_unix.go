//go:build !windows && !darwin

package model

import (
	"os"

	"golang.org/x/sys/unix"
)

func getPlatformDrives() ([]Drive, error) {
	drives := []Drive{diskDrive("/", "/")}

	if home, err := os.UserHomeDir(); err == nil && home != "" && home != "/" {
		drives = append(drives, diskDrive(home, home))
	}

	return drives, nil
}

func diskDrive(name, path string) Drive {
	d := Drive{Name: name, Path: path}
	d.TotalBytes, d.FreeBytes = getDiskSpace(path)
	return d
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
