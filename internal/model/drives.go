package model

import "os"

// Drive represents a mounted volume that can serve as a scan root.
type Drive struct {
	Name       string // volume label or drive letter
	Path       string // mount point, e.g. "/" or "C:\\"
	TotalBytes int64
	FreeBytes  int64
}

// UsedBytes returns bytes used on this drive.
func (d Drive) UsedBytes() int64 {
	return d.TotalBytes - d.FreeBytes
}

// UsedPercent returns the percentage of the drive in use.
func (d Drive) UsedPercent() float64 {
	if d.TotalBytes == 0 {
		return 0
	}
	return float64(d.UsedBytes()) / float64(d.TotalBytes) * 100
}

// GetDrives returns the volumes available on this system.
func GetDrives() ([]Drive, error) {
	return getPlatformDrives()
}

// DefaultRoot returns a sensible scan root when none is configured:
// the user's home directory, falling back to the filesystem root.
func DefaultRoot() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return string(os.PathSeparator)
	}
	return home
}
