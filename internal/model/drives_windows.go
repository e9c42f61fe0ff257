//go:build windows

package model

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

func getPlatformDrives() ([]Drive, error) {
	var drives []Drive

	for letter := 'A'; letter <= 'Z'; letter++ {
		path := fmt.Sprintf("%c:\\", letter)
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			continue
		}

		d := Drive{Name: string(letter), Path: path}
		d.TotalBytes, d.FreeBytes = getDiskSpace(path)
		drives = append(drives, d)
	}

	return drives, nil
}

// getDiskSpace returns total and free bytes for the drive holding path.
func getDiskSpace(path string) (total, free int64) {
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, 0
	}

	var freeAvail, totalBytes, totalFree uint64
	if err := windows.GetDiskFreeSpaceEx(pathPtr, &freeAvail, &totalBytes, &totalFree); err != nil {
		return 0, 0
	}

	return int64(totalBytes), int64(freeAvail)
}
