// Package model holds the data types shared between the scan engine and its consumers.
package model

import "github.com/lumipallolabs/dirscope/internal/category"

// Kind distinguishes files from directories in the result set.
type Kind int

const (
	KindFile Kind = iota
	KindDir
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	if k == KindDir {
		return "folder"
	}
	return "file"
}

// Item is one filesystem entry discovered during a scan.
// For directories, Size is the sum of all file bytes discovered in the
// subtree so far; it grows while the scan is running.
type Item struct {
	Path     string
	Name     string
	Kind     Kind
	Size     int64
	Category category.Category // set for files; empty for directories
	Depth    int               // distance from the scan root, top-level entries are 0

	// Unreadable marks entries that could not be listed or stat'd.
	// They are recorded with size 0 so totals stay explainable.
	Unreadable bool
}

// IsDir reports whether the item is a directory.
func (i Item) IsDir() bool {
	return i.Kind == KindDir
}

// DisplayCategory returns the category to show in listings, substituting
// the Folder pseudo-category for directories.
func (i Item) DisplayCategory() category.Category {
	if i.IsDir() {
		return category.Folder
	}
	return i.Category
}
