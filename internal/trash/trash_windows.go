//go:build windows

package trash

// The Windows Recycle Bin needs shell COM interop; until that lands,
// deletes are refused rather than made permanent.
func platformTrash() (*Trash, error) {
	return nil, ErrUnsupported
}
