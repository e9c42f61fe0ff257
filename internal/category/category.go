// Package category classifies file names into a fixed set of storage categories.
package category

import "strings"

// Category is one of the fixed storage categories files are grouped under.
type Category string

const (
	Video     Category = "Video"
	Images    Category = "Images"
	PDF       Category = "PDF"
	Documents Category = "Documents"
	Archives  Category = "Archives"
	Audio     Category = "Audio"
	Code      Category = "Code"
	Other     Category = "Other"

	// Folder is a pseudo-category for directories. It is never returned by
	// Categorize and never counted into category totals.
	Folder Category = "Folder"
)

// All lists the real categories in display order.
var All = []Category{Video, Images, PDF, Documents, Archives, Audio, Code, Other}

var byExtension = map[string]Category{}

func init() {
	table := map[Category][]string{
		Video:     {"mp4", "avi", "mkv", "mov", "wmv", "webm", "flv", "m4v", "mpg", "mpeg"},
		Images:    {"jpg", "jpeg", "png", "gif", "bmp", "svg", "webp", "ico", "tiff", "raw", "heic"},
		PDF:       {"pdf"},
		Documents: {"doc", "docx", "txt", "odt", "rtf", "tex", "wpd", "pages"},
		Archives:  {"zip", "tar", "gz", "bz2", "7z", "rar", "xz", "tgz", "deb", "rpm"},
		Audio:     {"mp3", "wav", "flac", "aac", "ogg", "m4a", "wma", "opus"},
		Code:      {"py", "js", "java", "cpp", "c", "h", "sh", "rb", "go", "rs", "php", "html", "css"},
	}
	for cat, exts := range table {
		for _, ext := range exts {
			byExtension[ext] = cat
		}
	}
}

// Categorize maps a file name to its category based on the extension.
// Matching is case-insensitive; names without an extension and unknown
// extensions map to Other.
func Categorize(name string) Category {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 || idx == len(name)-1 {
		return Other
	}
	if cat, ok := byExtension[strings.ToLower(name[idx+1:])]; ok {
		return cat
	}
	return Other
}
