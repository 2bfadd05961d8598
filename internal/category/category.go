// Package category holds the fixed extension table that decides which
// folder a file belongs in.
package category

import (
	"slices"
	"strings"
)

// Category is the name of a top-level folder under the organized root.
type Category string

const (
	Images    Category = "images"
	Video     Category = "video"
	Documents Category = "documents"
	Audio     Category = "audio"
	Archives  Category = "archives"
	Other     Category = "other"
)

// order is the processing and reporting order.
var order = []Category{Images, Video, Documents, Audio, Archives, Other}

// table lists the recognised uppercase extensions per category.
// Other has none: it is the catch-all.
var table = map[Category][]string{
	Images:    {"JPEG", "PNG", "JPG", "SVG"},
	Video:     {"AVI", "MP4", "MOV", "MKV"},
	Documents: {"DOC", "DOCX", "TXT", "PDF", "XLSX", "PPTX"},
	Audio:     {"MP3", "OGG", "WAV", "AMR"},
	Archives:  {"ZIP", "GZ", "TAR"},
}

var byExtension = invert(table)

func invert(t map[Category][]string) map[string]Category {
	m := make(map[string]Category)
	for c, exts := range t {
		for _, ext := range exts {
			if prev, dup := m[ext]; dup {
				panic("category: extension " + ext + " in both " + string(prev) + " and " + string(c))
			}
			m[ext] = c
		}
	}
	return m
}

// All returns every category in processing order.
func All() []Category {
	return slices.Clone(order)
}

// Extensions returns the recognised extensions of c in table order.
func Extensions(c Category) []string {
	return slices.Clone(table[c])
}

// Classify maps a file extension (without the dot, any case) to its category.
// The boolean is false when a non-empty extension is not in the table; such
// files belong in Other and the caller records the extension as unknown.
// An empty extension is Other and counts as known.
func Classify(ext string) (Category, bool) {
	if ext == "" {
		return Other, true
	}
	c, ok := byExtension[strings.ToUpper(ext)]
	if !ok {
		return Other, false
	}
	return c, true
}

// IsCategoryName reports whether a directory called name is one of the
// category folders. The scanner never descends into such directories, which
// is what makes a second run over an organized tree a no-op.
func IsCategoryName(name string) bool {
	return slices.Contains(order, Category(name))
}

// TrimArchiveExt strips one trailing recognised archive extension
// (case-insensitive) from name: "data.ZIP" -> "data", "a.tar.gz" -> "a.tar".
func TrimArchiveExt(name string) string {
	lower := strings.ToLower(name)
	for _, ext := range table[Archives] {
		suffix := "." + strings.ToLower(ext)
		if strings.HasSuffix(lower, suffix) && len(name) > len(suffix) {
			return name[:len(name)-len(suffix)]
		}
	}
	return name
}

// AllExtensions returns every recognised extension in category order.
func AllExtensions() []string {
	var exts []string
	for _, c := range order {
		exts = append(exts, table[c]...)
	}
	return exts
}
