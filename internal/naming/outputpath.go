package naming

import (
	"fmt"
	"path/filepath"
	"strings"
)

// noExtension is used in place of an extension for files that have none.
const noExtension = "unknown"

// Extension returns path's extension lower-cased and without the dot, or
// "unknown" when there is none.
func Extension(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return noExtension
	}
	return strings.ToLower(ext)
}

// candidateName joins stem and ext: "Dune - Herbert (1965)" + "epub".
func candidateName(stem, ext string) string {
	return stem + "." + ext
}

// disambiguated appends the collision suffix: "Dune" + 42 → "Dune 0042".
func disambiguated(stem string, token int) string {
	return fmt.Sprintf("%s %04d", stem, token)
}

// GetOutputPath builds the destination for source: same parent directory,
// stem plus the given extension.
//
//	GetOutputPath("books/old.EPUB", "Dune", "epub") → "books/Dune.epub"
func GetOutputPath(source, stem, ext string) string {
	return filepath.Join(filepath.Dir(source), candidateName(stem, ext))
}
