package pipeline

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Supported e-book extensions (lowercase, with leading dot).
var bookExtensions = map[string]bool{
	".pdf":  true,
	".epub": true,
	".mobi": true,
}

// Discover expands inputs into the list of files to process, in argument
// order. Directories are walked recursively for supported extensions
// (hidden directories are pruned) and their files sorted lexicographically.
// Any other argument is kept as-is, so unsupported or missing files are
// reported per file rather than silently dropped. Duplicates are removed.
func Discover(inputs []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, in := range inputs {
		fi, err := os.Stat(in)
		if err != nil || !fi.IsDir() {
			add(in)
			continue
		}
		found, err := walkDir(in)
		if err != nil {
			return nil, err
		}
		for _, p := range found {
			add(p)
		}
	}
	return files, nil
}

func walkDir(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if bookExtensions[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
