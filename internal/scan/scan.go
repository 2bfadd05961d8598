// Package scan walks a directory tree once and sorts every file it finds
// into a category bucket. Scanning never modifies the filesystem.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vmunix/cleanfolder/internal/category"
	"github.com/vmunix/cleanfolder/pkg/filename"
)

// Result is the snapshot produced by one Scan.
type Result struct {
	Root string

	// Buckets holds absolute file paths per category, in walk order.
	Buckets map[category.Category][]string

	// Known and Unknown are uppercase extensions seen during the walk.
	// Files without an extension contribute to neither.
	Known   map[string]struct{}
	Unknown map[string]struct{}

	// Folders are the non-category directories that were descended into.
	Folders []string

	// Skipped are directory symlinks that were not followed.
	Skipped []string
}

func newResult(root string) *Result {
	buckets := make(map[category.Category][]string)
	for _, c := range category.All() {
		buckets[c] = nil
	}
	return &Result{
		Root:    root,
		Buckets: buckets,
		Known:   make(map[string]struct{}),
		Unknown: make(map[string]struct{}),
	}
}

// Files returns the number of files across all buckets.
func (r *Result) Files() int {
	n := 0
	for _, paths := range r.Buckets {
		n += len(paths)
	}
	return n
}

// KnownExtensions returns the known extensions, sorted.
func (r *Result) KnownExtensions() []string { return sortedKeys(r.Known) }

// UnknownExtensions returns the unknown extensions, sorted.
func (r *Result) UnknownExtensions() []string { return sortedKeys(r.Unknown) }

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Scan classifies every file under root.
//
// Rules:
//   - a directory whose name is a category name is skipped entirely, at any
//     depth; those are the output folders of an earlier run
//   - any other directory is recorded in Folders and descended into
//   - symlinks to directories are recorded in Skipped and not followed, so
//     link cycles cannot make the walk loop; other symlinks count as files
//
// Root must be a directory. It is cleaned and made absolute.
func Scan(root string) (*Result, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, abs)
	}

	res := newResult(abs)
	if err := res.walk(abs); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *Result) walk(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read directory %s: %w", dir, err)
	}

	for _, e := range entries {
		path := filepath.Join(dir, e.Name())

		isDir := e.IsDir()
		if e.Type()&os.ModeSymlink != 0 {
			// Stat follows the link; a dangling link is just a file.
			if target, err := os.Stat(path); err == nil && target.IsDir() {
				r.Skipped = append(r.Skipped, path)
				continue
			}
		}

		if isDir {
			if category.IsCategoryName(e.Name()) {
				continue
			}
			r.Folders = append(r.Folders, path)
			if err := r.walk(path); err != nil {
				return err
			}
			continue
		}

		r.add(path, e.Name())
	}
	return nil
}

func (r *Result) add(path, name string) {
	ext := strings.ToUpper(filename.Ext(name))
	c, known := category.Classify(ext)
	r.Buckets[c] = append(r.Buckets[c], path)

	switch {
	case ext == "":
	case known:
		r.Known[ext] = struct{}{}
	default:
		r.Unknown[ext] = struct{}{}
	}
}
