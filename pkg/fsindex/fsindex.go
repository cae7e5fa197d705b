// Package fsindex resolves scene-file asset paths case-insensitively
// against a scene's working directory, so scenes authored on
// case-insensitive file systems stay portable (spec §6 "file-system
// mapping").
package fsindex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Index maps a lower-cased, separator-normalised relative path to the
// real on-disk path it was found at.
type Index struct {
	root    string
	entries map[string]string
}

// Build walks every regular file under root and indexes it by its
// lower-cased, slash-normalised path relative to root.
func Build(root string) (*Index, error) {
	idx := &Index{root: root, entries: make(map[string]string)}

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		idx.entries[normalizeKey(rel)] = path
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fsindex: walk %s: %w", root, err)
	}
	return idx, nil
}

// Resolve maps an incoming path (relative or absolute, any case or
// separator style) to the real file it names. Absolute paths are
// relativized against the index root first.
func (idx *Index) Resolve(path string) (string, bool) {
	if filepath.IsAbs(path) {
		if rel, err := filepath.Rel(idx.root, path); err == nil {
			path = rel
		}
	}
	real, ok := idx.entries[normalizeKey(path)]
	return real, ok
}

func normalizeKey(path string) string {
	path = filepath.ToSlash(path)
	return strings.ToLower(path)
}
