// Package fsutil locates graph documents on disk for the application layer.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// documentExt is the extension the serializer's HCL documents carry.
const documentExt = ".hcl"

// FindGraphDocuments returns the graph documents under root in sorted
// order. A root naming a document directly yields just that document;
// a directory is walked recursively for .hcl files.
func FindGraphDocuments(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if filepath.Ext(root) != documentExt {
			return nil, fmt.Errorf("%s is not a %s graph document", root, documentExt)
		}
		return []string{root}, nil
	}

	var docs []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == documentExt {
			docs = append(docs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(docs)
	return docs, nil
}
