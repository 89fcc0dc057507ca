package content

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rgonek/content-indexer/internal/fs"
)

// IndexCollection projects every entry directly inside dir and returns the
// items newest first. Dates compare as normalized text; items without a
// date come last and ties keep directory order.
func IndexCollection(dir string, fields []string, parser *fs.Parser) ([]Item, error) {
	paths, err := fs.ListFiles(dir)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(paths))
	for _, path := range paths {
		item, err := ReadItem(path, fields, parser)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	SortByDate(items)
	return items, nil
}

// ReadItem parses the document at path and projects fields from it.
func ReadItem(path string, fields []string, parser *fs.Parser) (Item, error) {
	doc, err := parser.ReadDocument(path)
	if err != nil {
		return Item{}, err
	}
	return Project(fs.Slug(path), doc, fields), nil
}

// FindItem projects the entry of dir whose slug matches, whatever its extension.
func FindItem(dir, slug string, fields []string, parser *fs.Parser) (Item, error) {
	paths, err := fs.ListFiles(dir)
	if err != nil {
		return Item{}, err
	}
	for _, path := range paths {
		if fs.Slug(path) == slug {
			return ReadItem(path, fields, parser)
		}
	}
	return Item{}, &fs.FileSystemError{Op: "find", Path: filepath.Join(dir, slug), Err: os.ErrNotExist}
}

// SortByDate orders items newest first, stably.
func SortByDate(items []Item) {
	slices.SortStableFunc(items, func(a, b Item) int {
		return strings.Compare(b.sortKey, a.sortKey)
	})
}
