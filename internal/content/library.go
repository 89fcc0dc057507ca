package content

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rgonek/content-indexer/internal/fs"
	"github.com/rgonek/content-indexer/internal/logging"
)

// ErrUnknownCollection is returned for a collection key with no directory.
var ErrUnknownCollection = errors.New("unknown collection")

// Library resolves collection keys to directories and runs the indexers.
// Every call re-reads the filesystem; nothing is cached between calls.
type Library struct {
	// Collections maps a collection key to its directory.
	Collections map[string]string
	// IndexName defaults to DefaultIndexName.
	IndexName string
	Parser    *fs.Parser
	Logger    logging.Logger
}

// Keys returns the configured collection keys, sorted.
func (l *Library) Keys() []string {
	keys := make([]string, 0, len(l.Collections))
	for key := range l.Collections {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Dir returns the directory for key.
func (l *Library) Dir(key string) (string, error) {
	dir, ok := l.Collections[key]
	if !ok || dir == "" {
		return "", fmt.Errorf("%w %q", ErrUnknownCollection, key)
	}
	return dir, nil
}

// Collection indexes the flat collection key.
func (l *Library) Collection(key string, fields []string) ([]Item, error) {
	dir, err := l.Dir(key)
	if err != nil {
		return nil, err
	}
	items, err := IndexCollection(dir, fields, l.parser())
	if err != nil {
		return nil, fmt.Errorf("index collection %q: %w", key, err)
	}
	l.logger().Info("indexed collection",
		logging.String("collection", key),
		logging.Int("items", len(items)),
	)
	return items, nil
}

// Item projects a single document of collection key.
func (l *Library) Item(key, slug string, fields []string) (Item, error) {
	dir, err := l.Dir(key)
	if err != nil {
		return Item{}, err
	}
	return FindItem(dir, slug, fields, l.parser())
}

// Previous returns the chronologically older neighbour of slug in collection
// key, or nil. The slug field is always projected.
func (l *Library) Previous(slug string, fields []string, key string) (*Item, error) {
	items, err := l.Collection(key, withSlug(fields))
	if err != nil {
		return nil, err
	}
	return Previous(items, slug), nil
}

// Next returns the chronologically newer neighbour of slug in collection key, or nil.
func (l *Library) Next(slug string, fields []string, key string) (*Item, error) {
	items, err := l.Collection(key, withSlug(fields))
	if err != nil {
		return nil, err
	}
	return Next(items, slug), nil
}

// Tree builds the directory hierarchy of collection key.
func (l *Library) Tree(key string) (*DirectoryNode, error) {
	dir, err := l.Dir(key)
	if err != nil {
		return nil, err
	}
	return BuildTree(dir, TreeOptions{
		IndexName: l.IndexName,
		Parser:    l.parser(),
		Logger:    l.logger().With(logging.String("collection", key)),
	})
}

func (l *Library) parser() *fs.Parser {
	if l.Parser == nil {
		return fs.NewParser(fs.TOML)
	}
	return l.Parser
}

func (l *Library) logger() logging.Logger {
	return logging.OrNop(l.Logger)
}

func withSlug(fields []string) []string {
	for _, field := range fields {
		if field == FieldSlug {
			return fields
		}
	}
	return append([]string{FieldSlug}, fields...)
}
