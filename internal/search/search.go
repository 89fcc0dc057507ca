// Package search builds an in-memory full-text index over a projected collection.
package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"

	"github.com/rgonek/content-indexer/internal/content"
	"github.com/rgonek/content-indexer/internal/logging"
)

// DefaultLimit caps the number of hits when no limit is given.
const DefaultLimit = 10

// ErrEmptyQuery is returned by Search for a blank query.
var ErrEmptyQuery = errors.New("empty search query")

// Hit is one matching item with its relevance score.
type Hit struct {
	Score float64      `json:"score" yaml:"score"`
	Item  content.Item `json:"item" yaml:"item"`
}

// Index is a throwaway index over one collection. It lives in memory only
// and is rebuilt from the items on every Build.
type Index struct {
	index  bleve.Index
	items  map[string]content.Item
	logger logging.Logger
}

// Build indexes every projected field of items, keyed by slug. Items must
// carry the slug field.
func Build(items []content.Item, logger logging.Logger) (*Index, error) {
	logger = logging.OrNop(logger)

	index, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create search index: %w", err)
	}

	byID := make(map[string]content.Item, len(items))
	batch := index.NewBatch()
	for _, item := range items {
		id := item.Slug()
		if id == "" {
			_ = index.Close()
			return nil, fmt.Errorf("index item %v: missing slug", item)
		}
		if _, dup := byID[id]; dup {
			logger.Warn("duplicate slug skipped", logging.String("slug", id))
			continue
		}
		if err := batch.Index(id, document(item)); err != nil {
			_ = index.Close()
			return nil, fmt.Errorf("index item %s: %w", id, err)
		}
		byID[id] = item
	}
	if err := index.Batch(batch); err != nil {
		_ = index.Close()
		return nil, fmt.Errorf("commit search index: %w", err)
	}

	logger.Debug("built search index", logging.Int("documents", len(byID)))
	return &Index{index: index, items: byID, logger: logger}, nil
}

// Search runs a bleve query-string query, e.g. "launch" or "+title:march",
// and returns at most limit hits, best first.
func (i *Index) Search(query string, limit int) ([]Hit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	req := bleve.NewSearchRequestOptions(bleve.NewQueryStringQuery(query), limit, 0, false)
	res, err := i.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, match := range res.Hits {
		item, ok := i.items[match.ID]
		if !ok {
			continue
		}
		hits = append(hits, Hit{Score: match.Score, Item: item})
	}
	i.logger.Debug("searched collection",
		logging.String("query", query),
		logging.Int("hits", len(hits)),
	)
	return hits, nil
}

// Len returns the number of indexed items.
func (i *Index) Len() int { return len(i.items) }

// Close releases the index.
func (i *Index) Close() error {
	return i.index.Close()
}

func document(item content.Item) map[string]any {
	doc := make(map[string]any, len(item.Fields()))
	for _, name := range item.Fields() {
		value, _ := item.Field(name)
		doc[name] = value.Text()
	}
	return doc
}
