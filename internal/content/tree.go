package content

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/rgonek/content-indexer/internal/fs"
	"github.com/rgonek/content-indexer/internal/logging"
	"github.com/rgonek/content-indexer/internal/pathtree"
)

// DefaultIndexName is the document that gives a directory its title.
const DefaultIndexName = "_index.md"

// ErrMissingIndex marks a directory that needs an index document but has none.
var ErrMissingIndex = errors.New("missing index document")

// Page summarizes one document inside a directory node.
type Page struct {
	Title  string `json:"title" yaml:"title"`
	Base   string `json:"base" yaml:"base"`
	Slug   string `json:"slug" yaml:"slug"`
	Weight int    `json:"weight" yaml:"weight"`
}

// DirectoryNode is one directory of a hierarchical collection.
type DirectoryNode struct {
	Title    string                    `json:"title" yaml:"title"`
	Pages    []Page                    `json:"pages" yaml:"pages"`
	Children map[string]*DirectoryNode `json:"children" yaml:"children"`
}

func newDirectoryNode(title string) *DirectoryNode {
	return &DirectoryNode{
		Title:    title,
		Pages:    []Page{},
		Children: map[string]*DirectoryNode{},
	}
}

// Node returns the descendant reached through the named child directories, or nil.
func (n *DirectoryNode) Node(path ...string) *DirectoryNode {
	node := n
	for _, name := range path {
		if node == nil {
			return nil
		}
		node = node.Children[name]
	}
	return node
}

// ChildNames returns the child directory names in sorted order.
func (n *DirectoryNode) ChildNames() []string {
	names := make([]string, 0, len(n.Children))
	for name := range n.Children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TreeOptions configures BuildTree.
type TreeOptions struct {
	// IndexName defaults to DefaultIndexName.
	IndexName string
	Parser    *fs.Parser
	Logger    logging.Logger
}

// BuildTree indexes the directory hierarchy under root.
//
// Every directory holding an index document becomes a node titled after it,
// whether or not it holds other files; its parent must have a node too.
// Every other file becomes a Page on its directory's node, and pages are
// ordered by ascending weight with ties in scan order. The returned node is
// root itself: it needs an index document only when it holds pages.
func BuildTree(root string, opts TreeOptions) (*DirectoryNode, error) {
	if opts.IndexName == "" {
		opts.IndexName = DefaultIndexName
	}
	if opts.Parser == nil {
		opts.Parser = fs.NewParser(fs.TOML)
	}
	logger := logging.OrNop(opts.Logger).With(logging.String("root", root))

	files, err := fs.ScanFiles(root)
	if err != nil {
		return nil, err
	}

	type located struct {
		path     string
		segments []string
	}
	var indexes, pages []located
	for _, file := range files {
		segments, err := fs.DirSegments(root, filepath.Dir(file))
		if err != nil {
			return nil, err
		}
		entry := located{path: file, segments: segments}
		if filepath.Base(file) == opts.IndexName {
			indexes = append(indexes, entry)
		} else {
			pages = append(pages, entry)
		}
	}

	// Shallow index documents first so parents are registered before children.
	slices.SortStableFunc(indexes, func(a, b located) int {
		return cmp.Compare(len(a.segments), len(b.segments))
	})

	rootNode := newDirectoryNode("")
	rootIndexed := false
	nodes := pathtree.New[*DirectoryNode]()
	nodeAt := func(segments []string) (*DirectoryNode, bool) {
		if len(segments) == 0 {
			return rootNode, true
		}
		return nodes.Lookup(pathtree.Names(segments...))
	}

	for _, index := range indexes {
		meta, err := opts.Parser.ReadMetadata(index.path)
		if err != nil {
			return nil, err
		}
		if len(index.segments) == 0 {
			rootNode.Title = meta.Title()
			rootIndexed = true
			continue
		}

		parentSegments := index.segments[:len(index.segments)-1]
		parent, ok := nodeAt(parentSegments)
		if !ok {
			return nil, missingIndex(root, parentSegments, opts.IndexName)
		}
		node := newDirectoryNode(meta.Title())
		if _, err := nodes.Set(pathtree.Names(index.segments...), node); err != nil {
			return nil, fmt.Errorf("register %s: %w", index.path, err)
		}
		parent.Children[index.segments[len(index.segments)-1]] = node
		logger.Debug("registered directory", logging.String("path", index.path), logging.String("title", node.Title))
	}

	for _, page := range pages {
		node, ok := nodeAt(page.segments)
		if !ok || (len(page.segments) == 0 && !rootIndexed) {
			return nil, missingIndex(root, page.segments, opts.IndexName)
		}
		meta, err := opts.Parser.ReadMetadata(page.path)
		if err != nil {
			return nil, err
		}
		node.Pages = append(node.Pages, Page{
			Title:  meta.Title(),
			Base:   filepath.Base(page.path),
			Slug:   fs.Slug(page.path),
			Weight: meta.Weight(),
		})
	}

	sortPages(rootNode)
	directories := 0
	err = nodes.Walk(func(_ pathtree.Path, node *DirectoryNode) error {
		sortPages(node)
		directories++
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("built content tree",
		logging.Int("directories", directories),
		logging.Int("pages", len(pages)),
	)
	return rootNode, nil
}

func sortPages(node *DirectoryNode) {
	slices.SortStableFunc(node.Pages, func(a, b Page) int {
		return cmp.Compare(a.Weight, b.Weight)
	})
}

func missingIndex(root string, segments []string, indexName string) error {
	parts := append([]string{root}, segments...)
	path := filepath.Join(append(parts, indexName)...)
	return &fs.FileSystemError{
		Op:   "read",
		Path: path,
		Err:  fmt.Errorf("%w: %w", ErrMissingIndex, os.ErrNotExist),
	}
}
