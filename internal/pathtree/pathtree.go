// Package pathtree provides a typed nested tree addressed by key paths.
//
// A node's children are either named (a mapping that remembers insertion
// order) or indexed (a sequence). The first key used on a node fixes which;
// Set creates missing intermediate nodes along the way.
//
// Get after a successful Set at the same path returns the stored value.
// Set fails with ErrKeyKind, leaving the value unstored, when a key's kind
// conflicts with an existing node: an index on a mapping or a name on a
// sequence.
package pathtree

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrEmptyPath is returned by Set when no key is given.
	ErrEmptyPath = errors.New("empty path")
	// ErrKeyKind is returned when a name is used on a sequence or an index on a mapping.
	ErrKeyKind = errors.New("key kind does not match node")
	// ErrNegativeIndex is returned by Set for an index below zero.
	ErrNegativeIndex = errors.New("negative index")
)

// Key addresses one child: a name in a mapping or an index in a sequence.
type Key struct {
	name    string
	index   int
	isIndex bool
}

// Name returns a mapping key.
func Name(name string) Key { return Key{name: name} }

// Index returns a sequence key.
func Index(i int) Key { return Key{index: i, isIndex: true} }

// IsIndex reports whether k addresses a sequence element.
func (k Key) IsIndex() bool { return k.isIndex }

// Name returns the mapping key, or "" for an index.
func (k Key) Name() string { return k.name }

// Index returns the sequence position, or -1 for a name.
func (k Key) Index() int {
	if !k.isIndex {
		return -1
	}
	return k.index
}

func (k Key) String() string {
	if k.isIndex {
		return "[" + strconv.Itoa(k.index) + "]"
	}
	return k.name
}

// Path is an ordered list of keys from a root to a node.
type Path []Key

// Names builds a path made only of mapping keys.
func Names(names ...string) Path {
	path := make(Path, 0, len(names))
	for _, name := range names {
		path = append(path, Name(name))
	}
	return path
}

func (p Path) String() string {
	parts := make([]string, 0, len(p))
	for _, key := range p {
		parts = append(parts, key.String())
	}
	return strings.Join(parts, "/")
}

type nodeKind int

const (
	kindUnset nodeKind = iota
	kindMapping
	kindSequence
)

// Tree is a node holding an optional value and named or indexed children.
// The zero value is an empty node ready to use.
type Tree[V any] struct {
	value    V
	hasValue bool
	kind     nodeKind
	names    []string
	named    map[string]*Tree[V]
	indexed  []*Tree[V]
}

// New returns an empty root.
func New[V any]() *Tree[V] {
	return &Tree[V]{}
}

// Value returns the value stored on t itself.
func (t *Tree[V]) Value() (V, bool) {
	return t.value, t.hasValue
}

// Get returns the value at path, or def as soon as a key along path is absent.
// An empty path addresses t itself. Get never modifies t.
func (t *Tree[V]) Get(path Path, def V) V {
	if v, ok := t.Lookup(path); ok {
		return v
	}
	return def
}

// Lookup is Get that reports presence instead of taking a default.
func (t *Tree[V]) Lookup(path Path) (V, bool) {
	node := t.Node(path)
	if node == nil || !node.hasValue {
		var zero V
		return zero, false
	}
	return node.value, true
}

// Node returns the subtree at path, or nil when a key is absent.
func (t *Tree[V]) Node(path Path) *Tree[V] {
	node := t
	for _, key := range path {
		node = node.Child(key)
		if node == nil {
			return nil
		}
	}
	return node
}

// Child returns the direct child addressed by key, or nil.
func (t *Tree[V]) Child(key Key) *Tree[V] {
	if key.isIndex {
		if t.kind != kindSequence || key.index < 0 || key.index >= len(t.indexed) {
			return nil
		}
		return t.indexed[key.index]
	}
	if t.kind != kindMapping {
		return nil
	}
	return t.named[key.name]
}

// Keys lists t's children in order: insertion order for names, position for indexes.
// Unset sequence slots are skipped.
func (t *Tree[V]) Keys() []Key {
	switch t.kind {
	case kindMapping:
		keys := make([]Key, 0, len(t.names))
		for _, name := range t.names {
			keys = append(keys, Name(name))
		}
		return keys
	case kindSequence:
		keys := make([]Key, 0, len(t.indexed))
		for i, child := range t.indexed {
			if child != nil {
				keys = append(keys, Index(i))
			}
		}
		return keys
	default:
		return nil
	}
}

// Set stores v at path, creating each missing intermediate node as a mapping,
// or as a sequence when the key after it is an index. Children of an existing
// node at path are kept. Set modifies t in place and returns it.
func (t *Tree[V]) Set(path Path, v V) (*Tree[V], error) {
	if len(path) == 0 {
		return t, ErrEmptyPath
	}

	node := t
	for i, key := range path {
		child, err := node.ensureChild(key)
		if err != nil {
			return t, fmt.Errorf("set %s at %s: %w", path, path[:i+1], err)
		}
		node = child
	}
	node.value = v
	node.hasValue = true
	return t, nil
}

// Walk visits every node holding a value, parents before children, in Keys order.
// Returning an error from fn stops the walk.
func (t *Tree[V]) Walk(fn func(path Path, v V) error) error {
	return t.walk(nil, fn)
}

func (t *Tree[V]) walk(prefix Path, fn func(path Path, v V) error) error {
	if t.hasValue {
		if err := fn(prefix, t.value); err != nil {
			return err
		}
	}
	for _, key := range t.Keys() {
		childPath := append(append(Path(nil), prefix...), key)
		if err := t.Child(key).walk(childPath, fn); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tree[V]) ensureChild(key Key) (*Tree[V], error) {
	want := kindMapping
	if key.isIndex {
		want = kindSequence
	}
	if t.kind == kindUnset {
		t.kind = want
	}
	if t.kind != want {
		return nil, ErrKeyKind
	}

	if key.isIndex {
		if key.index < 0 {
			return nil, ErrNegativeIndex
		}
		for len(t.indexed) <= key.index {
			t.indexed = append(t.indexed, nil)
		}
		if t.indexed[key.index] == nil {
			t.indexed[key.index] = &Tree[V]{}
		}
		return t.indexed[key.index], nil
	}

	if t.named == nil {
		t.named = map[string]*Tree[V]{}
	}
	child, ok := t.named[key.name]
	if !ok {
		child = &Tree[V]{}
		t.named[key.name] = child
		t.names = append(t.names, key.name)
	}
	return child, nil
}
