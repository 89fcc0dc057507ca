package config

import (
	"fmt"
	"strings"
)

// TargetMode indicates whether a TARGET refers to a collection or a single item.
type TargetMode int

const (
	// TargetModeCollection means the target is a collection key.
	TargetModeCollection TargetMode = iota
	// TargetModeItem means the target is KEY/SLUG.
	TargetModeItem
)

// Target is the parsed representation of a [TARGET] argument.
type Target struct {
	Mode       TargetMode
	Collection string
	Slug       string
}

// ParseTarget parses a raw [TARGET] argument.
// Rules:
//   - "KEY"       => collection mode.
//   - "KEY/SLUG"  => item mode; a trailing ".md" on SLUG is dropped.
//   - Empty parts or more than one "/" are rejected.
func ParseTarget(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	key, slug, hasSlug := strings.Cut(raw, "/")
	if key == "" {
		return Target{}, fmt.Errorf("target %q: missing collection key", raw)
	}
	if !hasSlug {
		return Target{Mode: TargetModeCollection, Collection: key}, nil
	}
	slug = strings.TrimSuffix(slug, ".md")
	if slug == "" || strings.Contains(slug, "/") {
		return Target{}, fmt.Errorf("target %q: want KEY or KEY/SLUG", raw)
	}
	return Target{Mode: TargetModeItem, Collection: key, Slug: slug}, nil
}

// IsItem reports whether the target names a single item.
func (t Target) IsItem() bool { return t.Mode == TargetModeItem }

// IsCollection reports whether the target is a whole collection.
func (t Target) IsCollection() bool { return t.Mode == TargetModeCollection }

func (t Target) String() string {
	if t.IsItem() {
		return t.Collection + "/" + t.Slug
	}
	return t.Collection
}
