package fs

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Slug derives a document slug from a file name by stripping its extension.
func Slug(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DirSegments returns the directory components of dir relative to root.
// The root itself yields no segments.
func DirSegments(root, dir string) ([]string, error) {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s relative to %s: %w", dir, root, err)
	}
	rel = filepath.ToSlash(rel)
	if rel == "." {
		return nil, nil
	}
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return nil, fmt.Errorf("%s is outside %s", dir, root)
	}

	segments := make([]string, 0, strings.Count(rel, "/")+1)
	for _, segment := range strings.Split(rel, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments, nil
}
