package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
)

// ScanFiles returns every file below root, descending into all directories.
// Directories themselves are not returned. Paths keep root as their prefix
// and come back in lexical walk order.
//
// Symlinks to directories are followed and their files are reported under
// the link's path. A link back into a directory that is still being walked
// is skipped, so link cycles terminate.
func ScanFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, &FileSystemError{Op: "scan", Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &FileSystemError{Op: "scan", Path: root, Err: errors.New("not a directory")}
	}

	var files []string
	if err := scanDir(root, map[string]bool{}, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func scanDir(dir string, active map[string]bool, files *[]string) error {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return &FileSystemError{Op: "scan", Path: dir, Err: err}
	}
	if active[resolved] {
		return nil
	}
	active[resolved] = true
	defer delete(active, resolved)

	// Walk the resolved directory and report paths under dir, since WalkDir
	// does not descend into a root that is itself a link.
	return filepath.WalkDir(resolved, func(walked string, d iofs.DirEntry, err error) error {
		rel, relErr := filepath.Rel(resolved, walked)
		if relErr != nil {
			return &FileSystemError{Op: "scan", Path: walked, Err: relErr}
		}
		path := filepath.Join(dir, rel)
		if err != nil {
			return &FileSystemError{Op: "scan", Path: path, Err: err}
		}
		if d.IsDir() {
			return nil
		}
		if d.Type()&iofs.ModeSymlink != 0 {
			info, err := os.Stat(walked)
			if err != nil {
				return &FileSystemError{Op: "scan", Path: path, Err: err}
			}
			if info.IsDir() {
				return scanDir(path, active, files)
			}
		}
		*files = append(*files, path)
		return nil
	})
}

// ListFiles returns the immediate entries of dir without descending.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &FileSystemError{Op: "list", Path: dir, Err: err}
	}
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}
