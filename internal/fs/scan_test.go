package fs

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestScanFiles_VisitsEveryFileOnce(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{
		"_index.md",
		"a/_index.md",
		"a/b.md",
		"a/deep/er/c.md",
		"empty-dir-sibling.txt",
	} {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(root, "empty"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := ScanFiles(root)
	if err != nil {
		t.Fatalf("ScanFiles() unexpected error: %v", err)
	}
	if len(files) != 5 {
		t.Fatalf("ScanFiles() returned %d files, want 5: %v", len(files), files)
	}

	seen := map[string]bool{}
	for _, file := range files {
		if seen[file] {
			t.Fatalf("file %s returned twice", file)
		}
		seen[file] = true
		info, err := os.Stat(file)
		if err != nil || info.IsDir() {
			t.Fatalf("ScanFiles() returned a non-file %s", file)
		}
	}
	if !sort.StringsAreSorted(files) {
		t.Fatalf("ScanFiles() should return lexical walk order, got %v", files)
	}
}

func TestScanFiles_MissingRoot(t *testing.T) {
	_, err := ScanFiles(filepath.Join(t.TempDir(), "nope"))
	var fsErr *FileSystemError
	if !errors.As(err, &fsErr) {
		t.Fatalf("ScanFiles() error = %v, want *FileSystemError", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("ScanFiles() error = %v, want os.ErrNotExist", err)
	}
}

func TestListFiles_IsNotRecursive(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, rel := range []string{"one.md", "two.md", "sub/three.md"} {
		if err := os.WriteFile(filepath.Join(root, filepath.FromSlash(rel)), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := ListFiles(root)
	if err != nil {
		t.Fatalf("ListFiles() unexpected error: %v", err)
	}
	// The sub directory is an entry too; only three.md is out of reach.
	if len(files) != 3 {
		t.Fatalf("ListFiles() = %v, want 3 entries", files)
	}
	for _, file := range files {
		if filepath.Base(file) == "three.md" {
			t.Fatalf("ListFiles() descended into sub: %v", files)
		}
	}
}

func TestScanFiles_FollowsDirectorySymlinks(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "root")
	other := filepath.Join(base, "other")
	for _, path := range []string{
		filepath.Join(root, "_index.md"),
		filepath.Join(other, "_index.md"),
		filepath.Join(other, "p.md"),
	} {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Symlink(other, filepath.Join(root, "linked")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	// A link back to root must not loop forever.
	if err := os.Symlink(root, filepath.Join(other, "back")); err != nil {
		t.Fatal(err)
	}

	files, err := ScanFiles(root)
	if err != nil {
		t.Fatalf("ScanFiles() unexpected error: %v", err)
	}
	want := []string{
		filepath.Join(root, "_index.md"),
		filepath.Join(root, "linked", "_index.md"),
		filepath.Join(root, "linked", "p.md"),
	}
	if len(files) != len(want) {
		t.Fatalf("ScanFiles() = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("ScanFiles() = %v, want %v", files, want)
		}
	}
}
