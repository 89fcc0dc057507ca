package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

// setupSite writes a content root with a blog and a docs collection and points
// the CONTENT_* environment at it.
func setupSite(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeDoc(t, filepath.Join(root, "blog", "january.md"), "title = \"January\"\ndate = 2021-01-01", "Happy new year.\n")
	writeDoc(t, filepath.Join(root, "blog", "march.md"), "title = \"March\"\ndate = 2021-03-01", "# Spring\n\nFlowers are **back**.\n")
	writeDoc(t, filepath.Join(root, "blog", "february.md"), "title = \"February\"\ndate = 2021-02-01", "Short and cold.\n")

	writeDoc(t, filepath.Join(root, "docs", "_index.md"), `title = "Docs"`, "")
	writeDoc(t, filepath.Join(root, "docs", "intro.md"), "title = \"Intro\"\nweight = 2", "")
	writeDoc(t, filepath.Join(root, "docs", "setup.md"), "title = \"Setup\"\nweight = 1", "")
	writeDoc(t, filepath.Join(root, "docs", "api", "_index.md"), `title = "API"`, "")
	writeDoc(t, filepath.Join(root, "docs", "api", "http.md"), `title = "HTTP"`, "")

	setupEnv(t, root)
	return root
}

func setupEnv(t *testing.T, root string) {
	t.Helper()
	t.Setenv("CONTENT_ROOT", root)
	t.Setenv("CONTENT_FORMAT", "toml")
	t.Setenv("CONTENT_INDEX_NAME", "_index.md")
	t.Setenv("CONTENT_COLLECTIONS", "blog=blog,docs=docs")
	t.Setenv("CONTENT_LOG_LEVEL", "error")
	setFlag(t, &flagEnvFile, "")
}

func writeDoc(t *testing.T, path, header, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	raw := "+++\n" + header + "\n+++\n" + body
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func setFlag[T any](t *testing.T, flag *T, value T) {
	t.Helper()
	prev := *flag
	*flag = value
	t.Cleanup(func() { *flag = prev })
}

// newTestCommand returns a command writing to a buffer with the given output format.
func newTestCommand(t *testing.T, build func() *cobra.Command, format string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	setFlag(t, &flagOutput, format)
	cmd := build()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	return cmd, out
}

func decodeJSON(t *testing.T, out *bytes.Buffer, v any) {
	t.Helper()
	if err := json.Unmarshal(out.Bytes(), v); err != nil {
		t.Fatalf("decode output %q: %v", out.String(), err)
	}
}
