package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunValidate_AllCollectionsSuccessful(t *testing.T) {
	setupSite(t)
	cmd, out := newTestCommand(t, newValidateCmd, "pretty")

	if err := runValidate(cmd, ""); err != nil {
		t.Fatalf("runValidate() error: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "Validation successful (8 files)") {
		t.Fatalf("output = %q, want success for 8 files", out.String())
	}
}

func TestRunValidate_ReportsEveryBrokenFile(t *testing.T) {
	root := setupSite(t)
	blog := filepath.Join(root, "blog")
	if err := os.WriteFile(filepath.Join(blog, "plain.md"), []byte("no frontmatter here\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(blog, "open.md"), []byte("+++\ntitle = \"Open\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	writeDoc(t, filepath.Join(blog, "typed.md"), "title = 42", "")
	writeDoc(t, filepath.Join(blog, "loose.md"), `date = "someday"`, "")

	cmd, out := newTestCommand(t, newValidateCmd, "pretty")
	err := runValidate(cmd, "blog")
	if err == nil {
		t.Fatalf("runValidate() expected failure\n%s", out.String())
	}

	got := out.String()
	for _, want := range []string{
		"Validation failed for blog/plain.md",
		"[frontmatter_missing]",
		"Validation failed for blog/open.md",
		"[frontmatter_invalid]",
		"Validation failed for blog/typed.md",
		"title must be a string",
		"Warnings for blog/loose.md",
		"[date_format]",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunValidate_MissingIndexJSON(t *testing.T) {
	root := setupSite(t)
	writeDoc(t, filepath.Join(root, "docs", "guides", "install.md"), `title = "Install"`, "")

	cmd, out := newTestCommand(t, newValidateCmd, "json")
	if err := runValidate(cmd, "docs"); err == nil {
		t.Fatal("runValidate() expected failure for missing index")
	}

	var report struct {
		Files   int `json:"files"`
		Reports []struct {
			Path   string `json:"path"`
			Issues []struct {
				Code string `json:"code"`
			} `json:"issues"`
		} `json:"reports"`
	}
	decodeJSON(t, out, &report)
	if report.Files != 6 {
		t.Fatalf("files = %d, want 6", report.Files)
	}
	if len(report.Reports) != 1 || report.Reports[0].Path != "docs" {
		t.Fatalf("reports = %+v, want one docs report", report.Reports)
	}
	if issues := report.Reports[0].Issues; len(issues) != 1 || issues[0].Code != "missing_index" {
		t.Fatalf("issues = %+v, want missing_index", issues)
	}
}

func TestRunValidate_SingleItemAndMissingCollection(t *testing.T) {
	root := setupSite(t)
	cmd, out := newTestCommand(t, newValidateCmd, "pretty")

	if err := runValidate(cmd, "blog/march"); err != nil {
		t.Fatalf("runValidate(blog/march) error: %v", err)
	}
	if !strings.Contains(out.String(), "(1 files)") {
		t.Fatalf("output = %q, want a single file validated", out.String())
	}

	if err := runValidate(cmd, "blog/april"); err == nil {
		t.Fatal("runValidate(blog/april) expected error")
	}

	// A configured collection without a directory is skipped when validating everything.
	t.Setenv("CONTENT_COLLECTIONS", "blog=blog,docs=docs,events=events")
	if _, err := os.Stat(filepath.Join(root, "events")); !os.IsNotExist(err) {
		t.Fatalf("events dir should not exist: %v", err)
	}
	out.Reset()
	if err := runValidate(cmd, ""); err != nil {
		t.Fatalf("runValidate() error: %v\n%s", err, out.String())
	}
}

func TestRunValidate_BrokenFileReportedOnce(t *testing.T) {
	root := setupSite(t)
	if err := os.WriteFile(filepath.Join(root, "docs", "api", "bad.md"), []byte("no frontmatter here\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd, out := newTestCommand(t, newValidateCmd, "json")
	if err := runValidate(cmd, "docs"); err == nil {
		t.Fatal("runValidate() expected failure for broken file")
	}

	var report struct {
		Reports []struct {
			Path   string `json:"path"`
			Issues []struct {
				Code string `json:"code"`
			} `json:"issues"`
		} `json:"reports"`
	}
	decodeJSON(t, out, &report)
	if len(report.Reports) != 1 {
		t.Fatalf("reports = %+v, want only the broken file", report.Reports)
	}
	got := report.Reports[0]
	if got.Path != "docs/api/bad.md" {
		t.Fatalf("path = %q, want docs/api/bad.md", got.Path)
	}
	if len(got.Issues) != 1 || got.Issues[0].Code != "frontmatter_missing" {
		t.Fatalf("issues = %+v, want frontmatter_missing", got.Issues)
	}
}
