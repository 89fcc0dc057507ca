package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rgonek/content-indexer/internal/config"
	"github.com/rgonek/content-indexer/internal/content"
	"github.com/rgonek/content-indexer/internal/fs"
	"github.com/rgonek/content-indexer/internal/logging"
)

// fileReport lists the problems found in one document.
type fileReport struct {
	Path     string               `json:"path" yaml:"path"`
	Issues   []fs.ValidationIssue `json:"issues,omitempty" yaml:"issues,omitempty"`
	Warnings []fs.ValidationIssue `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// validateReport is the structured form of `validate`.
type validateReport struct {
	Files   int          `json:"files" yaml:"files"`
	Reports []fileReport `json:"reports" yaml:"reports"`
}

func (r validateReport) failed() bool {
	for _, report := range r.Reports {
		if len(report.Issues) > 0 {
			return true
		}
	}
	return false
}

// validateTarget is a collection to check, and optionally a single file in it.
type validateTarget struct {
	key   string
	dir   string
	files []string
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [TARGET]",
		Short: "Validate frontmatter of every document",
		Long: `Validate parses every document and reports all frontmatter problems
instead of stopping at the first one. Hierarchical collections are also
checked for missing index documents.

TARGET can be a collection KEY (e.g. "docs") or KEY/SLUG for a single
document. If omitted, every configured collection is validated.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw string
			if len(args) > 0 {
				raw = args[0]
			}
			return runValidate(cmd, raw)
		},
	}
}

func runValidate(cmd *cobra.Command, raw string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	targets, err := resolveValidateTargets(a, raw)
	if err != nil {
		return err
	}

	report := validateReport{Reports: []fileReport{}}
	parser := fs.NewParser(a.cfg.Format)
	for _, target := range targets {
		fileFailed := false
		for _, file := range target.files {
			report.Files++
			issues, warnings := validateFile(file, parser)
			if len(issues) > 0 || len(warnings) > 0 {
				report.Reports = append(report.Reports, fileReport{Path: relPath(a.cfg.Root, file), Issues: issues, Warnings: warnings})
			}
			fileFailed = fileFailed || len(issues) > 0
		}
		// A tree build would only fail again on the files reported above.
		if fileFailed {
			continue
		}
		if issue, ok := validateTree(a, target); !ok {
			report.Reports = append(report.Reports, fileReport{Path: relPath(a.cfg.Root, target.dir), Issues: []fs.ValidationIssue{issue}})
		}
	}

	if a.format == outputPretty {
		printValidateReport(a, report)
	} else if err := writeStructured(a.out, a.format, report); err != nil {
		return err
	}

	if report.failed() {
		return fmt.Errorf("validation failed")
	}
	return nil
}

func resolveValidateTargets(a *app, raw string) ([]validateTarget, error) {
	if raw == "" {
		var targets []validateTarget
		for _, key := range a.cfg.CollectionKeys() {
			dir := a.cfg.Collections[key]
			files, err := fs.ScanFiles(dir)
			if errors.Is(err, os.ErrNotExist) {
				a.logger.Warn("collection directory missing, skipping", logging.String("collection", key), logging.String("dir", dir))
				continue
			}
			if err != nil {
				return nil, err
			}
			targets = append(targets, validateTarget{key: key, dir: dir, files: files})
		}
		return targets, nil
	}

	target, err := config.ParseTarget(raw)
	if err != nil {
		return nil, err
	}
	dir, err := a.lib.Dir(target.Collection)
	if err != nil {
		return nil, err
	}

	if target.IsItem() {
		paths, err := fs.ListFiles(dir)
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			if fs.Slug(path) == target.Slug {
				return []validateTarget{{key: target.Collection, files: []string{path}}}, nil
			}
		}
		return nil, &fs.FileSystemError{Op: "find", Path: filepath.Join(dir, target.Slug), Err: os.ErrNotExist}
	}

	files, err := fs.ScanFiles(dir)
	if err != nil {
		return nil, err
	}
	return []validateTarget{{key: target.Collection, dir: dir, files: files}}, nil
}

func validateFile(path string, parser *fs.Parser) (issues, warnings []fs.ValidationIssue) {
	doc, err := parser.ReadDocument(path)
	if err != nil {
		return []fs.ValidationIssue{parseIssue(err)}, nil
	}

	if date, ok := doc.Metadata.Lookup(fs.KeyDate); ok && date.Kind() == fs.KindString {
		if _, err := content.ParseDate(date.Text()); err != nil {
			warnings = append(warnings, fs.ValidationIssue{
				Field:   fs.KeyDate,
				Code:    "date_format",
				Message: fmt.Sprintf("date %q is not a recognized date; it will sort as text", date.Text()),
			})
		}
	}
	if _, ok := doc.Metadata.Lookup(fs.KeyTitle); !ok {
		warnings = append(warnings, fs.ValidationIssue{
			Field:   fs.KeyTitle,
			Code:    "missing",
			Message: "no title",
		})
	}
	return nil, warnings
}

func parseIssue(err error) fs.ValidationIssue {
	issue := fs.ValidationIssue{Code: "read_error", Message: err.Error()}
	switch {
	case errors.Is(err, fs.ErrFrontmatterMissing):
		issue.Code = "frontmatter_missing"
	case errors.Is(err, fs.ErrFrontmatterInvalid):
		issue.Code = "frontmatter_invalid"
	}
	var parseErr *fs.ParseError
	if errors.As(err, &parseErr) {
		issue.Message = parseErr.Reason
	}
	return issue
}

// validateTree builds hierarchical collections, recognized by an index
// document at their root, and reports a build failure as an issue.
func validateTree(a *app, target validateTarget) (fs.ValidationIssue, bool) {
	if target.dir == "" {
		return fs.ValidationIssue{}, true
	}
	if _, err := os.Stat(filepath.Join(target.dir, a.lib.IndexName)); err != nil {
		return fs.ValidationIssue{}, true
	}
	if _, err := a.lib.Tree(target.key); err != nil {
		code := "tree_error"
		if errors.Is(err, content.ErrMissingIndex) {
			code = "missing_index"
		}
		return fs.ValidationIssue{Code: code, Message: err.Error()}, false
	}
	return fs.ValidationIssue{}, true
}

func printValidateReport(a *app, report validateReport) {
	for _, file := range report.Reports {
		if len(file.Issues) > 0 {
			fmt.Fprintln(a.out, errorStyle.Render(fmt.Sprintf("Validation failed for %s:", file.Path)))
		} else {
			fmt.Fprintln(a.out, warnStyle.Render(fmt.Sprintf("Warnings for %s:", file.Path)))
		}
		for _, issue := range file.Issues {
			fmt.Fprintf(a.out, "  - [%s] %s\n", issue.Code, issueText(issue))
		}
		for _, issue := range file.Warnings {
			fmt.Fprintf(a.out, "  - [%s] %s\n", issue.Code, issueText(issue))
		}
	}

	if report.failed() {
		return
	}
	fmt.Fprintln(a.out, successStyle.Render(fmt.Sprintf("Validation successful (%d files)", report.Files)))
}

func issueText(issue fs.ValidationIssue) string {
	if issue.Field == "" {
		return issue.Message
	}
	return issue.Field + ": " + issue.Message
}

func relPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}
