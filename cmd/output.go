package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/rgonek/content-indexer/internal/content"
)

type outputFormat string

const (
	outputPretty outputFormat = "pretty"
	outputJSON   outputFormat = "json"
	outputYAML   outputFormat = "yaml"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)
)

// resolveOutputFormat applies the --output flag, defaulting to pretty output
// on a terminal and JSON when stdout is piped.
func resolveOutputFormat(raw string, out io.Writer) (outputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		if isTerminal(out) {
			return outputPretty, nil
		}
		return outputJSON, nil
	case string(outputPretty):
		return outputPretty, nil
	case string(outputJSON):
		return outputJSON, nil
	case string(outputYAML), "yml":
		return outputYAML, nil
	default:
		return "", fmt.Errorf("invalid --output %q: expected pretty, json, or yaml", raw)
	}
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(out io.Writer, format outputFormat, v any) error {
	switch format {
	case outputYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}

// renderTree draws a directory node and its descendants.
func renderTree(name string, node *content.DirectoryNode) string {
	return directoryTree(name, node).String()
}

func directoryTree(name string, node *content.DirectoryNode) *tree.Tree {
	label := titleStyle.Render(displayTitle(node.Title)) + " " + dimStyle.Render(name+"/")
	t := tree.Root(label).Enumerator(tree.RoundedEnumerator)
	for _, page := range node.Pages {
		t.Child(displayTitle(page.Title) + " " + dimStyle.Render(fmt.Sprintf("(%s, weight %d)", page.Slug, page.Weight)))
	}
	for _, child := range node.ChildNames() {
		t.Child(directoryTree(child, node.Children[child]))
	}
	return t
}

// renderItems draws items as a table with one column per field.
func renderItems(items []content.Item, fields []string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers(fields...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, item := range items {
		row := make([]string, 0, len(fields))
		for _, field := range fields {
			row = append(row, displayField(item, field))
		}
		t.Row(row...)
	}
	return t.String()
}

// displayField renders one projected field for a table cell. Dates are shown
// as "March 1, 2021" and bodies are truncated to their first line.
func displayField(item content.Item, field string) string {
	value, ok := item.Field(field)
	if !ok {
		return dimStyle.Render("-")
	}
	text := value.Text()
	switch field {
	case content.FieldDate:
		return displayDate(text)
	case content.FieldContent:
		text = strings.TrimSpace(text)
		if line, _, found := strings.Cut(text, "\n"); found {
			return line + " ..."
		}
	}
	return text
}

func displayDate(raw string) string {
	if t, err := content.ParseDate(raw); err == nil {
		return content.FormatDate(t)
	}
	return raw
}

func displayTitle(title string) string {
	if title == "" {
		return "(untitled)"
	}
	return title
}

func displayScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 3, 64)
}
