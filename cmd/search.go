package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/rgonek/content-indexer/internal/content"
	"github.com/rgonek/content-indexer/internal/logging"
	"github.com/rgonek/content-indexer/internal/search"
)

const defaultSearchFields = "slug,title,date"

func newSearchCmd() *cobra.Command {
	var (
		fields string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "search KEY QUERY",
		Short: "Full-text search over a collection",
		Long: `Search indexes the title and body of every document in a collection
in memory and runs QUERY against it. QUERY uses the bleve query string
syntax, e.g. "launch", "+title:march" or "spring -winter".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0], args[1], splitFields(fields), limit)
		},
	}
	cmd.Flags().StringVar(&fields, "fields", defaultSearchFields, "Comma-separated fields to index and print besides the body")
	cmd.Flags().IntVar(&limit, "limit", search.DefaultLimit, "Maximum number of hits")
	return cmd
}

func runSearch(cmd *cobra.Command, raw, query string, fields []string, limit int) error {
	key, err := collectionArg(raw)
	if err != nil {
		return err
	}

	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	indexed := slices.Clone(fields)
	for _, required := range []string{content.FieldSlug, content.FieldTitle, content.FieldContent} {
		if !slices.Contains(indexed, required) {
			indexed = append(indexed, required)
		}
	}
	items, err := a.lib.Collection(key, indexed)
	if err != nil {
		return err
	}

	index, err := search.Build(items, a.logger.With(logging.String("collection", key)))
	if err != nil {
		return err
	}
	defer index.Close()

	hits, err := index.Search(query, limit)
	if err != nil {
		return err
	}

	if a.format != outputPretty {
		return writeStructured(a.out, a.format, hits)
	}
	if len(hits) == 0 {
		_, err := fmt.Fprintln(a.out, dimStyle.Render(fmt.Sprintf("No matches for %q in %s", query, key)))
		return err
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers(append([]string{"score"}, fields...)...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, hit := range hits {
		row := []string{displayScore(hit.Score)}
		for _, field := range fields {
			row = append(row, displayField(hit.Item, field))
		}
		t.Row(row...)
	}
	_, err = fmt.Fprintln(a.out, strings.TrimRight(t.String(), "\n"))
	return err
}
