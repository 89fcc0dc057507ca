package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgonek/content-indexer/internal/content"
)

const defaultAdjacentFields = "slug,title,date"

// adjacentResult is the structured form of `adjacent`. A nil side has no neighbour.
type adjacentResult struct {
	Previous *content.Item `json:"previous" yaml:"previous"`
	Next     *content.Item `json:"next" yaml:"next"`
}

func newAdjacentCmd() *cobra.Command {
	var fields string
	cmd := &cobra.Command{
		Use:   "adjacent KEY/SLUG",
		Short: "Print the previous and next documents around one item",
		Long: `Adjacent orders a flat collection newest first and prints the
neighbours of SLUG: previous is the next older item and next is the
next newer one. Either side is empty at the ends of the collection or
when SLUG is not found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdjacent(cmd, args[0], splitFields(fields))
		},
	}
	cmd.Flags().StringVar(&fields, "fields", defaultAdjacentFields, "Comma-separated fields to project")
	return cmd
}

func runAdjacent(cmd *cobra.Command, raw string, fields []string) error {
	target, err := itemArg(raw)
	if err != nil {
		return err
	}

	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	previous, err := a.lib.Previous(target.Slug, fields, target.Collection)
	if err != nil {
		return err
	}
	next, err := a.lib.Next(target.Slug, fields, target.Collection)
	if err != nil {
		return err
	}
	result := adjacentResult{Previous: previous, Next: next}

	if a.format != outputPretty {
		return writeStructured(a.out, a.format, result)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", dimStyle.Render("previous:"), describeNeighbour(previous))
	fmt.Fprintf(&b, "%s %s\n", dimStyle.Render("next:    "), describeNeighbour(next))
	_, err = fmt.Fprint(a.out, b.String())
	return err
}

func describeNeighbour(item *content.Item) string {
	if item == nil {
		return dimStyle.Render("(none)")
	}
	label := item.Slug()
	if title := item.Title(); title != "" {
		label = titleStyle.Render(title) + " " + dimStyle.Render("("+item.Slug()+")")
	}
	if item.Has(content.FieldDate) {
		label += " " + dimStyle.Render(displayDate(item.Date()))
	}
	return label
}
