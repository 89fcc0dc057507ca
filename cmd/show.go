package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgonek/content-indexer/internal/content"
	"github.com/rgonek/content-indexer/internal/converter"
)

const defaultShowFields = "slug,title,date,content"

// showResult is the structured form of `show`.
type showResult struct {
	Item     content.Item        `json:"item" yaml:"item"`
	HTML     string              `json:"html,omitempty" yaml:"html,omitempty"`
	Headings []converter.Heading `json:"headings,omitempty" yaml:"headings,omitempty"`
}

func newShowCmd() *cobra.Command {
	var (
		fields string
		asHTML bool
		unsafe bool
	)
	cmd := &cobra.Command{
		Use:   "show KEY/SLUG",
		Short: "Print one document of a collection",
		Long: `Show projects a single document onto the requested fields.

With --html the body is rendered from Markdown to HTML and its headings
are listed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0], splitFields(fields), converter.HTMLConfig{Unsafe: unsafe}, asHTML)
		},
	}
	cmd.Flags().StringVar(&fields, "fields", defaultShowFields, "Comma-separated fields to project")
	cmd.Flags().BoolVar(&asHTML, "html", false, "Render the body as HTML")
	cmd.Flags().BoolVar(&unsafe, "unsafe", false, "Keep raw HTML from the body when rendering")
	return cmd
}

func runShow(cmd *cobra.Command, raw string, fields []string, htmlCfg converter.HTMLConfig, asHTML bool) error {
	target, err := itemArg(raw)
	if err != nil {
		return err
	}

	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	if asHTML && !slices.Contains(fields, content.FieldContent) {
		fields = append(fields, content.FieldContent)
	}
	item, err := a.lib.Item(target.Collection, target.Slug, fields)
	if err != nil {
		return err
	}

	result := showResult{Item: item}
	if asHTML {
		rendered, err := converter.ToHTML([]byte(item.Content()), htmlCfg)
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", target, err)
		}
		result.HTML = rendered.HTML
		result.Headings = rendered.Headings
	}

	if a.format != outputPretty {
		return writeStructured(a.out, a.format, result)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(displayTitle(item.Title())) + "\n")
	if item.Has(content.FieldDate) {
		b.WriteString(dimStyle.Render(displayDate(item.Date())) + "\n")
	}
	for _, field := range item.Fields() {
		switch field {
		case content.FieldTitle, content.FieldDate, content.FieldContent:
			continue
		}
		b.WriteString(dimStyle.Render(field+": ") + displayField(item, field) + "\n")
	}
	switch {
	case asHTML:
		b.WriteString("\n" + strings.TrimSpace(result.HTML) + "\n")
	case item.Has(content.FieldContent):
		b.WriteString("\n" + strings.TrimSpace(item.Content()) + "\n")
	}
	_, err = fmt.Fprint(a.out, b.String())
	return err
}
