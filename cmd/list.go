package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const defaultListFields = "slug,title,date"

func newListCmd() *cobra.Command {
	var fields string
	cmd := &cobra.Command{
		Use:   "list KEY",
		Short: "List a flat collection newest first",
		Long: `List projects every document of a flat collection onto the requested
fields and prints them ordered by date, newest first.

"slug" and "content" are computed from the file name and body; any
other field is copied from the frontmatter when present.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args[0], splitFields(fields))
		},
	}
	cmd.Flags().StringVar(&fields, "fields", defaultListFields, "Comma-separated fields to project")
	return cmd
}

func runList(cmd *cobra.Command, raw string, fields []string) error {
	key, err := collectionArg(raw)
	if err != nil {
		return err
	}

	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	items, err := a.lib.Collection(key, fields)
	if err != nil {
		return err
	}

	if a.format == outputPretty {
		if len(items) == 0 {
			_, err := fmt.Fprintln(a.out, dimStyle.Render("No documents in "+key))
			return err
		}
		_, err := fmt.Fprintln(a.out, renderItems(items, fields))
		return err
	}
	return writeStructured(a.out, a.format, items)
}
