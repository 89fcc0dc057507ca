package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const defaultTreeCollection = "docs"

func newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree [KEY]",
		Short: "Print the directory tree of a hierarchical collection",
		Long: `Tree builds the directory hierarchy of a collection. Every directory
holding an index document becomes a node titled after it, and every
other document becomes a page ordered by weight.

KEY defaults to "docs".`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTree,
	}
}

func runTree(cmd *cobra.Command, args []string) error {
	raw := defaultTreeCollection
	if len(args) > 0 {
		raw = args[0]
	}
	key, err := collectionArg(raw)
	if err != nil {
		return err
	}

	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	node, err := a.lib.Tree(key)
	if err != nil {
		return fmt.Errorf("failed to build tree for %s: %w", key, err)
	}

	if a.format == outputPretty {
		_, err := fmt.Fprintln(a.out, renderTree(key, node))
		return err
	}
	return writeStructured(a.out, a.format, node)
}
