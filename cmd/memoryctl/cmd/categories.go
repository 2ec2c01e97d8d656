package cmd

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
)

// categoriesCmd represents the categories command
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the categories of a catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog(catalogPath)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, name := range c.Names() {
			category, err := c.Category(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%-10s %s %s\n",
				name,
				colorize.CyanString("%-6s", category.Kind),
				colorize.HiWhiteString("%d values", len(category.Values)))
		}
		return nil
	},
}
