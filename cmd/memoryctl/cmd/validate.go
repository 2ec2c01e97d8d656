package cmd

import (
	"fmt"

	"github.com/cbodonnell/memoryline/pkg/catalog"
	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a catalog file",
	Long: `Validate checks that a catalog defines the text, images and sounds categories
and that every category has enough distinct values for a 4x4 board.
Without a path the embedded catalog is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := catalogPath
		if len(args) == 1 {
			path = args[0]
		}
		name := path
		if name == "" {
			name = "embedded"
		}

		c, err := loadCatalog(path)
		if err != nil {
			return err
		}

		minValues, _ := cmd.Flags().GetInt("min-values")
		results := c.Validate(minValues)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Validation Results:")
		fmt.Fprintln(out, "-------------------")

		if results.Valid() {
			fmt.Fprintf(out, "%s Catalog '%s' is valid.\n", colorize.GreenString("✔"), name)
		} else {
			fmt.Fprintf(out, "%s Catalog '%s' has %d validation errors:\n", colorize.RedString("✘"), name, len(results.Errors))
			for i, e := range results.Errors {
				fmt.Fprintf(out, "%d. %s\n", i+1, e)
			}
		}

		if len(results.Warnings) > 0 {
			fmt.Fprintln(out, "\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Fprintf(out, "%d. %s\n", i+1, colorize.YellowString(warn))
			}
		}

		if !results.Valid() {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().Int("min-values", catalog.MinValues, "Minimum number of distinct values per category")
}
