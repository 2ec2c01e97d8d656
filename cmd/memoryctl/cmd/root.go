package cmd

import (
	"fmt"
	"os"

	"github.com/cbodonnell/memoryline/pkg/catalog"
	"github.com/cbodonnell/memoryline/pkg/log"
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "memoryctl",
	Short: "Tool for checking Memory Line catalogs and deals",
	Long: `memoryctl validates content catalogs, lists their categories and prints
dealt boards, so a catalog can be checked without starting the game.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLogLevel(logLevel)
		if err != nil {
			return err
		}
		log.SetDefaultLogger(log.New(os.Stderr, log.FormatConsole, level))
		return nil
	},
}

var (
	catalogPath string
	logLevel    string
)

func init() {
	RootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Catalog file (default embedded catalog)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level")

	RootCmd.AddCommand(validateCmd)
	RootCmd.AddCommand(categoriesCmd)
	RootCmd.AddCommand(dealCmd)
	RootCmd.AddCommand(simulateCmd)
	RootCmd.AddCommand(showCmd)
	RootCmd.AddCommand(configCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// loadCatalog reads the catalog named by path, or the embedded one.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	c, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("error loading catalog %s: %w", path, err)
	}
	return c, nil
}
