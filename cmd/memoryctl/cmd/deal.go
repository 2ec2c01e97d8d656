package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/cbodonnell/memoryline/pkg/memory"
	colorize "github.com/fatih/color"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const defaultTerminalWidth = 80

var pairColors = []colorize.Attribute{
	colorize.FgRed,
	colorize.FgGreen,
	colorize.FgYellow,
	colorize.FgBlue,
	colorize.FgMagenta,
	colorize.FgCyan,
	colorize.FgHiRed,
	colorize.FgHiGreen,
	colorize.FgHiYellow,
	colorize.FgHiBlue,
	colorize.FgHiMagenta,
	colorize.FgHiCyan,
}

// dealCmd represents the deal command
var dealCmd = &cobra.Command{
	Use:   "deal",
	Short: "Print a dealt board",
	Long: `Deal shuffles a category onto a board and prints it, one row per line.
Both cards of a pair share a color. With --seed the same board is printed every time.`,
	Example: `  memoryctl deal --category images --seed 42
  memoryctl deal --category text --rows 3 --cols 4`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := gridFlags(cmd)
		if err != nil {
			return err
		}
		grid, err := newGrid(opts)
		if err != nil {
			return err
		}
		defer grid.Close()

		width, _ := cmd.Flags().GetInt("width")
		if width <= 0 {
			width = terminalWidth()
		}
		printBoard(cmd.OutOrStdout(), grid, width)
		return nil
	},
}

func init() {
	addGridFlags(dealCmd)
	dealCmd.Flags().Int("width", 0, "Output width (default terminal width)")
}

// gridOptions are the flags shared by the commands that deal a board.
type gridOptions struct {
	category string
	rows     int
	cols     int
	seed     uint64
	policy   memory.ResolvePolicy
}

func addGridFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("category", "c", "text", "Category to deal from")
	cmd.Flags().Int("rows", memory.DefaultRows, "Board rows")
	cmd.Flags().Int("cols", memory.DefaultCols, "Board columns")
	cmd.Flags().Uint64("seed", 0, "Shuffle seed, 0 for a fresh shuffle")
	cmd.Flags().String("policy", memory.PolicyFlush.String(), "Third card policy (flush, ignore or legacy)")
}

func gridFlags(cmd *cobra.Command) (gridOptions, error) {
	opts := gridOptions{}
	opts.category, _ = cmd.Flags().GetString("category")
	opts.rows, _ = cmd.Flags().GetInt("rows")
	opts.cols, _ = cmd.Flags().GetInt("cols")
	opts.seed, _ = cmd.Flags().GetUint64("seed")
	policy, _ := cmd.Flags().GetString("policy")
	p, err := memory.ParsePolicy(policy)
	if err != nil {
		return opts, err
	}
	opts.policy = p
	return opts, nil
}

func newGrid(opts gridOptions, gridOpts ...func(*memory.GridOptions)) (*memory.Grid, error) {
	c, err := loadCatalog(catalogPath)
	if err != nil {
		return nil, err
	}
	category, err := c.Category(opts.category)
	if err != nil {
		return nil, err
	}

	rng := memory.NewRand()
	if opts.seed != 0 {
		rng = memory.NewSeededRand(opts.seed)
	}
	o := memory.GridOptions{
		Rows:   opts.rows,
		Cols:   opts.cols,
		Kind:   category.Kind,
		Values: category.Values,
		Policy: opts.policy,
		Rand:   rng,
	}
	for _, f := range gridOpts {
		f(&o)
	}
	grid, err := memory.NewGrid(o)
	if err != nil {
		return nil, fmt.Errorf("error dealing %s: %w", opts.category, err)
	}
	return grid, nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultTerminalWidth
	}
	return width
}

// printBoard writes the board row by row, each cell prefixed with the card index.
func printBoard(out io.Writer, grid *memory.Grid, width int) {
	values := grid.Values()
	colors := make(map[memory.Value]*colorize.Color)
	for i, v := range lo.Uniq(values) {
		colors[v] = colorize.New(pairColors[i%len(pairColors)])
	}

	cellWidth := max(width/grid.Cols()-1, 8)
	for row := 0; row < grid.Rows(); row++ {
		cells := make([]string, 0, grid.Cols())
		for col := 0; col < grid.Cols(); col++ {
			i := row*grid.Cols() + col
			label := truncate(fmt.Sprintf("%2d %s", i, values[i]), cellWidth)
			padding := strings.Repeat(" ", cellWidth-utf8.RuneCountInString(label))
			cells = append(cells, colors[values[i]].Sprint(label)+padding)
		}
		fmt.Fprintln(out, strings.TrimRight(strings.Join(cells, " "), " "))
	}
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:width-1]) + "…"
}
