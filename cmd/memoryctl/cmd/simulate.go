package cmd

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/cbodonnell/memoryline/pkg/clock"
	"github.com/cbodonnell/memoryline/pkg/memory"
	"github.com/cbodonnell/memoryline/pkg/queue"
	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
)

// simulateCmd represents the simulate command
var simulateCmd = &cobra.Command{
	Use:   "simulate [index...]",
	Short: "Activate cards on a dealt board and print what happens",
	Long: `Simulate deals a board and activates the given card indexes in order.
After every activation the clock moves forward by --wait, so a mismatch is
flipped back once --wait reaches the reset delay.`,
	Example: `  memoryctl simulate --seed 7 0 1 2 3
  memoryctl simulate --seed 7 --wait 1s --policy ignore 0 1 2`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		indexes := make([]int, 0, len(args))
		for _, arg := range args {
			i, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("invalid card index %q", arg)
			}
			indexes = append(indexes, i)
		}

		opts, err := gridFlags(cmd)
		if err != nil {
			return err
		}
		wait, _ := cmd.Flags().GetDuration("wait")
		delay, _ := cmd.Flags().GetDuration("delay")

		scheduler := clock.NewTickScheduler()
		events := queue.NewInMemoryQueue[memory.Event]()
		grid, err := newGrid(opts, func(o *memory.GridOptions) {
			o.Scheduler = scheduler
			o.Events = events
			o.ResetDelay = delay
		})
		if err != nil {
			return err
		}
		defer grid.Close()

		return simulate(cmd.OutOrStdout(), grid, scheduler, events, indexes, wait)
	},
}

func init() {
	addGridFlags(simulateCmd)
	simulateCmd.Flags().Duration("wait", 0, "Time that passes after each activation")
	simulateCmd.Flags().Duration("delay", memory.DefaultResetDelay, "How long a mismatched pair stays face-up")
}

func simulate(out io.Writer, grid *memory.Grid, scheduler *clock.TickScheduler, events queue.Queue[memory.Event], indexes []int, wait time.Duration) error {
	for _, i := range indexes {
		fmt.Fprintf(out, "%s %d\n", colorize.CyanString("activate"), i)
		if err := grid.Activate(i); err != nil {
			return err
		}
		if wait > 0 {
			scheduler.Advance(wait)
		}
		for _, event := range events.ReadAllMessages() {
			printEvent(out, event)
		}
	}

	fmt.Fprintf(out, "state: %s, pairs left: %d", grid.State(), grid.Remaining())
	if grid.Complete() {
		fmt.Fprint(out, ", complete")
	}
	fmt.Fprintln(out)
	return nil
}

func printEvent(out io.Writer, event memory.Event) {
	line := fmt.Sprintf("  %-17s %v", event.Type, event.Cards)
	if event.Value != "" {
		line += " " + string(event.Value)
	}
	switch event.Type {
	case memory.EventPairMatched, memory.EventGridComplete:
		line = colorize.GreenString(line)
	case memory.EventPairMismatched, memory.EventSelectionRejected:
		line = colorize.RedString(line)
	}
	fmt.Fprintln(out, line)
}
