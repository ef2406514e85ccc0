package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/ftahirops/hostdash/engine"
	"github.com/ftahirops/hostdash/metrics"
	"github.com/ftahirops/hostdash/surface"
	"github.com/spf13/cobra"
)

var (
	reportWidth  int
	reportHeight int
)

// reportCmd prints every page once as plain text
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print every dashboard page once and exit",
	Long: `Render all five pages once on an off-screen grid and print them as
plain text, one after another. Useful over SSH, in scripts, or when the
terminal is too small for the full-screen dashboard.

Examples:
  hostdash report
  hostdash report --width 120 --height 30`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return reportCommand(cmd)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().IntVar(&reportWidth, "width", engine.MinWidth, "report width in columns")
	reportCmd.Flags().IntVar(&reportHeight, "height", engine.MinHeight, "report height in rows per page")
}

func reportCommand(cmd *cobra.Command) error {
	if reportWidth < engine.MinWidth || reportHeight < engine.MinHeight {
		return fmt.Errorf("report size %dx%d below minimum %dx%d",
			reportWidth, reportHeight, engine.MinWidth, engine.MinHeight)
	}
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()
	return writeReport(cmd.Context(), cmd.OutOrStdout(), e, reportHeight, reportWidth)
}

func writeReport(ctx context.Context, w io.Writer, e *env, height, width int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	fmt.Fprintln(w, "Starting Program")
	fmt.Fprintln(w, "=============================")

	snap, err := metrics.Collect(ctx, e.provider, e.cfg.Metrics.SampleInterval, e.cfg.Metrics.Mount)
	if err != nil {
		e.log.WithError(err).Warn("summary snapshot failed")
		fmt.Fprintf(w, "Summary unavailable: %v\n", err)
	} else {
		fmt.Fprintf(w, "CPU %.1f%% | Memory %.1f%% | Disk %s %.1f%% | %d processes\n",
			snap.CPU.OverallPercent, snap.Memory.Percent, snap.Disk.Path, snap.Disk.Percent, len(snap.Processes))
	}

	grid := surface.NewGrid(height, width)
	reg := e.registry()
	c := engine.New(grid, reg, e.options(engine.NewMetrics()))
	for i := 0; i < reg.Len(); i++ {
		c.Select(i)
		c.Step(ctx)
		fmt.Fprintln(w)
		fmt.Fprintln(w, grid.Text())
	}
	return nil
}
