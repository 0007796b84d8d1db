package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/autogrid/pkg/board"
	"github.com/matzehuels/autogrid/pkg/pipeline"
	"github.com/matzehuels/autogrid/pkg/sink"
)

// layoutCommand creates the layout command for computing board layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
		vp      viewportFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [board]",
		Short: "Compute the grid layout of a board",
		Long: `Compute the grid layout of a board.

The layout command reads a board file (TOML or JSON), runs the grid engine in
a headless viewport and writes the resulting layout.json: column count, column
width, container height and the position of every cell. The viewport size
comes from the board's [viewport] section unless overridden with --width,
--height and --scrollbar.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{Refresh: refresh}
			vp.apply(&opts)
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <board>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when a cached layout exists")
	vp.register(cmd)

	return cmd
}

// runLayout loads the board, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	b, err := board.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load board %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	spin, done := c.startSpinner(ctx, fmt.Sprintf("Laying out %d cells...", len(b.Cells)))
	defer done()

	layout, cacheHit, err := runner.LayoutWithCacheInfo(ctx, b, opts)
	if err != nil {
		spin.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spin.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = outputBase(input) + ".layout.json"
	}

	data, err := sink.RenderJSON(layout)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	ui := c.ui()
	ui.success("Layout complete")
	ui.file(outputPath)
	ui.stats(layout, cacheHit)
	ui.blank()
	ui.nextStep("Render", appName+" render "+input)

	return nil
}
