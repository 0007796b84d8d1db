package cli

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/matzehuels/autogrid/pkg/board"
	"github.com/matzehuels/autogrid/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file (single format) or base path (multiple)
	formats []string // output formats: "svg", "text", "json"
	noCache bool
	refresh bool
	print   bool // write text output to stdout instead of a file
	vp      viewportFlags
}

// fileExt maps an output format to its file extension.
var fileExt = map[string]string{
	pipeline.FormatJSON: ".layout.json",
	pipeline.FormatSVG:  ".svg",
	pipeline.FormatText: ".txt",
}

// renderCommand creates the render command for drawing board layouts.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var noLabels, guides, color bool
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [board]",
		Short: "Render a board layout to SVG, text or JSON",
		Long: `Render a board layout to SVG, text or JSON.

The board is laid out exactly as by 'layout' and every requested format is
written next to the board file, or to --output. With a single format --output
names the file; with several it is used as the base path.

Use --print with -f text to draw the grid in the terminal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			popts := pipeline.Options{
				Formats:  opts.formats,
				NoLabels: noLabels,
				Guides:   guides,
				Color:    color,
				Refresh:  opts.refresh,
			}
			opts.vp.apply(&popts)
			return c.runRender(cmd.Context(), args[0], popts, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), text, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&opts.print, "print", false, "print text output to stdout")
	cmd.Flags().BoolVar(&noLabels, "no-labels", false, "omit cell labels (svg)")
	cmd.Flags().BoolVar(&guides, "guides", false, "draw column guides (svg)")
	cmd.Flags().BoolVar(&color, "color", false, "color cells (text)")
	opts.vp.register(cmd)

	return cmd
}

// runRender loads the board, lays it out, renders every format and writes the files.
func (c *CLI) runRender(ctx context.Context, input string, popts pipeline.Options, opts renderOpts) error {
	b, err := board.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load board %s: %w", input, err)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	popts.Logger = c.Logger

	prog := newProgress(loggerFromContext(ctx))
	spin, done := c.startSpinner(ctx, "Rendering...")
	defer done()
	result, err := runner.Execute(ctx, b, popts)
	if err != nil {
		spin.StopWithError("Render failed")
		return err
	}
	spin.Stop()
	prog.done(fmt.Sprintf("Rendered %d cells in %d format(s)", len(result.Layout.Cells), len(result.Artifacts)))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths := outputPaths(input, opts.output, opts.formats)
	formats := make([]string, 0, len(result.Artifacts))
	for f := range result.Artifacts {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	var written []string
	for _, f := range formats {
		data := result.Artifacts[f]
		if opts.print && f == pipeline.FormatText {
			if _, err := c.out.Write(data); err != nil {
				return fmt.Errorf("print %s: %w", f, err)
			}
			continue
		}
		if err := os.WriteFile(paths[f], data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", paths[f], err)
		}
		written = append(written, paths[f])
	}

	if len(written) == 0 {
		return nil
	}
	ui := c.ui()
	ui.success("Render complete")
	for _, p := range written {
		ui.file(p)
	}
	ui.stats(result.Layout, result.CacheInfo.LayoutHit)
	return nil
}

// outputPaths assigns a file to every format. A single format writes to output
// verbatim; otherwise output (or the board path) is the base name.
func outputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := output
	if base == "" {
		base = outputBase(input)
	}
	for _, f := range formats {
		paths[f] = base + fileExt[f]
	}
	return paths
}
