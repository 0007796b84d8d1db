package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/autogrid/pkg/buildinfo"
	"github.com/matzehuels/autogrid/pkg/cache"
	"github.com/matzehuels/autogrid/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "autogrid"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	out    io.Writer // status lines; the running command's output
	status io.Writer // spinner animation; shares the log writer
}

// New creates a new CLI instance logging to w. Spinners draw on w as well;
// status lines go to the command's output.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), out: os.Stdout, status: w}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Autogrid lays out blocks on a responsive masonry grid",
		Long: `Autogrid places variable-width blocks into equal-width columns, packing each
block under the shortest run of columns, and keeps the layout correct as the
viewport resizes.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			c.out = cmd.OutOrStdout()
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// ui returns the printer for status lines.
func (c *CLI) ui() printer {
	return printer{w: c.out}
}

// startSpinner starts a spinner that follows the grid and pipeline hooks.
// The returned func stops it and restores the hooks.
func (c *CLI) startSpinner(ctx context.Context, message string) (*spinner, func()) {
	s := newSpinner(ctx, c.status, c.ui(), message)
	restore := s.track()
	s.Start()
	return s, func() {
		s.Stop()
		restore()
	}
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/autogrid/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// outputBase strips the board file extension: "boards/home.toml" -> "boards/home".
func outputBase(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input))
}

// =============================================================================
// Options Helpers
// =============================================================================

// viewportFlags are the viewport overrides shared by layout, render and watch.
type viewportFlags struct {
	width     float64
	height    float64
	scrollbar float64
}

func (f *viewportFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.width, "width", 0, "viewport width in pixels (default: board setting)")
	cmd.Flags().Float64Var(&f.height, "height", 0, "viewport height in pixels (default: board setting)")
	cmd.Flags().Float64Var(&f.scrollbar, "scrollbar", -1, "scrollbar width in pixels (default: board setting)")
}

// apply copies the flags into opts. A negative scrollbar keeps the board's.
func (f viewportFlags) apply(opts *pipeline.Options) {
	opts.Width = f.width
	opts.Height = f.height
	if f.scrollbar >= 0 {
		sb := f.scrollbar
		opts.Scrollbar = &sb
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
