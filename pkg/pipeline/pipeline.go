// Package pipeline runs the layout engine headlessly over a board and renders
// the result.
//
// The pipeline has two stages:
//
//  1. Layout: the board's cells are registered with a grid attached to an
//     in-memory surface; the grid runs on a manual scheduler that is flushed
//     until no work is left, which includes the restarts caused by a
//     scrollbar appearing.
//  2. Render: the layout is encoded as JSON, SVG or terminal text.
//
// Both stages are cached through a [cache.Cache]. The CLI and the HTTP server
// use the same [Runner], so a layout computed by one is reused by the other
// when they share a cache backend.
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Execute(ctx, b, pipeline.Options{Formats: []string{"svg"}})
//	if err != nil {
//	    return err
//	}
//	svg := res.Artifacts["svg"]
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/autogrid/pkg/board"
	"github.com/matzehuels/autogrid/pkg/cache"
	"github.com/matzehuels/autogrid/pkg/errors"
	"github.com/matzehuels/autogrid/pkg/sink"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatText = "text"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatSVG:  true,
	FormatText: true,
}

// Options control a pipeline run. Zero values mean "use the board's setting".
type Options struct {
	// Width and Height override the board's viewport size.
	Width  float64
	Height float64
	// Scrollbar overrides the board's scrollbar width.
	Scrollbar *float64

	// Formats to render. Empty defaults to JSON.
	Formats []string
	// NoLabels omits cell labels from SVG output.
	NoLabels bool
	// Guides draws column guides in SVG output.
	Guides bool
	// Color paints text output.
	Color bool

	// Refresh skips cache reads; results are still written.
	Refresh bool

	Logger *log.Logger
}

// ValidateAndSetDefaults checks the options and fills defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := errors.ValidateWidth("width", o.Width); err != nil {
		return err
	}
	if err := errors.ValidateLength("height", o.Height); err != nil {
		return err
	}
	if o.Scrollbar != nil {
		if err := errors.ValidateWidth("scrollbar", *o.Scrollbar); err != nil {
			return err
		}
	}
	return nil
}

// Viewport returns the viewport the board is laid out in: the board's own,
// overridden by the options, with defaults filled.
func (o Options) Viewport(b *board.Board) board.Viewport {
	vp := b.Viewport
	if o.Width > 0 {
		vp.Width = o.Width
	}
	if o.Height > 0 {
		vp.Height = o.Height
	}
	if o.Scrollbar != nil {
		sb := *o.Scrollbar
		vp.Scrollbar = &sb
	}
	return vp.WithDefaults()
}

// LayoutKeyOpts returns the cache key options of a layout of b.
func (o Options) LayoutKeyOpts(b *board.Board) cache.LayoutKeyOpts {
	vp := o.Viewport(b)
	return cache.LayoutKeyOpts{Width: vp.Width, Height: vp.Height, Scrollbar: vp.ScrollbarWidth()}
}

// RenderKeyOpts returns the cache key options of one rendered format.
func (o Options) RenderKeyOpts(format string) cache.RenderKeyOpts {
	return cache.RenderKeyOpts{Format: format, Labels: !o.NoLabels, Guides: o.Guides, Color: o.Color}
}

// ValidateFormat reports an unsupported format. Formats are case-sensitive.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want json, svg or text)", format)
	}
	return nil
}

// ValidateFormats validates every format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Result is the outcome of [Runner.Execute].
type Result struct {
	Layout    sink.Layout
	Artifacts map[string][]byte
	CacheInfo CacheInfo
	Stats     Stats
}

// CacheInfo records which stages were served from the cache.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool
}

// Stats records stage timings.
type Stats struct {
	LayoutTime time.Duration
	RenderTime time.Duration
}
