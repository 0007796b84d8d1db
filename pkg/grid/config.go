package grid

import (
	"time"

	"github.com/matzehuels/autogrid/pkg/errors"
)

// Default configuration values.
const (
	// DefaultTargetCellWidth is the column width, in pixels, the grid aims for.
	DefaultTargetCellWidth = 400.0

	// DefaultCellWidth is the multiplier applied to the target cell width.
	DefaultCellWidth = 1.0

	// MinCellWidth is the smallest effective cell width, in pixels, a grid
	// accepts.
	MinCellWidth = 1.0

	// DefaultResizeDebounce is the quiet window after the last viewport resize
	// event before the container width is measured again.
	DefaultResizeDebounce = 200 * time.Millisecond
)

// Invalidation selects how layout invalidations turn into passes.
type Invalidation string

const (
	// InvalidateCoalesce collapses every invalidation raised before the
	// scheduler's next tick into a single pass.
	InvalidateCoalesce Invalidation = "coalesce"

	// InvalidateImmediate runs a pass for each invalidation as it happens.
	InvalidateImmediate Invalidation = "immediate"
)

// Config is the construction configuration of a grid. The zero value is
// usable and yields the defaults.
type Config struct {
	// TargetCellWidth is the desired column width in pixels.
	TargetCellWidth float64 `toml:"target_cell_width" json:"target_cell_width,omitempty" bson:"target_cell_width,omitempty"`

	// CellWidth multiplies TargetCellWidth.
	CellWidth float64 `toml:"cell_width" json:"cell_width,omitempty" bson:"cell_width,omitempty"`

	// Centered shifts an underfull grid so its occupied columns are centered.
	Centered bool `toml:"centered" json:"centered,omitempty" bson:"centered,omitempty"`

	// Invalidation selects the scheduling policy for layout passes.
	Invalidation Invalidation `toml:"invalidation" json:"invalidation,omitempty" bson:"invalidation,omitempty"`

	// ResizeDebounceMS is the resize quiet window in milliseconds.
	ResizeDebounceMS int `toml:"resize_debounce_ms" json:"resize_debounce_ms,omitempty" bson:"resize_debounce_ms,omitempty"`
}

// WithDefaults returns a copy of c with unset fields filled in.
func (c Config) WithDefaults() Config {
	if c.TargetCellWidth == 0 {
		c.TargetCellWidth = DefaultTargetCellWidth
	}
	if c.CellWidth == 0 {
		c.CellWidth = DefaultCellWidth
	}
	if c.Invalidation == "" {
		c.Invalidation = InvalidateCoalesce
	}
	if c.ResizeDebounceMS == 0 {
		c.ResizeDebounceMS = int(DefaultResizeDebounce / time.Millisecond)
	}
	return c
}

// Validate reports configuration values the grid cannot work with.
func (c Config) Validate() error {
	if err := errors.ValidateWidth("target_cell_width", c.TargetCellWidth); err != nil {
		return err
	}
	if err := errors.ValidateLength("cell_width", c.CellWidth); err != nil {
		return err
	}
	if w := c.EffectiveCellWidth(); w < MinCellWidth {
		return errors.New(errors.ErrCodeInvalidInput, "effective cell width must be at least %gpx, got %g", MinCellWidth, w)
	}
	switch c.Invalidation {
	case "", InvalidateCoalesce, InvalidateImmediate:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown invalidation policy %q", c.Invalidation)
	}
	if c.ResizeDebounceMS < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "resize_debounce_ms cannot be negative")
	}
	return nil
}

// EffectiveCellWidth is the column width the column count is derived from.
func (c Config) EffectiveCellWidth() float64 {
	c = c.WithDefaults()
	return c.TargetCellWidth * c.CellWidth
}

// ResizeDebounce returns the resize quiet window.
func (c Config) ResizeDebounce() time.Duration {
	return time.Duration(c.WithDefaults().ResizeDebounceMS) * time.Millisecond
}
