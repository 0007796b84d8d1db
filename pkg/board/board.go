// Package board reads and validates board files.
//
// A board describes everything needed to lay out a grid headlessly: the grid
// configuration, the viewport it is shown in and the cells it holds. Boards
// are written in TOML or JSON:
//
//	name = "moodboard"
//
//	[grid]
//	target_cell_width = 300
//	centered = true
//
//	[viewport]
//	width = 1280
//	height = 720
//
//	[[cell]]
//	id = "hero"
//	span = 2
//	height = 320
//
//	[[cell]]
//	label = "photo"
//	height = 40
//	aspect_ratio = 1.5
//
// Cells without an id receive a stable generated one.
package board

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/matzehuels/autogrid/pkg/grid"
	"github.com/matzehuels/autogrid/pkg/surface"
)

// Viewport defaults.
const (
	DefaultViewportWidth  = 1200.0
	DefaultViewportHeight = 800.0
)

// Board is a grid configuration plus the cells laid out in it.
type Board struct {
	ID       string      `toml:"id" json:"id,omitempty" bson:"id,omitempty"`
	Name     string      `toml:"name" json:"name,omitempty" bson:"name,omitempty"`
	Grid     grid.Config `toml:"grid" json:"grid" bson:"grid"`
	Viewport Viewport    `toml:"viewport" json:"viewport" bson:"viewport"`
	Cells    []Cell      `toml:"cell" json:"cells" bson:"cells"`
}

// Viewport is the simulated browser window.
type Viewport struct {
	Width  float64 `toml:"width" json:"width,omitempty" bson:"width,omitempty"`
	Height float64 `toml:"height" json:"height,omitempty" bson:"height,omitempty"`
	// Scrollbar is the vertical scrollbar width. Unset means
	// [surface.DefaultScrollbar]; zero models overlay scrollbars.
	Scrollbar *float64 `toml:"scrollbar" json:"scrollbar,omitempty" bson:"scrollbar,omitempty"`
}

// WithDefaults fills unset dimensions.
func (v Viewport) WithDefaults() Viewport {
	if v.Width == 0 {
		v.Width = DefaultViewportWidth
	}
	if v.Height == 0 {
		v.Height = DefaultViewportHeight
	}
	if v.Scrollbar == nil {
		sb := surface.DefaultScrollbar
		v.Scrollbar = &sb
	}
	return v
}

// ScrollbarWidth returns the scrollbar width, or the default when unset.
func (v Viewport) ScrollbarWidth() float64 {
	if v.Scrollbar == nil {
		return surface.DefaultScrollbar
	}
	return *v.Scrollbar
}

// Cell is one block of the board.
type Cell struct {
	ID    string `toml:"id" json:"id" bson:"id"`
	Label string `toml:"label" json:"label,omitempty" bson:"label,omitempty"`
	// Span is the requested column span; zero means one.
	Span int `toml:"span" json:"span,omitempty" bson:"span,omitempty"`
	// Height is the fixed part of the cell height in pixels.
	Height float64 `toml:"height" json:"height" bson:"height"`
	// AspectRatio adds a media area of width/AspectRatio pixels.
	AspectRatio float64 `toml:"aspect_ratio" json:"aspect_ratio,omitempty" bson:"aspect_ratio,omitempty"`
}

// Options returns the block options the cell is registered with.
func (c Cell) Options() grid.BlockOptions {
	return grid.BlockOptions{Span: max(c.Span, 1)}
}

// Card returns the surface content the cell is rendered as.
func (c Cell) Card() *surface.Card {
	return &surface.Card{Name: c.ID, Height: c.Height, AspectRatio: c.AspectRatio}
}

// Title returns the label, falling back to the id.
func (c Cell) Title() string {
	if c.Label != "" {
		return c.Label
	}
	return c.ID
}

// cellNamespace seeds generated cell ids.
var cellNamespace = uuid.MustParse("5c4b1a52-8f0e-4f6e-9d59-2b7f3c1e6a10")

// Normalize assigns ids to cells that lack one. Generated ids depend only on
// the board name and the cell position, so parsing the same file twice yields
// the same ids.
func (b *Board) Normalize() {
	for i := range b.Cells {
		if b.Cells[i].ID != "" {
			continue
		}
		seed := b.Name + "/" + strconv.Itoa(i)
		b.Cells[i].ID = "cell-" + uuid.NewSHA1(cellNamespace, []byte(seed)).String()[:8]
	}
}

// NewID returns a random board id.
func NewID() string {
	return uuid.NewString()
}
