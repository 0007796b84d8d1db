package grid

import "slices"

// Snapshot is a read-only copy of the grid state after the last pass.
type Snapshot struct {
	Width       float64      `json:"width"`
	Columns     int          `json:"columns"`
	ColumnWidth float64      `json:"column_width"`
	Height      float64      `json:"height"`
	Blocks      []BlockState `json:"blocks"`
	Stats       Stats        `json:"stats"`
}

// BlockState is the layout of one block as last written to its wrapper.
type BlockState struct {
	Element Element `json:"-"`
	Span    int     `json:"span"`
	Columns []int   `json:"columns"`
	Left    float64 `json:"left"`
	Top     float64 `json:"top"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	// Placed is false for blocks registered after the last completed pass.
	Placed bool `json:"placed"`
}

// Snapshot returns the current layout in registry order.
func (g *Grid) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := Snapshot{
		Width:       g.width,
		Columns:     g.columns,
		ColumnWidth: columnWidth(g.width, g.columns),
		Height:      g.height,
		Blocks:      make([]BlockState, 0, g.reg.len()),
		Stats:       g.stats,
	}
	for _, b := range g.reg.blocks {
		s.Blocks = append(s.Blocks, BlockState{
			Element: b.element,
			Span:    b.lastSpan,
			Columns: slices.Clone(b.placement.Columns),
			Left:    b.written.left,
			Top:     b.written.top,
			Width:   b.written.width,
			Height:  b.height,
			Placed:  b.written.hasPos,
		})
	}
	return s
}
