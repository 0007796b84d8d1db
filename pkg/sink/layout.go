package sink

import (
	"encoding/json"
	"fmt"
)

// Layout is the result of laying out one board.
type Layout struct {
	Board       string   `json:"board,omitempty" bson:"board,omitempty"`
	BoardHash   string   `json:"board_hash" bson:"board_hash"`
	Viewport    Viewport `json:"viewport" bson:"viewport"`
	Width       float64  `json:"width" bson:"width"`
	Columns     int      `json:"columns" bson:"columns"`
	ColumnWidth float64  `json:"column_width" bson:"column_width"`
	Height      float64  `json:"height" bson:"height"`
	Centered    bool     `json:"centered,omitempty" bson:"centered,omitempty"`
	Passes      int      `json:"passes" bson:"passes"`
	Restarts    int      `json:"restarts" bson:"restarts"`
	Cells       []Cell   `json:"cells" bson:"cells"`
}

// Viewport is the window the layout was computed for.
type Viewport struct {
	Width     float64 `json:"width" bson:"width"`
	Height    float64 `json:"height" bson:"height"`
	Scrollbar float64 `json:"scrollbar" bson:"scrollbar"`
	// Scrolling is true when the content overflowed and the scrollbar took
	// its width from the container.
	Scrolling bool `json:"scrolling" bson:"scrolling"`
}

// Cell is the geometry of one laid out cell.
type Cell struct {
	ID      string  `json:"id" bson:"id"`
	Label   string  `json:"label,omitempty" bson:"label,omitempty"`
	Span    int     `json:"span" bson:"span"`
	Columns []int   `json:"columns" bson:"columns"`
	X       float64 `json:"x" bson:"x"`
	Y       float64 `json:"y" bson:"y"`
	Width   float64 `json:"width" bson:"width"`
	Height  float64 `json:"height" bson:"height"`
}

// Title returns the label, falling back to the id.
func (c Cell) Title() string {
	if c.Label != "" {
		return c.Label
	}
	return c.ID
}

// Bottom returns the y coordinate of the lower edge.
func (c Cell) Bottom() float64 { return c.Y + c.Height }

// RenderJSON encodes the layout as indented JSON.
func RenderJSON(l Layout) ([]byte, error) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal layout: %w", err)
	}
	return append(data, '\n'), nil
}

// ParseJSON decodes a layout written by [RenderJSON].
func ParseJSON(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	return l, nil
}
