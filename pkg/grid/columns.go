package grid

import "math"

// MaxColumns caps the column count. Every block placement costs time linear
// in the column count.
const MaxColumns = 1024

// Columns derives the column count for a container of the given width.
// The result is round(width / cellWidth), never less than one and never more
// than [MaxColumns]. A non-positive cellWidth falls back to
// [DefaultTargetCellWidth].
func Columns(width, cellWidth float64) int {
	if cellWidth <= 0 {
		cellWidth = DefaultTargetCellWidth
	}
	if width <= 0 || math.IsNaN(width) {
		return 1
	}
	n := math.Round(width / cellWidth)
	if n >= MaxColumns {
		return MaxColumns
	}
	return max(1, int(n))
}

// FreshHeights returns the zeroed column heights a pass starts from.
func FreshHeights(columns int) []float64 {
	return make([]float64, max(columns, 0))
}

// columnWidth is the width of a single column in whole pixels.
func columnWidth(width float64, columns int) float64 {
	return math.Floor(width / float64(columns))
}
