package grid

import (
	"cmp"
	"slices"
)

// Placement is the outcome of placing one block: the ascending, contiguous
// column indices it occupies and the vertical offset it starts at.
type Placement struct {
	Columns []int
	Top     float64
}

// Span returns the number of columns the placement occupies.
func (p Placement) Span() int { return len(p.Columns) }

// First returns the leftmost occupied column.
func (p Placement) First() int {
	if len(p.Columns) == 0 {
		return 0
	}
	return p.Columns[0]
}

// Place chooses the columns a block of the given span occupies.
//
// Columns are ranked by current height, shortest first; equal heights keep
// their left-to-right order. Prefixes of that ranking are tried from length
// span upwards, and the first prefix that contains span physically adjacent
// columns wins. The returned indices are that adjacent run, in ascending
// order. This is a greedy heuristic that fills the visually shortest columns
// first; it does not search for an optimal packing.
//
//	C0 C1 C2 C3 C4        span 3, heights [3 2 1 3 0]
//	## ## ## ## ##        ranking [4 2 1 0 3]
//	## ##    ##           prefix {1 2 4} has no run of 3
//	##       ##           prefix {0 1 2 4} has run {0 1 2}
//
// span is clamped to [1, len(heights)]. Place returns nil for no columns.
func Place(heights []float64, span int) []int {
	n := len(heights)
	if n == 0 {
		return nil
	}
	span = min(max(span, 1), n)

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(heights[a], heights[b])
	})

	prefix := make([]int, 0, n)
	for k := span; k <= n; k++ {
		prefix = append(prefix[:0], order[:k]...)
		slices.Sort(prefix)
		if start, ok := findRun(prefix, span); ok {
			return slices.Clone(prefix[start : start+span])
		}
	}

	// Unreachable while span <= n: the full ranking holds every column.
	slices.Sort(order)
	return order
}

// findRun returns the start of the first run of span consecutive integers in
// the ascending slice idx.
func findRun(idx []int, span int) (int, bool) {
	run := 1
	for i := range idx {
		if i > 0 && idx[i-1]+1 == idx[i] {
			run++
		} else {
			run = 1
		}
		if run == span {
			return i - span + 1, true
		}
	}
	return 0, false
}

// Top returns the vertical offset a block placed on cols starts at: the
// tallest of those columns.
func Top(heights []float64, cols []int) float64 {
	var top float64
	for i, c := range cols {
		if i == 0 || heights[c] > top {
			top = heights[c]
		}
	}
	return top
}

// CenterOffset returns the horizontal shift that centers an underfull grid.
// extent is one past the rightmost column any block occupies.
func CenterOffset(columns, extent int, colWidth float64) float64 {
	if extent >= columns || extent <= 0 {
		return 0
	}
	return float64(columns-extent) * colWidth / 2
}
