package grid

import (
	"math"
	"testing"
)

func TestColumns(t *testing.T) {
	tests := []struct {
		name      string
		width     float64
		cellWidth float64
		want      int
	}{
		{"exact", 1200, 400, 3},
		{"rounds down", 1300, 400, 3},
		{"rounds up", 1100, 400, 3},
		{"half rounds away from zero", 1000, 400, 3},
		{"narrow", 150, 400, 1},
		{"zero width", 0, 400, 1},
		{"negative width", -20, 400, 1},
		{"default cell width", 1600, 0, 4},
		{"small cells", 1024, 100, 10},
		{"capped", 1e12, 400, MaxColumns},
		{"infinite width", math.Inf(1), 400, MaxColumns},
		{"tiny cells", 1200, 1e-9, MaxColumns},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Columns(tt.width, tt.cellWidth); got != tt.want {
				t.Errorf("Columns(%v, %v) = %d, want %d", tt.width, tt.cellWidth, got, tt.want)
			}
		})
	}
}

func TestColumnsLowerBound(t *testing.T) {
	for width := 1.0; width < 5000; width += 37 {
		for _, cell := range []float64{50, 120, 400, 999} {
			got := Columns(width, cell)
			if got < 1 {
				t.Fatalf("Columns(%v, %v) = %d, want >= 1", width, cell, got)
			}
			if r := int(width/cell + 0.5); r >= 1 && got != r {
				t.Fatalf("Columns(%v, %v) = %d, want %d", width, cell, got, r)
			}
		}
	}
}

func TestFreshHeights(t *testing.T) {
	h := FreshHeights(4)
	if len(h) != 4 {
		t.Fatalf("len = %d, want 4", len(h))
	}
	for i, v := range h {
		if v != 0 {
			t.Errorf("h[%d] = %v, want 0", i, v)
		}
	}
	if len(FreshHeights(-1)) != 0 {
		t.Error("negative column count should yield no heights")
	}
}
