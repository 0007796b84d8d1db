package grid

import (
	"math/rand/v2"
	"reflect"
	"testing"
)

func TestPlace(t *testing.T) {
	tests := []struct {
		name    string
		heights []float64
		span    int
		want    []int
	}{
		{"ties go left", []float64{0, 0, 0}, 1, []int{0}},
		{"shortest column", []float64{10, 0, 5}, 1, []int{1}},
		{"shortest adjacent pair", []float64{10, 0, 5}, 2, []int{1, 2}},
		{"pair needs a longer prefix", []float64{0, 10, 0}, 2, []int{0, 1}},
		{"full row", []float64{7, 3, 9}, 3, []int{0, 1, 2}},
		{"span clamps to columns", []float64{7, 3, 9}, 5, []int{0, 1, 2}},
		{"span below one", []float64{7, 3, 9}, 0, []int{1}},
		{"run of three", []float64{3, 2, 1, 3, 0}, 3, []int{0, 1, 2}},
		{"equal pairs prefer left", []float64{5, 5, 5, 5}, 2, []int{0, 1}},
		{"single column", []float64{42}, 2, []int{0}},
		{"no columns", nil, 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Place(tt.heights, tt.span)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Place(%v, %d) = %v, want %v", tt.heights, tt.span, got, tt.want)
			}
		})
	}
}

func TestPlaceProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for iter := 0; iter < 2000; iter++ {
		n := 1 + rng.IntN(12)
		heights := make([]float64, n)
		for i := range heights {
			heights[i] = float64(rng.IntN(6) * 50)
		}
		span := 1 + rng.IntN(n)

		got := Place(heights, span)
		if len(got) != span {
			t.Fatalf("Place(%v, %d) returned %d columns", heights, span, len(got))
		}
		for i, c := range got {
			if c < 0 || c >= n {
				t.Fatalf("Place(%v, %d) = %v: index out of range", heights, span, got)
			}
			if i > 0 && got[i-1]+1 != c {
				t.Fatalf("Place(%v, %d) = %v: not contiguous", heights, span, got)
			}
		}
	}
}

func TestPlaceDoesNotMutateHeights(t *testing.T) {
	heights := []float64{30, 10, 20}
	Place(heights, 2)
	if !reflect.DeepEqual(heights, []float64{30, 10, 20}) {
		t.Errorf("heights mutated: %v", heights)
	}
}

func TestTop(t *testing.T) {
	heights := []float64{10, 40, 25}
	if got := Top(heights, []int{1, 2}); got != 40 {
		t.Errorf("Top = %v, want 40", got)
	}
	if got := Top(heights, []int{2}); got != 25 {
		t.Errorf("Top = %v, want 25", got)
	}
}

func TestCenterOffset(t *testing.T) {
	tests := []struct {
		columns, extent int
		colWidth        float64
		want            float64
	}{
		{3, 1, 400, 400},
		{3, 2, 400, 200},
		{3, 3, 400, 0},
		{4, 0, 300, 0},
	}
	for _, tt := range tests {
		if got := CenterOffset(tt.columns, tt.extent, tt.colWidth); got != tt.want {
			t.Errorf("CenterOffset(%d, %d, %v) = %v, want %v", tt.columns, tt.extent, tt.colWidth, got, tt.want)
		}
	}
}
