package grid_test

import (
	"fmt"

	"github.com/matzehuels/autogrid/pkg/grid"
	"github.com/matzehuels/autogrid/pkg/schedule"
	"github.com/matzehuels/autogrid/pkg/surface"
)

func ExampleColumns() {
	fmt.Println(grid.Columns(1200, 400))
	fmt.Println(grid.Columns(1185, 400))
	fmt.Println(grid.Columns(100, 400))
	// Output:
	// 3
	// 3
	// 1
}

func ExamplePlace() {
	heights := []float64{3, 2, 1, 3, 0}
	cols := grid.Place(heights, 3)
	fmt.Println(cols, grid.Top(heights, cols))
	// Output: [0 1 2] 3
}

func ExampleNew() {
	clock := schedule.NewManual()
	view := surface.NewViewport(1200, 800, 0)
	container := surface.NewContainer(view, clock)

	g, err := grid.New(container, grid.Config{TargetCellWidth: 400},
		grid.WithScheduler(clock),
		grid.WithMutations(container),
		grid.WithResize(view),
	)
	if err != nil {
		panic(err)
	}
	defer g.Disable()

	g.Add(&surface.Card{Name: "wide", Height: 100}, grid.BlockOptions{Span: 2})
	g.Add(&surface.Card{Name: "short", Height: 50}, grid.BlockOptions{Span: 1})
	g.Add(&surface.Card{Name: "tall", Height: 80}, grid.BlockOptions{Span: 1})
	clock.Flush()

	snap := g.Snapshot()
	fmt.Printf("%d columns of %gpx, %gpx tall\n", snap.Columns, snap.ColumnWidth, snap.Height)
	for _, b := range snap.Blocks {
		card := b.Element.(*surface.Card)
		fmt.Printf("%-5s cols=%v left=%g top=%g\n", card.Name, b.Columns, b.Left, b.Top)
	}
	// Output:
	// 3 columns of 400px, 130px tall
	// wide  cols=[0 1] left=0 top=0
	// short cols=[2] left=800 top=0
	// tall  cols=[2] left=800 top=50
}
