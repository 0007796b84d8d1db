package surface

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/autogrid/pkg/grid"
	"github.com/matzehuels/autogrid/pkg/schedule"
)

func TestCardHeightAt(t *testing.T) {
	tests := []struct {
		name  string
		card  Card
		width float64
		want  float64
	}{
		{"fixed", Card{Name: "a", Height: 120}, 400, 120},
		{"media", Card{Name: "b", Height: 20, AspectRatio: 2}, 400, 220},
		{"media without width", Card{Name: "c", Height: 20, AspectRatio: 2}, 0, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.card.HeightAt(tt.width); got != tt.want {
				t.Errorf("HeightAt(%v) = %v, want %v", tt.width, got, tt.want)
			}
		})
	}
}

func TestViewportResizeNotifiesOnChange(t *testing.T) {
	v := NewViewport(800, 600, -1)
	require.Equal(t, DefaultScrollbar, v.Scrollbar())

	var calls int
	cancel := v.Subscribe(func() { calls++ })

	v.Resize(800, 600)
	require.Zero(t, calls)

	v.Resize(1024, 600)
	require.Equal(t, 1, calls)

	cancel()
	v.Resize(640, 480)
	require.Equal(t, 1, calls)

	w, h := v.Size()
	require.Equal(t, 640.0, w)
	require.Equal(t, 480.0, h)
}

func TestContainerWidthLosesScrollbarOnOverflow(t *testing.T) {
	v := NewViewport(1200, 300, 15)
	c := NewContainer(v, schedule.NewManual())
	require.Equal(t, 1200.0, c.Width())

	c.SetHeight(300)
	require.Equal(t, 1200.0, c.Width())

	c.SetHeight(301)
	require.Equal(t, 1185.0, c.Width())

	c.SetHeight(0)
	b := c.Wrap(&Card{Name: "tall", Height: 500})
	require.Equal(t, 1200.0, c.Width(), "unmounted boxes do not count")
	b.Mount()
	require.Equal(t, 1185.0, c.Width())
	b.Detach()
	require.Equal(t, 1200.0, c.Width())
}

func TestContainerOffsetCountsTowardsOverflow(t *testing.T) {
	v := NewViewport(1000, 500, 10)
	c := NewContainer(v, nil, WithOffset(450))
	c.SetHeight(60)
	require.Equal(t, 990.0, c.Width())
	require.True(t, c.Visible())

	v.Resize(1000, 450)
	require.False(t, c.Visible(), "container starts below the viewport")
}

func TestContainerVisible(t *testing.T) {
	v := NewViewport(800, 600, 0)
	c := NewContainer(v, nil)
	require.True(t, c.Visible())

	c.SetHidden(true)
	require.False(t, c.Visible())
	c.SetHidden(false)

	v.Resize(0, 600)
	require.False(t, c.Visible())
}

func TestMutationsAreBatched(t *testing.T) {
	m := schedule.NewManual()
	c := NewContainer(NewViewport(800, 600, 0), m)

	var calls int
	cancel := c.Subscribe(func() { calls++ })

	boxes := []grid.Wrapper{
		c.Wrap(&Card{Name: "a"}),
		c.Wrap(&Card{Name: "b"}),
		c.Wrap(&Card{Name: "c"}),
	}
	for _, b := range boxes {
		b.Mount()
	}
	require.Zero(t, calls, "delivery is deferred")
	require.Equal(t, 1, m.Pending())

	m.Flush()
	require.Equal(t, 1, calls)

	// Position writes are not structural.
	boxes[0].SetLeft(10)
	boxes[0].SetTop(10)
	boxes[0].SetWidth(10)
	require.Zero(t, m.Pending())

	boxes[1].Detach()
	boxes[2].Replace(&Card{Name: "z"})
	m.Flush()
	require.Equal(t, 2, calls)

	cancel()
	boxes[0].Detach()
	m.Flush()
	require.Equal(t, 2, calls)
}

func TestBoxTracksWrites(t *testing.T) {
	c := NewContainer(NewViewport(800, 600, 0), nil)
	card := &Card{Name: "a", Height: 10, AspectRatio: 4}
	b := c.Wrap(card).(*Box)
	require.Same(t, card, b.Element())
	require.False(t, b.Mounted())
	require.Zero(t, b.Height())

	b.Mount()
	b.Mount()
	require.Len(t, c.Boxes(), 1)

	b.SetWidth(400)
	b.SetLeft(20)
	b.SetTop(30)
	left, top, width, height := b.Rect()
	require.Equal(t, []float64{20, 30, 400, 110}, []float64{left, top, width, height})

	other := &Card{Name: "b", Height: 5}
	b.Replace(other)
	require.Same(t, other, b.Element())
	require.Equal(t, 5.0, b.Height())
}

func TestChildrenAreCopied(t *testing.T) {
	a, b := &Card{Name: "a"}, &Card{Name: "b"}
	c := NewContainer(NewViewport(800, 600, 0), nil, WithChildren(a, b))
	got := c.Children()
	require.Equal(t, []grid.Element{a, b}, got)
	got[0] = nil
	require.Same(t, a, c.Children()[0])
}

func TestGridRestartsWhenScrollbarAppears(t *testing.T) {
	m := schedule.NewManual()
	v := NewViewport(1200, 300, 15)
	c := NewContainer(v, m)

	g, err := grid.New(c, grid.Config{}, grid.WithScheduler(m), grid.WithMutations(c), grid.WithResize(v))
	require.NoError(t, err)
	defer g.Disable()

	cards := make([]*Card, 4)
	for i := range cards {
		cards[i] = &Card{Name: string(rune('a' + i)), Height: 200}
		g.Add(cards[i], grid.BlockOptions{})
	}
	m.Flush()

	snap := g.Snapshot()
	require.Equal(t, 1185.0, snap.Width)
	require.Equal(t, 3, snap.Columns)
	require.Equal(t, 400.0, snap.Height)
	require.Equal(t, 1, snap.Stats.Restarts)

	last := snap.Blocks[3]
	require.Equal(t, 0.0, last.Left)
	require.Equal(t, 200.0, last.Top)
	require.Equal(t, 395.0, last.Width)

	// The viewport grows tall enough to drop the scrollbar again.
	v.Resize(1200, 1000)
	m.Advance(grid.DefaultResizeDebounce)
	snap = g.Snapshot()
	require.Equal(t, 1200.0, snap.Width)
	require.Equal(t, 400.0, snap.Blocks[3].Width)
}
