package pipeline

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/autogrid/pkg/board"
	"github.com/matzehuels/autogrid/pkg/errors"
	"github.com/matzehuels/autogrid/pkg/grid"
	"github.com/matzehuels/autogrid/pkg/schedule"
	"github.com/matzehuels/autogrid/pkg/sink"
	"github.com/matzehuels/autogrid/pkg/surface"
)

// Compute lays b out in vp without touching any cache.
func Compute(ctx context.Context, b *board.Board, vp board.Viewport, logger *log.Logger) (sink.Layout, error) {
	if logger == nil {
		logger = log.Default()
	}
	vp = vp.WithDefaults()

	m := schedule.NewManual()
	view := surface.NewViewport(vp.Width, vp.Height, vp.ScrollbarWidth())
	container := surface.NewContainer(view, m)

	g, err := grid.New(container, b.Grid,
		grid.WithScheduler(m),
		grid.WithMutations(container),
		grid.WithResize(view),
		grid.WithLogger(logger),
		grid.WithContext(ctx),
	)
	if err != nil {
		return sink.Layout{}, err
	}
	defer g.Disable()

	cells := make(map[*surface.Card]board.Cell, len(b.Cells))
	for _, c := range b.Cells {
		card := c.Card()
		cells[card] = c
		g.Add(card, c.Options())
	}
	m.Flush()
	if err := ctx.Err(); err != nil {
		return sink.Layout{}, err
	}

	l, err := Assemble(b, vp, g.Config().Centered, g.Snapshot(), cells)
	if err != nil {
		return sink.Layout{}, err
	}
	logger.Debug("board laid out", "board", b.Name, "cells", len(l.Cells), "columns", l.Columns, "width", l.Width, "restarts", l.Restarts)
	return l, nil
}

// Assemble converts a grid snapshot into a [sink.Layout]. cells maps every
// card registered with the grid to the board cell it stands for; blocks that
// are not cards are an internal error.
func Assemble(b *board.Board, vp board.Viewport, centered bool, snap grid.Snapshot, cells map[*surface.Card]board.Cell) (sink.Layout, error) {
	l := sink.Layout{
		Board:     b.Name,
		BoardHash: b.Hash(),
		Viewport: sink.Viewport{
			Width:     vp.Width,
			Height:    vp.Height,
			Scrollbar: vp.ScrollbarWidth(),
			Scrolling: snap.Width < vp.Width,
		},
		Width:       snap.Width,
		Columns:     snap.Columns,
		ColumnWidth: snap.ColumnWidth,
		Height:      snap.Height,
		Centered:    centered,
		Passes:      snap.Stats.Passes,
		Restarts:    snap.Stats.Restarts,
		Cells:       make([]sink.Cell, 0, len(snap.Blocks)),
	}
	for _, bs := range snap.Blocks {
		card, ok := bs.Element.(*surface.Card)
		if !ok {
			return sink.Layout{}, errors.New(errors.ErrCodeInternal, "unexpected element %T", bs.Element)
		}
		cell, ok := cells[card]
		if !ok {
			return sink.Layout{}, errors.New(errors.ErrCodeInternal, "card %q has no cell", card.Name)
		}
		l.Cells = append(l.Cells, sink.Cell{
			ID:      cell.ID,
			Label:   cell.Label,
			Span:    bs.Span,
			Columns: bs.Columns,
			X:       bs.Left,
			Y:       bs.Top,
			Width:   bs.Width,
			Height:  bs.Height,
		})
	}
	return l, nil
}
