package grid

import (
	"slices"
	"time"
)

// maxRestarts bounds how often one pass may start over because the container
// width moved under it. A width that keeps flipping (a scrollbar that appears
// at one width and disappears at the other) would otherwise never settle.
const maxRestarts = 8

// layout runs a pass, starting over with a re-measured width whenever the
// container width changes mid-pass. Once a pass settles it returns the resize
// callbacks owed to every block whose span or width changed since its
// subscribers were last told. A run that gives up, or whose context is done,
// returns nothing and leaves the debt for the next settled pass. The caller
// holds g.mu.
func (g *Grid) layout() []notice {
	start := time.Now()
	settled := false
	for restarts := 0; ; restarts++ {
		if err := g.ctx.Err(); err != nil {
			g.logger.Debug("layout abandoned", "err", err)
			break
		}
		if !g.container.Visible() {
			g.stats.Skipped++
			g.hooks.OnSkip(g.ctx)
			g.logger.Debug("layout skipped, container not visible")
			break
		}
		if g.pass() {
			settled = true
			g.stats.Passes++
			d := time.Since(start)
			g.hooks.OnPass(g.ctx, g.columns, g.reg.len(), restarts, d)
			g.logger.Debug("layout pass", "columns", g.columns, "blocks", g.reg.len(), "height", g.height, "restarts", restarts, "duration", d)
			break
		}
		if g.ctx.Err() != nil {
			break
		}

		prev := g.width
		g.stats.Restarts++
		g.width = g.container.Width()
		g.columns = Columns(g.width, g.cellWidth)
		g.hooks.OnRestart(g.ctx, prev, g.width)
		g.logger.Debug("container width changed during layout, restarting", "from", prev, "to", g.width, "columns", g.columns)

		if restarts+1 >= maxRestarts {
			g.logger.Warn("layout did not settle, giving up", "restarts", restarts+1, "width", g.width)
			break
		}
	}
	if !settled {
		return nil
	}

	var notes []notice
	for _, b := range g.reg.blocks {
		if !b.owed {
			continue
		}
		b.owed = false
		if len(b.subscribers) == 0 {
			continue
		}
		notes = append(notes, notice{span: b.lastSpan, fns: slices.Clone(b.subscribers)})
	}
	return notes
}

// pass places every block once. It returns false as soon as the container
// width differs from the width the pass started with, or the grid's context
// is done; geometry written up to that point is left for the next pass to
// correct.
func (g *Grid) pass() bool {
	width := g.width
	columns := g.columns
	colWidth := columnWidth(width, columns)
	heights := FreshHeights(columns)

	// Widths first: a block's height depends on the width it is given.
	extent := 0
	for _, b := range g.reg.blocks {
		span := b.effectiveSpan(columns)
		w := colWidth * float64(span)

		if b.lastSpan != span || !b.written.hasWidth || b.written.width != w {
			b.owed = true
			b.lastSpan = span
		}
		if !b.written.hasWidth || b.written.width != w {
			b.wrapper.SetWidth(w)
			b.written.width = w
			b.written.hasWidth = true
		}
		if !b.wrapper.Mounted() {
			b.wrapper.Mount()
		}

		cols := Place(heights, span)
		top := Top(heights, cols)
		b.height = b.wrapper.Height()
		for _, c := range cols {
			heights[c] = top + b.height
		}
		b.placement = Placement{Columns: cols, Top: top}
		extent = max(extent, cols[0]+span)

		if g.container.Width() != width || g.ctx.Err() != nil {
			return false
		}
	}

	var offset float64
	if g.cfg.Centered {
		offset = CenterOffset(columns, extent, colWidth)
	}
	for _, b := range g.reg.blocks {
		left := float64(b.placement.First())*colWidth + offset
		top := b.placement.Top
		if !b.written.hasPos || b.written.left != left {
			b.wrapper.SetLeft(left)
			b.written.left = left
		}
		if !b.written.hasPos || b.written.top != top {
			b.wrapper.SetTop(top)
			b.written.top = top
		}
		b.written.hasPos = true

		if g.container.Width() != width {
			return false
		}
	}

	h := slices.Max(append(heights, 0))
	if !g.heightSet || g.height != h {
		g.container.SetHeight(h)
		g.height = h
		g.heightSet = true
	}
	return g.container.Width() == width
}
