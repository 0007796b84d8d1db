// Package grid is an automatic masonry layout engine.
//
// # Overview
//
// A [Grid] owns an ordered set of blocks inside a container. Each block spans
// one or more columns; the grid decides which columns it occupies and how far
// down it starts so that blocks pack tightly, shortest columns first. The
// layout is kept correct as the container resizes or blocks are added,
// removed or reconfigured.
//
// The engine only decides geometry. Creating wrappers, writing styles and
// observing changes are collaborator concerns expressed by [Container],
// [Wrapper], [Source] and [Scheduler]; package surface provides a headless
// implementation of all of them.
//
// # Columns
//
// The column count is round(width / cellWidth), at least one, where cellWidth
// is [Config.TargetCellWidth] times [Config.CellWidth]. Every block's span is
// clamped to the column count, so an oversized block takes the full row.
//
// # Placement
//
// [Place] is the per-block decision: rank columns by height, then take the
// shortest prefix of that ranking that contains span adjacent columns. Ties
// go to the leftmost column. The heuristic is greedy by design of the layout
// and is not an optimal bin packing.
//
// # Passes
//
// A pass zeroes the column heights, places every block in registration order
// and writes left, top and width to its wrapper when they changed. If the
// container width moves while a pass runs (a scrollbar appearing because of
// the content just written), the pass starts over with the new width. After
// the pass, resize subscribers of blocks whose span or width changed are
// notified. Invisible containers skip the pass entirely.
//
// # Scheduling
//
// Layout invalidations are coalesced into one pass per scheduler tick by
// default ([InvalidateCoalesce]); [InvalidateImmediate] runs a pass per
// invalidation. Viewport resize notifications are debounced by
// [Config.ResizeDebounce] before the width is measured again with
// [Grid.Resync].
//
//	g, err := grid.New(container, grid.Config{TargetCellWidth: 300},
//	    grid.WithScheduler(loop),
//	    grid.WithResize(viewport),
//	    grid.WithMutations(container),
//	)
//	g.Add(card, grid.BlockOptions{Span: 2})
//	g.OnResize(card, func(span int) { card.SetCompact(span == 1) })
package grid
