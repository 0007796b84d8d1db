package sink

import (
	"bytes"
	"fmt"
	"html"
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	gap    float64
	labels bool
	guides bool
}

// WithGap insets every cell by gap/2 on each side.
func WithGap(gap float64) SVGOption { return func(r *svgRenderer) { r.gap = max(gap, 0) } }

// WithoutLabels omits cell labels.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

// WithColumnGuides draws a dashed line at every column boundary.
func WithColumnGuides() SVGOption { return func(r *svgRenderer) { r.guides = true } }

// RenderSVG draws the layout at its measured width. The picture is at least
// as tall as the viewport.
func RenderSVG(l Layout, opts ...SVGOption) []byte {
	r := svgRenderer{gap: 8, labels: true}
	for _, opt := range opts {
		opt(&r)
	}

	w := max(l.Width, 1)
	h := max(l.Height, l.Viewport.Height, 1)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n", w, h, w, h)
	fmt.Fprintf(&buf, `  <rect class="container" x="0" y="0" width="%.1f" height="%.1f" fill="#fafafa"/>`+"\n", w, h)
	if r.guides {
		renderGuides(&buf, l, h)
	}
	for _, c := range l.Cells {
		renderCell(&buf, &r, c)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderGuides(buf *bytes.Buffer, l Layout, h float64) {
	offset := 0.0
	if l.Centered && len(l.Cells) > 0 {
		extent := 0
		for _, c := range l.Cells {
			if len(c.Columns) > 0 {
				extent = max(extent, c.Columns[0]+len(c.Columns))
			}
		}
		offset = float64(l.Columns-extent) * l.ColumnWidth / 2
	}
	for i := 1; i < l.Columns; i++ {
		x := offset + float64(i)*l.ColumnWidth
		fmt.Fprintf(buf, `  <line class="guide" x1="%.1f" y1="0" x2="%.1f" y2="%.1f" stroke="#ddd" stroke-dasharray="4 4"/>`+"\n", x, x, h)
	}
}

func renderCell(buf *bytes.Buffer, r *svgRenderer, c Cell) {
	inset := r.gap / 2
	x, y := c.X+inset, c.Y+inset
	w, h := max(c.Width-r.gap, 0), max(c.Height-r.gap, 0)
	fill := palette[colorIndex(c.ID)].hex

	fmt.Fprintf(buf, `  <rect id="cell-%s" class="cell" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="6" fill="%s" stroke="#333" stroke-width="1"/>`+"\n",
		html.EscapeString(c.ID), x, y, w, h, fill)
	if !r.labels || h < 12 {
		return
	}
	fmt.Fprintf(buf, `  <text class="cell-label" x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="14">%s</text>`+"\n",
		x+w/2, y+h/2, html.EscapeString(c.Title()))
}
