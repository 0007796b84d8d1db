package sink

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal cell geometry used when TextOptions leaves it unset.
const (
	DefaultCharWidth = 8.0
	DefaultRowHeight = 16.0
)

// TextOptions configures [RenderText].
type TextOptions struct {
	// CharWidth is the number of pixels one terminal column stands for.
	CharWidth float64
	// RowHeight is the number of pixels one terminal row stands for.
	RowHeight float64
	// Color paints every cell in its palette color.
	Color bool
	// Header adds a summary line above the drawing.
	Header bool
}

var (
	textFrame  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	textHeader = lipgloss.NewStyle().Bold(true)
)

// RenderText draws the layout with box-drawing characters, scaled down so one
// character covers CharWidth x RowHeight pixels.
func RenderText(l Layout, opts TextOptions) string {
	cw, rh := opts.CharWidth, opts.RowHeight
	if cw <= 0 {
		cw = DefaultCharWidth
	}
	if rh <= 0 {
		rh = DefaultRowHeight
	}

	boxes := make([]textBox, len(l.Cells))
	cols := max(int(math.Ceil(l.Width/cw)), 1)
	rows := max(int(math.Ceil(l.Height/rh)), 1)
	for i, c := range l.Cells {
		b := textBox{
			x0: int(math.Round(c.X / cw)),
			y0: int(math.Round(c.Y / rh)),
			x1: int(math.Round((c.X+c.Width)/cw)) - 1,
			y1: int(math.Round(c.Bottom()/rh)) - 1,
		}
		b.x1 = max(b.x1, b.x0+1)
		b.y1 = max(b.y1, b.y0+1)
		cols = max(cols, b.x1+1)
		rows = max(rows, b.y1+1)
		boxes[i] = b
	}

	cv := newCanvas(cols, rows)
	for i, b := range boxes {
		cv.box(i, b, l.Cells[i].Title())
	}
	body := cv.render(func(owner int, s string) string {
		if !opts.Color || owner < 0 {
			return s
		}
		color := palette[colorIndex(l.Cells[owner].ID)].ansi
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(s)
	})

	out := textFrame.Render(body)
	if opts.Header {
		title := l.Board
		if title == "" {
			title = "grid"
		}
		head := textHeader.Render(title) + fmt.Sprintf("  %d columns, %.0fpx wide, %.0fpx tall, %d cells",
			l.Columns, l.Width, l.Height, len(l.Cells))
		out = lipgloss.JoinVertical(lipgloss.Left, head, out)
	}
	return out
}

type textBox struct{ x0, y0, x1, y1 int }

type canvas struct {
	cols, rows int
	glyphs     [][]rune
	owners     [][]int
}

func newCanvas(cols, rows int) *canvas {
	cv := &canvas{cols: cols, rows: rows}
	cv.glyphs = make([][]rune, rows)
	cv.owners = make([][]int, rows)
	for y := range rows {
		cv.glyphs[y] = []rune(strings.Repeat(" ", cols))
		cv.owners[y] = make([]int, cols)
		for x := range cv.owners[y] {
			cv.owners[y][x] = -1
		}
	}
	return cv
}

func (cv *canvas) set(x, y int, r rune, owner int) {
	if x < 0 || y < 0 || x >= cv.cols || y >= cv.rows {
		return
	}
	cv.glyphs[y][x] = r
	cv.owners[y][x] = owner
}

// box draws b with its label embedded in the top border.
func (cv *canvas) box(owner int, b textBox, label string) {
	for x := b.x0 + 1; x < b.x1; x++ {
		cv.set(x, b.y0, '─', owner)
		cv.set(x, b.y1, '─', owner)
	}
	for y := b.y0 + 1; y < b.y1; y++ {
		cv.set(b.x0, y, '│', owner)
		cv.set(b.x1, y, '│', owner)
	}
	cv.set(b.x0, b.y0, '┌', owner)
	cv.set(b.x1, b.y0, '┐', owner)
	cv.set(b.x0, b.y1, '└', owner)
	cv.set(b.x1, b.y1, '┘', owner)

	runes := []rune(label)
	room := b.x1 - b.x0 - 1
	if len(runes) > room {
		runes = runes[:max(room, 0)]
	}
	for i, r := range runes {
		cv.set(b.x0+1+i, b.y0, r, owner)
	}
}

// render joins the canvas rows, passing runs of equal ownership to paint.
func (cv *canvas) render(paint func(owner int, s string) string) string {
	lines := make([]string, cv.rows)
	for y := range cv.rows {
		var sb strings.Builder
		start := 0
		for x := 1; x <= cv.cols; x++ {
			if x < cv.cols && cv.owners[y][x] == cv.owners[y][start] {
				continue
			}
			sb.WriteString(paint(cv.owners[y][start], string(cv.glyphs[y][start:x])))
			start = x
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}
