package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/autogrid/pkg/board"
	"github.com/matzehuels/autogrid/pkg/errors"
	"github.com/matzehuels/autogrid/pkg/grid"
	"github.com/matzehuels/autogrid/pkg/observability"
	"github.com/matzehuels/autogrid/pkg/pipeline"
	"github.com/matzehuels/autogrid/pkg/schedule"
	"github.com/matzehuels/autogrid/pkg/sink"
	"github.com/matzehuels/autogrid/pkg/surface"
)

// Terminal chrome around the grid drawing: title and status above, help
// below, plus the rounded frame drawn by the text sink.
const (
	watchHeaderRows = 2
	watchFooterRows = 1
	watchFrameCells = 2

	newCellHeight = 120.0
)

var (
	watchSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	watchHelpStyle     = lipgloss.NewStyle().Foreground(colorFaint)
)

// watchCommand creates the watch command, an interactive terminal view of a
// live grid.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		charWidth float64
		rowHeight float64
		color     bool
	)

	cmd := &cobra.Command{
		Use:   "watch [board]",
		Short: "Lay out a board live in the terminal",
		Long: `Lay out a board live in the terminal.

The terminal window is the viewport: one character stands for --char-width
pixels and one row for --row-height pixels. Resizing the terminal re-lays the
grid out after the resize settles, exactly as a browser window would.

Keys:
  ↑/↓ select a cell   +/- change its span   a add a cell   x remove it
  r   force a relayout   c toggle color   q quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := board.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("load board %s: %w", args[0], err)
			}
			return c.runWatch(cmd.Context(), b, sink.TextOptions{CharWidth: charWidth, RowHeight: rowHeight, Color: color})
		},
	}

	cmd.Flags().Float64Var(&charWidth, "char-width", sink.DefaultCharWidth, "pixels per terminal column")
	cmd.Flags().Float64Var(&rowHeight, "row-height", sink.DefaultRowHeight, "pixels per terminal row")
	cmd.Flags().BoolVar(&color, "color", true, "color cells")

	return cmd
}

func (c *CLI) runWatch(ctx context.Context, b *board.Board, text sink.TextOptions) error {
	if text.CharWidth <= 0 || text.RowHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "char-width and row-height must be positive")
	}

	m, err := newWatchModel(ctx, b, text, loggerFromContext(ctx))
	if err != nil {
		return err
	}
	defer m.close()

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}

// =============================================================================
// Pass notifications
// =============================================================================

// layoutMsg tells the model that the grid completed a pass.
type layoutMsg struct{}

// passNotifier turns grid passes into layoutMsgs. Passes run on the loop
// goroutine, so it only signals a one-slot channel and never blocks.
type passNotifier struct {
	observability.NoopGridHooks
	passes chan struct{}
}

func (n *passNotifier) OnPass(context.Context, int, int, int, time.Duration) {
	select {
	case n.passes <- struct{}{}:
	default:
	}
}

func waitForPass(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return layoutMsg{}
	}
}

// =============================================================================
// watchModel
// =============================================================================

// watchModel is the bubbletea model behind `autogrid watch`. The grid, its
// surface and the loop it runs on are shared by pointer, so copies of the
// model made by bubbletea all drive the same grid.
type watchModel struct {
	board  *board.Board
	view   *surface.Viewport
	loop   *schedule.Loop
	grid   *grid.Grid
	notify *passNotifier

	cards []*surface.Card // registry order, parallel to board.Cells
	cells map[*surface.Card]board.Cell

	text   sink.TextOptions
	layout sink.Layout
	cursor int
	status string

	width, height int // terminal size
}

func newWatchModel(ctx context.Context, b *board.Board, text sink.TextOptions, logger *log.Logger) (*watchModel, error) {
	vp := b.Viewport.WithDefaults()
	loop := schedule.NewLoop()
	view := surface.NewViewport(vp.Width, vp.Height, vp.ScrollbarWidth())
	container := surface.NewContainer(view, loop)
	notify := &passNotifier{passes: make(chan struct{}, 1)}

	g, err := grid.New(container, b.Grid,
		grid.WithScheduler(loop),
		grid.WithMutations(container),
		grid.WithResize(view),
		grid.WithLogger(logger),
		grid.WithHooks(notify),
		grid.WithContext(ctx),
	)
	if err != nil {
		loop.Close()
		return nil, err
	}

	m := &watchModel{
		board:  b,
		view:   view,
		loop:   loop,
		grid:   g,
		notify: notify,
		cells:  make(map[*surface.Card]board.Cell, len(b.Cells)),
		text:   text,
	}
	for _, cell := range b.Cells {
		m.add(cell)
	}
	logger.Debug("watching board", "board", b.Name, "cells", len(b.Cells))
	return m, nil
}

func (m *watchModel) add(cell board.Cell) {
	card := cell.Card()
	m.cards = append(m.cards, card)
	m.cells[card] = cell
	m.grid.Add(card, cell.Options())
}

// close stops the loop first so no pass can run while the grid is disabled.
func (m *watchModel) close() {
	m.loop.Close()
	m.grid.Disable()
}

func (m *watchModel) Init() tea.Cmd {
	return waitForPass(m.notify.passes)
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case layoutMsg:
		m.refresh()
		return m, waitForPass(m.notify.passes)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		cols := max(msg.Width-watchFrameCells, 1)
		rows := max(msg.Height-watchHeaderRows-watchFooterRows-watchFrameCells, 1)
		m.view.Resize(float64(cols)*m.text.CharWidth, float64(rows)*m.text.RowHeight)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.cards)-1 {
				m.cursor++
			}
		case "+", "=", "right", "l":
			m.resize(1)
		case "-", "left", "h":
			m.resize(-1)
		case "a":
			m.insert()
		case "x", "delete":
			m.remove()
		case "r":
			m.grid.Refresh()
		case "c":
			m.text.Color = !m.text.Color
		}
	}
	return m, nil
}

// resize changes the span of the selected cell by delta, clamped to the
// allowed span range.
func (m *watchModel) resize(delta int) {
	card := m.selected()
	if card == nil {
		return
	}
	cell := m.cells[card]
	span := max(cell.Span, 1) + delta
	if err := errors.ValidateSpan(span); err != nil {
		m.status = errors.UserMessage(err)
		return
	}
	cell.Span = span
	m.cells[card] = cell
	m.board.Cells[m.cursor] = cell
	m.grid.Update(card, cell.Options())
	m.status = fmt.Sprintf("%s spans %d", cell.Title(), span)
}

// insert appends a new cell and selects it.
func (m *watchModel) insert() {
	id := "cell-" + board.NewID()[:8]
	cell := board.Cell{ID: id, Label: fmt.Sprintf("new %d", len(m.cards)+1), Span: 1, Height: newCellHeight}
	m.board.Cells = append(m.board.Cells, cell)
	m.add(cell)
	m.cursor = len(m.cards) - 1
	m.status = "added " + cell.Title()
}

func (m *watchModel) remove() {
	card := m.selected()
	if card == nil {
		return
	}
	cell := m.cells[card]
	m.grid.Remove(card)
	delete(m.cells, card)
	m.cards = slices.Delete(m.cards, m.cursor, m.cursor+1)
	m.board.Cells = slices.Delete(m.board.Cells, m.cursor, m.cursor+1)
	if m.cursor >= len(m.cards) {
		m.cursor = max(len(m.cards)-1, 0)
	}
	m.status = "removed " + cell.Title()
}

func (m *watchModel) selected() *surface.Card {
	if m.cursor < 0 || m.cursor >= len(m.cards) {
		return nil
	}
	return m.cards[m.cursor]
}

// refresh rebuilds the drawable layout from the grid's last pass. Blocks the
// grid has not placed yet are left out.
func (m *watchModel) refresh() {
	snap := m.grid.Snapshot()
	snap.Blocks = slices.DeleteFunc(snap.Blocks, func(b grid.BlockState) bool { return !b.Placed })

	w, h := m.view.Size()
	sb := m.view.Scrollbar()
	vp := board.Viewport{Width: w, Height: h, Scrollbar: &sb}
	l, err := pipeline.Assemble(m.board, vp, m.grid.Config().Centered, snap, m.cells)
	if err != nil {
		m.status = errors.UserMessage(err)
		return
	}
	m.layout = l
}

func (m *watchModel) View() string {
	var b strings.Builder

	title := m.board.Name
	if title == "" {
		title = appName
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d cells · %d columns · %gpx wide · %d restarts",
		len(m.layout.Cells), m.layout.Columns, m.layout.Width, m.layout.Restarts)))
	b.WriteString("\n")

	if card := m.selected(); card != nil {
		cell := m.cells[card]
		b.WriteString(watchSelectedStyle.Render("▸ " + cell.Title()))
		b.WriteString(StyleDim.Render(fmt.Sprintf(" span %d", max(cell.Span, 1))))
	}
	if m.status != "" {
		b.WriteString(StyleDim.Render("  " + m.status))
	}
	b.WriteString("\n")

	drawing := sink.RenderText(m.layout, m.text)
	if m.height > 0 {
		lines := strings.Split(drawing, "\n")
		room := max(m.height-watchHeaderRows-watchFooterRows, 1)
		if len(lines) > room {
			lines = lines[:room]
		}
		drawing = strings.Join(lines, "\n")
	}
	b.WriteString(drawing)
	b.WriteString("\n")
	b.WriteString(watchHelpStyle.Render("↑/↓ select  +/- span  a add  x remove  r relayout  c color  q quit"))

	return b.String()
}
