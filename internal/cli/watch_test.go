package cli

import (
	"context"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/autogrid/pkg/board"
	"github.com/matzehuels/autogrid/pkg/sink"
)

func newTestWatch(t *testing.T) *watchModel {
	t.Helper()
	b, err := board.Parse([]byte(threeColumnBoard), board.FormatTOML)
	require.NoError(t, err)

	m, err := newWatchModel(context.Background(), b, sink.TextOptions{CharWidth: 8, RowHeight: 16}, log.New(io.Discard))
	require.NoError(t, err)
	t.Cleanup(m.close)
	return m
}

// settle refreshes the model until cond holds on its layout.
func settle(t *testing.T, m *watchModel, cond func(l sink.Layout) bool) {
	t.Helper()
	require.Eventually(t, func() bool {
		m.refresh()
		return cond(m.layout)
	}, 2*time.Second, 10*time.Millisecond)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestWatchInitialLayout(t *testing.T) {
	m := newTestWatch(t)
	settle(t, m, func(l sink.Layout) bool { return len(l.Cells) == 4 && l.Height == 200 })

	assert.Equal(t, 3, m.layout.Columns)
	assert.Contains(t, m.View(), "cli")
}

func TestWatchLayoutMsgRearmsWait(t *testing.T) {
	m := newTestWatch(t)
	_, cmd := m.Update(layoutMsg{})
	assert.NotNil(t, cmd)
}

func TestWatchSpanKeys(t *testing.T) {
	m := newTestWatch(t)
	settle(t, m, func(l sink.Layout) bool { return len(l.Cells) == 4 })

	m.Update(key("+"))
	assert.Equal(t, 2, m.board.Cells[0].Span)
	settle(t, m, func(l sink.Layout) bool { return l.Cells[0].Width == 800 })

	m.Update(key("-"))
	m.Update(key("-"))
	assert.Equal(t, 1, m.board.Cells[0].Span, "span stays at one")
	assert.NotEmpty(t, m.status)
	settle(t, m, func(l sink.Layout) bool { return l.Cells[0].Width == 400 })
}

func TestWatchAddRemove(t *testing.T) {
	m := newTestWatch(t)
	settle(t, m, func(l sink.Layout) bool { return len(l.Cells) == 4 })

	m.Update(key("x"))
	assert.Len(t, m.cards, 3)
	assert.Len(t, m.board.Cells, 3)
	assert.Equal(t, "b", m.board.Cells[0].ID)
	settle(t, m, func(l sink.Layout) bool { return len(l.Cells) == 3 && l.Height == 100 })

	m.Update(key("a"))
	assert.Len(t, m.cards, 4)
	assert.Equal(t, 3, m.cursor)
	settle(t, m, func(l sink.Layout) bool { return len(l.Cells) == 4 && l.Height == 100+newCellHeight })
}

func TestWatchCursorBounds(t *testing.T) {
	m := newTestWatch(t)
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor)
	for range 10 {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 3, m.cursor)
}

func TestWatchWindowResize(t *testing.T) {
	m := newTestWatch(t)
	settle(t, m, func(l sink.Layout) bool { return l.Columns == 3 })

	// 52 terminal columns minus the frame leave 400px.
	m.Update(tea.WindowSizeMsg{Width: 52, Height: 40})
	w, _ := m.view.Size()
	assert.Equal(t, 400.0, w)
	settle(t, m, func(l sink.Layout) bool { return l.Columns == 1 && l.Height == 400 })
}

func TestWatchQuit(t *testing.T) {
	m := newTestWatch(t)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
