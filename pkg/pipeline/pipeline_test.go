package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/autogrid/pkg/board"
	"github.com/matzehuels/autogrid/pkg/cache"
	"github.com/matzehuels/autogrid/pkg/errors"
	"github.com/matzehuels/autogrid/pkg/grid"
	"github.com/matzehuels/autogrid/pkg/observability"
)

func testBoard(height float64, cells ...board.Cell) *board.Board {
	b := &board.Board{
		Name:     "test",
		Viewport: board.Viewport{Width: 1200, Height: height},
		Cells:    cells,
	}
	b.Normalize()
	return b
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"svg", false},
		{"text", false},
		{"png", true},
		{"SVG", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(o.Formats) != 1 || o.Formats[0] != FormatJSON {
		t.Errorf("Formats = %v", o.Formats)
	}

	bad := Options{Width: -1}
	if err := bad.ValidateAndSetDefaults(); err == nil {
		t.Error("negative width should fail")
	}

	wide := Options{Width: 1e9}
	if err := wide.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("oversized width: err = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestOptionsViewport(t *testing.T) {
	b := testBoard(500)
	vp := Options{}.Viewport(b)
	if vp.Width != 1200 || vp.Height != 500 || vp.ScrollbarWidth() != 15 {
		t.Errorf("Viewport = %+v", vp)
	}

	zero := 0.0
	vp = Options{Width: 800, Scrollbar: &zero}.Viewport(b)
	if vp.Width != 800 || vp.Height != 500 || vp.ScrollbarWidth() != 0 {
		t.Errorf("overridden Viewport = %+v", vp)
	}
	if b.Viewport.Width != 1200 || b.Viewport.Scrollbar != nil {
		t.Error("Viewport must not modify the board")
	}
}

func TestComputePacksCells(t *testing.T) {
	b := testBoard(800,
		board.Cell{ID: "a", Height: 100},
		board.Cell{ID: "b", Height: 50},
		board.Cell{ID: "c", Height: 80},
		board.Cell{ID: "wide", Span: 2, Height: 40},
	)
	l, err := Compute(context.Background(), b, Options{}.Viewport(b), nil)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if l.Width != 1200 || l.Columns != 3 || l.ColumnWidth != 400 {
		t.Errorf("model = %v / %d / %v", l.Width, l.Columns, l.ColumnWidth)
	}
	if l.Viewport.Scrolling {
		t.Error("content fits, no scrollbar expected")
	}

	wide := l.Cells[3]
	if wide.ID != "wide" || wide.Span != 2 || wide.X != 400 || wide.Y != 80 || wide.Width != 800 {
		t.Errorf("wide = %+v", wide)
	}
	if l.Height != 120 {
		t.Errorf("Height = %v, want 120", l.Height)
	}
	if l.BoardHash != b.Hash() {
		t.Error("BoardHash should identify the board")
	}
}

func TestComputeRestartsOnScrollbar(t *testing.T) {
	b := testBoard(300,
		board.Cell{ID: "a", Height: 200},
		board.Cell{ID: "b", Height: 200},
		board.Cell{ID: "c", Height: 200},
		board.Cell{ID: "d", Height: 200},
	)
	l, err := Compute(context.Background(), b, Options{}.Viewport(b), nil)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if !l.Viewport.Scrolling || l.Width != 1185 {
		t.Errorf("Width = %v, Scrolling = %v", l.Width, l.Viewport.Scrolling)
	}
	if l.Restarts < 1 {
		t.Errorf("Restarts = %d, want at least 1", l.Restarts)
	}
	d := l.Cells[3]
	if d.X != 0 || d.Y != 200 || d.Width != 395 {
		t.Errorf("d = %+v", d)
	}
}

func TestComputeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := testBoard(800, board.Cell{ID: "a", Height: 10})
	if _, err := Compute(ctx, b, Options{}.Viewport(b), nil); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestComputeCapsColumns(t *testing.T) {
	cells := make([]board.Cell, 40)
	for i := range cells {
		cells[i] = board.Cell{ID: fmt.Sprintf("c%d", i), Span: 3, Height: 10}
	}
	b := testBoard(800, cells...)
	vp := Options{}.Viewport(b)
	vp.Width = 1e9

	l, err := Compute(context.Background(), b, vp, nil)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if l.Columns != grid.MaxColumns {
		t.Errorf("Columns = %d, want %d", l.Columns, grid.MaxColumns)
	}
	if l.Height != 10 {
		t.Errorf("Height = %v, want 10", l.Height)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu      sync.Mutex
	layouts int
	renders []string
}

func (h *recordingHooks) OnLayoutComplete(context.Context, string, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.layouts++
}

func (h *recordingHooks) OnRenderComplete(_ context.Context, format string, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.renders = append(h.renders, format)
}

func TestRunnerCaches(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	defer r.Close()

	ctx := context.Background()
	b := testBoard(800, board.Cell{ID: "a", Height: 10}, board.Cell{ID: "b", Span: 2, Height: 20})
	opts := Options{Formats: []string{FormatSVG, FormatText}}

	first, err := r.Execute(ctx, b, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss")
	}
	if !strings.Contains(string(first.Artifacts[FormatSVG]), "<svg") {
		t.Error("missing svg artifact")
	}
	if !strings.Contains(string(first.Artifacts[FormatText]), "┌") {
		t.Error("missing text artifact")
	}

	second, err := r.Execute(ctx, b, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit: %+v", second.CacheInfo)
	}
	if second.Layout.Width != first.Layout.Width || len(second.Layout.Cells) != 2 {
		t.Errorf("cached layout differs: %+v", second.Layout)
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, b, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Error("refresh should bypass the cache")
	}

	// A different viewport is a different layout.
	_, hit, err := r.LayoutWithCacheInfo(ctx, b, Options{Width: 640})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("different width should miss")
	}

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if hooks.layouts != 3 {
		t.Errorf("layouts = %d, want 3", hooks.layouts)
	}
	if len(hooks.renders) != 4 {
		t.Errorf("renders = %v, want 4", hooks.renders)
	}
}

func TestRunnerRejectsBadFormat(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	b := testBoard(800, board.Cell{ID: "a", Height: 10})
	_, err := r.Execute(context.Background(), b, Options{Formats: []string{"gif"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v", err)
	}
}
