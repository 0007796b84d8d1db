package grid

import (
	"context"
	"reflect"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/autogrid/pkg/errors"
	"github.com/matzehuels/autogrid/pkg/observability"
	"github.com/matzehuels/autogrid/pkg/schedule"
)

// Grid lays registered elements out in a masonry grid inside a container.
//
// All methods are safe for concurrent use; passes are serialized and never
// nest. Resize subscribers are invoked after the grid lock is released, so
// they may call back into the grid.
type Grid struct {
	mu sync.Mutex

	container Container
	cfg       Config
	cellWidth float64
	width     float64
	columns   int
	height    float64
	heightSet bool
	reg       registry

	sched     Scheduler
	ownedLoop *schedule.Loop
	mutations Source
	resizes   Source
	detach    []func()

	pending     func()
	pendingID   uint64
	resizeTimer func()
	resizeID    uint64

	logger *log.Logger
	hooks  observability.GridHooks
	ctx    context.Context

	stats    Stats
	disabled bool
}

// Stats counts the work a grid has done.
type Stats struct {
	Passes   int `json:"passes"`
	Restarts int `json:"restarts"`
	Skipped  int `json:"skipped"`
}

// New creates a grid over container and registers the elements it already
// holds. It fails with [errors.ErrCodeInvalidContainer] when container is nil
// and with [errors.ErrCodeInvalidInput] for an unusable configuration or a
// child that is not comparable.
func New(container Container, cfg Config, opts ...Option) (*Grid, error) {
	if isNil(container) {
		return nil, errors.New(errors.ErrCodeInvalidContainer, "container is not a displayable element")
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	children := container.Children()
	for _, e := range children {
		if !identifiable(e) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "child element %T is not comparable", e)
		}
	}

	g := &Grid{
		container: container,
		cfg:       cfg,
		cellWidth: cfg.EffectiveCellWidth(),
		logger:    log.Default(),
		hooks:     observability.Grid(),
		ctx:       context.Background(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.sched == nil {
		g.ownedLoop = schedule.NewLoop()
		g.sched = g.ownedLoop
	}

	g.width = container.Width()
	g.columns = Columns(g.width, g.cellWidth)

	g.mu.Lock()
	for _, e := range children {
		if _, b := g.reg.find(e); b == nil {
			g.reg.add(newBlock(e, container.Wrap(e), BlockOptions{}))
		}
	}
	if g.resizes != nil {
		g.detach = append(g.detach, g.resizes.Subscribe(g.onViewportResize))
	}
	if g.mutations != nil {
		g.detach = append(g.detach, g.mutations.Subscribe(g.Invalidate))
	}
	var notes []notice
	if g.reg.len() > 0 {
		notes = g.invalidateLocked()
	}
	g.mu.Unlock()
	notify(notes)

	g.logger.Debug("grid created", "width", g.width, "columns", g.columns, "cell_width", g.cellWidth, "blocks", g.reg.len())
	return g, nil
}

func isNil(c Container) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// Add registers e with the given options and invalidates the layout. It
// returns false when e is already registered, when e is nil or not comparable
// and when the grid is disabled.
func (g *Grid) Add(e Element, o BlockOptions) bool {
	if !identifiable(e) {
		return false
	}
	g.mu.Lock()
	if g.disabled {
		g.mu.Unlock()
		return false
	}
	if _, b := g.reg.find(e); b != nil {
		g.mu.Unlock()
		return false
	}
	g.reg.add(newBlock(e, g.container.Wrap(e), o))
	notes := g.invalidateLocked()
	g.mu.Unlock()
	notify(notes)
	return true
}

// Remove unregisters e and detaches its wrapper. The element itself is left
// alone. It returns false when e is not registered.
func (g *Grid) Remove(e Element) bool {
	g.mu.Lock()
	i, b := g.reg.find(e)
	if b == nil {
		g.mu.Unlock()
		return false
	}
	g.reg.remove(i)
	b.wrapper.Detach()
	var notes []notice
	if !g.disabled {
		notes = g.invalidateLocked()
	}
	g.mu.Unlock()
	notify(notes)
	return true
}

// Replace swaps old for e inside old's wrapper. With keepOptions the block
// keeps its span; otherwise the span resets to one. Resize subscribers are
// kept either way. It returns false when old is not registered or e is
// already registered or unusable as an element.
func (g *Grid) Replace(old, e Element, keepOptions bool) bool {
	if !identifiable(e) {
		return false
	}
	g.mu.Lock()
	_, b := g.reg.find(old)
	if b == nil || g.disabled {
		g.mu.Unlock()
		return false
	}
	if old != e {
		if _, dup := g.reg.find(e); dup != nil {
			g.mu.Unlock()
			return false
		}
	}
	b.wrapper.Replace(e)
	b.element = e
	if !keepOptions {
		b.span = 1
		b.lastSpan = 1
	}
	notes := g.invalidateLocked()
	g.mu.Unlock()
	notify(notes)
	return true
}

// Update merges o into the options of e and invalidates the layout. It
// returns false when e is not registered.
func (g *Grid) Update(e Element, o BlockOptions) bool {
	g.mu.Lock()
	_, b := g.reg.find(e)
	if b == nil {
		g.mu.Unlock()
		return false
	}
	b.apply(o)
	var notes []notice
	if !g.disabled {
		notes = g.invalidateLocked()
	}
	g.mu.Unlock()
	notify(notes)
	return true
}

// OnResize subscribes fn to span changes of e. fn is called right away with
// the span applied by the last pass and again after every pass that changes
// the block's span or width. It returns false when e is not registered.
func (g *Grid) OnResize(e Element, fn func(span int)) bool {
	if fn == nil {
		return false
	}
	g.mu.Lock()
	_, b := g.reg.find(e)
	if b == nil {
		g.mu.Unlock()
		return false
	}
	b.subscribers = append(b.subscribers, fn)
	span := b.lastSpan
	g.mu.Unlock()

	fn(span)
	return true
}

// Has reports whether e is registered.
func (g *Grid) Has(e Element) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, b := g.reg.find(e)
	return b != nil
}

// Len returns the number of registered elements.
func (g *Grid) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.reg.len()
}

// Columns returns the current column count.
func (g *Grid) Columns() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.columns
}

// Width returns the container width the grid last measured.
func (g *Grid) Width() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.width
}

// Config returns the effective configuration.
func (g *Grid) Config() Config {
	return g.cfg
}

// Clear unregisters every element and detaches all wrappers.
func (g *Grid) Clear() {
	g.mu.Lock()
	for _, b := range g.reg.clear() {
		b.wrapper.Detach()
	}
	var notes []notice
	if !g.disabled {
		notes = g.invalidateLocked()
	}
	g.mu.Unlock()
	notify(notes)
}

// Disable stops automatic layout for good: pending passes and resize timers
// are cancelled, both notification sources are detached and the container is
// released. Registered blocks stay where they are. Disable is idempotent.
func (g *Grid) Disable() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.disabled {
		return
	}
	g.disabled = true
	g.cancelPendingLocked()
	if g.resizeTimer != nil {
		g.resizeTimer()
		g.resizeTimer = nil
	}
	for _, cancel := range g.detach {
		cancel()
	}
	g.detach = nil
	g.container = nil
	if g.ownedLoop != nil {
		g.ownedLoop.Stop()
	}
	g.logger.Debug("grid disabled")
}

// Disabled reports whether Disable has been called.
func (g *Grid) Disabled() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.disabled
}

// notice is one batch of resize callbacks to run once the lock is released.
type notice struct {
	span int
	fns  []func(span int)
}

func notify(notes []notice) {
	for _, n := range notes {
		for _, fn := range n.fns {
			fn(n.span)
		}
	}
}
