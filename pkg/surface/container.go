package surface

import (
	"sync"

	"github.com/matzehuels/autogrid/pkg/grid"
)

// Container is a positioned element inside a [Viewport]. It implements
// [grid.Container] and, through Subscribe, a mutation [grid.Source].
type Container struct {
	mu       sync.Mutex
	viewport *Viewport
	sched    grid.Scheduler
	offset   float64
	hidden   bool
	height   float64
	children []grid.Element
	boxes    []*Box

	subs    subscribers
	pending func()
}

// ContainerOption configures a container.
type ContainerOption func(*Container)

// WithOffset places the container offset pixels below the top of the page.
func WithOffset(offset float64) ContainerOption {
	return func(c *Container) { c.offset = offset }
}

// WithChildren seeds the container with elements that exist before a grid is
// attached to it.
func WithChildren(children ...grid.Element) ContainerOption {
	return func(c *Container) { c.children = append(c.children, children...) }
}

// NewContainer returns a container filling the width of v. Mutation
// notifications are delivered on sched.
func NewContainer(v *Viewport, sched grid.Scheduler, opts ...ContainerOption) *Container {
	c := &Container{viewport: v, sched: sched}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var (
	_ grid.Container = (*Container)(nil)
	_ grid.Source    = (*Container)(nil)
	_ grid.Source    = (*Viewport)(nil)
	_ grid.Wrapper   = (*Box)(nil)
)

// Width returns the viewport width minus the scrollbar when the page content
// is taller than the viewport.
func (c *Container) Width() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.widthLocked()
}

func (c *Container) widthLocked() float64 {
	vw, vh := c.viewport.Size()
	w := vw
	if c.scrollHeightLocked() > vh {
		w -= c.viewport.Scrollbar()
	}
	return max(w, 0)
}

// scrollHeightLocked is the height of the page: the container plus any box
// overflowing it.
func (c *Container) scrollHeightLocked() float64 {
	h := c.height
	for _, b := range c.boxes {
		h = max(h, b.top+b.heightLocked())
	}
	return c.offset + h
}

// Visible reports whether the container has a width and starts above the
// bottom of the viewport.
func (c *Container) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hidden {
		return false
	}
	_, vh := c.viewport.Size()
	return c.widthLocked() > 0 && c.offset < vh
}

// SetHidden hides or shows the container.
func (c *Container) SetHidden(hidden bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hidden = hidden
}

// SetHeight sets the container height.
func (c *Container) SetHeight(px float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.height = px
}

// Height returns the container height.
func (c *Container) Height() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.height
}

// Wrap creates an unmounted box around e.
func (c *Container) Wrap(e grid.Element) grid.Wrapper {
	return &Box{c: c, el: e}
}

// Children returns the elements the container was created with.
func (c *Container) Children() []grid.Element {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]grid.Element(nil), c.children...)
}

// Boxes returns the mounted boxes in mount order.
func (c *Container) Boxes() []*Box {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*Box(nil), c.boxes...)
}

// Subscribe registers fn for structural mutation notifications.
func (c *Container) Subscribe(fn func()) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.subs.add(fn)
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.subs.remove(id)
	}
}

// mutatedLocked schedules one batched delivery of mutation notifications.
func (c *Container) mutatedLocked() {
	if c.pending != nil || c.subs.len() == 0 || c.sched == nil {
		return
	}
	c.pending = c.sched.Schedule(0, c.deliver)
}

func (c *Container) deliver() {
	c.mu.Lock()
	c.pending = nil
	fns := c.subs.snapshot()
	c.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
