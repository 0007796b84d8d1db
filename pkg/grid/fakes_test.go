package grid

import (
	"context"
	"time"

	"github.com/matzehuels/autogrid/pkg/observability"
)

type card struct {
	name   string
	height float64
}

type fakeContainer struct {
	width        float64
	widthFn      func() float64
	visible      bool
	height       float64
	heightWrites int
	children     []Element
	wrappers     []*fakeWrapper
	mounts       int
}

func newFakeContainer(width float64) *fakeContainer {
	return &fakeContainer{width: width, visible: true}
}

func (c *fakeContainer) Width() float64 {
	if c.widthFn != nil {
		return c.widthFn()
	}
	return c.width
}

func (c *fakeContainer) Visible() bool { return c.visible && c.Width() > 0 }

func (c *fakeContainer) SetHeight(px float64) {
	c.height = px
	c.heightWrites++
}

func (c *fakeContainer) Wrap(e Element) Wrapper {
	w := &fakeWrapper{c: c, el: e}
	c.wrappers = append(c.wrappers, w)
	return w
}

func (c *fakeContainer) Children() []Element { return c.children }

func (c *fakeContainer) wrapperOf(e Element) *fakeWrapper {
	for _, w := range c.wrappers {
		if w.el == e {
			return w
		}
	}
	return nil
}

func (c *fakeContainer) writes() int {
	n := 0
	for _, w := range c.wrappers {
		n += w.writes
	}
	return n
}

type fakeWrapper struct {
	c                *fakeContainer
	el               Element
	mounted          bool
	left, top, width float64
	writes, detaches int
}

func (w *fakeWrapper) Element() Element { return w.el }
func (w *fakeWrapper) Mounted() bool    { return w.mounted }

func (w *fakeWrapper) Mount() {
	w.mounted = true
	w.c.mounts++
}

func (w *fakeWrapper) Detach() {
	w.mounted = false
	w.detaches++
}

func (w *fakeWrapper) Replace(e Element) { w.el = e }

func (w *fakeWrapper) Height() float64 {
	if c, ok := w.el.(*card); ok {
		return c.height
	}
	return 0
}

func (w *fakeWrapper) SetLeft(px float64)  { w.left = px; w.writes++ }
func (w *fakeWrapper) SetTop(px float64)   { w.top = px; w.writes++ }
func (w *fakeWrapper) SetWidth(px float64) { w.width = px; w.writes++ }

type fakeSource struct {
	next int
	subs map[int]func()
}

func newFakeSource() *fakeSource { return &fakeSource{subs: make(map[int]func())} }

func (s *fakeSource) Subscribe(fn func()) func() {
	id := s.next
	s.next++
	s.subs[id] = fn
	return func() { delete(s.subs, id) }
}

func (s *fakeSource) emit() {
	for _, fn := range s.subs {
		fn()
	}
}

type countingHooks struct {
	observability.NoopGridHooks
	passes, restarts, skips int
}

func (h *countingHooks) OnPass(context.Context, int, int, int, time.Duration) { h.passes++ }
func (h *countingHooks) OnRestart(context.Context, float64, float64)          { h.restarts++ }
func (h *countingHooks) OnSkip(context.Context)                               { h.skips++ }
