package surface

import "sync"

// DefaultScrollbar is the width a vertical scrollbar takes from the page.
const DefaultScrollbar = 15.0

// Viewport is the visible area of the page.
type Viewport struct {
	mu        sync.Mutex
	width     float64
	height    float64
	scrollbar float64
	subs      subscribers
}

// NewViewport returns a viewport of the given size. A negative scrollbar
// width selects [DefaultScrollbar]; zero models overlay scrollbars.
func NewViewport(width, height, scrollbar float64) *Viewport {
	if scrollbar < 0 {
		scrollbar = DefaultScrollbar
	}
	return &Viewport{width: width, height: height, scrollbar: scrollbar}
}

// Size returns the viewport width and height.
func (v *Viewport) Size() (width, height float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.width, v.height
}

// Scrollbar returns the width a vertical scrollbar takes.
func (v *Viewport) Scrollbar() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.scrollbar
}

// Resize changes the viewport size and notifies subscribers when it changed.
func (v *Viewport) Resize(width, height float64) {
	v.mu.Lock()
	if v.width == width && v.height == height {
		v.mu.Unlock()
		return
	}
	v.width, v.height = width, height
	fns := v.subs.snapshot()
	v.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Subscribe registers fn for resize notifications.
func (v *Viewport) Subscribe(fn func()) func() {
	v.mu.Lock()
	defer v.mu.Unlock()
	id := v.subs.add(fn)
	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		v.subs.remove(id)
	}
}

// subscribers is an ordered callback list. Callers hold the owner's lock.
type subscribers struct {
	next int
	ids  []int
	fns  []func()
}

func (s *subscribers) add(fn func()) int {
	s.next++
	s.ids = append(s.ids, s.next)
	s.fns = append(s.fns, fn)
	return s.next
}

func (s *subscribers) remove(id int) {
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			s.fns = append(s.fns[:i], s.fns[i+1:]...)
			return
		}
	}
}

func (s *subscribers) snapshot() []func() {
	return append([]func(){}, s.fns...)
}

func (s *subscribers) len() int { return len(s.fns) }
