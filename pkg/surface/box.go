package surface

import "github.com/matzehuels/autogrid/pkg/grid"

// Box is the absolutely positioned wrapper of one element.
type Box struct {
	c       *Container
	el      grid.Element
	mounted bool

	left, top, width float64
}

// Element returns the wrapped element.
func (b *Box) Element() grid.Element {
	b.c.mu.Lock()
	defer b.c.mu.Unlock()
	return b.el
}

// Mounted reports whether the box is attached to its container.
func (b *Box) Mounted() bool {
	b.c.mu.Lock()
	defer b.c.mu.Unlock()
	return b.mounted
}

// Mount attaches the box to its container.
func (b *Box) Mount() {
	b.c.mu.Lock()
	defer b.c.mu.Unlock()
	if b.mounted {
		return
	}
	b.mounted = true
	b.c.boxes = append(b.c.boxes, b)
	b.c.mutatedLocked()
}

// Detach removes the box from its container.
func (b *Box) Detach() {
	b.c.mu.Lock()
	defer b.c.mu.Unlock()
	if !b.mounted {
		return
	}
	b.mounted = false
	for i, o := range b.c.boxes {
		if o == b {
			b.c.boxes = append(b.c.boxes[:i], b.c.boxes[i+1:]...)
			break
		}
	}
	b.c.mutatedLocked()
}

// Replace swaps the wrapped element.
func (b *Box) Replace(e grid.Element) {
	b.c.mu.Lock()
	defer b.c.mu.Unlock()
	b.el = e
	if b.mounted {
		b.c.mutatedLocked()
	}
}

// Height returns the height of the wrapped content at the box width.
// Elements that are not [Content] have no height.
func (b *Box) Height() float64 {
	b.c.mu.Lock()
	defer b.c.mu.Unlock()
	return b.heightLocked()
}

func (b *Box) heightLocked() float64 {
	if !b.mounted {
		return 0
	}
	if c, ok := b.el.(Content); ok {
		return c.HeightAt(b.width)
	}
	return 0
}

// SetLeft sets the offset from the container's left edge.
func (b *Box) SetLeft(px float64) {
	b.c.mu.Lock()
	defer b.c.mu.Unlock()
	b.left = px
}

// SetTop sets the offset from the container's top edge.
func (b *Box) SetTop(px float64) {
	b.c.mu.Lock()
	defer b.c.mu.Unlock()
	b.top = px
}

// SetWidth sets the box width. Content heights are measured at this width.
func (b *Box) SetWidth(px float64) {
	b.c.mu.Lock()
	defer b.c.mu.Unlock()
	b.width = px
}

// Rect returns the geometry last written to the box.
func (b *Box) Rect() (left, top, width, height float64) {
	b.c.mu.Lock()
	defer b.c.mu.Unlock()
	return b.left, b.top, b.width, b.heightLocked()
}
