package grid

import "reflect"

// BlockOptions is the per-block configuration. Zero fields leave the current
// value untouched when passed to [Grid.Update].
type BlockOptions struct {
	// Span is the number of columns the block wants to occupy.
	Span int `toml:"width" json:"width,omitempty"`
}

// written records the geometry last written to a wrapper so unchanged values
// are not written again.
type written struct {
	width, left, top float64
	hasWidth, hasPos bool
}

type block struct {
	element     Element
	wrapper     Wrapper
	span        int
	lastSpan    int
	written     written
	placement   Placement
	height      float64
	subscribers []func(span int)

	// owed is set when the span or width changed and the subscribers have
	// not been told yet. It survives passes that never settle.
	owed bool
}

func newBlock(e Element, w Wrapper, o BlockOptions) *block {
	b := &block{
		element:  e,
		wrapper:  w,
		span:     1,
		lastSpan: 1,
	}
	b.apply(o)
	return b
}

func (b *block) apply(o BlockOptions) {
	if o.Span > 0 {
		b.span = o.Span
	}
}

// effectiveSpan clamps the requested span to the available columns.
func (b *block) effectiveSpan(columns int) int {
	return min(max(b.span, 1), columns)
}

// registry is the ordered collection of tracked blocks. Registration order
// is layout order.
type registry struct {
	blocks []*block
}

// identifiable reports whether e can be told apart from other elements with
// ==. Slices, maps and funcs (or structs holding them) cannot.
func identifiable(e Element) bool {
	return e != nil && reflect.ValueOf(e).Comparable()
}

func (r *registry) find(e Element) (int, *block) {
	if !identifiable(e) {
		return -1, nil
	}
	for i, b := range r.blocks {
		if b.element == e {
			return i, b
		}
	}
	return -1, nil
}

func (r *registry) add(b *block) {
	r.blocks = append(r.blocks, b)
}

func (r *registry) remove(i int) *block {
	b := r.blocks[i]
	copy(r.blocks[i:], r.blocks[i+1:])
	r.blocks[len(r.blocks)-1] = nil
	r.blocks = r.blocks[:len(r.blocks)-1]
	return b
}

func (r *registry) clear() []*block {
	old := r.blocks
	r.blocks = nil
	return old
}

func (r *registry) len() int { return len(r.blocks) }
