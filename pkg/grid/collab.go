package grid

import "time"

// Element is the caller's content reference for one block. The engine never
// inspects or destroys it; it only compares elements with ==. Elements that
// are nil or not comparable (slices, maps, funcs) are never registered.
type Element = any

// Container is the element the grid lays its blocks out in.
type Container interface {
	// Width returns the current measured width of the container in pixels.
	Width() float64

	// Visible reports whether the container is at least partially on screen
	// and has a non-zero width. Passes are skipped while it returns false.
	Visible() bool

	// SetHeight sets the container height after a pass.
	SetHeight(px float64)

	// Wrap creates the positioned wrapper a registered element lives in.
	// The wrapper is not attached to the container until Mount is called.
	Wrap(e Element) Wrapper

	// Children returns the elements already inside the container when the
	// grid is constructed.
	Children() []Element
}

// Wrapper is the positioned box around one element.
type Wrapper interface {
	// Element returns the wrapped element.
	Element() Element

	// Mounted reports whether the wrapper is attached to the container.
	Mounted() bool

	// Mount attaches the wrapper to the container.
	Mount()

	// Detach removes the wrapper from the container if it is attached.
	Detach()

	// Replace swaps the wrapped element for e in place.
	Replace(e Element)

	// Height returns the rendered height of the wrapper at its current width.
	Height() float64

	SetLeft(px float64)
	SetTop(px float64)
	SetWidth(px float64)
}

// Source delivers change notifications. Subscribe returns a function that
// detaches fn. Notifications must not be delivered synchronously from inside a
// call the grid makes on a collaborator.
type Source interface {
	Subscribe(fn func()) (cancel func())
}

// Scheduler defers work on the grid's timeline. The returned function cancels
// fn if it has not run yet.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) (cancel func())
}
