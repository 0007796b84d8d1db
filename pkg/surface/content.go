package surface

// Content is what a box wraps. Its height may depend on the width the grid
// gives it.
type Content interface {
	ID() string
	HeightAt(width float64) float64
}

// Card is plain content: a fixed height plus, when AspectRatio is set, a
// media area whose height follows the width (width / AspectRatio).
type Card struct {
	Name        string
	Height      float64
	AspectRatio float64
}

// ID returns the card name.
func (c *Card) ID() string { return c.Name }

// HeightAt returns the rendered height of the card at the given width.
func (c *Card) HeightAt(width float64) float64 {
	h := c.Height
	if c.AspectRatio > 0 && width > 0 {
		h += width / c.AspectRatio
	}
	return h
}
