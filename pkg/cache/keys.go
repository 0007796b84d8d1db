package cache

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey identifies the layout of a board under the given viewport.
	LayoutKey(boardHash string, opts LayoutKeyOpts) string

	// RenderKey identifies a rendered artifact of a layout.
	RenderKey(layoutHash string, opts RenderKeyOpts) string
}

// LayoutKeyOpts are the inputs besides the board that change a layout.
type LayoutKeyOpts struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Scrollbar float64 `json:"scrollbar"`
}

// RenderKeyOpts are the inputs that change a rendered artifact.
type RenderKeyOpts struct {
	Format string `json:"format"`
	Labels bool   `json:"labels"`
	Guides bool   `json:"guides"`
	Color  bool   `json:"color"`
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard key scheme.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(boardHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", boardHash, opts)
}

// RenderKey returns "render:<sha256>".
func (DefaultKeyer) RenderKey(layoutHash string, opts RenderKeyOpts) string {
	return hashKey("render", layoutHash, opts)
}
