package board

import (
	"github.com/matzehuels/autogrid/pkg/errors"
)

// MaxCells bounds the number of cells in one board.
const MaxCells = 10000

// Validate reports the first problem with the board.
func (b *Board) Validate() error {
	if b.ID != "" {
		if err := errors.ValidateID(b.ID); err != nil {
			return invalid(err, "board id")
		}
	}
	if err := b.Grid.WithDefaults().Validate(); err != nil {
		return invalid(err, "grid")
	}
	if err := errors.ValidateWidth("viewport width", b.Viewport.Width); err != nil {
		return invalid(err, "viewport")
	}
	if err := errors.ValidateLength("viewport height", b.Viewport.Height); err != nil {
		return invalid(err, "viewport")
	}
	if b.Viewport.Scrollbar != nil {
		if err := errors.ValidateWidth("scrollbar", *b.Viewport.Scrollbar); err != nil {
			return invalid(err, "viewport")
		}
	}
	if len(b.Cells) > MaxCells {
		return errors.New(errors.ErrCodeInvalidBoard, "too many cells (max %d), got %d", MaxCells, len(b.Cells))
	}

	seen := make(map[string]bool, len(b.Cells))
	for i, c := range b.Cells {
		if err := errors.ValidateID(c.ID); err != nil {
			return invalid(err, "cell %d", i)
		}
		if seen[c.ID] {
			return errors.New(errors.ErrCodeInvalidBoard, "duplicate cell id %q", c.ID)
		}
		seen[c.ID] = true
		if c.Span != 0 {
			if err := errors.ValidateSpan(c.Span); err != nil {
				return invalid(err, "cell %q", c.ID)
			}
		}
		if err := errors.ValidateLength("height", c.Height); err != nil {
			return invalid(err, "cell %q", c.ID)
		}
		if err := errors.ValidateLength("aspect_ratio", c.AspectRatio); err != nil {
			return invalid(err, "cell %q", c.ID)
		}
	}
	return nil
}

func invalid(err error, format string, args ...any) error {
	return errors.Wrap(errors.ErrCodeInvalidBoard, err, format, args...)
}
