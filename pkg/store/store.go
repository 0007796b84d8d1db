// Package store persists boards for the HTTP server.
//
// [MemoryStore] keeps boards in process and suits tests and single-instance
// deployments. [MongoStore] keeps them in a MongoDB collection, one document
// per board keyed by the board id.
package store

import (
	"context"
	"time"

	"github.com/matzehuels/autogrid/pkg/board"
)

// DefaultListLimit caps List when the caller passes no limit.
const DefaultListLimit = 100

// Record is a stored board.
type Record struct {
	ID        string       `json:"id" bson:"_id"`
	Board     *board.Board `json:"board" bson:"board"`
	CreatedAt time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" bson:"updated_at"`
}

// Store is a board repository.
type Store interface {
	// Get returns the record for id or an ErrCodeNotFound error.
	Get(ctx context.Context, id string) (*Record, error)

	// Put creates or replaces a board. A board without an id is assigned a
	// new one. CreatedAt survives replacement.
	Put(ctx context.Context, b *board.Board) (*Record, error)

	// Delete removes the record for id or returns an ErrCodeNotFound error.
	Delete(ctx context.Context, id string) error

	// List returns up to limit records, most recently updated first.
	List(ctx context.Context, limit int) ([]*Record, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

func listLimit(limit int) int {
	if limit <= 0 || limit > DefaultListLimit {
		return DefaultListLimit
	}
	return limit
}

// cloneBoard copies b deeply enough that callers cannot mutate stored state.
func cloneBoard(b *board.Board) *board.Board {
	c := *b
	c.Cells = append([]board.Cell(nil), b.Cells...)
	if b.Viewport.Scrollbar != nil {
		sb := *b.Viewport.Scrollbar
		c.Viewport.Scrollbar = &sb
	}
	return &c
}
