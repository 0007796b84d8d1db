package grid

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/autogrid/pkg/observability"
)

// Option configures a grid at construction.
type Option func(*Grid)

// WithLogger sets the logger passes and restarts are reported to.
func WithLogger(l *log.Logger) Option {
	return func(g *Grid) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithScheduler sets the timeline deferred passes and resize timers run on.
// Without it the grid starts and owns a [schedule.Loop].
func WithScheduler(s Scheduler) Option {
	return func(g *Grid) { g.sched = s }
}

// WithMutations subscribes the grid to structural changes of the container's
// subtree. Each notification invalidates the layout.
func WithMutations(s Source) Option {
	return func(g *Grid) { g.mutations = s }
}

// WithResize subscribes the grid to viewport resize notifications. They are
// debounced by [Config.ResizeDebounce] before the width is re-measured.
func WithResize(s Source) Option {
	return func(g *Grid) { g.resizes = s }
}

// WithHooks overrides the globally registered [observability.GridHooks].
func WithHooks(h observability.GridHooks) Option {
	return func(g *Grid) {
		if h != nil {
			g.hooks = h
		}
	}
}

// WithContext sets the context handed to hooks.
func WithContext(ctx context.Context) Option {
	return func(g *Grid) {
		if ctx != nil {
			g.ctx = ctx
		}
	}
}
