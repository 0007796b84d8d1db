package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/autogrid/pkg/board"
	"github.com/matzehuels/autogrid/pkg/cache"
	"github.com/matzehuels/autogrid/pkg/observability"
	"github.com/matzehuels/autogrid/pkg/sink"
)

// Runner executes the pipeline with caching. Both the CLI and the server use
// it.
//
// The Runner holds no per-run state; multiple goroutines can share one.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects [cache.DefaultKeyer] and a nil logger selects log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute lays b out and renders every requested format.
func (r *Runner) Execute(ctx context.Context, b *board.Board, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	res := &Result{}

	start := time.Now()
	l, hit, err := r.LayoutWithCacheInfo(ctx, b, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	res.Layout = l
	res.CacheInfo.LayoutHit = hit
	res.Stats.LayoutTime = time.Since(start)

	r.Logger.Info("computed layout",
		"cells", len(l.Cells),
		"columns", l.Columns,
		"width", l.Width,
		"cached", hit,
		"duration", res.Stats.LayoutTime)

	start = time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	res.Artifacts = artifacts
	res.CacheInfo.RenderHit = hit
	res.Stats.RenderTime = time.Since(start)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", res.Stats.RenderTime)

	return res, nil
}

// LayoutWithCacheInfo returns the layout of b and whether it came from the
// cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, b *board.Board, opts Options) (sink.Layout, bool, error) {
	r.applyLogger(&opts)
	key := r.Keyer.LayoutKey(b.Hash(), opts.LayoutKeyOpts(b))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if l, err := sink.ParseJSON(data); err == nil {
				l.Board = b.Name
				return l, true, nil
			}
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "key", key, "err", err)
		}
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, b.Name, len(b.Cells))
	start := time.Now()
	l, err := Compute(ctx, b, opts.Viewport(b), opts.Logger)
	hooks.OnLayoutComplete(ctx, b.Name, time.Since(start), err)
	if err != nil {
		return sink.Layout{}, false, err
	}

	if data, err := sink.RenderJSON(l); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.LayoutTTL); err != nil {
			opts.Logger.Warn("cache write failed", "key", key, "err", err)
		}
	}
	return l, false, nil
}

// Layout is LayoutWithCacheInfo without the cache hit flag.
func (r *Runner) Layout(ctx context.Context, b *board.Board, opts Options) (sink.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, b, opts)
	return l, err
}

// RenderWithCacheInfo renders every format in opts.Formats and reports
// whether all of them came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l sink.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	data, err := sink.RenderJSON(l)
	if err != nil {
		return nil, false, err
	}
	layoutHash := cache.Hash(data)

	artifacts := make(map[string][]byte, len(opts.Formats))
	allHit := true
	hooks := observability.Pipeline()
	for _, f := range opts.Formats {
		key := r.Keyer.RenderKey(layoutHash, opts.RenderKeyOpts(f))
		if !opts.Refresh {
			if cached, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				artifacts[f] = cached
				continue
			}
		}
		allHit = false

		hooks.OnRenderStart(ctx, f)
		start := time.Now()
		out, err := RenderFormat(l, f, opts)
		hooks.OnRenderComplete(ctx, f, time.Since(start), err)
		if err != nil {
			return nil, false, err
		}
		artifacts[f] = out
		if err := r.Cache.Set(ctx, key, out, cache.RenderTTL); err != nil {
			opts.Logger.Warn("cache write failed", "key", key, "err", err)
		}
	}
	return artifacts, allHit, nil
}

// Render is RenderWithCacheInfo without the cache hit flag.
func (r *Runner) Render(ctx context.Context, l sink.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
