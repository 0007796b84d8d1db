package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/autogrid/internal/api"
	"github.com/matzehuels/autogrid/pkg/cache"
	"github.com/matzehuels/autogrid/pkg/pipeline"
	"github.com/matzehuels/autogrid/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr          string
	redisAddr     string
	redisPassword string
	redisDB       int
	cachePrefix   string
	mongoURI      string
	mongoDB       string
	noCache       bool
	timeout       time.Duration
}

// serveCommand creates the serve command that runs the HTTP layout service.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:        ":8080",
		cachePrefix: "autogrid:",
		mongoDB:     store.DefaultDatabase,
		timeout:     30 * time.Second,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve board layouts over HTTP",
		Long: `Serve board layouts over HTTP.

Layouts are cached in Redis when --redis is set, otherwise in the local cache
directory. Boards are stored in MongoDB when --mongo is set, otherwise in
memory for the lifetime of the process.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for the layout cache (host:port)")
	cmd.Flags().StringVar(&opts.redisPassword, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().StringVar(&opts.cachePrefix, "cache-prefix", opts.cachePrefix, "prefix for cache keys")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", "", "MongoDB URI for board storage")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", opts.mongoDB, "MongoDB database name")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", opts.timeout, "per-request timeout")

	return cmd
}

// runServe wires the cache and store backends into the API server and blocks
// until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	backend, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(backend, cache.NewScopedKeyer(nil, opts.cachePrefix), logger)
	defer runner.Close()

	boards, err := c.serveStore(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := boards.Close(closeCtx); err != nil {
			logger.Warn("close store", "err", err)
		}
	}()

	srv := api.New(api.Config{
		Runner:  runner,
		Store:   boards,
		Logger:  logger,
		Timeout: opts.timeout,
	})

	ui := c.ui()
	ui.success("Serving on %s", StyleHighlight.Render(opts.addr))
	ui.blank()

	if err := srv.ListenAndServe(ctx, opts.addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	ui.info("Server stopped")
	return nil
}

func (c *CLI) serveCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	if opts.noCache {
		c.ui().keyValue("cache", "disabled")
		return cache.NewNullCache(), nil
	}
	if opts.redisAddr == "" {
		backend, err := newCache(false)
		if err != nil {
			return nil, fmt.Errorf("open file cache: %w", err)
		}
		if fc, ok := backend.(*cache.FileCache); ok {
			c.ui().keyValue("cache", fc.Dir())
		}
		return backend, nil
	}
	rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
		Addr:     opts.redisAddr,
		Password: opts.redisPassword,
		DB:       opts.redisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("connect redis %s: %w", opts.redisAddr, err)
	}
	c.ui().keyValue("cache", "redis://"+opts.redisAddr)
	return rc, nil
}

func (c *CLI) serveStore(ctx context.Context, opts serveOpts) (store.Store, error) {
	if opts.mongoURI == "" {
		c.ui().warning("Boards are kept in memory and lost on exit")
		c.ui().keyValue("store", "memory")
		return store.NewMemoryStore(), nil
	}
	ms, err := store.NewMongoStore(ctx, store.MongoConfig{
		URI:      opts.mongoURI,
		Database: opts.mongoDB,
	})
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	c.ui().keyValue("store", "mongodb/"+opts.mongoDB)
	return ms, nil
}
