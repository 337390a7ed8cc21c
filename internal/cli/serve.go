package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/insightdeck/insightdeck/internal/server"
	"github.com/insightdeck/insightdeck/pkg/cache"
	"github.com/insightdeck/insightdeck/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string // listen address
	backend   string // cache backend: file, redis, mongo, none
	redisAddr string
	redisDB   int
	mongoURI  string
	mongoDB   string
}

const (
	backendFile  = "file"
	backendRedis = "redis"
	backendMongo = "mongo"
	backendNone  = "none"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:    ":8080",
		backend: backendFile,
		redisDB: 0,
		mongoDB: "insightdeck",
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the deck generation HTTP API",
		Long: `Serve starts an HTTP server exposing POST /decks: upload a CSV, get a
rendered deck back. Stage results are cached in the selected backend so
repeated uploads of the same dataset are served without recomputation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.backend, "cache", opts.backend, "cache backend: file (default), redis, mongo, none")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "localhost:6379", "Redis address (with --cache redis)")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", opts.redisDB, "Redis database number")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "mongodb://localhost:27017", "MongoDB URI (with --cache mongo)")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", opts.mongoDB, "MongoDB database name")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	store, err := openBackend(ctx, opts)
	if err != nil {
		return err
	}
	defer store.Close()

	runner := pipeline.NewRunner(store, nil, c.Logger)
	srv := server.New(runner, c.Logger)

	c.Logger.Infof("Cache backend: %s", opts.backend)
	printInfo("Serving deck API on %s", opts.addr)
	printDetail("POST /decks with a multipart 'dataset' CSV field")

	return srv.Serve(ctx, opts.addr)
}

// openBackend constructs the cache backend selected by --cache.
func openBackend(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	switch opts.backend {
	case backendNone:
		return cache.NewNullCache(), nil
	case backendFile:
		dir, err := cacheDir()
		if err != nil {
			return nil, err
		}
		return cache.NewFileCache(dir)
	case backendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr: opts.redisAddr,
			DB:   opts.redisDB,
		})
	case backendMongo:
		return cache.NewMongoCache(ctx, cache.MongoConfig{
			URI:        opts.mongoURI,
			Database:   opts.mongoDB,
			Collection: "cache",
		})
	}
	return nil, fmt.Errorf("unknown cache backend: %s (want file, redis, mongo, or none)", opts.backend)
}
