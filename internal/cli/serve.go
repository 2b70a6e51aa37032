package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sibaiper/tidy-tree/pkg/api"
	"github.com/sibaiper/tidy-tree/pkg/cache"
	"github.com/sibaiper/tidy-tree/pkg/pipeline"
	"github.com/sibaiper/tidy-tree/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		mongoURI string
		mongoDB  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout HTTP API server",
		Long: `Run the layout HTTP API server.

The server accepts tree documents over HTTP, computes layouts, and stores
the results. Without --mongo-uri records are kept in memory and lost on
shutdown; with it they persist in MongoDB.

The server shuts down gracefully on SIGINT/SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			if mongoURI == "" {
				mongoURI = c.Config.Server.MongoURI
			}
			if mongoDB == "" {
				mongoDB = c.Config.Server.MongoDatabase
			}
			return c.runServe(cmd.Context(), addr, mongoURI, mongoDB)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB connection URI (default: in-memory store)")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", "", "MongoDB database name")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, mongoURI, mongoDB string) error {
	runner, err := c.newServerRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	st, err := c.newStore(ctx, mongoURI, mongoDB)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	srv := api.NewServer(addr, st, runner, c.Logger)
	return srv.ListenAndServe(ctx)
}

// newServerRunner prefers the shared Redis cache when one is configured;
// otherwise it falls back to the same file cache the CLI commands use.
func (c *CLI) newServerRunner(ctx context.Context) (*pipeline.Runner, error) {
	if addr := c.Config.Cache.RedisAddr; addr != "" && !c.noCache && !c.Config.Cache.Disabled {
		rc, err := cache.NewRedisCache(ctx, addr, c.Config.Cache.RedisPassword, c.Config.Cache.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("connect redis cache: %w", err)
		}
		return pipeline.NewRunner(rc, nil, c.Logger), nil
	}
	return c.newRunner()
}

// newStore selects the persistence backend for the server.
func (c *CLI) newStore(ctx context.Context, mongoURI, mongoDB string) (store.Store, error) {
	if mongoURI == "" {
		c.Logger.Warn("no MongoDB URI configured, layouts will not survive restarts")
		return store.NewMemoryStore(), nil
	}

	c.Logger.Info("connecting to MongoDB", "database", mongoDB)
	st, err := store.NewMongoStore(ctx, mongoURI, mongoDB)
	if err != nil {
		return nil, fmt.Errorf("connect store: %w", err)
	}
	return st, nil
}
