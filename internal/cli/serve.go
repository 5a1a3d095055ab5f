package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sfeldkamp/quadrant/internal/server"
	"github.com/sfeldkamp/quadrant/pkg/cache"
	"github.com/sfeldkamp/quadrant/pkg/pipeline"
)

// serveCommand creates the serve command exposing the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noCache   bool
		redisAddr string
		redisDB   int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the radar pipeline over HTTP",
		Long: `Serve the radar pipeline over HTTP.

Endpoints:
  POST /api/v1/layout   compute positions for a posted item list
  POST /api/v1/render   run the full pipeline and return the artifact
  GET  /api/v1/charts   distribution summary for a source
  GET  /healthz         liveness probe

With --redis, results are cached in Redis so multiple instances share one
cache; otherwise the local file cache is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache, redisAddr, redisDB)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address (host:port) for shared caching")
	cmd.Flags().IntVar(&redisDB, "redis-db", 0, "Redis database number")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool, redisAddr string, redisDB int) error {
	cch, err := c.serveCache(ctx, noCache, redisAddr, redisDB)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(cch, nil, c.Logger)
	defer runner.Close()

	srv := server.New(runner, c.Logger, server.Config{Addr: addr})
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	<-ctx.Done()
	c.Logger.Info("shutting down")
	return srv.Stop(context.Background())
}

func (c *CLI) serveCache(ctx context.Context, noCache bool, redisAddr string, redisDB int) (cache.Cache, error) {
	if redisAddr != "" {
		cch, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redisAddr, DB: redisDB})
		if err != nil {
			return nil, fmt.Errorf("connect to Redis %s: %w", redisAddr, err)
		}
		c.Logger.Info("using Redis cache", "addr", redisAddr)
		return cch, nil
	}
	return newCache(noCache)
}
