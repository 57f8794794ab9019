package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/statcard/internal/server"
	"github.com/matzehuels/statcard/pkg/cache"
	"github.com/matzehuels/statcard/pkg/ratelimit"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve cards over HTTP",
		Long: `Serve the card API:

  GET  /api/card?type=stats&username=octocat   SVG card (format=dataurl for a data URL)
  POST /api/card                               card parameters as JSON
  GET  /api/quote                              quote of the hour
  GET  /api/stats/{username}                   raw profile data
  GET  /api/themes                             theme presets
  GET  /-/live, /-/ready                       health checks`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides server.addr)")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	installLogHooks(logger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, err := newServices(ctx, cfg, logger, false)
	if err != nil {
		return err
	}
	defer svc.Close()

	if mc, ok := svc.cache.(*cache.MemoryCache); ok {
		mc.StartSweeper(ctx, cache.TTLQuote)
	}
	if ml, ok := svc.limiter.(*ratelimit.Memory); ok {
		ml.StartSweeper(ctx)
	}

	srv := server.New(server.Options{
		Addr:         cfg.Server.Addr,
		CORSOrigin:   cfg.Server.CORSOrigin,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Runner:       svc.runner,
		Quotes:       svc.quotes,
		Limiter:      svc.limiter,
		Logger:       logger,
		Ready:        svc.ready,
	})

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	printSuccess("Serving on %s", StyleLink.Render(cfg.Server.Addr))
	printDetail("cache %s · rate limit %s · quotes %s", cfg.Cache.Backend, cfg.RateLimit.Backend, cfg.Quote.Provider)
	if cfg.GitHub.Token == "" {
		printWarning("No GitHub token configured; GitHub allows 60 unauthenticated requests per hour")
	}

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return <-errc
}
