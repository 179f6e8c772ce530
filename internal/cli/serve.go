package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rnaimport/pkg/cache"
	"github.com/matzehuels/rnaimport/pkg/config"
	"github.com/matzehuels/rnaimport/pkg/pipeline"
	"github.com/matzehuels/rnaimport/pkg/server"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the import API over HTTP",
		Long: `Serve exposes dialect detection and import over HTTP:

  GET  /health
  POST /v1/sniff
  POST /v1/import?format=json|svg|dot|graph-svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Server.Addr
			}

			backend, err := c.openCache(ctx, noCache)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(backend, cache.NewScopedKeyer(nil, appName+":server:"), c.Logger)
			if ttl := c.Config.Cache.TTL.Duration; ttl > 0 {
				runner.TTL = ttl
			}
			defer runner.Close()

			srv := server.New(runner,
				server.WithDefaults(c.Config.PipelineOptions()),
				server.WithLogger(c.Logger),
				server.WithTimeout(timeout))

			httpSrv := &http.Server{
				Addr:              addr,
				Handler:           srv,
				ReadHeaderTimeout: 10 * time.Second,
			}
			errc := make(chan error, 1)
			go func() {
				c.Logger.Info("listening", "addr", addr)
				errc <- httpSrv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			c.Logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := httpSrv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: config server.addr or "+config.DefaultAddr+")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the import cache")
	cmd.Flags().DurationVar(&timeout, "timeout", 60*time.Second, "per-request timeout")

	return cmd
}
