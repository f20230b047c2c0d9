package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/reoring/launchcast/client"
	"github.com/reoring/launchcast/config"
	"github.com/reoring/launchcast/internal/server"
	"github.com/reoring/launchcast/metrics"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long:  `Serves validated launch documents over HTTP. With --config the file is watched and SIGHUP forces a reload; query defaults and the log level follow the reloaded file.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			holder, err := a.holder()
			if err != nil {
				return err
			}
			defer holder.Stop()

			cfg := holder.Get()
			if addr == "" {
				addr = cfg.Server.Addr
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			opts := server.Options{
				Logger: a.logger,
				Query:  func() config.QueryConfig { return holder.Get().Query },
			}
			clientOpts := []client.Option{client.WithLogger(a.logger)}
			if cfg.Metrics.Enabled {
				m := metrics.NewWithRegistry(reg)
				opts.Metrics = m
				opts.Gatherer = reg
				opts.MetricsPath = cfg.Metrics.Path
				clientOpts = append(clientOpts, client.WithMetrics(m))
			}

			srv := &http.Server{
				Addr:         addr,
				Handler:      server.NewRouter(client.New(cfg.API, clientOpts...), opts),
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
			}
			return run(cmd.Context(), srv, a.logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	return cmd
}

// holder returns a reloading holder when a config file was given.
func (a *app) holder() (*config.Holder, error) {
	if a.configPath == "" {
		return config.Static(a.cfg), nil
	}
	h, err := config.NewHolder(a.configPath, a.logger)
	if err != nil {
		return nil, err
	}
	h.OnChange(func(cfg *config.Config) {
		level, err := zerolog.ParseLevel(cfg.Logging.Level)
		if err != nil {
			a.logger.Warn().Err(err).Msg("ignoring reloaded log level")
			return
		}
		zerolog.SetGlobalLevel(level)
	})
	if err := h.WatchFile(); err != nil {
		h.Stop()
		return nil, err
	}
	h.WatchSignals()
	return h, nil
}

// run serves until ctx is done or SIGINT/SIGTERM arrives, then shuts down
// gracefully.
func run(ctx context.Context, srv *http.Server, logger zerolog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("starting server")
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		srv.Close()
		return err
	}
	return nil
}
