package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/AntonStoeckl/library-circulation-go/circulation/engine"
	"github.com/AntonStoeckl/library-circulation-go/circulation/httpapi"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell/config"
	"github.com/AntonStoeckl/library-circulation-go/circulation/waitlist"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/oteladapters"
)

const readHeaderTimeout = 5 * time.Second

type serveFlags struct {
	store string
}

func newServeCommand(root *rootFlags) *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API of the circulation engine",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(root.configPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, cfg, flags.store)
		},
	}

	cmd.Flags().StringVar(&flags.store, "store", storePostgres, "event store: postgres or memory")

	return cmd
}

// runServe serves the HTTP API until ctx is canceled, then shuts the server down gracefully.
func runServe(ctx context.Context, cfg config.Config, storeKind string) error {
	logger := config.NewLogger(os.Stdout, cfg.Observability)
	contextualLogger := oteladapters.NewSlogBridgeLoggerWithHandler(logger.Handler())

	providers, err := config.NewObservabilityProviders(ctx, cfg.Observability)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.HTTP.ShutdownTimeout)
		defer cancel()

		if shutdownErr := providers.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.Warn("shutting down observability providers failed", "error", shutdownErr.Error())
		}
	}()

	obs := observability{
		logger:  contextualLogger,
		metrics: providers.MetricsCollector(),
		tracing: providers.TracingCollector(),
	}

	store, closeStore, err := openEventStore(ctx, storeKind, cfg.Postgres, obs)
	if err != nil {
		return err
	}
	defer closeStore()

	circulation, err := newEngine(store, cfg, obs)
	if err != nil {
		return err
	}

	router := httpapi.NewRouter(circulation,
		httpapi.WithServiceName(cfg.Observability.ServiceName),
		httpapi.WithMetricsHandler(providers.MetricsHandler()),
		httpapi.WithTracerProvider(providers.TracerProvider),
	)

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("librarian listening", "addr", cfg.HTTP.Addr, "store", storeKind)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(groupCtx), cfg.HTTP.ShutdownTimeout)
		defer cancel()

		logger.Info("librarian shutting down")

		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}

		if err := circulation.WaitForNotifications(shutdownCtx); err != nil {
			logger.Warn("waitlist notifications still running at shutdown", "error", err.Error())
		}

		return nil
	})

	return group.Wait()
}

// newEngine wires the engine with the configured policy, retry behavior and a rate limited dispatcher.
func newEngine(store shell.EventStore, cfg config.Config, obs observability) (*engine.Engine, error) {
	dispatcher, err := waitlist.NewRateLimited(
		waitlist.NewLogDispatcher(obs.logger),
		cfg.Notifications.RatePerSecond,
		cfg.Notifications.Burst,
	)
	if err != nil {
		return nil, err
	}

	opts := []engine.Option{
		engine.WithReservationWindow(cfg.Library.ReservationWindow()),
		engine.WithBorrowWindow(cfg.Library.BorrowWindow()),
		engine.WithRetryOptions(
			shell.WithMaxAttempts(cfg.Retry.MaxAttempts),
			shell.WithBaseDelay(cfg.Retry.BaseDelay),
		),
		engine.WithDispatcher(dispatcher),
		engine.WithLogger(obs.logger),
	}

	if obs.metrics != nil {
		opts = append(opts, engine.WithMetrics(obs.metrics))
	}

	if obs.tracing != nil {
		opts = append(opts, engine.WithTracing(obs.tracing))
	}

	return engine.New(store, opts...)
}
