package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/Ivetta-Luis-Alberto-114588/front-startup/api/routes"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/internal/cart"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/internal/notifications"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/internal/session"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/config"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/logger"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/metrics"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/storefront"
)

const serviceName = "storefront"

func main() {
	logg := logger.New(logger.Options{ServiceName: serviceName})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "storefront stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openGuestStore(ctx, cfg, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, closeStore())
	}()

	sessions := session.NewManager(cfg.JWT, logg)

	client, err := storefront.NewClient(cfg.API.BaseURL,
		storefront.WithTimeout(cfg.API.Timeout),
		storefront.WithUserAgent(cfg.API.UserAgent),
		storefront.WithTokenSource(sessions),
	)
	if err != nil {
		return err
	}

	feed := notifications.NewFeed(cfg.Notifications.FeedSize)
	sink := notifications.Fanout{notifications.NewLogSink(logg), feed}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	engine, err := cart.NewEngine(cart.Deps{
		Identity: sessions,
		Remote:   client,
		Products: client,
		Store:    store,
		Sink:     sink,
		Metrics:  metrics.NewCartMetrics(registry),
		Logger:   logg,
	})
	if err != nil {
		return err
	}
	sessions.SetTransferer(engine)

	// the first view renders whatever the device already holds
	if _, err := engine.Fetch(ctx); err != nil {
		logg.Warn(logg.WithField(ctx, "error", err.Error()), "initial cart fetch failed")
	}

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           routes.NewRouter(cfg, logg, engine, sessions, feed, store, client, registry),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	logCtx := logg.WithFields(ctx, map[string]any{
		"env":          cfg.App.Env,
		"addr":         cfg.HTTP.Addr,
		"store_driver": cfg.Store.Driver,
	})
	logg.Info(logCtx, "starting storefront server")

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down storefront server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
