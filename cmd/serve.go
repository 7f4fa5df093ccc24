package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/okian/dfsviz/internal/adapters/http/api"
	"github.com/okian/dfsviz/internal/adapters/http/swagger"
	"github.com/okian/dfsviz/internal/adapters/repository"
	app "github.com/okian/dfsviz/internal/app"
	"github.com/okian/dfsviz/internal/config"
	"github.com/okian/dfsviz/internal/domain/imageref"
	"github.com/okian/dfsviz/internal/domain/ingest"
	"github.com/okian/dfsviz/internal/domain/model"
	"github.com/okian/dfsviz/pkg/logger"
	"github.com/okian/dfsviz/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 30 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	serviceMetricsInterval    = 30 * time.Second
	nanosecondsPerMillisecond = 1e6
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	// Disable default Go metrics collection to avoid duplicate metrics
	// We collect our own custom system metrics instead
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	svc := newService(ctx, cfg, store, loggerInstance)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx)
	go startServiceMetricsUpdater(ctx, svc)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(ctx, cfg, svc, loggerInstance),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("storage", cfg.StorageDriver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
	}
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
	return nil
}

// newStore opens the configured slot store.
func newStore(ctx context.Context, c *config.Config) (repository.Store, error) {
	switch c.StorageDriver {
	case config.DriverSQLite:
		s, err := repository.NewSQLiteStore(ctx, c.SQLitePath, repository.WithSlot(c.StorageSlot))
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, nil
	default:
		return repository.NewMemoryStore(repository.WithSlot(c.StorageSlot)), nil
	}
}

func newResolver(ctx context.Context, c *config.Config) *imageref.Resolver {
	return imageref.New(
		imageref.WithHeadshotBase(c.HeadshotBasePath),
		imageref.WithLogoTemplate(c.TeamLogoTemplate),
		imageref.WithCorrections(c.Corrections(ctx)),
	)
}

func newNormalizer(ctx context.Context, c *config.Config, l logger.Logger) *ingest.Normalizer {
	return ingest.New(
		ingest.WithResolver(newResolver(ctx, c)),
		ingest.WithLogger(l.Named("ingest")),
	)
}

func newService(ctx context.Context, c *config.Config, store repository.Store, l logger.Logger) *app.Service {
	return app.New(
		app.WithLogger(l.Named("service")),
		app.WithStore(store),
		app.WithNormalizer(newNormalizer(ctx, c, l)),
		app.WithMaxUploadBytes(c.MaxUploadBytes),
		app.WithPageSize(c.PageSize),
	)
}

func newRouter(ctx context.Context, c *config.Config, svc *app.Service, l logger.Logger) chi.Router {
	r := chi.NewRouter()
	swagger.Register(ctx, r)
	api.NewServer(svc, svc,
		api.WithMaxUploadBytes(c.MaxUploadBytes),
		api.WithMaxPageSize(c.MaxPageSize),
		api.WithLogger(l.Named("http")),
	).Register(ctx, r)
	return r
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startServiceMetricsUpdater refreshes the stored-player gauges, which are
// otherwise only published when a slate is saved.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	updateServiceMetrics(ctx, svc)

	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateServiceMetrics(ctx, svc)
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}

// updateServiceMetrics publishes the stored slate sizes.
func updateServiceMetrics(ctx context.Context, svc *app.Service) {
	c, err := svc.Collections(ctx)
	if err != nil {
		c = model.NewCollections()
	}
	for _, k := range model.Keys {
		metrics.UpdatePlayersStored(string(k), len(c[k]))
	}
	metrics.UpdateRepositoryRecordsTotal(c.Total())
}
