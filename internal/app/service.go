// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/okian/dfsviz/internal/adapters/render"
	"github.com/okian/dfsviz/internal/adapters/repository"
	"github.com/okian/dfsviz/internal/adapters/tokenizer"
	"github.com/okian/dfsviz/internal/domain/chart"
	"github.com/okian/dfsviz/internal/domain/filter"
	"github.com/okian/dfsviz/internal/domain/ingest"
	"github.com/okian/dfsviz/internal/domain/model"
	"github.com/okian/dfsviz/pkg/logger"
	"github.com/okian/dfsviz/pkg/metrics"
)

// Defaults.
const (
	defaultMaxUploadBytes = 10 << 20
)

// Service implements the slate upload and exploration operations.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	normalizer *ingest.Normalizer
	renderer   *render.Renderer

	// Configuration
	maxUploadBytes int64
	pageSize       int

	// State
	started    bool
	lastUpload time.Time
	lastFile   string

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the slot store. The service closes it on Stop.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithNormalizer sets the row normalizer.
func WithNormalizer(n *ingest.Normalizer) Option {
	return func(s *Service) {
		if n != nil {
			s.normalizer = n
		}
	}
}

// WithRenderer sets the PNG chart renderer.
func WithRenderer(r *render.Renderer) Option {
	return func(s *Service) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithMaxUploadBytes caps the accepted slate size.
func WithMaxUploadBytes(n int64) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxUploadBytes = n
		}
	}
}

// WithPageSize sets the default table page size.
func WithPageSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		maxUploadBytes: defaultMaxUploadBytes,
		pageSize:       filter.DefaultPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start fills in default components and marks the service ready.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
		s.logger.Info(ctx, "using memory store")
	}
	if s.normalizer == nil {
		s.normalizer = ingest.New(ingest.WithLogger(s.logger))
	}
	if s.renderer == nil {
		s.renderer = render.New()
	}

	s.started = true
	s.logger.Info(ctx, "slate service started",
		logger.String("maxUpload", humanize.IBytes(uint64(s.maxUploadBytes))),
		logger.Int("pageSize", s.pageSize),
		logger.Int("storedPlayers", s.store.Count(ctx)),
	)
	return nil
}

// Stop closes the store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn(context.Background(), "closing store", logger.Error(err))
	}
	s.started = false
	s.logger.Info(context.Background(), "slate service stopped")
}

func (s *Service) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

// Upload parses a slate and, when parsing succeeds, replaces the stored slate.
// Parse failures are reported in the Result. The error is set when the slate
// never reached the parser (not started, unreadable or oversized body) or could
// not be stored.
func (s *Service) Upload(ctx context.Context, filename string, r io.Reader) (ingest.Result, error) {
	if err := s.ready(); err != nil {
		return ingest.Failed(err), err
	}
	log := s.logger.With(logger.String("file", filename))

	format, err := tokenizer.FormatFromFilename(filename)
	if err != nil {
		return s.reject(ctx, log, "unknown", err), nil
	}

	body, err := io.ReadAll(io.LimitReader(r, s.maxUploadBytes+1))
	if err != nil {
		err = fmt.Errorf("read slate: %w", err)
		return s.reject(ctx, log, string(format), err), err
	}
	if int64(len(body)) > s.maxUploadBytes {
		err := fmt.Errorf("%w: limit is %s", ErrTooLarge, humanize.IBytes(uint64(s.maxUploadBytes)))
		return s.reject(ctx, log, string(format), err), err
	}

	table, err := tokenizer.Tokenize(ctx, format, bytes.NewReader(body))
	if err != nil {
		return s.reject(ctx, log, string(format), err), nil
	}

	res := ingest.Succeeded(s.normalizer.Normalize(ctx, table.Rows), table.Warnings)
	metrics.RecordParseWarnings(len(table.Warnings))

	if err := s.store.Save(ctx, res.Collections); err != nil {
		metrics.RecordUpload(metrics.ResultFailure, string(format))
		log.Error(ctx, "saving slate", logger.Error(err))
		return res, fmt.Errorf("save slate: %w", err)
	}
	metrics.RecordUpload(metrics.ResultSuccess, string(format))

	s.mu.Lock()
	s.lastUpload = time.Now()
	s.lastFile = filename
	s.mu.Unlock()

	log.Info(ctx, "slate uploaded",
		logger.String("format", string(format)),
		logger.String("size", humanize.Bytes(uint64(len(body)))),
		logger.Int("rows", len(table.Rows)),
		logger.Int("players", len(res.Players)),
		logger.Int("warnings", len(res.Errors)),
	)
	return res, nil
}

func (s *Service) reject(ctx context.Context, log logger.Logger, format string, err error) ingest.Result {
	metrics.RecordUpload(metrics.ResultFailure, format)
	log.Warn(ctx, "slate rejected", logger.Error(err))
	return ingest.Failed(err)
}

// Collections returns the stored slate.
func (s *Service) Collections(ctx context.Context) (model.Collections, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	c, err := s.store.Load(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoSlate
	}
	if err != nil {
		return nil, fmt.Errorf("load slate: %w", err)
	}
	return c, nil
}

// Players returns one collection of the stored slate. An empty position means All.
func (s *Service) Players(ctx context.Context, pos model.Position) ([]model.Player, error) {
	c, err := s.Collections(ctx)
	if err != nil {
		return nil, err
	}
	if pos == "" {
		pos = model.All
	}
	return c[pos], nil
}

// Table filters, sorts and pages the stored slate.
func (s *Service) Table(ctx context.Context, q filter.TableQuery) (filter.Page, error) {
	players, err := s.Players(ctx, model.All)
	if err != nil {
		return filter.Page{}, err
	}
	if q.PageSize <= 0 {
		q.PageSize = s.pageSize
	}
	return filter.Table(players, q)
}

// Chart projects the filtered slate onto axes.
func (s *Service) Chart(ctx context.Context, f filter.ChartFilters, axes chart.Axes) (chart.Chart, error) {
	if err := axes.Validate(); err != nil {
		return chart.Chart{}, err
	}
	players, err := s.Players(ctx, model.All)
	if err != nil {
		return chart.Chart{}, err
	}
	c := chart.Build(f.Apply(players), axes)
	metrics.RecordChartRender("json")
	return c, nil
}

// RenderChart writes the chart as a PNG image.
func (s *Service) RenderChart(ctx context.Context, f filter.ChartFilters, axes chart.Axes, w io.Writer) error {
	c, err := s.Chart(ctx, f, axes)
	if err != nil {
		return err
	}
	return s.renderer.PNG(ctx, c, w)
}

// Clear drops the stored slate.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear slate: %w", err)
	}
	s.logger.Info(ctx, "slate cleared")
	return nil
}

// HasData reports whether a slate is stored.
func (s *Service) HasData(ctx context.Context) bool {
	if s.ready() != nil {
		return false
	}
	_, err := s.store.Load(ctx)
	return err == nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"maxUploadBytes": s.maxUploadBytes,
		"pageSize":       s.pageSize,
	}
	if s.started {
		stats["storedPlayers"] = s.store.Count(context.Background())
	}
	if !s.lastUpload.IsZero() {
		stats["lastUpload"] = s.lastUpload.UTC().Format(time.RFC3339)
		stats["lastUploadAgo"] = humanize.Time(s.lastUpload)
		stats["lastFile"] = s.lastFile
	}
	return stats
}
