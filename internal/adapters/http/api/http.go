// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/okian/dfsviz/internal/adapters/render"
	service "github.com/okian/dfsviz/internal/app"
	"github.com/okian/dfsviz/internal/domain/chart"
	"github.com/okian/dfsviz/internal/domain/filter"
	"github.com/okian/dfsviz/internal/domain/ingest"
	"github.com/okian/dfsviz/internal/domain/model"
	"github.com/okian/dfsviz/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	UploadDependencies
	PlayersDependencies
	TableDependencies
	ChartDependencies
	DataDependencies
}

// UploadDependencies parses and stores a slate.
type UploadDependencies interface {
	Upload(ctx context.Context, filename string, r io.Reader) (ingest.Result, error)
}

// PlayersDependencies reads one collection of the stored slate.
type PlayersDependencies interface {
	Players(ctx context.Context, pos model.Position) ([]model.Player, error)
}

// TableDependencies pages the stored slate.
type TableDependencies interface {
	Table(ctx context.Context, q filter.TableQuery) (filter.Page, error)
}

// ChartDependencies projects the stored slate onto chart axes.
type ChartDependencies interface {
	Chart(ctx context.Context, f filter.ChartFilters, axes chart.Axes) (chart.Chart, error)
	RenderChart(ctx context.Context, f filter.ChartFilters, axes chart.Axes, w io.Writer) error
}

// DataDependencies inspects and clears the stored slate.
type DataDependencies interface {
	Clear(ctx context.Context) error
	HasData(ctx context.Context) bool
}

// Defaults for server options.
const (
	defaultMaxUploadBytes = 10 << 20
	defaultMaxPageSize    = 500
	multipartSlack        = 1 << 20 // multipart framing on top of the file
)

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithMaxUploadBytes caps request bodies on the upload route.
func WithMaxUploadBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxUploadBytes = n
		}
	}
}

// WithMaxPageSize caps ?page_size on the table route.
func WithMaxPageSize(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxPageSize = n
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// Server wires HTTP routes for the business API.
type Server struct {
	maxUploadBytes int64
	maxPageSize    int
	logger         logger.Logger

	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	uploadHandler  *UploadHandler
	playersHandler *PlayersHandler
	tableHandler   *TableHandler
	chartHandler   *ChartHandler
	dataHandler    *DataHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		maxUploadBytes: defaultMaxUploadBytes,
		maxPageSize:    defaultMaxPageSize,
		logger:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	b := newBinder()
	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.uploadHandler = NewUploadHandler(deps, s.maxUploadBytes)
	s.playersHandler = NewPlayersHandler(deps, b)
	s.tableHandler = NewTableHandler(deps, b, s.maxPageSize)
	s.chartHandler = NewChartHandler(deps, b)
	s.dataHandler = NewDataHandler(deps)
	return s
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(_ context.Context, r chi.Router) {
	if r == nil {
		panic("router is nil")
	}

	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequestID)
		r.Use(RequestLogger(s.logger))
		r.Use(middleware.Recoverer)

		r.Post("/upload", MetricsMiddleware(s.uploadHandler.HandleUpload, "upload"))
		r.Get("/players", MetricsMiddleware(s.playersHandler.HandleGetPlayers, "players"))
		r.Get("/table", MetricsMiddleware(s.tableHandler.HandleGetTable, "table"))
		r.Get("/columns", MetricsMiddleware(s.tableHandler.HandleGetColumns, "columns"))
		r.Get("/chart", MetricsMiddleware(s.chartHandler.HandleGetChart, "chart"))
		r.Get("/chart.png", MetricsMiddleware(s.chartHandler.HandleGetChartPNG, "chart_png"))
		r.Get("/stats/options", MetricsMiddleware(s.chartHandler.HandleGetStatOptions, "stat_options"))
		r.Get("/data", MetricsMiddleware(s.dataHandler.HandleGetStatus, "data"))
		r.Delete("/data", MetricsMiddleware(s.dataHandler.HandleDelete, "data"))
	})
}

// Routes returns a router with every API route registered.
func (s *Server) Routes(ctx context.Context) chi.Router {
	r := chi.NewRouter()
	s.Register(ctx, r)
	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates service and domain errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrNoSlate):
		writeError(w, http.StatusNotFound, "no_slate", Wrap(op, err))
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", Wrap(op, err))
	case errors.Is(err, chart.ErrUnknownStat),
		errors.Is(err, filter.ErrUnknownColumn),
		errors.Is(err, filter.ErrInvalidDirection):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, render.ErrNoData):
		writeError(w, http.StatusUnprocessableEntity, "no_data", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
