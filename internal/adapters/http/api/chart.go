package api

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/okian/dfsviz/internal/domain/chart"
)

// ChartHandler handles scatter chart requests.
type ChartHandler struct {
	deps   ChartDependencies
	binder *binder
}

// NewChartHandler creates a new chart handler.
func NewChartHandler(deps ChartDependencies, b *binder) *ChartHandler {
	return &ChartHandler{deps: deps, binder: b}
}

// HandleGetChart handles GET /api/chart requests and returns plot data.
func (h *ChartHandler) HandleGetChart(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_chart"
	f, axes, err := h.binder.chart(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	c, err := h.deps.Chart(r.Context(), f, axes)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// HandleGetChartPNG handles GET /api/chart.png requests.
func (h *ChartHandler) HandleGetChartPNG(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_chart_png"
	f, axes, err := h.binder.chart(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	var buf bytes.Buffer
	if err := h.deps.RenderChart(r.Context(), f, axes, &buf); err != nil {
		writeServiceError(w, op, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// HandleGetStatOptions handles GET /api/stats/options requests.
func (h *ChartHandler) HandleGetStatOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, chart.Stats)
}
