package api

import (
	"net/http"

	"github.com/okian/dfsviz/internal/domain/filter"
)

// TableHandler handles the paged player table.
type TableHandler struct {
	deps        TableDependencies
	binder      *binder
	maxPageSize int
}

// NewTableHandler creates a new table handler.
func NewTableHandler(deps TableDependencies, b *binder, maxPageSize int) *TableHandler {
	return &TableHandler{deps: deps, binder: b, maxPageSize: maxPageSize}
}

// HandleGetTable handles GET /api/table requests.
//
//	?search=allen&position=QB,RB&team=KC&sort=salary&dir=desc&page=2&page_size=25&min.salary=5000
func (h *TableHandler) HandleGetTable(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_table"
	q, err := h.binder.table(r.URL.Query(), h.maxPageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	page, err := h.deps.Table(r.Context(), q)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// HandleGetColumns handles GET /api/columns requests.
func (h *TableHandler) HandleGetColumns(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, filter.Columns)
}
