package api

import (
	"net/http"
)

// DataHandler handles the stored slate itself.
type DataHandler struct {
	deps DataDependencies
}

// NewDataHandler creates a new data handler.
func NewDataHandler(deps DataDependencies) *DataHandler {
	return &DataHandler{deps: deps}
}

type dataStatus struct {
	HasData bool `json:"has_data"`
}

// HandleGetStatus handles GET /api/data requests.
func (h *DataHandler) HandleGetStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dataStatus{HasData: h.deps.HasData(r.Context())})
}

// HandleDelete handles DELETE /api/data requests.
func (h *DataHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_data"
	if err := h.deps.Clear(r.Context()); err != nil {
		writeServiceError(w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
