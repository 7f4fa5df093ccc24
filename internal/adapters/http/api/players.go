package api

import (
	"net/http"

	"github.com/okian/dfsviz/internal/domain/model"
)

// PlayersHandler handles player collection requests.
type PlayersHandler struct {
	deps   PlayersDependencies
	binder *binder
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps PlayersDependencies, b *binder) *PlayersHandler {
	return &PlayersHandler{deps: deps, binder: b}
}

type playersResponse struct {
	Position model.Position `json:"position"`
	Count    int            `json:"count"`
	Players  []model.Player `json:"players"`
}

// HandleGetPlayers handles GET /api/players?position=QB requests.
func (h *PlayersHandler) HandleGetPlayers(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_players"
	pos, err := h.binder.players(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	if pos == "" {
		pos = model.All
	}
	players, err := h.deps.Players(r.Context(), pos)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	if players == nil {
		players = []model.Player{}
	}
	writeJSON(w, http.StatusOK, playersResponse{Position: pos, Count: len(players), Players: players})
}
