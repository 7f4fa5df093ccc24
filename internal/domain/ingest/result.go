package ingest

import "github.com/okian/dfsviz/internal/domain/model"

// Result is the outcome of parsing one upload.
type Result struct {
	Players     []model.Player    `json:"data"`
	Collections model.Collections `json:"collections"`
	Errors      []string          `json:"errors"`
	Success     bool              `json:"success"`
}

// Succeeded wraps players and the tokenizer's non-fatal warnings. An empty slate is still a success.
func Succeeded(players []model.Player, warnings []string) Result {
	if players == nil {
		players = []model.Player{}
	}
	if warnings == nil {
		warnings = []string{}
	}
	return Result{
		Players:     players,
		Collections: model.Group(players),
		Errors:      warnings,
		Success:     true,
	}
}

// Failed reports a structural failure with no data.
func Failed(err error) Result {
	msg := "failed to parse slate"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return Result{
		Players:     []model.Player{},
		Collections: model.NewCollections(),
		Errors:      []string{msg},
		Success:     false,
	}
}
