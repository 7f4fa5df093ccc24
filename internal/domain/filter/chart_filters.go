// Package filter narrows, sorts and pages player collections for the chart and table views.
package filter

import (
	"slices"

	"github.com/okian/dfsviz/internal/domain/model"
)

// Range is an inclusive numeric interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies within r, bounds included.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// ChartFilters selects the players plotted on the scatter chart.
type ChartFilters struct {
	Position   model.Position `json:"position"`
	Teams      []string       `json:"selected_teams"`
	Ownership  Range          `json:"ownership_range"`
	Projection Range          `json:"projection_range"`
	Salary     Range          `json:"salary_range"`
	Leverage   Range          `json:"leverage_range"`
}

// DefaultChartFilters returns the filters a fresh chart starts with.
func DefaultChartFilters() ChartFilters {
	return ChartFilters{
		Position:   model.All,
		Teams:      []string{},
		Ownership:  Range{Min: 0, Max: 100},
		Projection: Range{Min: 0, Max: 100},
		Salary:     Range{Min: 3000, Max: 10000},
		Leverage:   Range{Min: -100, Max: 100},
	}
}

// ToggleTeam adds team to the selection, or removes it when already selected.
func (f ChartFilters) ToggleTeam(team string) ChartFilters {
	out := f
	if i := slices.Index(f.Teams, team); i >= 0 {
		out.Teams = slices.Delete(slices.Clone(f.Teams), i, i+1)
		return out
	}
	out.Teams = append(slices.Clone(f.Teams), team)
	return out
}

// Match reports whether p passes every filter.
func (f ChartFilters) Match(p model.Player) bool {
	if f.Position != "" && f.Position != model.All && p.Position != f.Position {
		return false
	}
	if len(f.Teams) > 0 && !slices.Contains(f.Teams, p.Team) {
		return false
	}
	return f.Ownership.Contains(p.OwnershipPct) &&
		f.Projection.Contains(p.DKProjection) &&
		f.Salary.Contains(p.Salary) &&
		f.Leverage.Contains(p.Leverage)
}

// Apply returns the players that pass every filter, in input order.
func (f ChartFilters) Apply(players []model.Player) []model.Player {
	out := make([]model.Player, 0, len(players))
	for _, p := range players {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}
