package chart

import (
	"fmt"

	"github.com/okian/dfsviz/internal/domain/model"
)

// Stat names a player value that can be plotted.
type Stat string

// Plottable stats.
const (
	StatBoom         Stat = "boom_pct"
	StatOwnership    Stat = "proj_ownership"
	StatProjection   Stat = "projection"
	StatSalary       Stat = "salary"
	StatLeverage     Stat = "leverage"
	StatPtsPerDollar Stat = "pts_per_dollar"
)

// StatOption pairs a stat with its axis label.
type StatOption struct {
	Value Stat   `json:"value"`
	Label string `json:"label"`
}

// Stats lists the plottable stats in menu order.
var Stats = []StatOption{
	{Value: StatBoom, Label: "Boom%"},
	{Value: StatOwnership, Label: "Proj Own%"},
	{Value: StatProjection, Label: "Projection"},
	{Value: StatSalary, Label: "Salary"},
	{Value: StatLeverage, Label: "Leverage"},
	{Value: StatPtsPerDollar, Label: "Pts/$"},
}

// ParseStat validates a stat name.
func ParseStat(s string) (Stat, error) {
	for _, o := range Stats {
		if string(o.Value) == s {
			return o.Value, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStat, s)
}

// Label returns the axis label, or the raw name for unknown stats.
func (s Stat) Label() string {
	for _, o := range Stats {
		if o.Value == s {
			return o.Label
		}
	}
	return string(s)
}

// Value reads the stat from p. Unknown stats read as 0.
func (s Stat) Value(p model.Player) float64 {
	switch s {
	case StatBoom:
		return p.BoomPct
	case StatOwnership:
		return p.ProjOwnership
	case StatProjection:
		return p.Projection
	case StatSalary:
		return p.Salary
	case StatLeverage:
		return p.Leverage
	case StatPtsPerDollar:
		return p.PtsPerDollar
	default:
		return 0
	}
}

// Axes chooses the stats for x, y and bubble size.
type Axes struct {
	X    Stat `json:"x"`
	Y    Stat `json:"y"`
	Size Stat `json:"size"`
}

// DefaultAxes plots boom% against leverage, sized by projected ownership.
func DefaultAxes() Axes {
	return Axes{X: StatBoom, Y: StatLeverage, Size: StatOwnership}
}

// Validate checks every axis names a known stat.
func (a Axes) Validate() error {
	for _, s := range []Stat{a.X, a.Y, a.Size} {
		if _, err := ParseStat(string(s)); err != nil {
			return err
		}
	}
	return nil
}
