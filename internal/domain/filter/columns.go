package filter

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/okian/dfsviz/internal/domain/model"
)

// Kind is how a column is filtered.
type Kind string

// Column filter kinds.
const (
	KindText  Kind = "text"
	KindSet   Kind = "checkbox"
	KindRange Kind = "range"
)

// Column describes one table column.
type Column struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Sortable bool   `json:"sortable"`
	Kind     Kind   `json:"type"`

	format func(float64) string
	num    func(model.Player) float64
	str    func(model.Player) string
}

// Numeric reports whether the column holds numbers.
func (c Column) Numeric() bool { return c.num != nil }

// Display renders the column value of p.
func (c Column) Display(p model.Player) string {
	if c.str != nil {
		return c.str(p)
	}
	if c.format != nil {
		return c.format(c.num(p))
	}
	return fmt.Sprintf("%g", c.num(p))
}

// FormatSalary renders 8100 as "$8,100".
func FormatSalary(v float64) string { return "$" + humanize.Commaf(v) }

// FormatPercent renders 12.34 as "12.3%".
func FormatPercent(v float64) string { return fmt.Sprintf("%.1f%%", v) }

// FormatDecimal renders one decimal place.
func FormatDecimal(v float64) string { return fmt.Sprintf("%.1f", v) }

// Columns is the table column catalogue in display order.
var Columns = []Column{
	{Key: "player_name", Label: "Player", Sortable: true, Kind: KindText, str: func(p model.Player) string { return p.Name }},
	{Key: "team_abbr", Label: "Team", Sortable: true, Kind: KindSet, str: func(p model.Player) string { return p.Team }},
	{Key: "position", Label: "Pos", Sortable: true, Kind: KindSet, str: func(p model.Player) string { return string(p.Position) }},
	{Key: "salary", Label: "Salary", Sortable: true, Kind: KindRange, format: FormatSalary, num: func(p model.Player) float64 { return p.Salary }},
	{Key: "dk_projection", Label: "Proj", Sortable: true, Kind: KindRange, format: FormatDecimal, num: func(p model.Player) float64 { return p.DKProjection }},
	{Key: "std_dev", Label: "Std Dev", Sortable: true, Kind: KindRange, format: FormatDecimal, num: func(p model.Player) float64 { return p.StdDev }},
	{Key: "ceiling", Label: "Ceiling", Sortable: true, Kind: KindRange, format: FormatDecimal, num: func(p model.Player) float64 { return p.Ceiling }},
	{Key: "boom_pct", Label: "Boom%", Sortable: true, Kind: KindRange, format: FormatPercent, num: func(p model.Player) float64 { return p.BoomPct }},
	{Key: "bust_pct", Label: "Bust%", Sortable: true, Kind: KindRange, format: FormatPercent, num: func(p model.Player) float64 { return p.BustPct }},
	{Key: "ownership_pct", Label: "Own%", Sortable: true, Kind: KindRange, format: FormatPercent, num: func(p model.Player) float64 { return p.OwnershipPct }},
	{Key: "optimal_pct", Label: "Opt%", Sortable: true, Kind: KindRange, format: FormatPercent, num: func(p model.Player) float64 { return p.OptimalPct }},
	{Key: "leverage", Label: "Lev", Sortable: true, Kind: KindRange, format: FormatDecimal, num: func(p model.Player) float64 { return p.Leverage }},
}

// ColumnByKey looks a column up by its key.
func ColumnByKey(key string) (Column, bool) {
	for _, c := range Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

// compare orders a and b on column c, returning -1, 0 or 1.
func (c Column) compare(a, b model.Player) int {
	if c.num != nil {
		x, y := c.num(a), c.num(b)
		switch {
		case x == y:
			return 0
		case x < y:
			return -1
		default:
			return 1
		}
	}
	return strings.Compare(c.str(a), c.str(b))
}
