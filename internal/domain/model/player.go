// Package model contains domain models passed between layers.
package model

// Position is a roster category tag.
type Position string

// Roster categories. All is the synthetic aggregate, also used when a row carries no position.
const (
	All Position = "ALL"
	QB  Position = "QB"
	RB  Position = "RB"
	WR  Position = "WR"
	TE  Position = "TE"
	DST Position = "DST"
)

// Positions lists the five real categories in display order.
var Positions = []Position{QB, RB, WR, TE, DST}

// Keys lists every collection key, aggregate first.
var Keys = []Position{All, QB, RB, WR, TE, DST}

// Known reports whether p is one of the five real categories.
func (p Position) Known() bool {
	switch p {
	case QB, RB, WR, TE, DST:
		return true
	default:
		return false
	}
}

// Player is one normalized slate row. Values are never mutated after ingest.
// Fields mirror the persisted JSON shape.
type Player struct {
	Name          string   `json:"player_name"`
	ID            string   `json:"player_id"`
	Position      Position `json:"position"`
	Team          string   `json:"team_abbr"`
	Salary        float64  `json:"salary"`
	DKProjection  float64  `json:"dk_projection"`
	Projection    float64  `json:"projection"`
	ProjOwnership float64  `json:"proj_ownership"`
	PtsPerDollar  float64  `json:"pts_per_dollar"`
	StdDev        float64  `json:"std_dev"`
	Ceiling       float64  `json:"ceiling"`
	BustPct       float64  `json:"bust_pct"`
	BoomPct       float64  `json:"boom_pct"`
	OwnershipPct  float64  `json:"ownership_pct"`
	OptimalPct    float64  `json:"optimal_pct"`
	Leverage      float64  `json:"leverage"`
	HeadshotURL   string   `json:"headshot_url"`

	// Missing names the numeric fields that were absent or unparseable and defaulted to 0.
	Missing []string `json:"missing_fields,omitempty"`
}

// Defaulted reports whether field fell back to 0 during ingest.
func (p Player) Defaulted(field string) bool {
	for _, f := range p.Missing {
		if f == field {
			return true
		}
	}
	return false
}

// Collections maps each collection key to its players in input order.
type Collections map[Position][]Player

// NewCollections returns Collections with every key present and empty.
func NewCollections() Collections {
	c := make(Collections, len(Keys))
	for _, k := range Keys {
		c[k] = []Player{}
	}
	return c
}

// Group partitions players into the aggregate plus the five categories.
// Players with an unknown position appear only in All.
func Group(players []Player) Collections {
	c := NewCollections()
	c[All] = append(c[All], players...)
	for _, p := range players {
		if p.Position.Known() {
			c[p.Position] = append(c[p.Position], p)
		}
	}
	return c
}

// Total returns the size of the aggregate collection.
func (c Collections) Total() int {
	return len(c[All])
}
