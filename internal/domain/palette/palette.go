// Package palette holds the display colors for teams and positions.
package palette

import "strings"

// Neutral is used for unknown teams and positions.
const Neutral = "#6b7280"

var teams = map[string]string{
	"ARI": "#97233F", "ATL": "#A71930", "BAL": "#241773", "BUF": "#00338D",
	"CAR": "#0085CA", "CHI": "#C83803", "CIN": "#FB4F14", "CLE": "#311D00",
	"DAL": "#041E42", "DEN": "#FB4F14", "DET": "#0076B6", "GB": "#203731",
	"HOU": "#03202F", "IND": "#002C5F", "JAX": "#006778", "KC": "#E31837",
	"LAC": "#0080C6", "LAR": "#003594", "LV": "#000000", "MIA": "#008E97",
	"MIN": "#4F2683", "NE": "#002244", "NO": "#D3BC8D", "NYG": "#0B2265",
	"NYJ": "#125740", "PHI": "#004C54", "PIT": "#FFB612", "SF": "#AA0000",
	"SEA": "#002244", "TB": "#D50A0A", "TEN": "#0C2340", "WAS": "#5A1414",
}

var positions = map[string]string{
	"QB":  "#dc2626",
	"RB":  "#059669",
	"WR":  "#3b82f6",
	"TE":  "#d97706",
	"DST": "#6b7280",
	"ALL": "#8b5cf6",
}

// Team returns the primary color of team, matched case-insensitively.
func Team(team string) string {
	if c, ok := teams[strings.ToUpper(team)]; ok {
		return c
	}
	return Neutral
}

// Position returns the badge color of a position tag.
func Position(pos string) string {
	if c, ok := positions[pos]; ok {
		return c
	}
	return Neutral
}
