package main

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/okian/dfsviz/internal/domain/filter"
	"github.com/okian/dfsviz/internal/domain/ingest"
	"github.com/okian/dfsviz/internal/domain/model"
	"github.com/okian/dfsviz/internal/domain/palette"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Neutral))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#d97706"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// maxWarnings caps the warnings echoed in the summary.
const maxWarnings = 10

func renderSummary(path string, size int64, res ingest.Result) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(path))
	sb.WriteString(mutedStyle.Render("  " + humanize.Bytes(uint64(size))))
	sb.WriteString("\n")

	badges := make([]string, 0, len(model.Keys))
	for _, k := range model.Keys {
		badge := lipgloss.NewStyle().
			Foreground(lipgloss.Color(palette.Position(string(k)))).
			Bold(true).
			Render(string(k))
		badges = append(badges, badge+" "+strconv.Itoa(len(res.Collections[k])))
	}
	sb.WriteString(strings.Join(badges, mutedStyle.Render(" | ")))

	if n := len(res.Errors); n > 0 {
		sb.WriteString("\n")
		sb.WriteString(warnStyle.Render(humanize.Comma(int64(n)) + " " + plural(n, "warning", "warnings")))
		for i, e := range res.Errors {
			if i == maxWarnings {
				sb.WriteString("\n" + mutedStyle.Render("  ..."))
				break
			}
			sb.WriteString("\n" + mutedStyle.Render("  "+e))
		}
	}
	return sb.String()
}

// renderPlayers lays the players out under the table column catalogue.
func renderPlayers(players []model.Player) string {
	if len(players) == 0 {
		return mutedStyle.Render("no players")
	}

	cols := filter.Columns
	cells := make([][]string, len(players))
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = lipgloss.Width(c.Label)
	}
	for r, p := range players {
		cells[r] = make([]string, len(cols))
		for i, c := range cols {
			cells[r][i] = c.Display(p)
			widths[i] = max(widths[i], lipgloss.Width(cells[r][i]))
		}
	}
	// lipgloss widths include padding
	for i := range widths {
		widths[i] += 2
	}

	var sb strings.Builder
	for i, c := range cols {
		style := headerStyle.Width(widths[i])
		if c.Numeric() {
			style = style.Align(lipgloss.Right)
		}
		sb.WriteString(style.Render(c.Label))
	}
	sb.WriteString("\n")
	for r, p := range players {
		for i, c := range cols {
			style := cellStyle.Width(widths[i])
			switch {
			case c.Key == "team_abbr":
				style = style.Foreground(lipgloss.Color(palette.Team(p.Team)))
			case c.Key == "position":
				style = style.Foreground(lipgloss.Color(palette.Position(string(p.Position))))
			case c.Numeric():
				style = style.Align(lipgloss.Right)
			}
			sb.WriteString(style.Render(cells[r][i]))
		}
		if r < len(players)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
