package filter

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/okian/dfsviz/internal/domain/model"
)

// DefaultPageSize is the number of rows per table page.
const DefaultPageSize = 25

// Direction is a sort direction.
type Direction string

// Sort directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Bound is an optional min/max filter on one numeric column. Nil ends are open.
type Bound struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// TableQuery describes one table view.
type TableQuery struct {
	Search    string
	Positions []model.Position
	Teams     []string
	Bounds    map[string]Bound
	SortKey   string
	SortDir   Direction
	Page      int
	PageSize  int
}

// Page is one page of table rows plus the facets for the filter menus.
type Page struct {
	Rows       []model.Player `json:"rows"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
	Teams      []string       `json:"teams"`
	Positions  []string       `json:"positions"`
}

// Validate checks column keys and the sort direction.
func (q TableQuery) Validate() error {
	if q.SortKey != "" {
		c, ok := ColumnByKey(q.SortKey)
		if !ok || !c.Sortable {
			return fmt.Errorf("%w: sort %q", ErrUnknownColumn, q.SortKey)
		}
	}
	switch q.SortDir {
	case "", Asc, Desc:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidDirection, q.SortDir)
	}
	for key := range q.Bounds {
		c, ok := ColumnByKey(key)
		if !ok || c.Kind != KindRange {
			return fmt.Errorf("%w: range %q", ErrUnknownColumn, key)
		}
	}
	return nil
}

// Table filters, sorts and pages players. Pages are 1-based and clamped to the
// available range; sorting is stable so ties keep input order.
func Table(players []model.Player, q TableQuery) (Page, error) {
	if err := q.Validate(); err != nil {
		return Page{}, err
	}

	rows := make([]model.Player, 0, len(players))
	for _, p := range players {
		if q.match(p) {
			rows = append(rows, p)
		}
	}

	if q.SortKey != "" {
		col, _ := ColumnByKey(q.SortKey)
		sort.SliceStable(rows, func(i, j int) bool {
			c := col.compare(rows[i], rows[j])
			if q.SortDir == Desc {
				return c > 0
			}
			return c < 0
		})
	}

	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(rows)
	pages := (total + size - 1) / size
	page := min(max(q.Page, 1), max(pages, 1))
	start := min((page-1)*size, total)
	end := min(start+size, total)

	return Page{
		Rows:       rows[start:end],
		Total:      total,
		Page:       page,
		PageSize:   size,
		TotalPages: pages,
		Teams:      Teams(players),
		Positions:  Positions(players),
	}, nil
}

func (q TableQuery) match(p model.Player) bool {
	if q.Search != "" {
		term := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Team), term) {
			return false
		}
	}
	if len(q.Positions) > 0 && !slices.Contains(q.Positions, p.Position) {
		return false
	}
	if len(q.Teams) > 0 && !slices.Contains(q.Teams, p.Team) {
		return false
	}
	for key, b := range q.Bounds {
		col, _ := ColumnByKey(key)
		v := col.num(p)
		if b.Min != nil && v < *b.Min {
			return false
		}
		if b.Max != nil && v > *b.Max {
			return false
		}
	}
	return true
}

// Teams returns the sorted distinct team tags.
func Teams(players []model.Player) []string {
	return distinct(players, func(p model.Player) string { return p.Team })
}

// Positions returns the sorted distinct position tags.
func Positions(players []model.Player) []string {
	return distinct(players, func(p model.Player) string { return string(p.Position) })
}

func distinct(players []model.Player, key func(model.Player) string) []string {
	seen := make(map[string]struct{}, len(players))
	out := []string{}
	for _, p := range players {
		k := key(p)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
