// Package chart projects players onto a quadrant scatter chart.
//
// Build is pure: it derives points, default bounds, the x median and quadrant
// colors from the players and axes it is given. Marker styling reads a
// MarkerContext value computed from the same points, so rendering never depends
// on shared state.
package chart

import (
	"sort"

	"github.com/okian/dfsviz/internal/domain/model"
)

// Bounds padding as a share of the data range.
const padding = 0.1

// Quadrant classifies a point against the x median and y midpoint.
type Quadrant string

// Quadrants.
const (
	Best       Quadrant = "best"
	Contrarian Quadrant = "contrarian"
	Popular    Quadrant = "popular"
	Avoid      Quadrant = "avoid"
)

var quadrantColors = map[Quadrant]string{
	Best:       "#059669",
	Contrarian: "#d97706",
	Popular:    "#6b7280",
	Avoid:      "#dc2626",
}

// Color returns the marker color of q.
func (q Quadrant) Color() string { return quadrantColors[q] }

// Classify places (x, y) relative to the split lines. Points on a line count as above it.
func Classify(x, y, xMid, yMid float64) Quadrant {
	switch {
	case x >= xMid && y >= yMid:
		return Best
	case x < xMid && y >= yMid:
		return Contrarian
	case x >= xMid:
		return Popular
	default:
		return Avoid
	}
}

// Point is one plotted player.
type Point struct {
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
	Size     float64        `json:"z"`
	ID       string         `json:"player_id"`
	Name     string         `json:"player_name"`
	Position model.Position `json:"position"`
	Team     string         `json:"team_abbr"`
	Headshot string         `json:"headshot_url"`
	Quadrant Quadrant       `json:"quadrant"`
	Color    string         `json:"color"`
}

// Bounds is the default visible window.
type Bounds struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Chart is a fully derived scatter chart.
type Chart struct {
	Axes      Axes     `json:"axes"`
	XLabel    string   `json:"x_label"`
	YLabel    string   `json:"y_label"`
	SizeLabel string   `json:"size_label"`
	Points    []Point  `json:"points"`
	Markers   []Marker `json:"markers"`
	Bounds    Bounds   `json:"bounds"`
	XMedian   float64  `json:"x_median"`
	YMid      float64  `json:"y_mid"`
}

// Build projects players onto axes. Axes must already be valid.
func Build(players []model.Player, axes Axes) Chart {
	c := Chart{
		Axes:      axes,
		XLabel:    axes.X.Label(),
		YLabel:    axes.Y.Label(),
		SizeLabel: axes.Size.Label(),
		Points:    make([]Point, 0, len(players)),
		Markers:   []Marker{},
	}
	if len(players) == 0 {
		c.Bounds = Bounds{Left: 0, Right: 100, Top: 10, Bottom: -10}
		c.XMedian = 50
		return c
	}

	xs := make([]float64, len(players))
	ys := make([]float64, len(players))
	for i, p := range players {
		xs[i], ys[i] = axes.X.Value(p), axes.Y.Value(p)
	}
	c.Bounds = bounds(xs, ys)
	c.XMedian = Median(xs)
	c.YMid = Median(ys)
	if axes.Y == StatLeverage {
		// leverage splits at zero
		c.YMid = 0
	}

	for i, p := range players {
		q := Classify(xs[i], ys[i], c.XMedian, c.YMid)
		c.Points = append(c.Points, Point{
			X:        xs[i],
			Y:        ys[i],
			Size:     axes.Size.Value(p),
			ID:       p.ID,
			Name:     p.Name,
			Position: p.Position,
			Team:     p.Team,
			Headshot: p.HeadshotURL,
			Quadrant: q,
			Color:    q.Color(),
		})
	}

	mc := NewMarkerContext(c.Points)
	c.Markers = make([]Marker, len(c.Points))
	for i := range c.Points {
		c.Markers[i] = mc.Marker(i)
	}
	return c
}

func bounds(xs, ys []float64) Bounds {
	xMin, xMax := minMax(xs)
	yMin, yMax := minMax(ys)
	xPad := (xMax - xMin) * padding
	yPad := (yMax - yMin) * padding
	return Bounds{
		Left:   xMin - xPad,
		Right:  xMax + xPad,
		Top:    yMax + yPad,
		Bottom: yMin - yPad,
	}
}

func minMax(vs []float64) (lo, hi float64) {
	lo, hi = vs[0], vs[0]
	for _, v := range vs[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

// Median returns sorted[n/2], the upper median for even n. It returns 0 for no values.
func Median(vs []float64) float64 {
	return quantile(vs, 0.5)
}

// quantile returns sorted[floor(q*n)] without reordering vs.
func quantile(vs []float64, q float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	sorted := append([]float64(nil), vs...)
	sort.Float64s(sorted)
	i := int(q * float64(len(sorted)))
	if i >= len(sorted) {
		i = len(sorted) - 1
	}
	return sorted[i]
}
