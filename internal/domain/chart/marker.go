package chart

import (
	"math"
	"strings"
)

// Marker geometry.
const (
	baseDiameter    = 24.0
	growDiameter    = 24.0
	crowdDistance   = 3.0
	intensity       = 0.85
	glowFactor      = 0.3
	labelPercentile = 0.75
)

// name suffixes skipped when picking a label
var suffixes = map[string]bool{"Jr.": true, "Sr.": true, "II": true, "III": true, "IV": true, "V": true}

// Placement is where a label sits relative to its marker.
type Placement string

// Label placements. Below is the default; the others are used for crowded points.
const (
	Below      Placement = "below"
	BelowRight Placement = "below_right"
	BelowLeft  Placement = "below_left"
	Above      Placement = "above"
	BelowFar   Placement = "below_far"
)

// MarkerContext carries the batch-wide values marker styling depends on.
type MarkerContext struct {
	MinSize float64
	MaxSize float64
	X75     float64
	Y75     float64
	Points  []Point
}

// NewMarkerContext derives size bounds and 75th percentile thresholds from points.
func NewMarkerContext(points []Point) MarkerContext {
	mc := MarkerContext{MinSize: 0, MaxSize: 100, Points: points}
	if len(points) == 0 {
		return mc
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	zs := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i], zs[i] = p.X, p.Y, p.Size
	}
	mc.MinSize, mc.MaxSize = minMax(zs)
	mc.X75 = quantile(xs, labelPercentile)
	mc.Y75 = quantile(ys, labelPercentile)
	return mc
}

// Marker is the styling of one point.
type Marker struct {
	Diameter  float64   `json:"diameter"`
	Border    float64   `json:"border_opacity"`
	Glow      float64   `json:"glow_opacity"`
	Label     string    `json:"label"`
	ShowLabel bool      `json:"show_label"`
	Placement Placement `json:"placement"`
}

// Radius is half the diameter.
func (m Marker) Radius() float64 { return m.Diameter / 2 }

// LabelAt positions the label for a marker centred at (cx, cy) in screen
// coordinates, y growing downwards. anchor is start, middle or end.
func (m Marker) LabelAt(cx, cy float64) (x, y float64, anchor string) {
	r := m.Radius()
	switch m.Placement {
	case BelowRight:
		return cx + r + 5, cy + r + 8, "start"
	case BelowLeft:
		return cx - r - 5, cy + r + 8, "end"
	case Above:
		return cx, cy - r - 4, "middle"
	case BelowFar:
		return cx, cy + r + 18, "middle"
	default:
		return cx, cy + r + 12, "middle"
	}
}

// Marker styles the point at index i.
func (mc MarkerContext) Marker(i int) Marker {
	p := mc.Points[i]

	spread := mc.MaxSize - mc.MinSize
	if spread == 0 {
		spread = 1
	}
	norm := (p.Size - mc.MinSize) / spread

	m := Marker{
		Diameter:  baseDiameter + norm*growDiameter,
		Border:    intensity,
		Glow:      intensity * glowFactor,
		Label:     strings.ToUpper(LastName(p.Name)),
		ShowLabel: p.X >= mc.X75 || p.Y >= mc.Y75,
		Placement: Below,
	}
	if mc.crowded(i) {
		m.Placement = [...]Placement{BelowRight, BelowLeft, Above, BelowFar}[idHash(p.ID)%4]
	}
	return m
}

// crowded reports whether another point lies within crowdDistance of point i.
func (mc MarkerContext) crowded(i int) bool {
	p := mc.Points[i]
	for j, o := range mc.Points {
		if j == i {
			continue
		}
		if math.Hypot(o.X-p.X, o.Y-p.Y) < crowdDistance {
			return true
		}
	}
	return false
}

func idHash(id string) int {
	sum := 0
	for _, r := range id {
		sum += int(r)
	}
	return sum
}

// LastName picks the label word: the final word, or the one before it when the
// final word is a generational suffix and the name has more than two words.
func LastName(name string) string {
	parts := strings.Split(name, " ")
	if len(parts) <= 1 {
		return name
	}
	last := parts[len(parts)-1]
	if suffixes[last] && len(parts) > 2 {
		return parts[len(parts)-2]
	}
	return last
}
