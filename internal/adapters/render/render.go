// Package render draws scatter charts as PNG images.
package render

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/okian/dfsviz/internal/domain/chart"
	"github.com/okian/dfsviz/pkg/metrics"
)

// Default canvas.
const (
	DefaultWidth    = 1200
	DefaultHeight   = 700
	defaultDotScale = 0.5
)

var guideColor = drawing.ColorFromHex("9ca3af")

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithSize sets the image size in pixels.
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		if width > 0 && height > 0 {
			r.width, r.height = width, height
		}
	}
}

// WithDotScale sets the ratio between marker radius and drawn dot radius.
func WithDotScale(scale float64) Option {
	return func(r *Renderer) {
		if scale > 0 {
			r.dotScale = scale
		}
	}
}

// Renderer draws charts. It is stateless and safe for concurrent use.
type Renderer struct {
	width    int
	height   int
	dotScale float64
}

// New creates a Renderer with configuration options.
func New(opts ...Option) *Renderer {
	r := &Renderer{width: DefaultWidth, height: DefaultHeight, dotScale: defaultDotScale}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// PNG writes c as a PNG: quadrant-colored dots sized by marker, dashed split
// lines at the x median and y midpoint, and labels for top performers.
func (r *Renderer) PNG(ctx context.Context, c chart.Chart, w io.Writer) error {
	start := time.Now()
	defer func() {
		metrics.RecordChartRenderLatency(metrics.Millis(time.Since(start)))
	}()

	if len(c.Points) == 0 {
		return ErrNoData
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	xs := make([]float64, len(c.Points))
	ys := make([]float64, len(c.Points))
	for i, p := range c.Points {
		xs[i], ys[i] = p.X, p.Y
	}
	xr := widen(c.Bounds.Left, c.Bounds.Right)
	yr := widen(c.Bounds.Bottom, c.Bounds.Top)

	dots := gochart.ContinuousSeries{
		Name:    "players",
		XValues: xs,
		YValues: ys,
		Style: gochart.Style{
			StrokeWidth: gochart.Disabled,
			DotWidthProvider: func(_, _ gochart.Range, i int, _, _ float64) float64 {
				return c.Markers[i].Radius() * r.dotScale
			},
			DotColorProvider: func(_, _ gochart.Range, i int, _, _ float64) drawing.Color {
				return hexColor(c.Points[i].Color).WithAlpha(uint8(c.Markers[i].Border * 255))
			},
		},
	}

	var labels []gochart.Value2
	for i, m := range c.Markers {
		if m.ShowLabel {
			labels = append(labels, gochart.Value2{XValue: xs[i], YValue: ys[i], Label: m.Label})
		}
	}

	series := []gochart.Series{
		guide("x median", []float64{c.XMedian, c.XMedian}, []float64{yr.Min, yr.Max}),
		guide("y split", []float64{xr.Min, xr.Max}, []float64{c.YMid, c.YMid}),
		dots,
	}
	if len(labels) > 0 {
		series = append(series, gochart.AnnotationSeries{Annotations: labels})
	}

	graph := gochart.Chart{
		Width:      r.width,
		Height:     r.height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 60, Right: 40, Bottom: 40}},
		XAxis:      gochart.XAxis{Name: c.XLabel, Range: xr},
		YAxis:      gochart.YAxis{Name: c.YLabel, Range: yr},
		Series:     series,
	}
	if err := graph.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	metrics.RecordChartRender("png")
	return nil
}

func guide(name string, xs, ys []float64) gochart.ContinuousSeries {
	return gochart.ContinuousSeries{
		Name:    name,
		XValues: xs,
		YValues: ys,
		Style: gochart.Style{
			StrokeColor:     guideColor.WithAlpha(128),
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5, 5},
		},
	}
}

// widen returns a range that go-chart can draw; a zero-width window grows by one unit each side.
func widen(lo, hi float64) *gochart.ContinuousRange {
	if hi <= lo {
		mid := (lo + hi) / 2
		lo, hi = mid-1, mid+1
	}
	return &gochart.ContinuousRange{Min: lo, Max: hi}
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
