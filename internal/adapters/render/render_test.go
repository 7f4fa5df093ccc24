package render_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/dfsviz/internal/adapters/render"
	"github.com/okian/dfsviz/internal/domain/chart"
	"github.com/okian/dfsviz/internal/domain/model"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestRendererPNG(t *testing.T) {
	ctx := context.Background()
	r := render.New(render.WithSize(640, 400))

	convey.Convey("Given a chart with players", t, func() {
		c := chart.Build([]model.Player{
			{ID: "1", Name: "Josh Allen", BoomPct: 30, Leverage: 5, ProjOwnership: 20},
			{ID: "2", Name: "James Cook III", BoomPct: 10, Leverage: -4, ProjOwnership: 10},
			{ID: "3", Name: "Travis Kelce", BoomPct: 22, Leverage: 1, ProjOwnership: 15},
		}, chart.DefaultAxes())

		convey.Convey("When rendering", func() {
			var buf bytes.Buffer
			err := r.PNG(ctx, c, &buf)

			convey.Convey("Then a PNG image is written", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(bytes.HasPrefix(buf.Bytes(), pngMagic), convey.ShouldBeTrue)
			})
		})
	})

	convey.Convey("Given a single player", t, func() {
		c := chart.Build([]model.Player{{ID: "1", Name: "Solo", BoomPct: 12, Leverage: 2}}, chart.DefaultAxes())

		convey.Convey("Then the collapsed window still renders", func() {
			var buf bytes.Buffer
			convey.So(r.PNG(ctx, c, &buf), convey.ShouldBeNil)
			convey.So(bytes.HasPrefix(buf.Bytes(), pngMagic), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given an empty chart", t, func() {
		err := r.PNG(ctx, chart.Build(nil, chart.DefaultAxes()), &bytes.Buffer{})

		convey.Convey("Then there is nothing to draw", func() {
			convey.So(errors.Is(err, render.ErrNoData), convey.ShouldBeTrue)
		})
	})
}
