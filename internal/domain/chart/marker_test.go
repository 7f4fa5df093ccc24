package chart_test

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/dfsviz/internal/domain/chart"
)

func TestMarker(t *testing.T) {
	convey.Convey("Given spread out points", t, func() {
		points := []chart.Point{
			{ID: "a", Name: "Josh Allen", X: 0, Y: 0, Size: 10},
			{ID: "b", Name: "James Cook III", X: 10, Y: 10, Size: 20},
			{ID: "c", Name: "Travis Kelce", X: 20, Y: 20, Size: 30},
			{ID: "d", Name: "Chiefs", X: 30, Y: 30, Size: 30},
		}
		mc := chart.NewMarkerContext(points)

		convey.Convey("Then the context carries size bounds and thresholds", func() {
			convey.So(mc.MinSize, convey.ShouldEqual, 10.0)
			convey.So(mc.MaxSize, convey.ShouldEqual, 30.0)
			convey.So(mc.X75, convey.ShouldEqual, 30.0)
			convey.So(mc.Y75, convey.ShouldEqual, 30.0)
		})

		convey.Convey("Then diameter scales from 24 to 48", func() {
			convey.So(mc.Marker(0).Diameter, convey.ShouldEqual, 24.0)
			convey.So(mc.Marker(1).Diameter, convey.ShouldEqual, 36.0)
			convey.So(mc.Marker(2).Diameter, convey.ShouldEqual, 48.0)
		})

		convey.Convey("Then only top performers are labelled", func() {
			convey.So(mc.Marker(0).ShowLabel, convey.ShouldBeFalse)
			convey.So(mc.Marker(3).ShowLabel, convey.ShouldBeTrue)
			convey.So(mc.Marker(3).Label, convey.ShouldEqual, "CHIEFS")
		})

		convey.Convey("Then uncrowded labels sit below the marker", func() {
			m := mc.Marker(1)
			convey.So(m.Placement, convey.ShouldEqual, chart.Below)
			x, y, anchor := m.LabelAt(100, 100)
			convey.So(x, convey.ShouldEqual, 100.0)
			convey.So(y, convey.ShouldEqual, 130.0)
			convey.So(anchor, convey.ShouldEqual, "middle")
			convey.So(m.Border, convey.ShouldEqual, 0.85)
			convey.So(m.Glow, convey.ShouldAlmostEqual, 0.255, 1e-9)
		})
	})

	convey.Convey("Given crowded points", t, func() {
		// "a"=97, "b"=98, "c"=99, "d"=100; mod 4 gives 1, 2, 3, 0
		points := []chart.Point{
			{ID: "a", X: 1, Y: 1},
			{ID: "b", X: 1.5, Y: 1},
			{ID: "c", X: 2, Y: 1},
			{ID: "d", X: 2.5, Y: 1},
		}
		mc := chart.NewMarkerContext(points)

		convey.Convey("Then placement follows the id hash", func() {
			convey.So(mc.Marker(0).Placement, convey.ShouldEqual, chart.BelowLeft)
			convey.So(mc.Marker(1).Placement, convey.ShouldEqual, chart.Above)
			convey.So(mc.Marker(2).Placement, convey.ShouldEqual, chart.BelowFar)
			convey.So(mc.Marker(3).Placement, convey.ShouldEqual, chart.BelowRight)
		})

		convey.Convey("Then equal sizes give the base diameter", func() {
			convey.So(mc.Marker(0).Diameter, convey.ShouldEqual, 24.0)
		})

		convey.Convey("Then each placement offsets the label", func() {
			m := mc.Marker(3)
			x, y, anchor := m.LabelAt(50, 50)
			convey.So([]any{x, y, anchor}, convey.ShouldResemble, []any{50.0 + 12 + 5, 50.0 + 12 + 8, "start"})

			x, y, anchor = mc.Marker(0).LabelAt(50, 50)
			convey.So([]any{x, y, anchor}, convey.ShouldResemble, []any{50.0 - 12 - 5, 50.0 + 12 + 8, "end"})

			_, y, _ = mc.Marker(1).LabelAt(50, 50)
			convey.So(y, convey.ShouldEqual, 34.0)
		})
	})
}

func TestLastName(t *testing.T) {
	convey.Convey("LastName skips generational suffixes", t, func() {
		convey.So(chart.LastName("Josh Allen"), convey.ShouldEqual, "Allen")
		convey.So(chart.LastName("James Cook III"), convey.ShouldEqual, "Cook")
		convey.So(chart.LastName("Kyle Pitts Sr."), convey.ShouldEqual, "Pitts")
		convey.So(chart.LastName("Chiefs"), convey.ShouldEqual, "Chiefs")
		convey.So(chart.LastName("Cook III"), convey.ShouldEqual, "III")
	})
}
