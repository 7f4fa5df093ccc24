package service_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/dfsviz/internal/adapters/repository"
	service "github.com/okian/dfsviz/internal/app"
	"github.com/okian/dfsviz/internal/domain/chart"
	"github.com/okian/dfsviz/internal/domain/filter"
	"github.com/okian/dfsviz/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServiceIntegration(t *testing.T) {
	Convey("Given a service backed by sqlite", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		path := filepath.Join(t.TempDir(), "slate.db")
		store, err := repository.NewSQLiteStore(ctx, path)
		So(err, ShouldBeNil)

		svc := service.New(service.WithStore(store), service.WithPageSize(2))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		res, err := svc.Upload(ctx, "week1.csv", strings.NewReader(slateCSV))
		So(err, ShouldBeNil)
		So(res.Success, ShouldBeTrue)

		Convey("When paging the table by salary", func() {
			page, err := svc.Table(ctx, filter.TableQuery{SortKey: "salary", SortDir: filter.Desc, Page: 2})

			Convey("Then the configured page size applies", func() {
				So(err, ShouldBeNil)
				So(page.Total, ShouldEqual, 4)
				So(page.TotalPages, ShouldEqual, 2)
				So(page.Rows, ShouldHaveLength, 2)
				So(page.Rows[0].Name, ShouldEqual, "Travis Kelce")
				So(page.Teams, ShouldResemble, []string{"BUF", "KC"})
			})
		})

		Convey("When building the default chart", func() {
			c, err := svc.Chart(ctx, filter.DefaultChartFilters(), chart.DefaultAxes())

			Convey("Then every filtered player is plotted", func() {
				So(err, ShouldBeNil)
				So(c.Points, ShouldHaveLength, 4)
				So(c.YMid, ShouldEqual, 0.0)
				So(c.Points[0].Quadrant, ShouldEqual, chart.Best)
			})
		})

		Convey("When the chart selects one team", func() {
			f := filter.DefaultChartFilters().ToggleTeam("KC")
			c, err := svc.Chart(ctx, f, chart.DefaultAxes())

			Convey("Then only that team is plotted", func() {
				So(err, ShouldBeNil)
				So(c.Points, ShouldHaveLength, 2)
			})
		})

		Convey("When rendering a PNG", func() {
			var buf bytes.Buffer
			err := svc.RenderChart(ctx, filter.DefaultChartFilters(), chart.DefaultAxes(), &buf)

			Convey("Then an image is written", func() {
				So(err, ShouldBeNil)
				So(bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")), ShouldBeTrue)
			})
		})

		Convey("When asking for an unknown axis", func() {
			_, err := svc.Chart(ctx, filter.DefaultChartFilters(), chart.Axes{X: "ceiling", Y: chart.StatLeverage, Size: chart.StatSalary})

			Convey("Then the stat is rejected", func() {
				So(errors.Is(err, chart.ErrUnknownStat), ShouldBeTrue)
			})
		})

		Convey("When the service restarts on the same database", func() {
			svc.Stop()
			again, err := repository.NewSQLiteStore(ctx, path)
			So(err, ShouldBeNil)
			svc2 := service.New(service.WithStore(again))
			So(svc2.Start(ctx), ShouldBeNil)
			defer svc2.Stop()

			Convey("Then the slate is still there", func() {
				players, err := svc2.Players(ctx, model.RB)
				So(err, ShouldBeNil)
				So(players, ShouldHaveLength, 1)
				So(players[0].Name, ShouldEqual, "James Cook III")
				So(players[0].HeadshotURL, ShouldEqual, "/nfl-dfs/headshots/James_Cook.png")
			})
		})
	})
}
