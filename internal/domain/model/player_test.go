package model_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/dfsviz/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestGroup(t *testing.T) {
	convey.Convey("Given players across every category", t, func() {
		players := []model.Player{
			{Name: "Patrick Mahomes", Position: model.QB},
			{Name: "Christian McCaffrey", Position: model.RB},
			{Name: "Tyreek Hill", Position: model.WR},
			{Name: "Travis Kelce", Position: model.TE},
			{Name: "Chiefs", Position: model.DST},
			{Name: "Saquon Barkley", Position: model.RB},
			{Name: "Utility Guy", Position: model.All},
		}

		convey.Convey("When grouping", func() {
			c := model.Group(players)

			convey.Convey("Then All keeps every player in input order", func() {
				convey.So(c[model.All], convey.ShouldResemble, players)
				convey.So(c.Total(), convey.ShouldEqual, len(players))
			})

			convey.Convey("Then each known player lands in exactly one category", func() {
				seen := 0
				for _, pos := range model.Positions {
					for _, p := range c[pos] {
						convey.So(p.Position, convey.ShouldEqual, pos)
						seen++
					}
				}
				convey.So(seen, convey.ShouldEqual, len(players)-1)
				convey.So(c[model.RB], convey.ShouldHaveLength, 2)
				convey.So(c[model.RB][0].Name, convey.ShouldEqual, "Christian McCaffrey")
			})
		})

		convey.Convey("When grouping nothing", func() {
			c := model.Group(nil)

			convey.Convey("Then all six keys exist and are empty", func() {
				convey.So(c, convey.ShouldHaveLength, 6)
				for _, k := range model.Keys {
					v, ok := c[k]
					convey.So(ok, convey.ShouldBeTrue)
					convey.So(v, convey.ShouldBeEmpty)
				}
			})
		})
	})
}

func TestPlayerJSON(t *testing.T) {
	convey.Convey("Given a player with a defaulted field", t, func() {
		p := model.Player{Name: "A", ID: "1", Position: model.WR, Missing: []string{"ceiling"}}

		convey.Convey("Then the persisted keys use the slate column names", func() {
			raw, err := json.Marshal(p)
			convey.So(err, convey.ShouldBeNil)
			s := string(raw)
			convey.So(s, convey.ShouldContainSubstring, `"player_name":"A"`)
			convey.So(s, convey.ShouldContainSubstring, `"team_abbr":""`)
			convey.So(s, convey.ShouldContainSubstring, `"missing_fields":["ceiling"]`)
			convey.So(p.Defaulted("ceiling"), convey.ShouldBeTrue)
			convey.So(p.Defaulted("salary"), convey.ShouldBeFalse)
		})
	})

	convey.Convey("Given empty collections", t, func() {
		raw, err := json.Marshal(model.NewCollections())

		convey.Convey("Then they serialize as six empty arrays", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(raw), convey.ShouldEqual, `{"ALL":[],"DST":[],"QB":[],"RB":[],"TE":[],"WR":[]}`)
		})
	})
}
