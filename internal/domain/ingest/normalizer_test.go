package ingest_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/okian/dfsviz/internal/domain/imageref"
	"github.com/okian/dfsviz/internal/domain/ingest"
	"github.com/okian/dfsviz/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func newNormalizer() *ingest.Normalizer {
	fixed := time.Unix(0, 1700000000000000000)
	seq := 0
	return ingest.New(
		ingest.WithClock(func() time.Time { return fixed }),
		ingest.WithIDSuffix(func() string {
			seq++
			return string(rune('a' + seq - 1))
		}),
		ingest.WithResolver(imageref.New(imageref.WithCorrections(map[string]string{
			"Kyle Pitts Sr.|ATL": "Kyle Pitts",
		}))),
	)
}

func TestNormalize(t *testing.T) {
	ctx := context.Background()

	convey.Convey("Given a DraftKings style row", t, func() {
		n := newNormalizer()
		rows := []map[string]string{{
			"Name":       "Josh Allen",
			"Name + ID":  "Josh Allen (123)",
			"Position":   "QB",
			"TeamAbbrev": "BUF",
			"Salary":     "8,100",
			"Projection": "20",
			"Own%":       "25.3%",
			"Std Dev":    "7.5",
			"Ceiling":    "31.2",
			"Bust%":      "12",
			"Boom%":      "22.5",
			"Optimal%":   "18",
			"Leverage":   "-3.4",
		}}

		convey.Convey("When normalizing", func() {
			players := n.Normalize(ctx, rows)

			convey.Convey("Then every field resolves", func() {
				convey.So(players, convey.ShouldHaveLength, 1)
				p := players[0]
				convey.So(p.Name, convey.ShouldEqual, "Josh Allen")
				convey.So(p.ID, convey.ShouldEqual, "Josh Allen (123)")
				convey.So(p.Position, convey.ShouldEqual, model.QB)
				convey.So(p.Team, convey.ShouldEqual, "BUF")
				convey.So(p.Salary, convey.ShouldEqual, 8100.0)
				convey.So(p.Projection, convey.ShouldEqual, 20.0)
				convey.So(p.DKProjection, convey.ShouldEqual, 20.0)
				convey.So(p.ProjOwnership, convey.ShouldEqual, 25.3)
				convey.So(p.OwnershipPct, convey.ShouldEqual, 25.3)
				convey.So(p.StdDev, convey.ShouldEqual, 7.5)
				convey.So(p.Ceiling, convey.ShouldEqual, 31.2)
				convey.So(p.BustPct, convey.ShouldEqual, 12.0)
				convey.So(p.BoomPct, convey.ShouldEqual, 22.5)
				convey.So(p.OptimalPct, convey.ShouldEqual, 18.0)
				convey.So(p.Leverage, convey.ShouldEqual, -3.4)
				convey.So(p.Missing, convey.ShouldBeEmpty)
				convey.So(p.HeadshotURL, convey.ShouldEqual, "/nfl-dfs/headshots/Josh_Allen.png")
			})

			convey.Convey("Then points per dollar uses the coerced salary", func() {
				convey.So(players[0].PtsPerDollar, convey.ShouldAlmostEqual, 20/8.1, 1e-9)
			})
		})
	})

	convey.Convey("Given a zero salary", t, func() {
		players := newNormalizer().Normalize(ctx, []map[string]string{
			{"Name": "Cheap", "Salary": "0", "Projection": "15"},
			{"Name": "Negative", "Salary": "-500", "Projection": "15"},
		})

		convey.Convey("Then points per dollar is 0 regardless of projection", func() {
			convey.So(players[0].PtsPerDollar, convey.ShouldEqual, 0.0)
			convey.So(players[1].PtsPerDollar, convey.ShouldEqual, 0.0)
			convey.So(players[1].Salary, convey.ShouldEqual, -500.0)
		})
	})

	convey.Convey("Given rows without a name under every alias", t, func() {
		rows := []map[string]string{
			{"Name": "Keeper", "Position": "WR"},
			{"Name": "", "player_name": "", "Position": "WR"},
			{"Position": "RB", "Salary": "5000"},
			{"Name": "   ", "Position": "TE"},
		}
		c := model.Group(newNormalizer().Normalize(ctx, rows))

		convey.Convey("Then they are absent from every collection", func() {
			convey.So(c[model.All], convey.ShouldHaveLength, 1)
			convey.So(c[model.WR], convey.ShouldHaveLength, 1)
			convey.So(c[model.RB], convey.ShouldBeEmpty)
			convey.So(c[model.TE], convey.ShouldBeEmpty)
		})
	})

	convey.Convey("Given the alternate aliases only", t, func() {
		n := newNormalizer()
		primary := n.Normalize(ctx, []map[string]string{{
			"Name": "Tee Higgins", "Name + ID": "x1", "Position": "WR", "Team": "CIN",
			"Salary": "6000", "Projection": "14", "Own%": "9", "Leverage": "2",
		}})[0]
		alternate := n.Normalize(ctx, []map[string]string{{
			"player_name": "Tee Higgins", "player_id": "x1", "position": "WR", "team_abbr": "CIN",
			"salary": "6000", "dk_projection": "14", "proj_ownership": "9", "leverage": "2",
		}})[0]

		convey.Convey("Then both resolve to the same record", func() {
			convey.So(alternate, convey.ShouldResemble, primary)
		})
	})

	convey.Convey("Given both the primary and an alternate alias", t, func() {
		players := newNormalizer().Normalize(ctx, []map[string]string{{
			"Name": "Primary", "player_name": "Alternate",
			"Projection": "", "DK Projection": "11", "projection": "99",
		}})

		convey.Convey("Then the first non-empty alias wins", func() {
			convey.So(players[0].Name, convey.ShouldEqual, "Primary")
			convey.So(players[0].Projection, convey.ShouldEqual, 11.0)
		})
	})

	convey.Convey("Given unparseable and absent numbers", t, func() {
		players := newNormalizer().Normalize(ctx, []map[string]string{{
			"Name": "Messy", "Salary": "N/A", "Projection": "abc", "Ceiling": "0",
		}})
		p := players[0]

		convey.Convey("Then they default to 0 and are marked missing", func() {
			convey.So(p.Salary, convey.ShouldEqual, 0.0)
			convey.So(p.Projection, convey.ShouldEqual, 0.0)
			convey.So(p.Defaulted(ingest.FieldSalary), convey.ShouldBeTrue)
			convey.So(p.Defaulted(ingest.FieldProjection), convey.ShouldBeTrue)
			convey.So(p.Defaulted(ingest.FieldLeverage), convey.ShouldBeTrue)
		})

		convey.Convey("Then a real zero is not marked missing", func() {
			convey.So(p.Ceiling, convey.ShouldEqual, 0.0)
			convey.So(p.Defaulted(ingest.FieldCeiling), convey.ShouldBeFalse)
		})
	})

	convey.Convey("Given rows without an id", t, func() {
		players := newNormalizer().Normalize(ctx, []map[string]string{
			{"Name": "Same"},
			{"Name": "Same"},
		})

		convey.Convey("Then ids are synthesized from name, timestamp and suffix", func() {
			convey.So(players[0].ID, convey.ShouldEqual, "Same_1700000000000000000_a")
			convey.So(players[1].ID, convey.ShouldEqual, "Same_1700000000000000000_b")
		})
	})

	convey.Convey("Given the default id source", t, func() {
		players := ingest.New().Normalize(ctx, []map[string]string{{"Name": "A"}, {"Name": "A"}})

		convey.Convey("Then synthesized ids are unique within the batch", func() {
			convey.So(players[0].ID, convey.ShouldNotEqual, players[1].ID)
			convey.So(players[0].ID, convey.ShouldStartWith, "A_")
		})
	})

	convey.Convey("Given position and image edge cases", t, func() {
		players := newNormalizer().Normalize(ctx, []map[string]string{
			{"Name": "Chiefs", "Position": "DST", "Team": "kc"},
			{"Name": "Kyle Pitts Sr.", "Position": "TE", "Team": "ATL"},
			{"Name": "No Position"},
			{"Name": "Lower", "Position": " wr "},
			{"Name": "Flex", "Position": "FLEX"},
		})

		convey.Convey("Then defenses get the uppercased team logo", func() {
			convey.So(players[0].HeadshotURL, convey.ShouldEqual, "https://a.espncdn.com/i/teamlogos/nfl/500/KC.png")
		})

		convey.Convey("Then corrected names build the headshot path", func() {
			convey.So(players[1].HeadshotURL, convey.ShouldEqual, "/nfl-dfs/headshots/Kyle_Pitts.png")
		})

		convey.Convey("Then positions default to ALL and are normalized", func() {
			convey.So(players[2].Position, convey.ShouldEqual, model.All)
			convey.So(players[3].Position, convey.ShouldEqual, model.WR)
		})

		convey.Convey("Then unknown positions stay only in ALL", func() {
			c := model.Group(players)
			convey.So(c[model.All], convey.ShouldHaveLength, 5)
			total := 0
			for _, pos := range model.Positions {
				total += len(c[pos])
			}
			convey.So(total, convey.ShouldEqual, 3)
		})
	})
}

func TestResult(t *testing.T) {
	convey.Convey("Given parsed players and warnings", t, func() {
		players := []model.Player{{Name: "A", Position: model.QB}, {Name: "B", Position: model.DST}}
		res := ingest.Succeeded(players, []string{"row 3: wrong number of fields"})

		convey.Convey("Then the result is grouped and successful", func() {
			convey.So(res.Success, convey.ShouldBeTrue)
			convey.So(res.Errors, convey.ShouldHaveLength, 1)
			convey.So(res.Collections[model.QB], convey.ShouldHaveLength, 1)
			convey.So(res.Collections[model.All], convey.ShouldHaveLength, 2)
		})
	})

	convey.Convey("Given an empty slate", t, func() {
		res := ingest.Succeeded(nil, nil)

		convey.Convey("Then it is still a success", func() {
			convey.So(res.Success, convey.ShouldBeTrue)
			convey.So(res.Players, convey.ShouldBeEmpty)
			convey.So(res.Errors, convey.ShouldNotBeNil)
		})
	})

	convey.Convey("Given a structural failure", t, func() {
		res := ingest.Failed(errors.New("unreadable input"))

		convey.Convey("Then data is empty and the message is reported", func() {
			convey.So(res.Success, convey.ShouldBeFalse)
			convey.So(res.Players, convey.ShouldBeEmpty)
			convey.So(res.Errors, convey.ShouldResemble, []string{"unreadable input"})
			convey.So(res.Collections, convey.ShouldHaveLength, 6)
		})
	})
}

func TestPtsPerDollar(t *testing.T) {
	convey.Convey("PtsPerDollar divides by thousands of salary", t, func() {
		convey.So(ingest.PtsPerDollar(20, 8100), convey.ShouldAlmostEqual, 2.469, 0.001)
		convey.So(ingest.PtsPerDollar(20, 0), convey.ShouldEqual, 0.0)
	})

	convey.Convey("PtsPerDollar is 0 when the quotient overflows", t, func() {
		convey.So(ingest.PtsPerDollar(20, 1e-320), convey.ShouldEqual, 0.0)
		convey.So(ingest.PtsPerDollar(1e308, 1), convey.ShouldEqual, 0.0)
		convey.So(ingest.PtsPerDollar(-1e308, 1), convey.ShouldEqual, 0.0)
	})
}

func TestNormalizeOverflow(t *testing.T) {
	convey.Convey("Given a salary so small that pts_per_dollar overflows", t, func() {
		players := ingest.New().Normalize(context.Background(), []map[string]string{
			{"Name": "A", "Position": "QB", "Salary": "1e-320", "Projection": "20"},
		})

		convey.Convey("Then pts_per_dollar defaults to 0 and is reported missing", func() {
			convey.So(players, convey.ShouldHaveLength, 1)
			convey.So(players[0].PtsPerDollar, convey.ShouldEqual, 0.0)
			convey.So(players[0].Missing, convey.ShouldContain, ingest.FieldPtsPerDollar)
			convey.So(players[0].Missing, convey.ShouldNotContain, ingest.FieldSalary)
		})

		convey.Convey("Then the player still encodes as JSON", func() {
			_, err := json.Marshal(players)
			convey.So(err, convey.ShouldBeNil)
		})
	})
}

func TestNormalizeDefaultCorrections(t *testing.T) {
	convey.Convey("Given a normalizer built without options", t, func() {
		players := ingest.New().Normalize(context.Background(), []map[string]string{
			{"Name": "Kyle Pitts Sr.", "Team": "ATL", "Position": "TE"},
		})

		convey.Convey("Then the built-in name corrections shape the headshot", func() {
			convey.So(players, convey.ShouldHaveLength, 1)
			convey.So(players[0].Name, convey.ShouldEqual, "Kyle Pitts Sr.")
			convey.So(players[0].HeadshotURL, convey.ShouldEqual, "/nfl-dfs/headshots/Kyle_Pitts.png")
		})
	})
}
