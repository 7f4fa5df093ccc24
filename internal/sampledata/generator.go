package sampledata

import (
	"context"
	"math"
	"math/rand/v2"
	"slices"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/okian/dfsviz/internal/domain/model"
	"github.com/okian/dfsviz/pkg/logger"
)

// Column indexes into a generated record.
const (
	colName = iota
	colID
	colPosition
	colTeam
	colSalary
	colProjection
	colOwnership
	colStdDev
	colCeiling
	colBust
	colBoom
	colOptimal
	colLeverage
	numColumns
)

// firstNumeric is the first column that may be blanked.
const firstNumeric = colSalary

var headers = map[Style][]string{
	StyleDK: {
		"Name", "Name + ID", "Position", "TeamAbbrev", "Salary", "Projection", "Own%",
		"Std Dev", "Ceiling", "Bust%", "Boom%", "Optimal%", "Leverage",
	},
	StyleExport: {
		"player_name", "player_id", "position", "team_abbr", "salary", "dk_projection", "proj_ownership",
		"std_dev", "ceiling", "bust_pct", "boom_pct", "optimal_pct", "leverage",
	},
}

// Teams maps abbreviations to the name used for the team's defense.
var Teams = map[string]string{
	"ARI": "Cardinals", "ATL": "Falcons", "BAL": "Ravens", "BUF": "Bills",
	"CAR": "Panthers", "CHI": "Bears", "CIN": "Bengals", "CLE": "Browns",
	"DAL": "Cowboys", "DEN": "Broncos", "DET": "Lions", "GB": "Packers",
	"HOU": "Texans", "IND": "Colts", "JAX": "Jaguars", "KC": "Chiefs",
	"LAC": "Chargers", "LAR": "Rams", "LV": "Raiders", "MIA": "Dolphins",
	"MIN": "Vikings", "NE": "Patriots", "NO": "Saints", "NYG": "Giants",
	"NYJ": "Jets", "PHI": "Eagles", "PIT": "Steelers", "SEA": "Seahawks",
	"SF": "49ers", "TB": "Buccaneers", "TEN": "Titans", "WAS": "Commanders",
}

var (
	firstNames = []string{
		"Josh", "Jalen", "Patrick", "Lamar", "Joe", "Justin", "Christian", "Bijan",
		"Saquon", "Derrick", "CeeDee", "Tyreek", "Amon-Ra", "Ja'Marr", "Travis", "Mark",
		"Sam", "George", "Kyle", "Puka", "Nico", "Drake", "Brock", "Jahmyr",
	}
	lastNames = []string{
		"Allen", "Hurts", "Mahomes", "Jackson", "Burrow", "Jefferson", "McCaffrey", "Robinson",
		"Barkley", "Henry", "Lamb", "Hill", "St. Brown", "Chase", "Kelce", "Andrews",
		"LaPorta", "Kittle", "Pitts", "Nacua", "Collins", "London", "Purdy", "Gibbs",
	}
	suffixes = []string{"", "", "", "", "", "", " Jr.", " Sr.", " III"}
)

type mixEntry struct {
	pos    model.Position
	weight int
	salary [2]float64
	ppk    [2]float64 // projected points per 1000 salary
}

// positionMix is the share of each position in a slate.
var positionMix = []mixEntry{
	{model.QB, 2, [2]float64{4800, 8600}, [2]float64{2.4, 3.2}},
	{model.RB, 4, [2]float64{4000, 9200}, [2]float64{1.9, 2.8}},
	{model.WR, 6, [2]float64{3000, 9000}, [2]float64{1.8, 2.7}},
	{model.TE, 2, [2]float64{2500, 7500}, [2]float64{1.6, 2.5}},
	{model.DST, 1, [2]float64{2000, 4000}, [2]float64{1.8, 2.6}},
}

// Slate is a generated upload: a header row plus string records.
type Slate struct {
	Headers []string
	Rows    [][]string
}

// Counts returns the number of rows per position, plus ALL.
func (s Slate) Counts() map[model.Position]int {
	out := map[model.Position]int{model.All: len(s.Rows)}
	for _, r := range s.Rows {
		out[model.Position(r[colPosition])]++
	}
	return out
}

// Generate builds a slate. The same config always yields the same slate.
func Generate(ctx context.Context, cfg Config) (Slate, error) {
	if err := cfg.Validate(); err != nil {
		return Slate{}, err
	}
	g := &generator{
		cfg:  cfg,
		rnd:  rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		seen: map[string]bool{},
	}
	g.teams = make([]string, 0, len(Teams))
	for abbr := range Teams {
		g.teams = append(g.teams, abbr)
	}
	slices.Sort(g.teams)

	s := Slate{Headers: headers[cfg.Style], Rows: make([][]string, 0, cfg.Players)}
	for i := 0; i < cfg.Players; i++ {
		s.Rows = append(s.Rows, g.row(i))
	}
	logger.Get().Debug(ctx, "generated sample slate",
		logger.Int("players", len(s.Rows)),
		logger.String("style", string(cfg.Style)),
	)
	return s, nil
}

type generator struct {
	cfg   Config
	rnd   *rand.Rand
	teams []string
	seen  map[string]bool
}

func (g *generator) row(i int) []string {
	mix := g.pickPosition()
	team := g.teams[g.rnd.IntN(len(g.teams))]

	name := Teams[team]
	if mix.pos != model.DST {
		name = g.name()
	}

	salary := math.Round(g.between(mix.salary[0], mix.salary[1])/100) * 100
	projection := round1(salary / 1000 * g.between(mix.ppk[0], mix.ppk[1]))
	ownership := round1(g.between(0.5, 35))
	stdDev := round1(projection * g.between(0.25, 0.5))
	optimal := round1(g.between(0, 30))

	rec := make([]string, numColumns)
	rec[colName] = name
	rec[colID] = g.id(i, name)
	rec[colPosition] = string(mix.pos)
	rec[colTeam] = team
	rec[colSalary] = humanize.Comma(int64(salary))
	rec[colProjection] = format(projection)
	rec[colOwnership] = format(ownership) + "%"
	rec[colStdDev] = format(stdDev)
	rec[colCeiling] = format(round1(projection + 2*stdDev))
	rec[colBust] = format(round1(g.between(5, 45))) + "%"
	rec[colBoom] = format(round1(g.between(2, 40))) + "%"
	rec[colOptimal] = format(optimal) + "%"
	rec[colLeverage] = format(round1(optimal - ownership))

	for c := firstNumeric; c < numColumns; c++ {
		if g.rnd.Float64() < g.cfg.MissingRate {
			rec[c] = ""
		}
	}
	return rec
}

func (g *generator) pickPosition() mixEntry {
	total := 0
	for _, m := range positionMix {
		total += m.weight
	}
	n := g.rnd.IntN(total)
	for _, m := range positionMix {
		if n < m.weight {
			return m
		}
		n -= m.weight
	}
	return positionMix[len(positionMix)-1]
}

// name returns a player name not used before in this slate.
func (g *generator) name() string {
	for {
		n := firstNames[g.rnd.IntN(len(firstNames))] + " " +
			lastNames[g.rnd.IntN(len(lastNames))] +
			suffixes[g.rnd.IntN(len(suffixes))]
		if !g.seen[n] {
			g.seen[n] = true
			return n
		}
		if len(g.seen) >= len(firstNames)*len(lastNames) {
			// out of combinations; numbered names keep rows distinct
			n += " " + strconv.Itoa(len(g.seen))
			g.seen[n] = true
			return n
		}
	}
}

// id builds the id cell in the style's format.
func (g *generator) id(i int, name string) string {
	if g.cfg.Style == StyleExport {
		seed := strconv.FormatUint(g.cfg.Seed, 10) + "/" + strconv.Itoa(i)
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed)).String()
	}
	return name + " (" + strconv.Itoa(30000000+i) + ")"
}

func (g *generator) between(lo, hi float64) float64 {
	return lo + g.rnd.Float64()*(hi-lo)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
