// Package ingest turns tokenized slate rows into normalized player records.
//
// Every field is resolved through an ordered alias group. Numeric cells that are
// absent or unparseable default to 0 and are listed in Player.Missing. Rows without
// a name are dropped.
package ingest

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/dfsviz/internal/domain/imageref"
	"github.com/okian/dfsviz/internal/domain/model"
	"github.com/okian/dfsviz/pkg/logger"
	"github.com/okian/dfsviz/pkg/metrics"
)

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithClock sets the time source used for synthesized ids.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		if now != nil {
			n.now = now
		}
	}
}

// WithIDSuffix sets the random component of synthesized ids.
func WithIDSuffix(suffix func() string) Option {
	return func(n *Normalizer) {
		if suffix != nil {
			n.suffix = suffix
		}
	}
}

// WithResolver sets the image resolver.
func WithResolver(r *imageref.Resolver) Option {
	return func(n *Normalizer) {
		if r != nil {
			n.images = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(n *Normalizer) {
		if l != nil {
			n.log = l
		}
	}
}

// Normalizer maps raw rows to players. It holds no per-call state.
type Normalizer struct {
	now    func() time.Time
	suffix func() string
	images *imageref.Resolver
	log    logger.Logger
}

// New creates a Normalizer with configuration options.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		now:    time.Now,
		suffix: uuid.NewString,
		images: imageref.New(),
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize maps rows to players in input order, dropping rows without a name.
func (n *Normalizer) Normalize(ctx context.Context, rows []map[string]string) []model.Player {
	start := time.Now()
	players := make([]model.Player, 0, len(rows))
	for _, row := range rows {
		p, ok := n.player(row)
		if !ok {
			continue
		}
		players = append(players, p)
		metrics.RecordPlayerIngested(string(p.Position))
		for _, f := range p.Missing {
			metrics.RecordDefaultedField(f)
		}
	}

	dropped := len(rows) - len(players)
	metrics.RecordRows(len(rows), dropped)
	metrics.RecordIngestLatency(metrics.Millis(time.Since(start)))
	n.log.Debug(ctx, "rows normalized",
		logger.Int("rows", len(rows)),
		logger.Int("players", len(players)),
		logger.Int("dropped", dropped),
	)
	return players
}

func (n *Normalizer) player(row map[string]string) (model.Player, bool) {
	name, _ := lookup(row, NameAliases)
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Player{}, false
	}

	var missing []string
	num := func(field string, aliases []string, parse func(string) (float64, bool)) float64 {
		raw, ok := lookup(row, aliases)
		if ok {
			if v, ok := parse(raw); ok {
				return v
			}
		}
		missing = append(missing, field)
		return 0
	}

	salary := num(FieldSalary, SalaryAliases, salaryValue)
	projection := num(FieldProjection, ProjectionAliases, parseLeadingFloat)
	ownership := num(FieldOwnership, OwnershipAliases, parseLeadingFloat)
	ppd, ok := ptsPerDollar(projection, salary)
	if !ok {
		missing = append(missing, FieldPtsPerDollar)
	}

	p := model.Player{
		Name:          name,
		ID:            n.identity(row, name),
		Position:      position(row),
		Team:          text(row, TeamAliases),
		Salary:        salary,
		DKProjection:  projection,
		Projection:    projection,
		ProjOwnership: ownership,
		OwnershipPct:  ownership,
		PtsPerDollar:  ppd,
		StdDev:        num(FieldStdDev, StdDevAliases, parseLeadingFloat),
		Ceiling:       num(FieldCeiling, CeilingAliases, parseLeadingFloat),
		BustPct:       num(FieldBust, BustAliases, parseLeadingFloat),
		BoomPct:       num(FieldBoom, BoomAliases, parseLeadingFloat),
		OptimalPct:    num(FieldOptimal, OptimalAliases, parseLeadingFloat),
		Leverage:      num(FieldLeverage, LeverageAliases, parseLeadingFloat),
	}
	p.Missing = missing
	p.HeadshotURL = n.images.URL(p)
	return p, true
}

// identity prefers the supplied id, otherwise name_<unix nanos>_<suffix>.
// Synthesized ids are unique within a batch but differ across re-imports.
func (n *Normalizer) identity(row map[string]string, name string) string {
	if id := text(row, IDAliases); id != "" {
		return id
	}
	return name + "_" + strconv.FormatInt(n.now().UnixNano(), 10) + "_" + n.suffix()
}

func position(row map[string]string) model.Position {
	p := strings.ToUpper(text(row, PositionAliases))
	if p == "" {
		return model.All
	}
	return model.Position(p)
}

func text(row map[string]string, aliases []string) string {
	v, _ := lookup(row, aliases)
	return strings.TrimSpace(v)
}
