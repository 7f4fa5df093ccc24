// Package imageref derives display image URLs for slate players.
package imageref

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/okian/dfsviz/internal/domain/model"
)

// Defaults used when no option overrides them.
const (
	DefaultHeadshotBase = "/nfl-dfs/headshots"
	DefaultLogoTemplate = "https://a.espncdn.com/i/teamlogos/nfl/500/%s.png"
)

var (
	nonWord    = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Correction maps a roster name on a team to the name the headshot library uses.
type Correction struct {
	Name    string
	Team    string
	Display string
}

// DefaultCorrections strips roster suffixes the headshot library does not carry.
func DefaultCorrections() []Correction {
	return []Correction{
		{Name: "Kyle Pitts Sr.", Team: "ATL", Display: "Kyle Pitts"},
		{Name: "Aaron Jones Sr.", Team: "MIN", Display: "Aaron Jones"},
		{Name: "James Cook III", Team: "BUF", Display: "James Cook"},
		{Name: "Ray-Ray McCloud III", Team: "NYG", Display: "Ray-Ray McCloud"},
	}
}

// CorrectionKey is the correction table key for name on team.
func CorrectionKey(name, team string) string { return name + "|" + team }

// CorrectionTable keys corrections by CorrectionKey. Later entries win.
func CorrectionTable(cs []Correction) map[string]string {
	out := make(map[string]string, len(cs))
	for _, c := range cs {
		out[CorrectionKey(c.Name, c.Team)] = c.Display
	}
	return out
}

// Option applies a configuration option to the Resolver.
type Option func(*Resolver)

// WithHeadshotBase sets the path prefix for headshot images.
func WithHeadshotBase(base string) Option {
	return func(r *Resolver) {
		if base != "" {
			r.headshotBase = strings.TrimRight(base, "/")
		}
	}
}

// WithLogoTemplate sets the fmt template for team logos; it must hold one %s.
func WithLogoTemplate(tmpl string) Option {
	return func(r *Resolver) {
		if strings.Contains(tmpl, "%s") {
			r.logoTemplate = tmpl
		}
	}
}

// WithCorrections replaces the name-correction table keyed by "name|team".
// An empty table disables corrections.
func WithCorrections(table map[string]string) Option {
	return func(r *Resolver) {
		r.corrections = make(map[string]string, len(table))
		for k, v := range table {
			r.corrections[k] = v
		}
	}
}

// Resolver maps players to headshot or team-logo URLs. Safe for concurrent use after construction.
type Resolver struct {
	headshotBase string
	logoTemplate string
	corrections  map[string]string
}

// New creates a Resolver with configuration options. Without WithCorrections it
// applies DefaultCorrections.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		headshotBase: DefaultHeadshotBase,
		logoTemplate: DefaultLogoTemplate,
		corrections:  CorrectionTable(DefaultCorrections()),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// URL returns the image reference for p. No existence check is made.
func (r *Resolver) URL(p model.Player) string {
	if p.Position == model.DST {
		return r.TeamLogoURL(p.Team)
	}
	return r.HeadshotURL(p.Name, p.Team)
}

// HeadshotURL builds the local headshot path for name on team.
func (r *Resolver) HeadshotURL(name, team string) string {
	return r.headshotBase + "/" + CleanName(r.Correct(name, team)) + ".png"
}

// TeamLogoURL builds the CDN logo URL keyed by the uppercased team.
func (r *Resolver) TeamLogoURL(team string) string {
	return fmt.Sprintf(r.logoTemplate, strings.ToUpper(team))
}

// FallbackURL is the logo shown when a headshot fails to load. It keeps the team's
// original case, which the CDN also serves.
func (r *Resolver) FallbackURL(team string) string {
	return fmt.Sprintf(r.logoTemplate, strings.ToLower(team))
}

// Correct applies the correction table, returning name unchanged when no entry matches.
func (r *Resolver) Correct(name, team string) string {
	if fixed, ok := r.corrections[CorrectionKey(name, team)]; ok {
		return fixed
	}
	return name
}

// CleanName drops everything but letters, digits and whitespace, then joins words with '_'.
func CleanName(name string) string {
	s := nonWord.ReplaceAllString(name, "")
	return whitespace.ReplaceAllString(s, "_")
}
