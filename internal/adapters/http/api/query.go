package api

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/okian/dfsviz/internal/domain/chart"
	"github.com/okian/dfsviz/internal/domain/filter"
	"github.com/okian/dfsviz/internal/domain/model"
)

// binder validates decoded query parameters against struct tags.
type binder struct {
	v *validator.Validate
}

func newBinder() *binder {
	v := validator.New()
	_ = v.RegisterValidation("stat", isStat)
	_ = v.RegisterValidation("position", isPosition)

	// Report query names in error messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("query")
	})
	return &binder{v: v}
}

func isStat(fl validator.FieldLevel) bool {
	_, err := chart.ParseStat(fl.Field().String())
	return err == nil
}

func isPosition(fl validator.FieldLevel) bool {
	p := model.Position(strings.ToUpper(fl.Field().String()))
	return p == model.All || p.Known()
}

// validate returns an ErrBadRequest describing the first failing field.
func (b *binder) validate(v any) error {
	err := b.v.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	fe := verrs[0]
	if fe.Param() != "" {
		return fmt.Errorf("%w: %s must satisfy %s=%s", ErrBadRequest, fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Errorf("%w: %s is not a valid %s", ErrBadRequest, fe.Field(), fe.Tag())
}

type playersParams struct {
	Position string `query:"position" validate:"omitempty,position"`
}

type tableParams struct {
	Search    string   `query:"search" validate:"max=100"`
	Positions []string `query:"position" validate:"dive,position"`
	Teams     []string `query:"team" validate:"dive,max=8"`
	Sort      string   `query:"sort" validate:"max=32"`
	Dir       string   `query:"dir" validate:"omitempty,oneof=asc desc"`
	Page      int      `query:"page" validate:"gte=0"`
	PageSize  int      `query:"page_size" validate:"gte=0"`
}

type chartParams struct {
	X        string   `query:"x" validate:"omitempty,stat"`
	Y        string   `query:"y" validate:"omitempty,stat"`
	Size     string   `query:"size" validate:"omitempty,stat"`
	Position string   `query:"position" validate:"omitempty,position"`
	Teams    []string `query:"team" validate:"dive,max=8"`
}

// chartRanges maps query prefixes to the chart filter range they set.
var chartRanges = []struct {
	prefix string
	pick   func(*filter.ChartFilters) *filter.Range
}{
	{"own", func(f *filter.ChartFilters) *filter.Range { return &f.Ownership }},
	{"proj", func(f *filter.ChartFilters) *filter.Range { return &f.Projection }},
	{"salary", func(f *filter.ChartFilters) *filter.Range { return &f.Salary }},
	{"lev", func(f *filter.ChartFilters) *filter.Range { return &f.Leverage }},
}

func (b *binder) players(q url.Values) (model.Position, error) {
	p := playersParams{Position: q.Get("position")}
	if err := b.validate(p); err != nil {
		return "", err
	}
	return model.Position(strings.ToUpper(p.Position)), nil
}

func (b *binder) table(q url.Values, maxPageSize int) (filter.TableQuery, error) {
	var p tableParams
	var err error
	p.Search = q.Get("search")
	p.Positions = list(q, "position")
	p.Teams = list(q, "team")
	p.Sort = q.Get("sort")
	p.Dir = strings.ToLower(q.Get("dir"))
	if p.Page, err = intParam(q, "page"); err != nil {
		return filter.TableQuery{}, err
	}
	if p.PageSize, err = intParam(q, "page_size"); err != nil {
		return filter.TableQuery{}, err
	}
	if err := b.validate(p); err != nil {
		return filter.TableQuery{}, err
	}
	if p.PageSize > maxPageSize {
		return filter.TableQuery{}, fmt.Errorf("%w: page_size must be at most %d", ErrBadRequest, maxPageSize)
	}

	tq := filter.TableQuery{
		Search:   p.Search,
		Teams:    p.Teams,
		SortKey:  p.Sort,
		SortDir:  filter.Direction(p.Dir),
		Page:     p.Page,
		PageSize: p.PageSize,
	}
	for _, pos := range p.Positions {
		tq.Positions = append(tq.Positions, model.Position(strings.ToUpper(pos)))
	}
	if tq.Bounds, err = bounds(q); err != nil {
		return filter.TableQuery{}, err
	}
	return tq, nil
}

// bounds reads min.<column> and max.<column> parameters.
func bounds(q url.Values) (map[string]filter.Bound, error) {
	var out map[string]filter.Bound
	for key := range q {
		end, col, ok := strings.Cut(key, ".")
		if !ok || (end != "min" && end != "max") {
			continue
		}
		v, err := floatParam(q, key)
		if err != nil {
			return nil, err
		}
		if out == nil {
			out = map[string]filter.Bound{}
		}
		b := out[col]
		if end == "min" {
			b.Min = v
		} else {
			b.Max = v
		}
		out[col] = b
	}
	return out, nil
}

func (b *binder) chart(q url.Values) (filter.ChartFilters, chart.Axes, error) {
	p := chartParams{
		X:        q.Get("x"),
		Y:        q.Get("y"),
		Size:     q.Get("size"),
		Position: q.Get("position"),
		Teams:    list(q, "team"),
	}
	if err := b.validate(p); err != nil {
		return filter.ChartFilters{}, chart.Axes{}, err
	}

	axes := chart.DefaultAxes()
	if p.X != "" {
		axes.X = chart.Stat(p.X)
	}
	if p.Y != "" {
		axes.Y = chart.Stat(p.Y)
	}
	if p.Size != "" {
		axes.Size = chart.Stat(p.Size)
	}

	f := filter.DefaultChartFilters()
	if p.Position != "" {
		f.Position = model.Position(strings.ToUpper(p.Position))
	}
	if len(p.Teams) > 0 {
		f.Teams = p.Teams
	}
	for _, cr := range chartRanges {
		r := cr.pick(&f)
		lo, err := floatParam(q, cr.prefix+"_min")
		if err != nil {
			return filter.ChartFilters{}, chart.Axes{}, err
		}
		hi, err := floatParam(q, cr.prefix+"_max")
		if err != nil {
			return filter.ChartFilters{}, chart.Axes{}, err
		}
		if lo != nil {
			r.Min = *lo
		}
		if hi != nil {
			r.Max = *hi
		}
		if r.Min > r.Max {
			return filter.ChartFilters{}, chart.Axes{}, fmt.Errorf("%w: %s_min exceeds %s_max", ErrBadRequest, cr.prefix, cr.prefix)
		}
	}
	return f, axes, nil
}

// list accepts repeated and comma-separated values.
func list(q url.Values, key string) []string {
	var out []string
	for _, raw := range q[key] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func intParam(q url.Values, key string) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrBadRequest, key)
	}
	return n, nil
}

func floatParam(q url.Values, key string) (*float64, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", ErrBadRequest, key)
	}
	return &v, nil
}
