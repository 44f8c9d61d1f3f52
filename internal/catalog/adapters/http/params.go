package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dejobratic/vestuario/internal/catalog/domain"
	"github.com/dejobratic/vestuario/internal/catalog/ports"
	"github.com/dejobratic/vestuario/internal/catalog/query"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// params reads optional query parameters. An absent or empty parameter
// yields nil; the first malformed one is kept in err.
type params struct {
	values url.Values
	err    error
}

func newParams(r *http.Request) *params {
	return &params{values: r.URL.Query()}
}

func (p *params) raw(name string) (string, bool) {
	v := p.values.Get(name)
	return v, v != ""
}

func (p *params) invalid(name string) {
	if p.err == nil {
		p.err = ports.InvalidArgument(fmt.Sprintf("Parâmetro %s inválido.", name))
	}
}

func (p *params) Text(name string) *string {
	v, ok := p.raw(name)
	if !ok {
		return nil
	}
	return &v
}

func (p *params) Int64(name string) *int64 {
	v, ok := p.raw(name)
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		p.invalid(name)
		return nil
	}
	return &n
}

func (p *params) Int(name string) *int {
	v, ok := p.raw(name)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.invalid(name)
		return nil
	}
	return &n
}

func (p *params) Decimal(name string) *decimal.Decimal {
	v, ok := p.raw(name)
	if !ok {
		return nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		p.invalid(name)
		return nil
	}
	return &d
}

func (p *params) Date(name string) *domain.Date {
	v, ok := p.raw(name)
	if !ok {
		return nil
	}
	d, err := domain.ParseDate(v)
	if err != nil {
		p.invalid(name)
		return nil
	}
	return &d
}

// Required reports a missing parameter as a validation error.
func (p *params) Required(name string) {
	if _, ok := p.raw(name); !ok && p.err == nil {
		p.err = ports.Validation(fmt.Sprintf("o parâmetro %s é obrigatório", name))
	}
}

func (p *params) Err() error {
	return p.err
}

// direction reads the ordenacao parameter; absent means ascending.
func (p *params) Direction() query.Direction {
	v, ok := p.raw("ordenacao")
	if !ok {
		return query.Asc
	}
	dir, err := query.ParseDirection(v)
	if err != nil && p.err == nil {
		p.err = ports.InvalidArgument(err.Error())
	}
	return dir
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, ports.InvalidArgument("ID inválido.")
	}
	return id, nil
}

func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return ports.Validation("JSON inválido.")
	}
	return nil
}
