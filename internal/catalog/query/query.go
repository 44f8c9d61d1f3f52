// Package query builds storage-independent query plans: filters composed
// from optional parameters, a single-field sort and an offset page.
package query

import (
	"github.com/dejobratic/vestuario/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

// Op is a predicate operator.
type Op string

const (
	OpContains Op = "contains"
	OpEquals   Op = "eq"
	OpGTE      Op = "gte"
	OpLTE      Op = "lte"
	OpIn       Op = "in"
)

// Predicate restricts one column.
type Predicate struct {
	Column string
	Op     Op
	Value  any
}

// Filter is a conjunction of predicates. An empty filter matches every row.
type Filter struct {
	Predicates []Predicate
	// Unsatisfiable is set when the predicates contradict each other
	// (a range whose minimum exceeds its maximum). Stores answer it with
	// an empty result instead of an error.
	Unsatisfiable bool
}

// IsEmpty reports whether the filter places no restriction.
func (f Filter) IsEmpty() bool {
	return len(f.Predicates) == 0 && !f.Unsatisfiable
}

// Where appends a predicate, returning a new filter.
func (f Filter) Where(p Predicate) Filter {
	preds := make([]Predicate, 0, len(f.Predicates)+1)
	preds = append(preds, f.Predicates...)
	return Filter{Predicates: append(preds, p), Unsatisfiable: f.Unsatisfiable}
}

// Sort orders results by one column.
type Sort struct {
	Column    string
	Direction Direction
}

// Page selects a window of results.
type Page struct {
	Limit  int
	Offset int
}

// Query is the plan handed to a repository.
type Query struct {
	Filter Filter
	Sort   *Sort
	Page   *Page
}

// Compare orders two predicate values of the same type. ok is false when
// the values are not comparable.
func Compare(a, b any) (result int, ok bool) {
	switch x := a.(type) {
	case int64:
		y, ok := b.(int64)
		if !ok {
			return 0, false
		}
		switch {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		}
		return 0, true
	case string:
		y, ok := b.(string)
		if !ok {
			return 0, false
		}
		switch {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		}
		return 0, true
	case decimal.Decimal:
		y, ok := b.(decimal.Decimal)
		if !ok {
			return 0, false
		}
		return x.Cmp(y), true
	case domain.Date:
		y, ok := b.(domain.Date)
		if !ok {
			return 0, false
		}
		return x.Compare(y), true
	}
	return 0, false
}
