package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dejobratic/vestuario/internal/catalog/domain"
	"github.com/dejobratic/vestuario/internal/catalog/ports"
	"github.com/dejobratic/vestuario/internal/catalog/query"
)

// table is what the store needs from a repository to enforce references.
type table interface {
	exists(id int64) bool
	references(column string, id int64) bool
}

// Repository keeps one entity table in memory. All repositories of a Store
// share its lock, so reference checks see a consistent snapshot.
type Repository[T any] struct {
	store  *Store
	schema domain.Schema[T]
	rows   map[int64]T
	nextID int64
}

func newRepository[T any](store *Store, schema domain.Schema[T]) *Repository[T] {
	r := &Repository[T]{store: store, schema: schema, rows: make(map[int64]T)}
	store.tables[schema.Table] = r
	return r
}

// Create assigns the next id and stores a copy of entity.
func (r *Repository[T]) Create(_ context.Context, entity T) (*T, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.checkParents(&entity); err != nil {
		return nil, err
	}

	r.nextID++
	*r.schema.Key(&entity) = r.nextID
	r.rows[r.nextID] = entity

	created := entity
	return &created, nil
}

func (r *Repository[T]) GetByID(_ context.Context, id int64) (*T, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	entity, ok := r.rows[id]
	if !ok {
		return nil, ports.NotFound(r.schema.NotFound)
	}
	return &entity, nil
}

// List evaluates the filter, orders by the sort column (then id) and pages the result.
func (r *Repository[T]) List(_ context.Context, q query.Query) ([]T, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result, err := r.matching(q.Filter)
	if err != nil {
		return nil, err
	}

	if err := r.sort(result, q.Sort); err != nil {
		return nil, err
	}

	if q.Page == nil {
		return result, nil
	}

	start := min(max(q.Page.Offset, 0), len(result))
	end := min(start+q.Page.Limit, len(result))

	page := make([]T, end-start)
	copy(page, result[start:end])
	return page, nil
}

func (r *Repository[T]) Count(_ context.Context, filter query.Filter) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result, err := r.matching(filter)
	if err != nil {
		return 0, err
	}
	return int64(len(result)), nil
}

func (r *Repository[T]) Update(_ context.Context, entity T) (*T, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	id := *r.schema.Key(&entity)
	if _, ok := r.rows[id]; !ok {
		return nil, ports.NotFound(r.schema.NotFound)
	}
	if err := r.checkParents(&entity); err != nil {
		return nil, err
	}

	r.rows[id] = entity
	updated := entity
	return &updated, nil
}

// Delete refuses to remove a row that child tables still reference.
func (r *Repository[T]) Delete(_ context.Context, id int64) (*T, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	entity, ok := r.rows[id]
	if !ok {
		return nil, ports.NotFound(r.schema.NotFound)
	}

	for _, child := range r.schema.Children {
		if t, ok := r.store.tables[child.Table]; ok && t.references(child.Column, id) {
			return nil, ports.StillReferenced(child.Table)
		}
	}

	delete(r.rows, id)
	return &entity, nil
}

func (r *Repository[T]) exists(id int64) bool {
	_, ok := r.rows[id]
	return ok
}

func (r *Repository[T]) references(column string, id int64) bool {
	for _, row := range r.rows {
		if v, ok := r.schema.Value(&row, column); ok && v == any(id) {
			return true
		}
	}
	return false
}

func (r *Repository[T]) checkParents(entity *T) error {
	for _, parent := range r.schema.Parents {
		value, _ := r.schema.Value(entity, parent.Column)
		id, _ := value.(int64)
		t, ok := r.store.tables[parent.Table]
		if !ok || !t.exists(id) {
			return ports.MissingReference(parent.Column, value)
		}
	}
	return nil
}

func (r *Repository[T]) matching(filter query.Filter) ([]T, error) {
	result := []T{}
	if filter.Unsatisfiable {
		return result, nil
	}

	for _, p := range filter.Predicates {
		if !r.schema.HasColumn(p.Column) {
			return nil, fmt.Errorf("unknown filter column %q", p.Column)
		}
	}

	for _, row := range r.rows {
		if r.matches(&row, filter.Predicates) {
			result = append(result, row)
		}
	}
	return result, nil
}

func (r *Repository[T]) matches(row *T, preds []query.Predicate) bool {
	for _, p := range preds {
		value, _ := r.schema.Value(row, p.Column)
		if !evaluate(p, value) {
			return false
		}
	}
	return true
}

func evaluate(p query.Predicate, value any) bool {
	switch p.Op {
	case query.OpContains:
		needle, _ := p.Value.(string)
		return strings.Contains(strings.ToLower(fmt.Sprint(value)), strings.ToLower(needle))
	case query.OpEquals:
		c, ok := query.Compare(value, p.Value)
		return ok && c == 0
	case query.OpGTE:
		c, ok := query.Compare(value, p.Value)
		return ok && c >= 0
	case query.OpLTE:
		c, ok := query.Compare(value, p.Value)
		return ok && c <= 0
	case query.OpIn:
		ids, _ := p.Value.([]int64)
		id, ok := value.(int64)
		return ok && slices.Contains(ids, id)
	}
	return false
}

func (r *Repository[T]) sort(rows []T, sort *query.Sort) error {
	column, desc := "id", false
	if sort != nil {
		if !r.schema.HasColumn(sort.Column) {
			return fmt.Errorf("unknown sort column %q", sort.Column)
		}
		column, desc = sort.Column, sort.Direction == query.Desc
	}

	slices.SortFunc(rows, func(a, b T) int {
		va, _ := r.schema.Value(&a, column)
		vb, _ := r.schema.Value(&b, column)
		c, _ := query.Compare(va, vb)
		if c == 0 {
			c = cmp.Compare(*r.schema.Key(&a), *r.schema.Key(&b))
		}
		if desc {
			return -c
		}
		return c
	})
	return nil
}
