package domain

import (
	"reflect"
	"slices"
)

// Reference links a foreign-key column to the table on the other side.
// On a parent reference Table is the referenced table; on a child
// reference Table is the referencing table and Column its FK column.
type Reference struct {
	Table  string
	Column string
}

// Schema maps an entity onto its table. Storage adapters are driven by it,
// so adding an entity means adding a Schema, not a repository.
type Schema[T any] struct {
	Table    string
	Columns  []string
	Key      func(*T) *int64
	Fields   func(*T) []any
	Parents  []Reference
	Children []Reference

	// NotFound is the client message used when an id does not resolve.
	NotFound string
	// Plural names the collection in generic failure messages ("as roupas").
	Plural string
}

// Targets returns pointers to the key followed by every column, in Columns order.
func (s Schema[T]) Targets(entity *T) []any {
	return append([]any{s.Key(entity)}, s.Fields(entity)...)
}

// HasColumn reports whether column belongs to the table (the key included).
func (s Schema[T]) HasColumn(column string) bool {
	return column == "id" || slices.Contains(s.Columns, column)
}

// Value returns the current value of column on entity.
func (s Schema[T]) Value(entity *T, column string) (any, bool) {
	if column == "id" {
		return *s.Key(entity), true
	}
	idx := slices.Index(s.Columns, column)
	if idx < 0 {
		return nil, false
	}
	return reflect.ValueOf(s.Fields(entity)[idx]).Elem().Interface(), true
}
