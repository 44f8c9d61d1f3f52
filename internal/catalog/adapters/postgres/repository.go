package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dejobratic/vestuario/internal/catalog/domain"
	"github.com/dejobratic/vestuario/internal/catalog/ports"
	"github.com/dejobratic/vestuario/internal/catalog/query"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
)

// DB is the subset of pgxpool.Pool the repositories use.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository stores one entity table described by a schema.
type Repository[T any] struct {
	db     DB
	schema domain.Schema[T]
}

func NewRepository[T any](db DB, schema domain.Schema[T]) *Repository[T] {
	return &Repository[T]{db: db, schema: schema}
}

func (r *Repository[T]) columns() string {
	return strings.Join(r.schema.Columns, ", ")
}

func (r *Repository[T]) Create(ctx context.Context, entity T) (*T, error) {
	query := fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES (%s) RETURNING id, %s`,
		r.schema.Table, r.columns(), placeholders(1, len(r.schema.Columns)), r.columns(),
	)

	var created T
	err := r.db.QueryRow(ctx, query, deref(r.schema.Fields(&entity))...).Scan(r.schema.Targets(&created)...)
	if err != nil {
		return nil, r.writeError("insert", &entity, err)
	}

	return &created, nil
}

func (r *Repository[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	query := fmt.Sprintf(`SELECT id, %s FROM %s WHERE id = $1`, r.columns(), r.schema.Table)

	var entity T
	err := r.db.QueryRow(ctx, query, id).Scan(r.schema.Targets(&entity)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.NotFound(r.schema.NotFound)
		}
		return nil, fmt.Errorf("select %s: %w", r.schema.Table, err)
	}

	return &entity, nil
}

func (r *Repository[T]) List(ctx context.Context, q query.Query) ([]T, error) {
	result := []T{}
	if q.Filter.Unsatisfiable {
		return result, nil
	}

	where, args, err := whereClause(q.Filter, r.schema.HasColumn)
	if err != nil {
		return nil, err
	}
	order, err := orderClause(q.Sort, r.schema.HasColumn)
	if err != nil {
		return nil, err
	}
	page, pageArgs := pageClause(q.Page, len(args)+1)

	query := fmt.Sprintf(`SELECT id, %s FROM %s`, r.columns(), r.schema.Table) + where + order + page

	rows, err := r.db.Query(ctx, query, append(args, pageArgs...)...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", r.schema.Table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var entity T
		if err := rows.Scan(r.schema.Targets(&entity)...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.schema.Table, err)
		}
		result = append(result, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", r.schema.Table, err)
	}

	return result, nil
}

func (r *Repository[T]) Count(ctx context.Context, filter query.Filter) (int64, error) {
	where, args, err := whereClause(filter, r.schema.HasColumn)
	if err != nil {
		return 0, err
	}

	var count int64
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.schema.Table) + where
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w", r.schema.Table, err)
	}

	return count, nil
}

func (r *Repository[T]) Update(ctx context.Context, entity T) (*T, error) {
	query := fmt.Sprintf(
		`UPDATE %s SET %s WHERE id = $%d RETURNING id, %s`,
		r.schema.Table, assignments(r.schema.Columns), len(r.schema.Columns)+1, r.columns(),
	)

	args := append(deref(r.schema.Fields(&entity)), *r.schema.Key(&entity))

	var updated T
	err := r.db.QueryRow(ctx, query, args...).Scan(r.schema.Targets(&updated)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.NotFound(r.schema.NotFound)
		}
		return nil, r.writeError("update", &entity, err)
	}

	return &updated, nil
}

func (r *Repository[T]) Delete(ctx context.Context, id int64) (*T, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 RETURNING id, %s`, r.schema.Table, r.columns())

	var deleted T
	err := r.db.QueryRow(ctx, query, id).Scan(r.schema.Targets(&deleted)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.NotFound(r.schema.NotFound)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return nil, ports.StillReferenced(r.referencingTable(pgErr.ConstraintName))
		}
		return nil, fmt.Errorf("delete %s: %w", r.schema.Table, err)
	}

	return &deleted, nil
}

// writeError maps constraint violations raised by insert/update to validation errors.
func (r *Repository[T]) writeError(op string, entity *T, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case foreignKeyViolation:
			for _, ref := range r.schema.Parents {
				if strings.HasSuffix(pgErr.ConstraintName, "_"+ref.Column+"_fkey") {
					value, _ := r.schema.Value(entity, ref.Column)
					return ports.MissingReference(ref.Column, value)
				}
			}
			return ports.Validation("referência a registro inexistente")
		case checkViolation:
			return ports.Validation(fmt.Sprintf("valor viola a restrição %s", pgErr.ConstraintName))
		}
	}
	return fmt.Errorf("%s %s: %w", op, r.schema.Table, err)
}

func (r *Repository[T]) referencingTable(constraint string) string {
	for _, child := range r.schema.Children {
		if strings.HasPrefix(constraint, child.Table+"_") {
			return child.Table
		}
	}
	if len(r.schema.Children) > 0 {
		return r.schema.Children[0].Table
	}
	return "outra tabela"
}
