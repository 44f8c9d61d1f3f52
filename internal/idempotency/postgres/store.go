// Package postgres persists idempotent create responses in idempotency_keys.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dejobratic/vestuario/internal/catalog/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	selectResponse = `
		SELECT resource, status_code, body, record_id
		FROM idempotency_keys
		WHERE resource = $1 AND key = $2`

	// The first stored response wins; a concurrent retry keeps it.
	insertResponse = `
		INSERT INTO idempotency_keys (resource, key, status_code, body, record_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (resource, key) DO NOTHING`
)

// querier is satisfied by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type Store struct {
	db querier
}

var _ ports.IdempotencyStore = (*Store)(nil)

func NewStore(db querier) *Store {
	return &Store{db: db}
}

type responseRow struct {
	Resource   string `db:"resource"`
	StatusCode int    `db:"status_code"`
	Body       []byte `db:"body"`
	RecordID   int64  `db:"record_id"`
}

// Get returns nil, nil when nothing was stored under key for resource.
func (s *Store) Get(ctx context.Context, resource, key string) (*ports.StoredResponse, error) {
	rows, err := s.db.Query(ctx, selectResponse, resource, key)
	if err != nil {
		return nil, fmt.Errorf("select idempotency key: %w", err)
	}

	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[responseRow])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan idempotency key: %w", err)
	}

	return &ports.StoredResponse{
		Resource:   row.Resource,
		StatusCode: row.StatusCode,
		Body:       row.Body,
		RecordID:   row.RecordID,
	}, nil
}

func (s *Store) Save(ctx context.Context, key string, response ports.StoredResponse) error {
	if _, err := s.db.Exec(ctx, insertResponse,
		response.Resource, key, response.StatusCode, response.Body, response.RecordID,
	); err != nil {
		return fmt.Errorf("insert idempotency key: %w", err)
	}
	return nil
}
