package adapters

import (
	"context"
	"time"

	"github.com/dejobratic/vestuario/internal/catalog/ports"
	"github.com/dejobratic/vestuario/internal/catalog/query"
	"github.com/dejobratic/vestuario/internal/database"
	"github.com/dejobratic/vestuario/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// ObservableRepository traces every call and records its duration.
type ObservableRepository[T any] struct {
	repo    ports.Repository[T]
	table   string
	metrics *database.Metrics
}

func NewObservableRepository[T any](repo ports.Repository[T], table string, metrics *database.Metrics) *ObservableRepository[T] {
	return &ObservableRepository[T]{
		repo:    repo,
		table:   table,
		metrics: metrics,
	}
}

func (r *ObservableRepository[T]) Create(ctx context.Context, entity T) (*T, error) {
	return observe(ctx, r, "create", nil, func(ctx context.Context) (*T, error) {
		return r.repo.Create(ctx, entity)
	})
}

func (r *ObservableRepository[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	attrs := []attribute.KeyValue{attribute.Int64("record.id", id)}
	return observe(ctx, r, "get_by_id", attrs, func(ctx context.Context) (*T, error) {
		return r.repo.GetByID(ctx, id)
	})
}

func (r *ObservableRepository[T]) List(ctx context.Context, q query.Query) ([]T, error) {
	attrs := []attribute.KeyValue{
		attribute.Int("filter.predicates", len(q.Filter.Predicates)),
		attribute.Bool("filter.unsatisfiable", q.Filter.Unsatisfiable),
	}
	if q.Sort != nil {
		attrs = append(attrs,
			attribute.String("sort.column", q.Sort.Column),
			attribute.String("sort.direction", string(q.Sort.Direction)),
		)
	}
	if q.Page != nil {
		attrs = append(attrs,
			attribute.Int("page.limit", q.Page.Limit),
			attribute.Int("page.offset", q.Page.Offset),
		)
	}

	return observe(ctx, r, "list", attrs, func(ctx context.Context) ([]T, error) {
		return r.repo.List(ctx, q)
	})
}

func (r *ObservableRepository[T]) Count(ctx context.Context, filter query.Filter) (int64, error) {
	attrs := []attribute.KeyValue{attribute.Int("filter.predicates", len(filter.Predicates))}
	return observe(ctx, r, "count", attrs, func(ctx context.Context) (int64, error) {
		return r.repo.Count(ctx, filter)
	})
}

func (r *ObservableRepository[T]) Update(ctx context.Context, entity T) (*T, error) {
	return observe(ctx, r, "update", nil, func(ctx context.Context) (*T, error) {
		return r.repo.Update(ctx, entity)
	})
}

func (r *ObservableRepository[T]) Delete(ctx context.Context, id int64) (*T, error) {
	attrs := []attribute.KeyValue{attribute.Int64("record.id", id)}
	return observe(ctx, r, "delete", attrs, func(ctx context.Context) (*T, error) {
		return r.repo.Delete(ctx, id)
	})
}

func observe[T, R any](
	ctx context.Context,
	r *ObservableRepository[T],
	operation string,
	attrs []attribute.KeyValue,
	call func(context.Context) (R, error),
) (R, error) {
	return traced(ctx, r.metrics, r.table, operation, attrs, call)
}

func traced[R any](
	ctx context.Context,
	metrics *database.Metrics,
	table, operation string,
	attrs []attribute.KeyValue,
	call func(context.Context) (R, error),
) (R, error) {
	ctx, span := telemetry.StartSpan(ctx, "Repository."+operation, append([]attribute.KeyValue{
		attribute.String("db.table", table),
		attribute.String("operation", operation),
	}, attrs...)...)

	start := time.Now()
	result, err := call(ctx)
	metrics.RecordQuery(ctx, table, operation, time.Since(start).Seconds(), err)

	telemetry.Finish(span, err)
	return result, err
}
