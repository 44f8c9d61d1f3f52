package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/dejobratic/vestuario/internal/catalog/domain"
	"github.com/dejobratic/vestuario/internal/catalog/metrics"
	"github.com/dejobratic/vestuario/internal/catalog/ports"
	"github.com/dejobratic/vestuario/internal/catalog/query"
	"github.com/dejobratic/vestuario/internal/catalog/readmodel"
	"github.com/dejobratic/vestuario/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// Input is a create payload that builds a new entity once validated.
type Input[T any] interface {
	Entity() T
}

// Patch is an update payload that overwrites the fields it carries.
type Patch[T any] interface {
	Apply(*T)
}

// Resource is the CRUD façade of one entity.
type Resource[T any, I Input[T], P Patch[T]] struct {
	name     string
	repo     ports.Repository[T]
	schema   domain.Schema[T]
	sortBy   string
	maxLimit int
	validate *Validator
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type resourceDeps struct {
	maxLimit int
	validate *Validator
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func newResource[T any, I Input[T], P Patch[T]](
	name string,
	repo ports.Repository[T],
	schema domain.Schema[T],
	sortBy string,
	deps resourceDeps,
) *Resource[T, I, P] {
	return &Resource[T, I, P]{
		name:     name,
		repo:     repo,
		schema:   schema,
		sortBy:   sortBy,
		maxLimit: deps.maxLimit,
		validate: deps.validate,
		logger:   deps.logger,
		metrics:  deps.metrics,
	}
}

// Name is the entity's collection name.
func (r *Resource[T, I, P]) Name() string {
	return r.name
}

// ID returns the store-assigned id of entity.
func (r *Resource[T, I, P]) ID(entity *T) int64 {
	return *r.schema.Key(entity)
}

func (r *Resource[T, I, P]) Create(ctx context.Context, in I) (*T, error) {
	if err := r.validate.Struct(in); err != nil {
		return nil, err
	}

	return r.write(ctx, "create", func(ctx context.Context) (*T, error) {
		return r.repo.Create(ctx, in.Entity())
	})
}

func (r *Resource[T, I, P]) GetByID(ctx context.Context, id int64) (*T, error) {
	entity, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, r.failure(ctx, "Erro ao buscar o registro.", err)
	}
	return entity, nil
}

func (r *Resource[T, I, P]) ListAll(ctx context.Context) ([]T, error) {
	entities, err := r.repo.List(ctx, query.Query{})
	if err != nil {
		return nil, r.failure(ctx, "Erro ao listar "+r.schema.Plural+".", err)
	}
	return entities, nil
}

// Update overwrites the fields present in patch and keeps the rest.
func (r *Resource[T, I, P]) Update(ctx context.Context, id int64, patch P) (*T, error) {
	if err := r.validate.Struct(patch); err != nil {
		return nil, err
	}

	return r.write(ctx, "update", func(ctx context.Context) (*T, error) {
		current, err := r.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		patch.Apply(current)
		*r.schema.Key(current) = id
		return r.repo.Update(ctx, *current)
	})
}

// Delete removes the row and returns it as it was.
func (r *Resource[T, I, P]) Delete(ctx context.Context, id int64) (*T, error) {
	return r.write(ctx, "delete", func(ctx context.Context) (*T, error) {
		return r.repo.Delete(ctx, id)
	})
}

func (r *Resource[T, I, P]) Filter(ctx context.Context, filter query.Filter) ([]T, error) {
	entities, err := r.repo.List(ctx, query.Query{Filter: filter})
	if err != nil {
		return nil, r.failure(ctx, "Erro ao filtrar "+r.schema.Plural+".", err)
	}
	return entities, nil
}

func (r *Resource[T, I, P]) Paginate(ctx context.Context, req readmodel.PageRequest) (readmodel.Page[T], error) {
	req = req.Clamp(r.maxLimit)

	total, err := r.repo.Count(ctx, query.Filter{})
	if err != nil {
		return readmodel.Page[T]{}, r.failure(ctx, "Erro ao paginar "+r.schema.Plural+".", err)
	}

	items, err := r.repo.List(ctx, query.Query{
		Page: &query.Page{Limit: req.Limit, Offset: req.Offset()},
	})
	if err != nil {
		return readmodel.Page[T]{}, r.failure(ctx, "Erro ao paginar "+r.schema.Plural+".", err)
	}

	return readmodel.NewPage(req, total, items), nil
}

func (r *Resource[T, I, P]) Count(ctx context.Context, filter query.Filter) (int64, error) {
	count, err := r.repo.Count(ctx, filter)
	if err != nil {
		return 0, r.failure(ctx, "Erro ao contar "+r.schema.Plural+".", err)
	}
	return count, nil
}

// ChildrenOf lists rows whose column references parentID. A missing parent
// yields an empty list.
func (r *Resource[T, I, P]) ChildrenOf(ctx context.Context, column string, parentID int64) ([]T, error) {
	filter := query.Compose(query.Equals(column, &parentID))
	entities, err := r.repo.List(ctx, query.Query{Filter: filter})
	if err != nil {
		return nil, r.failure(ctx, "Erro ao listar "+r.schema.Plural+".", err)
	}
	return entities, nil
}

// Sorted lists every row ordered by the resource's sort field.
func (r *Resource[T, I, P]) Sorted(ctx context.Context, direction query.Direction) ([]T, error) {
	column := r.sortBy
	if column == "" {
		column = "id"
	}

	entities, err := r.repo.List(ctx, query.Query{
		Sort: &query.Sort{Column: column, Direction: direction},
	})
	if err != nil {
		return nil, r.failure(ctx, "Erro ao ordenar "+r.schema.Plural+".", err)
	}
	return entities, nil
}

func (r *Resource[T, I, P]) write(ctx context.Context, operation string, fn func(context.Context) (*T, error)) (*T, error) {
	ctx, span := telemetry.StartSpan(ctx, "Resource."+operation,
		attribute.String("entity", r.name),
		attribute.String("operation", operation),
	)
	defer span.End()

	start := time.Now()
	entity, err := fn(ctx)
	r.metrics.RecordWrite(ctx, r.name, operation, err == nil, time.Since(start).Seconds())

	if err != nil {
		if ports.IsClientError(err) {
			telemetry.AddSpanEvent(span, "record.rejected", attribute.String("reason", ports.ClientMessage(err)))
		} else {
			telemetry.RecordSpanError(span, err)
		}
		return nil, r.failure(ctx, writeFailures[operation], err)
	}

	id := r.ID(entity)
	telemetry.AddSpanAttributes(span, attribute.Int64("record.id", id))
	telemetry.SetSpanSuccess(span)

	r.logger.InfoContext(ctx, "record written",
		"entity", r.name,
		"operation", operation,
		"id", id,
	)

	return entity, nil
}

var writeFailures = map[string]string{
	"create": "Erro ao criar o registro.",
	"update": "Erro ao atualizar o registro.",
	"delete": "Erro ao excluir o registro.",
}

// failure logs err and converts anything outside the client taxonomy into a StoreFailure.
func (r *Resource[T, I, P]) failure(ctx context.Context, message string, err error) error {
	if ports.IsClientError(err) {
		r.logger.InfoContext(ctx, "request rejected",
			"entity", r.name,
			"error", err,
		)
		return err
	}

	r.logger.ErrorContext(ctx, "store operation failed",
		"entity", r.name,
		"error", err,
	)
	return ports.StoreFailure(message, err)
}
