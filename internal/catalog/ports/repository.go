package ports

import (
	"context"

	"github.com/dejobratic/vestuario/internal/catalog/domain"
	"github.com/dejobratic/vestuario/internal/catalog/query"
	"github.com/dejobratic/vestuario/internal/catalog/readmodel"
)

// Repository exposes persistence operations for one entity table.
type Repository[T any] interface {
	Create(ctx context.Context, entity T) (*T, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	List(ctx context.Context, q query.Query) ([]T, error)
	Count(ctx context.Context, filter query.Filter) (int64, error)
	Update(ctx context.Context, entity T) (*T, error)
	Delete(ctx context.Context, id int64) (*T, error)
}

// ReportRepository runs the cross-table reads: aggregations and joins.
type ReportRepository interface {
	GarmentCountBySupplier(ctx context.Context) ([]readmodel.GroupCount, error)
	OrderCountByStatus(ctx context.Context) ([]readmodel.GroupCount, error)
	OrdersWithCustomer(ctx context.Context) ([]readmodel.OrderCustomer, error)
	GarmentsWithSupplier(ctx context.Context) ([]readmodel.GarmentWithSupplier, error)
}

// Store bundles the repositories of one backing store.
type Store interface {
	Garments() Repository[domain.Garment]
	Suppliers() Repository[domain.Supplier]
	Customers() Repository[domain.Customer]
	Orders() Repository[domain.Order]
	LineItems() Repository[domain.LineItem]
	Reports() ReportRepository
	Ping(ctx context.Context) error
}
