package adapters

import (
	"context"

	"github.com/dejobratic/vestuario/internal/catalog/domain"
	"github.com/dejobratic/vestuario/internal/catalog/ports"
	"github.com/dejobratic/vestuario/internal/catalog/readmodel"
	"github.com/dejobratic/vestuario/internal/database"
)

// ObservableStore wraps every repository of a store with tracing and query metrics.
type ObservableStore struct {
	store     ports.Store
	garments  ports.Repository[domain.Garment]
	suppliers ports.Repository[domain.Supplier]
	customers ports.Repository[domain.Customer]
	orders    ports.Repository[domain.Order]
	lineItems ports.Repository[domain.LineItem]
	reports   ports.ReportRepository
}

var _ ports.Store = (*ObservableStore)(nil)

func NewObservableStore(store ports.Store, metrics *database.Metrics) *ObservableStore {
	return &ObservableStore{
		store:     store,
		garments:  NewObservableRepository(store.Garments(), domain.GarmentSchema.Table, metrics),
		suppliers: NewObservableRepository(store.Suppliers(), domain.SupplierSchema.Table, metrics),
		customers: NewObservableRepository(store.Customers(), domain.CustomerSchema.Table, metrics),
		orders:    NewObservableRepository(store.Orders(), domain.OrderSchema.Table, metrics),
		lineItems: NewObservableRepository(store.LineItems(), domain.LineItemSchema.Table, metrics),
		reports:   &observableReports{reports: store.Reports(), metrics: metrics},
	}
}

func (s *ObservableStore) Garments() ports.Repository[domain.Garment]   { return s.garments }
func (s *ObservableStore) Suppliers() ports.Repository[domain.Supplier] { return s.suppliers }
func (s *ObservableStore) Customers() ports.Repository[domain.Customer] { return s.customers }
func (s *ObservableStore) Orders() ports.Repository[domain.Order]       { return s.orders }
func (s *ObservableStore) LineItems() ports.Repository[domain.LineItem] { return s.lineItems }
func (s *ObservableStore) Reports() ports.ReportRepository              { return s.reports }

func (s *ObservableStore) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

type observableReports struct {
	reports ports.ReportRepository
	metrics *database.Metrics
}

func (r *observableReports) GarmentCountBySupplier(ctx context.Context) ([]readmodel.GroupCount, error) {
	return traced(ctx, r.metrics, "roupas", "count_by_supplier", nil, r.reports.GarmentCountBySupplier)
}

func (r *observableReports) OrderCountByStatus(ctx context.Context) ([]readmodel.GroupCount, error) {
	return traced(ctx, r.metrics, "pedidos", "count_by_status", nil, r.reports.OrderCountByStatus)
}

func (r *observableReports) OrdersWithCustomer(ctx context.Context) ([]readmodel.OrderCustomer, error) {
	return traced(ctx, r.metrics, "pedidos", "join_customer", nil, r.reports.OrdersWithCustomer)
}

func (r *observableReports) GarmentsWithSupplier(ctx context.Context) ([]readmodel.GarmentWithSupplier, error) {
	return traced(ctx, r.metrics, "roupas", "join_supplier", nil, r.reports.GarmentsWithSupplier)
}
