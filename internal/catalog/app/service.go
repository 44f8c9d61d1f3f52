package app

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/dejobratic/vestuario/internal/catalog/domain"
	"github.com/dejobratic/vestuario/internal/catalog/metrics"
	"github.com/dejobratic/vestuario/internal/catalog/ports"
	"github.com/dejobratic/vestuario/internal/catalog/query"
	"github.com/dejobratic/vestuario/internal/catalog/readmodel"
)

type (
	GarmentResource  = Resource[domain.Garment, domain.GarmentInput, domain.GarmentPatch]
	SupplierResource = Resource[domain.Supplier, domain.SupplierInput, domain.SupplierPatch]
	CustomerResource = Resource[domain.Customer, domain.CustomerInput, domain.CustomerPatch]
	OrderResource    = Resource[domain.Order, domain.OrderInput, domain.OrderPatch]
	LineItemResource = Resource[domain.LineItem, domain.LineItemInput, domain.LineItemPatch]
)

// Options tunes the façade.
type Options struct {
	MaxPageSize int
}

// Service bundles the per-entity façades and the cross-table reads.
type Service struct {
	Garments  *GarmentResource
	Suppliers *SupplierResource
	Customers *CustomerResource
	Orders    *OrderResource
	LineItems *LineItemResource

	store     ports.Store
	idemStore ports.IdempotencyStore
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// NewService wires required dependencies.
func NewService(
	store ports.Store,
	idem ports.IdempotencyStore,
	logger *slog.Logger,
	metrics *metrics.Metrics,
	opts Options,
) *Service {
	if opts.MaxPageSize <= 0 {
		opts.MaxPageSize = readmodel.MaxLimit
	}
	deps := resourceDeps{
		maxLimit: opts.MaxPageSize,
		validate: NewValidator(),
		logger:   logger,
		metrics:  metrics,
	}

	return &Service{
		Garments: newResource[domain.Garment, domain.GarmentInput, domain.GarmentPatch](
			"roupas", store.Garments(), domain.GarmentSchema, "preco", deps),
		Suppliers: newResource[domain.Supplier, domain.SupplierInput, domain.SupplierPatch](
			"fornecedores", store.Suppliers(), domain.SupplierSchema, "nome", deps),
		Customers: newResource[domain.Customer, domain.CustomerInput, domain.CustomerPatch](
			"clientes", store.Customers(), domain.CustomerSchema, "nome", deps),
		Orders: newResource[domain.Order, domain.OrderInput, domain.OrderPatch](
			"pedidos", store.Orders(), domain.OrderSchema, "data", deps),
		LineItems: newResource[domain.LineItem, domain.LineItemInput, domain.LineItemPatch](
			"itensPedido", store.LineItems(), domain.LineItemSchema, "id", deps),

		store:     store,
		idemStore: idem,
		logger:    logger,
		metrics:   metrics,
	}
}

// SearchGarmentsByName is a substring search that requires the name.
func (s *Service) SearchGarmentsByName(ctx context.Context, name string) ([]domain.Garment, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ports.Validation("o parâmetro nome é obrigatório")
	}
	return s.Garments.Filter(ctx, GarmentFilter{Name: &name}.Filter())
}

// SearchSuppliersByCity is a substring search that requires the city.
func (s *Service) SearchSuppliersByCity(ctx context.Context, city string) ([]domain.Supplier, error) {
	if strings.TrimSpace(city) == "" {
		return nil, ports.Validation("o parâmetro cidade é obrigatório")
	}
	return s.Suppliers.Filter(ctx, SupplierFilter{City: &city}.Filter())
}

// Years outside this range have no four-digit date representation.
const (
	minYear = 1
	maxYear = 9999
)

// OrdersByYear lists orders dated within the calendar year.
func (s *Service) OrdersByYear(ctx context.Context, year int) ([]domain.Order, error) {
	if year < minYear || year > maxYear {
		return nil, ports.InvalidArgument("Parâmetro ano inválido.")
	}
	first := domain.NewDate(year, time.January, 1)
	last := domain.NewDate(year, time.December, 31)
	return s.Orders.Filter(ctx, OrderFilter{DateMin: &first, DateMax: &last}.Filter())
}

// OrdersBetween lists orders dated in [start, end]. start after end matches nothing.
func (s *Service) OrdersBetween(ctx context.Context, start, end domain.Date) ([]domain.Order, error) {
	return s.Orders.Filter(ctx, OrderFilter{DateMin: &start, DateMax: &end}.Filter())
}

func (s *Service) GarmentCountBySupplier(ctx context.Context) ([]readmodel.GroupCount, error) {
	groups, err := s.store.Reports().GarmentCountBySupplier(ctx)
	if err != nil {
		return nil, s.reportFailure(ctx, "Erro ao contar as roupas por fornecedor.", err)
	}
	s.metrics.RecordReport(ctx, "roupas_por_fornecedor")
	return readmodel.SortGroups(groups), nil
}

func (s *Service) OrderCountByStatus(ctx context.Context) ([]readmodel.GroupCount, error) {
	groups, err := s.store.Reports().OrderCountByStatus(ctx)
	if err != nil {
		return nil, s.reportFailure(ctx, "Erro ao contar os pedidos por status.", err)
	}
	s.metrics.RecordReport(ctx, "pedidos_por_status")
	return readmodel.SortGroups(groups), nil
}

// OrderDetails nests each order's line items under it. Items are fetched
// with one batched query for all orders.
func (s *Service) OrderDetails(ctx context.Context) ([]readmodel.OrderDetail, error) {
	const message = "Erro ao listar os pedidos detalhados."

	orders, err := s.store.Reports().OrdersWithCustomer(ctx)
	if err != nil {
		return nil, s.reportFailure(ctx, message, err)
	}

	items, err := s.store.LineItems().List(ctx, query.Query{
		Filter: query.Compose(query.In("pedido_id", readmodel.OrderIDs(orders))),
	})
	if err != nil {
		return nil, s.reportFailure(ctx, message, err)
	}

	s.metrics.RecordReport(ctx, "pedidos_detalhados")
	return readmodel.NestOrderItems(orders, items), nil
}

func (s *Service) GarmentsWithSupplier(ctx context.Context) ([]readmodel.GarmentWithSupplier, error) {
	rows, err := s.store.Reports().GarmentsWithSupplier(ctx)
	if err != nil {
		return nil, s.reportFailure(ctx, "Erro ao listar as roupas com fornecedores.", err)
	}
	if rows == nil {
		rows = []readmodel.GarmentWithSupplier{}
	}
	s.metrics.RecordReport(ctx, "roupas_fornecedores")
	return rows, nil
}

// EntityCounts returns the row count of every collection, keyed by name.
func (s *Service) EntityCounts(ctx context.Context) ([]readmodel.GroupCount, error) {
	counters := []struct {
		name  string
		count func(context.Context, query.Filter) (int64, error)
	}{
		{s.Garments.Name(), s.Garments.Count},
		{s.Suppliers.Name(), s.Suppliers.Count},
		{s.Customers.Name(), s.Customers.Count},
		{s.Orders.Name(), s.Orders.Count},
		{s.LineItems.Name(), s.LineItems.Count},
	}

	counts := make([]readmodel.GroupCount, 0, len(counters))
	for _, c := range counters {
		n, err := c.count(ctx, query.Filter{})
		if err != nil {
			return nil, err
		}
		counts = append(counts, readmodel.GroupCount{Key: c.name, Count: n})
	}
	return counts, nil
}

// Ping reports whether the backing store answers.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// SaveIdempotentResponse writes response details for a key.
func (s *Service) SaveIdempotentResponse(ctx context.Context, key string, response ports.StoredResponse) error {
	return s.idemStore.Save(ctx, key, response)
}

// GetIdempotentResponse retrieves previously stored response data.
func (s *Service) GetIdempotentResponse(ctx context.Context, resource, key string) (*ports.StoredResponse, error) {
	return s.idemStore.Get(ctx, resource, key)
}

func (s *Service) reportFailure(ctx context.Context, message string, err error) error {
	s.logger.ErrorContext(ctx, "report failed", "error", err)
	return ports.StoreFailure(message, err)
}
