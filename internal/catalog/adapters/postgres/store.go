// Package postgres is the Storage Gateway backed by PostgreSQL through a pgx pool.
package postgres

import (
	"context"

	"github.com/dejobratic/vestuario/internal/catalog/domain"
	"github.com/dejobratic/vestuario/internal/catalog/ports"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store exposes the catalog tables of one database.
type Store struct {
	pool *pgxpool.Pool

	garments  *Repository[domain.Garment]
	suppliers *Repository[domain.Supplier]
	customers *Repository[domain.Customer]
	orders    *Repository[domain.Order]
	lineItems *Repository[domain.LineItem]
	reports   *ReportRepository
}

var _ ports.Store = (*Store)(nil)

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:      pool,
		garments:  NewRepository(pool, domain.GarmentSchema),
		suppliers: NewRepository(pool, domain.SupplierSchema),
		customers: NewRepository(pool, domain.CustomerSchema),
		orders:    NewRepository(pool, domain.OrderSchema),
		lineItems: NewRepository(pool, domain.LineItemSchema),
		reports:   NewReportRepository(pool),
	}
}

func (s *Store) Garments() ports.Repository[domain.Garment]   { return s.garments }
func (s *Store) Suppliers() ports.Repository[domain.Supplier] { return s.suppliers }
func (s *Store) Customers() ports.Repository[domain.Customer] { return s.customers }
func (s *Store) Orders() ports.Repository[domain.Order]       { return s.orders }
func (s *Store) LineItems() ports.Repository[domain.LineItem] { return s.lineItems }
func (s *Store) Reports() ports.ReportRepository              { return s.reports }

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
