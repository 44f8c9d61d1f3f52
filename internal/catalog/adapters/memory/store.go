// Package memory is a Storage Gateway kept in process memory, used for
// local development and tests.
package memory

import (
	"context"
	"sync"

	"github.com/dejobratic/vestuario/internal/catalog/domain"
	"github.com/dejobratic/vestuario/internal/catalog/ports"
)

// Store holds every table behind one lock.
type Store struct {
	mu     sync.RWMutex
	tables map[string]table

	garments  *Repository[domain.Garment]
	suppliers *Repository[domain.Supplier]
	customers *Repository[domain.Customer]
	orders    *Repository[domain.Order]
	lineItems *Repository[domain.LineItem]
}

var _ ports.Store = (*Store)(nil)

func NewStore() *Store {
	s := &Store{tables: make(map[string]table)}
	s.garments = newRepository(s, domain.GarmentSchema)
	s.suppliers = newRepository(s, domain.SupplierSchema)
	s.customers = newRepository(s, domain.CustomerSchema)
	s.orders = newRepository(s, domain.OrderSchema)
	s.lineItems = newRepository(s, domain.LineItemSchema)
	return s
}

func (s *Store) Garments() ports.Repository[domain.Garment]   { return s.garments }
func (s *Store) Suppliers() ports.Repository[domain.Supplier] { return s.suppliers }
func (s *Store) Customers() ports.Repository[domain.Customer] { return s.customers }
func (s *Store) Orders() ports.Repository[domain.Order]       { return s.orders }
func (s *Store) LineItems() ports.Repository[domain.LineItem] { return s.lineItems }
func (s *Store) Reports() ports.ReportRepository              { return reports{s} }

func (s *Store) Ping(context.Context) error { return nil }
