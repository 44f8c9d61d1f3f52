package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/dejobratic/vestuario/internal/catalog/readmodel"
)

type reports struct {
	store *Store
}

// GarmentCountBySupplier counts garments per supplier name. Suppliers
// without garments do not appear.
func (r reports) GarmentCountBySupplier(context.Context) ([]readmodel.GroupCount, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	counts := map[string]int64{}
	for _, g := range r.store.garments.rows {
		if s, ok := r.store.suppliers.rows[g.SupplierID]; ok {
			counts[s.Name]++
		}
	}
	return groups(counts), nil
}

func (r reports) OrderCountByStatus(context.Context) ([]readmodel.GroupCount, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	counts := map[string]int64{}
	for _, o := range r.store.orders.rows {
		counts[o.Status]++
	}
	return groups(counts), nil
}

func (r reports) OrdersWithCustomer(context.Context) ([]readmodel.OrderCustomer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rows := []readmodel.OrderCustomer{}
	for _, o := range r.store.orders.rows {
		c, ok := r.store.customers.rows[o.CustomerID]
		if !ok {
			continue
		}
		rows = append(rows, readmodel.OrderCustomer{
			OrderID:      o.ID,
			Date:         o.Date,
			Status:       o.Status,
			CustomerName: c.Name,
		})
	}
	slices.SortFunc(rows, func(a, b readmodel.OrderCustomer) int { return cmp.Compare(a.OrderID, b.OrderID) })
	return rows, nil
}

func (r reports) GarmentsWithSupplier(context.Context) ([]readmodel.GarmentWithSupplier, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rows := []readmodel.GarmentWithSupplier{}
	for _, g := range r.store.garments.rows {
		s, ok := r.store.suppliers.rows[g.SupplierID]
		if !ok {
			continue
		}
		rows = append(rows, readmodel.GarmentWithSupplier{GarmentID: g.ID, Name: g.Name, Supplier: s.Name})
	}
	slices.SortFunc(rows, func(a, b readmodel.GarmentWithSupplier) int { return cmp.Compare(a.GarmentID, b.GarmentID) })
	return rows, nil
}

func groups(counts map[string]int64) []readmodel.GroupCount {
	result := make([]readmodel.GroupCount, 0, len(counts))
	for key, n := range counts {
		result = append(result, readmodel.GroupCount{Key: key, Count: n})
	}
	return readmodel.SortGroups(result)
}
