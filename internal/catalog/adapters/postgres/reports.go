package postgres

import (
	"context"
	"fmt"

	"github.com/dejobratic/vestuario/internal/catalog/readmodel"
	"github.com/jackc/pgx/v5"
)

// ReportRepository runs the aggregate and join queries.
type ReportRepository struct {
	db DB
}

func NewReportRepository(db DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) GarmentCountBySupplier(ctx context.Context) ([]readmodel.GroupCount, error) {
	const query = `
		SELECT f.nome, COUNT(r.id)
		FROM fornecedores f
		JOIN roupas r ON r.fornecedor_id = f.id
		GROUP BY f.nome
		ORDER BY f.nome`

	return r.groupCounts(ctx, "garments by supplier", query)
}

func (r *ReportRepository) OrderCountByStatus(ctx context.Context) ([]readmodel.GroupCount, error) {
	const query = `
		SELECT status, COUNT(id)
		FROM pedidos
		GROUP BY status
		ORDER BY status`

	return r.groupCounts(ctx, "orders by status", query)
}

func (r *ReportRepository) OrdersWithCustomer(ctx context.Context) ([]readmodel.OrderCustomer, error) {
	const query = `
		SELECT p.id, p.data, p.status, c.nome
		FROM pedidos p
		JOIN clientes c ON c.id = p.cliente_id
		ORDER BY p.id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query orders with customer: %w", err)
	}

	result, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (readmodel.OrderCustomer, error) {
		var oc readmodel.OrderCustomer
		err := row.Scan(&oc.OrderID, &oc.Date, &oc.Status, &oc.CustomerName)
		return oc, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan orders with customer: %w", err)
	}
	return result, nil
}

func (r *ReportRepository) GarmentsWithSupplier(ctx context.Context) ([]readmodel.GarmentWithSupplier, error) {
	const query = `
		SELECT r.id, r.nome, f.nome
		FROM roupas r
		JOIN fornecedores f ON f.id = r.fornecedor_id
		ORDER BY r.id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query garments with supplier: %w", err)
	}

	result, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (readmodel.GarmentWithSupplier, error) {
		var gs readmodel.GarmentWithSupplier
		err := row.Scan(&gs.GarmentID, &gs.Name, &gs.Supplier)
		return gs, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan garments with supplier: %w", err)
	}
	return result, nil
}

func (r *ReportRepository) groupCounts(ctx context.Context, name, query string) ([]readmodel.GroupCount, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", name, err)
	}

	result, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (readmodel.GroupCount, error) {
		var g readmodel.GroupCount
		err := row.Scan(&g.Key, &g.Count)
		return g, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", name, err)
	}
	return result, nil
}
