package app

import (
	"github.com/dejobratic/vestuario/internal/catalog/domain"
	"github.com/dejobratic/vestuario/internal/catalog/query"
	"github.com/shopspring/decimal"
)

// Filter parameter sets, one per entity. A nil field is an absent parameter.

type GarmentFilter struct {
	Name       *string
	Size       *string
	Color      *string
	PriceMin   *decimal.Decimal
	PriceMax   *decimal.Decimal
	SupplierID *int64
}

func (f GarmentFilter) Filter() query.Filter {
	return query.Compose(
		query.Contains("nome", f.Name),
		query.Equals("tamanho", f.Size),
		query.Contains("cor", f.Color),
		query.Min("preco", f.PriceMin),
		query.Max("preco", f.PriceMax),
		query.Equals("fornecedor_id", f.SupplierID),
	)
}

type SupplierFilter struct {
	Name  *string
	Phone *string
	Email *string
	City  *string
}

func (f SupplierFilter) Filter() query.Filter {
	return query.Compose(
		query.Contains("nome", f.Name),
		query.Contains("telefone", f.Phone),
		query.Contains("email", f.Email),
		query.Contains("cidade", f.City),
	)
}

// CustomerFilter accepts City for compatibility with existing clients.
// Customers have no city column, so it never restricts the result.
type CustomerFilter struct {
	Name  *string
	CPF   *string
	Phone *string
	City  *string
}

func (f CustomerFilter) Filter() query.Filter {
	return query.Compose(
		query.Contains("nome", f.Name),
		query.Contains("cpf", f.CPF),
		query.Contains("telefone", f.Phone),
	)
}

type OrderFilter struct {
	CustomerID *int64
	Status     *string
	DateMin    *domain.Date
	DateMax    *domain.Date
	TotalMin   *decimal.Decimal
	TotalMax   *decimal.Decimal
}

func (f OrderFilter) Filter() query.Filter {
	return query.Compose(
		query.Equals("cliente_id", f.CustomerID),
		query.Contains("status", f.Status),
		query.Min("data", f.DateMin),
		query.Max("data", f.DateMax),
		query.Min("valor_total", f.TotalMin),
		query.Max("valor_total", f.TotalMax),
	)
}

type LineItemFilter struct {
	OrderID      *int64
	GarmentID    *int64
	QuantityMin  *int64
	QuantityMax  *int64
	UnitPriceMin *decimal.Decimal
	UnitPriceMax *decimal.Decimal
}

func (f LineItemFilter) Filter() query.Filter {
	return query.Compose(
		query.Equals("pedido_id", f.OrderID),
		query.Equals("roupa_id", f.GarmentID),
		query.Min("quantidade", f.QuantityMin),
		query.Max("quantidade", f.QuantityMax),
		query.Min("preco_unitario", f.UnitPriceMin),
		query.Max("preco_unitario", f.UnitPriceMax),
	)
}
