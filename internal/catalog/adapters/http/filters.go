package http

import (
	"github.com/dejobratic/vestuario/internal/catalog/app"
	"github.com/dejobratic/vestuario/internal/catalog/query"
)

// filterParser turns the query string of a /filtrar request into a filter.
type filterParser func(p *params) query.Filter

func garmentFilter(p *params) query.Filter {
	return app.GarmentFilter{
		Name:       p.Text("nome"),
		Size:       p.Text("tamanho"),
		Color:      p.Text("cor"),
		PriceMin:   p.Decimal("preco_min"),
		PriceMax:   p.Decimal("preco_max"),
		SupplierID: p.Int64("fornecedor_id"),
	}.Filter()
}

func supplierFilter(p *params) query.Filter {
	return app.SupplierFilter{
		Name:  p.Text("nome"),
		Phone: p.Text("telefone"),
		Email: p.Text("email"),
		City:  p.Text("cidade"),
	}.Filter()
}

func customerFilter(p *params) query.Filter {
	return app.CustomerFilter{
		Name:  p.Text("nome"),
		CPF:   p.Text("cpf"),
		Phone: p.Text("telefone"),
		City:  p.Text("cidade"),
	}.Filter()
}

func orderFilter(p *params) query.Filter {
	return app.OrderFilter{
		CustomerID: p.Int64("cliente_id"),
		Status:     p.Text("status"),
		DateMin:    p.Date("data_min"),
		DateMax:    p.Date("data_max"),
		TotalMin:   p.Decimal("valor_min"),
		TotalMax:   p.Decimal("valor_max"),
	}.Filter()
}

func lineItemFilter(p *params) query.Filter {
	return app.LineItemFilter{
		OrderID:      p.Int64("pedido_id"),
		GarmentID:    p.Int64("roupa_id"),
		QuantityMin:  p.Int64("quantidade_min"),
		QuantityMax:  p.Int64("quantidade_max"),
		UnitPriceMin: p.Decimal("preco_unitario_min"),
		UnitPriceMax: p.Decimal("preco_unitario_max"),
	}.Filter()
}
