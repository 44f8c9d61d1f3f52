package domain

import "github.com/shopspring/decimal"

// Order is a purchase placed by a customer (pedido). Status is free text
// ("aberto", "entregue", "cancelado", ...); the store does not constrain it.
type Order struct {
	ID         int64           `json:"id"`
	Date       Date            `json:"data"`
	CustomerID int64           `json:"cliente_id"`
	Status     string          `json:"status"`
	Total      decimal.Decimal `json:"valor_total"`
}

type OrderInput struct {
	Date       *Date            `json:"data" validate:"required"`
	CustomerID *int64           `json:"cliente_id" validate:"required"`
	Status     *string          `json:"status" validate:"required"`
	Total      *decimal.Decimal `json:"valor_total" validate:"required,gte=0"`
}

func (in OrderInput) Entity() Order {
	return Order{
		Date:       *in.Date,
		CustomerID: *in.CustomerID,
		Status:     *in.Status,
		Total:      *in.Total,
	}
}

type OrderPatch struct {
	Date       *Date            `json:"data"`
	CustomerID *int64           `json:"cliente_id"`
	Status     *string          `json:"status"`
	Total      *decimal.Decimal `json:"valor_total" validate:"omitempty,gte=0"`
}

func (p OrderPatch) Apply(o *Order) {
	assign(&o.Date, p.Date)
	assign(&o.CustomerID, p.CustomerID)
	assign(&o.Status, p.Status)
	assign(&o.Total, p.Total)
}

var OrderSchema = Schema[Order]{
	Table:   "pedidos",
	Columns: []string{"data", "cliente_id", "status", "valor_total"},
	Key:     func(o *Order) *int64 { return &o.ID },
	Fields: func(o *Order) []any {
		return []any{&o.Date, &o.CustomerID, &o.Status, &o.Total}
	},
	Parents:  []Reference{{Table: "clientes", Column: "cliente_id"}},
	Children: []Reference{{Table: "itens_pedido", Column: "pedido_id"}},
	NotFound: "Pedido não encontrado.",
	Plural:   "os pedidos",
}
