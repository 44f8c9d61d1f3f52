package domain

import "github.com/shopspring/decimal"

// LineItem is one garment line of an order (itens_pedido).
type LineItem struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"pedido_id"`
	GarmentID int64           `json:"roupa_id"`
	Quantity  int64           `json:"quantidade"`
	UnitPrice decimal.Decimal `json:"preco_unitario"`
}

type LineItemInput struct {
	OrderID   *int64           `json:"pedido_id" validate:"required"`
	GarmentID *int64           `json:"roupa_id" validate:"required"`
	Quantity  *int64           `json:"quantidade" validate:"required,gt=0"`
	UnitPrice *decimal.Decimal `json:"preco_unitario" validate:"required,gte=0"`
}

func (in LineItemInput) Entity() LineItem {
	return LineItem{
		OrderID:   *in.OrderID,
		GarmentID: *in.GarmentID,
		Quantity:  *in.Quantity,
		UnitPrice: *in.UnitPrice,
	}
}

type LineItemPatch struct {
	OrderID   *int64           `json:"pedido_id"`
	GarmentID *int64           `json:"roupa_id"`
	Quantity  *int64           `json:"quantidade" validate:"omitempty,gt=0"`
	UnitPrice *decimal.Decimal `json:"preco_unitario" validate:"omitempty,gte=0"`
}

func (p LineItemPatch) Apply(li *LineItem) {
	assign(&li.OrderID, p.OrderID)
	assign(&li.GarmentID, p.GarmentID)
	assign(&li.Quantity, p.Quantity)
	assign(&li.UnitPrice, p.UnitPrice)
}

var LineItemSchema = Schema[LineItem]{
	Table:   "itens_pedido",
	Columns: []string{"pedido_id", "roupa_id", "quantidade", "preco_unitario"},
	Key:     func(li *LineItem) *int64 { return &li.ID },
	Fields: func(li *LineItem) []any {
		return []any{&li.OrderID, &li.GarmentID, &li.Quantity, &li.UnitPrice}
	},
	Parents: []Reference{
		{Table: "pedidos", Column: "pedido_id"},
		{Table: "roupas", Column: "roupa_id"},
	},
	NotFound: "Item do pedido não encontrado.",
	Plural:   "os itens do pedido",
}
