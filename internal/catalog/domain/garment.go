package domain

import "github.com/shopspring/decimal"

// Garment is an item of clothing offered by a supplier (roupa).
type Garment struct {
	ID         int64           `json:"id"`
	Name       string          `json:"nome"`
	Size       string          `json:"tamanho"`
	Color      string          `json:"cor"`
	Price      decimal.Decimal `json:"preco"`
	SupplierID int64           `json:"fornecedor_id"`
}

// GarmentInput is the create payload. Pointer fields tell a missing value from a zero one.
type GarmentInput struct {
	Name       *string          `json:"nome" validate:"required"`
	Size       *string          `json:"tamanho" validate:"required"`
	Color      *string          `json:"cor" validate:"required"`
	Price      *decimal.Decimal `json:"preco" validate:"required,gte=0"`
	SupplierID *int64           `json:"fornecedor_id" validate:"required"`
}

func (in GarmentInput) Entity() Garment {
	return Garment{
		Name:       *in.Name,
		Size:       *in.Size,
		Color:      *in.Color,
		Price:      *in.Price,
		SupplierID: *in.SupplierID,
	}
}

// GarmentPatch overwrites the supplied fields only.
type GarmentPatch struct {
	Name       *string          `json:"nome"`
	Size       *string          `json:"tamanho"`
	Color      *string          `json:"cor"`
	Price      *decimal.Decimal `json:"preco" validate:"omitempty,gte=0"`
	SupplierID *int64           `json:"fornecedor_id"`
}

func (p GarmentPatch) Apply(g *Garment) {
	assign(&g.Name, p.Name)
	assign(&g.Size, p.Size)
	assign(&g.Color, p.Color)
	assign(&g.Price, p.Price)
	assign(&g.SupplierID, p.SupplierID)
}

var GarmentSchema = Schema[Garment]{
	Table:   "roupas",
	Columns: []string{"nome", "tamanho", "cor", "preco", "fornecedor_id"},
	Key:     func(g *Garment) *int64 { return &g.ID },
	Fields: func(g *Garment) []any {
		return []any{&g.Name, &g.Size, &g.Color, &g.Price, &g.SupplierID}
	},
	Parents:  []Reference{{Table: "fornecedores", Column: "fornecedor_id"}},
	Children: []Reference{{Table: "itens_pedido", Column: "roupa_id"}},
	NotFound: "Roupa não encontrada.",
	Plural:   "as roupas",
}

func assign[V any](dst *V, src *V) {
	if src != nil {
		*dst = *src
	}
}
