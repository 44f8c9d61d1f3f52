package domain

// Supplier provides garments to the store (fornecedor).
type Supplier struct {
	ID    int64  `json:"id"`
	Name  string `json:"nome"`
	Phone string `json:"telefone"`
	Email string `json:"email"`
	City  string `json:"cidade"`
}

type SupplierInput struct {
	Name  *string `json:"nome" validate:"required"`
	Phone *string `json:"telefone" validate:"required"`
	Email *string `json:"email" validate:"required"`
	City  *string `json:"cidade" validate:"required"`
}

func (in SupplierInput) Entity() Supplier {
	return Supplier{
		Name:  *in.Name,
		Phone: *in.Phone,
		Email: *in.Email,
		City:  *in.City,
	}
}

type SupplierPatch struct {
	Name  *string `json:"nome"`
	Phone *string `json:"telefone"`
	Email *string `json:"email"`
	City  *string `json:"cidade"`
}

func (p SupplierPatch) Apply(s *Supplier) {
	assign(&s.Name, p.Name)
	assign(&s.Phone, p.Phone)
	assign(&s.Email, p.Email)
	assign(&s.City, p.City)
}

var SupplierSchema = Schema[Supplier]{
	Table:   "fornecedores",
	Columns: []string{"nome", "telefone", "email", "cidade"},
	Key:     func(s *Supplier) *int64 { return &s.ID },
	Fields: func(s *Supplier) []any {
		return []any{&s.Name, &s.Phone, &s.Email, &s.City}
	},
	Children: []Reference{{Table: "roupas", Column: "fornecedor_id"}},
	NotFound: "Fornecedor não encontrado.",
	Plural:   "os fornecedores",
}
