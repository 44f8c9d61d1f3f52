package domain

// Customer buys from the store (cliente).
type Customer struct {
	ID        int64  `json:"id"`
	Name      string `json:"nome"`
	CPF       string `json:"cpf"`
	Phone     string `json:"telefone"`
	BirthDate Date   `json:"data_nascimento"`
}

type CustomerInput struct {
	Name      *string `json:"nome" validate:"required"`
	CPF       *string `json:"cpf" validate:"required"`
	Phone     *string `json:"telefone" validate:"required"`
	BirthDate *Date   `json:"data_nascimento" validate:"required"`
}

func (in CustomerInput) Entity() Customer {
	return Customer{
		Name:      *in.Name,
		CPF:       *in.CPF,
		Phone:     *in.Phone,
		BirthDate: *in.BirthDate,
	}
}

type CustomerPatch struct {
	Name      *string `json:"nome"`
	CPF       *string `json:"cpf"`
	Phone     *string `json:"telefone"`
	BirthDate *Date   `json:"data_nascimento"`
}

func (p CustomerPatch) Apply(c *Customer) {
	assign(&c.Name, p.Name)
	assign(&c.CPF, p.CPF)
	assign(&c.Phone, p.Phone)
	assign(&c.BirthDate, p.BirthDate)
}

var CustomerSchema = Schema[Customer]{
	Table:   "clientes",
	Columns: []string{"nome", "cpf", "telefone", "data_nascimento"},
	Key:     func(c *Customer) *int64 { return &c.ID },
	Fields: func(c *Customer) []any {
		return []any{&c.Name, &c.CPF, &c.Phone, &c.BirthDate}
	},
	Children: []Reference{{Table: "pedidos", Column: "cliente_id"}},
	NotFound: "Cliente não encontrado.",
	Plural:   "os clientes",
}
