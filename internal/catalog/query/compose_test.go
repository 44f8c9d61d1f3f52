package query_test

import (
	"testing"
	"time"

	"github.com/dejobratic/vestuario/internal/catalog/domain"
	"github.com/dejobratic/vestuario/internal/catalog/query"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[V any](v V) *V { return &v }

func TestCompose(t *testing.T) {
	t.Run("absent terms produce an empty filter", func(t *testing.T) {
		var name, color *string
		var minPrice *decimal.Decimal
		var supplier *int64

		filter := query.Compose(
			query.Contains("nome", name),
			query.Contains("cor", color),
			query.Min("preco", minPrice),
			query.Equals("fornecedor_id", supplier),
		)

		assert.True(t, filter.IsEmpty())
		assert.False(t, filter.Unsatisfiable)
	})

	t.Run("empty strings are treated as absent", func(t *testing.T) {
		filter := query.Compose(
			query.Contains("nome", ptr("")),
			query.Equals("tamanho", ptr("")),
		)

		assert.True(t, filter.IsEmpty())
	})

	t.Run("numeric zero is applied", func(t *testing.T) {
		filter := query.Compose(
			query.Min("preco", ptr(decimal.Zero)),
			query.Max("quantidade", ptr(int64(0))),
			query.Equals("fornecedor_id", ptr(int64(0))),
		)

		require.Len(t, filter.Predicates, 3)
		assert.Equal(t, query.OpGTE, filter.Predicates[0].Op)
		assert.True(t, decimal.Zero.Equal(filter.Predicates[0].Value.(decimal.Decimal)))
		assert.Equal(t, int64(0), filter.Predicates[1].Value)
		assert.Equal(t, int64(0), filter.Predicates[2].Value)
	})

	t.Run("keeps declaration order", func(t *testing.T) {
		filter := query.Compose(
			query.Contains("nome", ptr("camisa")),
			query.Equals("tamanho", ptr("G")),
			query.Max("preco", ptr(decimal.NewFromInt(100))),
		)

		require.Len(t, filter.Predicates, 3)
		assert.Equal(t, []string{"nome", "tamanho", "preco"}, []string{
			filter.Predicates[0].Column,
			filter.Predicates[1].Column,
			filter.Predicates[2].Column,
		})
		assert.Equal(t, query.OpContains, filter.Predicates[0].Op)
		assert.Equal(t, query.OpEquals, filter.Predicates[1].Op)
		assert.Equal(t, query.OpLTE, filter.Predicates[2].Op)
	})

	t.Run("min greater than max is unsatisfiable, not an error", func(t *testing.T) {
		filter := query.Compose(
			query.Min("preco", ptr(decimal.NewFromInt(50))),
			query.Max("preco", ptr(decimal.NewFromInt(10))),
		)

		assert.True(t, filter.Unsatisfiable)
		assert.False(t, filter.IsEmpty())
	})

	t.Run("equal bounds are satisfiable", func(t *testing.T) {
		day := domain.NewDate(2024, time.May, 1)
		filter := query.Compose(
			query.Min("data", &day),
			query.Max("data", &day),
		)

		assert.False(t, filter.Unsatisfiable)
	})

	t.Run("bounds on different columns never contradict", func(t *testing.T) {
		filter := query.Compose(
			query.Min("quantidade", ptr(int64(10))),
			query.Max("preco_unitario", ptr(decimal.NewFromInt(1))),
		)

		assert.False(t, filter.Unsatisfiable)
	})

	t.Run("empty id set matches nothing", func(t *testing.T) {
		assert.True(t, query.Compose(query.In("pedido_id", []int64{})).Unsatisfiable)
		assert.True(t, query.Compose(query.In("pedido_id", nil)).IsEmpty())
	})
}

func TestFilterWhere(t *testing.T) {
	base := query.Compose(query.Contains("nome", ptr("x")))
	extended := base.Where(query.Predicate{Column: "cidade", Op: query.OpEquals, Value: "Recife"})

	assert.Len(t, base.Predicates, 1)
	assert.Len(t, extended.Predicates, 2)
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input   string
		want    query.Direction
		wantErr bool
	}{
		{"asc", query.Asc, false},
		{"desc", query.Desc, false},
		{"ASC", "", true},
		{"", "", true},
		{"random", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := query.ParseDirection(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, query.ErrInvalidDirection)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompare(t *testing.T) {
	cmp, ok := query.Compare(decimal.RequireFromString("1.50"), decimal.RequireFromString("1.5"))
	assert.True(t, ok)
	assert.Equal(t, 0, cmp)

	cmp, ok = query.Compare(domain.NewDate(2020, 1, 1), domain.NewDate(2021, 1, 1))
	assert.True(t, ok)
	assert.Equal(t, -1, cmp)

	_, ok = query.Compare(int64(1), "1")
	assert.False(t, ok)
}
