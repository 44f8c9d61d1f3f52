package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dejobratic/vestuario/internal/catalog/adapters/memory"
	"github.com/dejobratic/vestuario/internal/catalog/domain"
	"github.com/dejobratic/vestuario/internal/catalog/ports"
	"github.com/dejobratic/vestuario/internal/catalog/query"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[V any](v V) *V { return &v }

func newSupplier(t *testing.T, store *memory.Store, name string) *domain.Supplier {
	t.Helper()
	s, err := store.Suppliers().Create(context.Background(), domain.Supplier{Name: name, City: "Recife"})
	require.NoError(t, err)
	return s
}

func TestRepositoryCreateAssignsIDs(t *testing.T) {
	store := memory.NewStore()

	first := newSupplier(t, store, "A")
	second := newSupplier(t, store, "B")

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
}

func TestRepositoryReturnsCopies(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	created := newSupplier(t, store, "Original")

	created.Name = "mutated"

	got, err := store.Suppliers().GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", got.Name)
}

func TestRepositoryGetByID_NotFound(t *testing.T) {
	store := memory.NewStore()

	_, err := store.Garments().GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ports.ErrNotFound)
	assert.Equal(t, "Roupa não encontrada.", ports.ClientMessage(err))
}

func TestRepositoryRejectsMissingParent(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	_, err := store.Garments().Create(ctx, domain.Garment{Name: "Camisa", SupplierID: 9})
	require.ErrorIs(t, err, ports.ErrValidation)
	assert.Contains(t, ports.ClientMessage(err), "fornecedor_id")

	count, err := store.Garments().Count(ctx, query.Filter{})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRepositoryUpdate(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	s := newSupplier(t, store, "Antigo")

	s.Name = "Novo"
	updated, err := store.Suppliers().Update(ctx, *s)
	require.NoError(t, err)
	assert.Equal(t, "Novo", updated.Name)

	_, err = store.Suppliers().Update(ctx, domain.Supplier{ID: 77})
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepositoryDeleteRestrict(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	s := newSupplier(t, store, "Malharia")

	g, err := store.Garments().Create(ctx, domain.Garment{Name: "Camisa", SupplierID: s.ID})
	require.NoError(t, err)

	_, err = store.Suppliers().Delete(ctx, s.ID)
	require.ErrorIs(t, err, ports.ErrConflict)
	assert.Contains(t, ports.ClientMessage(err), "roupas")

	_, err = store.Suppliers().GetByID(ctx, s.ID)
	require.NoError(t, err, "restricted delete must not remove the row")

	deleted, err := store.Garments().Delete(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "Camisa", deleted.Name)

	_, err = store.Suppliers().Delete(ctx, s.ID)
	assert.NoError(t, err)
}

func TestRepositoryList(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	s := newSupplier(t, store, "Malharia")

	for _, g := range []domain.Garment{
		{Name: "Camisa Azul", Size: "M", Color: "Azul", Price: decimal.Zero},
		{Name: "Calça", Size: "G", Color: "preta", Price: decimal.NewFromInt(120)},
		{Name: "camisa verde", Size: "M", Color: "verde", Price: decimal.NewFromInt(60)},
		{Name: "Boné", Size: "U", Color: "azul-marinho", Price: decimal.NewFromInt(60)},
	} {
		g.SupplierID = s.ID
		_, err := store.Garments().Create(ctx, g)
		require.NoError(t, err)
	}

	names := func(gs []domain.Garment) []string {
		out := make([]string, len(gs))
		for i, g := range gs {
			out[i] = g.Name
		}
		return out
	}

	t.Run("empty filter lists everything in id order", func(t *testing.T) {
		all, err := store.Garments().List(ctx, query.Query{})
		require.NoError(t, err)
		assert.Equal(t, []string{"Camisa Azul", "Calça", "camisa verde", "Boné"}, names(all))
	})

	t.Run("substring match ignores case", func(t *testing.T) {
		result, err := store.Garments().List(ctx, query.Query{Filter: query.Compose(query.Contains("nome", ptr("CAMISA")))})
		require.NoError(t, err)
		assert.Equal(t, []string{"Camisa Azul", "camisa verde"}, names(result))
	})

	t.Run("zero lower bound includes zero-priced rows", func(t *testing.T) {
		count, err := store.Garments().Count(ctx, query.Compose(query.Min("preco", ptr(decimal.Zero))))
		require.NoError(t, err)
		assert.Equal(t, int64(4), count)
	})

	t.Run("conjunction of predicates", func(t *testing.T) {
		result, err := store.Garments().List(ctx, query.Query{Filter: query.Compose(
			query.Contains("cor", ptr("azul")),
			query.Min("preco", ptr(decimal.NewFromInt(1))),
		)})
		require.NoError(t, err)
		assert.Equal(t, []string{"Boné"}, names(result))
	})

	t.Run("unsatisfiable filter is empty", func(t *testing.T) {
		result, err := store.Garments().List(ctx, query.Query{Filter: query.Compose(
			query.Min("preco", ptr(decimal.NewFromInt(100))),
			query.Max("preco", ptr(decimal.NewFromInt(10))),
		)})
		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
	})

	t.Run("sort breaks ties by id", func(t *testing.T) {
		asc, err := store.Garments().List(ctx, query.Query{Sort: &query.Sort{Column: "preco", Direction: query.Asc}})
		require.NoError(t, err)
		assert.Equal(t, []string{"Camisa Azul", "camisa verde", "Boné", "Calça"}, names(asc))

		desc, err := store.Garments().List(ctx, query.Query{Sort: &query.Sort{Column: "preco", Direction: query.Desc}})
		require.NoError(t, err)
		assert.Equal(t, []string{"Calça", "Boné", "camisa verde", "Camisa Azul"}, names(desc))
	})

	t.Run("pages past the end are empty", func(t *testing.T) {
		page, err := store.Garments().List(ctx, query.Query{Page: &query.Page{Limit: 3, Offset: 3}})
		require.NoError(t, err)
		assert.Equal(t, []string{"Boné"}, names(page))

		beyond, err := store.Garments().List(ctx, query.Query{Page: &query.Page{Limit: 3, Offset: 30}})
		require.NoError(t, err)
		assert.Empty(t, beyond)

		negative, err := store.Garments().List(ctx, query.Query{Page: &query.Page{Limit: 2, Offset: -5}})
		require.NoError(t, err)
		assert.Len(t, negative, 2)
	})

	t.Run("unknown column is an error", func(t *testing.T) {
		_, err := store.Garments().List(ctx, query.Query{Sort: &query.Sort{Column: "senha", Direction: query.Asc}})
		assert.Error(t, err)
	})
}

func TestReports(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	a := newSupplier(t, store, "Zeta")
	b := newSupplier(t, store, "Alfa")
	newSupplier(t, store, "Sem roupas")
	for _, sid := range []int64{a.ID, a.ID, b.ID} {
		_, err := store.Garments().Create(ctx, domain.Garment{Name: "x", SupplierID: sid})
		require.NoError(t, err)
	}

	c, err := store.Customers().Create(ctx, domain.Customer{Name: "Bia", BirthDate: domain.NewDate(2000, time.May, 5)})
	require.NoError(t, err)
	for _, status := range []string{"entregue", "aberto", "entregue"} {
		_, err := store.Orders().Create(ctx, domain.Order{CustomerID: c.ID, Status: status, Date: domain.NewDate(2024, 1, 1)})
		require.NoError(t, err)
	}

	bySupplier, err := store.Reports().GarmentCountBySupplier(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alfa", "Zeta"}, []string{bySupplier[0].Key, bySupplier[1].Key})
	assert.Equal(t, int64(2), bySupplier[1].Count)

	byStatus, err := store.Reports().OrderCountByStatus(ctx)
	require.NoError(t, err)
	require.Len(t, byStatus, 2)
	assert.Equal(t, "aberto", byStatus[0].Key)
	assert.Equal(t, int64(2), byStatus[1].Count)

	orders, err := store.Reports().OrdersWithCustomer(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, int64(1), orders[0].OrderID)
	assert.Equal(t, "Bia", orders[0].CustomerName)

	joined, err := store.Reports().GarmentsWithSupplier(ctx)
	require.NoError(t, err)
	require.Len(t, joined, 3)
	assert.Equal(t, "Zeta", joined[0].Supplier)
}

func TestRepositoryConcurrentCreates(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Suppliers().Create(ctx, domain.Supplier{Name: "s"})
		}()
	}
	wg.Wait()

	count, err := store.Suppliers().Count(ctx, query.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(50), count)
}
