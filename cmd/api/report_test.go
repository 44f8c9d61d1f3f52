package main

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/dejobratic/vestuario/internal/catalog/adapters/memory"
	catalogapp "github.com/dejobratic/vestuario/internal/catalog/app"
	"github.com/dejobratic/vestuario/internal/catalog/domain"
	"github.com/dejobratic/vestuario/internal/catalog/metrics"
	idemmemory "github.com/dejobratic/vestuario/internal/idempotency/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func ptr[V any](v V) *V { return &v }

func TestPrintReport(t *testing.T) {
	ctx := context.Background()

	catalogMetrics, err := metrics.NewMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	service := catalogapp.NewService(memory.NewStore(), idemmemory.NewStore(), slog.New(slog.DiscardHandler), catalogMetrics, catalogapp.Options{})

	supplier, err := service.Suppliers.Create(ctx, domain.SupplierInput{
		Name: ptr("Tecelagem Norte"), Phone: ptr("1"), Email: ptr("a@b.com"), City: ptr("Recife"),
	})
	require.NoError(t, err)
	_, err = service.Garments.Create(ctx, domain.GarmentInput{
		Name: ptr("Camisa"), Size: ptr("M"), Color: ptr("azul"), Price: ptr(decimal.NewFromInt(50)), SupplierID: &supplier.ID,
	})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, printReport(ctx, &out, service))

	text := out.String()
	assert.Contains(t, text, "Registros")
	assert.Contains(t, text, "Roupas por fornecedor")
	assert.Contains(t, text, "Tecelagem Norte")
	assert.Contains(t, text, "Pedidos por status")
}

func TestRootCommandTree(t *testing.T) {
	root := newRootCmd()

	for _, path := range [][]string{{"serve"}, {"report"}, {"migrate", "up"}, {"migrate", "down"}, {"migrate", "version"}} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestRootCommandServesByDefault(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")

	root := newRootCmd()
	root.SetArgs([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")})
	root.SetContext(context.Background())

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
	assert.Contains(t, err.Error(), "DB_DRIVER")
}
