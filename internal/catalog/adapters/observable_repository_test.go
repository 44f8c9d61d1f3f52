package adapters_test

import (
	"context"
	"testing"

	"github.com/dejobratic/vestuario/internal/catalog/adapters"
	"github.com/dejobratic/vestuario/internal/catalog/adapters/memory"
	"github.com/dejobratic/vestuario/internal/catalog/domain"
	"github.com/dejobratic/vestuario/internal/catalog/ports"
	"github.com/dejobratic/vestuario/internal/catalog/query"
	"github.com/dejobratic/vestuario/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setup(t *testing.T) (*adapters.ObservableStore, *tracetest.SpanRecorder, *sdkmetric.ManualReader) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := database.NewMetrics(mp.Meter("test"))
	require.NoError(t, err)

	return adapters.NewObservableStore(memory.NewStore(), metrics), recorder, reader
}

func TestObservableRepositoryRecordsSpans(t *testing.T) {
	store, recorder, _ := setup(t)
	ctx := context.Background()

	created, err := store.Suppliers().Create(ctx, domain.Supplier{Name: "Malharia"})
	require.NoError(t, err)

	_, err = store.Suppliers().GetByID(ctx, created.ID+100)
	require.ErrorIs(t, err, ports.ErrNotFound)

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, "Repository.create", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)

	assert.Equal(t, "Repository.get_by_id", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)

	var table string
	for _, attr := range spans[0].Attributes() {
		if attr.Key == "db.table" {
			table = attr.Value.AsString()
		}
	}
	assert.Equal(t, "fornecedores", table)
}

func TestObservableRepositoryRecordsQueryDuration(t *testing.T) {
	store, _, reader := setup(t)
	ctx := context.Background()

	_, err := store.Garments().List(ctx, query.Query{Sort: &query.Sort{Column: "preco", Direction: query.Desc}})
	require.NoError(t, err)
	_, err = store.Garments().Count(ctx, query.Filter{})
	require.NoError(t, err)
	_, err = store.Reports().OrderCountByStatus(ctx)
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	var points int
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == "db_query_duration_seconds" {
				points = len(m.Data.(metricdata.Histogram[float64]).DataPoints)
			}
		}
	}
	assert.Equal(t, 3, points, "one series per table and operation")
}

func TestObservableStoreDelegates(t *testing.T) {
	store, _, _ := setup(t)
	ctx := context.Background()

	assert.NoError(t, store.Ping(ctx))

	_, err := store.Garments().Create(ctx, domain.Garment{Name: "Camisa", SupplierID: 5})
	assert.ErrorIs(t, err, ports.ErrValidation)
}
