package http

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func TestMetricsRecordRequest(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	metrics, err := NewMetrics(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordRequest(ctx, "GET", "/roupas", 200, 0.5)
	metrics.RecordRequest(ctx, "GET", "/roupas/{id}", 404, 0.1)
	metrics.RecordRequest(ctx, "GET", "/roupas/{id}", 404, 0.2)

	data := collect(t, reader)

	requests, ok := data["http_requests_total"].(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, requests.DataPoints, 2)

	for _, dp := range requests.DataPoints {
		route, _ := dp.Attributes.Value(attribute.Key("route"))
		class, _ := dp.Attributes.Value(attribute.Key("status_class"))
		switch route.AsString() {
		case "/roupas":
			assert.Equal(t, int64(1), dp.Value)
			assert.Equal(t, "2xx", class.AsString())
		case "/roupas/{id}":
			assert.Equal(t, int64(2), dp.Value)
			assert.Equal(t, "4xx", class.AsString())
		default:
			t.Errorf("unexpected route %q", route.AsString())
		}
	}

	duration, ok := data["http_request_duration_seconds"].(metricdata.Histogram[float64])
	require.True(t, ok)
	assert.Len(t, duration.DataPoints, 2, "duration is keyed by method and route only")
}

func TestMetricsBeginTracksInFlight(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	metrics, err := NewMetrics(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	first := metrics.Begin(ctx)
	second := metrics.Begin(ctx)
	first("POST", "/pedidos", 201, 0.01)

	inFlight, ok := collect(t, reader)["http_requests_in_flight"].(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, inFlight.DataPoints, 1)
	assert.Equal(t, int64(1), inFlight.DataPoints[0].Value)

	second("POST", "/pedidos", 201, 0.01)
	inFlight = collect(t, reader)["http_requests_in_flight"].(metricdata.Sum[int64])
	assert.Equal(t, int64(0), inFlight.DataPoints[0].Value)
}
