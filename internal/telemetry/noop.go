package telemetry

import (
	"context"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// discard drops spans and metrics. It backs both exporters when no OTLP
// endpoint is configured.
type discard struct{}

func (discard) ExportSpans(context.Context, []sdktrace.ReadOnlySpan) error { return nil }

func (discard) Export(context.Context, *metricdata.ResourceMetrics) error { return nil }

func (discard) Temporality(kind sdkmetric.InstrumentKind) metricdata.Temporality {
	return sdkmetric.DefaultTemporalitySelector(kind)
}

func (discard) Aggregation(kind sdkmetric.InstrumentKind) sdkmetric.Aggregation {
	return sdkmetric.DefaultAggregationSelector(kind)
}

func (discard) ForceFlush(context.Context) error { return nil }

func (discard) Shutdown(context.Context) error { return nil }

func NewNoopTraceExporter() sdktrace.SpanExporter { return discard{} }

func NewNoopMetricExporter() sdkmetric.Exporter { return discard{} }
