package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the business instruments of the catalog.
type Metrics struct {
	recordsWritten metric.Int64Counter
	writeDuration  metric.Float64Histogram
	reportsServed  metric.Int64Counter
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.recordsWritten, err = meter.Int64Counter(
		"catalog_records_written_total",
		metric.WithDescription("Total number of create, update and delete operations"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create catalog_records_written_total counter: %w", err)
	}

	m.writeDuration, err = meter.Float64Histogram(
		"catalog_write_duration_seconds",
		metric.WithDescription("Duration of catalog write operations"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create catalog_write_duration histogram: %w", err)
	}

	m.reportsServed, err = meter.Int64Counter(
		"catalog_reports_served_total",
		metric.WithDescription("Total number of aggregated or joined views served"),
		metric.WithUnit("{report}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create catalog_reports_served_total counter: %w", err)
	}

	return m, nil
}

func (m *Metrics) RecordWrite(ctx context.Context, entity, operation string, success bool, durationSeconds float64) {
	status := "success"
	if !success {
		status = "error"
	}
	m.recordsWritten.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity", entity),
		attribute.String("operation", operation),
		attribute.String("status", status),
	))
	m.writeDuration.Record(ctx, durationSeconds, metric.WithAttributes(
		attribute.String("entity", entity),
		attribute.String("operation", operation),
	))
}

func (m *Metrics) RecordReport(ctx context.Context, report string) {
	m.reportsServed.Add(ctx, 1, metric.WithAttributes(attribute.String("report", report)))
}
