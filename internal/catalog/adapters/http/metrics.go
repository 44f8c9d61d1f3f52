package http

import (
	"context"
	"errors"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the request instruments. Routes are chi patterns, so path
// ids never become label values.
type Metrics struct {
	duration metric.Float64Histogram
	requests metric.Int64Counter
	inFlight metric.Int64UpDownCounter
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	duration, durErr := meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("Time spent serving a request"),
		metric.WithUnit("s"),
	)
	requests, reqErr := meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Requests served, by route and status"),
		metric.WithUnit("{request}"),
	)
	inFlight, flightErr := meter.Int64UpDownCounter(
		"http_requests_in_flight",
		metric.WithDescription("Requests currently being served"),
		metric.WithUnit("{request}"),
	)
	if err := errors.Join(durErr, reqErr, flightErr); err != nil {
		return nil, err
	}

	return &Metrics{duration: duration, requests: requests, inFlight: inFlight}, nil
}

// Begin marks a request as in flight. The returned func records the outcome
// and must be called exactly once.
func (m *Metrics) Begin(ctx context.Context) func(method, route string, statusCode int, durationSeconds float64) {
	m.inFlight.Add(ctx, 1)
	return func(method, route string, statusCode int, durationSeconds float64) {
		m.inFlight.Add(ctx, -1)
		m.RecordRequest(ctx, method, route, statusCode, durationSeconds)
	}
}

func (m *Metrics) RecordRequest(ctx context.Context, method, route string, statusCode int, durationSeconds float64) {
	endpoint := []attribute.KeyValue{
		attribute.String("method", method),
		attribute.String("route", route),
	}
	m.duration.Record(ctx, durationSeconds, metric.WithAttributes(endpoint...))

	m.requests.Add(ctx, 1, metric.WithAttributes(append(endpoint,
		attribute.Int("status_code", statusCode),
		attribute.String("status_class", strconv.Itoa(statusCode/100)+"xx"),
	)...))
}
