package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
	}
	return entry
}

func TestNewLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn)

	logger.Info("skipped")
	if buf.Len() != 0 {
		t.Fatalf("info record written at warn level: %s", buf.String())
	}

	logger.Warn("kept")
	if decodeLine(t, &buf)["msg"] != "kept" {
		t.Errorf("unexpected record: %s", buf.String())
	}
}

func TestLoggerAddsTraceIDs(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(trace.NewTracerProvider(trace.WithSyncer(exp)))
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)

	ctx, span := StartSpan(context.Background(), "write")
	defer span.End()

	logger.InfoContext(ctx, "record written", "entity", "roupas")

	entry := decodeLine(t, &buf)
	if entry["trace_id"] != TraceID(ctx) {
		t.Errorf("trace_id = %v, want %s", entry["trace_id"], TraceID(ctx))
	}
	if entry["span_id"] != SpanID(ctx) {
		t.Errorf("span_id = %v, want %s", entry["span_id"], SpanID(ctx))
	}
	if entry["entity"] != "roupas" {
		t.Errorf("entity = %v", entry["entity"])
	}
}

func TestLoggerOmitsMissingIDs(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, slog.LevelInfo).Info("plain")

	entry := decodeLine(t, &buf)
	for _, key := range []string{"trace_id", "span_id", "request_id"} {
		if _, ok := entry[key]; ok {
			t.Errorf("unexpected %s in %s", key, buf.String())
		}
	}
}

func TestLoggerAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)

	var captured string
	handler := middleware.RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		captured = middleware.GetReqID(r.Context())
		logger.InfoContext(r.Context(), "handled")
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/roupas", nil))

	if captured == "" {
		t.Fatal("request id middleware did not run")
	}
	if got := decodeLine(t, &buf)["request_id"]; got != captured {
		t.Errorf("request_id = %v, want %s", got, captured)
	}
}

func TestLoggerKeepsIDsOutsideGroups(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(trace.NewTracerProvider(trace.WithSyncer(exp)))
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo).
		With("service", "vestuario").
		WithGroup("query").
		With("table", "pedidos")

	ctx, span := StartSpan(context.Background(), "list")
	defer span.End()

	logger.InfoContext(ctx, "listed", "rows", 3)

	entry := decodeLine(t, &buf)
	if entry["trace_id"] == nil {
		t.Errorf("trace_id missing at top level: %s", buf.String())
	}
	if entry["service"] != "vestuario" {
		t.Errorf("service = %v", entry["service"])
	}
	group, ok := entry["query"].(map[string]any)
	if !ok {
		t.Fatalf("query group missing: %s", buf.String())
	}
	if group["table"] != "pedidos" || group["rows"] != float64(3) {
		t.Errorf("unexpected group contents: %v", group)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
