package exporters

import (
	"context"
	"testing"
)

func TestNewTracingExporter(t *testing.T) {
	ctx := context.Background()

	for _, name := range []string{"none", "", "stdout"} {
		exp, err := NewTracingExporter(ctx, name)
		if err != nil {
			t.Errorf("NewTracingExporter(%q): %v", name, err)
		}
		if exp == nil {
			t.Errorf("NewTracingExporter(%q) returned nil exporter", name)
		}
	}

	if _, err := NewTracingExporter(ctx, "carrier-pigeon"); err == nil {
		t.Error("unknown exporter name must fail")
	}

	// OTLP without an endpoint configured must fail fast, not hang.
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")
	if _, err := NewTracingExporter(ctx, "otlp"); err == nil {
		t.Error("otlp without an endpoint must fail")
	}
}

func TestNewMetricsReader(t *testing.T) {
	ctx := context.Background()

	for _, name := range []string{"none", "", "stdout", "prometheus"} {
		reader, err := NewMetricsReader(ctx, name)
		if err != nil {
			t.Errorf("NewMetricsReader(%q): %v", name, err)
		}
		if reader == nil {
			t.Errorf("NewMetricsReader(%q) returned nil reader", name)
		}
	}

	if _, err := NewMetricsReader(ctx, "csv"); err == nil {
		t.Error("unknown reader name must fail")
	}

	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT", "")
	if _, err := NewMetricsReader(ctx, "otlp"); err == nil {
		t.Error("otlp without an endpoint must fail")
	}
}
