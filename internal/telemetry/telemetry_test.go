package telemetry

import (
	"context"
	"os"
	"testing"

	"github.com/samdwyer/deepdelve/internal/config"
)

func TestSetupDisabledIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.TelemetryConfig{Enabled: false})
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() error = %v", err)
	}

	_, span := Tracer("test").Start(context.Background(), "noop")
	if span.SpanContext().IsValid() {
		t.Error("disabled telemetry produced a recording span")
	}
	span.End()
}

func TestApplyEnvAppendsDataset(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	applyEnv(config.TelemetryConfig{
		Endpoint: "https://example.invalid",
		Headers:  "x-honeycomb-team=abc",
		Dataset:  "deepdelve",
	})

	if got := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); got != "https://example.invalid" {
		t.Errorf("endpoint = %q", got)
	}
	want := "x-honeycomb-team=abc,x-honeycomb-dataset=deepdelve"
	if got := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); got != want {
		t.Errorf("headers = %q, want %q", got, want)
	}
}

func TestApplyEnvUsesAPIKey(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")
	t.Setenv("HONEYCOMB_API_KEY", "secret")

	applyEnv(config.TelemetryConfig{Dataset: "deepdelve"})

	want := "x-honeycomb-team=secret,x-honeycomb-dataset=deepdelve"
	if got := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); got != want {
		t.Errorf("headers = %q, want %q", got, want)
	}
}
