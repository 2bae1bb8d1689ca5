package observability

import (
	"testing"

	otellog "go.opentelemetry.io/otel/log"
)

func TestShouldSkipUptraceLog(t *testing.T) {
	if !shouldSkipUptraceLog("http request", []any{"path", "/healthz"}) {
		t.Fatalf("expected health check log to be skipped")
	}
	if shouldSkipUptraceLog("http request", []any{"path", "/v1/auction"}) {
		t.Fatalf("did not expect non-health log to be skipped")
	}
	if shouldSkipUptraceLog("auction settled", []any{"path", "/healthz"}) {
		t.Fatalf("did not expect non-access-log event to be skipped")
	}
}

func TestBuildOTelLogAttributes(t *testing.T) {
	attrs := buildOTelLogAttributes([]any{"playerId", "plr-pl-01", "amount", 650, "leader"})
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "playerId" || attrs[0].Value.AsString() != "plr-pl-01" {
		t.Fatalf("unexpected playerId attribute")
	}
	if attrs[1].Key != "amount" || attrs[1].Value.AsInt64() != 650 {
		t.Fatalf("unexpected amount attribute")
	}
	if attrs[2].Key != "leader" || attrs[2].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected leader attribute")
	}
}

func TestToOTelLogValue_Fallback(t *testing.T) {
	v := toOTelLogValue(struct{ Overs string }{Overs: "3.2"})
	if v.Kind() != otellog.KindString {
		t.Fatalf("expected string fallback, got %s", v.Kind())
	}
}
