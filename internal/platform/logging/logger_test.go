package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{"": LevelInfo, "DEBUG": LevelDebug, "warning": LevelWarn, "error": LevelError}
	for raw, want := range tests {
		got, err := ParseLevel(raw)
		if err != nil {
			t.Fatalf("ParseLevel(%q) error: %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", raw, got, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestLogger_KeyValueFieldsAndTrace(t *testing.T) {
	core, logs := observer.New(LevelDebug)
	logger := FromZap(zap.New(core)).With("component", "test")

	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.WarnContext(ctx, "payment append failed", "team_id", "t1", "error", errors.New("boom"), "dangling")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	got := entries[0].ContextMap()
	if got["component"] != "test" || got["team_id"] != "t1" {
		t.Fatalf("missing fields: %+v", got)
	}
	if got["error"] != "boom" {
		t.Fatalf("expected error field, got %+v", got["error"])
	}
	if got["trace_id"] != traceID.String() || got["span_id"] != spanID.String() {
		t.Fatalf("missing trace fields: %+v", got)
	}
	if _, ok := got["dangling"]; !ok {
		t.Fatalf("expected dangling key to be kept")
	}
}

func TestNew_WritesJSONWithServiceFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Service: "league-console", Env: "dev", Output: &buf})
	logger.Debug("hidden")
	logger.Info("category created", "category_id", "c1")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d: %q", len(lines), buf.String())
	}
	var payload map[string]any
	if err := sonic.UnmarshalString(lines[0], &payload); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if payload["service"] != "league-console" || payload["category_id"] != "c1" || payload["msg"] != "category created" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	logger.With("k", "v").Error("still no panic")
}
