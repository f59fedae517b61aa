package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "DEBUG", "text", false)

	Info("user created", "user_id", 42, "email", "alice@example.com")

	out := buf.String()
	if !strings.Contains(out, "user created") {
		t.Errorf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, "user_id=42") {
		t.Errorf("expected user_id field, got %q", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "WARN", "text", false)

	Debug("hidden debug")
	Info("hidden info")
	Warn("visible warn")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected debug/info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "visible warn") {
		t.Errorf("expected warn to be logged, got %q", out)
	}
}

func TestInvalidLevelIgnored(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "text", false)

	SetLevel("VERBOSE") // no such level
	Info("still info")

	if !strings.Contains(buf.String(), "still info") {
		t.Error("expected level to remain INFO after invalid SetLevel")
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "json", false)

	Info("observer connected", "observer_id", "abc-123")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected valid JSON, got %q: %v", buf.String(), err)
	}
	if record["msg"] != "observer connected" {
		t.Errorf("unexpected msg: %v", record["msg"])
	}
	if record["observer_id"] != "abc-123" {
		t.Errorf("unexpected observer_id: %v", record["observer_id"])
	}
}

func TestContextFields(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "text", false)

	lc := NewLogContext("10.0.0.5").WithUser(7)
	lc.RequestID = "req-1"
	ctx := WithContext(context.Background(), lc)

	InfoCtx(ctx, "request handled")

	out := buf.String()
	for _, want := range []string{"client_ip=10.0.0.5", "user_id=7", "request_id=req-1"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in output, got %q", want, out)
		}
	}
}

func TestContextFieldsAbsent(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "text", false)

	InfoCtx(context.Background(), "no context")

	out := buf.String()
	if strings.Contains(out, "client_ip") || strings.Contains(out, "user_id") {
		t.Errorf("expected no context fields, got %q", out)
	}
}

func TestLogContextClone(t *testing.T) {
	lc := NewLogContext("10.0.0.5")
	clone := lc.WithTrace("trace-1", "span-1")

	if lc.TraceID != "" {
		t.Error("expected original to be unmodified")
	}
	if clone.TraceID != "trace-1" || clone.SpanID != "span-1" {
		t.Errorf("unexpected clone: %+v", clone)
	}
	if clone.ClientIP != "10.0.0.5" {
		t.Error("expected clone to keep client IP")
	}

	var nilLC *LogContext
	if nilLC.Clone() != nil {
		t.Error("expected nil clone for nil context")
	}
	if nilLC.DurationMs() != 0 {
		t.Error("expected zero duration for nil context")
	}
}
