package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestNewInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "invalid-level", Format: FormatJSON}, "test", &buf)
	l.Debug("hidden")
	l.Info("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected info level, got %q", buf.String())
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("APICLIENT_LOG_LEVEL", "debug")
	t.Setenv("APICLIENT_LOG_FORMAT", "json")

	l := NewFromEnv("env-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if got := l.Zerolog().GetLevel().String(); got != "debug" {
		t.Errorf("expected debug level, got %s", got)
	}
}

func TestJSONOutputCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "debug", Format: FormatJSON}, "petstore", &buf)

	l.WithComponent("dispatch").Debug("request settled", Fields(FieldStatus, 200, FieldMethod, "GET"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "request settled" {
		t.Errorf("unexpected message: %v", entry["message"])
	}
	if entry[FieldComponent] != "dispatch" {
		t.Errorf("expected component=dispatch, got %v", entry[FieldComponent])
	}
	if entry[FieldStatus] != float64(200) {
		t.Errorf("expected status=200, got %v", entry[FieldStatus])
	}
	if entry[FieldService] != "petstore" {
		t.Errorf("expected service=petstore, got %v", entry[FieldService])
	}
}

func TestWithFieldsAndError(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: FormatJSON}, "", &buf)

	l.WithFields(map[string]any{FieldRequestID: "r-1"}).WithError(fmt.Errorf("refused")).Error("call failed")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry[FieldRequestID] != "r-1" || entry[FieldError] != "refused" {
		t.Errorf("unexpected entry %v", entry)
	}
	if _, ok := entry[FieldService]; ok {
		t.Error("service must be omitted when empty")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "warn", Format: FormatJSON}, "svc", &buf)
	l.Debug("hidden")
	l.Info("hidden", Fields("k", "v"))
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}
	l.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected warn line, got %q", buf.String())
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	// Must not panic and must not write anywhere.
	l.WithComponent("x").WithError(fmt.Errorf("boom")).Error("dropped", Fields("k", 1))
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: FormatText}, "petstore", &buf)
	l.Info("hello", Fields(FieldStatus, 201))

	out := buf.String()
	if !strings.Contains(out, "INFO") || !strings.Contains(out, "hello") {
		t.Errorf("expected level and message, got %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("text format must not be colored, got %q", out)
	}
	if !strings.Contains(out, "status=") {
		t.Errorf("expected fields, got %q", out)
	}
}

func TestGlobalLogger(t *testing.T) {
	prev := GetGlobalLogger()
	defer SetGlobalLogger(prev)

	var buf bytes.Buffer
	SetGlobalLogger(NewWithWriter(&Config{Level: "debug", Format: FormatJSON}, "", &buf))

	Debug("debug msg")
	Info("info msg")
	Warn("warn msg")
	Error("error msg")
	WithComponent("c").Info("tagged")

	out := buf.String()
	for _, msg := range []string{"debug msg", "info msg", "warn msg", "error msg", "tagged"} {
		if !strings.Contains(out, msg) {
			t.Errorf("expected %q in global output", msg)
		}
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" || cfg.Format != FormatConsole || cfg.Output != "stderr" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if !cfg.Timestamp {
		t.Error("expected Timestamp to be true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json"}, false},
		{"valid console", Config{Level: "debug", Format: "console", Output: "stdout"}, false},
		{"disabled", Config{Level: "disabled", Format: "text"}, false},
		{"empty level", Config{Format: "json"}, true},
		{"invalid level", Config{Level: "bad", Format: "json"}, true},
		{"invalid format", Config{Level: "info", Format: "xml"}, true},
		{"invalid output", Config{Level: "info", Format: "json", Output: "/var/log/x"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestFields(t *testing.T) {
	tests := []struct {
		name     string
		input    []any
		expected map[string]any
	}{
		{"key-value pairs", []any{"op", "save", "id", 42}, map[string]any{"op": "save", "id": 42}},
		{"odd number of args", []any{"op", "save", "trailing"}, map[string]any{"op": "save"}},
		{"non-string key skipped", []any{123, "value", "key", "val"}, map[string]any{"key": "val"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Fields(tc.input...)
			if len(result) != len(tc.expected) {
				t.Errorf("expected %d fields, got %d", len(tc.expected), len(result))
			}
			for k, v := range tc.expected {
				if result[k] != v {
					t.Errorf("Fields[%q] = %v, expected %v", k, result[k], v)
				}
			}
		})
	}
}

func TestRequestFields(t *testing.T) {
	f := RequestFields("", "GET", "http://x")
	if _, ok := f[FieldOperation]; ok {
		t.Error("empty operation should be omitted")
	}
	f = RequestFields("getCall", "GET", "http://x")
	if f[FieldOperation] != "getCall" || f[FieldMethod] != "GET" || f[FieldURL] != "http://x" {
		t.Errorf("unexpected fields: %v", f)
	}
}

func TestMergeHelpers(t *testing.T) {
	result := MergeWithError(nil, fmt.Errorf("test error"))
	if result[FieldError] != "test error" {
		t.Errorf("expected error field from nil map, got %v", result[FieldError])
	}

	fields := map[string]any{"op": "query"}
	result = MergeWithDuration(fields, 200*time.Millisecond)
	if result[FieldDuration] != int64(200) {
		t.Errorf("expected duration 200, got %v", result[FieldDuration])
	}
	if result["op"] != "query" {
		t.Error("expected existing fields to be preserved")
	}
}
