package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func captureLogger(t *testing.T, format string) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	original := Logger()
	ReplaceLogger(slog.New(newHandler(buf, format)))
	t.Cleanup(func() {
		ReplaceLogger(original)
		levelVar.Set(slog.LevelInfo)
	})
	return buf
}

func TestInfoProducesLogfmtWithTimestamp(t *testing.T) {
	buf := captureLogger(t, "text")

	Info(context.Background(), "hello", "key", "nexus-settings")

	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatalf("expected log output, got empty string")
	}
	for _, want := range []string{"ts=", "level=info", "msg=hello", "key=nexus-settings"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in log line, got %q", want, line)
		}
	}
}

func TestJSONFormatUsesRenamedKeys(t *testing.T) {
	buf := captureLogger(t, "json")

	Warn(context.Background(), "catalog unavailable", "location", "/assets/themes.json")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode json log line: %v", err)
	}
	if entry["level"] != "warn" {
		t.Fatalf("level = %v, want warn", entry["level"])
	}
	if entry["msg"] != "catalog unavailable" {
		t.Fatalf("msg = %v", entry["msg"])
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatal("expected ts field")
	}
}

func TestSetLevelFiltersDebug(t *testing.T) {
	buf := captureLogger(t, "text")

	if err := SetLevel("warn"); err != nil {
		t.Fatalf("SetLevel() error = %v", err)
	}
	Debug(context.Background(), "hidden")
	Info(context.Background(), "hidden too")
	Error(context.Background(), "visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected debug and info lines to be filtered, got %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Fatalf("expected error line, got %q", out)
	}
}

func TestSetLevelRejectsUnknown(t *testing.T) {
	if err := SetLevel("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestSetFormatRejectsUnknown(t *testing.T) {
	if err := SetFormat("xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestSetOutputKeepsFormat(t *testing.T) {
	original := Logger()
	t.Cleanup(func() {
		SetOutput(os.Stdout)
		_ = SetFormat("text")
		ReplaceLogger(original)
	})

	if err := SetFormat("json"); err != nil {
		t.Fatalf("SetFormat() error = %v", err)
	}
	buf := new(bytes.Buffer)
	SetOutput(buf)
	Info(context.Background(), "redirected")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json output after redirect, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "redirected" {
		t.Fatalf("msg = %v", entry["msg"])
	}
}
