package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"noise": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "info", Format: "json", Output: &buf})
	l.Debug("hidden")
	l.Info("poller.start", "interval", "1m")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("lines = %q", lines)
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatal(err)
	}
	if rec["msg"] != "poller.start" || rec["interval"] != "1m" {
		t.Errorf("record = %v", rec)
	}
}

func TestContextLogger(t *testing.T) {
	if From(context.Background()) != slog.Default() {
		t.Error("From(empty) should be slog.Default")
	}
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), New(Options{Format: "text", Output: &buf}))
	ctx = With(ctx, "q", "abc")
	From(ctx).Info("search.lookup")
	if !strings.Contains(buf.String(), "q=abc") {
		t.Errorf("output = %q", buf.String())
	}
}
