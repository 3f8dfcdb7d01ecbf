package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		DebugLevel: zapcore.DebugLevel,
		InfoLevel:  zapcore.InfoLevel,
		WarnLevel:  zapcore.WarnLevel,
		ErrorLevel: zapcore.ErrorLevel,
		"bogus":    defaultZapLevel,
	}
	for in, want := range cases {
		if got := toZapLevel(in); got != want {
			t.Fatalf("toZapLevel(%q) = %v; want %v", in, got, want)
		}
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(&buf, InfoLevel, JSONFormat)

	log.Debugw("hidden")
	log.Infow("auth_sign_up_failed", "username", "alice")
	_ = log.Sync()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line above debug, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("expected JSON line: %v", err)
	}
	if entry["msg"] != "auth_sign_up_failed" || entry["username"] != "alice" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestNew_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(&buf, DebugLevel, ConsoleFormat)

	log.Warnw("ws_ping_failed", "err", "closed")
	_ = log.Sync()

	out := buf.String()
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "ws_ping_failed") {
		t.Fatalf("unexpected console output: %q", out)
	}
}

func TestGet_Singleton(t *testing.T) {
	a := Get(InfoLevel, ConsoleFormat)
	b := Get(DebugLevel, JSONFormat)
	if a != b {
		t.Fatalf("expected the same logger instance")
	}
}
