package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]zapcore.Level{
		"":        zapcore.InfoLevel,
		"DEBUG":   zapcore.DebugLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
	} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q)=%v,%v want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNewFile_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "habitual.log")
	l, err := NewFile(path, "debug")
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	l.Debug("hello", zap.String("op", "load"))
	_ = l.Sync()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), `"msg":"hello"`) || !strings.Contains(string(b), `"op":"load"`) {
		t.Fatalf("unexpected log content: %s", b)
	}
}

func TestNewFile_RespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habitual.log")
	l, err := NewFile(path, "warn")
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	l.Info("quiet")
	_ = l.Sync()
	b, _ := os.ReadFile(path)
	if strings.Contains(string(b), "quiet") {
		t.Fatalf("info must be filtered at warn level: %s", b)
	}
}
