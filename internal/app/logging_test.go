package app

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dshills/designable/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestNewLoggerWithoutFileDiscards(t *testing.T) {
	logger, err := NewLogger(config.LogConfig{Level: "debug", Format: "console"})
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}
	if logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("logger without a file should discard everything")
	}
}

func TestNewLoggerJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "designable.log")
	logger, err := NewLogger(config.LogConfig{Level: "warn", Format: "json", File: path})
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("drop rejected", zap.String("workspace", "main"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), data)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "drop rejected" || entry["workspace"] != "main" {
		t.Errorf("unexpected entry: %v", entry)
	}
	if entry["logger"] != "designable" {
		t.Errorf("logger name = %v", entry["logger"])
	}
}

func TestNewLoggerConsole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "designable.log")
	logger, err := NewLogger(config.LogConfig{Level: "info", Format: "console", File: path})
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("document loaded")
	_ = logger.Sync()

	data, _ := os.ReadFile(path)
	out := string(data)
	if !strings.Contains(out, "INFO") || !strings.Contains(out, "document loaded") {
		t.Errorf("unexpected output: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug entry should be filtered")
	}
}

func TestNewLoggerBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "designable.log")
	if _, err := NewLogger(config.LogConfig{Level: "info", Format: "json", File: path}); err == nil {
		t.Error("expected an error for an unwritable log path")
	}
}
