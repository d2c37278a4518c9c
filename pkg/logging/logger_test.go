package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger()
	if logger == nil {
		t.Fatal("NewLogger() returned nil")
	}
	if logger.Logger == nil {
		t.Fatal("Logger.Logger is nil")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected slog.Level
	}{
		{"debug level", "DEBUG", slog.LevelDebug},
		{"info level", "INFO", slog.LevelInfo},
		{"warn level", "WARN", slog.LevelWarn},
		{"warning level", "WARNING", slog.LevelWarn},
		{"error level", "ERROR", slog.LevelError},
		{"lowercase debug", "debug", slog.LevelDebug},
		{"padded value", "  error ", slog.LevelError},
		{"invalid level", "INVALID", slog.LevelInfo},
		{"empty value", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if level := ParseLevel(tt.value); level != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.value, level, tt.expected)
			}
		})
	}
}

func TestLogLevelFromEnv(t *testing.T) {
	original, had := os.LookupEnv(LevelEnvVar)
	defer func() {
		if had {
			os.Setenv(LevelEnvVar, original)
		} else {
			os.Unsetenv(LevelEnvVar)
		}
	}()

	os.Setenv(LevelEnvVar, "debug")
	if level := getLogLevelFromEnv(); level != slog.LevelDebug {
		t.Errorf("getLogLevelFromEnv() = %v, want %v", level, slog.LevelDebug)
	}
	os.Unsetenv(LevelEnvVar)
	if level := getLogLevelFromEnv(); level != slog.LevelInfo {
		t.Errorf("getLogLevelFromEnv() = %v, want %v", level, slog.LevelInfo)
	}
}

func TestCorrelationID(t *testing.T) {
	t.Run("generate correlation ID", func(t *testing.T) {
		id1 := GenerateCorrelationID()
		id2 := GenerateCorrelationID()
		if id1 == id2 {
			t.Error("GenerateCorrelationID() returned duplicate IDs")
		}
		if len(id1) != 16 {
			t.Errorf("GenerateCorrelationID() returned wrong length: %d", len(id1))
		}
	})

	t.Run("context with correlation ID", func(t *testing.T) {
		ctx := WithCorrelationID(context.Background(), "scene-run")
		if id := GetCorrelationID(ctx); id != "scene-run" {
			t.Errorf("GetCorrelationID() = %q, want %q", id, "scene-run")
		}
	})

	t.Run("context without correlation ID", func(t *testing.T) {
		if id := GetCorrelationID(context.Background()); id != "" {
			t.Errorf("GetCorrelationID() = %q, want empty string", id)
		}
	})

	t.Run("auto-generate correlation ID", func(t *testing.T) {
		ctx := WithCorrelationID(context.Background(), "")
		if id := GetCorrelationID(ctx); len(id) != 16 {
			t.Errorf("auto-generated correlation ID has wrong length: %d", len(id))
		}
	})
}

func TestSanitizeAttributes(t *testing.T) {
	tests := []struct {
		name     string
		attr     slog.Attr
		expected string
	}{
		{"password field", slog.String("password", "secret123"), "[REDACTED]"},
		{"token field", slog.String("auth_token", "bearer-token"), "[REDACTED]"},
		{"home directory", slog.String("home_dir", "/home/alice"), "[REDACTED]"},
		{"shape kind", slog.String("shape_kind", "circle"), "circle"},
		{"cell key", slog.String("cell_key", "3,4"), "3,4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := sanitizeAttributes(nil, tt.attr)
			if result.Value.String() != tt.expected {
				t.Errorf("sanitizeAttributes() = %q, want %q", result.Value.String(), tt.expected)
			}
		})
	}
}

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log JSON: %v", err)
	}
	return entry
}

func TestLoggerMethods(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, slog.LevelDebug)
	ctx := WithCorrelationID(context.Background(), "test-id-123")

	t.Run("info logging", func(t *testing.T) {
		buf.Reset()
		logger.Info(ctx, "shape added", "shape_kind", "circle")
		entry := decodeEntry(t, &buf)
		if entry["msg"] != "shape added" {
			t.Errorf("expected message 'shape added', got %v", entry["msg"])
		}
		if entry["level"] != "INFO" {
			t.Errorf("expected level 'INFO', got %v", entry["level"])
		}
		if entry["correlation_id"] != "test-id-123" {
			t.Errorf("expected correlation_id 'test-id-123', got %v", entry["correlation_id"])
		}
		if entry["shape_kind"] != "circle" {
			t.Errorf("expected shape_kind 'circle', got %v", entry["shape_kind"])
		}
	})

	t.Run("error logging", func(t *testing.T) {
		buf.Reset()
		logger.Error(ctx, "remove failed", errors.New("not here"))
		entry := decodeEntry(t, &buf)
		if entry["level"] != "ERROR" {
			t.Errorf("expected level 'ERROR', got %v", entry["level"])
		}
		if entry["error"] != "not here" {
			t.Errorf("expected error 'not here', got %v", entry["error"])
		}
	})

	t.Run("debug logging", func(t *testing.T) {
		buf.Reset()
		logger.Debug(ctx, "drain", "updated", 3)
		if entry := decodeEntry(t, &buf); entry["level"] != "DEBUG" {
			t.Errorf("expected level 'DEBUG', got %v", entry["level"])
		}
	})

	t.Run("warn logging with attributes", func(t *testing.T) {
		buf.Reset()
		logger.With("world", 7).Warn(ctx, "rejected")
		entry := decodeEntry(t, &buf)
		if entry["level"] != "WARN" {
			t.Errorf("expected level 'WARN', got %v", entry["level"])
		}
		if entry["world"] != float64(7) {
			t.Errorf("expected world 7, got %v", entry["world"])
		}
	})
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, slog.LevelWarn)
	logger.Info(context.Background(), "hidden")
	if buf.Len() != 0 {
		t.Errorf("info entry written at warn level: %s", buf.String())
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Error(context.Background(), "dropped", errors.New("boom"))
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("NewNopLogger() should not enable the error level")
	}
}

func TestWrapError(t *testing.T) {
	t.Run("wrap nil error", func(t *testing.T) {
		if result := WrapError(nil, "context"); result != nil {
			t.Errorf("WrapError(nil) should return nil, got %v", result)
		}
	})

	t.Run("wrap error with formatted context", func(t *testing.T) {
		original := errors.New("original error")
		wrapped := WrapError(original, "loading scene %s", "demo.json")
		if wrapped.Error() != "loading scene demo.json: original error" {
			t.Errorf("WrapError() = %q", wrapped.Error())
		}
		if !errors.Is(wrapped, original) {
			t.Error("WrapError() should preserve original error")
		}
	})
}

func TestLogWithoutCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, slog.LevelInfo)
	logger.Info(context.Background(), "test message")
	if strings.Contains(buf.String(), "correlation_id") {
		t.Error("log should not contain correlation_id when none is set in context")
	}
}
