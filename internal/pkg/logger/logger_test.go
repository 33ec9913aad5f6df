package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/resell-pos/internal/pkg/logger"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger(logger.LogConfig{
		Level:       "info",
		Format:      "json",
		ServiceName: "resell-pos",
		Environment: "test",
		Writer:      &buf,
	})

	log.Info("sale created", slog.String("sale_id", "abc"))

	entry := decodeLine(t, &buf)
	assert.Equal(t, "sale created", entry["msg"])
	assert.Equal(t, "INFO", entry["severity"])
	assert.Equal(t, "resell-pos", entry["service"])
	assert.Equal(t, "test", entry["env"])
	assert.Equal(t, "abc", entry["sale_id"])
}

func TestNewLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger(logger.LogConfig{Level: "warn", Format: "json", Writer: &buf})

	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept")
	assert.Equal(t, "kept", decodeLine(t, &buf)["msg"])
}

func TestNewLogger_ContextValues(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger(logger.LogConfig{Level: "debug", Format: "json", Writer: &buf})

	ctx := context.WithValue(context.Background(), logger.ContextKeyRequestID, "req-1")
	ctx = context.WithValue(ctx, logger.ContextKeyTaskType, "stock:import")

	log.InfoContext(ctx, "handled")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "stock:import", entry["task_type"])
	assert.Equal(t, "req-1", logger.RequestID(ctx))
}

func TestNewLogger_Sanitization(t *testing.T) {
	tests := []struct {
		name    string
		log     func(*slog.Logger)
		key     string
		want    string
		notWant string
	}{
		{
			name:    "sensitive_key_redacted",
			log:     func(l *slog.Logger) { l.Info("connecting", slog.String("db_password", "hunter2")) },
			key:     "db_password",
			want:    "***REDACTED***",
			notWant: "hunter2",
		},
		{
			name: "url_credentials_masked",
			log: func(l *slog.Logger) {
				l.Info("connecting", slog.String("error", "dial postgres://resell:hunter2@db:5432/pos failed"))
			},
			key:     "error",
			want:    "postgres://resell:***REDACTED***@db:5432/pos",
			notWant: "hunter2",
		},
		{
			name:    "assignment_in_message_masked",
			log:     func(l *slog.Logger) { l.Info("bad config token=abc123") },
			key:     "msg",
			want:    "token=***REDACTED***",
			notWant: "abc123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(logger.NewLogger(logger.LogConfig{Level: "info", Format: "json", Writer: &buf}))

			entry := decodeLine(t, &buf)
			value, ok := entry[tt.key].(string)
			require.True(t, ok)
			assert.Contains(t, value, tt.want)
			assert.NotContains(t, buf.String(), tt.notWant)
		})
	}
}

func TestNewLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger(logger.LogConfig{Level: "info", Format: "text", Writer: &buf})

	log.With(slog.String("component", "stock")).Warn("store slow", slog.Int("ms", 900))

	out := buf.String()
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "store slow")
	assert.Contains(t, out, "component=stock")
	assert.Contains(t, out, "ms=900")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, logger.ParseLevel(in), in)
	}
}
