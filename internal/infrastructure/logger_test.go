package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"degradecli/internal/config"
	apperrors "degradecli/internal/errors"
)

// captureConsole redirects console logs into a buffer for the test
func captureConsole(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := consoleOutput
	consoleOutput = &buf
	prevDefault := slog.Default()
	t.Cleanup(func() {
		consoleOutput = prev
		ResetLoggerForTesting()
		slog.SetDefault(prevDefault)
	})
	return &buf
}

func lastEntry(t *testing.T, content string) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(content), "\n")
	require.NotEmpty(t, lines)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestInitializeLogger(t *testing.T) {
	console := captureConsole(t)
	logFile := filepath.Join(t.TempDir(), "logs", "test.log")

	logger, err := InitializeLogger(config.LoggingConfig{
		Level:    "info",
		Output:   "both",
		FilePath: logFile,
	})
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.Same(t, logger, GetLogger())

	logger.Info("test message", "key", "value")
	require.NoError(t, CloseLogFile())

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)

	entry := lastEntry(t, string(content))
	assert.Equal(t, "test message", entry["msg"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Contains(t, entry, "source")

	assert.Equal(t, "test message", lastEntry(t, console.String())["msg"])
}

func TestInitializeLoggerFileOnly(t *testing.T) {
	console := captureConsole(t)
	logFile := filepath.Join(t.TempDir(), "file.log")

	logger, err := InitializeLogger(config.LoggingConfig{Level: "info", Output: "file", FilePath: logFile})
	require.NoError(t, err)

	logger.Info("only in file")
	assert.Empty(t, console.String())
	assert.FileExists(t, logFile)
}

func TestInitializeLoggerBadPath(t *testing.T) {
	captureConsole(t)
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	_, err := InitializeLogger(config.LoggingConfig{
		Level:    "info",
		Output:   "file",
		FilePath: filepath.Join(blocker, "app.log"),
	})
	assert.Error(t, err)
}

func TestTraceIDInjection(t *testing.T) {
	console := captureConsole(t)

	logger, err := InitializeLogger(config.LoggingConfig{Level: "debug", Output: "console"})
	require.NoError(t, err)

	ctx := WithTraceID(context.Background(), "test-trace-123")
	logger.InfoContext(ctx, "test with trace")
	assert.Equal(t, "test-trace-123", lastEntry(t, console.String())["trace_id"])

	WithComponent(logger, "pipeline").InfoContext(ctx, "with component")
	entry := lastEntry(t, console.String())
	assert.Equal(t, "test-trace-123", entry["trace_id"])
	assert.Equal(t, "pipeline", entry["component"])

	logger.Info("no context")
	assert.NotContains(t, lastEntry(t, console.String()), "trace_id")
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.level))
		})
	}

	console := captureConsole(t)
	logger, err := InitializeLogger(config.LoggingConfig{Level: "warn", Output: "console"})
	require.NoError(t, err)
	logger.Info("dropped")
	assert.Empty(t, console.String())
	logger.Warn("kept")
	assert.Contains(t, console.String(), "kept")
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	ctx = EnsureTraceID(ctx)
	id := GetTraceID(ctx)
	assert.Len(t, id, 36)

	assert.Equal(t, id, GetTraceID(EnsureTraceID(ctx)), "existing id is kept")
	assert.NotEqual(t, GenerateTraceID(), GenerateTraceID())
}

func TestErrorAttrs(t *testing.T) {
	attrs := ErrorAttrs(apperrors.NewMissingBaselineError("Dark"))
	require.Len(t, attrs, 2)
	attr, ok := attrs[1].(slog.Attr)
	require.True(t, ok)
	assert.Equal(t, "error_type", attr.Key)
	assert.Equal(t, "MISSING_BASELINE", attr.Value.String())

	attrs = ErrorAttrs(assert.AnError)
	assert.Len(t, attrs, 1)
}
