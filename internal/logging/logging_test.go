package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestSetupText(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := Setup(Options{Level: "warn", Output: &buf})
	require.NoError(t, err)
	defer closeFn()

	logger.Info("hidden")
	logger.Warn("shown", "rows", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "rows=3")
}

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := Setup(Options{Format: "json", Output: &buf})
	require.NoError(t, err)
	defer closeFn()

	logger.Info("split", "train_rows", 10)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &record))
	assert.Equal(t, "split", record["msg"])
	assert.Equal(t, float64(10), record["train_rows"])
}

func TestSetupRejects(t *testing.T) {
	_, _, err := Setup(Options{Level: "loud"})
	assert.Error(t, err)

	_, _, err = Setup(Options{Format: "xml"})
	assert.Error(t, err)
}

func TestMultiHandlerRespectsEachLevel(t *testing.T) {
	var debugBuf, errorBuf bytes.Buffer
	h := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&errorBuf, &slog.HandlerOptions{Level: slog.LevelError}),
	}}
	logger := slog.New(h).With("run", "abc")

	logger.Info("progress")
	logger.Error("failed")

	assert.Contains(t, debugBuf.String(), "progress")
	assert.Contains(t, debugBuf.String(), "failed")
	assert.NotContains(t, errorBuf.String(), "progress")
	assert.Contains(t, errorBuf.String(), "run=abc")
}
