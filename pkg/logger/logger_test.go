package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(line, &entry))
		out = append(out, entry)
	}
	return out
}

func TestNew(t *testing.T) {
	logger := New()
	assert.NotNil(t, logger)

	// Test that the console logger doesn't panic
	logger.Info("Test message: %s", "info")
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf)

	logger.Info("Info %d", 1)
	logger.Warn("Warn %d", 2)
	logger.Error("Error %d", 3)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 3)
	assert.Equal(t, "info", entries[0]["level"])
	assert.Equal(t, "Info 1", entries[0]["message"])
	assert.Equal(t, "warn", entries[1]["level"])
	assert.Equal(t, "Warn 2", entries[1]["message"])
	assert.Equal(t, "error", entries[2]["level"])
	assert.Equal(t, "Error 3", entries[2]["message"])
}

func TestLogger_Formatting(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf)

	logger.Error("Failed to process request %d: %s", 404, "not found")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "Failed to process request 404: not found", entries[0]["message"])
}

func TestLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf).With("upload")

	logger.Info("staged")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "upload", entries[0]["component"])
}

func TestNewWithLevel_UnknownFallsBackToInfo(t *testing.T) {
	logger := NewWithLevel("verbose")
	assert.NotNil(t, logger)
	logger.Debug("dropped")
}
