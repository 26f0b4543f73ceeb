package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"brewery/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	logger := logging.New(logging.Options{Level: "warn", Production: true, Output: &buf})

	logger.Info("dropped")
	logger.Warn("kept", "id", 7)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["msg"])
	assert.Equal(t, float64(7), line["id"])
}

func TestNew_DevelopmentUsesTint(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	logger := logging.New(logging.Options{Level: "debug", Output: &buf})
	logger.Debug("brewing", "beer", "Mango Bobs")

	assert.Contains(t, buf.String(), "brewing")
	assert.Contains(t, buf.String(), "Mango Bobs")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.ParseLevel("debug"))
	assert.Equal(t, slog.LevelError, logging.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("loud"))
}
