package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/gordon0907/ark-tribe-log/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.ServiceName = "tribelog"
	cfg.Logging.Format = "json"
	cfg.Logging.Level = "warn"

	var buf bytes.Buffer
	logger, closeFn := New(cfg, &buf)
	defer closeFn()

	logger.Info().Msg("dropped")
	logger.Warn().Int("lines", 4).Msg("count mismatch")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "count mismatch", entry["message"])
	assert.Equal(t, "tribelog", entry["service"])
	assert.EqualValues(t, 4, entry["lines"])
}

func TestNewWritesRotatedFile(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Format = "json"
	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "tribelog.log")

	var buf bytes.Buffer
	logger, closeFn := New(cfg, &buf)
	logger.Info().Msg("to file")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(cfg.Logging.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
	assert.Contains(t, buf.String(), "to file")
}

func TestNewNilConfig(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := New(nil, &buf)
	logger.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
}
