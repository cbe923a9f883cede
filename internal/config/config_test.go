package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "80", cfg.Server.Port)
	assert.True(t, cfg.Decoder.StrictCount)
	assert.Equal(t, "ascii", cfg.Decoder.NarrowEncoding)
	assert.Equal(t, "file", cfg.Source.Type)
	assert.Equal(t, "/SavedArks/1167393038.arktribe", cfg.Source.Path)
	assert.Nil(t, cfg.Database)
	assert.Equal(t, "tribelog", cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("TRIBELOG_SERVER__PORT", "8080")
	t.Setenv("TRIBELOG_DECODER__STRICT_COUNT", "false")
	t.Setenv("TRIBELOG_DECODER__NARROW_ENCODING", "latin1")
	t.Setenv("TRIBELOG_SOURCE__PATH", "/data/tribe.arktribe")
	t.Setenv("TRIBELOG_OBSERVABILITY__LOGGING__LEVEL", "debug")

	cfg, err := LoadConfig(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.Decoder.StrictCount)
	assert.Equal(t, "latin1", cfg.Decoder.NarrowEncoding)
	assert.Equal(t, "/data/tribe.arktribe", cfg.Source.Path)
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
	assert.Equal(t, "console", cfg.Observability.Logging.Format, "unset fields keep defaults")
}

func TestLoadConfigFromDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TRIBELOG_SERVER__PORT=9090\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("TRIBELOG_SERVER__PORT") })

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown encoding":  {"TRIBELOG_DECODER__NARROW_ENCODING": "utf8"},
		"unknown source":    {"TRIBELOG_SOURCE__TYPE": "ftp"},
		"o3 without bucket": {"TRIBELOG_SOURCE__TYPE": "o3", "TRIBELOG_SOURCE__KEY": "saves/tribe.arktribe"},
		"bad log level":     {"TRIBELOG_OBSERVABILITY__LOGGING__LEVEL": "loud"},
		"partial database":  {"TRIBELOG_DATABASE__HOST": "localhost"},
	}
	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range vars {
				t.Setenv(k, v)
			}
			_, err := LoadConfig(noEnvFile(t))
			assert.Error(t, err)
		})
	}
}

func TestDatabaseURL(t *testing.T) {
	d := &DatabaseConfig{User: "ark", Password: "pw", Host: "db", Port: 5432, Name: "tribe", SSLMode: "disable"}
	assert.Equal(t, "postgres://ark:pw@db:5432/tribe?sslmode=disable", d.URL())
}
