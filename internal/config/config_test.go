package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/agentlink/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AGENTLINK_CONFIG", "")
	t.Setenv("AGENTLINK_PORT", "")
	t.Setenv("PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agentlink.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9090"
log_level: debug
latency: 0s
history_limit: 10
id_source: counter
`), 0o644))

	t.Setenv("AGENTLINK_HISTORY_LIMIT", "25")

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, time.Duration(0), cfg.Latency)
	assert.Equal(t, 25, cfg.HistoryLimit)
	assert.Equal(t, config.IDSourceCounter, cfg.IDSource)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"AGENTLINK_LATENCY":       "soon",
		"AGENTLINK_HISTORY_LIMIT": "many",
		"AGENTLINK_LOG_LEVEL":     "loud",
		"AGENTLINK_LOG_FORMAT":    "xml",
		"AGENTLINK_ID_SOURCE":     "snowflake",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := config.LoadFile("")
			assert.Error(t, err)
		})
	}

	t.Run("negative latency", func(t *testing.T) {
		t.Setenv("AGENTLINK_LATENCY", "-1s")
		_, err := config.LoadFile("")
		assert.Error(t, err)
	})
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.LoadFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
