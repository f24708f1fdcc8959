package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"NFH_TIMEOUT", "NFH_DISABLE_TIMEOUT", "NFH_DISABLE_MEMO", "NFH_MODE", "NFH_LOG_LEVEL", "NFH_LOG_FORMAT", "NFH_PARALLEL"} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	d, err := cfg.SearchTimeout()
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, d)

	opts, err := cfg.SearchOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 2)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nfhcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
search:
  timeout: 250ms
  disable_memo: true
  mode: sync
batch:
  parallel: 2
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "250ms", cfg.Search.Timeout)
	assert.True(t, cfg.Search.DisableMemo)
	assert.Equal(t, "sync", cfg.Search.Mode)
	assert.Equal(t, 2, cfg.Batch.Parallel)
	// Unset sections keep their defaults.
	assert.Equal(t, "console", cfg.Logging.Format)

	opts, err := cfg.SearchOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 3)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search: [\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("all variables", func(t *testing.T) {
		t.Setenv("NFH_TIMEOUT", "5s")
		t.Setenv("NFH_DISABLE_TIMEOUT", "true")
		t.Setenv("NFH_DISABLE_MEMO", "1")
		t.Setenv("NFH_MODE", "synchronous")
		t.Setenv("NFH_LOG_LEVEL", "debug")
		t.Setenv("NFH_LOG_FORMAT", "json")
		t.Setenv("NFH_PARALLEL", "8")

		cfg := DefaultConfig()
		require.NoError(t, cfg.applyEnvOverrides())

		assert.Equal(t, "5s", cfg.Search.Timeout)
		assert.True(t, cfg.Search.DisableTimeout)
		assert.True(t, cfg.Search.DisableMemo)
		assert.Equal(t, "synchronous", cfg.Search.Mode)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "json", cfg.Logging.Format)
		assert.Equal(t, 8, cfg.Batch.Parallel)
		assert.NoError(t, cfg.Validate())

		opts, err := cfg.SearchOptions()
		require.NoError(t, err)
		assert.Len(t, opts, 4)
	})

	t.Run("empty values are ignored", func(t *testing.T) {
		clearEnv(t)
		cfg := DefaultConfig()
		require.NoError(t, cfg.applyEnvOverrides())
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("bad booleans fail", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("NFH_DISABLE_MEMO", "maybe")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("bad parallel fails", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("NFH_PARALLEL", "many")
		assert.Error(t, DefaultConfig().applyEnvOverrides())
	})

	t.Run("env wins over file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("NFH_TIMEOUT", "1s")
		path := filepath.Join(t.TempDir(), "c.yaml")
		require.NoError(t, os.WriteFile(path, []byte("search:\n  timeout: 9s\n"), 0o644))
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "1s", cfg.Search.Timeout)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad timeout", func(c *Config) { c.Search.Timeout = "soon" }},
		{"empty timeout", func(c *Config) { c.Search.Timeout = "" }},
		{"bad mode", func(c *Config) { c.Search.Mode = "lockstep" }},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }},
		{"zero parallel", func(c *Config) { c.Batch.Parallel = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "sub", "nfhcheck.yaml")
	cfg := DefaultConfig()
	cfg.Search.Mode = "sync"
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
