package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WhenNoFile_ShouldReturnDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ModeLocal, cfg.Mode)
	assert.Equal(t, StorageMemory, cfg.StorageBackend)
	assert.Equal(t, 500, cfg.Engine.MaxMessageLength)
	assert.Equal(t, 3, cfg.Engine.HistorySize)
	assert.Equal(t, 10*time.Second, cfg.Engine.GenerationTimeout)
	assert.True(t, cfg.UseMockLLM)
}

func TestLoad_WhenFileSet_ShouldOverrideDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "farum.yaml")
	data := []byte(`
port: "9090"
storage_backend: badger
badger:
  dir: /tmp/farum-badger
engine:
  generation_timeout: 2s
  seed: 42
resources:
  url: http://resources.local
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StorageBadger, cfg.StorageBackend)
	assert.Equal(t, "/tmp/farum-badger", cfg.Badger.Dir)
	assert.Equal(t, 2*time.Second, cfg.Engine.GenerationTimeout)
	assert.Equal(t, int64(42), cfg.Engine.Seed)
	assert.Equal(t, "http://resources.local", cfg.Resources.URL)
	// untouched keys keep defaults
	assert.Equal(t, 500, cfg.Engine.MaxMessageLength)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("env beats file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "farum.yaml")
		require.NoError(t, os.WriteFile(path, []byte("port: \"9090\"\n"), 0o600))
		t.Setenv("FARUM_PORT", "7070")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "7070", cfg.Port)
	})

	t.Run("gcp mode turns the mock off", func(t *testing.T) {
		t.Setenv("FARUM_MODE", "gcp")
		t.Setenv("FARUM_GCP_PROJECT", "farum-test")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, ModeGCP, cfg.Mode)
		assert.False(t, cfg.UseMockLLM)
	})

	t.Run("explicit mock flag wins in gcp mode", func(t *testing.T) {
		t.Setenv("FARUM_MODE", "gcp")
		t.Setenv("FARUM_GCP_PROJECT", "farum-test")
		t.Setenv("FARUM_USE_MOCK_LLM", "1")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.True(t, cfg.UseMockLLM)
	})

	t.Run("seed", func(t *testing.T) {
		t.Setenv("FARUM_SEED", "7")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, int64(7), cfg.Engine.Seed)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"gcp without project", func(c *Config) { c.Mode = ModeGCP }, false},
		{"firestore without project", func(c *Config) { c.StorageBackend = StorageFirestore }, false},
		{"redis without host", func(c *Config) { c.StorageBackend = StorageRedis }, false},
		{"redis with host", func(c *Config) {
			c.StorageBackend = StorageRedis
			c.Redis.Host = "localhost:6379"
		}, true},
		{"unknown backend", func(c *Config) { c.StorageBackend = "postgres" }, false},
		{"zero message length", func(c *Config) { c.Engine.MaxMessageLength = 0 }, false},
		{"zero generation timeout", func(c *Config) { c.Engine.GenerationTimeout = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
