package config

import (
	"path/filepath"
	"testing"
	"time"

	gfconfig "github.com/fulmenhq/gofulmen/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("DecodesTypedValues", func(t *testing.T) {
		viper.Reset()
		defer viper.Reset()

		viper.Set("server.host", "0.0.0.0")
		viper.Set("server.port", 9000)
		viper.Set("server.read_timeout", "45s")
		viper.Set("server.shutdown_timeout", "5m")
		viper.Set("store.driver", "libsql")
		viper.Set("store.path", "file:/tmp/tuberank.db")
		viper.Set("genai.api_key", "test-key")
		viper.Set("genai.model", "gemini-2.5-flash")
		viper.Set("genai.timeout", "90s")
		viper.Set("logging.level", "debug")
		viper.Set("metrics.enabled", true)
		viper.Set("metrics.port", 9090)

		cfg, err := Load()
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
		assert.Equal(t, 9000, cfg.Server.Port)
		assert.Equal(t, 45*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 5*time.Minute, cfg.Server.ShutdownTimeout)
		assert.Equal(t, "test-key", cfg.GenAI.APIKey)
		assert.Equal(t, "gemini-2.5-flash", cfg.GenAI.Model)
		assert.Equal(t, 90*time.Second, cfg.GenAI.Timeout)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.True(t, cfg.Metrics.Enabled)
		assert.Equal(t, 9090, cfg.Metrics.Port)
	})

	t.Run("GeminiAPIKeyEnvFallback", func(t *testing.T) {
		viper.Reset()
		defer viper.Reset()
		viper.Set("store.path", "file:/tmp/tuberank.db")

		t.Setenv("GEMINI_API_KEY", "env-key")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "env-key", cfg.GenAI.APIKey)
	})

	t.Run("ExplicitKeyWinsOverEnvFallback", func(t *testing.T) {
		viper.Reset()
		defer viper.Reset()
		viper.Set("genai.api_key", "configured-key")

		t.Setenv("GEMINI_API_KEY", "env-key")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "configured-key", cfg.GenAI.APIKey)
	})

	t.Run("DefaultStorePathWhenUnset", func(t *testing.T) {
		viper.Reset()
		defer viper.Reset()
		t.Setenv("XDG_DATA_HOME", t.TempDir())

		cfg, err := Load()
		require.NoError(t, err)

		expected := filepath.Join(gfconfig.GetAppDataDir("tuberank"), "tuberank.db")
		assert.Equal(t, expected, cfg.Store.Path)
	})
}

func TestGetConfig(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	viper.Set("server.port", 8123)
	viper.Set("store.path", "file:/tmp/tuberank.db")

	cfg, err := Load()
	require.NoError(t, err)

	retrieved := GetConfig()
	require.NotNil(t, retrieved)
	assert.Equal(t, cfg.Server.Port, retrieved.Server.Port)
}
