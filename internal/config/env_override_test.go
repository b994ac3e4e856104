package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides(t *testing.T) {
	t.Run("build flags", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DEFCHECK_BUILD_MODE", "I2")
		t.Setenv("DEFCHECK_EXCEPTIONS", "false")
		t.Setenv("DEFCHECK_CHECK_LEVELS", "0")
		t.Setenv("DEFCHECK_EMBED_FILENAMES", "f")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, BuildConfig{Mode: "I2"}, cfg.Build)
	})

	t.Run("unparsable booleans are ignored", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DEFCHECK_EXCEPTIONS", "sometimes")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.True(t, cfg.Build.Exceptions)
	})

	t.Run("log level", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DEFCHECK_LOG_LEVEL", "error")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "error", cfg.Logging.Level)
	})
}

func TestEnvOverrides_AppliedByLoad(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEFCHECK_BUILD_MODE", "O2")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "O2", cfg.Build.Mode)
	assert.True(t, cfg.Build.ReviewsEnabled())
}
