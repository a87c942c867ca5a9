package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecofocus/internal/config"
)

func TestGlobalConfig(t *testing.T) {
	isolate(t)
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)

	cfg := config.GetGlobalConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, "table", config.GetDefaultOutputFormat())
	assert.Equal(t, 2, config.GetOutputPrecision())
	assert.Same(t, cfg, config.GetGlobalConfig())

	custom := config.Default()
	custom.Output.DefaultFormat = "json"
	config.SetGlobalConfig(custom)
	assert.Same(t, custom, config.GetGlobalConfig())
	assert.Equal(t, "json", config.GetDefaultOutputFormat())
	assert.Equal(t, custom.Logging, config.GetLoggingConfig())

	config.ResetGlobalConfigForTest()
	assert.NotSame(t, custom, config.GetGlobalConfig())
}

func TestConfigPaths(t *testing.T) {
	home := isolate(t)
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)

	dir, err := config.GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, home, dir)

	path, err := config.ResolveConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "config.yaml"), path)

	t.Setenv(config.EnvConfig, "/etc/ecofocus.yaml")
	path, err = config.ResolveConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/etc/ecofocus.yaml", path)

	cacheDir, err := config.GetCacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "cache"), cacheDir)
}

func TestConfigDirFromHome(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv(config.EnvHome, "")
	t.Setenv("HOME", tmpHome)
	t.Setenv("USERPROFILE", tmpHome)

	require.NoError(t, config.EnsureConfigDir())

	stat, err := os.Stat(filepath.Join(tmpHome, ".ecofocus"))
	require.NoError(t, err)
	assert.True(t, stat.IsDir())
}

func TestEnsureLogDir(t *testing.T) {
	isolate(t)
	t.Cleanup(config.ResetGlobalConfigForTest)

	cfg := config.Default()
	config.SetGlobalConfig(cfg)
	require.NoError(t, config.EnsureLogDir())

	logFile := filepath.Join(t.TempDir(), "a", "b", "ecofocus.log")
	cfg.Logging.File = logFile
	require.NoError(t, config.EnsureLogDir())

	stat, err := os.Stat(filepath.Dir(logFile))
	require.NoError(t, err)
	assert.True(t, stat.IsDir())
}
