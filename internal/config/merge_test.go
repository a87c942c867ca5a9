package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecofocus/internal/config"
)

// newDefaultTarget returns a Config with known non-zero values so tests can
// verify that absent overlay keys leave them intact.
func newDefaultTarget() *config.Config {
	cfg := config.Default()
	cfg.Catalog = config.CatalogConfig{Dir: "/data/catalog", Version: "~1.4"}
	cfg.Server.MemoTTL = time.Hour
	return cfg
}

// writeOverlay writes YAML content to a temp file and returns its path.
func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestShallowMergeYAML_SingleKeyOverride(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
output:
  default_format: json
  precision: 4
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "json", target.Output.DefaultFormat)
	assert.Equal(t, 4, target.Output.Precision)

	assert.Equal(t, "info", target.Logging.Level)
	assert.Equal(t, "/data/catalog", target.Catalog.Dir)
	assert.Equal(t, time.Hour, target.Server.MemoTTL)
}

func TestShallowMergeYAML_ReplacesWholeSection(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
catalog:
  db: project.db
server:
  addr: ":9090"
  memo_ttl: 30s
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, config.CatalogConfig{DB: "project.db"}, target.Catalog)
	assert.Equal(t, ":9090", target.Server.Addr)
	assert.Equal(t, 30*time.Second, target.Server.MemoTTL)
	assert.True(t, target.Cache.Enabled)
}

func TestShallowMergeYAML_IgnoresUnknownKeys(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
plugins:
  aws: {}
logging:
  level: debug
  format: json
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, "debug", target.Logging.Level)
	assert.Equal(t, "json", target.Logging.Format)
}

func TestShallowMergeYAML_EmptyFile(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, "# nothing here\n")

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, newDefaultTarget(), target)
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	tests := []struct {
		name    string
		target  *config.Config
		path    func(t *testing.T) string
		wantErr string
	}{
		{
			name:    "nil target",
			path:    func(t *testing.T) string { return writeOverlay(t, "output: {}") },
			wantErr: "nil target",
		},
		{
			name:    "missing file",
			target:  config.Default(),
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.yaml") },
			wantErr: "reading overlay file",
		},
		{
			name:    "invalid yaml",
			target:  config.Default(),
			path:    func(t *testing.T) string { return writeOverlay(t, "output: [unclosed") },
			wantErr: "parsing overlay YAML",
		},
		{
			name:    "wrong section type",
			target:  config.Default(),
			path:    func(t *testing.T) string { return writeOverlay(t, "output:\n  precision: many\n") },
			wantErr: `applying overlay section "output"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := config.ShallowMergeYAML(tt.target, tt.path(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
