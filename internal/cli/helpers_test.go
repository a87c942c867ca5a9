package cli_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/ecofocus/internal/cli"
	"github.com/rshade/ecofocus/internal/config"
)

// isolate points every ecofocus path at a temporary home, moves into an
// empty working directory, and resets the global configuration afterwards.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvProjectDir, "")
	t.Setenv(config.EnvCatalogDir, "")
	t.Setenv(config.EnvCatalogDB, "")
	t.Setenv(config.EnvOutputFormat, "")
	t.Setenv(config.EnvLogLevel, "error")
	t.Chdir(t.TempDir())
	t.Cleanup(config.ResetGlobalConfigForTest)
	config.ResetGlobalConfigForTest()
	return home
}

// runCLI executes the root command with args and returns its output.
func runCLI(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const jeanRecipe = `product: jean
materials:
  - id: ei-coton
    share: 0.9
  - id: ei-elasthane
    share: 0.1
countryFabric: CN
countryDyeing: BD
countryMaking: TN
`

const tshirtRecipe = `{"product": "tshirt", "materials": [{"id": "ei-coton", "share": 1}]}`
