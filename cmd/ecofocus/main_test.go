package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/ecofocus/internal/cli"
	"github.com/rshade/ecofocus/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version.GetVersion())
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.GetVersion())
		assert.NotNil(t, root)
		assert.Equal(t, "ecofocus", root.Use)
	})
}

func TestRunExitCodes(t *testing.T) {
	t.Setenv("ECOFOCUS_HOME", t.TempDir())
	t.Setenv("ECOFOCUS_LOG_LEVEL", "error")

	assert.Equal(t, 0, run(context.Background(), []string{"--version"}))
	assert.Equal(t, 1, run(context.Background(), []string{"simulate"}))
	assert.Equal(t, 1, run(context.Background(), []string{"no-such-command"}))
}
