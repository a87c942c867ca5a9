package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecofocus/internal/config"
)

func TestShouldUseInteractiveTUI(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	tests := []struct {
		name   string
		format string
		plain  bool
		w      io.Writer
	}{
		{"buffer", config.FormatTable, false, &bytes.Buffer{}},
		{"regular file", config.FormatTable, false, f},
		{"plain", config.FormatTable, true, os.Stdout},
		{"json", config.FormatJSON, false, os.Stdout},
		{"yaml", config.FormatYAML, false, os.Stdout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, shouldUseInteractiveTUI(tt.format, tt.plain, tt.w))
		})
	}
}
