package logging_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecofocus/internal/logging"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := logging.NewLogger(logging.Config{Level: tt.level})
			assert.Equal(t, tt.want, l.GetLevel())
		})
	}
}

func TestNewLoggerWithPathFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ecofocus.log")
	result := logging.NewLoggerWithPath(logging.Config{Level: "info", Output: logging.OutputFile, File: path})
	t.Cleanup(func() { _ = result.Close() })

	require.True(t, result.UsingFile)
	assert.False(t, result.FallbackUsed)
	result.Logger.Info().Msg("hello")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"message":"hello"`)
}

func TestNewLoggerWithPathFallback(t *testing.T) {
	result := logging.NewLoggerWithPath(logging.Config{Output: logging.OutputFile})
	assert.False(t, result.UsingFile)
	assert.True(t, result.FallbackUsed)
	assert.NotEmpty(t, result.FallbackReason)
	assert.NoError(t, result.Close())
}

func TestTraceIDs(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, logging.TraceIDFromContext(ctx))

	id := logging.GetOrGenerateTraceID(ctx)
	assert.Len(t, id, 26)

	ctx = logging.ContextWithTraceID(ctx, id)
	assert.Equal(t, id, logging.GetOrGenerateTraceID(ctx))
	assert.NotEqual(t, logging.NewID(), logging.NewID())
}

func TestContextLoggerCarriesComponentAndTrace(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf).Hook(logging.TraceIDHook())
	logger := logging.ComponentLogger(base, "simulator")

	ctx := logging.ContextWithTraceID(context.Background(), "trace-1")
	ctx = logger.WithContext(ctx)

	logging.FromContext(ctx).Info().Ctx(ctx).Msg("done")

	assert.Contains(t, buf.String(), `"component":"simulator"`)
	assert.Contains(t, buf.String(), `"trace_id":"trace-1"`)
}

func TestFromContextWithoutLogger(t *testing.T) {
	assert.NotNil(t, logging.FromContext(context.Background()))
	//nolint:staticcheck // A nil context must not panic.
	assert.NotNil(t, logging.FromContext(nil))
}

func TestPrintMessages(t *testing.T) {
	var buf bytes.Buffer
	logging.PrintLogPathMessage(&buf, "/tmp/x.log")
	logging.PrintFallbackWarning(&buf, "denied")
	assert.Contains(t, buf.String(), "/tmp/x.log")
	assert.Contains(t, buf.String(), "denied")
}
