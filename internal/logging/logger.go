// Package logging builds the zerolog loggers used across ecofocus and
// carries them, with a per-run trace ID, through context.Context.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Output destinations.
const (
	OutputStderr = "stderr"
	OutputStdout = "stdout"
	OutputFile   = "file"
)

// Formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Config describes how a logger writes.
type Config struct {
	Level  string
	Format string
	Output string
	File   string
	Caller bool
}

// LogPathResult is the outcome of NewLoggerWithPath.
type LogPathResult struct {
	Logger         zerolog.Logger
	UsingFile      bool
	FilePath       string
	FallbackUsed   bool
	FallbackReason string

	file *os.File
}

// Close releases the log file, if one was opened.
func (r LogPathResult) Close() error {
	if r.file == nil {
		return nil
	}
	return r.file.Close()
}

// NewLogger returns a logger for cfg. File errors fall back to stderr.
func NewLogger(cfg Config) zerolog.Logger {
	return NewLoggerWithPath(cfg).Logger
}

// NewLoggerWithPath returns a logger for cfg and reports where it writes.
// When the log file cannot be opened the logger writes to stderr and the
// result explains why.
func NewLoggerWithPath(cfg Config) LogPathResult {
	var (
		result LogPathResult
		out    io.Writer = os.Stderr
	)
	switch cfg.Output {
	case OutputStdout:
		out = os.Stdout
	case OutputFile:
		f, err := openLogFile(cfg.File)
		if err != nil {
			result.FallbackUsed = true
			result.FallbackReason = err.Error()
			break
		}
		out = f
		result.file = f
		result.UsingFile = true
		result.FilePath = cfg.File
	}
	result.Logger = newLogger(out, cfg)
	return result
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("no log file configured")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

func newLogger(out io.Writer, cfg Config) zerolog.Logger {
	if strings.EqualFold(cfg.Format, FormatConsole) {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}
	ctx := zerolog.New(out).Level(lvl).Hook(TraceIDHook()).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// ComponentLogger returns logger tagged with a component field.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// FromContext returns the logger stored in ctx, or the global logger when
// there is none.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
			return l
		}
	}
	return &log.Logger
}

// PrintLogPathMessage tells the user where logs are written.
func PrintLogPathMessage(w io.Writer, path string) {
	_, _ = fmt.Fprintf(w, "Logging to %s\n", path)
}

// PrintFallbackWarning tells the user file logging is unavailable.
func PrintFallbackWarning(w io.Writer, reason string) {
	_, _ = fmt.Fprintf(w, "Warning: file logging unavailable (%s), logging to stderr\n", reason)
}
