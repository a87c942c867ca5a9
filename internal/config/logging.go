package config

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/ecofocus/internal/logging"
)

// Logger is the global zerolog logger instance.
//
//nolint:gochecknoglobals // Logger is intentionally global for application-wide structured logging
var Logger zerolog.Logger

// logFileHandle tracks the current log file for cleanup.
//
//nolint:gochecknoglobals // Tracks the global logger's file handle for proper cleanup
var logFileHandle *os.File

// logMu protects concurrent access to logFileHandle and Logger.
//
//nolint:gochecknoglobals // Guards the global logger state
var logMu sync.RWMutex

// InitLogger sets the global Logger to write to stderr at level, and also
// to logFile when it is not empty. An unknown level means info.
func InitLogger(level, logFile string) error {
	logMu.Lock()
	defer logMu.Unlock()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}}

	closeLogFileLocked()

	if logFile != "" {
		if mkErr := os.MkdirAll(filepath.Dir(logFile), 0o700); mkErr != nil {
			return mkErr
		}
		f, openErr := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if openErr != nil {
			return openErr
		}
		logFileHandle = f
		writers = append(writers, f)
	}

	Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().
		Timestamp().
		Logger()
	return nil
}

// SetLogLevel changes the level of the global Logger. An unknown level
// means info.
func SetLogLevel(level string) {
	logMu.Lock()
	defer logMu.Unlock()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	Logger = Logger.Level(lvl)
}

// CloseLogFile closes the current log file, if any, and points the Logger
// back at stderr.
func CloseLogFile() {
	logMu.Lock()
	defer logMu.Unlock()
	closeLogFileLocked()
}

// closeLogFileLocked must be called with logMu held.
func closeLogFileLocked() {
	if logFileHandle == nil {
		return
	}
	_ = logFileHandle.Close()
	logFileHandle = nil

	Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(Logger.GetLevel()).
		With().
		Timestamp().
		Logger()
}

// GetLogger returns the global logger instance.
func GetLogger() zerolog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return Logger
}

//nolint:gochecknoinits // the package logger must exist before any configuration is loaded
func init() {
	_ = InitLogger("info", "")
}

// ToLoggingConfig converts the logging section into a logging.Config. A
// configured file selects file output, otherwise logs go to stderr.
func (lc *LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = outputTypeFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// GetLoggingConfig returns a copy of the Logging section of the global
// configuration. Flag overrides such as --debug are applied by the caller.
func GetLoggingConfig() LoggingConfig {
	return GetGlobalConfig().Logging
}
