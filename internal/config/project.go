package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/rshade/ecofocus/internal/logging"
)

const projectDirName = ".ecofocus"

// ErrNoProject is returned by FindProject when no ancestor directory holds
// a project configuration.
var ErrNoProject = errors.New("no .ecofocus project directory found")

// ResolveProjectDir determines the project-local .ecofocus directory path.
// It checks (in order):
//  1. flagValue (--project-dir CLI flag)
//  2. ECOFOCUS_PROJECT_DIR env var
//  3. the closest ancestor of startDir holding .ecofocus/config.yaml
//
// Returns an absolute path, or an empty string if no project was found.
// Does NOT create the directory.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}

	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	root, err := FindProject(startDir)
	if err != nil {
		if !errors.Is(err, ErrNoProject) {
			logger := logging.FromContext(ctx)
			logger.Warn().
				Str("component", "config").
				Err(err).
				Str("start_dir", startDir).
				Msg("unexpected error during project discovery")
		}
		return ""
	}

	return toAbsProjectDir(ctx, root)
}

// FindProject walks up from startDir and returns the first directory that
// contains .ecofocus/config.yaml.
func FindProject(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	for {
		if _, statErr := os.Stat(filepath.Join(dir, projectDirName, configFileName)); statErr == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoProject
		}
		dir = parent
	}
}

// NewWithProjectDir creates a Config by loading the global config then
// shallow-merging the project-local config on top. If projectDir is empty,
// it behaves like New.
func NewWithProjectDir(ctx context.Context, projectDir string) *Config {
	cfg := New()

	if projectDir == "" {
		return cfg
	}

	overlayPath := filepath.Join(projectDir, configFileName)
	if _, err := os.Stat(overlayPath); err != nil {
		return cfg
	}

	merged := New()
	err := ShallowMergeYAML(merged, overlayPath)
	if err == nil {
		err = merged.Validate()
	}
	if err != nil {
		logMergeFailure(ctx, overlayPath, err)
		return cfg
	}
	return merged
}

func logMergeFailure(ctx context.Context, overlayPath string, err error) {
	logger := logging.FromContext(ctx)
	logger.Warn().
		Str("component", "config").
		Str("operation", "merge_project_config").
		Err(err).
		Str("overlay_path", overlayPath).
		Msg("failed to merge project config, using global defaults")
}

// toAbsProjectDir converts dir to an absolute path and appends ".ecofocus"
// unless it already ends with it.
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}

	if filepath.Base(abs) == projectDirName {
		return abs
	}

	return filepath.Join(abs, projectDirName)
}
