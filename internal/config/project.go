package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/rshade/voltwise/internal/logging"
)

// ProjectConfigFile is the project-local overlay looked up from the working directory.
const ProjectConfigFile = ".voltwise.yaml"

// errNoProject is returned by FindProjectFile when no overlay exists up to the root.
var errNoProject = errors.New("no " + ProjectConfigFile + " found")

// ResolveProjectFile determines the project-local overlay path.
// It checks (in order):
//  1. flagValue (--project-dir CLI flag)
//  2. VOLTWISE_PROJECT_DIR env var
//  3. a walk up from startDir looking for .voltwise.yaml
//
// Returns an absolute path, or "" if no project overlay applies.
func ResolveProjectFile(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return projectFileIn(ctx, flagValue)
	}
	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return projectFileIn(ctx, envDir)
	}

	path, err := FindProjectFile(startDir)
	if err != nil {
		if !errors.Is(err, errNoProject) {
			logger := logging.FromContext(ctx)
			logger.Warn().
				Str("component", "config").
				Err(err).
				Str("start_dir", startDir).
				Msg("unexpected error during project config discovery")
		}
		return ""
	}
	return path
}

// FindProjectFile walks up from startDir to the filesystem root and returns
// the first .voltwise.yaml found.
func FindProjectFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, ProjectConfigFile)
		info, statErr := os.Stat(candidate)
		switch {
		case statErr == nil && !info.IsDir():
			return candidate, nil
		case statErr != nil && !errors.Is(statErr, os.ErrNotExist):
			return "", statErr
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errNoProject
		}
		dir = parent
	}
}

// NewWithProjectFile creates a Config by loading global config then
// shallow-merging the project overlay on top. Environment overrides are
// reapplied afterwards so they keep the highest precedence. If projectFile
// is empty or missing, behaves identically to New().
func NewWithProjectFile(ctx context.Context, projectFile string) *Config {
	cfg := New()
	if projectFile == "" {
		return cfg
	}
	if _, err := os.Stat(projectFile); err != nil {
		return cfg
	}

	if err := ShallowMergeYAML(cfg, projectFile); err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", projectFile).
			Msg("failed to merge project config, using global settings")
		return New()
	}

	cfg.ApplyEnv(os.LookupEnv)
	return cfg
}

func projectFileIn(ctx context.Context, dir string) string {
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
	if filepath.Base(abs) == ProjectConfigFile {
		return abs
	}
	return filepath.Join(abs, ProjectConfigFile)
}
