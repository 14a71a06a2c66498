package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-pegs/internal/config"
	"github.com/alnah/go-pegs/internal/fileutil"
	"github.com/alnah/go-pegs/internal/hints"
)

// envPrefix marks the environment variables read by pegs.
const envPrefix = "PEGS_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
// Priority: CLI flags > environment > config file > defaults.
type envConfig struct {
	ConfigPath string // PEGS_CONFIG: config file name or path
	Style      string // PEGS_STYLE: style name or CSS path
	Input      string // PEGS_INPUT: default input document
	Output     string // PEGS_OUTPUT: default rendered page
	Format     string // PEGS_FORMAT: lint output format
	Workers    int    // PEGS_WORKERS: parallel lint workers
}

// knownEnvVars lists valid PEGS_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"PEGS_CONFIG":  true,
	"PEGS_STYLE":   true,
	"PEGS_INPUT":   true,
	"PEGS_OUTPUT":  true,
	"PEGS_FORMAT":  true,
	"PEGS_WORKERS": true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("PEGS_CONFIG"),
		Style:      os.Getenv("PEGS_STYLE"),
		Input:      os.Getenv("PEGS_INPUT"),
		Output:     os.Getenv("PEGS_OUTPUT"),
		Format:     os.Getenv("PEGS_FORMAT"),
	}

	if workers := os.Getenv("PEGS_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for each unrecognized PEGS_* variable.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config values with the environment values that are set.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" {
		cfg.Render.Style = env.Style
	}
	if env.Input != "" {
		cfg.Input.DefaultFile = env.Input
	}
	if env.Output != "" {
		cfg.Output.DefaultFile = env.Output
	}
}

// loadConfig loads the config named by flagValue, then PEGS_CONFIG.
// Without either, pegs.yaml is used when found and defaults otherwise.
// Environment overrides are applied to the result.
func loadConfig(flagValue string, env *envConfig) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = env.ConfigPath
	}

	if name == "" {
		cfg, err := config.LoadConfig(config.DefaultName)
		switch {
		case err == nil:
		case errors.Is(err, config.ErrConfigNotFound):
			cfg = config.DefaultConfig()
		default:
			return nil, fmt.Errorf("loading config: %w", err)
		}
		applyEnvConfig(env, cfg)
		return cfg, nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	applyEnvConfig(env, cfg)
	return cfg, nil
}
