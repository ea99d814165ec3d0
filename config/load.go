package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Load reads the configuration file at path from fsys, applies defaults and
// validates the result.
func Load(fsys afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnvOverrides loads the configuration like Load and then applies
// EBNFPT_* environment variables. A missing file at path yields the defaults
// so that the commands work without any configuration.
func LoadWithEnvOverrides(fsys afero.Fs, path string) (*Config, error) {
	cfg, err := Load(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = Default(), nil
	}
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg, os.Getenv)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config, getenv func(string) string) {
	if val := getenv("EBNFPT_LOG_VERBOSITY"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			cfg.Log.Verbosity = v
		}
	}
	if val := getenv("EBNFPT_LOG_FILE"); val != "" {
		cfg.Log.File = val
	}
	if val := getenv("EBNFPT_WORKSPACE_EXTENSIONS"); val != "" {
		cfg.Workspace.Extensions = strings.Split(val, ",")
	}
	if val := getenv("EBNFPT_OUTPUT_FORMAT"); val != "" {
		cfg.Output.Format = val
	}
	if val := getenv("EBNFPT_OUTPUT_COLOR"); val != "" {
		cfg.Output.Color = val
	}
}
