package config

import "time"

const (
	DefaultExtension = ".ebnf"
	DefaultDebounce  = 100 * time.Millisecond
	DefaultFormat    = "text"
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in every unset field of cfg.
func ApplyDefaults(cfg *Config) {
	if len(cfg.Workspace.Extensions) == 0 {
		cfg.Workspace.Extensions = []string{DefaultExtension}
	}
	if cfg.Workspace.Debounce == 0 {
		cfg.Workspace.Debounce = DefaultDebounce
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = DefaultFormat
	}
	if cfg.Output.Color == "" {
		cfg.Output.Color = ColorAuto
	}
}
