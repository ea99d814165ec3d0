package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dhamidi/ebnfpt/format"
)

// Validate reports every invalid field of cfg.
func Validate(cfg *Config) error {
	var errs []error

	for _, ext := range cfg.Workspace.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			errs = append(errs, fmt.Errorf("workspace.extensions: %q must start with a dot", ext))
		}
	}
	if cfg.Workspace.Debounce < 0 {
		errs = append(errs, fmt.Errorf("workspace.debounce: must not be negative, got %s", cfg.Workspace.Debounce))
	}
	if !slices.Contains(format.Names(), cfg.Output.Format) {
		errs = append(errs, fmt.Errorf("output.format: %q is not one of %v", cfg.Output.Format, format.Names()))
	}
	switch cfg.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs = append(errs, fmt.Errorf("output.color: %q is not one of auto, always, never", cfg.Output.Color))
	}

	return errors.Join(errs...)
}
