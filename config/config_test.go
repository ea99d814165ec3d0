package config

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, []string{".ebnf"}, cfg.Workspace.Extensions)
	assert.Equal(t, 100*time.Millisecond, cfg.Workspace.Debounce)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, ColorAuto, cfg.Output.Color)
	assert.NoError(t, Validate(cfg))
}

func TestLoad(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/etc/ebnfpt.yaml", []byte(`
log:
  verbosity: 2
  file: /tmp/ebnfpt.log
workspace:
  extensions: [".ebnf", ".bnf"]
  include_hidden: true
  debounce: 250ms
output:
  format: json
`), 0o644))

	cfg, err := Load(fsys, "/etc/ebnfpt.yaml")
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Log.Verbosity)
	assert.Equal(t, "/tmp/ebnfpt.log", cfg.Log.File)
	assert.Equal(t, []string{".ebnf", ".bnf"}, cfg.Workspace.Extensions)
	assert.True(t, cfg.Workspace.IncludeHidden)
	assert.Equal(t, 250*time.Millisecond, cfg.Workspace.Debounce)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, ColorAuto, cfg.Output.Color)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"malformed", "log: [", "failed to parse"},
		{"unknown format", "output:\n  format: xml\n", "output.format"},
		{"bad color", "output:\n  color: sometimes\n", "output.color"},
		{"bad extension", "workspace:\n  extensions: [ebnf]\n", "workspace.extensions"},
		{"negative debounce", "workspace:\n  debounce: -1s\n", "workspace.debounce"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fsys, "ebnfpt.yaml", []byte(tt.content), 0o644))

			_, err := Load(fsys, "ebnfpt.yaml")
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("EBNFPT_LOG_VERBOSITY", "1")
	t.Setenv("EBNFPT_OUTPUT_FORMAT", "yaml")
	t.Setenv("EBNFPT_OUTPUT_COLOR", "never")
	t.Setenv("EBNFPT_WORKSPACE_EXTENSIONS", ".ebnf,.iso")

	cfg, err := LoadWithEnvOverrides(afero.NewMemMapFs(), "missing.yaml")
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Log.Verbosity)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.Equal(t, ColorNever, cfg.Output.Color)
	assert.Equal(t, []string{".ebnf", ".iso"}, cfg.Workspace.Extensions)
}

func TestLoadWithEnvOverridesInvalid(t *testing.T) {
	t.Setenv("EBNFPT_OUTPUT_COLOR", "rainbow")

	_, err := LoadWithEnvOverrides(afero.NewMemMapFs(), "missing.yaml")
	assert.ErrorContains(t, err, "after environment overrides")
}
