// Package config holds the settings shared by the ebnfpt commands.
//
// Settings are read from a YAML file, completed with defaults, overridden by
// EBNFPT_* environment variables and validated:
//
//	log:
//	  verbosity: 1
//	  file: /tmp/ebnfpt.log
//	workspace:
//	  extensions: [".ebnf", ".bnf"]
//	  include_hidden: false
//	  debounce: 100ms
//	output:
//	  format: text
//	  color: auto
package config

import "time"

type Config struct {
	Log       LogConfig       `yaml:"log"`
	Workspace WorkspaceConfig `yaml:"workspace"`
	Output    OutputConfig    `yaml:"output"`
}

type LogConfig struct {
	// Verbosity is passed to commonlog: 0 logs notices and above, each step
	// up adds a level, negative values silence more.
	Verbosity int `yaml:"verbosity"`
	// File receives the log instead of stderr when set.
	File string `yaml:"file"`
}

type WorkspaceConfig struct {
	// Extensions selects which files are grammars.
	Extensions    []string      `yaml:"extensions"`
	IncludeHidden bool          `yaml:"include_hidden"`
	Debounce      time.Duration `yaml:"debounce"`
}

type OutputConfig struct {
	Format string `yaml:"format"`
	// Color is one of auto, always or never.
	Color string `yaml:"color"`
}

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)
