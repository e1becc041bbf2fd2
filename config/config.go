// Package config loads classgen settings from classgen.toml and CLASSGEN_*
// environment variables.
package config

import "time"

const (
	// FileName is the project configuration file, found by walking up from
	// the working directory
	FileName = "classgen.toml"

	// EnvPrefix prefixes environment overrides: output.dir is CLASSGEN_OUTPUT_DIR
	EnvPrefix = "CLASSGEN"
)

// Config represents the generator configuration
type Config struct {
	Output   OutputConfig   `mapstructure:"output" toml:"output" json:"output" yaml:"output"`
	Generate GenerateConfig `mapstructure:"generate" toml:"generate" json:"generate" yaml:"generate"`
	Format   FormatConfig   `mapstructure:"format" toml:"format" json:"format" yaml:"format"`
	Watch    WatchConfig    `mapstructure:"watch" toml:"watch" json:"watch" yaml:"watch"`
}

// OutputConfig controls where and how modules are written
type OutputConfig struct {
	Dir       string `mapstructure:"dir" toml:"dir" json:"dir" yaml:"dir"`
	Indent    string `mapstructure:"indent" toml:"indent" json:"indent" yaml:"indent"`
	Header    string `mapstructure:"header" toml:"header" json:"header" yaml:"header"`             // line comment atop every module
	Extension string `mapstructure:"extension" toml:"extension" json:"extension" yaml:"extension"` // e.g. ".ts"
}

// GenerateConfig controls how descriptions become classes
type GenerateConfig struct {
	// Source is the description directory used when no paths are given
	Source string `mapstructure:"source" toml:"source" json:"source" yaml:"source"`

	PromoteConstructorProperties bool `mapstructure:"promote_constructor_properties" toml:"promote_constructor_properties" json:"promote_constructor_properties" yaml:"promote_constructor_properties"`

	// Target is the TypeScript version the output must compile with; empty skips the check
	Target string `mapstructure:"target" toml:"target" json:"target" yaml:"target"`

	Jobs    int      `mapstructure:"jobs" toml:"jobs" json:"jobs" yaml:"jobs"`             // 0 = one per CPU
	Include []string `mapstructure:"include" toml:"include" json:"include" yaml:"include"` // description globs, relative to the source directory
}

// FormatConfig configures an optional formatter run on written modules
type FormatConfig struct {
	// Command is split shell-style; the written file paths are appended
	Command string `mapstructure:"command" toml:"command" json:"command" yaml:"command"`
}

// WatchConfig configures classgen watch
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" toml:"debounce_ms" json:"debounce_ms" yaml:"debounce_ms"`
}

// Debounce returns the debounce period as a duration
func (w WatchConfig) Debounce() time.Duration {
	return time.Duration(w.DebounceMS) * time.Millisecond
}
