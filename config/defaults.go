package config

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Output defaults
	v.SetDefault("output.dir", "src/generated")
	v.SetDefault("output.indent", "  ")
	v.SetDefault("output.header", "Code generated by classgen. DO NOT EDIT.")
	v.SetDefault("output.extension", ".ts")

	// Generation defaults
	v.SetDefault("generate.source", ".classgen")
	v.SetDefault("generate.promote_constructor_properties", true)
	v.SetDefault("generate.target", "")
	v.SetDefault("generate.jobs", 0)
	v.SetDefault("generate.include", []string{"**/*.yaml", "**/*.yml", "**/*.toml", "**/*.json"})

	// Formatter is off unless configured
	v.SetDefault("format.command", "")

	v.SetDefault("watch.debounce_ms", 200)
}

// Default returns the configuration made of defaults alone
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		// the defaults above are valid
		panic(err)
	}
	return cfg
}
