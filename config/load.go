package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/classgen/errors"
)

// Load reads the configuration for the project containing dir. Precedence,
// lowest first: defaults, the nearest classgen.toml at or above dir,
// CLASSGEN_* environment variables.
func Load(dir string) (*Config, error) {
	v, err := NewViper(dir)
	if err != nil {
		return nil, err
	}
	return LoadWithViper(v)
}

// NewViper returns a Viper instance with defaults, the project file found
// from dir, and environment binding
func NewViper(dir string) (*viper.Viper, error) {
	v := newEnvViper()
	SetDefaults(v)

	if path := FindProjectConfig(dir); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
	}
	return v, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(configPath string) (*Config, error) {
	v, err := NewViperFromFile(configPath)
	if err != nil {
		return nil, err
	}
	return LoadWithViper(v)
}

// NewViperFromFile returns a Viper instance with defaults, the given file
// and environment binding
func NewViperFromFile(configPath string) (*viper.Viper, error) {
	v := newEnvViper()
	SetDefaults(v)
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}
	return v, nil
}

// LoadWithViper loads and validates configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		if used := v.ConfigFileUsed(); used != "" {
			return nil, errors.Wrapf(err, "invalid configuration in %s", used)
		}
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

func newEnvViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// FindProjectConfig searches for classgen.toml by walking up the directory
// tree from dir. Returns the path to the first file found, or empty string.
func FindProjectConfig(dir string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, FileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return ""
		}
		dir = parent
	}
}

// Source is where a setting's effective value came from
type Source string

const (
	SourceDefault     Source = "default"
	SourceFile        Source = "file"
	SourceEnvironment Source = "environment"
)

// Setting is one effective configuration value and its origin
type Setting struct {
	Key        string      `json:"key"`
	Value      interface{} `json:"value"`
	Source     Source      `json:"source"`
	SourcePath string      `json:"source_path,omitempty"` // file path or environment variable
}

// Describe lists every setting known to v with the source of its value,
// sorted by key
func Describe(v *viper.Viper) []Setting {
	keys := v.AllKeys()
	sort.Strings(keys)

	settings := make([]Setting, 0, len(keys))
	for _, key := range keys {
		s := Setting{Key: key, Value: v.Get(key), Source: SourceDefault}
		envKey := EnvVar(key)
		switch {
		case os.Getenv(envKey) != "":
			s.Source, s.SourcePath = SourceEnvironment, envKey
		case v.InConfig(key):
			s.Source, s.SourcePath = SourceFile, v.ConfigFileUsed()
		}
		settings = append(settings, s)
	}
	return settings
}

// EnvVar returns the environment variable overriding key
func EnvVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
