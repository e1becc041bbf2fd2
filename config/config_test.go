package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/classgen/errors"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "src/generated", cfg.Output.Dir)
	assert.Equal(t, "  ", cfg.Output.Indent)
	assert.Equal(t, ".ts", cfg.Output.Extension)
	assert.Equal(t, "Code generated by classgen. DO NOT EDIT.", cfg.Output.Header)
	assert.Equal(t, ".classgen", cfg.Generate.Source)
	assert.True(t, cfg.Generate.PromoteConstructorProperties)
	assert.Empty(t, cfg.Generate.Target)
	assert.Zero(t, cfg.Generate.Jobs)
	assert.Equal(t, []string{"**/*.yaml", "**/*.yml", "**/*.toml", "**/*.json"}, cfg.Generate.Include)
	assert.Empty(t, cfg.Format.Command)
	assert.Equal(t, 200*time.Millisecond, cfg.Watch.Debounce())
}

func TestLoadWithoutProjectFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadProjectFile(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
[output]
dir = "web/models"
indent = "    "

[generate]
promote_constructor_properties = false
target = "4.9"
jobs = 2
include = ["*.yaml"]

[format]
command = "prettier --write"
`)
	nested := filepath.Join(root, "packages", "app")
	require.NoError(t, os.MkdirAll(nested, 0755))

	cfg, err := Load(nested)
	require.NoError(t, err)

	assert.Equal(t, "web/models", cfg.Output.Dir)
	assert.Equal(t, "    ", cfg.Output.Indent)
	assert.Equal(t, ".ts", cfg.Output.Extension, "unset keys keep their defaults")
	assert.False(t, cfg.Generate.PromoteConstructorProperties)
	assert.Equal(t, "4.9", cfg.Generate.Target)
	assert.Equal(t, 2, cfg.Generate.Jobs)
	assert.Equal(t, []string{"*.yaml"}, cfg.Generate.Include)
	assert.Equal(t, "prettier --write", cfg.Format.Command)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[output]\ndir = \"from-file\"\n")
	t.Setenv("CLASSGEN_OUTPUT_DIR", "from-env")
	t.Setenv("CLASSGEN_GENERATE_JOBS", "4")
	t.Setenv("CLASSGEN_GENERATE_PROMOTE_CONSTRUCTOR_PROPERTIES", "false")

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Output.Dir)
	assert.Equal(t, 4, cfg.Generate.Jobs)
	assert.False(t, cfg.Generate.PromoteConstructorProperties)
}

func TestLoadInvalidFile(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "[generate]\njobs = -1\n")

	_, err := Load(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration in "+path)
	assert.Contains(t, err.Error(), "generate.jobs must be >= 0")
}

func TestLoadMalformedFile(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[output\n")

	_, err := Load(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[watch]\ndebounce_ms = 50\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 50*time.Millisecond, cfg.Watch.Debounce())

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"tab indent", func(c *Config) { c.Output.Indent = "\t" }, ""},
		{"empty dir", func(c *Config) { c.Output.Dir = "" }, "output.dir cannot be empty"},
		{"empty indent", func(c *Config) { c.Output.Indent = "" }, "output.indent cannot be empty"},
		{"bad indent", func(c *Config) { c.Output.Indent = "--" }, "output.indent must be spaces or tabs"},
		{"extension without dot", func(c *Config) { c.Output.Extension = "ts" }, "output.extension must start with a dot"},
		{"header closes comment", func(c *Config) { c.Output.Header = "oops */" }, "output.header cannot contain */"},
		{"negative jobs", func(c *Config) { c.Generate.Jobs = -2 }, "generate.jobs must be >= 0, got -2"},
		{"bad target", func(c *Config) { c.Generate.Target = "latest" }, "generate.target"},
		{"valid target", func(c *Config) { c.Generate.Target = "5.4.2" }, ""},
		{"empty include", func(c *Config) { c.Generate.Include = []string{"*.yaml", " "} }, "generate.include cannot contain empty patterns"},
		{"malformed include", func(c *Config) { c.Generate.Include = []string{"**/[abc.yaml"} }, `generate.include has an invalid pattern "**/[abc.yaml"`},
		{"brace include", func(c *Config) { c.Generate.Include = []string{"**/*.{yaml,yml}"} }, ""},
		{"negative debounce", func(c *Config) { c.Watch.DebounceMS = -1 }, "watch.debounce_ms must be >= 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFindProjectConfig(t *testing.T) {
	root := t.TempDir()
	deep := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(deep, 0755))

	path := writeConfig(t, filepath.Join(root, "a"), "")
	assert.Equal(t, path, FindProjectConfig(deep))
	assert.Equal(t, path, FindProjectConfig(filepath.Join(root, "a")))

	// a directory named like the config file is not a config file
	require.NoError(t, os.Mkdir(filepath.Join(deep, FileName), 0755))
	assert.Equal(t, path, FindProjectConfig(deep))
}

func TestDescribe(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "[output]\nindent = \"\\t\"\n")
	t.Setenv("CLASSGEN_GENERATE_TARGET", "5.0")

	v, err := NewViper(root)
	require.NoError(t, err)

	settings := map[string]Setting{}
	for _, s := range Describe(v) {
		settings[s.Key] = s
	}

	assert.Equal(t, Setting{Key: "output.indent", Value: "\t", Source: SourceFile, SourcePath: path}, settings["output.indent"])
	assert.Equal(t, Setting{Key: "generate.target", Value: "5.0", Source: SourceEnvironment, SourcePath: "CLASSGEN_GENERATE_TARGET"}, settings["generate.target"])
	assert.Equal(t, SourceDefault, settings["output.dir"].Source)
	assert.Empty(t, settings["output.dir"].SourcePath)

	keys := make([]string, 0, len(settings))
	for _, s := range Describe(v) {
		keys = append(keys, s.Key)
	}
	assert.IsIncreasing(t, keys)
}

func TestEnvVar(t *testing.T) {
	assert.Equal(t, "CLASSGEN_OUTPUT_DIR", EnvVar("output.dir"))
	assert.Equal(t, "CLASSGEN_GENERATE_PROMOTE_CONSTRUCTOR_PROPERTIES", EnvVar("generate.promote_constructor_properties"))
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	require.NoError(t, WriteDefault(path, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# classgen configuration.")
	assert.Contains(t, string(data), "[output]")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestWriteDefaultRefusesOverwrite(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[output]\ndir = \"mine\"\n")

	err := WriteDefault(path, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConflict))
	assert.Contains(t, errors.FlattenHints(err), "--force")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[output]\ndir = \"mine\"\n", string(data))
}

func TestWriteDefaultForceRotatesBackups(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "first\n")

	require.NoError(t, WriteDefault(path, true))
	require.NoError(t, os.WriteFile(path, []byte("second\n"), 0644))
	require.NoError(t, WriteDefault(path, true))

	back1, err := os.ReadFile(path + ".back1")
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(back1))

	back2, err := os.ReadFile(path + ".back2")
	require.NoError(t, err)
	assert.Equal(t, "first\n", string(back2))

	_, err = os.Stat(path + ".back3")
	assert.True(t, os.IsNotExist(err))
}
