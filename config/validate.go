package config

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/teranos/classgen/compat"
	"github.com/teranos/classgen/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Output.Dir == "" {
		return errors.New("output.dir cannot be empty")
	}
	if c.Output.Indent == "" {
		return errors.New("output.indent cannot be empty")
	}
	if strings.Trim(c.Output.Indent, " \t") != "" {
		return errors.Newf("output.indent must be spaces or tabs, got %q", c.Output.Indent)
	}
	if !strings.HasPrefix(c.Output.Extension, ".") {
		return errors.Newf("output.extension must start with a dot, got %q", c.Output.Extension)
	}
	if strings.Contains(c.Output.Header, "*/") {
		return errors.New("output.header cannot contain */")
	}

	// Jobs: 0 = one per CPU, negative = invalid
	if c.Generate.Jobs < 0 {
		return errors.Newf("generate.jobs must be >= 0, got %d", c.Generate.Jobs)
	}
	if c.Generate.Target != "" {
		if _, err := compat.ParseTarget(c.Generate.Target); err != nil {
			return errors.Wrap(err, "generate.target")
		}
	}
	for _, pattern := range c.Generate.Include {
		if strings.TrimSpace(pattern) == "" {
			return errors.New("generate.include cannot contain empty patterns")
		}
		if !doublestar.ValidatePattern(pattern) {
			return errors.Newf("generate.include has an invalid pattern %q", pattern)
		}
	}

	if c.Watch.DebounceMS < 0 {
		return errors.Newf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}
	return nil
}
