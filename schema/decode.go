package schema

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-json-experiment/json"
	"gopkg.in/yaml.v3"

	"github.com/teranos/classgen/errors"
)

// Format is a description file encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatOf returns the format implied by path's extension
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	case ".json":
		return FormatJSON, true
	}
	return "", false
}

// Load reads and decodes the description at path
func Load(path string) (File, error) {
	format, ok := FormatOf(path)
	if !ok {
		return File{}, errors.WithHint(
			errors.Mark(errors.Newf("%s: unsupported description format", path), errors.ErrInvalidDescription),
			"descriptions end in .yaml, .yml, .toml or .json",
		)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, errors.Wrapf(err, "failed to read %s", path)
	}
	f, err := Decode(data, format)
	if err != nil {
		return File{}, errors.Wrapf(err, "%s", path)
	}
	return f, nil
}

// Decode parses a description. Unknown keys are rejected so typos surface
// instead of being silently ignored.
func Decode(data []byte, format Format) (File, error) {
	var f File
	var err error
	switch format {
	case FormatYAML:
		err = decodeYAML(data, &f)
	case FormatTOML:
		err = decodeTOML(data, &f)
	case FormatJSON:
		err = json.Unmarshal(data, &f, json.RejectUnknownMembers(true))
	default:
		err = errors.Newf("unknown format %q", format)
	}
	if err != nil {
		return File{}, errors.WrapInvalidDescription(err, "failed to decode "+string(format))
	}
	return f, nil
}

func decodeYAML(data []byte, f *File) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func decodeTOML(data []byte, f *File) error {
	meta, err := toml.Decode(string(data), f)
	if err != nil {
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.Newf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}
