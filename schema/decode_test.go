package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/classgen/errors"
)

const userYAML = `module: models/user
header: Generated.
imports:
  Model: ./model
classes:
  - name: User
    modifiers: [export]
    extends: Model
    promote: true
    properties:
      - name: id
        type: string
        modifiers: [readonly]
    constructor:
      params:
        - name: id
          type: string
      body: |
        this.id = id;
    methods:
      - name: describe
        returns: string
        body: |
          return this.id;
`

const userTOML = `module = "models/user"
header = "Generated."

[imports]
Model = "./model"

[[classes]]
name = "User"
modifiers = ["export"]
extends = "Model"
promote = true

[[classes.properties]]
name = "id"
type = "string"
modifiers = ["readonly"]

[classes.constructor]
body = """
this.id = id;
"""

[[classes.constructor.params]]
name = "id"
type = "string"

[[classes.methods]]
name = "describe"
returns = "string"
body = """
return this.id;
"""
`

const userJSON = `{
  "module": "models/user",
  "header": "Generated.",
  "imports": {"Model": "./model"},
  "classes": [
    {
      "name": "User",
      "modifiers": ["export"],
      "extends": "Model",
      "promote": true,
      "properties": [
        {"name": "id", "type": "string", "modifiers": ["readonly"]}
      ],
      "constructor": {
        "params": [{"name": "id", "type": "string"}],
        "body": "this.id = id;\n"
      },
      "methods": [
        {"name": "describe", "returns": "string", "body": "return this.id;\n"}
      ]
    }
  ]
}
`

func expectedUser() File {
	promote := true
	return File{
		Module:  "models/user",
		Header:  "Generated.",
		Imports: map[string]string{"Model": "./model"},
		Classes: []Class{{
			Name:      "User",
			Modifiers: []string{"export"},
			Extends:   "Model",
			Promote:   &promote,
			Properties: []Property{
				{Name: "id", Type: "string", Modifiers: []string{"readonly"}},
			},
			Constructor: &Function{
				Params: []Param{{Name: "id", Type: "string"}},
				Body:   "this.id = id;\n",
			},
			Methods: []Function{
				{Name: "describe", Returns: "string", Body: "return this.id;\n"},
			},
		}},
	}
}

func TestDecodeFormatsAgree(t *testing.T) {
	tests := []struct {
		format Format
		data   string
	}{
		{FormatYAML, userYAML},
		{FormatTOML, userTOML},
		{FormatJSON, userJSON},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			got, err := Decode([]byte(tt.data), tt.format)
			require.NoError(t, err)
			assert.Equal(t, expectedUser(), got)
		})
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	tests := []struct {
		format Format
		data   string
	}{
		{FormatYAML, "classes:\n  - name: A\n    extend: B\n"},
		{FormatTOML, "[[classes]]\nname = \"A\"\nextend = \"B\"\n"},
		{FormatJSON, `{"classes": [{"name": "A", "extend": "B"}]}`},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			_, err := Decode([]byte(tt.data), tt.format)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidDescription))
			assert.Contains(t, err.Error(), "extend")
		})
	}
}

func TestDecodeEmptyYAML(t *testing.T) {
	f, err := Decode(nil, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, File{}, f)
}

func TestDecodeUnknownFormat(t *testing.T) {
	_, err := Decode([]byte("x"), Format("ini"))
	assert.True(t, errors.Is(err, errors.ErrInvalidDescription))
}

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"a.yaml":     FormatYAML,
		"a.YML":      FormatYAML,
		"dir/a.toml": FormatTOML,
		"a.json":     FormatJSON,
	}
	for path, want := range tests {
		got, ok := FormatOf(path)
		assert.True(t, ok, path)
		assert.Equal(t, want, got, path)
	}

	_, ok := FormatOf("a.ts")
	assert.False(t, ok)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "user.yaml")
	require.NoError(t, os.WriteFile(path, []byte(userYAML), 0644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, expectedUser(), f)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "user.ini")
	require.NoError(t, os.WriteFile(bad, []byte("x"), 0644))
	_, err = Load(bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidDescription))
	assert.NotEmpty(t, errors.GetAllHints(err))
}
