package display

import (
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// MarshalJSON marshals v as indented JSON. Map keys are sorted so output is
// stable across runs.
func MarshalJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v, jsontext.WithIndent("  "), json.Deterministic(true))
}
