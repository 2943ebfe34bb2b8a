// Package codec handles the structured-document (de)serialization used
// throughout a render pass: context documents, manifest documents, run
// configuration, and the final snapshots are all YAML with JSON accepted as
// input.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Decode parses a YAML or JSON document into generic Go values
// (map[string]any, []any, scalars). YAML is tried first; on failure the data
// is decoded as JSON. An empty document decodes to nil.
func Decode(data []byte) (any, error) {
	var out any
	if err := yaml.Unmarshal(data, &out); err != nil {
		var jsonErr error
		if jsonErr = json.Unmarshal(data, &out); jsonErr != nil {
			return nil, fmt.Errorf("codec: document is neither YAML nor JSON: %w", err)
		}
	}
	return out, nil
}

// DecodeInto parses a YAML or JSON document into the given value.
func DecodeInto(data []byte, v any) error {
	if err := yaml.Unmarshal(data, v); err != nil {
		if jsonErr := json.Unmarshal(data, v); jsonErr != nil {
			return fmt.Errorf("codec: document is neither YAML nor JSON: %w", err)
		}
	}
	return nil
}

// Encode serializes a value as YAML with two-space indentation.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("codec: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("codec: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// ReadFile loads and decodes a YAML or JSON file into generic Go values.
func ReadFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// WriteFile serializes a value as YAML and writes it to path.
func WriteFile(path string, v any) error {
	data, err := Encode(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
