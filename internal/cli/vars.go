package cli

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"

	"github.com/aretw0/espalier/internal/config"
	"github.com/aretw0/espalier/pkg/codec"
	"github.com/aretw0/espalier/pkg/schema"
)

var varRe = regexp.MustCompile(`^([\w-]+)=(.*)$`)

// ParseVars converts --var flags of the form `<name>=<value>` into a map.
// All malformed definitions are reported together.
func ParseVars(vars []string) (map[string]string, error) {
	out := make(map[string]string, len(vars))
	var bad []string
	for _, v := range vars {
		m := varRe.FindStringSubmatch(v)
		if m == nil {
			bad = append(bad, v)
			continue
		}
		out[m[1]] = m[2]
	}
	if len(bad) > 0 {
		return nil, fmt.Errorf("invalid var definitions: %v", bad)
	}
	return out, nil
}

// LoadVarFiles loads --var-file documents (YAML or JSON mappings) into a
// single var map. Later files override earlier ones. Non-string values are
// re-encoded as JSON so they travel the same path as --var values.
func LoadVarFiles(paths []string) (map[string]string, error) {
	out := map[string]string{}
	for _, path := range paths {
		doc, err := codec.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("var file %s: %w", path, err)
		}
		if doc == nil {
			continue
		}
		m, ok := doc.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("var file %s: expected a mapping, got %T", path, doc)
		}
		for name, value := range m {
			if !varRe.MatchString(name + "=") {
				return nil, fmt.Errorf("var file %s: invalid var name %q", path, name)
			}
			if s, ok := value.(string); ok {
				out[name] = s
				continue
			}
			enc, err := json.Marshal(value)
			if err != nil {
				return nil, fmt.Errorf("var file %s: var %q: %w", path, name, err)
			}
			out[name] = string(enc)
		}
	}
	return out, nil
}

// ConvertInputs resolves the raw var map against the configured input
// declarations. Values are decoded from JSON — bare strings are accepted
// as-is for convenience — and validated against the declared type model.
// It returns the parsed inputs plus the names of missing required inputs and
// of provided vars no declaration uses.
func ConvertInputs(defs map[string]config.Input, vars map[string]string) (map[string]any, []string, []string, error) {
	remaining := make(map[string]string, len(vars))
	for k, v := range vars {
		remaining[k] = v
	}

	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	inputs := make(map[string]any, len(defs))
	var missing []string

	for _, name := range names {
		def := defs[name]

		raw, ok := remaining[name]
		delete(remaining, name)
		if !ok {
			if def.Default == nil {
				if def.Required {
					missing = append(missing, name)
				}
				continue
			}
			raw = *def.Default
		}

		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			// Bare strings may be passed without surrounding double quotes.
			value = raw
		}

		typ, err := schema.ParseType(def.Model)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("input %q: %w", name, err)
		}
		if err := typ.Validate(value); err != nil {
			return nil, nil, nil, &schema.ValidationError{Key: name, Reason: err.Error(), Value: value}
		}
		inputs[name] = value
	}

	unused := make([]string, 0, len(remaining))
	for name := range remaining {
		unused = append(unused, name)
	}
	sort.Strings(unused)

	return inputs, missing, unused, nil
}
