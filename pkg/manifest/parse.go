package manifest

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Parse validates a loaded (already structurally-typed) object list against
// the File/Directory schema. It is the step between decoding the manifest
// document and walking the tree: nothing the tree renderer sees can have an
// unknown type or a missing required field.
//
// The `delete` flag defaults to true: template sources vanish from the
// rendered scenario unless a node opts out.
func Parse(raw any) ([]Object, error) {
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("manifest: expected a list of objects, got %T", raw)
	}

	objects := make([]Object, 0, len(list))
	for i, item := range list {
		obj, err := parseObject(item)
		if err != nil {
			return nil, fmt.Errorf("manifest: object %d: %w", i, err)
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

func parseObject(raw any) (Object, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a mapping, got %T", raw)
	}

	kind, _ := m["type"].(string)
	switch kind {
	case TypeFile:
		return parseFile(m)
	case TypeDir:
		return parseDirectory(m)
	default:
		return nil, &UnknownTypeError{Type: kind}
	}
}

func parseFile(m map[string]any) (*File, error) {
	node := &File{Common: defaultCommon()}
	if err := decode(m, node); err != nil {
		return nil, err
	}
	if err := node.Common.check(); err != nil {
		return nil, err
	}
	return node, nil
}

func parseDirectory(m map[string]any) (*Directory, error) {
	var aux struct {
		Common   `mapstructure:",squash"`
		Copy     []string `mapstructure:"copy"`
		Contents []any    `mapstructure:"contents"`
	}
	aux.Common = defaultCommon()

	if err := decode(m, &aux); err != nil {
		return nil, err
	}
	if err := aux.Common.check(); err != nil {
		return nil, err
	}

	node := &Directory{Common: aux.Common, Copy: aux.Copy}
	if node.Copy == nil {
		node.Copy = []string{}
	}

	node.Contents = make([]Object, 0, len(aux.Contents))
	for i, item := range aux.Contents {
		child, err := parseObject(item)
		if err != nil {
			return nil, fmt.Errorf("contents[%d]: %w", i, err)
		}
		node.Contents = append(node.Contents, child)
	}
	return node, nil
}

func defaultCommon() Common {
	return Common{
		Delete: true,
		Extra:  map[string]any{},
	}
}

func decode(m map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{Result: out})
	if err != nil {
		return err
	}
	if err := dec.Decode(m); err != nil {
		return fmt.Errorf("invalid object: %w", err)
	}
	return nil
}

func (c *Common) check() error {
	required := []struct{ field, value string }{
		{"name", c.Name},
		{"src", c.Src},
		{"dest", c.Dest},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("missing required field %q", r.field)
		}
	}
	return nil
}
