package manifest

import "encoding/json"

// Serialize is the structural inverse of Parse: it converts a validated node
// list back into the external shape (string-keyed maps with `type` and
// `copy` aliases), ready for the YAML/JSON codec. Serialization of a valid
// model cannot fail.
func Serialize(objects []Object) []any {
	out := make([]any, len(objects))
	for i, obj := range objects {
		switch node := obj.(type) {
		case *File:
			out[i] = node.doc()
		case *Directory:
			m := node.Common.doc(TypeDir)
			m["copy"] = node.Copy
			m["contents"] = Serialize(node.Contents)
			out[i] = m
		}
	}
	return out
}

func (c *Common) doc(kind string) map[string]any {
	extra := c.Extra
	if extra == nil {
		extra = map[string]any{}
	}
	return map[string]any{
		"name":   c.Name,
		"type":   kind,
		"src":    c.Src,
		"dest":   c.Dest,
		"delete": c.Delete,
		"extra":  extra,
	}
}

func (f *File) doc() map[string]any { return f.Common.doc(TypeFile) }

// MarshalYAML serializes the node in its external shape.
func (f *File) MarshalYAML() (any, error) { return f.doc(), nil }

// MarshalJSON serializes the node in its external shape.
func (f *File) MarshalJSON() ([]byte, error) { return json.Marshal(f.doc()) }

// MarshalYAML serializes the node and its contents in their external shape.
func (d *Directory) MarshalYAML() (any, error) {
	m := d.Common.doc(TypeDir)
	m["copy"] = d.Copy
	m["contents"] = Serialize(d.Contents)
	return m, nil
}

// MarshalJSON serializes the node and its contents in their external shape.
func (d *Directory) MarshalJSON() ([]byte, error) {
	m := d.Common.doc(TypeDir)
	m["copy"] = d.Copy
	m["contents"] = Serialize(d.Contents)
	return json.Marshal(m)
}
