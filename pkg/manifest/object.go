// Package manifest defines the typed File/Directory tree that describes a
// template scenario: which sources are rendered, which are copied verbatim,
// and which are deleted once the scenario has been materialized.
//
// The tree is a tagged variant: a raw manifest object carries a `type` field
// of either "file" or "dir", and both cases share a common field set. Nodes
// are immutable render-time descriptions; traversal logic lives in
// pkg/render.
package manifest

import "fmt"

// External discriminator values for the `type` field.
const (
	TypeFile = "file"
	TypeDir  = "dir"
)

// Object is a node of the manifest tree, either *File or *Directory.
// Consumers dispatch with a type switch.
type Object interface {
	object()
	// Base returns the field set shared by both node kinds.
	Base() *Common
}

// Common is the field set shared by File and Directory nodes.
type Common struct {
	// Name is a descriptive, non-unique label for the directive.
	Name string `mapstructure:"name"`
	// Src is the template source path, relative to the containing directory.
	Src string `mapstructure:"src"`
	// Dest is the destination path, relative to the containing directory's
	// destination.
	Dest string `mapstructure:"dest"`
	// Delete marks the source for removal after the scenario is rendered.
	Delete bool `mapstructure:"delete"`
	// Extra binds additional local context values to the node.
	Extra map[string]any `mapstructure:"extra"`
}

// File is a leaf node: its source is rendered once and written to Dest.
type File struct {
	Common `mapstructure:",squash"`
}

func (*File) object() {}

// Base implements Object.
func (f *File) Base() *Common { return &f.Common }

// Directory is an inner node: it is created at Dest, optionally copies
// verbatim files matching glob patterns, and contains an ordered list of
// child nodes.
type Directory struct {
	Common `mapstructure:",squash"`

	// Copy lists glob patterns (relative to Src) of files copied as-is,
	// never rendered.
	Copy []string `mapstructure:"copy"`
	// Contents holds the child nodes in declaration order.
	Contents []Object `mapstructure:"-"`
}

func (*Directory) object() {}

// Base implements Object.
func (d *Directory) Base() *Common { return &d.Common }

// UnknownTypeError reports a manifest object whose `type` discriminator is
// missing or not one of "file" and "dir".
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	if e.Type == "" {
		return "manifest: object is missing the type discriminator"
	}
	return fmt.Sprintf("manifest: unknown object type %q (want %q or %q)", e.Type, TypeFile, TypeDir)
}
