package render

import (
	"bytes"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"text/template"

	"github.com/aretw0/espalier/pkg/codec"
	"github.com/aretw0/espalier/pkg/generator"
	"github.com/aretw0/espalier/pkg/seed"
)

// Options configures the action delimiters of an Environment.
//
// The engine has a single action delimiter pair, so the variable start/end
// markers of a template model's configuration drive rendering; block and
// comment markers from the persisted configuration shape have no engine
// counterpart.
type Options struct {
	LeftDelim  string
	RightDelim string
}

// DefaultOptions returns the fixed safe delimiters used for context and
// manifest documents.
func DefaultOptions() Options {
	return Options{LeftDelim: "{{", RightDelim: "}}"}
}

// Environment renders templates against a context mapping.
//
// Undefined references are strict: a template that touches an unset variable
// fails the render instead of producing a placeholder. Manifest correctness
// controls filesystem deletion, so silently-empty values are not acceptable.
//
// Three variants exist:
//   - NewObjectEnvironment: fixed delimiters, no generators (the manifest
//     document renders against already-resolved context).
//   - NewContextEnvironment: fixed delimiters, generators bound.
//   - NewTemplateEnvironment: configured delimiters, generators bound (TIM
//     body templates).
type Environment struct {
	root    string
	opts    Options
	globals map[string]any
}

// NewObjectEnvironment creates the environment used for the manifest object
// document. Templates resolve relative to root.
func NewObjectEnvironment(root string) *Environment {
	return &Environment{
		root:    root,
		opts:    DefaultOptions(),
		globals: map[string]any{},
	}
}

// NewContextEnvironment creates the environment used for the context
// document, with the given generators bound into its globals.
func NewContextEnvironment(root string, store *seed.Store, gens []generator.Generator) *Environment {
	env := NewObjectEnvironment(root)
	env.BindGenerators(store, gens)
	return env
}

// NewTemplateEnvironment creates the environment used for TIM body
// templates, with configurable delimiters and the given generators bound.
func NewTemplateEnvironment(root string, opts Options, store *seed.Store, gens []generator.Generator) *Environment {
	env := NewObjectEnvironment(root)
	if opts.LeftDelim != "" {
		env.opts.LeftDelim = opts.LeftDelim
	}
	if opts.RightDelim != "" {
		env.opts.RightDelim = opts.RightDelim
	}
	env.BindGenerators(store, gens)
	return env
}

// Bind adds a value to the environment's global namespace.
func (e *Environment) Bind(name string, value any) {
	e.globals[name] = value
}

// BindGenerators instantiates each generator exactly once, drawing exactly
// one seed per generator, and binds the instances under their names. All
// random values produced within one pass therefore reuse the same
// per-generator sub-stream.
func (e *Environment) BindGenerators(store *seed.Store, gens []generator.Generator) {
	for _, gen := range gens {
		e.globals[gen.Name()] = gen.Create(store)
	}
}

// RenderString renders an inline template source against ctx and returns the
// output text.
func (e *Environment) RenderString(source string, ctx map[string]any) (string, error) {
	return e.render("inline", source, ctx)
}

// RenderFile renders the template file at path (relative to the environment
// root unless absolute) against ctx and returns the output text.
func (e *Environment) RenderFile(path string, ctx map[string]any) (string, error) {
	full := path
	if !filepath.IsAbs(full) {
		full = filepath.Join(e.root, path)
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return e.render(filepath.ToSlash(path), string(data), ctx)
}

// RenderDocument renders the template file at path and decodes the output as
// a structured YAML/JSON document, returning native values (mapping,
// sequence, or scalar). Context and manifest documents go through this path.
func (e *Environment) RenderDocument(path string, ctx map[string]any) (any, error) {
	out, err := e.RenderFile(path, ctx)
	if err != nil {
		return nil, err
	}
	doc, err := codec.Decode([]byte(out))
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", path, err)
	}
	return doc, nil
}

func (e *Environment) render(name, source string, ctx map[string]any) (string, error) {
	tmpl, err := template.New(name).
		Delims(e.opts.LeftDelim, e.opts.RightDelim).
		Option("missingkey=error").
		Parse(source)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}

	data := make(map[string]any, len(e.globals)+len(ctx))
	maps.Copy(data, e.globals)
	maps.Copy(data, ctx)

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
