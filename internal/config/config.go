// Package config models the run configuration of a template instance model:
// the seed, the generator plugin policy, the template engine delimiters, and
// the typed input declarations. Key names follow the persisted artifact
// format (config.yml) and are kept stable for compatibility.
package config

import (
	"fmt"
	"os"

	"github.com/aretw0/espalier/pkg/codec"
	"github.com/aretw0/espalier/pkg/generator"
	"github.com/aretw0/espalier/pkg/render"
)

// Config is the root run configuration, usually loaded from
// <model>/config.yml inside a TIM.
type Config struct {
	// Seed is the root seed for the run; nil means a fresh seed is generated.
	Seed *int64 `yaml:"seed" json:"seed"`

	Plugin PluginConfig `yaml:"plugin" json:"plugin"`
	Engine EngineConfig `yaml:"jinja" json:"jinja"`

	// Inputs declares the variables the TIM accepts from the command line.
	Inputs map[string]Input `yaml:"inputs,omitempty" json:"inputs,omitempty"`
}

// PluginConfig filters which registered generators are loaded.
type PluginConfig struct {
	IncludeNames []string `yaml:"include_names" json:"include_names"`
	ExcludeNames []string `yaml:"exclude_names" json:"exclude_names"`
}

// Policy compiles the configured name patterns into a generator policy.
func (p PluginConfig) Policy() (generator.Policy, error) {
	include, err := generator.CompilePatterns(p.IncludeNames)
	if err != nil {
		return generator.Policy{}, err
	}
	exclude, err := generator.CompilePatterns(p.ExcludeNames)
	if err != nil {
		return generator.Policy{}, err
	}
	return generator.Policy{Include: include, Exclude: exclude}, nil
}

// EngineConfig carries the template delimiter configuration. The external
// key names (and the block/comment/line fields) mirror the persisted
// artifact shape; only the variable pair configures the engine, which has a
// single action delimiter pair.
type EngineConfig struct {
	BlockStart string `yaml:"block_start" json:"block_start"`
	BlockEnd   string `yaml:"block_end" json:"block_end"`

	VariableStart string `yaml:"variable_start" json:"variable_start"`
	VariableEnd   string `yaml:"variable_end" json:"variable_end"`

	CommentStart string `yaml:"comment_start" json:"comment_start"`
	CommentEnd   string `yaml:"comment_end" json:"comment_end"`

	LineStatement *string `yaml:"line_statement,omitempty" json:"line_statement,omitempty"`
	LineComment   *string `yaml:"line_comment,omitempty" json:"line_comment,omitempty"`
}

// Options returns the render options for body templates.
func (e EngineConfig) Options() render.Options {
	return render.Options{LeftDelim: e.VariableStart, RightDelim: e.VariableEnd}
}

// Input declares one CLI input: its type model, whether it is required, and
// an optional JSON-encoded default.
type Input struct {
	// Model is a type string understood by pkg/schema ("int", "[string]", ...).
	Model    string `yaml:"model" json:"model"`
	Required bool   `yaml:"required" json:"required"`

	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Default is the JSON-encoded default value; nil means no default, which
	// is distinct from a default of null.
	Default *string `yaml:"default,omitempty" json:"default,omitempty"`
}

// Default returns the configuration used when a TIM ships no config.yml.
func Default() Config {
	return Config{
		Plugin: PluginConfig{
			IncludeNames: []string{".*"},
			ExcludeNames: []string{},
		},
		Engine: EngineConfig{
			BlockStart:    "{{",
			BlockEnd:      "}}",
			VariableStart: "{{",
			VariableEnd:   "}}",
			CommentStart:  "{{/*",
			CommentEnd:    "*/}}",
		},
	}
}

// Load reads a config file, layering it over the defaults. A missing file is
// not an error: the defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := codec.DecodeInto(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
