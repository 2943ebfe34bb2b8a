// Package cli implements the command logic behind the cobra commands:
// applying a template instance model and inspecting its declared inputs.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/aretw0/espalier/internal/config"
	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/internal/vcs"
	"github.com/aretw0/espalier/pkg/codec"
	"github.com/aretw0/espalier/pkg/generator"
	"github.com/aretw0/espalier/pkg/manifest"
	"github.com/aretw0/espalier/pkg/render"
	"github.com/aretw0/espalier/pkg/seed"
)

// DefaultModelDir is the model directory used when none is configured.
const DefaultModelDir = "model"

// Template file names inside the model directory, and the snapshot files
// written next to them after a successful pass.
const (
	ConfigFile           = "config.yml"
	ContextTemplateFile  = "context.yml.tmpl"
	ManifestTemplateFile = "templates.yml.tmpl"
	ContextSnapshotFile  = "context.yml"
	ManifestSnapshotFile = "templates.yml"
)

// ErrMissingInputs reports required inputs that were not provided. The
// command maps it to exit status 2.
var ErrMissingInputs = errors.New("missing required input variables")

// ApplyOptions configures one apply run.
type ApplyOptions struct {
	// Source is the TIM origin: a local path or a git URL.
	Source string
	// Dest is the directory the scenario is created in.
	Dest string
	// ModelDir is the model directory relative to Dest; empty means
	// DefaultModelDir.
	ModelDir string
	// Seed overrides both the configured and a freshly generated root seed.
	Seed *int64

	Vars     []string
	VarFiles []string

	Logger *slog.Logger
}

// ApplyResult reports what a successful pass produced.
type ApplyResult struct {
	Seed    int64
	Context map[string]any
	Objects []manifest.Object
}

// Apply converts the TIM at Source into a scenario at Dest: it materializes
// the source tree, renders the context and manifest documents, walks the
// manifest, drains the deletion queues, writes the config/context/manifest
// snapshots, and commits the result.
func Apply(opts ApplyOptions) (*ApplyResult, error) {
	log := opts.Logger
	if log == nil {
		log = logging.NewNop()
	}
	modelDir := opts.ModelDir
	if modelDir == "" {
		modelDir = DefaultModelDir
	}

	// The destination doubles as the template root and the tree walk base;
	// resolving it once keeps joined source paths from picking up the prefix
	// twice when DEST is relative.
	dest, err := filepath.Abs(opts.Dest)
	if err != nil {
		return nil, fmt.Errorf("resolve destination %s: %w", opts.Dest, err)
	}

	repo, err := vcs.Setup(opts.Source, dest)
	if err != nil {
		return nil, err
	}

	modelPath := filepath.Join(dest, modelDir)
	cfg, err := config.Load(filepath.Join(modelPath, ConfigFile))
	if err != nil {
		return nil, err
	}

	// Seed resolution: flag beats config beats a fresh root.
	switch {
	case opts.Seed != nil:
		cfg.Seed = opts.Seed
	case cfg.Seed == nil:
		root := seed.NewRoot()
		cfg.Seed = &root
	}
	log.Info("resolved seed", "seed", *cfg.Seed)

	inputs, err := resolveInputs(cfg, opts, log)
	if err != nil {
		return nil, err
	}

	policy, err := cfg.Plugin.Policy()
	if err != nil {
		return nil, err
	}
	registry := generator.NewRegistry()
	generator.RegisterBuiltins(registry)
	gens := registry.Load(policy)
	log.Debug("loaded generators", "count", len(gens))

	store := seed.NewStore(*cfg.Seed)
	ctxEnv := render.NewContextEnvironment(dest, store, gens)
	objEnv := render.NewObjectEnvironment(dest)
	timEnv := render.NewTemplateEnvironment(dest, cfg.Engine.Options(), store, gens)

	contextDoc, err := ctxEnv.RenderDocument(filepath.Join(modelDir, ContextTemplateFile), map[string]any{
		"inputs": inputs,
	})
	if err != nil {
		return nil, err
	}
	context, err := asMapping(contextDoc)
	if err != nil {
		return nil, fmt.Errorf("context document: %w", err)
	}

	rawObjects, err := objEnv.RenderDocument(filepath.Join(modelDir, ManifestTemplateFile), map[string]any{
		"context": context,
		"inputs":  inputs,
	})
	if err != nil {
		return nil, err
	}
	objects, err := manifest.Parse(rawObjects)
	if err != nil {
		return nil, err
	}

	renderer := render.NewTreeRenderer(timEnv, log)
	queues, err := renderer.Render(objects, dest, dest, context, nil)
	if err != nil {
		return nil, err
	}

	log.Debug("draining deletion queues", "files", len(queues.Files()), "dirs", len(queues.Dirs()))
	if err := queues.Drain(); err != nil {
		return nil, err
	}

	if err := writeSnapshots(modelPath, cfg, context, objects); err != nil {
		return nil, err
	}

	if err := vcs.Commit(repo, fmt.Sprintf("Generate TSM with seed: '%d'", *cfg.Seed)); err != nil {
		return nil, err
	}

	return &ApplyResult{Seed: *cfg.Seed, Context: context, Objects: objects}, nil
}

func resolveInputs(cfg config.Config, opts ApplyOptions, log *slog.Logger) (map[string]any, error) {
	vars, err := LoadVarFiles(opts.VarFiles)
	if err != nil {
		return nil, err
	}
	explicit, err := ParseVars(opts.Vars)
	if err != nil {
		return nil, err
	}
	for name, value := range explicit {
		vars[name] = value
	}

	inputs, missing, unused, err := ConvertInputs(cfg.Inputs, vars)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingInputs, strings.Join(missing, ", "))
	}
	if len(unused) > 0 {
		log.Warn("unused input variables", "names", unused)
	}
	return inputs, nil
}

func asMapping(doc any) (map[string]any, error) {
	switch v := doc.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return v, nil
	default:
		return nil, fmt.Errorf("expected a mapping, rendered to %T", doc)
	}
}

func writeSnapshots(modelPath string, cfg config.Config, context map[string]any, objects []manifest.Object) error {
	if err := codec.WriteFile(filepath.Join(modelPath, ConfigFile), cfg); err != nil {
		return err
	}
	if err := codec.WriteFile(filepath.Join(modelPath, ContextSnapshotFile), context); err != nil {
		return err
	}
	return codec.WriteFile(filepath.Join(modelPath, ManifestSnapshotFile), objects)
}
