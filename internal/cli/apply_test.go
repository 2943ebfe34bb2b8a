package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	git "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTIM lays out a minimal template instance model under a temp dir.
func writeTIM(t *testing.T) string {
	t.Helper()
	src := t.TempDir()
	model := filepath.Join(src, "model")
	require.NoError(t, os.MkdirAll(model, 0o755))

	write := func(rel, content string) {
		t.Helper()
		path := filepath.Join(src, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	write("model/config.yml", `
seed: 42
inputs:
  team:
    model: string
    required: true
  motto:
    model: string
    default: '"ship it"'
`)
	write("model/context.yml.tmpl", `
team: {{ .inputs.team }}
motto: {{ .inputs.motto }}
lucky: {{ .random.Intn 100 }}
`)
	write("model/templates.yml.tmpl", `
- type: file
  name: readme
  src: greeting.tmpl
  dest: GREETING.md
- type: dir
  name: assets
  src: static
  dest: public
  copy:
    - "**/*.css"
`)
	write("greeting.tmpl", "hello {{ .context.team }}: {{ .context.motto }}\n")
	write("static/site.css", "body { margin: 0 }\n")
	return src
}

func TestApplyEndToEnd(t *testing.T) {
	src := writeTIM(t)
	dest := filepath.Join(t.TempDir(), "tsm")

	result, err := Apply(ApplyOptions{
		Source: src,
		Dest:   dest,
		Vars:   []string{"team=espalier"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), result.Seed)
	assert.Equal(t, "espalier", result.Context["team"])
	assert.Equal(t, "ship it", result.Context["motto"])
	assert.Len(t, result.Objects, 2)

	// Rendered output and verbatim copy.
	greeting, err := os.ReadFile(filepath.Join(dest, "GREETING.md"))
	require.NoError(t, err)
	assert.Equal(t, "hello espalier: ship it\n", string(greeting))
	assert.FileExists(t, filepath.Join(dest, "public", "site.css"))

	// Consumed template sources are deleted from the scenario.
	assert.NoFileExists(t, filepath.Join(dest, "greeting.tmpl"))
	assert.NoDirExists(t, filepath.Join(dest, "static"))

	// Snapshots land next to the model templates.
	assert.FileExists(t, filepath.Join(dest, "model", ContextSnapshotFile))
	assert.FileExists(t, filepath.Join(dest, "model", ManifestSnapshotFile))

	// The run is committed with the resolved seed in the message.
	repo, err := git.PlainOpen(dest)
	require.NoError(t, err)
	head, err := repo.Head()
	require.NoError(t, err)
	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)
	assert.Contains(t, commit.Message, "seed: '42'")
}

func TestApplyIsReproducible(t *testing.T) {
	src := writeTIM(t)

	run := func(dest string) map[string]any {
		result, err := Apply(ApplyOptions{
			Source: src,
			Dest:   dest,
			Vars:   []string{"team=espalier"},
		})
		require.NoError(t, err)
		return result.Context
	}

	first := run(filepath.Join(t.TempDir(), "a"))
	second := run(filepath.Join(t.TempDir(), "b"))
	assert.Equal(t, first["lucky"], second["lucky"])
}

func TestApplyRelativeDest(t *testing.T) {
	src := writeTIM(t)
	work := t.TempDir()
	t.Chdir(work)

	result, err := Apply(ApplyOptions{
		Source: src,
		Dest:   "out",
		Vars:   []string{"team=espalier"},
	})
	require.NoError(t, err)
	assert.Equal(t, "espalier", result.Context["team"])

	greeting, err := os.ReadFile(filepath.Join(work, "out", "GREETING.md"))
	require.NoError(t, err)
	assert.Equal(t, "hello espalier: ship it\n", string(greeting))
	assert.NoFileExists(t, filepath.Join(work, "out", "greeting.tmpl"))
}

func TestApplySeedFlagOverridesConfig(t *testing.T) {
	src := writeTIM(t)
	dest := filepath.Join(t.TempDir(), "tsm")
	seed := int64(7)

	result, err := Apply(ApplyOptions{
		Source: src,
		Dest:   dest,
		Seed:   &seed,
		Vars:   []string{"team=espalier"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), result.Seed)

	// The snapshot persists the seed actually used.
	data, err := os.ReadFile(filepath.Join(dest, "model", ConfigFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "seed: 7")
}

func TestApplyMissingRequiredInput(t *testing.T) {
	src := writeTIM(t)
	dest := filepath.Join(t.TempDir(), "tsm")

	_, err := Apply(ApplyOptions{Source: src, Dest: dest})
	require.ErrorIs(t, err, ErrMissingInputs)
	assert.True(t, strings.Contains(err.Error(), "team"))
}

func TestApplyRejectsNonMappingContext(t *testing.T) {
	src := writeTIM(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(src, "model", "context.yml.tmpl"),
		[]byte("- just\n- a list\n"), 0o644))
	dest := filepath.Join(t.TempDir(), "tsm")

	_, err := Apply(ApplyOptions{
		Source: src,
		Dest:   dest,
		Vars:   []string{"team=espalier"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context document")
}
