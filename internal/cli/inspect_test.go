package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier/internal/config"
)

func TestPrintInputsSortedWithDetails(t *testing.T) {
	var buf bytes.Buffer
	PrintInputs(&buf, map[string]config.Input{
		"region": {Model: "string", Default: strPtr(`"eu-west"`), Description: "Deployment region."},
		"count":  {Model: "int", Required: true},
	})

	out := buf.String()
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("count")), bytes.Index(buf.Bytes(), []byte("region")))
	assert.Contains(t, out, "count (required, int)")
	assert.Contains(t, out, "region (optional, string)")
	assert.Contains(t, out, `[default: "eu-west"]`)
	assert.Contains(t, out, "Deployment region.")
}

func TestPrintInputsEmpty(t *testing.T) {
	var buf bytes.Buffer
	PrintInputs(&buf, nil)
	assert.Contains(t, buf.String(), "no inputs")
}

func TestInspectReadsModelConfig(t *testing.T) {
	src := t.TempDir()
	model := filepath.Join(src, "model")
	require.NoError(t, os.MkdirAll(model, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(model, "config.yml"), []byte(`
inputs:
  team:
    model: string
    required: true
`), 0o644))

	var buf bytes.Buffer
	require.NoError(t, Inspect(&buf, src, ""))
	assert.Contains(t, buf.String(), "team (required, string)")
}
