package generator

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier/pkg/seed"
)

type stub struct {
	name  string
	draws *int
}

func (s stub) Name() string { return s.name }

func (s stub) Create(store *seed.Store) any {
	if s.draws != nil {
		*s.draws++
	}
	return store.Next()
}

func stubFactory(name string) Factory {
	return func() Generator { return stub{name: name} }
}

func mustPatterns(t *testing.T, patterns ...string) []*regexp.Regexp {
	t.Helper()
	res, err := CompilePatterns(patterns)
	require.NoError(t, err)
	return res
}

func TestLoadIncludeAllByDefault(t *testing.T) {
	r := NewRegistry()
	r.Register("alpha", stubFactory("alpha"))
	r.Register("beta", stubFactory("beta"))

	gens := r.Load(Policy{})
	require.Len(t, gens, 2)
	// Stable name order, independent of registration order.
	assert.Equal(t, "alpha", gens[0].Name())
	assert.Equal(t, "beta", gens[1].Name())
}

func TestLoadIncludeExclude(t *testing.T) {
	r := NewRegistry()
	r.Register("alpha", stubFactory("alpha"))
	r.Register("beta", stubFactory("beta"))
	r.Register("evil.alpha", stubFactory("evil.alpha"))

	policy := Policy{
		Include: mustPatterns(t, "alpha", "evil\\..*"),
		Exclude: mustPatterns(t, "evil\\..*"),
	}

	gens := r.Load(policy)
	require.Len(t, gens, 1)
	assert.Equal(t, "alpha", gens[0].Name())
}

func TestLoadSkipsNilInstances(t *testing.T) {
	r := NewRegistry()
	r.Register("broken", func() Generator { return nil })
	r.Register("ok", stubFactory("ok"))

	gens := r.Load(Policy{})
	require.Len(t, gens, 1)
	assert.Equal(t, "ok", gens[0].Name())
}

func TestRegisterOverwrites(t *testing.T) {
	r := NewRegistry()
	r.Register("dup", stubFactory("dup"))
	r.Register("dup", func() Generator { return nil })

	assert.Empty(t, r.Load(Policy{}))
	assert.Equal(t, []string{"dup"}, r.Names())
}

func TestPolicyAnchoring(t *testing.T) {
	// Patterns match at the start of the name, not anywhere inside it.
	p := Policy{Include: mustPatterns(t, "core")}
	assert.True(t, p.Allows("core"))
	assert.True(t, p.Allows("core.extra"))
	assert.False(t, p.Allows("hardcore"))
}

func TestCompilePatternsInvalid(t *testing.T) {
	_, err := CompilePatterns([]string{"("})
	assert.Error(t, err)
}
