package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreDeterminism(t *testing.T) {
	roots := []int64{0, 1, -1, 42, 1337, -9223372036854775808, 9223372036854775807}

	for _, root := range roots {
		a := NewStore(root)
		b := NewStore(root)

		for i := 0; i < 100; i++ {
			require.Equal(t, a.Next(), b.Next(), "root %d diverged at draw %d", root, i)
		}
	}
}

func TestStoreSequencesDifferByRoot(t *testing.T) {
	a := NewStore(1)
	b := NewStore(2)

	var same int
	for i := 0; i < 32; i++ {
		if a.Next() == b.Next() {
			same++
		}
	}
	// Collisions in single draws are possible in theory, identical prefixes
	// are not.
	assert.Less(t, same, 32)
}

func TestStoreRoot(t *testing.T) {
	s := NewStore(1337)
	assert.Equal(t, int64(1337), s.Root())

	// Drawing does not change the reported root.
	s.Next()
	assert.Equal(t, int64(1337), s.Root())
}

func TestNewRandomStoreIsReproducible(t *testing.T) {
	s := NewRandomStore()

	// A fresh root is fixed at construction: replaying it must reproduce the
	// sequence.
	replay := NewStore(s.Root())
	for i := 0; i < 16; i++ {
		require.Equal(t, s.Next(), replay.Next())
	}
}
