// Package seed provides the deterministic seed sequence used by every
// probabilistic construct during a render pass.
//
// A Store wraps a single signed 64-bit root seed and derives an unlimited
// sequence of child seeds from it. Two stores built from the same root seed
// produce identical sequences, which is what makes a rendered scenario
// reproducible: every generator draws its seed from the one store, in strict
// call order.
package seed

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand"
)

// Store derives PRNG seeds from a single root seed.
//
// A Store is not safe for concurrent use; the render pass is single-threaded
// and consumes seeds in call order.
type Store struct {
	root int64
	rng  *rand.Rand
}

// NewStore creates a store whose sequence is fully determined by root.
func NewStore(root int64) *Store {
	return &Store{
		root: root,
		rng:  rand.New(rand.NewSource(root)),
	}
}

// NewRandomStore creates a store with a freshly generated root seed.
// The root is drawn once from the system entropy source and then fixed,
// so the run can still be reproduced by recording Root().
func NewRandomStore() *Store {
	return NewStore(NewRoot())
}

// NewRoot draws a fresh root seed from the system entropy source.
func NewRoot() int64 {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		// crypto/rand.Read does not fail on supported platforms.
		panic("seed: entropy source unavailable: " + err.Error())
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}

// Root returns the root seed the store was created with.
func (s *Store) Root() int64 {
	return s.root
}

// Next draws and returns the next seed in the sequence. The full signed
// 64-bit range is used.
func (s *Store) Next() int64 {
	return int64(s.rng.Uint64())
}
