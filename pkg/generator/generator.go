// Package generator defines the pluggable random-value producers exposed to
// templates, and the registry they are loaded from.
//
// A Generator is a named capability: during environment setup its Create
// method is called exactly once, draws exactly one seed from the run's seed
// store, and returns an instance that is bound into the template globals
// under the generator's name. Because every value produced inside one render
// pass comes from that single instance, all draws for a given generator share
// one deterministic sub-stream.
package generator

import (
	"fmt"
	"regexp"

	"github.com/aretw0/espalier/pkg/seed"
)

// Generator is a named, seeded producer of random-value instances.
type Generator interface {
	// Name is the key the instance will be bound under in template globals.
	Name() string
	// Create builds the per-pass instance, consuming exactly one seed from
	// the store.
	Create(store *seed.Store) any
}

// Policy decides which registered generators are loaded for a pass.
// Patterns match at the start of the name (anchored); an empty include list
// means include-all, an empty exclude list means exclude-none.
type Policy struct {
	Include []*regexp.Regexp
	Exclude []*regexp.Regexp
}

// Allows reports whether a generator name passes the policy.
func (p Policy) Allows(name string) bool {
	included := len(p.Include) == 0
	for _, re := range p.Include {
		if re.MatchString(name) {
			included = true
			break
		}
	}
	if !included {
		return false
	}
	for _, re := range p.Exclude {
		if re.MatchString(name) {
			return false
		}
	}
	return true
}

// CompilePatterns compiles a list of pattern strings into anchored regular
// expressions suitable for a Policy.
func CompilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(`\A(?:` + p + `)`)
		if err != nil {
			return nil, fmt.Errorf("generator: invalid name pattern %q: %w", p, err)
		}
		res = append(res, re)
	}
	return res, nil
}
