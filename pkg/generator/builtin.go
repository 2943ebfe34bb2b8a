package generator

import (
	"math/rand"

	"github.com/brianvoe/gofakeit/v7"
	exprand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/aretw0/espalier/pkg/seed"
)

// RegisterBuiltins adds the generators shipped with the tool to a registry.
// Callers bootstrap their own registry so policy filtering and third-party
// registrations stay explicit.
func RegisterBuiltins(r *Registry) {
	r.Register("random", func() Generator { return Random{} })
	r.Register("fake", func() Generator { return Fake{} })
	r.Register("dist", func() Generator { return Dist{} })
}

// Random exposes a seeded *rand.Rand to templates, e.g.
//
//	time: "{{ .random.Intn 12 }}:{{ .random.Intn 60 }}"
type Random struct{}

func (Random) Name() string { return "random" }

func (Random) Create(store *seed.Store) any {
	return rand.New(rand.NewSource(store.Next()))
}

// Fake exposes a seeded fake-data faker to templates, e.g.
//
//	user:
//	  name: "{{ .fake.Name }}"
//	  address: "{{ .fake.Address.Address }}"
type Fake struct{}

func (Fake) Name() string { return "fake" }

func (Fake) Create(store *seed.Store) any {
	return gofakeit.New(uint64(store.Next()))
}

// Dist exposes seeded distribution samplers to templates, e.g.
//
//	height_cm: "{{ .dist.Normal 170.0 10.0 }}"
//	arrivals: "{{ .dist.Poisson 4.5 }}"
type Dist struct{}

func (Dist) Name() string { return "dist" }

func (Dist) Create(store *seed.Store) any {
	return &Sampler{src: exprand.NewSource(uint64(store.Next()))}
}

// Sampler draws from common univariate distributions. All methods share one
// seeded source, so call order matters for reproducibility.
type Sampler struct {
	src exprand.Source
}

// Normal draws from a normal distribution with the given mean and standard
// deviation.
func (s *Sampler) Normal(mu, sigma float64) float64 {
	return distuv.Normal{Mu: mu, Sigma: sigma, Src: s.src}.Rand()
}

// Uniform draws from a uniform distribution over [min, max).
func (s *Sampler) Uniform(min, max float64) float64 {
	return distuv.Uniform{Min: min, Max: max, Src: s.src}.Rand()
}

// Poisson draws from a Poisson distribution with the given rate.
func (s *Sampler) Poisson(lambda float64) float64 {
	return distuv.Poisson{Lambda: lambda, Src: s.src}.Rand()
}

// Exponential draws from an exponential distribution with the given rate.
func (s *Sampler) Exponential(rate float64) float64 {
	return distuv.Exponential{Rate: rate, Src: s.src}.Rand()
}
