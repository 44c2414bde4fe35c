package engine

import (
	"fmt"
	"math/rand"
)

// stubChromosome is a one-value chromosome whose fitness is the value
// itself, which makes selection scenarios exact.
type stubChromosome struct {
	value float64
}

func (c *stubChromosome) Kind() string { return "stub" }

func (c *stubChromosome) Initialize(rng *rand.Rand) { c.value = rng.Float64() }

func (c *stubChromosome) Clone() Chromosome {
	clone := *c
	return &clone
}

func (c *stubChromosome) Validate() error { return nil }

// stub exposes the underlying stubChromosome so that the stub operators
// also accept types that embed stubChromosome (e.g. counting wrappers).
func (c *stubChromosome) stub() *stubChromosome { return c }

// stubValued is the accessor interface the stub operators assert instead
// of the concrete *stubChromosome pointer type.
type stubValued interface {
	stub() *stubChromosome
}

func (c *stubChromosome) String() string { return fmt.Sprintf("%.6f", c.value) }

// stubFitness counts how many times it actually ran.
type stubFitness struct {
	calls int
}

func (*stubFitness) Kind() string { return "stub" }

func (f *stubFitness) Fitness(c Chromosome) float64 {
	f.calls++
	return c.(stubValued).stub().value
}

type stubMutator struct {
	delta float64
}

func (stubMutator) Kind() string { return "stub" }

func (m stubMutator) MutateInPlace(rng *rand.Rand, c Chromosome) {
	delta := m.delta
	if delta == 0 {
		delta = 1
	}
	c.(stubValued).stub().value += delta
}

type stubRecombiner struct{}

func (stubRecombiner) Kind() string { return "stub" }

func (stubRecombiner) Recombine(rng *rand.Rand, a, b Chromosome) Chromosome {
	return &stubChromosome{value: (a.(stubValued).stub().value + b.(stubValued).stub().value) / 2}
}

func newStubToolkit() (*Toolkit, *stubFitness) {
	fitness := &stubFitness{}
	return &Toolkit{
		Computer:   fitness,
		Mutator:    stubMutator{},
		Recombiner: stubRecombiner{},
		Evals:      &EvalCounter{},
	}, fitness
}

func newStubIndividual(tk *Toolkit, value float64, generation int) *Individual {
	return NewIndividual(tk, &stubChromosome{value: value}, generation)
}

func newStubIndividuals(tk *Toolkit, values ...float64) []*Individual {
	out := make([]*Individual, 0, len(values))
	for _, v := range values {
		out = append(out, newStubIndividual(tk, v, 1))
	}
	return out
}

func fitnessValues(individuals []*Individual) []float64 {
	out := make([]float64, 0, len(individuals))
	for _, in := range individuals {
		out = append(out, in.Fitness())
	}
	return out
}

func testRNG(seed int64) *rand.Rand { return rand.New(rand.NewSource(seed)) }
