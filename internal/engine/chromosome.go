package engine

import (
	"fmt"
	"math/rand"
)

// Chromosome is the opaque encoding of one candidate solution. The engine
// never inspects its contents; it only initializes, copies and hands it to
// the problem's strategy implementations.
type Chromosome interface {
	// Kind names the representation. Strategies declare the kind they
	// understand and the experiment refuses mismatched wiring up front.
	Kind() string
	// Initialize randomizes the chromosome in place.
	Initialize(rng *rand.Rand)
	// Clone returns a deep copy sharing no mutable state with the receiver.
	Clone() Chromosome
	// Validate reports a violated representation invariant, if any.
	Validate() error
	fmt.Stringer
}

// FitnessComputer scores a chromosome. Implementations must be pure: the
// engine memoizes results and only recomputes after a mutation.
type FitnessComputer interface {
	Kind() string
	Fitness(c Chromosome) float64
}

// Mutator perturbs a chromosome in place. Implementations clamp or resample
// out-of-range genes rather than producing invalid chromosomes.
type Mutator interface {
	Kind() string
	MutateInPlace(rng *rand.Rand, c Chromosome)
}

// Recombiner combines two parent chromosomes into a new one. Neither parent
// may be modified.
type Recombiner interface {
	Kind() string
	Recombine(rng *rand.Rand, a, b Chromosome) Chromosome
}

// Mutate deep-copies the chromosome and mutates the copy, leaving the
// original untouched.
func Mutate(m Mutator, rng *rand.Rand, c Chromosome) Chromosome {
	out := c.Clone()
	m.MutateInPlace(rng, out)
	return out
}
