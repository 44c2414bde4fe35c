package engine

import "math/rand"

// EvalCounter tracks how many fitness computations actually ran across the
// whole experiment, including individuals that have since been discarded or
// archived. Memo hits do not count. The run loop is single-threaded, so no
// locking is needed.
type EvalCounter struct {
	n int
}

func (c *EvalCounter) add() { c.n++ }

// Total returns the cumulative number of fitness computations.
func (c *EvalCounter) Total() int { return c.n }

// Toolkit bundles the strategy implementations every individual of a run
// delegates to, plus the shared evaluation counter.
type Toolkit struct {
	Computer   FitnessComputer
	Mutator    Mutator
	Recombiner Recombiner
	Evals      *EvalCounter
}

// Individual wraps one chromosome together with its lineage generation and a
// memoized fitness value. The memo is valid exactly until the chromosome is
// mutated or replaced.
type Individual struct {
	toolkit    *Toolkit
	chromosome Chromosome
	generation int

	fitness      float64
	fitnessValid bool
}

// NewIndividual wraps a chromosome. The chromosome is owned by the
// individual from this point on; callers must not retain references to it.
func NewIndividual(tk *Toolkit, c Chromosome, generation int) *Individual {
	return &Individual{toolkit: tk, chromosome: c, generation: generation}
}

func (in *Individual) Chromosome() Chromosome { return in.chromosome }

func (in *Individual) Generation() int { return in.generation }

// Initialize randomizes the chromosome in place and drops the fitness memo.
func (in *Individual) Initialize(rng *rand.Rand) *Individual {
	in.chromosome.Initialize(rng)
	in.invalidate()
	return in
}

// Fitness returns the memoized fitness, computing it at most once between
// mutations. Each actual computation increments the shared counter.
func (in *Individual) Fitness() float64 {
	if !in.fitnessValid {
		in.fitness = in.toolkit.Computer.Fitness(in.chromosome)
		in.fitnessValid = true
		if in.toolkit.Evals != nil {
			in.toolkit.Evals.add()
		}
	}
	return in.fitness
}

// SelfMutate mutates the chromosome in place and invalidates the memo.
func (in *Individual) SelfMutate(rng *rand.Rand) *Individual {
	in.toolkit.Mutator.MutateInPlace(rng, in.chromosome)
	in.invalidate()
	return in
}

// Recombine produces a child individual from the receiver and other. The
// child's generation is one past the older parent; its memo starts empty.
// Neither parent is modified.
func (in *Individual) Recombine(rng *rand.Rand, other *Individual) *Individual {
	child := in.toolkit.Recombiner.Recombine(rng, in.chromosome, other.chromosome)
	generation := in.generation
	if other.generation > generation {
		generation = other.generation
	}
	return NewIndividual(in.toolkit, child, generation+1)
}

// Clone returns a deep copy. The chromosome is copied, so later mutation of
// either individual cannot affect the other. A valid memo is carried over:
// the copy scores identically until one of them mutates.
func (in *Individual) Clone() *Individual {
	return &Individual{
		toolkit:      in.toolkit,
		chromosome:   in.chromosome.Clone(),
		generation:   in.generation,
		fitness:      in.fitness,
		fitnessValid: in.fitnessValid,
	}
}

// SetChromosome replaces the chromosome and invalidates the memo.
func (in *Individual) SetChromosome(c Chromosome) {
	in.chromosome = c
	in.invalidate()
}

func (in *Individual) invalidate() { in.fitnessValid = false }

func (in *Individual) String() string { return in.chromosome.String() }
