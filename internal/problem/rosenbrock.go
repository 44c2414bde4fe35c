package problem

import "evogen/internal/engine"

const (
	rosenbrockDefaultSize  = 2
	rosenbrockDefaultBound = 2.048
)

// Rosenbrock is the classic banana-valley minimization benchmark:
// sum over i of 100*(x_{i+1} - x_i^2)^2 + (x_i - 1)^2, minimized, with the
// global optimum 0 at (1, ..., 1).
type Rosenbrock struct {
	// Size is the vector dimension; defaults to 2.
	Size int
	// Bound makes the search space [-Bound, Bound]^Size; defaults to 2.048.
	Bound float64
}

func (Rosenbrock) Name() string { return "rosenbrock" }

func (Rosenbrock) Maximize() bool { return false }

func (Rosenbrock) TargetFitness() (float64, bool) { return 0, false }

func (p Rosenbrock) NewChromosome() engine.Chromosome {
	size := p.Size
	if size <= 0 {
		size = rosenbrockDefaultSize
	}
	bound := p.Bound
	if bound <= 0 {
		bound = rosenbrockDefaultBound
	}
	return NewVectorChromosome(size, -bound, bound)
}

func (Rosenbrock) Fitness() engine.FitnessComputer { return rosenbrockFitness{} }

func (Rosenbrock) Mutator() engine.Mutator { return RandomizeGeneMutator{} }

func (Rosenbrock) Recombiner() engine.Recombiner { return InterpolationRecombiner{} }

type rosenbrockFitness struct{}

func (rosenbrockFitness) Kind() string { return VectorKind }

func (rosenbrockFitness) Fitness(c engine.Chromosome) float64 {
	values := c.(*VectorChromosome).Values

	total := 0.0
	for i := 0; i+1 < len(values); i++ {
		x1 := values[i]
		x2 := values[i+1]
		left := x2 - x1*x1
		right := x1 - 1
		total += 100*left*left + right*right
	}
	return total
}

func init() {
	mustRegister("rosenbrock", func() Problem { return Rosenbrock{} })
}
