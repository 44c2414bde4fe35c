package problem

import (
	"math"

	"evogen/internal/engine"
)

// Ackley's function, negated so the engine maximizes toward the global
// optimum of 0 at the origin. Standard coefficients c1=20, c2=0.2, c3=2*pi.
const (
	ackleyC1 = 20.0
	ackleyC2 = 0.2
	ackleyC3 = 2 * math.Pi

	ackleyDefaultSize  = 30
	ackleyDefaultBound = 15.0
	ackleyDefaultStep  = 0.5
)

// Ackley is the multimodal continuous benchmark.
type Ackley struct {
	// Size is the vector dimension; defaults to 30.
	Size int
	// Bound makes the search space [-Bound, Bound]^Size; defaults to 15.
	Bound float64
	// Step is the gaussian mutation step size; defaults to 0.5.
	Step float64
}

func (Ackley) Name() string { return "ackley" }

func (Ackley) Maximize() bool { return true }

func (Ackley) TargetFitness() (float64, bool) { return 0, true }

func (p Ackley) NewChromosome() engine.Chromosome {
	size := p.Size
	if size <= 0 {
		size = ackleyDefaultSize
	}
	bound := p.Bound
	if bound <= 0 {
		bound = ackleyDefaultBound
	}
	return NewVectorChromosome(size, -bound, bound)
}

func (Ackley) Fitness() engine.FitnessComputer { return ackleyFitness{} }

func (p Ackley) Mutator() engine.Mutator {
	step := p.Step
	if step <= 0 {
		step = ackleyDefaultStep
	}
	return DeltaMutator{Step: step}
}

func (Ackley) Recombiner() engine.Recombiner { return InterpolationRecombiner{} }

type ackleyFitness struct{}

func (ackleyFitness) Kind() string { return VectorKind }

func (ackleyFitness) Fitness(c engine.Chromosome) float64 {
	values := c.(*VectorChromosome).Values
	n := float64(len(values))

	squares := 0.0
	cosines := 0.0
	for _, v := range values {
		squares += v * v
		cosines += math.Cos(ackleyC3 * v)
	}

	result := math.E + ackleyC1
	result -= ackleyC1 * math.Exp(-ackleyC2*math.Sqrt(squares/n))
	result -= math.Exp(cosines / n)
	return -result
}

func init() {
	mustRegister("ackley", func() Problem { return Ackley{} })
}
