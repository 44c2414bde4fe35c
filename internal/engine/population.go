package engine

import (
	"math/rand"

	"gonum.org/v1/gonum/stat"
)

// PopulationConfig carries the per-generation reproduction parameters.
type PopulationConfig struct {
	Size          int
	CrossoverProb float64
	MutationProb  float64
	BreedSize     int
	NumPairs      int
	Maximize      bool
	Mating        MatingSelector
	Survivor      SurvivorSelector
}

// Population holds the current generation of individuals and drives one
// offspring-then-survivors step per Evolve call. Aggregate fitness
// statistics are memoized and dropped whenever the individual set changes.
type Population struct {
	cfg         PopulationConfig
	individuals []*Individual
	generation  int

	avg        float64
	sd         float64
	statsValid bool
}

// NewPopulation wraps an initial generation. The slice is owned by the
// population after this call.
func NewPopulation(cfg PopulationConfig, individuals []*Individual) *Population {
	return &Population{cfg: cfg, individuals: individuals, generation: 1}
}

// Individuals exposes the current generation as a working set. Order carries
// no meaning.
func (p *Population) Individuals() []*Individual { return p.individuals }

// Generation returns the current generation number, starting at 1.
func (p *Population) Generation() int { return p.generation }

// Size returns the configured population size.
func (p *Population) Size() int { return p.cfg.Size }

// Evolve produces offspring from the current generation and reduces parents
// plus offspring back to the configured size via the survivor selector.
func (p *Population) Evolve(rng *rand.Rand) {
	breed := p.offspring(rng)
	survivors := p.cfg.Survivor.SelectSurvivors(rng, p.cfg.Size, p.individuals, breed, p.cfg.Maximize)
	p.individuals = survivors
	p.generation++
	p.statsValid = false
}

// offspring builds the breed for this generation. Each selected couple
// yields BreedSize children; every child is either a recombination of its
// parents (probability CrossoverProb) or a deep-copied clone of a random
// parent, and then mutates independently with probability MutationProb.
func (p *Population) offspring(rng *rand.Rand) []*Individual {
	if len(p.individuals) == 1 {
		// Pairwise mating is undefined for a singleton population; breed
		// from clones of the lone survivor instead.
		single := p.individuals[0]
		breed := make([]*Individual, 0, p.cfg.BreedSize)
		for i := 0; i < p.cfg.BreedSize; i++ {
			child := single.Clone()
			if rng.Float64() < p.cfg.MutationProb {
				child.SelfMutate(rng)
			}
			breed = append(breed, child)
		}
		return breed
	}

	couples := p.cfg.Mating.SelectCouples(rng, p.individuals, p.cfg.NumPairs, p.cfg.Maximize)
	breed := make([]*Individual, 0, len(couples)*p.cfg.BreedSize)
	for _, couple := range couples {
		for i := 0; i < p.cfg.BreedSize; i++ {
			var child *Individual
			if rng.Float64() < p.cfg.CrossoverProb {
				child = couple.A.Recombine(rng, couple.B)
			} else if rng.Intn(2) == 0 {
				child = couple.A.Clone()
			} else {
				child = couple.B.Clone()
			}
			if rng.Float64() < p.cfg.MutationProb {
				child.SelfMutate(rng)
			}
			breed = append(breed, child)
		}
	}
	return breed
}

// Restart reinitializes every individual's chromosome in place. Used for
// stagnation recovery; population size and generation counting are
// unaffected, while fitness memos and aggregates are dropped.
func (p *Population) Restart(rng *rand.Rand) {
	for _, in := range p.individuals {
		in.Initialize(rng)
	}
	p.statsValid = false
}

// AvgFitness returns the memoized mean fitness of the current generation.
func (p *Population) AvgFitness() float64 {
	p.refreshStats()
	return p.avg
}

// SDFitness returns the memoized sample standard deviation of the current
// generation's fitness.
func (p *Population) SDFitness() float64 {
	p.refreshStats()
	return p.sd
}

func (p *Population) refreshStats() {
	if p.statsValid {
		return
	}
	values := make([]float64, len(p.individuals))
	for i, in := range p.individuals {
		values[i] = in.Fitness()
	}
	p.avg = stat.Mean(values, nil)
	if len(values) < 2 {
		p.sd = 0
	} else {
		p.sd = stat.StdDev(values, nil)
	}
	p.statsValid = true
}
