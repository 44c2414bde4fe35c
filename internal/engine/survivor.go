package engine

import (
	"math/rand"
	"sort"
)

// SurvivorSelector reduces parents and breed to the next generation. The
// result always has exactly populationSize individuals.
type SurvivorSelector interface {
	Name() string
	SelectSurvivors(rng *rand.Rand, populationSize int, parents, breed []*Individual, maximize bool) []*Individual
}

// ElitistMergeSurvivor merges parents and breed, both ranked by fitness,
// with a two-pointer walk that always takes the better front element and
// prefers breed on exact ties. Equivalent to a (mu+lambda) truncation that
// favors the younger individual when fitness ties.
type ElitistMergeSurvivor struct{}

func (ElitistMergeSurvivor) Name() string { return "elitist_merge" }

func (ElitistMergeSurvivor) SelectSurvivors(rng *rand.Rand, populationSize int, parents, breed []*Individual, maximize bool) []*Individual {
	rankedParents := sortedByFitness(parents, maximize)
	rankedBreed := sortedByFitness(breed, maximize)

	survivors := make([]*Individual, 0, populationSize)
	i, j := 0, 0
	for len(survivors) < populationSize && (i < len(rankedParents) || j < len(rankedBreed)) {
		switch {
		case i >= len(rankedParents):
			survivors = append(survivors, rankedBreed[j])
			j++
		case j >= len(rankedBreed):
			survivors = append(survivors, rankedParents[i])
			i++
		case betterOrEqual(rankedBreed[j].Fitness(), rankedParents[i].Fitness(), maximize):
			survivors = append(survivors, rankedBreed[j])
			j++
		default:
			survivors = append(survivors, rankedParents[i])
			i++
		}
	}
	return padSurvivors(survivors, populationSize)
}

// RouletteSurvivor draws the next generation fitness-proportionally, with
// replacement, from the union of parents and breed. Repeated draws are
// cloned so no chromosome is ever aliased between two individuals.
type RouletteSurvivor struct{}

func (RouletteSurvivor) Name() string { return "roulette" }

func (RouletteSurvivor) SelectSurvivors(rng *rand.Rand, populationSize int, parents, breed []*Individual, maximize bool) []*Individual {
	pool := make([]*Individual, 0, len(parents)+len(breed))
	pool = append(pool, parents...)
	pool = append(pool, breed...)
	if len(pool) == 0 {
		return nil
	}

	sampler := NewWeightedSampler(pool, maximize)
	taken := make(map[*Individual]bool, populationSize)
	survivors := make([]*Individual, 0, populationSize)
	for len(survivors) < populationSize {
		picked, ok := sampler.Pick(rng)
		if !ok {
			break
		}
		if taken[picked] {
			picked = picked.Clone()
		} else {
			taken[picked] = true
		}
		survivors = append(survivors, picked)
	}
	return survivors
}

// GenerationalSurvivor scores each candidate by fitness relative to the pool
// mean, weighted by lineage age relative to the pool's mean generation.
// Rewarding age alongside fitness keeps young lineages alive and delays
// convergence onto a single long-lived elite.
type GenerationalSurvivor struct{}

func (GenerationalSurvivor) Name() string { return "generational" }

func (GenerationalSurvivor) SelectSurvivors(rng *rand.Rand, populationSize int, parents, breed []*Individual, maximize bool) []*Individual {
	pool := make([]*Individual, 0, len(parents)+len(breed))
	pool = append(pool, parents...)
	pool = append(pool, breed...)
	if len(pool) == 0 {
		return nil
	}

	meanFitness := 0.0
	meanGeneration := 0.0
	for _, in := range pool {
		meanFitness += in.Fitness()
		meanGeneration += float64(in.Generation())
	}
	meanFitness /= float64(len(pool))
	meanGeneration /= float64(len(pool))
	if meanFitness == 0 {
		meanFitness = 1.0
	}
	if meanGeneration == 0 {
		meanGeneration = 1.0
	}

	scored := make([]*Individual, len(pool))
	copy(scored, pool)
	score := func(in *Individual) float64 {
		return in.Fitness() / meanFitness * (float64(in.Generation()) / meanGeneration)
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return better(score(scored[i]), score(scored[j]), maximize)
	})

	if len(scored) > populationSize {
		scored = scored[:populationSize]
	}
	return padSurvivors(scored, populationSize)
}

// padSurvivors restores the configured size when selection produced too few
// candidates, cycling clones of the ranked survivors.
func padSurvivors(survivors []*Individual, populationSize int) []*Individual {
	if len(survivors) == 0 {
		return survivors
	}
	for i := 0; len(survivors) < populationSize; i++ {
		survivors = append(survivors, survivors[i%len(survivors)].Clone())
	}
	return survivors
}
