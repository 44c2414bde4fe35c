package engine

import "math/rand"

// Couple pairs two parents for reproduction.
type Couple struct {
	A, B *Individual
}

// MatingSelector pairs individuals for reproduction. Implementations return
// at most numPairs couples and no couples at all for populations of size <=1,
// where pairwise mating is undefined.
type MatingSelector interface {
	Name() string
	SelectCouples(rng *rand.Rand, population []*Individual, numPairs int, maximize bool) []Couple
}

// BestFitnessMating ranks the population by fitness and pairs adjacent
// ranks: (1st, 2nd), (3rd, 4th), and so on.
type BestFitnessMating struct{}

func (BestFitnessMating) Name() string { return "best_fitness" }

func (BestFitnessMating) SelectCouples(rng *rand.Rand, population []*Individual, numPairs int, maximize bool) []Couple {
	if len(population) <= 1 || numPairs <= 0 {
		return nil
	}
	ranked := sortedByFitness(population, maximize)

	couples := make([]Couple, 0, numPairs)
	for i := 0; i+1 < len(ranked) && len(couples) < numPairs; i += 2 {
		couples = append(couples, Couple{A: ranked[i], B: ranked[i+1]})
	}
	return couples
}

// RandomMating draws numPairs uniform random couples of distinct individuals.
type RandomMating struct{}

func (RandomMating) Name() string { return "random" }

func (RandomMating) SelectCouples(rng *rand.Rand, population []*Individual, numPairs int, maximize bool) []Couple {
	if len(population) <= 1 || numPairs <= 0 {
		return nil
	}

	couples := make([]Couple, 0, numPairs)
	for p := 0; p < numPairs; p++ {
		i := rng.Intn(len(population))
		j := rng.Intn(len(population) - 1)
		if j >= i {
			j++
		}
		couples = append(couples, Couple{A: population[i], B: population[j]})
	}
	return couples
}

// RouletteMating draws each couple as two distinct fitness-proportional
// picks from a fresh without-replacement sampler.
type RouletteMating struct{}

func (RouletteMating) Name() string { return "roulette" }

func (RouletteMating) SelectCouples(rng *rand.Rand, population []*Individual, numPairs int, maximize bool) []Couple {
	if len(population) <= 1 || numPairs <= 0 {
		return nil
	}

	couples := make([]Couple, 0, numPairs)
	for p := 0; p < numPairs; p++ {
		sampler := NewWeightedSampler(population, maximize)
		first, ok := sampler.PickAndRemove(rng)
		if !ok {
			break
		}
		second, ok := sampler.PickAndRemove(rng)
		if !ok {
			break
		}
		couples = append(couples, Couple{A: first, B: second})
	}
	return couples
}

// TournamentMating shuffles the population, takes a random subset of size
// min(TournamentSize, population) and pairs its two fittest members,
// repeated once per requested couple.
type TournamentMating struct {
	// TournamentSize bounds the random subset; defaults to 5.
	TournamentSize int
}

func (TournamentMating) Name() string { return "tournament" }

func (s TournamentMating) SelectCouples(rng *rand.Rand, population []*Individual, numPairs int, maximize bool) []Couple {
	if len(population) <= 1 || numPairs <= 0 {
		return nil
	}

	size := s.TournamentSize
	if size <= 0 {
		size = 5
	}
	if size > len(population) {
		size = len(population)
	}

	couples := make([]Couple, 0, numPairs)
	for p := 0; p < numPairs; p++ {
		perm := rng.Perm(len(population))
		subset := make([]*Individual, 0, size)
		for _, idx := range perm[:size] {
			subset = append(subset, population[idx])
		}
		sortByFitness(subset, maximize)
		couples = append(couples, Couple{A: subset[0], B: subset[1]})
	}
	return couples
}
