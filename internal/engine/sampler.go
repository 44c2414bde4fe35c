package engine

import "math/rand"

// WeightedSampler draws individuals with probability proportional to their
// fitness, honoring the run's optimization direction. Weights are rebased so
// the worst individual gets weight zero: for maximize runs the weight is
// fitness-min(fitness), for minimize runs it is max(fitness)-fitness, so
// lower fitness yields higher selection probability on minimize problems.
//
// When every weight is zero (all individuals tie) the sampler falls back to
// a uniform draw instead of failing, so it terminates in bounded time even
// in the degenerate case.
type WeightedSampler struct {
	items []samplerItem
	total float64
}

type samplerItem struct {
	individual *Individual
	weight     float64
}

// NewWeightedSampler builds a sampler over the given individuals. The input
// slice is not retained.
func NewWeightedSampler(individuals []*Individual, maximize bool) *WeightedSampler {
	s := &WeightedSampler{items: make([]samplerItem, 0, len(individuals))}
	if len(individuals) == 0 {
		return s
	}

	minF := individuals[0].Fitness()
	maxF := minF
	for _, in := range individuals[1:] {
		f := in.Fitness()
		if f < minF {
			minF = f
		}
		if f > maxF {
			maxF = f
		}
	}

	for _, in := range individuals {
		var w float64
		if maximize {
			w = in.Fitness() - minF
		} else {
			w = maxF - in.Fitness()
		}
		s.items = append(s.items, samplerItem{individual: in, weight: w})
		s.total += w
	}
	return s
}

// Len returns how many individuals remain in the sampler.
func (s *WeightedSampler) Len() int { return len(s.items) }

// Pick draws one individual with replacement. It reports false when the
// sampler is empty.
func (s *WeightedSampler) Pick(rng *rand.Rand) (*Individual, bool) {
	idx, ok := s.pickIndex(rng)
	if !ok {
		return nil, false
	}
	return s.items[idx].individual, true
}

// PickAndRemove draws one individual and removes it from future draws. A
// removed individual can never be returned twice.
func (s *WeightedSampler) PickAndRemove(rng *rand.Rand) (*Individual, bool) {
	idx, ok := s.pickIndex(rng)
	if !ok {
		return nil, false
	}
	picked := s.items[idx]
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.total -= picked.weight
	if s.total < 0 {
		s.total = 0
	}
	return picked.individual, true
}

func (s *WeightedSampler) pickIndex(rng *rand.Rand) (int, bool) {
	if len(s.items) == 0 {
		return 0, false
	}
	if s.total <= 0 {
		return rng.Intn(len(s.items)), true
	}
	r := rng.Float64() * s.total
	acc := 0.0
	for i, item := range s.items {
		acc += item.weight
		if r <= acc {
			return i, true
		}
	}
	// Float accumulation can land just past the last bucket.
	return len(s.items) - 1, true
}
