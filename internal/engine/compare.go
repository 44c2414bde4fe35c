package engine

import (
	"math"
	"sort"
)

// fitnessEps is the numerical tolerance used for target-fitness checks and
// for treating a standard deviation as zero.
const fitnessEps = 1e-9

// better reports whether fitness a beats fitness b under the run's
// optimization direction.
func better(a, b float64, maximize bool) bool {
	if maximize {
		return a > b
	}
	return a < b
}

// betterOrEqual is better with ties allowed.
func betterOrEqual(a, b float64, maximize bool) bool {
	return a == b || better(a, b, maximize)
}

// withinTarget reports whether best has reached target under the given
// direction, within fitnessEps.
func withinTarget(best, target float64, maximize bool) bool {
	if math.Abs(best-target) < fitnessEps {
		return true
	}
	return better(best, target, maximize)
}

// sortByFitness orders individuals best-first for the given direction. The
// sort is stable so that equal-fitness individuals keep their relative order
// and selection stays deterministic under a fixed seed.
func sortByFitness(individuals []*Individual, maximize bool) {
	sort.SliceStable(individuals, func(i, j int) bool {
		return better(individuals[i].Fitness(), individuals[j].Fitness(), maximize)
	})
}

// sortedByFitness returns a best-first copy, leaving the input order alone.
func sortedByFitness(individuals []*Individual, maximize bool) []*Individual {
	out := make([]*Individual, len(individuals))
	copy(out, individuals)
	sortByFitness(out, maximize)
	return out
}
