package engine

import "fmt"

// SolutionArchive keeps the best individuals seen across an entire run,
// independent of population membership. Entries are deep copies, so churn in
// the live population can never corrupt an archived solution. The archive is
// always sorted best-first and never exceeds its configured limit.
type SolutionArchive struct {
	limit    int
	maximize bool
	best     []*Individual
}

// NewSolutionArchive builds an empty archive bounded to limit entries.
func NewSolutionArchive(limit int, maximize bool) (*SolutionArchive, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("archive limit must be > 0, got %d", limit)
	}
	return &SolutionArchive{limit: limit, maximize: maximize}, nil
}

// Update merges the current population into the archive with a two-pointer
// walk over both ranked lists. Archive entries that survive the merge are
// kept as-is; entries promoted from the population are cloned. An archived
// fitness is only ever displaced by a better one, never by sort instability:
// on ties the existing archive entry wins.
func (a *SolutionArchive) Update(population []*Individual) {
	ranked := sortedByFitness(population, a.maximize)

	merged := make([]*Individual, 0, a.limit)
	i, j := 0, 0
	for len(merged) < a.limit && (i < len(a.best) || j < len(ranked)) {
		switch {
		case i >= len(a.best):
			merged = append(merged, ranked[j].Clone())
			j++
		case j >= len(ranked):
			merged = append(merged, a.best[i])
			i++
		case better(ranked[j].Fitness(), a.best[i].Fitness(), a.maximize):
			merged = append(merged, ranked[j].Clone())
			j++
		default:
			merged = append(merged, a.best[i])
			i++
		}
	}
	a.best = merged
}

// Best returns the single best individual seen so far, or nil before the
// first update.
func (a *SolutionArchive) Best() *Individual {
	if len(a.best) == 0 {
		return nil
	}
	return a.best[0]
}

// BestIndividuals returns the archived individuals, best first. The returned
// slice is a copy; the archived entries themselves are not.
func (a *SolutionArchive) BestIndividuals() []*Individual {
	out := make([]*Individual, len(a.best))
	copy(out, a.best)
	return out
}

// Len returns the number of archived individuals.
func (a *SolutionArchive) Len() int { return len(a.best) }
