package problem

import (
	"fmt"
	"math/rand"
	"strings"

	"evogen/internal/engine"
)

// QueensKind identifies board chromosomes for the n-queens puzzle.
const QueensKind = "queens_board"

const queensDefaultSize = 8

// QueensChromosome places one queen per column; Rows[i] is the row of the
// queen in column i. Column clashes are impossible by construction, so only
// row and diagonal attacks count against fitness.
type QueensChromosome struct {
	Rows []int
}

func NewQueensChromosome(size int) *QueensChromosome {
	return &QueensChromosome{Rows: make([]int, size)}
}

func (c *QueensChromosome) Kind() string { return QueensKind }

func (c *QueensChromosome) Initialize(rng *rand.Rand) {
	for i := range c.Rows {
		c.Rows[i] = rng.Intn(len(c.Rows))
	}
}

func (c *QueensChromosome) Clone() engine.Chromosome {
	rows := make([]int, len(c.Rows))
	copy(rows, c.Rows)
	return &QueensChromosome{Rows: rows}
}

func (c *QueensChromosome) Validate() error {
	if len(c.Rows) == 0 {
		return fmt.Errorf("queens board: empty")
	}
	for i, row := range c.Rows {
		if row < 0 || row >= len(c.Rows) {
			return fmt.Errorf("queens board: column %d has row %d outside [0, %d)", i, row, len(c.Rows))
		}
	}
	return nil
}

func (c *QueensChromosome) String() string {
	parts := make([]string, len(c.Rows))
	for i, row := range c.Rows {
		parts[i] = fmt.Sprintf("%d", row)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// attackingPairs counts unordered queen pairs sharing a row or diagonal.
func (c *QueensChromosome) attackingPairs() int {
	pairs := 0
	for i := 0; i < len(c.Rows); i++ {
		for j := i + 1; j < len(c.Rows); j++ {
			rowDiff := c.Rows[j] - c.Rows[i]
			if rowDiff < 0 {
				rowDiff = -rowDiff
			}
			if rowDiff == 0 || rowDiff == j-i {
				pairs++
			}
		}
	}
	return pairs
}

// Queens is the n-queens puzzle. Fitness is 1/(1+attacking pairs), maximized,
// so a conflict-free board scores exactly 1.
type Queens struct {
	// Size is the board dimension; defaults to 8.
	Size int
}

func (Queens) Name() string { return "nqueens" }

func (Queens) Maximize() bool { return true }

func (Queens) TargetFitness() (float64, bool) { return 1, true }

func (p Queens) NewChromosome() engine.Chromosome {
	size := p.Size
	if size <= 0 {
		size = queensDefaultSize
	}
	return NewQueensChromosome(size)
}

func (Queens) Fitness() engine.FitnessComputer { return queensFitness{} }

func (Queens) Mutator() engine.Mutator { return RandomizeColumnMutator{} }

func (Queens) Recombiner() engine.Recombiner { return CutCrossfillRecombiner{} }

type queensFitness struct{}

func (queensFitness) Kind() string { return QueensKind }

func (queensFitness) Fitness(c engine.Chromosome) float64 {
	return 1 / (1 + float64(c.(*QueensChromosome).attackingPairs()))
}

// RandomizeColumnMutator moves the queen in one random column to a random row.
type RandomizeColumnMutator struct{}

func (RandomizeColumnMutator) Kind() string { return QueensKind }

func (RandomizeColumnMutator) MutateInPlace(rng *rand.Rand, c engine.Chromosome) {
	board := c.(*QueensChromosome)
	board.Rows[rng.Intn(len(board.Rows))] = rng.Intn(len(board.Rows))
}

// CutCrossfillRecombiner copies a random-length prefix from the first parent
// and fills the remaining columns from the second parent in order, skipping
// rows the prefix already uses; leftover columns fall back to the second
// parent's own rows.
type CutCrossfillRecombiner struct{}

func (CutCrossfillRecombiner) Kind() string { return QueensKind }

func (CutCrossfillRecombiner) Recombine(rng *rand.Rand, a, b engine.Chromosome) engine.Chromosome {
	first := a.(*QueensChromosome)
	second := b.(*QueensChromosome)

	size := len(first.Rows)
	rows := make([]int, 0, size)
	cut := 0
	if size > 1 {
		cut = 1 + rng.Intn(size-1)
	}

	used := make(map[int]bool, size)
	for _, row := range first.Rows[:cut] {
		rows = append(rows, row)
		used[row] = true
	}
	for _, row := range second.Rows {
		if len(rows) == size {
			break
		}
		if !used[row] {
			rows = append(rows, row)
			used[row] = true
		}
	}
	for i := len(rows); i < size; i++ {
		rows = append(rows, second.Rows[i])
	}

	return &QueensChromosome{Rows: rows}
}

func init() {
	mustRegister("nqueens", func() Problem { return Queens{} })
}
