package problem

import (
	"fmt"
	"math/rand"
	"strings"

	"evogen/internal/engine"
)

// VectorKind tags the bounded float-vector representation shared by the
// continuous benchmarks.
const VectorKind = "float_vector"

// VectorChromosome is a fixed-length vector of floats, each bounded to
// [Lower, Upper].
type VectorChromosome struct {
	Values []float64
	Lower  float64
	Upper  float64
}

// NewVectorChromosome builds an all-zero vector with the given bounds. The
// zero vector may sit outside [lower, upper]; Initialize fixes that before
// any individual is used.
func NewVectorChromosome(size int, lower, upper float64) *VectorChromosome {
	return &VectorChromosome{Values: make([]float64, size), Lower: lower, Upper: upper}
}

func (c *VectorChromosome) Kind() string { return VectorKind }

func (c *VectorChromosome) Initialize(rng *rand.Rand) {
	for i := range c.Values {
		c.Values[i] = c.Lower + rng.Float64()*(c.Upper-c.Lower)
	}
}

func (c *VectorChromosome) Clone() engine.Chromosome {
	clone := &VectorChromosome{
		Values: append([]float64(nil), c.Values...),
		Lower:  c.Lower,
		Upper:  c.Upper,
	}
	return clone
}

func (c *VectorChromosome) Validate() error {
	if c.Lower > c.Upper {
		return fmt.Errorf("bounds inverted: [%v, %v]", c.Lower, c.Upper)
	}
	for i, v := range c.Values {
		if v < c.Lower || v > c.Upper {
			return fmt.Errorf("gene %d out of bounds: %v not in [%v, %v]", i, v, c.Lower, c.Upper)
		}
	}
	return nil
}

func (c *VectorChromosome) String() string {
	parts := make([]string, len(c.Values))
	for i, v := range c.Values {
		parts[i] = fmt.Sprintf("%.6f", v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func clamp(v, lower, upper float64) float64 {
	if v < lower {
		return lower
	}
	if v > upper {
		return upper
	}
	return v
}

// DeltaMutator adds gaussian noise to every gene, clamping to the
// chromosome's bounds so no invalid gene can be produced. The step size is
// per-instance state rather than anything shared between runs.
type DeltaMutator struct {
	Step float64
}

func (DeltaMutator) Kind() string { return VectorKind }

func (m DeltaMutator) MutateInPlace(rng *rand.Rand, c engine.Chromosome) {
	vec := c.(*VectorChromosome)
	step := m.Step
	if step <= 0 {
		step = 1.0
	}
	for i, v := range vec.Values {
		vec.Values[i] = clamp(v+rng.NormFloat64()*step, vec.Lower, vec.Upper)
	}
}

// RandomizeGeneMutator shifts one random gene by a uniform delta no larger
// than its distance to the nearer bound, so the result always stays in
// range.
type RandomizeGeneMutator struct{}

func (RandomizeGeneMutator) Kind() string { return VectorKind }

func (RandomizeGeneMutator) MutateInPlace(rng *rand.Rand, c engine.Chromosome) {
	vec := c.(*VectorChromosome)
	if len(vec.Values) == 0 {
		return
	}
	i := rng.Intn(len(vec.Values))
	v := vec.Values[i]
	maxDelta := v - vec.Lower
	if d := vec.Upper - v; d < maxDelta {
		maxDelta = d
	}
	delta := (rng.Float64()*2 - 1) * maxDelta
	vec.Values[i] = clamp(v+delta, vec.Lower, vec.Upper)
}

// InterpolationRecombiner builds each child gene as a fresh random
// interpolation between the parents' genes, which always lands inside the
// parents' common bounds.
type InterpolationRecombiner struct{}

func (InterpolationRecombiner) Kind() string { return VectorKind }

func (InterpolationRecombiner) Recombine(rng *rand.Rand, a, b engine.Chromosome) engine.Chromosome {
	va := a.(*VectorChromosome)
	vb := b.(*VectorChromosome)

	child := va.Clone().(*VectorChromosome)
	for i := range child.Values {
		r := rng.Float64()
		child.Values[i] = va.Values[i] + r*(vb.Values[i]-va.Values[i])
	}
	return child
}
