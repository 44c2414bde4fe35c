package engine

import "testing"

func TestSamplerWithoutReplacementNeverRepeats(t *testing.T) {
	tk, _ := newStubToolkit()
	individuals := newStubIndividuals(tk, 1, 2, 3, 4, 5)
	sampler := NewWeightedSampler(individuals, true)
	rng := testRNG(7)

	seen := make(map[*Individual]bool)
	for i := 0; i < len(individuals); i++ {
		picked, ok := sampler.PickAndRemove(rng)
		if !ok {
			t.Fatalf("draw %d failed with %d items left", i, sampler.Len())
		}
		if seen[picked] {
			t.Fatalf("draw %d returned an already removed individual", i)
		}
		seen[picked] = true
	}
	if _, ok := sampler.PickAndRemove(rng); ok {
		t.Fatal("draw from empty sampler succeeded")
	}
}

func TestSamplerAllZeroWeightsFallsBackToUniform(t *testing.T) {
	tk, _ := newStubToolkit()
	// Equal fitness rebases every weight to zero.
	individuals := newStubIndividuals(tk, 2, 2, 2, 2)
	sampler := NewWeightedSampler(individuals, true)
	rng := testRNG(3)

	for i := 0; i < len(individuals); i++ {
		if _, ok := sampler.PickAndRemove(rng); !ok {
			t.Fatalf("degenerate draw %d failed", i)
		}
	}
	if sampler.Len() != 0 {
		t.Fatalf("sampler has %d items left, want 0", sampler.Len())
	}
}

func TestSamplerFavorsBetterFitness(t *testing.T) {
	tk, _ := newStubToolkit()
	individuals := newStubIndividuals(tk, 1, 10)
	rng := testRNG(11)

	counts := make(map[*Individual]int)
	sampler := NewWeightedSampler(individuals, true)
	for i := 0; i < 1000; i++ {
		picked, ok := sampler.Pick(rng)
		if !ok {
			t.Fatal("pick failed")
		}
		counts[picked]++
	}
	if counts[individuals[1]] <= counts[individuals[0]] {
		t.Fatalf("high-fitness individual picked %d times, low %d", counts[individuals[1]], counts[individuals[0]])
	}
}

func TestSamplerHandlesNegativeFitness(t *testing.T) {
	tk, _ := newStubToolkit()
	individuals := newStubIndividuals(tk, -10, -1)
	rng := testRNG(17)

	counts := make(map[*Individual]int)
	sampler := NewWeightedSampler(individuals, true)
	for i := 0; i < 1000; i++ {
		picked, ok := sampler.Pick(rng)
		if !ok {
			t.Fatal("pick failed")
		}
		counts[picked]++
	}
	// Rebasing keeps weights nonnegative on all-negative landscapes, where
	// raw fitness-proportional selection would be undefined.
	if counts[individuals[1]] <= counts[individuals[0]] {
		t.Fatalf("better individual picked %d times, worse %d", counts[individuals[1]], counts[individuals[0]])
	}
}

func TestSamplerInvertsWeightsForMinimize(t *testing.T) {
	tk, _ := newStubToolkit()
	individuals := newStubIndividuals(tk, 1, 10)
	rng := testRNG(13)

	counts := make(map[*Individual]int)
	sampler := NewWeightedSampler(individuals, false)
	for i := 0; i < 1000; i++ {
		picked, ok := sampler.Pick(rng)
		if !ok {
			t.Fatal("pick failed")
		}
		counts[picked]++
	}
	// On minimize problems lower fitness must get the higher probability.
	if counts[individuals[0]] <= counts[individuals[1]] {
		t.Fatalf("low-fitness individual picked %d times, high %d", counts[individuals[0]], counts[individuals[1]])
	}
}

func TestSamplerWithReplacementKeepsPopulation(t *testing.T) {
	tk, _ := newStubToolkit()
	individuals := newStubIndividuals(tk, 1, 2, 3)
	sampler := NewWeightedSampler(individuals, true)
	rng := testRNG(5)

	for i := 0; i < 10; i++ {
		if _, ok := sampler.Pick(rng); !ok {
			t.Fatalf("pick %d failed", i)
		}
	}
	if sampler.Len() != 3 {
		t.Fatalf("sampler len = %d after picks with replacement, want 3", sampler.Len())
	}
}

func TestSamplerEmpty(t *testing.T) {
	sampler := NewWeightedSampler(nil, true)
	if _, ok := sampler.Pick(testRNG(1)); ok {
		t.Fatal("pick from empty sampler succeeded")
	}
}
