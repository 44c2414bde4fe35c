package engine

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		PopulationSize: 10,
		MaxGenerations: 5,
		CrossoverProb:  0.9,
		MutationProb:   0.4,
		NumSolutions:   3,
		BreedSize:      2,
		NumParentPairs: 3,
		Maximize:       true,
		Seed:           1,
		NewChromosome:  func() Chromosome { return &stubChromosome{} },
		Computer:       &stubFitness{},
		Mutator:        stubMutator{},
		Recombiner:     stubRecombiner{},
	}
}

func TestNewExperimentRejectsIncompatibleStrategy(t *testing.T) {
	cfg := validConfig()
	cfg.Mutator = mismatchedMutator{}

	if _, err := NewExperiment(cfg); !errors.Is(err, ErrIncompatibleStrategy) {
		t.Fatalf("err = %v, want ErrIncompatibleStrategy", err)
	}
}

type mismatchedMutator struct{}

func (mismatchedMutator) Kind() string                              { return "other" }
func (mismatchedMutator) MutateInPlace(rng *rand.Rand, c Chromosome) {}

func TestNewExperimentValidatesConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero population", func(c *Config) { c.PopulationSize = 0 }},
		{"zero generations", func(c *Config) { c.MaxGenerations = 0 }},
		{"crossover above one", func(c *Config) { c.CrossoverProb = 1.5 }},
		{"negative mutation", func(c *Config) { c.MutationProb = -0.1 }},
		{"zero solutions", func(c *Config) { c.NumSolutions = 0 }},
		{"zero breed size", func(c *Config) { c.BreedSize = 0 }},
		{"zero parent pairs", func(c *Config) { c.NumParentPairs = 0 }},
		{"negative eval budget", func(c *Config) { c.MaxFitnessEvals = -1 }},
		{"missing chromosome factory", func(c *Config) { c.NewChromosome = nil }},
		{"missing computer", func(c *Config) { c.Computer = nil }},
		{"missing mutator", func(c *Config) { c.Mutator = nil }},
		{"missing recombiner", func(c *Config) { c.Recombiner = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			if _, err := NewExperiment(cfg); err == nil {
				t.Fatal("expected configuration error")
			}
		})
	}
}

func TestRunStopsAtMaxGenerations(t *testing.T) {
	cfg := validConfig()
	exp, err := NewExperiment(cfg)
	if err != nil {
		t.Fatalf("new experiment: %v", err)
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Outcome != OutcomeMaxGenerations {
		t.Fatalf("outcome = %q, want %q", result.Outcome, OutcomeMaxGenerations)
	}
	if result.Generations != cfg.MaxGenerations+1 {
		t.Fatalf("generations = %d, want %d", result.Generations, cfg.MaxGenerations+1)
	}
	if len(result.BestIndividuals) == 0 || len(result.BestIndividuals) > cfg.NumSolutions {
		t.Fatalf("archive size = %d, want within (0, %d]", len(result.BestIndividuals), cfg.NumSolutions)
	}
}

func TestRunStopsOnEvalBudget(t *testing.T) {
	cfg := validConfig()
	cfg.MaxGenerations = 1000
	cfg.MaxFitnessEvals = 25

	exp, err := NewExperiment(cfg)
	if err != nil {
		t.Fatalf("new experiment: %v", err)
	}
	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Outcome != OutcomeEvalBudget {
		t.Fatalf("outcome = %q, want %q", result.Outcome, OutcomeEvalBudget)
	}
	if result.Evaluations < cfg.MaxFitnessEvals {
		t.Fatalf("evaluations = %d, want >= %d", result.Evaluations, cfg.MaxFitnessEvals)
	}
}

func TestRunStopsOnTargetFitness(t *testing.T) {
	cfg := validConfig()
	cfg.MaxGenerations = 1000
	cfg.MutationProb = 1.0
	// The stub mutator adds 1 per mutation, so fitness grows every
	// generation and must cross the target quickly.
	target := 3.0
	cfg.TargetFitness = &target

	exp, err := NewExperiment(cfg)
	if err != nil {
		t.Fatalf("new experiment: %v", err)
	}
	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Outcome != OutcomeTargetFitness {
		t.Fatalf("outcome = %q, want %q", result.Outcome, OutcomeTargetFitness)
	}
	if best := result.BestIndividuals[0].Fitness(); best < target-fitnessEps {
		t.Fatalf("best fitness = %v, want >= %v", best, target)
	}
}

// frozenMutator leaves the chromosome untouched, so the population's
// standard deviation collapses to zero once survivors converge.
type frozenMutator struct{}

func (frozenMutator) Kind() string                              { return "stub" }
func (frozenMutator) MutateInPlace(rng *rand.Rand, c Chromosome) {}

// frozenRecombiner always returns a copy of the first parent.
type frozenRecombiner struct{}

func (frozenRecombiner) Kind() string { return "stub" }
func (frozenRecombiner) Recombine(rng *rand.Rand, a, b Chromosome) Chromosome {
	return a.Clone()
}

// initCountingChromosome tallies Initialize calls through a shared counter,
// which makes population restarts observable per chromosome.
type initCountingChromosome struct {
	stubChromosome
	inits *int
}

func (c *initCountingChromosome) Initialize(rng *rand.Rand) {
	*c.inits++
	c.stubChromosome.Initialize(rng)
}

func (c *initCountingChromosome) Clone() Chromosome {
	clone := *c
	return &clone
}

func TestStagnationTriggersRestart(t *testing.T) {
	cfg := validConfig()
	cfg.PopulationSize = 4
	cfg.MaxGenerations = 40
	cfg.Mutator = frozenMutator{}
	cfg.Recombiner = frozenRecombiner{}
	cfg.CrossoverProb = 1.0
	cfg.MutationProb = 0
	cfg.RestartZeroSDTolerance = 10

	exp, err := NewExperiment(cfg)
	if err != nil {
		t.Fatalf("new experiment: %v", err)
	}
	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	// Cloning-only reproduction converges the population onto the best
	// individual within a couple of generations; with 40 generations and
	// tolerance 10 at least one restart must have fired.
	if result.Restarts == 0 {
		t.Fatal("expected at least one stagnation restart")
	}
}

func TestStagnationRestartFiresOnceAndResetsStreak(t *testing.T) {
	inits := 0
	cfg := validConfig()
	cfg.PopulationSize = 4
	cfg.MaxGenerations = 11
	cfg.Mutator = frozenMutator{}
	cfg.Recombiner = frozenRecombiner{}
	cfg.CrossoverProb = 1.0
	cfg.MutationProb = 0
	cfg.RestartZeroSDTolerance = 10
	cfg.NewChromosome = func() Chromosome { return &initCountingChromosome{inits: &inits} }

	exp, err := NewExperiment(cfg)
	if err != nil {
		t.Fatalf("new experiment: %v", err)
	}
	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	// Cloning-only reproduction flattens the population on the first
	// evolve, so the zero-sd streak reaches the tolerance exactly once
	// before the generation limit. The restart re-randomizes the
	// population, so the streak must start over instead of firing again.
	if result.Restarts != 1 {
		t.Fatalf("restarts = %d, want exactly 1", result.Restarts)
	}
	if want := 2 * cfg.PopulationSize; inits != want {
		t.Fatalf("chromosome initializations = %d, want %d (initial population plus one restart)", inits, want)
	}
}

func TestRunHonorsContextCancellation(t *testing.T) {
	cfg := validConfig()
	exp, err := NewExperiment(cfg)
	if err != nil {
		t.Fatalf("new experiment: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := exp.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestRunEmitsProgressLines(t *testing.T) {
	cfg := validConfig()
	var buf bytes.Buffer
	cfg.Progress = &buf

	exp, err := NewExperiment(cfg)
	if err != nil {
		t.Fatalf("new experiment: %v", err)
	}
	if _, err := exp.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	lines := strings.Count(buf.String(), "\n")
	if lines < cfg.MaxGenerations {
		t.Fatalf("got %d progress lines, want >= %d", lines, cfg.MaxGenerations)
	}
	if !strings.Contains(buf.String(), "generation 1:") {
		t.Fatalf("missing first generation line in %q", buf.String())
	}
}

func TestRunDrivesCollectors(t *testing.T) {
	cfg := validConfig()
	avg := &AvgFitnessCollector{}
	best := &BestFitnessCollector{}
	cfg.Collectors = []StatisticsCollector{avg, best}

	exp, err := NewExperiment(cfg)
	if err != nil {
		t.Fatalf("new experiment: %v", err)
	}
	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(avg.Data()) != result.Generations-1 {
		t.Fatalf("avg collector has %d points, want %d", len(avg.Data()), result.Generations-1)
	}
	for i, point := range best.Data() {
		if i > 0 && point.Value < best.Data()[i-1].Value {
			t.Fatalf("best-fitness series decreased at index %d: %v", i, best.Data())
		}
		if point.Generation <= 1 {
			t.Fatalf("collector point %d has generation %d, want > 1", i, point.Generation)
		}
	}
}

func TestEvaluationAccountingCountsComputationsNotRequests(t *testing.T) {
	cfg := validConfig()
	fitness := &stubFitness{}
	cfg.Computer = fitness
	cfg.Collectors = []StatisticsCollector{&AvgFitnessCollector{}, &SDFitnessCollector{}}

	exp, err := NewExperiment(cfg)
	if err != nil {
		t.Fatalf("new experiment: %v", err)
	}
	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	// Collectors and selectors request fitness repeatedly; the budget must
	// only count actual computations.
	if result.Evaluations != fitness.calls {
		t.Fatalf("evaluations = %d, computer ran %d times", result.Evaluations, fitness.calls)
	}
}
