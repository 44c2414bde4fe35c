package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
)

// ErrIncompatibleStrategy is returned when a strategy was built for a
// different chromosome representation than the one the experiment uses.
var ErrIncompatibleStrategy = errors.New("strategy incompatible with chromosome kind")

// Outcome names the condition that stopped a run.
type Outcome string

const (
	// OutcomeEvalBudget means the fitness-computation budget was exhausted.
	OutcomeEvalBudget Outcome = "eval_budget"
	// OutcomeTargetFitness means the best archived fitness reached the target.
	OutcomeTargetFitness Outcome = "target_fitness"
	// OutcomeMaxGenerations means the generation limit was reached.
	OutcomeMaxGenerations Outcome = "max_generations"
)

// Config is the immutable configuration of one experiment run.
type Config struct {
	PopulationSize int
	MaxGenerations int
	CrossoverProb  float64
	MutationProb   float64
	// TargetFitness stops the run early when the best archived fitness
	// reaches it (direction-aware, within 1e-9). Nil disables the check.
	TargetFitness *float64
	NumSolutions  int
	BreedSize     int
	NumParentPairs int
	// MaxFitnessEvals bounds the cumulative number of fitness computations
	// across the whole run, including discarded individuals. Zero disables
	// the budget.
	MaxFitnessEvals int
	// RestartZeroSDTolerance restarts the population after this many
	// consecutive generations with zero fitness standard deviation. Zero
	// disables stagnation recovery.
	RestartZeroSDTolerance int
	// Maximize selects the comparison direction for every selector, the
	// sampler and the archive.
	Maximize bool
	Seed     int64

	// NewChromosome builds one fresh, uninitialized chromosome.
	NewChromosome func() Chromosome
	Computer      FitnessComputer
	Mutator       Mutator
	Recombiner    Recombiner

	// Mating defaults to BestFitnessMating, Survivor to ElitistMergeSurvivor.
	Mating   MatingSelector
	Survivor SurvivorSelector

	Collectors []StatisticsCollector

	// Progress, when set, receives one advisory text line per generation.
	Progress io.Writer
}

// Result is what a finished run reports back.
type Result struct {
	BestIndividuals []*Individual
	Collectors      []StatisticsCollector
	Generations     int
	Evaluations     int
	Restarts        int
	Outcome         Outcome
}

// Experiment wires a problem's strategies into the generational loop and
// runs it to termination.
type Experiment struct {
	cfg   Config
	rng   *rand.Rand
	evals *EvalCounter
}

// NewExperiment validates the configuration, including that every supplied
// strategy declares the same chromosome kind the experiment evolves, and
// fails fast otherwise. No run can start from an invalid configuration.
func NewExperiment(cfg Config) (*Experiment, error) {
	if cfg.PopulationSize <= 0 {
		return nil, fmt.Errorf("population size must be > 0")
	}
	if cfg.MaxGenerations <= 0 {
		return nil, fmt.Errorf("max generations must be > 0")
	}
	if cfg.CrossoverProb < 0 || cfg.CrossoverProb > 1 {
		return nil, fmt.Errorf("crossover probability must be in [0, 1], got %v", cfg.CrossoverProb)
	}
	if cfg.MutationProb < 0 || cfg.MutationProb > 1 {
		return nil, fmt.Errorf("mutation probability must be in [0, 1], got %v", cfg.MutationProb)
	}
	if cfg.NumSolutions <= 0 {
		return nil, fmt.Errorf("number of solutions must be > 0")
	}
	if cfg.BreedSize <= 0 {
		return nil, fmt.Errorf("breed size must be > 0")
	}
	if cfg.NumParentPairs <= 0 {
		return nil, fmt.Errorf("number of parent pairs must be > 0")
	}
	if cfg.MaxFitnessEvals < 0 {
		return nil, fmt.Errorf("fitness evaluation budget must be >= 0")
	}
	if cfg.RestartZeroSDTolerance < 0 {
		return nil, fmt.Errorf("restart tolerance must be >= 0")
	}
	if cfg.NewChromosome == nil {
		return nil, fmt.Errorf("chromosome factory is required")
	}
	if cfg.Computer == nil {
		return nil, fmt.Errorf("fitness computer is required")
	}
	if cfg.Mutator == nil {
		return nil, fmt.Errorf("mutator is required")
	}
	if cfg.Recombiner == nil {
		return nil, fmt.Errorf("recombiner is required")
	}

	kind := cfg.NewChromosome().Kind()
	if got := cfg.Computer.Kind(); got != kind {
		return nil, fmt.Errorf("%w: fitness computer handles %q, chromosome is %q", ErrIncompatibleStrategy, got, kind)
	}
	if got := cfg.Mutator.Kind(); got != kind {
		return nil, fmt.Errorf("%w: mutator handles %q, chromosome is %q", ErrIncompatibleStrategy, got, kind)
	}
	if got := cfg.Recombiner.Kind(); got != kind {
		return nil, fmt.Errorf("%w: recombiner handles %q, chromosome is %q", ErrIncompatibleStrategy, got, kind)
	}

	if cfg.Mating == nil {
		cfg.Mating = BestFitnessMating{}
	}
	if cfg.Survivor == nil {
		cfg.Survivor = ElitistMergeSurvivor{}
	}

	return &Experiment{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(cfg.Seed)),
		evals: &EvalCounter{},
	}, nil
}

// Run drives the generational loop until a termination condition fires.
// Conditions are checked once per generation, in priority order: evaluation
// budget, target fitness, stagnation restart (a recovery, not a stop),
// generation limit. Cancellation is cooperative at generation boundaries.
func (e *Experiment) Run(ctx context.Context) (Result, error) {
	toolkit := &Toolkit{
		Computer:   e.cfg.Computer,
		Mutator:    e.cfg.Mutator,
		Recombiner: e.cfg.Recombiner,
		Evals:      e.evals,
	}

	individuals := make([]*Individual, 0, e.cfg.PopulationSize)
	for i := 0; i < e.cfg.PopulationSize; i++ {
		individuals = append(individuals, NewIndividual(toolkit, e.cfg.NewChromosome(), 1).Initialize(e.rng))
	}
	pop := NewPopulation(PopulationConfig{
		Size:          e.cfg.PopulationSize,
		CrossoverProb: e.cfg.CrossoverProb,
		MutationProb:  e.cfg.MutationProb,
		BreedSize:     e.cfg.BreedSize,
		NumPairs:      e.cfg.NumParentPairs,
		Maximize:      e.cfg.Maximize,
		Mating:        e.cfg.Mating,
		Survivor:      e.cfg.Survivor,
	}, individuals)

	archive, err := NewSolutionArchive(e.cfg.NumSolutions, e.cfg.Maximize)
	if err != nil {
		return Result{}, err
	}

	zeroSDStreak := 0
	restarts := 0
	var outcome Outcome

	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		e.progress(pop)

		pop.Evolve(e.rng)
		archive.Update(pop.Individuals())
		for _, collector := range e.cfg.Collectors {
			collector.Collect(pop, archive)
		}

		if e.cfg.MaxFitnessEvals > 0 && e.evals.Total() >= e.cfg.MaxFitnessEvals {
			outcome = OutcomeEvalBudget
			break
		}
		if e.cfg.TargetFitness != nil && withinTarget(archive.Best().Fitness(), *e.cfg.TargetFitness, e.cfg.Maximize) {
			outcome = OutcomeTargetFitness
			break
		}
		if e.cfg.RestartZeroSDTolerance > 0 {
			if pop.SDFitness() < fitnessEps {
				zeroSDStreak++
			} else {
				zeroSDStreak = 0
			}
			if zeroSDStreak >= e.cfg.RestartZeroSDTolerance {
				pop.Restart(e.rng)
				restarts++
				zeroSDStreak = 0
			}
		}
		if pop.Generation() > e.cfg.MaxGenerations {
			outcome = OutcomeMaxGenerations
			break
		}
	}

	return Result{
		BestIndividuals: archive.BestIndividuals(),
		Collectors:      e.cfg.Collectors,
		Generations:     pop.Generation(),
		Evaluations:     e.evals.Total(),
		Restarts:        restarts,
		Outcome:         outcome,
	}, nil
}

// Evaluations exposes the cumulative fitness-computation count, lifetime
// semantics: evaluations of individuals that have since been discarded or
// archived still count.
func (e *Experiment) Evaluations() int { return e.evals.Total() }

func (e *Experiment) progress(pop *Population) {
	if e.cfg.Progress == nil {
		return
	}
	fmt.Fprintf(e.cfg.Progress, "generation %d: evals=%d avg=%.3f sd=%.3f\n",
		pop.Generation(), e.evals.Total(), pop.AvgFitness(), pop.SDFitness())
}
