// Package problem hosts the benchmark problems the engine is exercised
// against. Each problem bundles a chromosome representation with the
// fitness, mutation and recombination strategies that understand it, plus
// the run defaults (optimization direction, optional target fitness).
package problem

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"evogen/internal/engine"
)

var (
	ErrProblemExists   = errors.New("problem already registered")
	ErrProblemNotFound = errors.New("problem not found")
)

// Problem supplies everything the engine needs to evolve one benchmark.
type Problem interface {
	Name() string
	Maximize() bool
	// TargetFitness returns the fitness of a perfect solution, when one is
	// known, so runs can stop early.
	TargetFitness() (float64, bool)
	NewChromosome() engine.Chromosome
	Fitness() engine.FitnessComputer
	Mutator() engine.Mutator
	Recombiner() engine.Recombiner
}

var problemRegistry = struct {
	mu sync.RWMutex
	m  map[string]func() Problem
}{
	m: make(map[string]func() Problem),
}

// Register registers a problem factory under name.
func Register(name string, factory func() Problem) error {
	if name == "" {
		return errors.New("problem name is required")
	}
	if factory == nil {
		return errors.New("problem factory is required")
	}

	problemRegistry.mu.Lock()
	defer problemRegistry.mu.Unlock()

	if _, exists := problemRegistry.m[name]; exists {
		return fmt.Errorf("%w: %s", ErrProblemExists, name)
	}
	problemRegistry.m[name] = factory
	return nil
}

// Resolve builds a fresh problem instance for name.
func Resolve(name string) (Problem, error) {
	problemRegistry.mu.RLock()
	factory, ok := problemRegistry.m[name]
	problemRegistry.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProblemNotFound, name)
	}
	return factory(), nil
}

// List returns the registered problem names, sorted.
func List() []string {
	problemRegistry.mu.RLock()
	defer problemRegistry.mu.RUnlock()

	names := make([]string, 0, len(problemRegistry.m))
	for name := range problemRegistry.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func mustRegister(name string, factory func() Problem) {
	if err := Register(name, factory); err != nil {
		panic(err)
	}
}
