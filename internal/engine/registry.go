package engine

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrMatingSelectorExists     = errors.New("mating selector already registered")
	ErrMatingSelectorNotFound   = errors.New("mating selector not found")
	ErrSurvivorSelectorExists   = errors.New("survivor selector already registered")
	ErrSurvivorSelectorNotFound = errors.New("survivor selector not found")
	ErrCollectorExists          = errors.New("collector already registered")
	ErrCollectorNotFound        = errors.New("collector not found")
)

// The registries map configuration names onto strategy factories. They are
// resolved at configuration-load time, outside the evolutionary loop.

var matingRegistry = struct {
	mu sync.RWMutex
	m  map[string]func() MatingSelector
}{
	m: make(map[string]func() MatingSelector),
}

var survivorRegistry = struct {
	mu sync.RWMutex
	m  map[string]func() SurvivorSelector
}{
	m: make(map[string]func() SurvivorSelector),
}

var collectorRegistry = struct {
	mu sync.RWMutex
	m  map[string]func() StatisticsCollector
}{
	m: make(map[string]func() StatisticsCollector),
}

// RegisterMatingSelector registers a mating selector factory under name.
func RegisterMatingSelector(name string, factory func() MatingSelector) error {
	if name == "" {
		return errors.New("mating selector name is required")
	}
	if factory == nil {
		return errors.New("mating selector factory is required")
	}

	matingRegistry.mu.Lock()
	defer matingRegistry.mu.Unlock()

	if _, exists := matingRegistry.m[name]; exists {
		return fmt.Errorf("%w: %s", ErrMatingSelectorExists, name)
	}
	matingRegistry.m[name] = factory
	return nil
}

// ResolveMatingSelector builds a fresh selector for name.
func ResolveMatingSelector(name string) (MatingSelector, error) {
	matingRegistry.mu.RLock()
	factory, ok := matingRegistry.m[name]
	matingRegistry.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMatingSelectorNotFound, name)
	}
	return factory(), nil
}

// ListMatingSelectors returns the registered names, sorted.
func ListMatingSelectors() []string {
	matingRegistry.mu.RLock()
	defer matingRegistry.mu.RUnlock()

	names := make([]string, 0, len(matingRegistry.m))
	for name := range matingRegistry.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterSurvivorSelector registers a survivor selector factory under name.
func RegisterSurvivorSelector(name string, factory func() SurvivorSelector) error {
	if name == "" {
		return errors.New("survivor selector name is required")
	}
	if factory == nil {
		return errors.New("survivor selector factory is required")
	}

	survivorRegistry.mu.Lock()
	defer survivorRegistry.mu.Unlock()

	if _, exists := survivorRegistry.m[name]; exists {
		return fmt.Errorf("%w: %s", ErrSurvivorSelectorExists, name)
	}
	survivorRegistry.m[name] = factory
	return nil
}

// ResolveSurvivorSelector builds a fresh selector for name.
func ResolveSurvivorSelector(name string) (SurvivorSelector, error) {
	survivorRegistry.mu.RLock()
	factory, ok := survivorRegistry.m[name]
	survivorRegistry.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSurvivorSelectorNotFound, name)
	}
	return factory(), nil
}

// ListSurvivorSelectors returns the registered names, sorted.
func ListSurvivorSelectors() []string {
	survivorRegistry.mu.RLock()
	defer survivorRegistry.mu.RUnlock()

	names := make([]string, 0, len(survivorRegistry.m))
	for name := range survivorRegistry.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterCollector registers a statistics collector factory under name.
func RegisterCollector(name string, factory func() StatisticsCollector) error {
	if name == "" {
		return errors.New("collector name is required")
	}
	if factory == nil {
		return errors.New("collector factory is required")
	}

	collectorRegistry.mu.Lock()
	defer collectorRegistry.mu.Unlock()

	if _, exists := collectorRegistry.m[name]; exists {
		return fmt.Errorf("%w: %s", ErrCollectorExists, name)
	}
	collectorRegistry.m[name] = factory
	return nil
}

// ResolveCollector builds a fresh collector for name.
func ResolveCollector(name string) (StatisticsCollector, error) {
	collectorRegistry.mu.RLock()
	factory, ok := collectorRegistry.m[name]
	collectorRegistry.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCollectorNotFound, name)
	}
	return factory(), nil
}

// ListCollectors returns the registered names, sorted.
func ListCollectors() []string {
	collectorRegistry.mu.RLock()
	defer collectorRegistry.mu.RUnlock()

	names := make([]string, 0, len(collectorRegistry.m))
	for name := range collectorRegistry.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(RegisterMatingSelector("best_fitness", func() MatingSelector { return BestFitnessMating{} }))
	must(RegisterMatingSelector("random", func() MatingSelector { return RandomMating{} }))
	must(RegisterMatingSelector("roulette", func() MatingSelector { return RouletteMating{} }))
	must(RegisterMatingSelector("tournament", func() MatingSelector { return TournamentMating{} }))

	must(RegisterSurvivorSelector("elitist_merge", func() SurvivorSelector { return ElitistMergeSurvivor{} }))
	must(RegisterSurvivorSelector("roulette", func() SurvivorSelector { return RouletteSurvivor{} }))
	must(RegisterSurvivorSelector("generational", func() SurvivorSelector { return GenerationalSurvivor{} }))

	must(RegisterCollector("avg_fitness", func() StatisticsCollector { return &AvgFitnessCollector{} }))
	must(RegisterCollector("sd_fitness", func() StatisticsCollector { return &SDFitnessCollector{} }))
	must(RegisterCollector("best_fitness", func() StatisticsCollector { return &BestFitnessCollector{} }))
}
