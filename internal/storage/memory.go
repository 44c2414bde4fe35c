package storage

import (
	"context"
	"sort"
	"sync"

	"evogen/internal/model"
)

type MemoryStore struct {
	mu        sync.RWMutex
	runs      map[string]model.RunRecord
	series    map[string]map[string]model.Series
	solutions map[string][]model.SolutionRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs = make(map[string]model.RunRecord)
	s.series = make(map[string]map[string]model.Series)
	s.solutions = make(map[string][]model.SolutionRecord)
	return nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run model.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[run.ID] = run
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (model.RunRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	return run, ok, nil
}

func (s *MemoryStore) ListRuns(_ context.Context) ([]model.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]model.RunRecord, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].StartedAt.Equal(runs[j].StartedAt) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].StartedAt.Before(runs[j].StartedAt)
	})
	return runs, nil
}

func (s *MemoryStore) SaveSeries(_ context.Context, series model.Series) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byName, ok := s.series[series.RunID]
	if !ok {
		byName = make(map[string]model.Series)
		s.series[series.RunID] = byName
	}
	copied := series
	copied.Points = append([]model.SeriesPoint(nil), series.Points...)
	byName[series.Name] = copied
	return nil
}

func (s *MemoryStore) GetSeries(_ context.Context, runID, name string) (model.Series, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	series, ok := s.series[runID][name]
	if !ok {
		return model.Series{}, false, nil
	}
	copied := series
	copied.Points = append([]model.SeriesPoint(nil), series.Points...)
	return copied, true, nil
}

func (s *MemoryStore) ListSeries(_ context.Context, runID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.series[runID]))
	for name := range s.series[runID] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *MemoryStore) SaveSolutions(_ context.Context, runID string, solutions []model.SolutionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]model.SolutionRecord, len(solutions))
	copy(copied, solutions)
	s.solutions[runID] = copied
	return nil
}

func (s *MemoryStore) GetSolutions(_ context.Context, runID string) ([]model.SolutionRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	solutions, ok := s.solutions[runID]
	if !ok {
		return nil, false, nil
	}
	copied := make([]model.SolutionRecord, len(solutions))
	copy(copied, solutions)
	return copied, true, nil
}
