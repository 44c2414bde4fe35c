package storage

import (
	"context"

	"evogen/internal/model"
)

// Store defines persistence operations for experiment runs and their
// per-generation statistics and archived solutions.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run model.RunRecord) error
	GetRun(ctx context.Context, id string) (model.RunRecord, bool, error)
	ListRuns(ctx context.Context) ([]model.RunRecord, error)
	SaveSeries(ctx context.Context, series model.Series) error
	GetSeries(ctx context.Context, runID, name string) (model.Series, bool, error)
	ListSeries(ctx context.Context, runID string) ([]string, error)
	SaveSolutions(ctx context.Context, runID string, solutions []model.SolutionRecord) error
	GetSolutions(ctx context.Context, runID string) ([]model.SolutionRecord, bool, error)
}
