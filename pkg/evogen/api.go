package evogen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"evogen/internal/engine"
	"evogen/internal/model"
	"evogen/internal/problem"
	"evogen/internal/report"
	"evogen/internal/storage"
)

const (
	defaultExportsDir = "exports"
	defaultDBPath     = "evogen.db"
)

type Options struct {
	StoreKind  string
	DBPath     string
	ExportsDir string
}

type Client struct {
	store      storage.Store
	exportsDir string
	ready      bool
}

type RunRequest struct {
	Problem     string
	Population  int
	Generations int
	// CrossoverProb and MutationProb are per-child probabilities; nil means
	// the default (0.9 and 0.4). An explicit zero disables the operator.
	CrossoverProb *float64
	MutationProb  *float64
	Solutions     int
	BreedSize     int
	ParentPairs   int
	// EvalBudget caps the cumulative number of fitness computations for the
	// run. Zero disables the cap.
	EvalBudget int
	// RestartTolerance restarts the population after this many consecutive
	// flat generations. Zero disables stagnation recovery.
	RestartTolerance int
	Seed             int64
	Mating           string
	Survivor         string
	Collectors       []string
	// Progress, when set, receives one advisory text line per generation.
	Progress io.Writer
}

type Solution struct {
	Rank       int
	Fitness    float64
	Generation int
	Chromosome string
}

type RunResult struct {
	RunID       string
	Problem     string
	Outcome     string
	Generations int
	Evaluations int
	Restarts    int
	BestFitness float64
	Solutions   []Solution
	Series      []model.Series
}

type RunItem struct {
	RunID       string
	Problem     string
	Seed        int64
	Generations int
	Evaluations int
	Outcome     string
	BestFitness float64
	StartedAt   time.Time
}

type ExportRequest struct {
	RunID  string
	OutDir string
}

type PlotRequest struct {
	RunID   string
	Series  []string
	OutPath string
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	exportsDir := opts.ExportsDir
	if exportsDir == "" {
		exportsDir = defaultExportsDir
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{
		store:      store,
		exportsDir: exportsDir,
	}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Run(ctx context.Context, req RunRequest) (RunResult, error) {
	if req.Problem == "" {
		req.Problem = "nqueens"
	}
	if req.Population <= 0 {
		req.Population = 100
	}
	if req.Generations <= 0 {
		req.Generations = 50
	}
	crossoverProb := 0.9
	if req.CrossoverProb != nil {
		crossoverProb = *req.CrossoverProb
	}
	mutationProb := 0.4
	if req.MutationProb != nil {
		mutationProb = *req.MutationProb
	}
	if req.Solutions <= 0 {
		req.Solutions = 5
	}
	if req.BreedSize <= 0 {
		req.BreedSize = 2
	}
	if req.ParentPairs <= 0 {
		req.ParentPairs = 30
	}
	if req.EvalBudget == 0 {
		req.EvalBudget = 10000
	}
	if req.EvalBudget < 0 {
		req.EvalBudget = 0
	}
	if req.Mating == "" {
		req.Mating = "best_fitness"
	}
	if req.Survivor == "" {
		req.Survivor = "elitist_merge"
	}
	if len(req.Collectors) == 0 {
		req.Collectors = []string{"avg_fitness", "sd_fitness", "best_fitness"}
	}

	prob, err := problem.Resolve(req.Problem)
	if err != nil {
		return RunResult{}, err
	}
	mating, err := engine.ResolveMatingSelector(req.Mating)
	if err != nil {
		return RunResult{}, err
	}
	survivor, err := engine.ResolveSurvivorSelector(req.Survivor)
	if err != nil {
		return RunResult{}, err
	}
	collectors := make([]engine.StatisticsCollector, 0, len(req.Collectors))
	for _, name := range req.Collectors {
		collector, err := engine.ResolveCollector(name)
		if err != nil {
			return RunResult{}, err
		}
		collectors = append(collectors, collector)
	}

	cfg := engine.Config{
		PopulationSize:         req.Population,
		MaxGenerations:         req.Generations,
		CrossoverProb:          crossoverProb,
		MutationProb:           mutationProb,
		NumSolutions:           req.Solutions,
		BreedSize:              req.BreedSize,
		NumParentPairs:         req.ParentPairs,
		MaxFitnessEvals:        req.EvalBudget,
		RestartZeroSDTolerance: req.RestartTolerance,
		Maximize:               prob.Maximize(),
		Seed:                   req.Seed,
		NewChromosome:          prob.NewChromosome,
		Computer:               prob.Fitness(),
		Mutator:                prob.Mutator(),
		Recombiner:             prob.Recombiner(),
		Mating:                 mating,
		Survivor:               survivor,
		Collectors:             collectors,
		Progress:               req.Progress,
	}
	if target, ok := prob.TargetFitness(); ok {
		cfg.TargetFitness = &target
	}

	experiment, err := engine.NewExperiment(cfg)
	if err != nil {
		return RunResult{}, err
	}

	if err := c.ensureStore(ctx); err != nil {
		return RunResult{}, err
	}

	startedAt := time.Now().UTC()
	result, err := experiment.Run(ctx)
	if err != nil {
		return RunResult{}, err
	}
	finishedAt := time.Now().UTC()

	runID := uuid.NewString()
	best := result.BestIndividuals
	run := model.RunRecord{
		VersionedRecord: currentVersion(),
		ID:              runID,
		Problem:         req.Problem,
		Mating:          req.Mating,
		Survivor:        req.Survivor,
		Seed:            req.Seed,
		Generations:     result.Generations,
		Evaluations:     result.Evaluations,
		Restarts:        result.Restarts,
		Outcome:         string(result.Outcome),
		StartedAt:       startedAt,
		FinishedAt:      finishedAt,
	}
	if len(best) > 0 {
		run.BestFitness = best[0].Fitness()
	}
	if err := c.store.SaveRun(ctx, run); err != nil {
		return RunResult{}, err
	}

	series := make([]model.Series, 0, len(result.Collectors))
	for _, collector := range result.Collectors {
		s := model.Series{
			VersionedRecord: currentVersion(),
			RunID:           runID,
			Name:            collector.Name(),
		}
		for _, point := range collector.Data() {
			s.Points = append(s.Points, model.SeriesPoint{Generation: point.Generation, Value: point.Value})
		}
		if err := c.store.SaveSeries(ctx, s); err != nil {
			return RunResult{}, err
		}
		series = append(series, s)
	}

	solutions := make([]Solution, 0, len(best))
	records := make([]model.SolutionRecord, 0, len(best))
	for i, individual := range best {
		solutions = append(solutions, Solution{
			Rank:       i + 1,
			Fitness:    individual.Fitness(),
			Generation: individual.Generation(),
			Chromosome: individual.String(),
		})
		records = append(records, model.SolutionRecord{
			VersionedRecord: currentVersion(),
			RunID:           runID,
			Rank:            i + 1,
			Fitness:         individual.Fitness(),
			Generation:      individual.Generation(),
			Chromosome:      individual.String(),
		})
	}
	if err := c.store.SaveSolutions(ctx, runID, records); err != nil {
		return RunResult{}, err
	}

	return RunResult{
		RunID:       runID,
		Problem:     req.Problem,
		Outcome:     string(result.Outcome),
		Generations: result.Generations,
		Evaluations: result.Evaluations,
		Restarts:    result.Restarts,
		BestFitness: run.BestFitness,
		Solutions:   solutions,
		Series:      series,
	}, nil
}

func (c *Client) Runs(ctx context.Context) ([]RunItem, error) {
	if err := c.ensureStore(ctx); err != nil {
		return nil, err
	}
	runs, err := c.store.ListRuns(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]RunItem, 0, len(runs))
	for _, run := range runs {
		out = append(out, RunItem{
			RunID:       run.ID,
			Problem:     run.Problem,
			Seed:        run.Seed,
			Generations: run.Generations,
			Evaluations: run.Evaluations,
			Outcome:     run.Outcome,
			BestFitness: run.BestFitness,
			StartedAt:   run.StartedAt,
		})
	}
	return out, nil
}

func (c *Client) Series(ctx context.Context, runID, name string) (model.Series, error) {
	if runID == "" {
		return model.Series{}, errors.New("run id is required")
	}
	if name == "" {
		return model.Series{}, errors.New("series name is required")
	}
	if err := c.ensureStore(ctx); err != nil {
		return model.Series{}, err
	}

	series, ok, err := c.store.GetSeries(ctx, runID, name)
	if err != nil {
		return model.Series{}, err
	}
	if !ok {
		return model.Series{}, fmt.Errorf("series %s not found for run id: %s", name, runID)
	}
	return series, nil
}

func (c *Client) Solutions(ctx context.Context, runID string) ([]model.SolutionRecord, error) {
	if runID == "" {
		return nil, errors.New("run id is required")
	}
	if err := c.ensureStore(ctx); err != nil {
		return nil, err
	}

	solutions, ok, err := c.store.GetSolutions(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("solutions not found for run id: %s", runID)
	}
	return solutions, nil
}

func (c *Client) Export(ctx context.Context, req ExportRequest) (string, error) {
	if req.RunID == "" {
		return "", errors.New("run id is required")
	}
	if req.OutDir == "" {
		req.OutDir = c.exportsDir
	}
	if err := c.ensureStore(ctx); err != nil {
		return "", err
	}

	run, ok, err := c.store.GetRun(ctx, req.RunID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("run not found: %s", req.RunID)
	}

	names, err := c.store.ListSeries(ctx, req.RunID)
	if err != nil {
		return "", err
	}
	series := make([]model.Series, 0, len(names))
	summaries := make([]report.Summary, 0, len(names))
	for _, name := range names {
		s, ok, err := c.store.GetSeries(ctx, req.RunID, name)
		if err != nil {
			return "", err
		}
		if !ok {
			continue
		}
		series = append(series, s)
		summary, err := report.Summarize(s)
		if err != nil {
			return "", err
		}
		summaries = append(summaries, summary)
	}

	solutions, _, err := c.store.GetSolutions(ctx, req.RunID)
	if err != nil {
		return "", err
	}

	runDir, err := report.WriteRunArtifacts(req.OutDir, report.RunArtifacts{
		Run:       run,
		Series:    series,
		Solutions: solutions,
		Summaries: summaries,
	})
	if err != nil {
		return "", err
	}
	return filepath.Clean(runDir), nil
}

func (c *Client) Plot(ctx context.Context, req PlotRequest) (string, error) {
	if req.RunID == "" {
		return "", errors.New("run id is required")
	}
	if err := c.ensureStore(ctx); err != nil {
		return "", err
	}

	run, ok, err := c.store.GetRun(ctx, req.RunID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("run not found: %s", req.RunID)
	}

	names := req.Series
	if len(names) == 0 {
		names, err = c.store.ListSeries(ctx, req.RunID)
		if err != nil {
			return "", err
		}
	}
	series := make([]model.Series, 0, len(names))
	for _, name := range names {
		s, ok, err := c.store.GetSeries(ctx, req.RunID, name)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("series %s not found for run id: %s", name, req.RunID)
		}
		series = append(series, s)
	}

	outPath := req.OutPath
	if outPath == "" {
		if err := os.MkdirAll(c.exportsDir, 0o755); err != nil {
			return "", err
		}
		outPath = filepath.Join(c.exportsDir, req.RunID+".png")
	}

	title := fmt.Sprintf("%s %s", run.Problem, run.ID)
	if err := report.RenderFitnessPlot(title, series, outPath); err != nil {
		return "", err
	}
	return outPath, nil
}

func (c *Client) ensureStore(ctx context.Context) error {
	if c.ready {
		return nil
	}
	if err := c.store.Init(ctx); err != nil {
		return err
	}
	c.ready = true
	return nil
}

func currentVersion() model.VersionedRecord {
	return model.VersionedRecord{
		SchemaVersion: storage.CurrentSchemaVersion,
		CodecVersion:  storage.CurrentCodecVersion,
	}
}
