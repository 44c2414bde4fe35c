package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"evogen/internal/engine"
	"evogen/internal/problem"
	"evogen/internal/storage"
	evoapi "evogen/pkg/evogen"
)

const exportsDir = "exports"

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "run":
		return runRun(ctx, args[1:])
	case "problems":
		return runProblems(ctx, args[1:])
	case "selectors":
		return runSelectors(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "series":
		return runSeries(ctx, args[1:])
	case "solutions":
		return runSolutions(ctx, args[1:])
	case "export":
		return runExport(ctx, args[1:])
	case "plot":
		return runPlot(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional run config JSON path")
	problemName := fs.String("problem", "nqueens", "problem name")
	population := fs.Int("pop", 100, "population size")
	generations := fs.Int("gens", 50, "generation count")
	crossoverProb := fs.Float64("crossover-prob", 0.9, "per-child recombination probability")
	mutationProb := fs.Float64("mutation-prob", 0.4, "per-child mutation probability")
	solutions := fs.Int("solutions", 5, "best-of-run archive size")
	breedSize := fs.Int("breed-size", 2, "offspring produced per generation")
	parentPairs := fs.Int("pairs", 30, "parent pairs selected per generation")
	evalBudget := fs.Int("evals", 10000, "fitness evaluation budget (<0 disables)")
	restartTolerance := fs.Int("restart-tolerance", 0, "flat generations before a restart (0 disables)")
	seed := fs.Int64("seed", 1, "rng seed")
	matingName := fs.String("mating", "best_fitness", "mating selector: "+strings.Join(engine.ListMatingSelectors(), "|"))
	survivorName := fs.String("survivor", "elitist_merge", "survivor selector: "+strings.Join(engine.ListSurvivorSelectors(), "|"))
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "evogen.db", "sqlite database path")
	quiet := fs.Bool("quiet", false, "suppress per-generation progress lines")
	jsonOut := fs.Bool("json", false, "emit run result as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	setFlags := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})

	req := evoapi.RunRequest{
		Problem:          *problemName,
		Population:       *population,
		Generations:      *generations,
		CrossoverProb:    crossoverProb,
		MutationProb:     mutationProb,
		Solutions:        *solutions,
		BreedSize:        *breedSize,
		ParentPairs:      *parentPairs,
		EvalBudget:       *evalBudget,
		RestartTolerance: *restartTolerance,
		Seed:             *seed,
		Mating:           *matingName,
		Survivor:         *survivorName,
	}
	if *configPath != "" {
		loaded, err := loadRunRequestFromConfig(*configPath)
		if err != nil {
			return err
		}
		overrideFromFlags(&loaded, setFlags, map[string]any{
			"problem":           *problemName,
			"pop":               *population,
			"gens":              *generations,
			"crossover-prob":    crossoverProb,
			"mutation-prob":     mutationProb,
			"solutions":         *solutions,
			"breed-size":        *breedSize,
			"pairs":             *parentPairs,
			"evals":             *evalBudget,
			"restart-tolerance": *restartTolerance,
			"seed":              *seed,
			"mating":            *matingName,
			"survivor":          *survivorName,
		})
		req = loaded
	}
	if !*quiet {
		req.Progress = os.Stderr
	}

	client, err := evoapi.New(evoapi.Options{
		StoreKind:  *storeKind,
		DBPath:     *dbPath,
		ExportsDir: exportsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	result, err := client.Run(ctx, req)
	if err != nil {
		return err
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Printf("run_id=%s problem=%s outcome=%s generations=%d evaluations=%d restarts=%d best=%.6f\n",
		result.RunID, result.Problem, result.Outcome, result.Generations, result.Evaluations, result.Restarts, result.BestFitness)
	for _, solution := range result.Solutions {
		fmt.Printf("rank=%d fitness=%.6f generation=%d chromosome=%s\n",
			solution.Rank, solution.Fitness, solution.Generation, solution.Chromosome)
	}
	return nil
}

func runProblems(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("problems", flag.ContinueOnError)
	jsonOut := fs.Bool("json", false, "emit problem list as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	names := problem.List()
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(names)
	}
	for _, name := range names {
		p, err := problem.Resolve(name)
		if err != nil {
			return err
		}
		direction := "minimize"
		if p.Maximize() {
			direction = "maximize"
		}
		if target, ok := p.TargetFitness(); ok {
			fmt.Printf("%s\t%s\ttarget=%g\n", name, direction, target)
			continue
		}
		fmt.Printf("%s\t%s\n", name, direction)
	}
	return nil
}

func runSelectors(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("selectors", flag.ContinueOnError)
	jsonOut := fs.Bool("json", false, "emit selector lists as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string][]string{
			"mating":     engine.ListMatingSelectors(),
			"survivor":   engine.ListSurvivorSelectors(),
			"collectors": engine.ListCollectors(),
		})
	}

	fmt.Printf("mating: %s\n", strings.Join(engine.ListMatingSelectors(), " "))
	fmt.Printf("survivor: %s\n", strings.Join(engine.ListSurvivorSelectors(), " "))
	fmt.Printf("collectors: %s\n", strings.Join(engine.ListCollectors(), " "))
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "max runs to print (<=0 for all)")
	jsonOut := fs.Bool("json", false, "emit runs as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "evogen.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := evoapi.New(evoapi.Options{
		StoreKind:  *storeKind,
		DBPath:     *dbPath,
		ExportsDir: exportsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	runs, err := client.Runs(ctx)
	if err != nil {
		return err
	}
	if *limit > 0 && len(runs) > *limit {
		runs = runs[len(runs)-*limit:]
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	for _, run := range runs {
		fmt.Printf("run_id=%s problem=%s seed=%d generations=%d evaluations=%d outcome=%s best=%.6f\n",
			run.RunID, run.Problem, run.Seed, run.Generations, run.Evaluations, run.Outcome, run.BestFitness)
	}
	return nil
}

func runSeries(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("series", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	name := fs.String("name", "avg_fitness", "series name: "+strings.Join(engine.ListCollectors(), "|"))
	limit := fs.Int("limit", 0, "max points to print (<=0 for all)")
	jsonOut := fs.Bool("json", false, "emit series as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "evogen.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return errors.New("series requires --run-id")
	}

	client, err := evoapi.New(evoapi.Options{
		StoreKind:  *storeKind,
		DBPath:     *dbPath,
		ExportsDir: exportsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	series, err := client.Series(ctx, *runID, *name)
	if err != nil {
		return err
	}
	points := series.Points
	if *limit > 0 && len(points) > *limit {
		points = points[:*limit]
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(points)
	}

	for _, point := range points {
		fmt.Printf("generation=%d %s=%.6f\n", point.Generation, series.Name, point.Value)
	}
	return nil
}

func runSolutions(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("solutions", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	limit := fs.Int("limit", 0, "max solutions to print (<=0 for all)")
	jsonOut := fs.Bool("json", false, "emit solutions as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "evogen.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return errors.New("solutions requires --run-id")
	}

	client, err := evoapi.New(evoapi.Options{
		StoreKind:  *storeKind,
		DBPath:     *dbPath,
		ExportsDir: exportsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	solutions, err := client.Solutions(ctx, *runID)
	if err != nil {
		return err
	}
	if *limit > 0 && len(solutions) > *limit {
		solutions = solutions[:*limit]
	}
	if len(solutions) == 0 {
		fmt.Println("no solutions")
		return nil
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(solutions)
	}

	for _, solution := range solutions {
		fmt.Printf("rank=%d fitness=%.6f generation=%d chromosome=%s\n",
			solution.Rank, solution.Fitness, solution.Generation, solution.Chromosome)
	}
	return nil
}

func runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	outDir := fs.String("out", exportsDir, "export output directory")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "evogen.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return errors.New("export requires --run-id")
	}

	client, err := evoapi.New(evoapi.Options{
		StoreKind:  *storeKind,
		DBPath:     *dbPath,
		ExportsDir: *outDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	dir, err := client.Export(ctx, evoapi.ExportRequest{RunID: *runID, OutDir: *outDir})
	if err != nil {
		return err
	}
	fmt.Printf("exported run_id=%s dir=%s\n", *runID, dir)
	return nil
}

func runPlot(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("plot", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	seriesNames := fs.String("series", "", "comma-separated series names (default all)")
	outPath := fs.String("out", "", "plot output path (default exports/<run-id>.png)")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "evogen.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return errors.New("plot requires --run-id")
	}

	var names []string
	if *seriesNames != "" {
		for _, name := range strings.Split(*seriesNames, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				names = append(names, name)
			}
		}
	}

	client, err := evoapi.New(evoapi.Options{
		StoreKind:  *storeKind,
		DBPath:     *dbPath,
		ExportsDir: exportsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	path, err := client.Plot(ctx, evoapi.PlotRequest{
		RunID:   *runID,
		Series:  names,
		OutPath: *outPath,
	})
	if err != nil {
		return err
	}
	fmt.Printf("plotted run_id=%s out=%s\n", *runID, path)
	return nil
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: evogenctl <run|problems|selectors|runs|series|solutions|export|plot> [flags]", msg)
}
