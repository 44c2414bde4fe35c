package evogen

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestClientRunRunsAndExport(t *testing.T) {
	exportsDir := filepath.Join(t.TempDir(), "exports")

	client, err := New(Options{
		StoreKind:  "memory",
		ExportsDir: exportsDir,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})

	result, err := client.Run(context.Background(), RunRequest{
		Problem:     "nqueens",
		Population:  20,
		Generations: 5,
		Solutions:   3,
		ParentPairs: 6,
		Seed:        42,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.RunID == "" {
		t.Fatal("expected run id")
	}
	if result.Outcome == "" {
		t.Fatalf("expected outcome, got %+v", result)
	}
	if result.Generations < 2 {
		t.Fatalf("unexpected generation count: %d", result.Generations)
	}
	if result.Evaluations <= 0 {
		t.Fatalf("unexpected evaluation count: %d", result.Evaluations)
	}
	if len(result.Solutions) == 0 || len(result.Solutions) > 3 {
		t.Fatalf("unexpected solutions: %+v", result.Solutions)
	}
	if result.Solutions[0].Rank != 1 {
		t.Fatalf("best solution rank = %d, want 1", result.Solutions[0].Rank)
	}

	runs, err := client.Runs(context.Background())
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if len(runs) != 1 || runs[0].RunID != result.RunID {
		t.Fatalf("expected run %s in runs list: %+v", result.RunID, runs)
	}

	series, err := client.Series(context.Background(), result.RunID, "avg_fitness")
	if err != nil {
		t.Fatalf("series: %v", err)
	}
	if len(series.Points) == 0 {
		t.Fatal("expected avg_fitness points")
	}

	solutions, err := client.Solutions(context.Background(), result.RunID)
	if err != nil {
		t.Fatalf("solutions: %v", err)
	}
	if len(solutions) != len(result.Solutions) {
		t.Fatalf("persisted %d solutions, run reported %d", len(solutions), len(result.Solutions))
	}

	exportDir, err := client.Export(context.Background(), ExportRequest{RunID: result.RunID})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(exportDir, exportsDir) {
		t.Fatalf("export dir %s not under %s", exportDir, exportsDir)
	}
	for _, file := range []string{"run.json", "solutions.json", "summary.json", "avg_fitness.csv"} {
		if _, err := os.Stat(filepath.Join(exportDir, file)); err != nil {
			t.Fatalf("expected export file %s: %v", file, err)
		}
	}
}

func TestClientRunDefaults(t *testing.T) {
	client, err := New(Options{StoreKind: "memory"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})

	result, err := client.Run(context.Background(), RunRequest{
		Population:  10,
		Generations: 2,
		EvalBudget:  -1,
		Seed:        7,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Problem != "nqueens" {
		t.Fatalf("default problem = %s, want nqueens", result.Problem)
	}
	if len(result.Series) != 3 {
		t.Fatalf("default collectors = %d series, want 3", len(result.Series))
	}
}

func TestClientRunExplicitZeroProbabilities(t *testing.T) {
	client, err := New(Options{StoreKind: "memory"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})

	zero := 0.0
	result, err := client.Run(context.Background(), RunRequest{
		Problem:       "rosenbrock",
		Population:    10,
		Generations:   3,
		ParentPairs:   4,
		CrossoverProb: &zero,
		MutationProb:  &zero,
		EvalBudget:    -1,
		Seed:          3,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	// With recombination and mutation both disabled every individual is a
	// clone of an initial one carrying its memoized fitness, so the run
	// computes exactly one fitness per initial individual. A defaulted
	// probability would mutate or recombine and force recomputations.
	if result.Evaluations != 10 {
		t.Fatalf("evaluations = %d, want one per initial individual (10)", result.Evaluations)
	}
}

func TestClientRunUnknownProblem(t *testing.T) {
	client, err := New(Options{StoreKind: "memory"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})

	if _, err := client.Run(context.Background(), RunRequest{Problem: "no-such-problem"}); err == nil {
		t.Fatal("expected unknown problem error")
	}
}

func TestClientRunUnknownSelector(t *testing.T) {
	client, err := New(Options{StoreKind: "memory"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})

	if _, err := client.Run(context.Background(), RunRequest{Mating: "no-such-selector"}); err == nil {
		t.Fatal("expected unknown mating selector error")
	}
}

func TestClientPlot(t *testing.T) {
	exportsDir := filepath.Join(t.TempDir(), "exports")
	client, err := New(Options{StoreKind: "memory", ExportsDir: exportsDir})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})

	result, err := client.Run(context.Background(), RunRequest{
		Problem:     "ackley",
		Population:  10,
		Generations: 3,
		ParentPairs: 4,
		Seed:        1,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	outPath, err := client.Plot(context.Background(), PlotRequest{RunID: result.RunID})
	if err != nil {
		t.Fatalf("plot: %v", err)
	}
	info, err := os.Stat(outPath)
	if err != nil {
		t.Fatalf("stat plot: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("plot output is empty")
	}
}

func TestClientSeriesMissingRun(t *testing.T) {
	client, err := New(Options{StoreKind: "memory"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})

	if _, err := client.Series(context.Background(), "missing", "avg_fitness"); err == nil {
		t.Fatal("expected error for missing run")
	}
}
