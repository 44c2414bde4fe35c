package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"evogen/internal/model"
)

func TestRenderFitnessPlot(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "fitness.png")

	series := []model.Series{
		{
			Name: "avg_fitness",
			Points: []model.SeriesPoint{
				{Generation: 1, Value: 0.2},
				{Generation: 2, Value: 0.4},
				{Generation: 3, Value: 0.5},
			},
		},
		{
			Name: "best_fitness",
			Points: []model.SeriesPoint{
				{Generation: 1, Value: 0.5},
				{Generation: 2, Value: 0.7},
				{Generation: 3, Value: 0.9},
			},
		},
	}

	if err := RenderFitnessPlot("nqueens run-1", series, outPath); err != nil {
		t.Fatalf("render plot: %v", err)
	}

	info, err := os.Stat(outPath)
	if err != nil {
		t.Fatalf("stat plot output: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("plot output is empty")
	}
}

func TestRenderFitnessPlotStylesSeriesByIndex(t *testing.T) {
	dir := t.TempDir()
	a := model.Series{
		Name: "fitness",
		Points: []model.SeriesPoint{
			{Generation: 1, Value: 0.2},
			{Generation: 2, Value: 0.4},
		},
	}
	b := model.Series{
		Name: "fitness",
		Points: []model.SeriesPoint{
			{Generation: 1, Value: 0.5},
			{Generation: 2, Value: 0.3},
		},
	}

	first := filepath.Join(dir, "first.png")
	if err := RenderFitnessPlot("run", []model.Series{a, b}, first); err != nil {
		t.Fatalf("render plot: %v", err)
	}
	second := filepath.Join(dir, "second.png")
	if err := RenderFitnessPlot("run", []model.Series{b, a}, second); err != nil {
		t.Fatalf("render plot: %v", err)
	}

	firstData, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("read plot: %v", err)
	}
	secondData, err := os.ReadFile(second)
	if err != nil {
		t.Fatalf("read plot: %v", err)
	}
	// Line style follows the series index, so swapping two same-named
	// series swaps the colors of their curves. Identically styled lines
	// would render these two plots byte for byte the same.
	if bytes.Equal(firstData, secondData) {
		t.Fatal("expected per-series line styles to distinguish the renders")
	}
}

func TestRenderFitnessPlotNoSeries(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "fitness.png")
	if err := RenderFitnessPlot("empty", nil, outPath); err == nil {
		t.Fatal("expected error for empty series list")
	}
}
