package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"evogen/internal/model"
)

// RunArtifacts bundles everything persisted for one run so it can be written
// out as a self-contained export directory.
type RunArtifacts struct {
	Run       model.RunRecord
	Series    []model.Series
	Solutions []model.SolutionRecord
	Summaries []Summary
}

// WriteRunArtifacts writes run.json, solutions.json, summary.json and one CSV
// per series under baseDir/<run id> and returns the export directory.
func WriteRunArtifacts(baseDir string, artifacts RunArtifacts) (string, error) {
	if artifacts.Run.ID == "" {
		return "", fmt.Errorf("run id is required")
	}

	runDir := filepath.Join(baseDir, artifacts.Run.ID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, "run.json"), artifacts.Run); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "solutions.json"), artifacts.Solutions); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "summary.json"), artifacts.Summaries); err != nil {
		return "", err
	}
	for _, series := range artifacts.Series {
		path := filepath.Join(runDir, series.Name+".csv")
		if err := writeSeriesCSV(path, series); err != nil {
			return "", err
		}
	}

	return runDir, nil
}

func writeSeriesCSV(path string, series model.Series) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"generation", series.Name}); err != nil {
		return err
	}
	for _, point := range series.Points {
		record := []string{
			strconv.Itoa(point.Generation),
			strconv.FormatFloat(point.Value, 'g', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return file.Sync()
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
