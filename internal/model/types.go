package model

import "time"

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// RunRecord summarizes one completed experiment run.
type RunRecord struct {
	VersionedRecord
	ID          string    `json:"id"`
	Problem     string    `json:"problem"`
	Mating      string    `json:"mating"`
	Survivor    string    `json:"survivor"`
	Seed        int64     `json:"seed"`
	Generations int       `json:"generations"`
	Evaluations int       `json:"evaluations"`
	Restarts    int       `json:"restarts"`
	Outcome     string    `json:"outcome"`
	BestFitness float64   `json:"best_fitness"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
}

// SeriesPoint is a single per-generation statistic sample.
type SeriesPoint struct {
	Generation int     `json:"generation"`
	Value      float64 `json:"value"`
}

// Series is a named per-generation statistic trace for one run.
type Series struct {
	VersionedRecord
	RunID  string        `json:"run_id"`
	Name   string        `json:"name"`
	Points []SeriesPoint `json:"points"`
}

// SolutionRecord is one archived best-of-run candidate.
type SolutionRecord struct {
	VersionedRecord
	RunID      string  `json:"run_id"`
	Rank       int     `json:"rank"`
	Fitness    float64 `json:"fitness"`
	Generation int     `json:"generation"`
	Chromosome string  `json:"chromosome"`
}
