package report

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"evogen/internal/model"
)

// Summary condenses one per-generation statistic trace.
type Summary struct {
	Name   string  `json:"name"`
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	First  float64 `json:"first"`
	Final  float64 `json:"final"`
}

func Summarize(series model.Series) (Summary, error) {
	if len(series.Points) == 0 {
		return Summary{}, fmt.Errorf("series %s has no points", series.Name)
	}

	values := make([]float64, len(series.Points))
	for i, point := range series.Points {
		values[i] = point.Value
	}

	min := values[0]
	max := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	sd := 0.0
	if len(values) > 1 {
		sd = stat.StdDev(values, nil)
	}

	return Summary{
		Name:   series.Name,
		Count:  len(values),
		Min:    min,
		Max:    max,
		Mean:   stat.Mean(values, nil),
		StdDev: sd,
		First:  values[0],
		Final:  values[len(values)-1],
	}, nil
}
