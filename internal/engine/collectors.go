package engine

// DataPoint is one (generation, value) observation in a collector's series.
type DataPoint struct {
	Generation int     `json:"generation"`
	Value      float64 `json:"value"`
}

// StatisticsCollector observes the population and archive once per
// generation and accumulates an ordered time series for later reporting.
type StatisticsCollector interface {
	Name() string
	Collect(pop *Population, archive *SolutionArchive)
	Data() []DataPoint
}

// AvgFitnessCollector records the population's mean fitness per generation.
type AvgFitnessCollector struct {
	data []DataPoint
}

func (*AvgFitnessCollector) Name() string { return "avg_fitness" }

func (c *AvgFitnessCollector) Collect(pop *Population, _ *SolutionArchive) {
	c.data = append(c.data, DataPoint{Generation: pop.Generation(), Value: pop.AvgFitness()})
}

func (c *AvgFitnessCollector) Data() []DataPoint { return c.data }

// SDFitnessCollector records the population's fitness standard deviation
// per generation.
type SDFitnessCollector struct {
	data []DataPoint
}

func (*SDFitnessCollector) Name() string { return "sd_fitness" }

func (c *SDFitnessCollector) Collect(pop *Population, _ *SolutionArchive) {
	c.data = append(c.data, DataPoint{Generation: pop.Generation(), Value: pop.SDFitness()})
}

func (c *SDFitnessCollector) Data() []DataPoint { return c.data }

// BestFitnessCollector records the best archived fitness per generation.
type BestFitnessCollector struct {
	data []DataPoint
}

func (*BestFitnessCollector) Name() string { return "best_fitness" }

func (c *BestFitnessCollector) Collect(pop *Population, archive *SolutionArchive) {
	best := archive.Best()
	if best == nil {
		return
	}
	c.data = append(c.data, DataPoint{Generation: pop.Generation(), Value: best.Fitness()})
}

func (c *BestFitnessCollector) Data() []DataPoint { return c.data }
