package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"evogen/internal/model"
)

// RenderFitnessPlot draws one line per series against the generation axis and
// saves the result to outPath. The output format follows the path extension
// (.png, .svg, .pdf).
func RenderFitnessPlot(title string, series []model.Series, outPath string) error {
	if len(series) == 0 {
		return fmt.Errorf("no series to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Fitness"

	for i, s := range series {
		pts := make(plotter.XYs, len(s.Points))
		for j, point := range s.Points {
			pts[j].X = float64(point.Generation)
			pts[j].Y = point.Value
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("plot series %s: %w", s.Name, err)
		}
		line.Color = plotutil.Color(i)
		line.Dashes = plotutil.Dashes(i)
		p.Add(line)
		p.Legend.Add(s.Name, line)
	}

	p.Legend.Top = true
	p.Legend.Left = true

	return p.Save(6*vg.Inch, 4*vg.Inch, outPath)
}
