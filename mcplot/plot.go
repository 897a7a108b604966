package mcplot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//Package mcplot draws the output of a Monte Carlo run. It is a pure
//consumer of the engine's energy trace: nothing in the physics core
//depends on it.

//EnergyTrace plots the per-particle energy of a run against the step
//number and saves the plot as a PNG to fileName. The trace is sampled
//every freq steps, matching the logging cadence of the run; freq <= 1
//plots every step. Index 0 of the trace holds the initial energy.
func EnergyTrace(trace []float64, freq int, fileName string) error {
	if len(trace) < 2 {
		return fmt.Errorf("mcplot: a trace with at least 2 points is needed, got %d", len(trace))
	}
	if freq < 1 {
		freq = 1
	}
	steps := make([]float64, len(trace))
	floats.Span(steps, 0, float64(len(trace)-1))
	pts := make(plotter.XYs, 0, len(trace)/freq+1)
	for i := 0; i < len(trace); i += freq {
		pts = append(pts, plotter.XY{X: steps[i], Y: trace[i]})
	}
	p := plot.New()
	p.Title.Text = "LJ potential energy"
	p.X.Label.Text = "Step"
	p.Y.Label.Text = "Potential Energy (reduced units)"
	//Draw the grid.
	p.Add(plotter.NewGrid())
	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	l.LineStyle.Color = color.RGBA{B: 255, A: 255}
	p.Add(l)
	//Save the plot to a PNG file.
	if err := p.Save(10*vg.Inch, 6*vg.Inch, fileName); err != nil {
		return err
	}
	return nil
}
