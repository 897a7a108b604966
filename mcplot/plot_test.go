package mcplot

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestEnergyTracePlot(Te *testing.T) {
	//A decaying trace, roughly what an equilibrating run looks like.
	trace := make([]float64, 501)
	for i := range trace {
		trace[i] = -6.0 + 4.0*math.Exp(-float64(i)/80.0)
	}
	name := filepath.Join(Te.TempDir(), "energy.png")
	if err := EnergyTrace(trace, 10, name); err != nil {
		Te.Fatal(err)
	}
	fi, err := os.Stat(name)
	if err != nil {
		Te.Fatal(err)
	}
	if fi.Size() == 0 {
		Te.Error("an empty plot file was written")
	}
}

func TestEnergyTraceTooShort(Te *testing.T) {
	if err := EnergyTrace([]float64{-6.0}, 1, "unused.png"); err == nil {
		Te.Error("a single-point trace should not be plottable")
	}
}
