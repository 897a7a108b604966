/*
 * mc.go, part of gomc.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package mc

import (
	"bufio"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	v3 "github.com/MolSSI-Education/gomc/v3"
	"gonum.org/v1/gonum/stat"
)

//Params is the construction surface of a simulation. Method selects how the
//initial configuration is obtained: "random" needs NumParticles and
//ReducedDen, "file" needs FileName. A Seed of 0 means a time-seeded random
//source; anything else makes the whole run reproducible.
type Params struct {
	Method           string
	ReducedTemp      float64
	MaxDisplacement  float64
	Cutoff           float64
	NumParticles     int
	ReducedDen       float64
	FileName         string
	TuneDisplacement bool
	Seed             int64
}

//DefaultParams returns the parameters of the reference liquid-state run:
//100 particles at reduced density and temperature 0.9, cutoff 3.0, initial
//maximum displacement 0.1, adaptive tuning on.
func DefaultParams() *Params {
	ret := new(Params)
	ret.Method = "random"
	ret.ReducedTemp = 0.9
	ret.MaxDisplacement = 0.1
	ret.Cutoff = 3.0
	ret.NumParticles = 100
	ret.ReducedDen = 0.9
	ret.TuneDisplacement = true
	return ret
}

//RunOptions is the invocation surface of Run. Freq is the logging cadence
//in steps. Snapshots, trajectory frames and displacement tuning all happen
//at that same cadence.
type RunOptions struct {
	Freq      int
	SaveDir   string
	SaveSnaps bool
	Traj      FrameWriter
}

//FrameWriter takes coordinate frames at the logging cadence. traj.Writer
//implements it; the engine itself stays free of any I/O format.
type FrameWriter interface {
	WNext(coord *v3.Matrix) error
}

//DefaultRunOptions returns the run options of the reference runs: log every
//100 steps into ./results, no snapshots, no trajectory.
func DefaultRunOptions() *RunOptions {
	ret := new(RunOptions)
	ret.Freq = 100
	ret.SaveDir = "./results"
	return ret
}

//MC drives a canonical-ensemble Metropolis Monte Carlo simulation: it owns
//the step loop, the acceptance decisions, the running energy bookkeeping
//and the adaptive tuning of the maximum trial displacement. All its mutable
//state lives in the struct, so a simulation can be stopped after any Run
//and resumed later by calling Run again.
type MC struct {
	beta            float64
	maxDisplacement float64
	tune            bool
	nTrials         int
	nAccept         int
	energyTrace     []float64
	currentStep     int
	freq            int
	geom            *Geom
	energy          *Energy
	rng             *rand.Rand
	perf            float64
}

//New builds an MC engine from p, or from DefaultParams() if p is nil.
//Construction fails fast: an unsupported method, a non-positive temperature,
//displacement, cutoff or (for the random method) density never produce a
//half-built engine.
func New(p *Params) (*MC, error) {
	if p == nil {
		p = DefaultParams()
	}
	if p.ReducedTemp <= 0 {
		return nil, mcError{fmt.Sprintf("the reduced temperature must be positive, got %4.2f", p.ReducedTemp), BadConfiguration, []string{"New"}, true}
	}
	if p.MaxDisplacement <= 0 {
		return nil, mcError{fmt.Sprintf("the maximum displacement must be positive, got %4.2f", p.MaxDisplacement), BadConfiguration, []string{"New"}, true}
	}
	S := new(MC)
	S.beta = 1.0 / p.ReducedTemp
	S.maxDisplacement = p.MaxDisplacement
	S.tune = p.TuneDisplacement
	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	S.rng = rand.New(rand.NewSource(seed))
	var err error
	switch p.Method {
	case "random":
		S.geom, err = NewRandomGeom(p.NumParticles, p.ReducedDen, S.rng)
	case "file":
		if p.FileName == "" {
			return nil, mcError{"a file name must be given for method=file", BadConfiguration, []string{"New"}, true}
		}
		S.geom, err = GeomFromFile(p.FileName)
	default:
		return nil, mcError{fmt.Sprintf("method must be either 'file' or 'random', got '%s'", p.Method), BadConfiguration, []string{"New"}, true}
	}
	if err != nil {
		return nil, errDecorate(err, "New")
	}
	S.energy, err = NewEnergy(S.geom, p.Cutoff)
	if err != nil {
		return nil, errDecorate(err, "New")
	}
	return S, nil
}

//acceptOrReject applies the Metropolis criterion to an energy change:
//a move that lowers the energy is always taken, one that raises it is taken
//with probability exp(-beta*deltaE), decided against one fresh uniform draw.
func (S *MC) acceptOrReject(deltaE float64) bool {
	if deltaE < 0.0 {
		return true
	}
	return S.rng.Float64() < math.Exp(-S.beta*deltaE)
}

//adjustDisplacement applies the proportional-band controller for the
//maximum displacement: acceptance below 0.38 shrinks it by 20%, above 0.42
//grows it by 20%. The dead band in between stops the controller from
//chattering around the usual 40% target. Counters restart afterwards, so
//every tuning event sees only its own window.
func (S *MC) adjustDisplacement() {
	accRate := float64(S.nAccept) / float64(S.nTrials)
	if accRate < 0.38 {
		S.maxDisplacement *= 0.8
	} else if accRate > 0.42 {
		S.maxDisplacement *= 1.2
	}
	S.nTrials = 0
	S.nAccept = 0
}

//Run advances the simulation by nSteps steps, logging every o.Freq steps,
//or with DefaultRunOptions if o is nil. The first Run records the initial
//energy at index 0 of the trace; a later Run continues from the current
//step and extends the trace instead of resetting it. Failures to write a
//snapshot or a trajectory frame abort the run with the step loop in a
//consistent state, so the caller can deal with the path and Run again.
func (S *MC) Run(nSteps int, o *RunOptions) error {
	if o == nil {
		o = DefaultRunOptions()
	}
	if nSteps <= 0 {
		return mcError{fmt.Sprintf("the number of steps must be positive, got %d", nSteps), BadConfiguration, []string{"Run"}, true}
	}
	if o.Freq <= 0 {
		return mcError{fmt.Sprintf("the logging frequency must be positive, got %d", o.Freq), BadConfiguration, []string{"Run"}, true}
	}
	S.freq = o.Freq
	if err := os.MkdirAll(o.SaveDir, 0755); err != nil {
		return err
	}
	logf, err := os.OpenFile(filepath.Join(o.SaveDir, "results.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer logf.Close()
	w := bufio.NewWriter(logf)
	defer w.Flush()
	if S.currentStep == 0 {
		fmt.Fprintf(w, "Step        Energy\n")
	}

	nf := float64(S.geom.Len())
	tailCorrection := S.energy.TailCorrection()
	totalPairEnergy := S.energy.TotalPairEnergy()
	if S.currentStep == 0 {
		S.energyTrace = make([]float64, 0, nSteps+1)
		S.energyTrace = append(S.energyTrace, (totalPairEnergy+tailCorrection)/nf)
	}

	coords := S.geom.Coords()
	var oldCoord [3]float64
	start := time.Now()
	for iStep := 1; iStep <= nSteps; iStep++ {
		S.currentStep++
		S.nTrials++

		iParticle := S.rng.Intn(S.geom.Len())
		currentEnergy := S.energy.ParticleEnergy(iParticle, coords)
		row := coords.VecView(iParticle)
		for j := 0; j < 3; j++ {
			oldCoord[j] = row.At(0, j)
			displacement := (2.0*S.rng.Float64() - 1.0) * S.maxDisplacement
			row.Set(0, j, oldCoord[j]+displacement)
		}
		S.geom.Wrap(row)
		proposedEnergy := S.energy.ParticleEnergy(iParticle, coords)
		deltaE := proposedEnergy - currentEnergy

		//commit or revert as a unit: the coordinate and the accumulator
		//are never left disagreeing with each other.
		if S.acceptOrReject(deltaE) {
			totalPairEnergy += deltaE
			S.nAccept++
		} else {
			for j := 0; j < 3; j++ {
				row.Set(0, j, oldCoord[j])
			}
		}
		S.energyTrace = append(S.energyTrace, (totalPairEnergy+tailCorrection)/nf)

		if S.currentStep%o.Freq == 0 {
			current := S.energyTrace[S.currentStep]
			fmt.Fprintf(w, "%d         %v\n", S.currentStep, current)
			fmt.Println(S.currentStep, current)
			if o.SaveSnaps {
				name := filepath.Join(o.SaveDir, fmt.Sprintf("snap_%d.txt", S.currentStep))
				if err := S.geom.SaveState(name); err != nil {
					return errDecorate(err, "Run")
				}
			}
			if o.Traj != nil {
				if err := o.Traj.WNext(coords); err != nil {
					return err
				}
			}
			//re-establish the ground truth, so float drift from the
			//incremental updates cannot accumulate across a long run.
			totalPairEnergy = S.energy.TotalPairEnergy()
			if S.tune {
				S.adjustDisplacement()
			}
		}
	}
	S.perf = time.Since(start).Seconds() / float64(nSteps) * 1000.0
	mean, std := stat.MeanStdDev(S.energyTrace, nil)
	fmt.Fprintf(w, "# %v +/- %v energy per particle over %d steps\n", mean, std, S.currentStep)
	fmt.Fprintf(w, "# %10.5f seconds per 1000 steps\n", S.perf)
	return nil
}

//EnergyTrace returns the per-step total energy per particle, with index 0
//holding the energy of the initial configuration. The slice is the engine's
//own, not a copy. Asking for it before any Run is an error.
func (S *MC) EnergyTrace() ([]float64, error) {
	if len(S.energyTrace) == 0 {
		return nil, mcError{"the simulation has not started running", NotRunning, []string{"EnergyTrace"}, true}
	}
	return S.energyTrace, nil
}

//CurrentStep returns the number of steps taken so far, over all Runs.
func (S *MC) CurrentStep() int { return S.currentStep }

//MaxDisplacement returns the current maximum trial displacement.
func (S *MC) MaxDisplacement() float64 { return S.maxDisplacement }

//LogFreq returns the logging frequency of the last Run, or 0 before any Run.
func (S *MC) LogFreq() int { return S.freq }

//Performance returns the measured seconds per 1000 steps of the last Run,
//or 0 before any Run.
func (S *MC) Performance() float64 { return S.perf }

//Snapshot returns the current geometry. It shares storage with the engine,
//so it reflects (and can affect) the simulation.
func (S *MC) Snapshot() *Geom { return S.geom }

//SaveSnapshot writes the current configuration to fileName, refusing to
//overwrite an existing file.
func (S *MC) SaveSnapshot(fileName string) error {
	err := S.geom.SaveState(fileName)
	if err != nil {
		return errDecorate(err, "SaveSnapshot")
	}
	return nil
}
