/*
 * energy.go, part of gomc.
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
	"fmt"
	"math"

	v3 "github.com/MolSSI-Education/gomc/v3"
)

//Energy evaluates truncated Lennard-Jones pair energies on the particles of
//a Geom, in reduced units (sigma=epsilon=1). It is stateless except for the
//cutoff and a scratch buffer for distances, so one Energy serves a whole run.
type Energy struct {
	geom    *Geom
	cutoff  float64
	cutoff2 float64
	buf     []float64
}

//NewEnergy returns an Energy for the given geometry and cutoff radius.
func NewEnergy(G *Geom, cutoff float64) (*Energy, error) {
	if G == nil {
		return nil, mcError{"nil geometry given", BadConfiguration, []string{"NewEnergy"}, true}
	}
	if cutoff <= 0 {
		return nil, mcError{fmt.Sprintf("the cutoff radius must be positive, got %4.2f", cutoff), BadConfiguration, []string{"NewEnergy"}, true}
	}
	E := new(Energy)
	E.geom = G
	E.cutoff = cutoff
	E.cutoff2 = cutoff * cutoff
	E.buf = make([]float64, G.Len())
	return E, nil
}

//Cutoff returns the cutoff radius.
func (E *Energy) Cutoff() float64 { return E.cutoff }

//LennardJones returns the Lennard-Jones potential, in reduced units, for a
//pair of particles at squared distance r2: 4((1/r2)^6 - (1/r2)^3). Calling
//it with r2 == 0 (coincident particles) is a caller error; the result is
//NaN and no attempt is made to mask it.
func LennardJones(r2 float64) float64 {
	sigByR6 := 1 / (r2 * r2 * r2)
	sigByR12 := sigByR6 * sigByR6
	return 4.0 * (sigByR12 - sigByR6)
}

//ParticleEnergy returns the interaction energy of particle i with every
//other particle of coords that lies within the cutoff. This is the
//single-particle energy, not the total: the MC engine calls it twice per
//trial move, so it runs in O(N) and reuses the internal distance buffer.
func (E *Energy) ParticleEnergy(i int, coords *v3.Matrix) float64 {
	if coords == nil {
		panic(ErrNilCoordinates)
	}
	if i < 0 || i >= coords.NVecs() {
		panic(ErrIndexOutOfRange)
	}
	ri := coords.VecView(i)
	E.buf = E.geom.MinImageSq(ri, coords, E.buf)
	etotal := 0.0
	for j, r2 := range E.buf {
		if j == i || r2 >= E.cutoff2 {
			continue
		}
		etotal += LennardJones(r2)
	}
	return etotal
}

//TotalPairEnergy returns the sum of the Lennard-Jones interactions over all
//unique pairs within the cutoff. It is O(N^2), so the engine only calls it
//to (re)establish a ground-truth energy at run start and at logging
//checkpoints; between those the total is maintained incrementally.
func (E *Energy) TotalPairEnergy() float64 {
	coords := E.geom.Coords()
	etotal := 0.0
	for i := 0; i < E.geom.Len(); i++ {
		etotal += E.ParticleEnergy(i, coords)
	}
	return etotal / 2 //each unordered pair was counted twice
}

//TailCorrection returns the analytic long-range correction for the
//truncated potential, assuming uniform density beyond the cutoff:
//(8*pi/9) * N^2/V * ((1/rc)^9 - 3(1/rc)^3). It is constant for a run and
//gets added to every reported total energy, never to the running pair sum.
func (E *Energy) TailCorrection() float64 {
	n := float64(E.geom.Len())
	sigByCutoff3 := math.Pow(1.0/E.cutoff, 3)
	sigByCutoff9 := math.Pow(sigByCutoff3, 3)
	ecorr := sigByCutoff9 - 3.0*sigByCutoff3
	ecorr *= 8.0 / 9.0 * math.Pi * n / E.geom.Volume() * n
	return ecorr
}
