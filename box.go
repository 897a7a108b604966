/*
 * box.go, part of gomc.
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
	"strconv"
	"strings"
	"time"

	v3 "github.com/MolSSI-Education/gomc/v3"
)

//Geom holds the geometry of a simulation: a periodic cubic box and the
//coordinates of every particle in it. The box edge is fixed at construction.
//Coordinates are mutated in place, one particle at a time, by the MC engine.
type Geom struct {
	boxLength    float64
	volume       float64
	numParticles int
	coords       *v3.Matrix
}

//NewRandomGeom builds a cubic box with numParticles particles at the reduced
//density reducedDen, with coordinates drawn uniformly from [-L/2, L/2) per
//dimension. The box edge follows from the density: L = cbrt(N/rho). A nil
//rng means a time-seeded source. Non-positive arguments are rejected; note
//that a density of exactly zero would put the particles in an infinite box,
//so it is rejected too.
func NewRandomGeom(numParticles int, reducedDen float64, rng *rand.Rand) (*Geom, error) {
	if numParticles <= 0 {
		return nil, mcError{fmt.Sprintf("the number of particles must be positive, got %d", numParticles), BadConfiguration, []string{"NewRandomGeom"}, true}
	}
	if reducedDen <= 0 {
		return nil, mcError{fmt.Sprintf("the reduced density must be positive, got %4.2f", reducedDen), BadConfiguration, []string{"NewRandomGeom"}, true}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	G := new(Geom)
	G.numParticles = numParticles
	G.boxLength = math.Cbrt(float64(numParticles) / reducedDen)
	G.volume = G.boxLength * G.boxLength * G.boxLength
	G.coords = v3.Zeros(numParticles)
	for i := 0; i < numParticles; i++ {
		for j := 0; j < 3; j++ {
			G.coords.Set(i, j, (rng.Float64()-0.5)*G.boxLength)
		}
	}
	return G, nil
}

//GeomFromFile builds a Geom from a text configuration file. The first line
//holds the box edge length (only the first field is read), the second the
//particle count, and each remaining line one particle: at least 4 fields,
//of which fields 2-4 are x, y and z. Field 1, normally an index, is ignored.
//Fields can be separated by spaces, tabs or commas.
func GeomFromFile(fileName string) (*Geom, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, mcError{"can't open the configuration file: " + err.Error(), BadConfiguration, []string{"GeomFromFile"}, true}
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	line, err := nextLine(scanner, fileName)
	if err != nil {
		return nil, errDecorate(err, "GeomFromFile")
	}
	boxLength, err := strconv.ParseFloat(confFields(line)[0], 64)
	if err != nil {
		return nil, mcError{fmt.Sprintf("can't read the box length from %s: %s", fileName, err.Error()), InconsistentData, []string{"GeomFromFile"}, true}
	}
	if boxLength <= 0 {
		return nil, mcError{fmt.Sprintf("non-positive box length %f in %s", boxLength, fileName), InconsistentData, []string{"GeomFromFile"}, true}
	}
	line, err = nextLine(scanner, fileName)
	if err != nil {
		return nil, errDecorate(err, "GeomFromFile")
	}
	//The original format writes the count as a float, so we read it as one.
	fcount, err := strconv.ParseFloat(confFields(line)[0], 64)
	if err != nil {
		return nil, mcError{fmt.Sprintf("can't read the particle count from %s: %s", fileName, err.Error()), InconsistentData, []string{"GeomFromFile"}, true}
	}
	if fcount < 0 {
		return nil, mcError{fmt.Sprintf("negative particle count %v in %s", fcount, fileName), InconsistentData, []string{"GeomFromFile"}, true}
	}
	data := make([]float64, 0, int(fcount)*3)
	rows := 0
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		fi := confFields(text)
		if len(fi) < 4 {
			return nil, mcError{fmt.Sprintf("particle row %d in %s has %d fields, at least 4 needed", rows+1, fileName, len(fi)), InconsistentData, []string{"GeomFromFile"}, true}
		}
		for j := 1; j <= 3; j++ {
			v, err := strconv.ParseFloat(fi[j], 64)
			if err != nil {
				return nil, mcError{fmt.Sprintf("can't read coordinate in row %d of %s: %s", rows+1, fileName, err.Error()), InconsistentData, []string{"GeomFromFile"}, true}
			}
			data = append(data, v)
		}
		rows++
	}
	if err := scanner.Err(); err != nil {
		return nil, mcError{"can't read " + fileName + ": " + err.Error(), InconsistentData, []string{"GeomFromFile"}, true}
	}
	if float64(rows) != fcount {
		return nil, mcError{fmt.Sprintf("inconsistent number of particles in %s: %d declared, %d read", fileName, int(fcount), rows), InconsistentData, []string{"GeomFromFile"}, true}
	}
	G := new(Geom)
	G.boxLength = boxLength
	G.volume = boxLength * boxLength * boxLength
	G.numParticles = rows
	G.coords, err = v3.NewMatrix(data)
	if err != nil {
		return nil, errDecorate(err, "GeomFromFile")
	}
	return G, nil
}

//nextLine returns the next non-empty line from the scanner.
func nextLine(scanner *bufio.Scanner, fileName string) (string, error) {
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text != "" {
			return text, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", mcError{err.Error(), InconsistentData, nil, true}
	}
	return "", mcError{fmt.Sprintf("%s ended before the configuration was complete", fileName), InconsistentData, nil, true}
}

//confFields splits a configuration line on any mix of spaces, tabs and commas.
func confFields(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
}

//BoxLength returns the edge of the cubic box.
func (G *Geom) BoxLength() float64 { return G.boxLength }

//Volume returns the volume of the box.
func (G *Geom) Volume() float64 { return G.volume }

//Len returns the number of particles in the system.
func (G *Geom) Len() int { return G.numParticles }

//Coords returns the coordinates of all particles in the system. The matrix
//is not a copy, so the caller shares it with the Geom.
func (G *Geom) Coords() *v3.Matrix { return G.coords }

//MinImageSq puts in dest the squared distance, under the minimum-image
//convention, between the vector ri and every vector of coords. A nil or
//too-short dest is replaced by a fresh slice; the hot path passes a reusable
//buffer so no allocation happens per call. The returned slice is dest.
func (G *Geom) MinImageSq(ri *v3.Matrix, coords *v3.Matrix, dest []float64) []float64 {
	if ri == nil || coords == nil {
		panic(ErrNilCoordinates)
	}
	n := coords.NVecs()
	if cap(dest) < n {
		dest = make([]float64, n)
	}
	dest = dest[:n]
	L := G.boxLength
	x, y, z := ri.At(0, 0), ri.At(0, 1), ri.At(0, 2)
	for i := 0; i < n; i++ {
		dx := pbc(x-coords.At(i, 0), L)
		dy := pbc(y-coords.At(i, 1), L)
		dz := pbc(z-coords.At(i, 2), L)
		dest[i] = dx*dx + dy*dy + dz*dz
	}
	return dest
}

//pbc corrects a raw per-dimension difference by the nearest periodic image:
//v - L*round(v/L). The rounding is half-up rather than half-away-from-zero,
//which pins the result to [-L/2, L/2) and makes the correction idempotent
//at exactly half a box.
func pbc(v, L float64) float64 {
	return v - L*math.Floor(v/L+0.5)
}

//MinImageSqVec returns the squared minimum-image distance between the
//vectors a and b.
func (G *Geom) MinImageSqVec(a, b *v3.Matrix) float64 {
	var buf [1]float64
	return G.MinImageSq(a, b, buf[:])[0]
}

//Wrap maps, in place, every vector of v back into the primary periodic
//image, [-L/2, L/2) per component. Wrapping an already wrapped vector is
//a no-op.
func (G *Geom) Wrap(v *v3.Matrix) {
	L := G.boxLength
	n := v.NVecs()
	for i := 0; i < n; i++ {
		for j := 0; j < 3; j++ {
			v.Set(i, j, pbc(v.At(i, j), L))
		}
	}
}

//SaveState writes the current geometry to fileName: the box edge three
//times (one per dimension, so anisotropic boxes can be added to the format
//later), the particle count, and then one line per particle with its index
//and coordinates. It refuses to overwrite: if fileName exists the write is
//aborted and no partial file is left.
func (G *Geom) SaveState(fileName string) error {
	if _, err := os.Stat(fileName); err == nil {
		return mcError{fmt.Sprintf("%s already exists, not overwriting", fileName), ResourceConflict, []string{"SaveState"}, true}
	}
	f, err := os.Create(fileName)
	if err != nil {
		return mcError{"can't create " + fileName + ": " + err.Error(), ResourceConflict, []string{"SaveState"}, true}
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%.18e   %.18e   %.18e\n", G.boxLength, G.boxLength, G.boxLength)
	fmt.Fprintf(w, "%d\n", G.numParticles)
	for i := 0; i < G.numParticles; i++ {
		fmt.Fprintf(w, "%d %.18e %.18e %.18e\n", i, G.coords.At(i, 0), G.coords.At(i, 1), G.coords.At(i, 2))
	}
	if err := w.Flush(); err != nil {
		return mcError{"can't write " + fileName + ": " + err.Error(), ResourceConflict, []string{"SaveState"}, true}
	}
	return nil
}
