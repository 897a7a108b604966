/*
 * energy_test.go, part of gomc.
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
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestLennardJones(Te *testing.T) {
	//The potential is zero where r^2 is 1, and at its known value at r^2=2.
	if v := LennardJones(1.0); v != 0.0 {
		Te.Errorf("LJ(1.0) should be 0, got %v", v)
	}
	if v := LennardJones(2.0); v != -0.4375 {
		Te.Errorf("LJ(2.0) should be -0.4375, got %v", v)
	}
	//Coincident particles are a caller error; the NaN is returned as-is,
	//never masked.
	if v := LennardJones(0.0); !math.IsNaN(v) {
		Te.Errorf("LJ(0.0) should be NaN, got %v", v)
	}
}

func TestParticleEnergy(Te *testing.T) {
	G, err := GeomFromFile("testdata/sample_config.txt")
	if err != nil {
		Te.Fatal(err)
	}
	E, err := NewEnergy(G, 3.0)
	if err != nil {
		Te.Fatal(err)
	}
	//Particle 0 sees particles 1 and 2 at r^2=4 and particle 3 at r^2=1
	//(through the boundary), where the potential is exactly zero.
	want := -0.123046875
	got := E.ParticleEnergy(0, G.Coords())
	if !scalar.EqualWithinAbs(got, want, 1e-14) {
		Te.Errorf("particle 0 energy: want %v, got %v", want, got)
	}
}

//The reference value sums, by hand, the five in-range pairs of the sample
//configuration: two at r^2=4, one each at r^2=8, 5 and 1. The 1-3 pair
//sits exactly at the cutoff (r^2=9) and must be excluded by the strict
//comparison.
func TestTotalPairEnergyReference(Te *testing.T) {
	G, err := GeomFromFile("testdata/sample_config.txt")
	if err != nil {
		Te.Fatal(err)
	}
	E, err := NewEnergy(G, 3.0)
	if err != nil {
		Te.Fatal(err)
	}
	want := -0.1625881162109375
	got := E.TotalPairEnergy()
	fmt.Println("Total pair energy of the sample configuration:", got)
	if !scalar.EqualWithinAbs(got, want, 1e-12) {
		Te.Errorf("want %v, got %v", want, got)
	}
}

func TestTailCorrection(Te *testing.T) {
	G, err := GeomFromFile("testdata/sample_config.txt")
	if err != nil {
		Te.Fatal(err)
	}
	E, err := NewEnergy(G, 3.0)
	if err != nil {
		Te.Fatal(err)
	}
	//N=4, V=1000, rc=3.
	want := -0.004962222093603913
	if got := E.TailCorrection(); !scalar.EqualWithinAbs(got, want, 1e-15) {
		Te.Errorf("want %v, got %v", want, got)
	}
}

func TestNewEnergyValidation(Te *testing.T) {
	G, err := GeomFromFile("testdata/sample_config.txt")
	if err != nil {
		Te.Fatal(err)
	}
	for _, cutoff := range []float64{0, -3} {
		_, err := NewEnergy(G, cutoff)
		if err == nil || Kind(err) != BadConfiguration {
			Te.Errorf("cutoff %v should be BadConfiguration, got %v", cutoff, err)
		}
	}
	if _, err := NewEnergy(nil, 3.0); err == nil {
		Te.Error("a nil geometry should be rejected")
	}
}
