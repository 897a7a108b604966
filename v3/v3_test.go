/*
 * v3_test.go, part of gomc.
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

package v3

import (
	"fmt"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNewMatrix(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		Te.Fatal(err)
	}
	if A.NVecs() != 2 {
		Te.Errorf("wrong number of vectors: %d", A.NVecs())
	}
	if _, err := NewMatrix([]float64{1, 2, 3, 4}); err == nil {
		Te.Error("a slice of length 4 should not make a 3-column matrix")
	}
}

func TestViewsShareStorage(Te *testing.T) {
	A := Zeros(3)
	v := A.VecView(1)
	v.Set(0, 2, 9.5)
	if A.At(1, 2) != 9.5 {
		Te.Error("writing through a view did not reach the parent matrix")
	}
	fmt.Println("View test passed", A.RawMatrix().Data)
}

func TestSetAndSwapVecs(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 1, 1, 2, 2, 2, 3, 3, 3})
	B, _ := NewMatrix([]float64{7, 8, 9})
	A.SetVec(0, B)
	if A.At(0, 1) != 8 {
		Te.Error("SetVec did not copy the vector")
	}
	A.SwapVecs(0, 2)
	if A.At(0, 0) != 3 || A.At(2, 2) != 9 {
		Te.Error("SwapVecs did not swap")
	}
	defer func() {
		if recover() == nil {
			Te.Error("an out-of-range swap should panic")
		}
	}()
	A.SwapVecs(0, 5)
}

func TestDenseConversion(Te *testing.T) {
	A := Zeros(2)
	d := Matrix2Dense(A)
	d.Set(1, 1, 4.5)
	if A.At(1, 1) != 4.5 {
		Te.Error("the Dense matrix does not share storage with the Matrix")
	}
	B := Dense2Matrix(mat.NewDense(1, 3, []float64{1, 2, 3}))
	if B.NVecs() != 1 || B.At(0, 2) != 3 {
		Te.Errorf("the wrapped Dense matrix came out wrong: %v vectors", B.NVecs())
	}
	fmt.Println("gonum interop test passed")
}

func TestCopyVecs(Te *testing.T) {
	A := Zeros(2)
	B, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	if n := A.CopyVecs(B); n != 2 {
		Te.Errorf("copied %d vectors, want 2", n)
	}
	if A.At(1, 2) != 6 {
		Te.Error("CopyVecs copied the wrong data")
	}
}
