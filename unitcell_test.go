/*
 * unitcell_test.go, part of goxtal.
 *
 * Copyright 2024 The goxtal developers
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

package xtal

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestCellClassification(Te *testing.T) {
	deg := math.Pi / 180.0
	check := func(want string, cell *UnitCell, err error) {
		if err != nil {
			Te.Fatalf("%s cell: %v", want, err)
		}
		if cell.CellType() != want {
			Te.Errorf("cell classified as %q, want %q", cell.CellType(), want)
		}
	}
	c, err := CubicCell(4.0)
	check("cubic", c, err)
	c, err = OrthorhombicCell(3.0, 4.0, 5.0)
	check("orthorhombic", c, err)
	c, err = TetragonalCell(4.0, 6.0)
	check("tetragonal", c, err)
	c, err = HexagonalCell(5.0, 10.0)
	check("hexagonal", c, err)
	c, err = RhombohedralCell(5.0, 80.0*deg)
	check("rhombohedral", c, err)
	c, err = MonoclinicCell(5.0, 6.0, 7.0, 100.0*deg)
	check("monoclinic", c, err)
	c, err = TriclinicCell(5.0, 6.0, 7.0, 80.0*deg, 95.0*deg, 105.0*deg)
	check("triclinic", c, err)
}

func TestCellVolume(Te *testing.T) {
	cubic, _ := CubicCell(4.0)
	if math.Abs(cubic.Volume()-64.0) > 1e-10 {
		Te.Errorf("cubic a=4 volume %g", cubic.Volume())
	}
	mono, _ := MonoclinicCell(2.0, 3.0, 4.0, math.Pi/3.0)
	want := 2.0 * 3.0 * 4.0 * math.Sin(math.Pi/3.0)
	if math.Abs(mono.Volume()-want) > 1e-10 {
		Te.Errorf("monoclinic volume %g, want %g", mono.Volume(), want)
	}
}

func TestFractionalCartesianRoundTrip(Te *testing.T) {
	cell, err := TriclinicCell(5.5, 6.25, 7.75,
		85.0*math.Pi/180.0, 95.0*math.Pi/180.0, 105.0*math.Pi/180.0)
	if err != nil {
		Te.Fatal(err)
	}
	frac := mat.NewDense(2, 3, []float64{0.1, 0.2, 0.3, 0.9, 0.5, 0.05})
	cart := cell.ToCartesian(frac)
	back := cell.ToFractional(cart)
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(back.At(i, j)-frac.At(i, j)) > 1e-10 {
				Te.Fatalf("round trip drift at (%d,%d): %g vs %g", i, j, back.At(i, j), frac.At(i, j))
			}
		}
	}
}

func TestSetVectors(Te *testing.T) {
	ref, err := MonoclinicCell(5.0, 6.0, 7.0, 100.0*math.Pi/180.0)
	if err != nil {
		Te.Fatal(err)
	}
	rebuilt, err := NewUnitCell(ref.Lattice())
	if err != nil {
		Te.Fatal(err)
	}
	if rebuilt.CellType() != "monoclinic" {
		Te.Errorf("rebuilt cell classified as %q", rebuilt.CellType())
	}
	refP := ref.Parameters()
	gotP := rebuilt.Parameters()
	for i := range refP {
		if math.Abs(refP[i]-gotP[i]) > 1e-8 {
			Te.Errorf("parameter %d: %g vs %g", i, gotP[i], refP[i])
		}
	}
}

func TestCellAccessors(Te *testing.T) {
	cell, _ := HexagonalCell(5.0, 10.0)
	if cell.A() != 5.0 || cell.C() != 10.0 {
		Te.Errorf("lengths %g, %g", cell.A(), cell.C())
	}
	if math.Abs(cell.GammaDeg()-120.0) > 1e-9 {
		Te.Errorf("gamma %g degrees", cell.GammaDeg())
	}
	if math.Abs(cell.AlphaDeg()-90.0) > 1e-9 || math.Abs(cell.BetaDeg()-90.0) > 1e-9 {
		Te.Errorf("alpha %g, beta %g degrees", cell.AlphaDeg(), cell.BetaDeg())
	}
	if len(cell.UniqueParameters()) != 2 {
		Te.Errorf("hexagonal unique parameters: %v", cell.UniqueParameters())
	}
}

func TestParameterSnapping(Te *testing.T) {
	cell, err := UnitCellFromLengthsAndAnglesDeg(
		[3]float64{5.0, 5.0 + 1e-9, 10.0}, [3]float64{90.0, 90.0, 120.0})
	if err != nil {
		Te.Fatal(err)
	}
	params := cell.Parameters()
	//snapped to equality, not merely close
	if params[0] != params[1] {
		Te.Errorf("a and b not snapped: %.12g vs %.12g", params[0], params[1])
	}
	if params[3] != params[4] {
		Te.Errorf("alpha and beta not snapped: %.12g vs %.12g", params[3], params[4])
	}
}

func TestReciprocalLattice(Te *testing.T) {
	cell, _ := MonoclinicCell(5.0, 6.0, 7.0, 100.0*math.Pi/180.0)
	//rows of the reciprocal lattice are dual to the rows of the direct one
	var prod mat.Dense
	prod.Mul(cell.ReciprocalLattice(), cell.Lattice().T())
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(prod.At(i, j)-want) > 1e-10 {
				Te.Fatalf("reciprocal times direct is not identity: (%d,%d)=%g", i, j, prod.At(i, j))
			}
		}
	}
}

func TestBadCellParameters(Te *testing.T) {
	if _, err := UnitCellFromLengthsAndAngles([3]float64{0, 5, 5}, [3]float64{math.Pi / 2, math.Pi / 2, math.Pi / 2}); err == nil {
		Te.Error("zero length accepted")
	}
	bad := 170.0 * math.Pi / 180.0
	if _, err := UnitCellFromLengthsAndAngles([3]float64{5, 5, 5}, [3]float64{bad, bad, bad}); err == nil {
		Te.Error("geometrically impossible angles accepted")
	}
	if _, err := UnitCellFromLengthsAndAngles([3]float64{5, 5, 5}, [3]float64{math.Pi / 2, math.Pi / 2, math.Pi}); err == nil {
		Te.Error("gamma of 180 degrees accepted")
	}
}
