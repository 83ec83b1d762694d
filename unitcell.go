/*
 * unitcell.go, part of goxtal.
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
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

//Tolerances for deciding whether two cell parameters are "the same" when
//classifying the cell.
const (
	cellAbsTol = 1e-8
	cellRelTol = 1e-5
)

func cellClose(a, b float64) bool {
	return scalar.EqualWithinAbsOrRel(a, b, cellAbsTol, cellRelTol)
}

//UnitCell holds the lattice vectors of a crystal, keeping the direct
//matrix, its inverse and the six cell parameters mutually consistent.
//The direct matrix is row major: row 0 is lattice vector A, and so on.
//Lengths are Angstroms, angles radians.
type UnitCell struct {
	direct   *mat.Dense
	inverse  *mat.Dense
	lengths  [3]float64
	angles   [3]float64
	cellType string
}

//NewUnitCell builds a unit cell from a (3,3) row major matrix of lattice
//vectors.
func NewUnitCell(vectors *mat.Dense) (*UnitCell, error) {
	uc := new(UnitCell)
	if err := uc.SetVectors(vectors); err != nil {
		return nil, errDecorate(err, "NewUnitCell")
	}
	return uc, nil
}

//UnitCellFromLengthsAndAngles builds a unit cell from side lengths
//(a, b, c) in Angstroms and angles (alpha, beta, gamma) in radians.
func UnitCellFromLengthsAndAngles(lengths, angles [3]float64) (*UnitCell, error) {
	for _, v := range angles {
		if math.Abs(v) > math.Pi {
			logger.Warnf("Large angle (%.3f rad) in UnitCellFromLengthsAndAngles, are you sure your angles are not in degrees?", v)
		}
	}
	uc := new(UnitCell)
	if err := uc.SetLengthsAndAngles(lengths, angles); err != nil {
		return nil, errDecorate(err, "UnitCellFromLengthsAndAngles")
	}
	return uc, nil
}

//UnitCellFromLengthsAndAnglesDeg is UnitCellFromLengthsAndAngles with
//the angles in degrees.
func UnitCellFromLengthsAndAnglesDeg(lengths, angles [3]float64) (*UnitCell, error) {
	rad := [3]float64{}
	for i, v := range angles {
		rad[i] = v * math.Pi / 180
	}
	uc := new(UnitCell)
	if err := uc.SetLengthsAndAngles(lengths, rad); err != nil {
		return nil, errDecorate(err, "UnitCellFromLengthsAndAnglesDeg")
	}
	return uc, nil
}

//CubicCell builds the cell a=b=c, all angles 90 degrees.
func CubicCell(length float64) (*UnitCell, error) {
	return OrthorhombicCell(length, length, length)
}

//OrthorhombicCell builds a cell with the given side lengths and all
//angles 90 degrees.
func OrthorhombicCell(a, b, c float64) (*UnitCell, error) {
	return UnitCellFromLengthsAndAngles([3]float64{a, b, c},
		[3]float64{math.Pi / 2, math.Pi / 2, math.Pi / 2})
}

//TetragonalCell builds a cell with a=b, the given c, and all angles 90
//degrees.
func TetragonalCell(a, c float64) (*UnitCell, error) {
	return OrthorhombicCell(a, a, c)
}

//HexagonalCell builds a cell with a=b, the given c, alpha=beta=90 and
//gamma=120 degrees.
func HexagonalCell(a, c float64) (*UnitCell, error) {
	return UnitCellFromLengthsAndAngles([3]float64{a, a, c},
		[3]float64{math.Pi / 2, math.Pi / 2, 2 * math.Pi / 3})
}

//RhombohedralCell builds a cell with a=b=c and alpha=beta=gamma, alpha
//in radians.
func RhombohedralCell(a, alpha float64) (*UnitCell, error) {
	return UnitCellFromLengthsAndAngles([3]float64{a, a, a},
		[3]float64{alpha, alpha, alpha})
}

//MonoclinicCell builds a cell with the given side lengths, beta in
//radians, and alpha=gamma=90 degrees.
func MonoclinicCell(a, b, c, beta float64) (*UnitCell, error) {
	return UnitCellFromLengthsAndAngles([3]float64{a, b, c},
		[3]float64{math.Pi / 2, beta, math.Pi / 2})
}

//TriclinicCell builds a cell from all six parameters, angles in radians.
func TriclinicCell(a, b, c, alpha, beta, gamma float64) (*UnitCell, error) {
	return UnitCellFromLengthsAndAngles([3]float64{a, b, c},
		[3]float64{alpha, beta, gamma})
}

//SetLengthsAndAngles rebuilds the lattice from the six cell parameters.
//The direct matrix is constructed in the standard orientation with A
//along x and B in the xy plane, and the inverse is built analytically
//from the same parameters so the two cannot drift apart numerically.
func (U *UnitCell) SetLengthsAndAngles(lengths, angles [3]float64) error {
	a, b, c := lengths[0], lengths[1], lengths[2]
	if a <= 0 || b <= 0 || c <= 0 {
		return cError("SetLengthsAndAngles", "non-positive cell length in (%g, %g, %g)", a, b, c)
	}
	ca, cb, cg := math.Cos(angles[0]), math.Cos(angles[1]), math.Cos(angles[2])
	sg := math.Sin(angles[2])
	if sg == 0 {
		return cError("SetLengthsAndAngles", "gamma = %g rad makes the lattice degenerate", angles[2])
	}
	vterm := 1 - ca*ca - cb*cb - cg*cg + 2*ca*cb*cg
	if vterm <= 0 {
		return cError("SetLengthsAndAngles", "angles (%g, %g, %g) rad do not define a parallelepiped", angles[0], angles[1], angles[2])
	}
	U.lengths = lengths
	U.angles = angles
	v := a * b * c * math.Sqrt(vterm)
	U.direct = mat.NewDense(3, 3, []float64{
		a, 0, 0,
		b * cg, b * sg, 0,
		c * cb, c * (ca - cb*cg) / sg, v / (a * b * sg),
	})
	U.inverse = mat.NewDense(3, 3, []float64{
		1 / a, 0, 0,
		-cg / (a * sg), 1 / (b * sg), 0,
		b * c * (ca*cg - cb) / v / sg, a * c * (cb*cg - ca) / v / sg, a * b * sg / v,
	})
	U.setCellType()
	return nil
}

//SetVectors rebuilds the lattice from a (3,3) row major matrix of
//lattice vectors. The cell parameters are derived from the vectors; the
//inverse is a true matrix inverse of the given basis.
func (U *UnitCell) SetVectors(vectors *mat.Dense) error {
	r, c := vectors.Dims()
	if r != 3 || c != 3 {
		return cError("SetVectors", "lattice vector matrix is %dx%d, want 3x3", r, c)
	}
	var norms [3]float64
	for i := 0; i < 3; i++ {
		norms[i] = mat.Norm(vectors.RowView(i), 2)
		if norms[i] == 0 {
			return cError("SetVectors", "lattice vector %d has zero length", i)
		}
	}
	dot := func(i, j int) float64 {
		s := 0.0
		for k := 0; k < 3; k++ {
			s += vectors.At(i, k) * vectors.At(j, k)
		}
		return s / (norms[i] * norms[j])
	}
	clamp := func(v float64) float64 {
		return math.Max(-1, math.Min(1, v))
	}
	U.direct = mat.DenseCopyOf(vectors)
	U.lengths = norms
	U.angles = [3]float64{
		math.Acos(clamp(dot(1, 2))),
		math.Acos(clamp(dot(2, 0))),
		math.Acos(clamp(dot(0, 1))),
	}
	U.inverse = mat.NewDense(3, 3, nil)
	if err := U.inverse.Inverse(U.direct); err != nil {
		return cError("SetVectors", "lattice vectors are not linearly independent: %v", err)
	}
	U.setCellType()
	return nil
}

func (U *UnitCell) abcEqual() bool {
	return cellClose(U.lengths[0], U.lengths[1]) && cellClose(U.lengths[0], U.lengths[2])
}

func (U *UnitCell) abcDifferent() bool {
	return !cellClose(U.lengths[0], U.lengths[1]) &&
		!cellClose(U.lengths[0], U.lengths[2]) &&
		!cellClose(U.lengths[1], U.lengths[2])
}

func (U *UnitCell) orthogonal() bool {
	for _, v := range U.angles {
		if !cellClose(math.Abs(v), math.Pi/2) {
			return false
		}
	}
	return true
}

func (U *UnitCell) anglesDifferent() bool {
	return !cellClose(U.angles[0], U.angles[1]) &&
		!cellClose(U.angles[0], U.angles[2]) &&
		!cellClose(U.angles[1], U.angles[2])
}

//setCellType classifies the cell from its parameters. The order matters:
//the most constrained types are tested first, and triclinic is the
//fallback for anything that fits nothing else.
func (U *UnitCell) setCellType() {
	switch {
	case U.abcEqual() && U.orthogonal():
		U.cellType = "cubic"
	case U.abcEqual() && cellClose(U.angles[0], U.angles[1]) &&
		cellClose(U.angles[0], U.angles[2]) && !cellClose(U.angles[0], math.Pi/2):
		U.cellType = "rhombohedral"
	case cellClose(U.lengths[0], U.lengths[1]) && !cellClose(U.lengths[0], U.lengths[2]) &&
		cellClose(U.angles[0], math.Pi/2) && cellClose(U.angles[1], math.Pi/2) &&
		cellClose(U.angles[2], 2*math.Pi/3):
		U.cellType = "hexagonal"
	case cellClose(U.lengths[0], U.lengths[1]) && !cellClose(U.lengths[0], U.lengths[2]) && U.orthogonal():
		U.cellType = "tetragonal"
	case U.orthogonal() && U.abcDifferent():
		U.cellType = "orthorhombic"
	case cellClose(U.angles[0], U.angles[2]) && U.abcDifferent():
		U.cellType = "monoclinic"
	default:
		U.cellType = "triclinic"
	}
}

//CellType returns the lattice classification derived from the cell
//parameters: one of cubic, rhombohedral, hexagonal, tetragonal,
//orthorhombic, monoclinic or triclinic.
func (U *UnitCell) CellType() string {
	return U.cellType
}

//UniqueParameters returns the independent cell parameters of the current
//cell type, lengths first, angles in radians.
func (U *UnitCell) UniqueParameters() []float64 {
	switch U.cellType {
	case "cubic":
		return []float64{U.lengths[0]}
	case "rhombohedral":
		return []float64{U.lengths[0], U.angles[0]}
	case "hexagonal", "tetragonal":
		return []float64{U.lengths[0], U.lengths[2]}
	case "orthorhombic":
		return []float64{U.lengths[0], U.lengths[1], U.lengths[2]}
	case "monoclinic":
		return []float64{U.lengths[0], U.lengths[1], U.lengths[2], U.angles[1]}
	default:
		return []float64{U.lengths[0], U.lengths[1], U.lengths[2],
			U.angles[0], U.angles[1], U.angles[2]}
	}
}

//Lattice returns a copy of the direct matrix, one lattice vector per row.
func (U *UnitCell) Lattice() *mat.Dense {
	return mat.DenseCopyOf(U.direct)
}

//ReciprocalLattice returns the reciprocal lattice vectors, one per row.
func (U *UnitCell) ReciprocalLattice() *mat.Dense {
	r := mat.NewDense(3, 3, nil)
	r.CloneFrom(U.inverse.T())
	return r
}

//ToCartesian transforms (N,3) fractional coordinates to Cartesian space.
//The x direction is aligned along lattice vector A.
func (U *UnitCell) ToCartesian(coords *mat.Dense) *mat.Dense {
	rows, _ := coords.Dims()
	out := mat.NewDense(rows, 3, nil)
	out.Mul(coords, U.direct)
	return out
}

//ToFractional transforms (N,3) Cartesian coordinates to fractional
//space, assuming the x direction is aligned along lattice vector A.
func (U *UnitCell) ToFractional(coords *mat.Dense) *mat.Dense {
	rows, _ := coords.Dims()
	out := mat.NewDense(rows, 3, nil)
	out.Mul(coords, U.inverse)
	return out
}

//Volume returns the cell volume in cubic Angstroms.
func (U *UnitCell) Volume() float64 {
	a, b, c := U.lengths[0], U.lengths[1], U.lengths[2]
	ca, cb, cg := math.Cos(U.angles[0]), math.Cos(U.angles[1]), math.Cos(U.angles[2])
	return a * b * c * math.Sqrt(1-ca*ca-cb*cb-cg*cg+2*ca*cb*cg)
}

//A is the length of lattice vector a.
func (U *UnitCell) A() float64 { return U.lengths[0] }

//B is the length of lattice vector b.
func (U *UnitCell) B() float64 { return U.lengths[1] }

//C is the length of lattice vector c.
func (U *UnitCell) C() float64 { return U.lengths[2] }

//Alpha is the angle between lattice vectors b and c, in radians.
func (U *UnitCell) Alpha() float64 { return U.angles[0] }

//Beta is the angle between lattice vectors a and c, in radians.
func (U *UnitCell) Beta() float64 { return U.angles[1] }

//Gamma is the angle between lattice vectors a and b, in radians.
func (U *UnitCell) Gamma() float64 { return U.angles[2] }

//AlphaDeg is Alpha in degrees.
func (U *UnitCell) AlphaDeg() float64 { return U.angles[0] * 180 / math.Pi }

//BetaDeg is Beta in degrees.
func (U *UnitCell) BetaDeg() float64 { return U.angles[1] * 180 / math.Pi }

//GammaDeg is Gamma in degrees.
func (U *UnitCell) GammaDeg() float64 { return U.angles[2] * 180 / math.Pi }

//Parameters returns the six cell parameters (a, b, c, alpha, beta,
//gamma) with angles in degrees. Parameters that agree within 1e-6 are
//snapped to the same value so file output does not show spurious
//differences between symmetry-equal parameters.
func (U *UnitCell) Parameters() [6]float64 {
	const atol = 1e-6
	l := U.lengths
	deg := [3]float64{U.AlphaDeg(), U.BetaDeg(), U.GammaDeg()}
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if math.Abs(l[j]-l[i]) < atol {
				l[j] = l[i]
			}
			if math.Abs(deg[j]-deg[i]) < atol {
				deg[j] = deg[i]
			}
		}
	}
	return [6]float64{l[0], l[1], l[2], deg[0], deg[1], deg[2]}
}

func (U *UnitCell) String() string {
	unique := U.UniqueParameters()
	s := fmt.Sprintf("UnitCell: %s (", U.cellType)
	for i, p := range unique {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("%.3f", p)
	}
	return s + ")"
}
