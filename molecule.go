/*
 * molecule.go, part of goxtal.
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
	"gonum.org/v1/gonum/mat"
)

//Molecule is one connected component of the crystal's bonding graph,
//unwrapped from the periodic frame into a continuous set of Cartesian
//coordinates. The bookkeeping slices trace every atom back to the unit
//cell site, the asymmetric unit site and the symmetry operation that
//generated it.
type Molecule struct {
	Elements  []Element
	Positions *mat.Dense //(N,3) Cartesian
	Labels    []string
	//Indices into the unit cell site list this molecule was extracted
	//from.
	UnitCellAtoms []int
	//Indices into the asymmetric unit, one per atom.
	AsymmetricUnitAtoms []int
	//Integer codes of the operations that generated each atom.
	GeneratorSymops []int
}

//Len returns the number of atoms.
func (M *Molecule) Len() int {
	return len(M.Elements)
}

//Formula returns the chemical formula of the molecule.
func (M *Molecule) Formula() string {
	return ChemicalFormula(M.Elements)
}

//Centroid returns the unweighted mean of the atomic positions.
func (M *Molecule) Centroid() [3]float64 {
	var c [3]float64
	n, _ := M.Positions.Dims()
	for i := 0; i < n; i++ {
		for k := 0; k < 3; k++ {
			c[k] += M.Positions.At(i, k)
		}
	}
	for k := 0; k < 3; k++ {
		c[k] /= float64(n)
	}
	return c
}

//Mass returns the molecular mass in atomic mass units.
func (M *Molecule) Mass() float64 {
	m := 0.0
	for _, e := range M.Elements {
		m += e.Mass
	}
	return m
}

//CenterOfMass returns the mass-weighted mean of the atomic positions.
func (M *Molecule) CenterOfMass() [3]float64 {
	var c [3]float64
	total := M.Mass()
	n, _ := M.Positions.Dims()
	for i := 0; i < n; i++ {
		w := M.Elements[i].Mass / total
		for k := 0; k < 3; k++ {
			c[k] += w * M.Positions.At(i, k)
		}
	}
	return c
}

//IdentityFraction is the fraction of the molecule's atoms that were
//generated by the identity operation. Molecules lying mostly inside the
//asymmetric unit score close to 1, pure symmetry images score 0; the
//symmetry-unique selection prefers high scores.
func (M *Molecule) IdentityFraction() float64 {
	if len(M.GeneratorSymops) == 0 {
		return 0
	}
	n := 0
	for _, code := range M.GeneratorSymops {
		if code == IdentityCode {
			n++
		}
	}
	return float64(n) / float64(len(M.GeneratorSymops))
}

func (M *Molecule) String() string {
	return "<Molecule " + M.Formula() + ">"
}
