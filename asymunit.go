/*
 * asymunit.go, part of goxtal.
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

	"gonum.org/v1/gonum/mat"
)

//AsymmetricUnit holds the symmetry-independent sites of a crystal: their
//elements, fractional positions, labels and occupations. The space group
//operations applied to these sites generate the full unit cell.
type AsymmetricUnit struct {
	Elements    []Element
	Positions   *mat.Dense //(N,3) fractional
	Labels      []string
	Occupations []float64
}

//NewAsymmetricUnit builds an asymmetric unit from N elements and an
//(N,3) matrix of fractional positions. A nil labels slice generates
//labels of the form C1, C2, H1... numbering each element separately. A
//nil occupations slice means every site is fully occupied.
func NewAsymmetricUnit(elements []Element, positions *mat.Dense, labels []string, occupations []float64) (*AsymmetricUnit, error) {
	n := len(elements)
	if n == 0 {
		return nil, cError("NewAsymmetricUnit", "an asymmetric unit needs at least one site")
	}
	rows, cols := positions.Dims()
	if rows != n || cols != 3 {
		return nil, cError("NewAsymmetricUnit", "positions matrix is %dx%d, want %dx3", rows, cols, n)
	}
	if labels == nil {
		labels = make([]string, n)
		perElement := make(map[int]int, 8)
		for i, e := range elements {
			perElement[e.AtomicNumber]++
			labels[i] = fmt.Sprintf("%s%d", e.Symbol, perElement[e.AtomicNumber])
		}
	} else if len(labels) != n {
		return nil, cError("NewAsymmetricUnit", "%d labels for %d sites", len(labels), n)
	}
	if occupations == nil {
		occupations = make([]float64, n)
		for i := range occupations {
			occupations[i] = 1.0
		}
	} else if len(occupations) != n {
		return nil, cError("NewAsymmetricUnit", "%d occupations for %d sites", len(occupations), n)
	}
	return &AsymmetricUnit{
		Elements:    elements,
		Positions:   positions,
		Labels:      labels,
		Occupations: occupations,
	}, nil
}

//Len returns the number of sites.
func (A *AsymmetricUnit) Len() int {
	return len(A.Elements)
}

//Formula returns the chemical formula of the asymmetric unit contents.
func (A *AsymmetricUnit) Formula() string {
	return ChemicalFormula(A.Elements)
}

func (A *AsymmetricUnit) String() string {
	return "<" + A.Formula() + ">"
}
