/*
 * asymunit_test.go, part of goxtal.
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

func elems(Te *testing.T, symbols ...string) []Element {
	Te.Helper()
	out := make([]Element, len(symbols))
	for i, s := range symbols {
		e, err := ElementFromString(s)
		if err != nil {
			Te.Fatal(err)
		}
		out[i] = e
	}
	return out
}

func TestNewAsymmetricUnit(Te *testing.T) {
	pos := mat.NewDense(3, 3, []float64{
		0.1, 0.1, 0.1,
		0.2, 0.1, 0.1,
		0.3, 0.1, 0.1,
	})
	asym, err := NewAsymmetricUnit(elems(Te, "C", "C", "O"), pos, nil, nil)
	if err != nil {
		Te.Fatal(err)
	}
	//labels are numbered per element, occupations default to full
	wantLabels := []string{"C1", "C2", "O1"}
	for i, w := range wantLabels {
		if asym.Labels[i] != w {
			Te.Errorf("label %d is %q, want %q", i, asym.Labels[i], w)
		}
		if asym.Occupations[i] != 1.0 {
			Te.Errorf("occupation %d is %g", i, asym.Occupations[i])
		}
	}
	if asym.Formula() != "C2O1" {
		Te.Errorf("formula %q", asym.Formula())
	}
}

func TestAsymmetricUnitValidation(Te *testing.T) {
	e := elems(Te, "C")
	if _, err := NewAsymmetricUnit(e, mat.NewDense(1, 3, nil), []string{"a", "b"}, nil); err == nil {
		Te.Error("mismatched label count accepted")
	}
	if _, err := NewAsymmetricUnit(e, mat.NewDense(1, 3, nil), nil, []float64{1, 1}); err == nil {
		Te.Error("mismatched occupation count accepted")
	}
	if _, err := NewAsymmetricUnit(elems(Te, "C", "C"), mat.NewDense(1, 3, nil), nil, nil); err == nil {
		Te.Error("mismatched position count accepted")
	}
}

func TestMoleculeGeometry(Te *testing.T) {
	o, _ := ElementFromString("O")
	h, _ := ElementFromString("H")
	mol := &Molecule{
		Elements:        []Element{o, h},
		Positions:       mat.NewDense(2, 3, []float64{0, 0, 0, 1, 0, 0}),
		GeneratorSymops: []int{IdentityCode, IdentityCode},
	}
	cen := mol.Centroid()
	if math.Abs(cen[0]-0.5) > 1e-12 || cen[1] != 0 || cen[2] != 0 {
		Te.Errorf("centroid %v", cen)
	}
	wantMass := o.Mass + h.Mass
	if math.Abs(mol.Mass()-wantMass) > 1e-9 {
		Te.Errorf("mass %g", mol.Mass())
	}
	//center of mass sits much closer to the oxygen
	com := mol.CenterOfMass()
	if com[0] >= cen[0] || com[0] <= 0 {
		Te.Errorf("center of mass %v", com)
	}
	if mol.IdentityFraction() != 1.0 {
		Te.Errorf("identity fraction %g", mol.IdentityFraction())
	}
	mol.GeneratorSymops[1] = IdentityCode + 1
	if mol.IdentityFraction() != 0.5 {
		Te.Errorf("identity fraction %g after changing a generator", mol.IdentityFraction())
	}
}
