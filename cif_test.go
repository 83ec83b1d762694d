/*
 * cif_test.go, part of goxtal.
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
	"strings"
	"testing"
)

const testCif = `data_acetylene
_audit_creation_method           'by hand'
_symmetry_Int_Tables_number      14
_symmetry_space_group_name_H-M   'P 21/c'
_cell_length_a                   5.0
_cell_length_b                   6.0
_cell_length_c                   7.0
_cell_angle_alpha                90.0
_cell_angle_beta                 100.0(2)
_cell_angle_gamma                90.0
loop_
_symmetry_equiv_pos_site_id
_symmetry_equiv_pos_as_xyz
1 +x,+y,+z
2 -x,1/2+y,1/2-z
3 -x,-y,-z
4 +x,1/2-y,1/2+z
loop_
_atom_site_label
_atom_site_type_symbol
_atom_site_fract_x
_atom_site_fract_y
_atom_site_fract_z
_atom_site_occupancy
C1 C 0.1000(3) 0.2000 0.3000 1.0
O1 O 0.4000 0.5000 0.6000 0.5
`

func TestParseCifData(Te *testing.T) {
	data, err := ParseCifData(testCif)
	if err != nil {
		Te.Fatal(err)
	}
	if data.BlockName != "acetylene" {
		Te.Errorf("block name %q", data.BlockName)
	}
	//quotes stripped, uncertainty left for the numeric accessors
	if data.Items["audit_creation_method"] != "by hand" {
		Te.Errorf("quoted item %q", data.Items["audit_creation_method"])
	}
	beta, err := data.float("cell_angle_beta")
	if err != nil || beta != 100.0 {
		Te.Errorf("beta %g (%v): uncertainty not stripped", beta, err)
	}
	if len(data.Loops["symmetry_equiv_pos_as_xyz"]) != 4 {
		Te.Errorf("symmetry loop %v", data.Loops["symmetry_equiv_pos_as_xyz"])
	}
	if len(data.Loops["atom_site_label"]) != 2 {
		Te.Errorf("atom loop %v", data.Loops["atom_site_label"])
	}
	if _, err := ParseCifData("_orphan_item 1\n"); err == nil {
		Te.Error("content without a data_ block accepted")
	}
	if _, err := ParseCifData("data_x\nloop_\n_a\n_b\n1\n"); err == nil {
		Te.Error("ragged loop row accepted")
	}
}

func TestCrystalFromCif(Te *testing.T) {
	c, err := CrystalFromCifString(testCif)
	if err != nil {
		Te.Fatal(err)
	}
	if c.SpaceGroup.Number != 14 || c.SpaceGroup.NumSymmetryOperations() != 4 {
		Te.Errorf("space group %d with %d operations", c.SpaceGroup.Number, c.SpaceGroup.NumSymmetryOperations())
	}
	if c.Title() != "acetylene" {
		Te.Errorf("title %q", c.Title())
	}
	asym := c.AsymmetricUnit
	if asym.Len() != 2 || asym.Labels[0] != "C1" {
		Te.Fatalf("asymmetric unit %s, labels %v", asym.Formula(), asym.Labels)
	}
	if math.Abs(asym.Positions.At(0, 0)-0.1) > 1e-12 {
		Te.Errorf("x of C1 is %g: uncertainty not stripped", asym.Positions.At(0, 0))
	}
	if asym.Occupations[1] != 0.5 {
		Te.Errorf("occupancy %g", asym.Occupations[1])
	}
	if math.Abs(c.UnitCell.BetaDeg()-100.0) > 1e-9 {
		Te.Errorf("beta %g", c.UnitCell.BetaDeg())
	}
}

func TestCifRoundTrip(Te *testing.T) {
	orig, err := CrystalFromCifString(testCif)
	if err != nil {
		Te.Fatal(err)
	}
	out := orig.ToCifString()
	if !strings.HasPrefix(out, "data_acetylene\n") {
		Te.Errorf("output header:\n%s", out)
	}
	back, err := CrystalFromCifString(out)
	if err != nil {
		Te.Fatalf("reparsing own output: %v\n%s", err, out)
	}
	if back.SpaceGroup.Number != 14 {
		Te.Errorf("space group became %d", back.SpaceGroup.Number)
	}
	origP, backP := orig.UnitCell.Parameters(), back.UnitCell.Parameters()
	for i := range origP {
		if math.Abs(origP[i]-backP[i]) > 1e-9 {
			Te.Errorf("cell parameter %d: %g -> %g", i, origP[i], backP[i])
		}
	}
	for i := 0; i < orig.AsymmetricUnit.Len(); i++ {
		for k := 0; k < 3; k++ {
			if math.Abs(back.AsymmetricUnit.Positions.At(i, k)-orig.AsymmetricUnit.Positions.At(i, k)) > 1e-9 {
				Te.Errorf("position drift on atom %d", i)
			}
		}
	}
}

func TestNonStandardCifSetting(Te *testing.T) {
	//an operation list matching no tabulated setting still loads, with
	//the operations used as given
	content := `data_odd
_symmetry_space_group_name_H-M 'X 1'
_cell_length_a 5.0
_cell_length_b 5.0
_cell_length_c 5.0
_cell_angle_alpha 90.0
_cell_angle_beta 90.0
_cell_angle_gamma 90.0
loop_
_symmetry_equiv_pos_as_xyz
+x,+y,+z
1/2+x,+y,+z
loop_
_atom_site_label
_atom_site_fract_x
_atom_site_fract_y
_atom_site_fract_z
C1 0.1 0.1 0.1
`
	c, err := CrystalFromCifString(content)
	if err != nil {
		Te.Fatal(err)
	}
	if c.SpaceGroup.Symbol != "X 1" {
		Te.Errorf("symbol %q", c.SpaceGroup.Symbol)
	}
	if c.SpaceGroup.NumSymmetryOperations() != 2 {
		Te.Errorf("%d operations", c.SpaceGroup.NumSymmetryOperations())
	}
	//the listed operations drive site generation as usual
	if n := c.UnitCellAtoms().Len(); n != 2 {
		Te.Errorf("%d unit cell sites", n)
	}
}
