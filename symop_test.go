/*
 * symop_test.go, part of goxtal.
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

func TestIdentityCode(Te *testing.T) {
	id := Identity()
	if id.IntegerCode() != IdentityCode {
		Te.Errorf("identity encodes to %d, want %d", id.IntegerCode(), IdentityCode)
	}
	if !id.IsIdentity() {
		Te.Error("identity does not report IsIdentity")
	}
	if id.String() != "+x,+y,+z" {
		Te.Errorf("identity renders as %q", id.String())
	}
	parsed, err := ParseSymmetryOperation("x, y, z")
	if err != nil {
		Te.Fatal(err)
	}
	if parsed.IntegerCode() != IdentityCode {
		Te.Errorf("parsed x,y,z encodes to %d, want %d", parsed.IntegerCode(), IdentityCode)
	}
}

func TestSymopRoundTrip(Te *testing.T) {
	//A mix of translations, inversions and the axis permutations of
	//trigonal and hexagonal settings.
	strs := []string{
		"1/2+x,1/2+y,1/2+z",
		"-x,-y,-z",
		"1/2-x,1/2+y,-z",
		"-y,x-y,z",
		"2/3+x,1/3+y,1/3+z",
		"x,-y,1/2+z",
		"3/4+y,1/4+x,1/4-z",
	}
	for _, s := range strs {
		op, err := ParseSymmetryOperation(s)
		if err != nil {
			Te.Fatalf("%q: %v", s, err)
		}
		back, err := SymmetryOperationFromCode(op.IntegerCode())
		if err != nil {
			Te.Fatalf("%q: %v", s, err)
		}
		if back.IntegerCode() != op.IntegerCode() {
			Te.Errorf("%q: code changed on decode, %d vs %d", s, op.IntegerCode(), back.IntegerCode())
		}
		reparsed, err := ParseSymmetryOperation(op.String())
		if err != nil {
			Te.Fatalf("%q rendered as unparseable %q: %v", s, op.String(), err)
		}
		if reparsed.IntegerCode() != op.IntegerCode() {
			Te.Errorf("%q: string round trip changed the operation to %q", s, reparsed.String())
		}
	}
}

func TestSymopParseForms(Te *testing.T) {
	//Decimal translations, stray spaces and redundant signs must all
	//normalize to the same operation.
	want := mustParseSymop("1/4+x,y,3/4-z")
	equivalent := []string{
		"0.25+x, y, 0.75-z",
		"x+1/4,+y,-z+3/4",
		"X+0.25,Y,0.75-Z",
		"x+0.25,y,-z-0.25",
	}
	for _, s := range equivalent {
		op, err := ParseSymmetryOperation(s)
		if err != nil {
			Te.Fatalf("%q: %v", s, err)
		}
		if op.IntegerCode() != want.IntegerCode() {
			Te.Errorf("%q parsed as %q, want %q", s, op.String(), want.String())
		}
	}
}

func TestSymopParseErrors(Te *testing.T) {
	bad := []string{
		"x,y",          //too few rows
		"x,y,z,w",      //too many rows
		"x,y,q",        //unknown symbol
		"x,y,z+1/5",    //not a valid twelfth
		"x,y,z+0.21",   //not close to any twelfth
		"x,y,1/0+z",    //zero denominator
		"",             //nothing at all
	}
	for _, s := range bad {
		if _, err := ParseSymmetryOperation(s); err == nil {
			Te.Errorf("%q parsed without error", s)
		}
	}
	if _, err := SymmetryOperationFromCode(-1); err == nil {
		Te.Error("negative code accepted")
	}
	if _, err := SymmetryOperationFromCode(maxSymopCode); err == nil {
		Te.Error("out of range code accepted")
	}
	if _, err := NewSymmetryOperation([3][3]int{{2, 0, 0}, {0, 1, 0}, {0, 0, 1}}, [3]float64{0, 0, 0}); err == nil {
		Te.Error("rotation entry 2 accepted")
	}
}

func TestSymopInverted(Te *testing.T) {
	op := mustParseSymop("1/2+x,1/2-y,z")
	inv := op.Inverted()
	if inv.String() != "1/2-x,1/2+y,-z" {
		Te.Errorf("inverted operation is %q", inv.String())
	}
	if inv.Inverted().IntegerCode() != op.IntegerCode() {
		Te.Error("double inversion did not restore the operation")
	}
	if Identity().Inverted().String() != "-x,-y,-z" {
		Te.Errorf("inverted identity is %q", Identity().Inverted().String())
	}
}

func TestSymopAddSub(Te *testing.T) {
	op := mustParseSymop("x,y,z")
	moved, err := op.Add([3]float64{0.5, 0.5, 0.5})
	if err != nil {
		Te.Fatal(err)
	}
	if moved.String() != "1/2+x,1/2+y,1/2+z" {
		Te.Errorf("body centering shift gave %q", moved.String())
	}
	back, err := moved.Sub([3]float64{0.5, 0.5, 0.5})
	if err != nil {
		Te.Fatal(err)
	}
	if back.IntegerCode() != op.IntegerCode() {
		Te.Error("Add followed by Sub did not restore the operation")
	}
	if _, err := op.Add([3]float64{0.2, 0, 0}); err == nil {
		Te.Error("invalid shift accepted")
	}
}

func TestSymopApply(Te *testing.T) {
	op := mustParseSymop("1/2-x,y,1/2+z")
	pos := mat.NewDense(2, 3, []float64{
		0.1, 0.2, 0.3,
		0.0, 0.5, 0.9,
	})
	got := op.Apply(pos)
	want := [][3]float64{
		{0.4, 0.2, 0.8},
		{0.5, 0.5, 1.4}, //no wrapping on Apply
	}
	for i, w := range want {
		for k := 0; k < 3; k++ {
			if math.Abs(got.At(i, k)-w[k]) > 1e-12 {
				Te.Errorf("row %d component %d: got %g want %g", i, k, got.At(i, k), w[k])
			}
		}
	}
}

func TestSeitzMatrix(Te *testing.T) {
	op := mustParseSymop("1/2+x,-y,z")
	m := op.SeitzMatrix()
	r, c := m.Dims()
	if r != 4 || c != 4 {
		Te.Fatalf("Seitz matrix is %dx%d", r, c)
	}
	if m.At(0, 3) != 0.5 || m.At(1, 1) != -1 || m.At(3, 3) != 1 || m.At(3, 0) != 0 {
		Te.Error("Seitz matrix has wrong entries")
	}
}
