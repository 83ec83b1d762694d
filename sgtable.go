/*
 * sgtable.go, part of goxtal.
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

//The built-in space group reference table. Each entry carries a reduced
//generator list; the full general positions are produced at startup by
//ExpandedSymmetryList with the entry's LATT value, so the stored data
//stays small and the two directions of the expansion cannot drift apart.
//The table covers the settings most common in small-molecule structures;
//numbers missing from it are reported as such by SpaceGroupFromNumber.

type sgEntry struct {
	number          int
	short           string
	full            string
	schoenflies     string
	pointgroup      string
	choice          string
	centering       Centering
	centrosymmetric bool
	reduced         []string
	fullSymops      []*SymmetryOperation
}

var sgEntries = []*sgEntry{
	{number: 1, short: "P 1", full: "P 1", schoenflies: "C1^1", pointgroup: "1",
		centering: Primitive,
		reduced:   []string{"x,y,z"}},
	{number: 2, short: "P -1", full: "P -1", schoenflies: "Ci^1", pointgroup: "-1",
		centering: Primitive, centrosymmetric: true,
		reduced: []string{"x,y,z"}},
	{number: 3, short: "P 2", full: "P 1 2 1", schoenflies: "C2^1", pointgroup: "2",
		choice: "b", centering: Primitive,
		reduced: []string{"x,y,z", "-x,y,-z"}},
	{number: 4, short: "P 21", full: "P 1 21 1", schoenflies: "C2^2", pointgroup: "2",
		choice: "b", centering: Primitive,
		reduced: []string{"x,y,z", "-x,1/2+y,-z"}},
	{number: 5, short: "C 2", full: "C 1 2 1", schoenflies: "C2^3", pointgroup: "2",
		choice: "b", centering: CCentered,
		reduced: []string{"x,y,z", "-x,y,-z"}},
	{number: 7, short: "P c", full: "P 1 c 1", schoenflies: "Cs^2", pointgroup: "m",
		choice: "b", centering: Primitive,
		reduced: []string{"x,y,z", "x,-y,1/2+z"}},
	{number: 9, short: "C c", full: "C 1 c 1", schoenflies: "Cs^4", pointgroup: "m",
		choice: "b", centering: CCentered,
		reduced: []string{"x,y,z", "x,-y,1/2+z"}},
	{number: 12, short: "C 2/m", full: "C 1 2/m 1", schoenflies: "C2h^3", pointgroup: "2/m",
		choice: "b", centering: CCentered, centrosymmetric: true,
		reduced: []string{"x,y,z", "-x,y,-z"}},
	{number: 14, short: "P 21/c", full: "P 1 21/c 1", schoenflies: "C2h^5", pointgroup: "2/m",
		choice: "b", centering: Primitive, centrosymmetric: true,
		reduced: []string{"x,y,z", "-x,1/2+y,1/2-z"}},
	{number: 15, short: "C 2/c", full: "C 1 2/c 1", schoenflies: "C2h^6", pointgroup: "2/m",
		choice: "b", centering: CCentered, centrosymmetric: true,
		reduced: []string{"x,y,z", "-x,y,1/2-z"}},
	{number: 19, short: "P 21 21 21", full: "P 21 21 21", schoenflies: "D2^4", pointgroup: "222",
		centering: Primitive,
		reduced: []string{"x,y,z", "1/2-x,-y,1/2+z", "-x,1/2+y,1/2-z", "1/2+x,1/2-y,-z"}},
	{number: 22, short: "F 2 2 2", full: "F 2 2 2", schoenflies: "D2^7", pointgroup: "222",
		centering: FaceCentered,
		reduced: []string{"x,y,z", "-x,-y,z", "-x,y,-z", "x,-y,-z"}},
	{number: 23, short: "I 2 2 2", full: "I 2 2 2", schoenflies: "D2^8", pointgroup: "222",
		centering: BodyCentered,
		reduced: []string{"x,y,z", "-x,-y,z", "-x,y,-z", "x,-y,-z"}},
	{number: 33, short: "P n a 21", full: "P n a 21", schoenflies: "C2v^9", pointgroup: "mm2",
		centering: Primitive,
		reduced: []string{"x,y,z", "-x,-y,1/2+z", "1/2+x,1/2-y,z", "1/2-x,1/2+y,1/2+z"}},
	{number: 38, short: "A m m 2", full: "A m m 2", schoenflies: "C2v^14", pointgroup: "mm2",
		centering: ACentered,
		reduced: []string{"x,y,z", "-x,-y,z", "x,-y,z", "-x,y,z"}},
	{number: 61, short: "P b c a", full: "P b c a", schoenflies: "D2h^15", pointgroup: "mmm",
		centering: Primitive, centrosymmetric: true,
		reduced: []string{"x,y,z", "1/2-x,-y,1/2+z", "-x,1/2+y,1/2-z", "1/2+x,1/2-y,-z"}},
	{number: 62, short: "P n m a", full: "P n m a", schoenflies: "D2h^16", pointgroup: "mmm",
		centering: Primitive, centrosymmetric: true,
		reduced: []string{"x,y,z", "1/2-x,-y,1/2+z", "-x,1/2+y,-z", "1/2+x,1/2-y,1/2-z"}},
	{number: 71, short: "I m m m", full: "I 2/m 2/m 2/m", schoenflies: "D2h^25", pointgroup: "mmm",
		centering: BodyCentered, centrosymmetric: true,
		reduced: []string{"x,y,z", "-x,-y,z", "-x,y,-z", "x,-y,-z"}},
	{number: 75, short: "P 4", full: "P 4", schoenflies: "C4^1", pointgroup: "4",
		centering: Primitive,
		reduced: []string{"x,y,z", "-x,-y,z", "-y,x,z", "y,-x,z"}},
	{number: 143, short: "P 3", full: "P 3", schoenflies: "C3^1", pointgroup: "3",
		centering: Primitive,
		reduced: []string{"x,y,z", "-y,x-y,z", "y-x,-x,z"}},
	{number: 146, short: "R 3", full: "R 3", schoenflies: "C3^4", pointgroup: "3",
		choice: "H", centering: RCentered,
		reduced: []string{"x,y,z", "-y,x-y,z", "y-x,-x,z"}},
	{number: 146, short: "R 3", full: "R 3", schoenflies: "C3^4", pointgroup: "3",
		choice: "R", centering: Primitive,
		reduced: []string{"x,y,z", "z,x,y", "y,z,x"}},
	{number: 147, short: "P -3", full: "P -3", schoenflies: "C3i^1", pointgroup: "-3",
		centering: Primitive, centrosymmetric: true,
		reduced: []string{"x,y,z", "-y,x-y,z", "y-x,-x,z"}},
	{number: 148, short: "R -3", full: "R -3", schoenflies: "C3i^2", pointgroup: "-3",
		choice: "H", centering: RCentered, centrosymmetric: true,
		reduced: []string{"x,y,z", "-y,x-y,z", "y-x,-x,z"}},
	{number: 148, short: "R -3", full: "R -3", schoenflies: "C3i^2", pointgroup: "-3",
		choice: "R", centering: Primitive, centrosymmetric: true,
		reduced: []string{"x,y,z", "z,x,y", "y,z,x"}},
	{number: 168, short: "P 6", full: "P 6", schoenflies: "C6^1", pointgroup: "6",
		centering: Primitive,
		reduced: []string{"x,y,z", "-y,x-y,z", "y-x,-x,z", "-x,-y,z", "y,y-x,z", "x-y,x,z"}},
}

var (
	sgByNumber    = make(map[int][]*sgEntry)
	sgBySignature = make(map[string]*sgEntry)
)

func init() {
	for _, e := range sgEntries {
		ops := make([]*SymmetryOperation, len(e.reduced))
		for i, s := range e.reduced {
			ops[i] = mustParseSymop(s)
		}
		latt := centeringLatt[e.centering]
		if !e.centrosymmetric {
			latt = -latt
		}
		full, err := ExpandedSymmetryList(ops, latt)
		if err != nil {
			panic(err)
		}
		e.fullSymops = full
		sgByNumber[e.number] = append(sgByNumber[e.number], e)
		sgBySignature[symopsSignature(full)] = e
	}
}
