/*
 * spacegroup.go, part of goxtal.
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
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/mat"
)

//Centering identifies the lattice centering of a space group setting.
type Centering string

const (
	Primitive    Centering = "primitive" //P
	BodyCentered Centering = "body"      //I
	RCentered    Centering = "rcenter"   //R, obverse on hexagonal axes
	FaceCentered Centering = "face"      //F
	ACentered    Centering = "aface"     //A
	BCentered    Centering = "bface"     //B
	CCentered    Centering = "cface"     //C
)

var centeringLatt = map[Centering]int{
	Primitive:    1,
	BodyCentered: 2,
	RCentered:    3,
	FaceCentered: 4,
	ACentered:    5,
	BCentered:    6,
	CCentered:    7,
}

//The additional translations implied by each lattice type, indexed by
//the absolute SHELX LATT value, as duodecimal numerators.
var latticeTranslations = [8][][3]int{
	1: {},
	2: {{6, 6, 6}},
	3: {{8, 4, 4}, {4, 8, 8}},
	4: {{0, 6, 6}, {6, 0, 6}, {6, 6, 0}},
	5: {{0, 6, 6}},
	6: {{6, 0, 6}},
	7: {{6, 6, 0}},
}

//ExpandedSymmetryList generates the full general position list of a space
//group from a reduced set of operations, using the SHELX LATT convention:
//1=P, 2=I, 3=rhombohedral obverse on hexagonal axes, 4=F, 5=A, 6=B, 7=C,
//with a positive value meaning the group is centrosymmetric. The identity
//is appended if missing; each operation is followed by its centering
//images, and for centrosymmetric lattices the inverted image of every
//operation is appended at the end.
func ExpandedSymmetryList(reduced []*SymmetryOperation, latticeType int) ([]*SymmetryOperation, error) {
	if latticeType == 0 || latticeType < -7 || latticeType > 7 {
		return nil, cError("ExpandedSymmetryList", "lattice type %d outside [-7,7] or zero", latticeType)
	}
	translations := latticeTranslations[abs(latticeType)]
	symops := make([]*SymmetryOperation, len(reduced))
	copy(symops, reduced)
	if !containsCode(symops, IdentityCode) {
		logger.Debugf("Identity not in the reduced operation list, appending it")
		symops = append(symops, Identity())
	}
	full := make([]*SymmetryOperation, 0, len(symops)*(len(translations)+1)*2)
	for _, s := range symops {
		full = append(full, s)
		for _, t := range translations {
			full = append(full, s.addTwelfths(t))
		}
	}
	if latticeType > 0 {
		n := len(full)
		for i := 0; i < n; i++ {
			full = append(full, full[i].Inverted())
		}
	}
	return full, nil
}

///ReducedSymmetryList is the inverse of ExpandedSymmetryList: it strips
//from a full general position list every operation derivable from an
//earlier one through the lattice centering translations and, for
//centrosymmetric lattices, inversion. Candidates are considered in
//ascending integer-code order, so the result is deterministic for any
//input ordering. The identity always comes first.
func ReducedSymmetryList(full []*SymmetryOperation, latticeType int) ([]*SymmetryOperation, error) {
	if latticeType == 0 || latticeType < -7 || latticeType > 7 {
		return nil, cError("ReducedSymmetryList", "lattice type %d outside [-7,7] or zero", latticeType)
	}
	translations := latticeTranslations[abs(latticeType)]
	inversion := latticeType > 0

	candidates := make([]*SymmetryOperation, len(full))
	copy(candidates, full)
	slices.SortFunc(candidates, func(a, b *SymmetryOperation) int {
		return a.code - b.code
	})

	reduced := []*SymmetryOperation{Identity()}
	kept := map[int]bool{IdentityCode: true}
	for _, next := range candidates {
		if kept[next.code] {
			continue
		}
		if inversion && kept[next.Inverted().code] {
			continue
		}
		derivable := false
		for _, t := range translations {
			x := next.addTwelfths(t)
			if kept[x.code] || (inversion && kept[x.Inverted().code]) {
				derivable = true
				break
			}
		}
		if derivable {
			continue
		}
		reduced = append(reduced, next)
		kept[next.code] = true
	}
	return reduced, nil
}

func containsCode(ops []*SymmetryOperation, code int) bool {
	for _, s := range ops {
		if s.code == code {
			return true
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

//symopsSignature is the canonical form of an operation set: the sorted,
//deduplicated integer codes. Two settings are the same space group in
//the same setting iff their signatures match.
func symopsSignature(ops []*SymmetryOperation) string {
	codes := make([]int, 0, len(ops))
	seen := make(map[int]bool, len(ops))
	for _, s := range ops {
		if !seen[s.code] {
			seen[s.code] = true
			codes = append(codes, s.code)
		}
	}
	slices.Sort(codes)
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ",")
}

//SpaceGroup is one setting of one of the 230 crystallographic space
//groups: its international tables number and symbols, lattice centering,
//and the full list of general position operations.
type SpaceGroup struct {
	Number          int
	Symbol          string
	FullSymbol      string
	Schoenflies     string
	PointGroup      string
	Choice          string
	Centering       Centering
	Centrosymmetric bool
	symops          []*SymmetryOperation
}

func spaceGroupFromEntry(e *sgEntry) *SpaceGroup {
	return &SpaceGroup{
		Number:          e.number,
		Symbol:          e.short,
		FullSymbol:      e.full,
		Schoenflies:     e.schoenflies,
		PointGroup:      e.pointgroup,
		Choice:          e.choice,
		Centering:       e.centering,
		Centrosymmetric: e.centrosymmetric,
		symops:          e.fullSymops,
	}
}

//SpaceGroupFromNumber returns the space group with the given
//international tables number, in the named setting choice. An empty
//choice selects the default setting of that number.
func SpaceGroupFromNumber(number int, choice string) (*SpaceGroup, error) {
	if number < 1 || number > 230 {
		return nil, cError("SpaceGroupFromNumber", "space group number must be between [1, 230], got %d", number)
	}
	entries, ok := sgByNumber[number]
	if !ok {
		return nil, cError("SpaceGroupFromNumber", "space group %d is valid but its settings are not in the built-in table", number)
	}
	if choice == "" {
		return spaceGroupFromEntry(entries[0]), nil
	}
	for _, e := range entries {
		if e.choice == choice {
			return spaceGroupFromEntry(e), nil
		}
	}
	return nil, cError("SpaceGroupFromNumber", "could not find choice %q for space group %d", choice, number)
}

//SpaceGroupFromSymbol returns the space group whose short or full
//Hermann-Mauguin symbol matches the argument, ignoring spaces.
func SpaceGroupFromSymbol(symbol string) (*SpaceGroup, error) {
	want := strings.ReplaceAll(symbol, " ", "")
	for _, entries := range sgByNumber {
		for _, e := range entries {
			if strings.ReplaceAll(e.short, " ", "") == want || strings.ReplaceAll(e.full, " ", "") == want {
				return spaceGroupFromEntry(e), nil
			}
		}
	}
	return nil, cError("SpaceGroupFromSymbol", "no space group with symbol %q in the built-in table", symbol)
}

//SpaceGroupFromSymmetryOperations identifies the space group setting
//whose general positions are exactly the given operations. If expandLatt
//is nonzero the operations are first treated as a reduced list and
//expanded with that lattice type; zero means the list is already full.
func SpaceGroupFromSymmetryOperations(symops []*SymmetryOperation, expandLatt int) (*SpaceGroup, error) {
	ops := symops
	if expandLatt != 0 {
		var err error
		ops, err = ExpandedSymmetryList(symops, expandLatt)
		if err != nil {
			return nil, errDecorate(err, "SpaceGroupFromSymmetryOperations")
		}
	}
	e, ok := sgBySignature[symopsSignature(ops)]
	if !ok {
		strs := make([]string, len(ops))
		for i, s := range ops {
			strs[i] = s.String()
		}
		slices.Sort(strs)
		return nil, cError("SpaceGroupFromSymmetryOperations",
			"could not find matching spacegroup for the following symops:\n%s", strings.Join(strs, "\n"))
	}
	return spaceGroupFromEntry(e), nil
}

//SymmetryOperations returns a copy of the full general position list.
func (SG *SpaceGroup) SymmetryOperations() []*SymmetryOperation {
	ops := make([]*SymmetryOperation, len(SG.symops))
	copy(ops, SG.symops)
	return ops
}

//NumSymmetryOperations is the multiplicity of the general position.
func (SG *SpaceGroup) NumSymmetryOperations() int {
	return len(SG.symops)
}

//Latt returns the SHELX LATT code of the setting: the lattice type 1-7,
//positive for centrosymmetric groups, negative otherwise.
func (SG *SpaceGroup) Latt() int {
	l := centeringLatt[SG.Centering]
	if !SG.Centrosymmetric {
		return -l
	}
	return l
}

//CrystalSystem returns the crystal system the group number belongs to.
func (SG *SpaceGroup) CrystalSystem() string {
	sg := SG.Number
	switch {
	case sg <= 2:
		return "triclinic"
	case sg <= 16:
		return "monoclinic"
	case sg <= 74:
		return "orthorhombic"
	case sg <= 142:
		return "tetragonal"
	case sg <= 167:
		return "trigonal"
	case sg <= 194:
		return "hexagonal"
	default:
		return "cubic"
	}
}

//LatticeType distinguishes, within the trigonal system, the hexagonal
//and rhombohedral lattices by setting choice. For every other system it
//coincides with CrystalSystem.
func (SG *SpaceGroup) LatticeType() string {
	n := SG.Number
	if n < 143 || n > 194 {
		return SG.CrystalSystem()
	}
	switch n {
	case 146, 148, 155, 160, 161, 166, 167:
		if SG.Choice == "R" {
			return "rhombohedral"
		}
		return "hexagonal"
	default:
		return "hexagonal"
	}
}

//OrderedSymmetryOperations returns the general positions with the
//identity moved to the front.
func (SG *SpaceGroup) OrderedSymmetryOperations() []*SymmetryOperation {
	unity := -1
	for i, s := range SG.symops {
		if s.IsIdentity() {
			unity = i
			break
		}
	}
	if unity < 0 {
		return SG.SymmetryOperations()
	}
	ops := make([]*SymmetryOperation, 0, len(SG.symops))
	ops = append(ops, SG.symops[unity])
	ops = append(ops, SG.symops[:unity]...)
	ops = append(ops, SG.symops[unity+1:]...)
	return ops
}

//ReducedSymmetryOperations strips the general positions down to a
//minimal set from which ExpandedSymmetryList with this setting's Latt
//regenerates the group.
func (SG *SpaceGroup) ReducedSymmetryOperations() []*SymmetryOperation {
	reduced, _ := ReducedSymmetryList(SG.symops, SG.Latt()) //Latt is never 0
	return reduced
}

//ApplyAllSymops transforms the given (N,3) fractional coordinates by
//every operation of the group, identity first, yielding a coordinate set
//subject only to translational symmetry. The first return value holds,
//per output row, the integer code of the operation that generated it.
func (SG *SpaceGroup) ApplyAllSymops(coordinates *mat.Dense) ([]int, *mat.Dense) {
	nsites, _ := coordinates.Dims()
	ops := SG.OrderedSymmetryOperations()
	transformed := mat.NewDense(nsites*len(ops), 3, nil)
	generator := make([]int, nsites*len(ops))
	for i, s := range ops {
		block := s.Apply(coordinates)
		for r := 0; r < nsites; r++ {
			transformed.SetRow(i*nsites+r, block.RawRowView(r))
			generator[i*nsites+r] = s.code
		}
	}
	return generator, transformed
}

//CIFSection renders the group's operations the way they appear in the
//_symmetry_equiv_pos loop of a CIF file.
func (SG *SpaceGroup) CIFSection() string {
	lines := make([]string, len(SG.symops))
	for i, s := range SG.symops {
		lines[i] = fmt.Sprintf("%d %s", i+1, s.String())
	}
	return strings.Join(lines, "\n")
}

func (SG *SpaceGroup) String() string {
	return fmt.Sprintf("SpaceGroup %d: %s", SG.Number, SG.Symbol)
}
