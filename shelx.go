/*
 * shelx.go, part of goxtal.
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
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

//ShelxData is the parsed contents of a SHELX .res/.ins file, limited to
//the records that define a structure.
type ShelxData struct {
	Titl       string
	Wavelength float64
	Lengths    [3]float64 //Angstroms
	Angles     [3]float64 //degrees
	Latt       int
	Symm       []string //operation strings, identity not included
	Sfac       []string //element symbols, 1-based in atom records
	Atoms      []ShelxAtom
}

//ShelxAtom is one atom record of a SHELX file.
type ShelxAtom struct {
	Label      string
	Sfac       int //1-based index into the SFAC list
	Position   [3]float64
	Occupation float64
}

//Instructions that are not atom records. Anything else starting a line
//is treated as an atom label.
var shelxInstructions = map[string]bool{
	"TITL": true, "CELL": true, "ZERR": true, "LATT": true, "SYMM": true,
	"SFAC": true, "UNIT": true, "TEMP": true, "SIZE": true, "REM": true,
	"MORE": true, "TIME": true, "OMIT": true, "SHEL": true, "BASF": true,
	"TWIN": true, "EXTI": true, "SWAT": true, "MERG": true, "SPEC": true,
	"RESI": true, "MOVE": true, "ANIS": true, "AFIX": true, "HFIX": true,
	"FRAG": true, "FEND": true, "EXYZ": true, "EADP": true, "EQIV": true,
	"CONN": true, "PART": true, "BIND": true, "FREE": true, "DFIX": true,
	"DANG": true, "BUMP": true, "SAME": true, "SADI": true, "CHIV": true,
	"FLAT": true, "DELU": true, "SIMU": true, "DEFS": true, "ISOR": true,
	"NCSY": true, "SUMP": true, "BLOC": true, "DAMP": true, "STIR": true,
	"WGHT": true, "FVAR": true, "BOND": true, "CONF": true, "MPLA": true,
	"RTAB": true, "HTAB": true, "LIST": true, "ACTA": true, "WPDB": true,
	"FMAP": true, "GRID": true, "PLAN": true, "MOLE": true, "HKLF": true,
	"END": true,
}

//ParseShelxData reads the structure-defining records of SHELX file
//content: TITL, CELL, LATT, SYMM, SFAC and atom records. Refinement
//instructions are skipped. SHELX fixes parameters by adding 10, so an
//occupation field of 11.0 means a fully occupied site.
func ParseShelxData(content string) (*ShelxData, error) {
	data := &ShelxData{Latt: 1}
	haveCell := false
	for _, rawLine := range strings.Split(content, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		keyword := strings.ToUpper(fields[0])
		switch keyword {
		case "TITL":
			data.Titl = strings.TrimSpace(strings.TrimPrefix(line, fields[0]))
		case "CELL":
			if len(fields) < 8 {
				return nil, cError("ParseShelxData", "CELL needs wavelength plus six parameters, got %q", line)
			}
			vals := make([]float64, 7)
			for i := 0; i < 7; i++ {
				v, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, cError("ParseShelxData", "bad CELL value %q", fields[i+1])
				}
				vals[i] = v
			}
			data.Wavelength = vals[0]
			copy(data.Lengths[:], vals[1:4])
			copy(data.Angles[:], vals[4:7])
			haveCell = true
		case "LATT":
			if len(fields) < 2 {
				return nil, cError("ParseShelxData", "LATT without a value")
			}
			v, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, cError("ParseShelxData", "bad LATT value %q", fields[1])
			}
			data.Latt = v
		case "SYMM":
			data.Symm = append(data.Symm, strings.Join(fields[1:], ""))
		case "SFAC":
			data.Sfac = append(data.Sfac, fields[1:]...)
		case "END", "HKLF":
			//atom records cannot follow these
			return data, validateShelx(data, haveCell)
		default:
			if shelxInstructions[keyword] {
				continue
			}
			atom, err := parseShelxAtom(fields)
			if err != nil {
				return nil, errDecorate(err, "ParseShelxData")
			}
			data.Atoms = append(data.Atoms, atom)
		}
	}
	return data, validateShelx(data, haveCell)
}

func validateShelx(data *ShelxData, haveCell bool) error {
	if !haveCell {
		return cError("ParseShelxData", "no CELL record found")
	}
	if len(data.Atoms) == 0 {
		return cError("ParseShelxData", "no atom records found")
	}
	for _, a := range data.Atoms {
		if a.Sfac < 1 || a.Sfac > len(data.Sfac) {
			return cError("ParseShelxData", "atom %s references SFAC %d, but %d scattering factors are defined", a.Label, a.Sfac, len(data.Sfac))
		}
	}
	return nil
}

func parseShelxAtom(fields []string) (ShelxAtom, error) {
	if len(fields) < 5 {
		return ShelxAtom{}, cError("parseShelxAtom", "atom record %q too short", strings.Join(fields, " "))
	}
	sfac, err := strconv.Atoi(fields[1])
	if err != nil {
		return ShelxAtom{}, cError("parseShelxAtom", "atom %s has non-integer SFAC %q", fields[0], fields[1])
	}
	atom := ShelxAtom{Label: fields[0], Sfac: sfac, Occupation: 1.0}
	for k := 0; k < 3; k++ {
		v, err := strconv.ParseFloat(fields[k+2], 64)
		if err != nil {
			return ShelxAtom{}, cError("parseShelxAtom", "atom %s has bad coordinate %q", fields[0], fields[k+2])
		}
		atom.Position[k] = v
	}
	if len(fields) > 5 {
		sof, err := strconv.ParseFloat(fields[5], 64)
		if err != nil {
			return ShelxAtom{}, cError("parseShelxAtom", "atom %s has bad occupation %q", fields[0], fields[5])
		}
		//strip the "fixed parameter" offset
		if sof >= 10 {
			sof -= 10
		}
		atom.Occupation = sof
	}
	return atom, nil
}

//CrystalFromShelxData assembles a crystal from parsed SHELX records.
//The space group is identified by expanding the SYMM operations with
//the LATT code and matching against the built-in table.
func CrystalFromShelxData(data *ShelxData) (*Crystal, error) {
	elements := make([]Element, len(data.Atoms))
	labels := make([]string, len(data.Atoms))
	occupations := make([]float64, len(data.Atoms))
	positions := mat.NewDense(len(data.Atoms), 3, nil)
	for i, a := range data.Atoms {
		e, err := ElementFromString(data.Sfac[a.Sfac-1])
		if err != nil {
			return nil, errDecorate(err, "CrystalFromShelxData")
		}
		elements[i] = e
		labels[i] = a.Label
		occupations[i] = a.Occupation
		positions.SetRow(i, a.Position[:])
	}
	asym, err := NewAsymmetricUnit(elements, positions, labels, occupations)
	if err != nil {
		return nil, errDecorate(err, "CrystalFromShelxData")
	}
	symops := make([]*SymmetryOperation, len(data.Symm))
	for i, s := range data.Symm {
		if symops[i], err = ParseSymmetryOperation(s); err != nil {
			return nil, errDecorate(err, "CrystalFromShelxData")
		}
	}
	spaceGroup, err := SpaceGroupFromSymmetryOperations(symops, data.Latt)
	if err != nil {
		return nil, errDecorate(err, "CrystalFromShelxData")
	}
	unitCell, err := UnitCellFromLengthsAndAnglesDeg(data.Lengths, data.Angles)
	if err != nil {
		return nil, errDecorate(err, "CrystalFromShelxData")
	}
	return NewCrystal(unitCell, spaceGroup, asym, WithTitl(data.Titl))
}

//CrystalFromShelxString loads a crystal from SHELX .res file content.
func CrystalFromShelxString(content string) (*Crystal, error) {
	data, err := ParseShelxData(content)
	if err != nil {
		return nil, errDecorate(err, "CrystalFromShelxString")
	}
	c, err := CrystalFromShelxData(data)
	if err != nil {
		return nil, errDecorate(err, "CrystalFromShelxString")
	}
	return c, nil
}

//ToShelxData collects the crystal's contents in SHELX record form. The
//SYMM list holds the reduced operations with the identity left
//implicit, as SHELX requires.
func (C *Crystal) ToShelxData() *ShelxData {
	params := C.UnitCell.Parameters()
	data := &ShelxData{
		Titl:       C.Title(),
		Wavelength: 0.71073, //Mo K-alpha
		Lengths:    [3]float64{params[0], params[1], params[2]},
		Angles:     [3]float64{params[3], params[4], params[5]},
		Latt:       C.SpaceGroup.Latt(),
	}
	for _, s := range C.SpaceGroup.ReducedSymmetryOperations() {
		if !s.IsIdentity() {
			data.Symm = append(data.Symm, s.String())
		}
	}
	asym := C.AsymmetricUnit
	numbers := make([]int, 0, 4)
	seen := make(map[int]bool)
	for _, e := range asym.Elements {
		if !seen[e.AtomicNumber] {
			seen[e.AtomicNumber] = true
			numbers = append(numbers, e.AtomicNumber)
		}
	}
	sort.Ints(numbers)
	sfacIndex := make(map[int]int, len(numbers))
	for i, n := range numbers {
		e, _ := ElementFromAtomicNumber(n)
		data.Sfac = append(data.Sfac, e.Symbol)
		sfacIndex[n] = i + 1
	}
	for i := 0; i < asym.Len(); i++ {
		data.Atoms = append(data.Atoms, ShelxAtom{
			Label:      asym.Labels[i],
			Sfac:       sfacIndex[asym.Elements[i].AtomicNumber],
			Position:   rowVec(asym.Positions, i),
			Occupation: asym.Occupations[i],
		})
	}
	return data
}

//ToShelxString renders the crystal as a SHELX .res file.
func (C *Crystal) ToShelxString() string {
	data := C.ToShelxData()
	var b strings.Builder
	fmt.Fprintf(&b, "TITL %s\n", data.Titl)
	fmt.Fprintf(&b, "CELL %g %.6f %.6f %.6f %.6f %.6f %.6f\n",
		data.Wavelength,
		data.Lengths[0], data.Lengths[1], data.Lengths[2],
		data.Angles[0], data.Angles[1], data.Angles[2])
	fmt.Fprintf(&b, "LATT %d\n", data.Latt)
	for _, s := range data.Symm {
		fmt.Fprintf(&b, "SYMM %s\n", s)
	}
	fmt.Fprintf(&b, "SFAC %s\n", strings.Join(data.Sfac, " "))
	for _, a := range data.Atoms {
		fmt.Fprintf(&b, "%-4s %3d %12.6f %12.6f %12.6f %10.6f\n",
			a.Label, a.Sfac, a.Position[0], a.Position[1], a.Position[2],
			a.Occupation+10)
	}
	b.WriteString("END\n")
	return b.String()
}
