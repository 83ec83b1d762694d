/*
 * element.go, part of goxtal.
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
	"regexp"
	"sort"
	"strconv"
	"strings"
)

//Element holds the per-species constants used by the bonding and mass
//calculations: covalent and van der Waals radii in Angstroms, and the
//standard atomic mass.
type Element struct {
	AtomicNumber int
	Name         string
	Symbol       string
	Cov          float64
	Vdw          float64
	Mass         float64
}

//elementData is indexed by atomic number minus one. Radii follow the
//values used by typical small-molecule structure refinement programs.
var elementData = []Element{
	{1, "hydrogen", "H", 0.23, 1.09, 1.00794},
	{2, "helium", "He", 1.50, 1.40, 4.002602},
	{3, "lithium", "Li", 1.28, 1.82, 6.941},
	{4, "beryllium", "Be", 0.96, 2.00, 9.012182},
	{5, "boron", "B", 0.83, 2.00, 10.811},
	{6, "carbon", "C", 0.68, 1.70, 12.0107},
	{7, "nitrogen", "N", 0.68, 1.55, 14.0067},
	{8, "oxygen", "O", 0.68, 1.52, 15.9994},
	{9, "fluorine", "F", 0.64, 1.47, 18.998403},
	{10, "neon", "Ne", 1.50, 1.54, 20.1797},
	{11, "sodium", "Na", 1.66, 2.27, 22.98977},
	{12, "magnesium", "Mg", 1.41, 1.73, 24.305},
	{13, "aluminium", "Al", 1.21, 2.00, 26.981538},
	{14, "silicon", "Si", 1.20, 2.10, 28.0855},
	{15, "phosphorus", "P", 1.05, 1.80, 30.973761},
	{16, "sulfur", "S", 1.02, 1.80, 32.065},
	{17, "chlorine", "Cl", 0.99, 1.75, 35.453},
	{18, "argon", "Ar", 1.51, 1.88, 39.948},
	{19, "potassium", "K", 2.03, 2.75, 39.0983},
	{20, "calcium", "Ca", 1.76, 2.00, 40.078},
	{21, "scandium", "Sc", 1.70, 2.00, 44.95591},
	{22, "titanium", "Ti", 1.60, 2.00, 47.867},
	{23, "vanadium", "V", 1.53, 2.00, 50.9415},
	{24, "chromium", "Cr", 1.39, 2.00, 51.9961},
	{25, "manganese", "Mn", 1.61, 2.00, 54.938049},
	{26, "iron", "Fe", 1.52, 2.00, 55.845},
	{27, "cobalt", "Co", 1.26, 2.00, 58.9332},
	{28, "nickel", "Ni", 1.24, 1.63, 58.6934},
	{29, "copper", "Cu", 1.32, 1.40, 63.546},
	{30, "zinc", "Zn", 1.22, 1.39, 65.409},
	{31, "gallium", "Ga", 1.22, 1.87, 69.723},
	{32, "germanium", "Ge", 1.17, 2.00, 72.64},
	{33, "arsenic", "As", 1.21, 1.85, 74.9216},
	{34, "selenium", "Se", 1.22, 1.90, 78.96},
	{35, "bromine", "Br", 1.21, 1.85, 79.904},
	{36, "krypton", "Kr", 1.50, 2.02, 83.798},
	{37, "rubidium", "Rb", 2.20, 2.00, 85.4678},
	{38, "strontium", "Sr", 1.95, 2.00, 87.62},
	{39, "yttrium", "Y", 1.90, 2.00, 88.90585},
	{40, "zirconium", "Zr", 1.75, 2.00, 91.224},
	{41, "niobium", "Nb", 1.64, 2.00, 92.90638},
	{42, "molybdenum", "Mo", 1.54, 2.00, 95.94},
	{43, "technetium", "Tc", 1.47, 2.00, 98.0},
	{44, "ruthenium", "Ru", 1.46, 2.00, 101.07},
	{45, "rhodium", "Rh", 1.45, 2.00, 102.9055},
	{46, "palladium", "Pd", 1.39, 1.63, 106.42},
	{47, "silver", "Ag", 1.45, 1.72, 107.8682},
	{48, "cadmium", "Cd", 1.44, 1.58, 112.411},
	{49, "indium", "In", 1.42, 1.93, 114.818},
	{50, "tin", "Sn", 1.39, 2.17, 118.71},
	{51, "antimony", "Sb", 1.39, 2.00, 121.76},
	{52, "tellurium", "Te", 1.47, 2.06, 127.6},
	{53, "iodine", "I", 1.40, 1.98, 126.90447},
	{54, "xenon", "Xe", 1.50, 2.16, 131.293},
	{55, "caesium", "Cs", 2.44, 2.00, 132.90545},
	{56, "barium", "Ba", 2.15, 2.00, 137.327},
	{57, "lanthanum", "La", 2.07, 2.00, 138.9055},
	{58, "cerium", "Ce", 2.04, 2.00, 140.116},
	{59, "praseodymium", "Pr", 2.03, 2.00, 140.90765},
	{60, "neodymium", "Nd", 2.01, 2.00, 144.24},
	{61, "promethium", "Pm", 1.99, 2.00, 145.0},
	{62, "samarium", "Sm", 1.98, 2.00, 150.36},
	{63, "europium", "Eu", 1.98, 2.00, 151.964},
	{64, "gadolinium", "Gd", 1.96, 2.00, 157.25},
	{65, "terbium", "Tb", 1.94, 2.00, 158.92534},
	{66, "dysprosium", "Dy", 1.92, 2.00, 162.5},
	{67, "holmium", "Ho", 1.92, 2.00, 164.93032},
	{68, "erbium", "Er", 1.89, 2.00, 167.259},
	{69, "thulium", "Tm", 1.90, 2.00, 168.93421},
	{70, "ytterbium", "Yb", 1.87, 2.00, 173.04},
	{71, "lutetium", "Lu", 1.87, 2.00, 174.967},
	{72, "hafnium", "Hf", 1.75, 2.00, 178.49},
	{73, "tantalum", "Ta", 1.70, 2.00, 180.9479},
	{74, "tungsten", "W", 1.62, 2.00, 183.84},
	{75, "rhenium", "Re", 1.51, 2.00, 186.207},
	{76, "osmium", "Os", 1.44, 2.00, 190.23},
	{77, "iridium", "Ir", 1.41, 2.00, 192.217},
	{78, "platinum", "Pt", 1.36, 1.72, 195.078},
	{79, "gold", "Au", 1.50, 1.66, 196.96655},
	{80, "mercury", "Hg", 1.32, 1.55, 200.59},
	{81, "thallium", "Tl", 1.45, 1.96, 204.3833},
	{82, "lead", "Pb", 1.46, 2.02, 207.2},
	{83, "bismuth", "Bi", 1.48, 2.00, 208.98038},
	{84, "polonium", "Po", 1.40, 2.00, 290.0},
	{85, "astatine", "At", 1.21, 2.00, 210.0},
	{86, "radon", "Rn", 1.50, 2.00, 222.0},
	{87, "francium", "Fr", 2.60, 2.00, 223.0},
	{88, "radium", "Ra", 2.21, 2.00, 226.0},
	{89, "actinium", "Ac", 2.15, 2.00, 227.0},
	{90, "thorium", "Th", 2.06, 2.00, 232.0381},
	{91, "protactinium", "Pa", 2.00, 2.00, 231.03588},
	{92, "uranium", "U", 1.96, 1.86, 238.02891},
	{93, "neptunium", "Np", 1.90, 2.00, 237.0},
	{94, "plutonium", "Pu", 1.87, 2.00, 244.0},
	{95, "americium", "Am", 1.80, 2.00, 243.0},
	{96, "curium", "Cm", 1.69, 2.00, 247.0},
	{97, "berkelium", "Bk", 1.54, 2.00, 247.0},
	{98, "californium", "Cf", 1.83, 2.00, 251.0},
	{99, "einsteinium", "Es", 1.50, 2.00, 252.0},
	{100, "fermium", "Fm", 1.50, 2.00, 257.0},
	{101, "mendelevium", "Md", 1.50, 2.00, 258.0},
	{102, "nobelium", "No", 1.50, 2.00, 259.0},
	{103, "lawrencium", "Lr", 1.50, 2.00, 262.0},
}

var (
	elementBySymbol = make(map[string]Element, len(elementData))
	elementByName   = make(map[string]Element, len(elementData))
)

func init() {
	for _, e := range elementData {
		elementBySymbol[e.Symbol] = e
		elementByName[e.Name] = e
	}
}

//capitalize uppercases the first rune and lowercases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

var labelSymbolRe = regexp.MustCompile(`(?i)^([A-Z]+)`)

//ElementFromAtomicNumber returns the element with the given atomic
//number, 1 to 103.
func ElementFromAtomicNumber(n int) (Element, error) {
	if n < 1 || n > len(elementData) {
		return Element{}, cError("ElementFromAtomicNumber", "no element with atomic number %d", n)
	}
	return elementData[n-1], nil
}

//ElementFromSymbol returns the element with the given symbol, case
//insensitively. Deuterium ("D") resolves to hydrogen.
func ElementFromSymbol(symbol string) (Element, error) {
	s := capitalize(strings.TrimSpace(symbol))
	if s == "D" {
		s = "H"
	}
	if e, ok := elementBySymbol[s]; ok {
		return e, nil
	}
	return Element{}, cError("ElementFromSymbol", "no element with symbol %q", symbol)
}

//ElementFromName returns the element with the given English name, case
//insensitively.
func ElementFromName(name string) (Element, error) {
	if e, ok := elementByName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return e, nil
	}
	return Element{}, cError("ElementFromName", "no element named %q", name)
}

//ElementFromString resolves an element from a symbol ("h", "Rn"), a
//name ("radon"), a numeric string ("86"), or, failing those, an atom
//label. Deuterium ("D") resolves to hydrogen.
func ElementFromString(s string) (Element, error) {
	symbol := capitalize(strings.TrimSpace(s))
	if symbol == "D" {
		symbol = "H"
	}
	if n, err := strconv.Atoi(symbol); err == nil {
		return ElementFromAtomicNumber(n)
	}
	if e, ok := elementBySymbol[symbol]; ok {
		return e, nil
	}
	if e, ok := elementByName[strings.ToLower(symbol)]; ok {
		return e, nil
	}
	e, err := ElementFromLabel(s)
	if err != nil {
		return Element{}, errDecorate(err, "ElementFromString")
	}
	return e, nil
}

//ElementFromLabel resolves an element from an atom site label such as
//"C1", "H2_F2___i" or "LI2_F2". The leading run of letters decides the
//element, so the ambiguous "Ca2" is calcium, not carbon.
func ElementFromLabel(label string) (Element, error) {
	m := labelSymbolRe.FindStringSubmatch(label)
	if m == nil {
		return Element{}, cError("ElementFromLabel", "could not determine symbol from %q", label)
	}
	if e, ok := elementBySymbol[capitalize(m[1])]; ok {
		return e, nil
	}
	return Element{}, cError("ElementFromLabel", "could not determine symbol from %q", label)
}

//ElementLess orders elements for molecular formulae: carbon sorts before
//everything, the rest by atomic number. Hydrogen, with atomic number 1,
//thus ends up right after carbon.
func ElementLess(a, b Element) bool {
	n1, n2 := a.AtomicNumber, b.AtomicNumber
	if n1 == n2 {
		return false
	}
	if n1 == 6 {
		return true
	}
	if n2 == 6 {
		return false
	}
	return n1 < n2
}

//ChemicalFormula builds the formula string of a collection of elements
//with carbon first and the rest in atomic number order, every count
//written explicitly, e.g. C2H6O1 for ethanol.
func ChemicalFormula(elements []Element) string {
	counts := make(map[int]int)
	unique := make([]Element, 0, 8)
	for _, e := range elements {
		if counts[e.AtomicNumber] == 0 {
			unique = append(unique, e)
		}
		counts[e.AtomicNumber]++
	}
	sort.Slice(unique, func(i, j int) bool {
		return ElementLess(unique[i], unique[j])
	})
	var b strings.Builder
	for _, e := range unique {
		fmt.Fprintf(&b, "%s%d", e.Symbol, counts[e.AtomicNumber])
	}
	return b.String()
}

func (e Element) String() string {
	return e.Symbol
}
