/*
 * crystal.go, part of goxtal.
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
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/goxtal/goxtal/xtalgraph"
)

//Sites is a block of crystal sites with their per-site bookkeeping. It
//is the result type of the unit cell population and the base of slabs
//and radius queries.
type Sites struct {
	Elements    []Element
	FracPos     *mat.Dense //(N,3)
	CartPos     *mat.Dense //(N,3)
	Labels      []string
	AsymAtom    []int //index into the asymmetric unit
	SymopCodes  []int //integer code of the generator operation
	Occupations []float64
}

//Len returns the number of sites.
func (S *Sites) Len() int {
	return len(S.Elements)
}

//newCoordBlock builds an (n,3) coordinate matrix, tolerating n == 0
//where mat.NewDense does not.
func newCoordBlock(n int, data []float64) *mat.Dense {
	if n == 0 {
		return &mat.Dense{}
	}
	return mat.NewDense(n, 3, data)
}

func (S *Sites) subset(idxs []int) *Sites {
	out := &Sites{
		Elements:    make([]Element, len(idxs)),
		FracPos:     newCoordBlock(len(idxs), nil),
		CartPos:     newCoordBlock(len(idxs), nil),
		Labels:      make([]string, len(idxs)),
		AsymAtom:    make([]int, len(idxs)),
		SymopCodes:  make([]int, len(idxs)),
		Occupations: make([]float64, len(idxs)),
	}
	for k, i := range idxs {
		out.Elements[k] = S.Elements[i]
		out.FracPos.SetRow(k, S.FracPos.RawRowView(i))
		out.CartPos.SetRow(k, S.CartPos.RawRowView(i))
		out.Labels[k] = S.Labels[i]
		out.AsymAtom[k] = S.AsymAtom[i]
		out.SymopCodes[k] = S.SymopCodes[i]
		out.Occupations[k] = S.Occupations[i]
	}
	return out
}

//Slab is a block of whole unit cells, each site tagged with the (h,k,l)
//index of its cell and the unit cell site it is an image of. The first
//NumUC sites are always the origin (0,0,0) cell.
type Slab struct {
	Sites
	Cells    [][3]int
	UCAtom   []int
	NumUC    int
	NumCells int
}

//Surroundings is the environment found around an atom or molecule by a
//radius query.
type Surroundings struct {
	Elements []Element
	CartPos  *mat.Dense
}

//AtomicEnvironment pairs one asymmetric unit atom with its crystal
//environment.
type AtomicEnvironment struct {
	Element  Element
	Position [3]float64
	Surroundings
}

//MoleculeEnvironment pairs one symmetry-unique molecule with its
//crystal environment.
type MoleculeEnvironment struct {
	Molecule *Molecule
	Surroundings
}

type crystalCache struct {
	ucAtoms    *Sites
	graph      *xtalgraph.PeriodicGraph
	ucMols     []*Molecule
	uniqueMols []*Molecule
}

//Crystal is a complete crystal structure: a unit cell, a space group
//and an asymmetric unit. The derived quantities (unit cell sites,
//bonding graph, molecules) are computed lazily and cached; a Crystal is
//immutable after construction.
type Crystal struct {
	UnitCell       *UnitCell
	SpaceGroup     *SpaceGroup
	AsymmetricUnit *AsymmetricUnit

	Titl string

	mergeTolerance  float64
	bondTolerance   float64
	minBondDistance float64
	neighbourCells  int

	cache crystalCache
}

//CrystalOption adjusts the tolerances of a Crystal at construction.
type CrystalOption func(*Crystal)

//WithMergeTolerance sets the maximum separation, in fractional
//coordinates, below which symmetry-generated sites are merged into one
//site with summed occupation. Default 1e-3.
func WithMergeTolerance(tol float64) CrystalOption {
	return func(c *Crystal) { c.mergeTolerance = tol }
}

//WithBondTolerance sets the bonding tolerance: two sites are bonded if
//their distance is below the sum of covalent radii plus this value, in
//Angstroms. Default 0.4.
func WithBondTolerance(tol float64) CrystalOption {
	return func(c *Crystal) { c.bondTolerance = tol }
}

//WithMinBondDistance sets the distance below which a site pair is
//treated as the same atom rather than a bond, in Angstroms. Default
//1e-3.
func WithMinBondDistance(d float64) CrystalOption {
	return func(c *Crystal) { c.minBondDistance = d }
}

//WithNeighbourCells sets how many neighbouring cells are searched for
//periodic bonds in each direction. The default of 1 (the 26 surrounding
//cells) is sufficient for molecular crystals.
func WithNeighbourCells(n int) CrystalOption {
	return func(c *Crystal) { c.neighbourCells = n }
}

//WithTitl sets the structure title used in file output.
func WithTitl(titl string) CrystalOption {
	return func(c *Crystal) { c.Titl = titl }
}

//NewCrystal assembles a crystal structure from its unit cell, space
//group and asymmetric unit.
func NewCrystal(uc *UnitCell, sg *SpaceGroup, asym *AsymmetricUnit, options ...CrystalOption) (*Crystal, error) {
	if uc == nil || sg == nil || asym == nil {
		return nil, cError("NewCrystal", "unit cell, space group and asymmetric unit are all required")
	}
	c := &Crystal{
		UnitCell:        uc,
		SpaceGroup:      sg,
		AsymmetricUnit:  asym,
		mergeTolerance:  1e-3,
		bondTolerance:   0.4,
		minBondDistance: 1e-3,
		neighbourCells:  1,
	}
	for _, opt := range options {
		opt(c)
	}
	if c.mergeTolerance <= 0 || c.bondTolerance < 0 || c.minBondDistance < 0 || c.neighbourCells < 1 {
		return nil, cError("NewCrystal", "invalid tolerance options")
	}
	return c, nil
}

//Formula returns the chemical formula of the asymmetric unit.
func (C *Crystal) Formula() string {
	return C.AsymmetricUnit.Formula()
}

//NumSites returns the number of asymmetric unit sites.
func (C *Crystal) NumSites() int {
	return C.AsymmetricUnit.Len()
}

//SiteLabels returns a copy of the asymmetric unit site labels.
func (C *Crystal) SiteLabels() []string {
	labels := make([]string, len(C.AsymmetricUnit.Labels))
	copy(labels, C.AsymmetricUnit.Labels)
	return labels
}

//Title returns the structure title, falling back to the formula.
func (C *Crystal) Title() string {
	if C.Titl != "" {
		return C.Titl
	}
	return C.Formula()
}

//ToCartesian converts (N,3) fractional coordinates to Cartesian.
func (C *Crystal) ToCartesian(coords *mat.Dense) *mat.Dense {
	return C.UnitCell.ToCartesian(coords)
}

//ToFractional converts (N,3) Cartesian coordinates to fractional.
func (C *Crystal) ToFractional(coords *mat.Dense) *mat.Dense {
	return C.UnitCell.ToFractional(coords)
}

//UnitCellAtoms generates every site of the unit cell by applying all
//space group operations to the asymmetric unit and wrapping the results
//into [0,1). Sites closer than the merge tolerance are merged, their
//occupations summed; partially occupied sites on special positions
//merge back to (at most) full occupation this way. The result is
//cached.
func (C *Crystal) UnitCellAtoms() *Sites {
	if C.cache.ucAtoms != nil {
		return C.cache.ucAtoms
	}
	natom := C.AsymmetricUnit.Len()
	gen, ucPos := C.SpaceGroup.ApplyAllSymops(C.AsymmetricUnit.Positions)
	n, _ := ucPos.Dims()

	translated := mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		for k := 0; k < 3; k++ {
			//the +7 puts any sensible coordinate into positive range
			//before wrapping
			translated.Set(i, k, math.Mod(ucPos.At(i, k)+7.0, 1))
		}
	}

	all := &Sites{
		Elements:    make([]Element, n),
		FracPos:     translated,
		Labels:      make([]string, n),
		AsymAtom:    make([]int, n),
		SymopCodes:  gen,
		Occupations: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		a := i % natom
		all.Elements[i] = C.AsymmetricUnit.Elements[a]
		all.Labels[i] = C.AsymmetricUnit.Labels[a]
		all.AsymAtom[i] = a
		all.Occupations[i] = C.AsymmetricUnit.Occupations[a]
	}

	mask := make([]bool, n)
	for i := range mask {
		mask[i] = true
	}
	for _, p := range pairsWithin(translated, C.mergeTolerance) {
		if !mask[p.i] || !mask[p.j] {
			continue
		}
		all.Occupations[p.i] += all.Occupations[p.j]
		mask[p.j] = false
	}
	keep := make([]int, 0, n)
	for i, m := range mask {
		if m {
			keep = append(keep, i)
		}
	}
	all.CartPos = mat.NewDense(n, 3, nil) //filled below via subset
	sites := all.subset(keep)
	sites.CartPos = C.ToCartesian(sites.FracPos)
	for _, occ := range sites.Occupations {
		if occ > 1.0 {
			logger.Debugf("Some unit cell site occupations are > 1.0")
			break
		}
	}
	C.cache.ucAtoms = sites
	return sites
}

//axisRange returns lo..hi ordered by absolute value, so the origin cell
//always comes first in a slab.
func axisRange(lo, hi int) []int {
	vals := make([]int, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		vals = append(vals, v)
	}
	sort.SliceStable(vals, func(i, j int) bool { return abs(vals[i]) < abs(vals[j]) })
	return vals
}

//Slab replicates the unit cell over the cell index ranges [min, max]
//per axis. Cells are ordered by distance from the origin cell, so the
//first NumUC sites of the result are the (0,0,0) cell whenever the
//bounds include it.
func (C *Crystal) Slab(min, max [3]int) (*Slab, error) {
	for k := 0; k < 3; k++ {
		if min[k] > max[k] {
			return nil, cError("Slab", "axis %d bounds [%d, %d] are inverted", k, min[k], max[k])
		}
	}
	uc := C.UnitCellAtoms()
	nUC := uc.Len()

	hs := axisRange(min[0], max[0])
	ks := axisRange(min[1], max[1])
	ls := axisRange(min[2], max[2])
	nCells := len(hs) * len(ks) * len(ls)

	n := nCells * nUC
	slab := &Slab{
		Sites: Sites{
			Elements:    make([]Element, n),
			FracPos:     mat.NewDense(n, 3, nil),
			Labels:      make([]string, n),
			AsymAtom:    make([]int, n),
			SymopCodes:  make([]int, n),
			Occupations: make([]float64, n),
		},
		Cells:    make([][3]int, n),
		UCAtom:   make([]int, n),
		NumUC:    nUC,
		NumCells: nCells,
	}
	ci := 0
	for _, h := range hs {
		for _, k := range ks {
			for _, l := range ls {
				cell := [3]int{h, k, l}
				base := ci * nUC
				for s := 0; s < nUC; s++ {
					i := base + s
					slab.FracPos.Set(i, 0, uc.FracPos.At(s, 0)+float64(h))
					slab.FracPos.Set(i, 1, uc.FracPos.At(s, 1)+float64(k))
					slab.FracPos.Set(i, 2, uc.FracPos.At(s, 2)+float64(l))
					slab.Elements[i] = uc.Elements[s]
					slab.Labels[i] = uc.Labels[s]
					slab.AsymAtom[i] = uc.AsymAtom[s]
					slab.SymopCodes[i] = uc.SymopCodes[s]
					slab.Occupations[i] = uc.Occupations[s]
					slab.Cells[i] = cell
					slab.UCAtom[i] = s
				}
				ci++
			}
		}
	}
	slab.CartPos = C.ToCartesian(slab.FracPos)
	return slab, nil
}

//UnitCellConnectivity builds the periodic bonding graph of the unit
//cell. Sites i and j are bonded when their distance, or the distance
//between i and any periodic image of j in the surrounding cells, lies
//between the minimum bond distance and the sum of their covalent radii
//plus the bond tolerance. Edges to images carry the cell translation of
//the image. The result is cached.
func (C *Crystal) UnitCellConnectivity() (*xtalgraph.PeriodicGraph, error) {
	if C.cache.graph != nil {
		return C.cache.graph, nil
	}
	nc := C.neighbourCells
	slab, err := C.Slab([3]int{-nc, -nc, -nc}, [3]int{nc, nc, nc})
	if err != nil {
		return nil, errDecorate(err, "UnitCellConnectivity")
	}
	nUC := slab.NumUC
	total := slab.Len()

	cov := make([]float64, nUC)
	maxCov := 0.0
	for i := 0; i < nUC; i++ {
		cov[i] = slab.Elements[i].Cov
		if cov[i] > maxCov {
			maxCov = cov[i]
		}
	}
	cutoff := 2*maxCov + C.bondTolerance

	g := xtalgraph.New(nUC)
	ucCart := slab.CartPos.Slice(0, nUC, 0, 3).(*mat.Dense)
	for _, p := range pairsWithin(ucCart, cutoff) {
		if p.dist > C.minBondDistance && p.dist < cov[p.i]+cov[p.j]+C.bondTolerance {
			if err := g.AddBond(p.i, p.j, p.dist, xtalgraph.CellShift{}); err != nil {
				return nil, errDecorate(err, "UnitCellConnectivity")
			}
		}
	}

	if total > nUC {
		neighbourCart := slab.CartPos.Slice(nUC, total, 0, 3).(*mat.Dense)
		tree := newAtomTree(neighbourCart)
		for i := 0; i < nUC; i++ {
			pos := rowVec(ucCart, i)
			for _, nb := range withinRadius(tree, pos, cutoff) {
				ucIdx := nb.idx % nUC
				//bonds between a site and its own translational image
				//are outside a single unit cell's connectivity
				if i >= ucIdx {
					continue
				}
				if nb.dist > C.minBondDistance && nb.dist < cov[i]+cov[ucIdx]+C.bondTolerance {
					cell := slab.Cells[nUC+nb.idx]
					if err := g.AddBond(i, ucIdx, nb.dist, xtalgraph.CellShift(cell)); err != nil {
						return nil, errDecorate(err, "UnitCellConnectivity")
					}
				}
			}
		}
	}
	C.cache.graph = g
	return g, nil
}

//UnitCellMolecules extracts the connected molecules of the unit cell.
//Each component of the bonding graph is unwrapped by walking it breadth
//first and accumulating the cell translations of its periodic bonds, so
//molecules crossing cell boundaries come out with continuous Cartesian
//coordinates. Atoms within a molecule are ordered by their asymmetric
//unit index. The result is cached.
func (C *Crystal) UnitCellMolecules() ([]*Molecule, error) {
	if C.cache.ucMols != nil {
		return C.cache.ucMols, nil
	}
	g, err := C.UnitCellConnectivity()
	if err != nil {
		return nil, errDecorate(err, "UnitCellMolecules")
	}
	sites := C.UnitCellAtoms()

	var molecules []*Molecule
	for _, comp := range g.Components() {
		root := comp[0]
		order, pred := g.BFS(root)
		shifts := map[int]xtalgraph.CellShift{root: {}}
		for _, j := range order[1:] {
			i := pred[j]
			s, _ := g.Shift(i, j)
			prev := shifts[i]
			shifts[j] = xtalgraph.CellShift{prev[0] + s[0], prev[1] + s[1], prev[2] + s[2]}
		}

		//reorder the component by asymmetric unit index
		nodes := make([]int, len(comp))
		copy(nodes, comp)
		sort.SliceStable(nodes, func(a, b int) bool {
			return sites.AsymAtom[nodes[a]] < sites.AsymAtom[nodes[b]]
		})

		frac := mat.NewDense(len(nodes), 3, nil)
		mol := &Molecule{
			Elements:            make([]Element, len(nodes)),
			Labels:              make([]string, len(nodes)),
			UnitCellAtoms:       nodes,
			AsymmetricUnitAtoms: make([]int, len(nodes)),
			GeneratorSymops:     make([]int, len(nodes)),
		}
		for k, node := range nodes {
			sh := shifts[node]
			frac.Set(k, 0, sites.FracPos.At(node, 0)+float64(sh[0]))
			frac.Set(k, 1, sites.FracPos.At(node, 1)+float64(sh[1]))
			frac.Set(k, 2, sites.FracPos.At(node, 2)+float64(sh[2]))
			mol.Elements[k] = sites.Elements[node]
			mol.Labels[k] = sites.Labels[node]
			mol.AsymmetricUnitAtoms[k] = sites.AsymAtom[node]
			mol.GeneratorSymops[k] = sites.SymopCodes[node]
		}
		mol.Positions = C.ToCartesian(frac)
		molecules = append(molecules, mol)
	}
	logger.Debugf("%d molecules in unit cell", len(molecules))
	C.cache.ucMols = molecules
	return molecules, nil
}

//SymmetryUniqueMolecules selects the minimal set of connected molecules
//covering every asymmetric unit site. Unit cell molecules are visited
//in order of decreasing identity fraction, so the molecules that lie in
//the asymmetric unit itself are preferred over their symmetry images; a
//molecule is kept if it contributes at least one uncovered site. If the
//greedy cover cannot reach every site a warning is logged; see
//AsymmetricUnitCovered. The result is cached.
func (C *Crystal) SymmetryUniqueMolecules() ([]*Molecule, error) {
	if C.cache.uniqueMols != nil {
		return C.cache.uniqueMols, nil
	}
	ucMols, err := C.UnitCellMolecules()
	if err != nil {
		return nil, errDecorate(err, "SymmetryUniqueMolecules")
	}
	sorted := make([]*Molecule, len(ucMols))
	copy(sorted, ucMols)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].IdentityFraction() > sorted[j].IdentityFraction()
	})

	covered := make([]bool, C.AsymmetricUnit.Len())
	remaining := len(covered)
	var molecules []*Molecule
	for _, mol := range sorted {
		contributes := false
		for _, a := range mol.AsymmetricUnitAtoms {
			if !covered[a] {
				contributes = true
				break
			}
		}
		if !contributes {
			continue
		}
		for _, a := range mol.AsymmetricUnitAtoms {
			if !covered[a] {
				covered[a] = true
				remaining--
			}
		}
		molecules = append(molecules, mol)
		if remaining == 0 {
			break
		}
	}
	if remaining > 0 {
		logger.Warnf("%d asymmetric unit sites are not part of any connected molecule", remaining)
	}
	logger.Debugf("%d symmetry unique molecules", len(molecules))
	C.cache.uniqueMols = molecules
	return molecules, nil
}

//AsymmetricUnitCovered reports whether every asymmetric unit site
//belongs to one of the symmetry-unique molecules.
func (C *Crystal) AsymmetricUnitCovered() (bool, error) {
	mols, err := C.SymmetryUniqueMolecules()
	if err != nil {
		return false, errDecorate(err, "AsymmetricUnitCovered")
	}
	covered := make([]bool, C.AsymmetricUnit.Len())
	for _, mol := range mols {
		for _, a := range mol.AsymmetricUnitAtoms {
			covered[a] = true
		}
	}
	for _, c := range covered {
		if !c {
			return false, nil
		}
	}
	return true, nil
}

//hklBounds returns the cell index ranges needed to reach radius, in
//Angstroms, around every row of the given fractional positions.
func (C *Crystal) hklBounds(fracPositions *mat.Dense, radius float64) (min, max [3]int) {
	lengths := [3]float64{C.UnitCell.A(), C.UnitCell.B(), C.UnitCell.C()}
	for k := 0; k < 3; k++ {
		min[k] = math.MaxInt32
		max[k] = math.MinInt32
	}
	n, _ := fracPositions.Dims()
	for i := 0; i < n; i++ {
		for k := 0; k < 3; k++ {
			fr := radius / lengths[k]
			pos := fracPositions.At(i, k)
			if hi := int(math.Ceil(pos + fr)); hi > max[k] {
				max[k] = hi
			}
			if lo := int(math.Floor(pos - fr)); lo < min[k] {
				min[k] = lo
			}
		}
	}
	return min, max
}

//AtomsInRadius returns all crystal sites within radius of the given
//Cartesian origin, as a slab selection preserving the per-site cell
//indices.
func (C *Crystal) AtomsInRadius(radius float64, origin [3]float64) (*Slab, error) {
	if radius <= 0 {
		return nil, cError("AtomsInRadius", "radius must be positive, got %g", radius)
	}
	fracOrigin := C.ToFractional(mat.NewDense(1, 3, []float64{origin[0], origin[1], origin[2]}))
	min, max := C.hklBounds(fracOrigin, radius)
	slab, err := C.Slab(min, max)
	if err != nil {
		return nil, errDecorate(err, "AtomsInRadius")
	}
	tree := newAtomTree(slab.CartPos)
	nbs := withinRadius(tree, origin, radius)
	idxs := make([]int, len(nbs))
	for i, nb := range nbs {
		idxs[i] = nb.idx
	}
	out := &Slab{
		Sites:    *slab.Sites.subset(idxs),
		Cells:    make([][3]int, len(idxs)),
		UCAtom:   make([]int, len(idxs)),
		NumUC:    slab.NumUC,
		NumCells: slab.NumCells,
	}
	for k, i := range idxs {
		out.Cells[k] = slab.Cells[i]
		out.UCAtom[k] = slab.UCAtom[i]
	}
	return out, nil
}

//AtomicSurroundings finds, for every asymmetric unit atom, all crystal
//atoms within radius of it, excluding the atom itself.
func (C *Crystal) AtomicSurroundings(radius float64) ([]AtomicEnvironment, error) {
	if radius <= 0 {
		return nil, cError("AtomicSurroundings", "radius must be positive, got %g", radius)
	}
	min, max := C.hklBounds(C.AsymmetricUnit.Positions, radius)
	slab, err := C.Slab(min, max)
	if err != nil {
		return nil, errDecorate(err, "AtomicSurroundings")
	}
	tree := newAtomTree(slab.CartPos)
	cartAsym := C.ToCartesian(C.AsymmetricUnit.Positions)

	results := make([]AtomicEnvironment, 0, C.AsymmetricUnit.Len())
	for i := 0; i < C.AsymmetricUnit.Len(); i++ {
		pos := rowVec(cartAsym, i)
		var elements []Element
		var coords []float64
		for _, nb := range withinRadius(tree, pos, radius) {
			if nb.dist <= C.minBondDistance {
				continue
			}
			elements = append(elements, slab.Elements[nb.idx])
			coords = append(coords, slab.CartPos.RawRowView(nb.idx)...)
		}
		env := AtomicEnvironment{
			Element:  C.AsymmetricUnit.Elements[i],
			Position: pos,
		}
		env.Elements = elements
		env.CartPos = newCoordBlock(len(elements), coords)
		results = append(results, env)
	}
	return results, nil
}

//MoleculeSurroundings finds, for every symmetry-unique molecule, all
//crystal atoms within radius of any of its atoms, excluding the
//molecule's own atoms.
func (C *Crystal) MoleculeSurroundings(radius float64) ([]MoleculeEnvironment, error) {
	if radius <= 0 {
		return nil, cError("MoleculeSurroundings", "radius must be positive, got %g", radius)
	}
	mols, err := C.SymmetryUniqueMolecules()
	if err != nil {
		return nil, errDecorate(err, "MoleculeSurroundings")
	}
	var results []MoleculeEnvironment
	for _, mol := range mols {
		fracMol := C.ToFractional(mol.Positions)
		min, max := C.hklBounds(fracMol, radius)
		slab, err := C.Slab(min, max)
		if err != nil {
			return nil, errDecorate(err, "MoleculeSurroundings")
		}
		tree := newAtomTree(slab.CartPos)
		keep := make([]bool, slab.Len())
		var selfIdxs []int
		n, _ := mol.Positions.Dims()
		for i := 0; i < n; i++ {
			pos := rowVec(mol.Positions, i)
			for _, nb := range withinRadius(tree, pos, radius) {
				keep[nb.idx] = true
			}
			if idx, d := nearestAtom(tree, pos); d < 1e-3 {
				selfIdxs = append(selfIdxs, idx)
			}
		}
		for _, idx := range selfIdxs {
			keep[idx] = false
		}
		var elements []Element
		var coords []float64
		for idx, k := range keep {
			if k {
				elements = append(elements, slab.Elements[idx])
				coords = append(coords, slab.CartPos.RawRowView(idx)...)
			}
		}
		env := MoleculeEnvironment{Molecule: mol}
		env.Elements = elements
		env.CartPos = newCoordBlock(len(elements), coords)
		results = append(results, env)
	}
	return results, nil
}

//Density returns the crystallographic density in g/cm^3.
func (C *Crystal) Density() float64 {
	mass := 0.0
	for _, e := range C.UnitCellAtoms().Elements {
		mass += e.Mass
	}
	return mass / C.UnitCell.Volume() / 0.6022
}

func (C *Crystal) String() string {
	return "<Crystal " + C.Formula() + " " + C.SpaceGroup.Symbol + ">"
}
