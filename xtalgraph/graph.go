/*
 * graph.go, part of goxtal.
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

/*Package xtalgraph provides the periodic bonding graph of a crystal's
unit cell. Nodes are unit cell sites; each edge carries the bond length
and the (h,k,l) cell translation that maps the lower-index site's cell
onto the cell of the higher-index site's bonded image. A graph with all
shifts zero is an ordinary molecular bonding graph.*/
package xtalgraph

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

//CellShift is the (h,k,l) translation tag of a periodic bond.
type CellShift [3]int

//Neg returns the opposite translation.
func (s CellShift) Neg() CellShift {
	return CellShift{-s[0], -s[1], -s[2]}
}

//IsZero reports whether the bond stays within one cell.
func (s CellShift) IsZero() bool {
	return s == CellShift{}
}

type edgeData struct {
	shift CellShift
	dist  float64
}

//PeriodicGraph is an undirected bonding graph over a fixed set of sites
//numbered 0..n-1. Isolated sites are legitimate one-atom components.
type PeriodicGraph struct {
	g     *simple.UndirectedGraph
	edges map[[2]int64]edgeData
	n     int
}

//New creates a periodic graph with n sites and no bonds.
func New(n int) *PeriodicGraph {
	g := simple.NewUndirectedGraph()
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
	return &PeriodicGraph{
		g:     g,
		edges: make(map[[2]int64]edgeData),
		n:     n,
	}
}

//NumSites returns the number of sites.
func (P *PeriodicGraph) NumSites() int {
	return P.n
}

//NumBonds returns the number of bonds.
func (P *PeriodicGraph) NumBonds() int {
	return len(P.edges)
}

//AddBond connects sites i and j with a bond of the given length, tagged
//with the cell translation of j's image relative to i's cell. The edge
//is stored canonically on the lower index; adding the same pair twice
//keeps the first bond.
func (P *PeriodicGraph) AddBond(i, j int, dist float64, shift CellShift) error {
	if i == j {
		return fmt.Errorf("xtalgraph: site %d cannot bond to itself", i)
	}
	if i < 0 || j < 0 || i >= P.n || j >= P.n {
		return fmt.Errorf("xtalgraph: bond (%d, %d) outside sites [0, %d)", i, j, P.n)
	}
	if i > j {
		i, j = j, i
		shift = shift.Neg()
	}
	key := [2]int64{int64(i), int64(j)}
	if _, ok := P.edges[key]; ok {
		return nil
	}
	P.edges[key] = edgeData{shift: shift, dist: dist}
	P.g.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node(j)})
	return nil
}

//HasBond reports whether sites i and j are bonded.
func (P *PeriodicGraph) HasBond(i, j int) bool {
	return P.g.HasEdgeBetween(int64(i), int64(j))
}

//Shift returns the cell translation of j's bonded image relative to i.
//The second return value is false if the sites are not bonded.
func (P *PeriodicGraph) Shift(i, j int) (CellShift, bool) {
	if i > j {
		e, ok := P.edges[[2]int64{int64(j), int64(i)}]
		return e.shift.Neg(), ok
	}
	e, ok := P.edges[[2]int64{int64(i), int64(j)}]
	return e.shift, ok
}

//BondLength returns the length of the bond between i and j. The second
//return value is false if the sites are not bonded.
func (P *PeriodicGraph) BondLength(i, j int) (float64, bool) {
	if i > j {
		i, j = j, i
	}
	e, ok := P.edges[[2]int64{int64(i), int64(j)}]
	return e.dist, ok
}

//Neighbors returns the sites bonded to i, in ascending order.
func (P *PeriodicGraph) Neighbors(i int) []int {
	var out []int
	it := P.g.From(int64(i))
	for it.Next() {
		out = append(out, int(it.Node().ID()))
	}
	sort.Ints(out)
	return out
}

//Components returns the connected components of the graph. Sites within
//a component are in ascending order, and components are ordered by
//their lowest site.
func (P *PeriodicGraph) Components() [][]int {
	var comps [][]int
	for _, nodes := range topo.ConnectedComponents(P.g) {
		c := make([]int, len(nodes))
		for i, n := range nodes {
			c[i] = int(n.ID())
		}
		sort.Ints(c)
		comps = append(comps, c)
	}
	sort.Slice(comps, func(i, j int) bool { return comps[i][0] < comps[j][0] })
	return comps
}

//BFS walks the component containing root in breadth-first order with
//sorted neighbor expansion, returning the visit order and, for each
//visited site, its predecessor (the root's predecessor is -1).
func (P *PeriodicGraph) BFS(root int) (order []int, pred map[int]int) {
	pred = map[int]int{root: -1}
	order = []int{root}
	for head := 0; head < len(order); head++ {
		u := order[head]
		for _, v := range P.Neighbors(u) {
			if _, seen := pred[v]; seen {
				continue
			}
			pred[v] = u
			order = append(order, v)
		}
	}
	return order, pred
}
