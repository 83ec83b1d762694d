/*
 * neighbors.go, part of goxtal.
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
	"gonum.org/v1/gonum/spatial/kdtree"
)

//kd-tree adapter for coordinate blocks. Each point carries the row index
//of the position matrix it came from, so query results can be traced
//back to sites. Distances returned by the gonum kd-tree are squared.

type atomPoint struct {
	kdtree.Point
	idx int
}

func (p atomPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(atomPoint)
	return p.Point[d] - q.Point[d]
}

func (p atomPoint) Dims() int { return 3 }

func (p atomPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(atomPoint)
	return p.Point.Distance(q.Point)
}

type atomPoints []atomPoint

func (p atomPoints) Index(i int) kdtree.Comparable { return p[i] }
func (p atomPoints) Len() int                      { return len(p) }
func (p atomPoints) Slice(start, end int) kdtree.Interface {
	return p[start:end]
}
func (p atomPoints) Pivot(d kdtree.Dim) int {
	return atomPlane{Dim: d, atomPoints: p}.Pivot()
}

type atomPlane struct {
	kdtree.Dim
	atomPoints
}

func (p atomPlane) Less(i, j int) bool {
	return p.atomPoints[i].Point[p.Dim] < p.atomPoints[j].Point[p.Dim]
}
func (p atomPlane) Pivot() int {
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}
func (p atomPlane) Slice(start, end int) kdtree.SortSlicer {
	p.atomPoints = p.atomPoints[start:end]
	return p
}
func (p atomPlane) Swap(i, j int) {
	p.atomPoints[i], p.atomPoints[j] = p.atomPoints[j], p.atomPoints[i]
}

//newAtomTree builds a kd-tree over the rows of an (N,3) matrix.
func newAtomTree(positions *mat.Dense) *kdtree.Tree {
	n, _ := positions.Dims()
	pts := make(atomPoints, n)
	for i := 0; i < n; i++ {
		pts[i] = atomPoint{
			Point: kdtree.Point{positions.At(i, 0), positions.At(i, 1), positions.At(i, 2)},
			idx:   i,
		}
	}
	return kdtree.New(pts, false)
}

//neighbor is one result of a radius query.
type neighbor struct {
	idx  int
	dist float64
}

//withinRadius returns the row indices of all tree points within radius
//of pos, with their distances, sorted by index. The query position
//itself is included if it is in the tree.
func withinRadius(tree *kdtree.Tree, pos [3]float64, radius float64) []neighbor {
	keeper := kdtree.NewDistKeeper(radius * radius)
	tree.NearestSet(keeper, atomPoint{Point: kdtree.Point{pos[0], pos[1], pos[2]}})
	result := make([]neighbor, 0, keeper.Heap.Len())
	for _, c := range keeper.Heap {
		if c.Comparable == nil {
			continue
		}
		result = append(result, neighbor{
			idx:  c.Comparable.(atomPoint).idx,
			dist: math.Sqrt(c.Dist),
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].idx < result[j].idx })
	return result
}

//nearestAtom returns the index of and distance to the closest tree
//point to pos.
func nearestAtom(tree *kdtree.Tree, pos [3]float64) (int, float64) {
	c, d := tree.Nearest(atomPoint{Point: kdtree.Point{pos[0], pos[1], pos[2]}})
	return c.(atomPoint).idx, math.Sqrt(d)
}

//pairsWithin returns all index pairs (i, j), i < j, of rows of positions
//closer than cutoff, with their distances.
func pairsWithin(positions *mat.Dense, cutoff float64) []pairDistance {
	tree := newAtomTree(positions)
	n, _ := positions.Dims()
	var pairs []pairDistance
	for i := 0; i < n; i++ {
		pos := [3]float64{positions.At(i, 0), positions.At(i, 1), positions.At(i, 2)}
		for _, nb := range withinRadius(tree, pos, cutoff) {
			if nb.idx > i {
				pairs = append(pairs, pairDistance{i: i, j: nb.idx, dist: nb.dist})
			}
		}
	}
	return pairs
}

type pairDistance struct {
	i, j int
	dist float64
}

func rowVec(m *mat.Dense, i int) [3]float64 {
	return [3]float64{m.At(i, 0), m.At(i, 1), m.At(i, 2)}
}
