/*
 * neighbors_test.go, part of goxtal.
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

//a fixed, irregular point cloud; no pair distance sits exactly on the
//cutoffs used below
var cloud = mat.NewDense(10, 3, []float64{
	0.0, 0.0, 0.0,
	1.1, 0.0, 0.0,
	0.0, 1.3, 0.0,
	0.0, 0.0, 1.7,
	2.2, 2.1, 0.3,
	-1.0, -1.2, 0.4,
	3.5, 0.1, -0.2,
	0.6, 0.7, 0.8,
	-2.4, 1.9, 1.1,
	1.9, -1.8, 2.3,
})

func bruteDist(i, j int) float64 {
	dx := cloud.At(i, 0) - cloud.At(j, 0)
	dy := cloud.At(i, 1) - cloud.At(j, 1)
	dz := cloud.At(i, 2) - cloud.At(j, 2)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func TestPairsWithinAgainstBruteForce(Te *testing.T) {
	for _, cutoff := range []float64{0.5, 1.5, 2.5, 4.0, 100.0} {
		want := make(map[[2]int]float64)
		n, _ := cloud.Dims()
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if d := bruteDist(i, j); d < cutoff {
					want[[2]int{i, j}] = d
				}
			}
		}
		got := pairsWithin(cloud, cutoff)
		if len(got) != len(want) {
			Te.Fatalf("cutoff %g: %d pairs, brute force finds %d", cutoff, len(got), len(want))
		}
		for _, p := range got {
			d, ok := want[[2]int{p.i, p.j}]
			if !ok {
				Te.Errorf("cutoff %g: spurious pair (%d,%d)", cutoff, p.i, p.j)
				continue
			}
			if math.Abs(p.dist-d) > 1e-12 {
				Te.Errorf("pair (%d,%d): distance %g, want %g", p.i, p.j, p.dist, d)
			}
		}
	}
}

func TestWithinRadius(Te *testing.T) {
	tree := newAtomTree(cloud)
	nbs := withinRadius(tree, [3]float64{0, 0, 0}, 1.5)
	//the query position itself is a tree point and is included
	wantIdx := []int{0, 1, 2, 7}
	if len(nbs) != len(wantIdx) {
		Te.Fatalf("%d neighbors: %v", len(nbs), nbs)
	}
	for k, nb := range nbs {
		if nb.idx != wantIdx[k] {
			Te.Fatalf("neighbors not sorted by index: %v", nbs)
		}
		if math.Abs(nb.dist-bruteDist(0, nb.idx)) > 1e-12 {
			Te.Errorf("neighbor %d distance %g", nb.idx, nb.dist)
		}
	}
}

func TestNearestAtom(Te *testing.T) {
	tree := newAtomTree(cloud)
	idx, d := nearestAtom(tree, [3]float64{1.0, 0.1, 0.0})
	if idx != 1 {
		Te.Fatalf("nearest atom %d", idx)
	}
	if math.Abs(d-math.Sqrt(0.01+0.01)) > 1e-12 {
		Te.Errorf("nearest distance %g", d)
	}
}
