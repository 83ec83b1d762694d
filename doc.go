/*
 * doc.go, part of goxtal.
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

/*Package xtal provides structures and algorithms for periodic crystal
structures: space-group symmetry operations and their compact integer
encoding, unit cells, asymmetric units, and the reconstruction of discrete
molecules from a crystal's translational and point symmetry.


	**goxtal capabilities**

    Encodes/decodes crystallographic symmetry operations to and from a
	packed ternary/duodecimal integer and the "x,y,z" algebraic string
	form used by CIF and SHELX files.

    Expands a reduced symmetry-operation list against the lattice
	centering translations (P, I, R, F, A, B, C) and reduces a full list
	back to a minimal generating set.

    Identifies a space group setting from an arbitrary full operation
	set by exact signature matching against the built-in reference table.

    Populates the unit cell from an asymmetric unit, merging overlapping
	sites by occupancy.

    Builds the periodic bonding graph of the unit cell, with each bond
	tagged by the (h,k,l) cell translation of its periodic image, using
	covalent radii and a configurable tolerance.

    Extracts connected molecules from the bonding graph, unwrapping
	periodic images into a single continuous coordinate frame, and
	selects the minimal symmetry-unique subset covering the asymmetric
	unit.

    Answers neighbor queries (atoms within a radius, atomic and
	molecular surroundings) over arbitrary slabs of unit cells.

    Round-trips crystal structures through CIF-shaped and SHELX-shaped
	record mappings, optionally gzip-compressed.

All coordinate blocks are gonum mat.Dense matrices with one position per
row; lengths are in Angstroms and angles in radians unless a function name
says otherwise.*/
package xtal
