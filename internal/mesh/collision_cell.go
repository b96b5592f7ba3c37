// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"github.com/cpmech/tetsim/internal/geom"
	"github.com/cpmech/tetsim/internal/linalg"
)

// faceNormal returns the outward unit normal of surface triangle ti in the
// current configuration, or false if the triangle is degenerate.
func (m *Mesh) faceNormal(ti int) (linalg.Vec3, bool) {
	tri := m.surfTris[ti]
	a, b, c := m.pos[tri.V[0]], m.pos[tri.V[1]], m.pos[tri.V[2]]
	cr := linalg.CrossVec3(linalg.SubVec3(b, a), linalg.SubVec3(c, a))
	return linalg.UnitVec3(cr, 1e-14)
}

// CollisionCell returns the three bisector planes bounding surface
// triangle ti's collision cell (§ Glossary): for each edge, the plane
// through that edge's midpoint whose normal bisects ti's own face normal
// and the corresponding face-neighbour's normal, exactly as
// insideCollisionCell constructs them from a triangle's own plane and the
// plane of each face-neighbour. A missing neighbour (mesh boundary) or a
// degenerate normal yields the triangle's own face plane unbisected for
// that edge.
func (m *Mesh) CollisionCell(ti int) [3]geom.Plane {
	var cell [3]geom.Plane
	tri := m.surfTris[ti]
	n, ok := m.faceNormal(ti)
	if !ok {
		return cell
	}
	for i := 0; i < 3; i++ {
		a, b := tri.V[i], tri.V[(i+1)%3]
		mid := linalg.ScaleVec3(0.5, linalg.AddVec3(m.pos[a], m.pos[b]))
		neigh := m.triNeighbors[ti][i]
		if neigh < 0 {
			cell[i] = geom.Plane{Point: mid, Normal: n}
			continue
		}
		nn, nok := m.faceNormal(neigh)
		if !nok {
			cell[i] = geom.Plane{Point: mid, Normal: n}
			continue
		}
		pl, bok := geom.BisectorPlane(mid, n, nn)
		if !bok {
			pl = geom.Plane{Point: mid, Normal: n}
		}
		cell[i] = pl
	}
	return cell
}

// InsideCollisionCell reports whether p lies on the inward side of every
// bisector plane of triangle ti's collision cell -- the companion test to
// PenetratesTriangle, used to disambiguate a near-edge vertex-face
// candidate from a true face penetration (§ Glossary).
func (m *Mesh) InsideCollisionCell(ti int, p linalg.Vec3) bool {
	cell := m.CollisionCell(ti)
	for _, pl := range cell {
		if pl.Normal == (linalg.Vec3{}) {
			continue
		}
		if pl.SignedDistance(p) > 0 {
			return false
		}
	}
	return true
}

// BuildMassMatrix returns the lumped per-vertex mass: one quarter of the
// rest volume of every incident tet, summed (not one third, which is
// reserved for surface areas), matching TET_Mesh.cpp's one-ring volume
// construction (§SPEC_FULL C.4).
func (m *Mesh) BuildMassMatrix() []float64 {
	mass := make([]float64, len(m.restPos))
	for _, t := range m.tets {
		share := t.RestVol / 4
		for _, vi := range t.V {
			mass[vi] += share
		}
	}
	return mass
}
