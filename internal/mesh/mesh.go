// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mesh implements the tetrahedral mesh (§3, §4.E): vertex and tet
// tables, derived surface tables, per-tet deformation caches (F, UΣVᵀ, Ḟ),
// collision-candidate detection backed by two bounding-volume trees, and
// scatter-assembly of per-tet forces and Hessians into global buffers. The
// mesh exclusively owns vertex arrays, connectivity, per-element caches
// and the AABB trees (§3).
package mesh

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/tetsim/internal/bvh"
	"github.com/cpmech/tetsim/internal/linalg"
)

// Tet is one tetrahedral element, with its rest-pose cache and current
// per-step deformation state (§3).
type Tet struct {
	V [4]int // vertex indices, rest-pose ordering fixed at construction

	RestVol float64
	DmInv   linalg.Mat3
	DFDx    linalg.Mat9x12

	F    linalg.Mat3
	Fdot linalg.Mat3

	svdStale bool
	U, Vr    linalg.Mat3
	Sigma    linalg.Vec3
}

// Mesh owns the vertex/tet tables, derived surface tables and the two
// AABB trees over surface triangles and surface edges.
type Mesh struct {
	restPos []linalg.Vec3
	pos     []linalg.Vec3
	vel     []linalg.Vec3

	tets []Tet

	surfTris      []Tri
	surfEdges     [][2]int
	surfVerts     []int
	triNeighbors  [][3]int
	triRestAreas  []float64
	edgeRestAreas []float64
	vertOneRing   [][]int // tets incident to each vertex

	triTree  *bvh.Tree
	edgeTree *bvh.Tree

	inverted []bool
}

// Tri is a surface triangle, outward-facing counter-clockwise (§4.E).
type Tri struct {
	V [3]int
}

// NumVertices returns the vertex count N.
func (m *Mesh) NumVertices() int { return len(m.restPos) }

// NumTets returns the tet count T.
func (m *Mesh) NumTets() int { return len(m.tets) }

// RestPosition returns the rest-pose position of vertex i.
func (m *Mesh) RestPosition(i int) linalg.Vec3 { return m.restPos[i] }

// Position returns the current world position of vertex i.
func (m *Mesh) Position(i int) linalg.Vec3 { return m.pos[i] }

// Velocity returns the current velocity of vertex i.
func (m *Mesh) Velocity(i int) linalg.Vec3 { return m.vel[i] }

// Tet returns element k by value (a copy; per-tet caches are read-only to
// callers outside this package).
func (m *Mesh) Tet(k int) Tet { return m.tets[k] }

// New builds a mesh from a rest-vertex sequence and a tet table. Each tet
// must have strictly positive rest volume; this is an invariant asserted
// here, a programmer error otherwise (§7 tier 1).
func New(restVerts []linalg.Vec3, tets [][4]int) *Mesh {
	m := &Mesh{
		restPos: append([]linalg.Vec3(nil), restVerts...),
	}
	m.pos = append([]linalg.Vec3(nil), restVerts...)
	m.vel = make([]linalg.Vec3, len(restVerts))

	m.tets = make([]Tet, len(tets))
	for k, idx := range tets {
		for _, vi := range idx {
			if vi < 0 || vi >= len(restVerts) {
				chk.Panic("mesh: tet %d references out-of-range vertex %d", k, vi)
			}
		}
		v0, v1, v2, v3 := restVerts[idx[0]], restVerts[idx[1]], restVerts[idx[2]], restVerts[idx[3]]
		Dm := edgeMatrix(v0, v1, v2, v3)
		vol := linalg.Det3(Dm) / 6
		if vol <= 0 {
			chk.Panic("mesh: tet %d has non-positive rest volume %v", k, vol)
		}
		DmInv := linalg.Inverse3(Dm)
		m.tets[k] = Tet{
			V:        idx,
			RestVol:  vol,
			DmInv:    DmInv,
			DFDx:     linalg.BuildDFDX(DmInv),
			F:        linalg.Ident3(),
			svdStale: true,
		}
	}

	m.buildOneRing()
	m.buildSurface()
	m.buildBVH()
	m.inverted = make([]bool, len(restVerts))
	return m
}

// edgeMatrix returns Ds = [v1-v0 | v2-v0 | v3-v0] as columns.
func edgeMatrix(v0, v1, v2, v3 linalg.Vec3) linalg.Mat3 {
	e1 := linalg.SubVec3(v1, v0)
	e2 := linalg.SubVec3(v2, v0)
	e3 := linalg.SubVec3(v3, v0)
	var Dm linalg.Mat3
	for i := 0; i < 3; i++ {
		Dm[i][0], Dm[i][1], Dm[i][2] = e1[i], e2[i], e3[i]
	}
	return Dm
}

func (m *Mesh) buildOneRing() {
	m.vertOneRing = make([][]int, len(m.restPos))
	for k, t := range m.tets {
		for _, vi := range t.V {
			m.vertOneRing[vi] = append(m.vertOneRing[vi], k)
		}
	}
}

// IncidentTets returns the tet indices sharing vertex i.
func (m *Mesh) IncidentTets(i int) []int { return m.vertOneRing[i] }
