// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"sort"

	"github.com/cpmech/tetsim/internal/linalg"
)

// tetFaceOrder lists the four faces of a tet in a fixed counter-clockwise
// order as seen from outside the tet, given vertex indices (i0,i1,i2,i3)
// in the standard tet-FEM convention (edgeMatrix uses i0 as origin).
var tetFaceOrder = [4][3]int{
	{1, 2, 3},
	{0, 3, 2},
	{0, 1, 3},
	{0, 2, 1},
}

func sortedTriple(a, b, c int) [3]int {
	s := [3]int{a, b, c}
	sort.Ints(s[:])
	return s
}

func sortedPair(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// buildSurface enumerates every tet face, keeps the ones appearing exactly
// once (faces shared by two tets cancel out), and derives surface edges,
// surface vertices, triangle-triangle neighbours and rest areas (§4.E).
func (m *Mesh) buildSurface() {
	type faceRec struct {
		verts [3]int // original (unsorted) winding, outward CCW
		count int
	}
	faces := map[[3]int]*faceRec{}
	order := [][3]int{}

	for _, t := range m.tets {
		for _, loc := range tetFaceOrder {
			a, b, c := t.V[loc[0]], t.V[loc[1]], t.V[loc[2]]
			key := sortedTriple(a, b, c)
			rec, ok := faces[key]
			if !ok {
				rec = &faceRec{verts: [3]int{a, b, c}}
				faces[key] = rec
				order = append(order, key)
			}
			rec.count++
		}
	}

	m.surfTris = nil
	for _, key := range order {
		rec := faces[key]
		if rec.count < 2 {
			m.surfTris = append(m.surfTris, Tri{V: rec.verts})
		}
	}

	edgeSet := map[[2]int]bool{}
	vertSet := map[int]bool{}
	var edgeOrder [][2]int
	for _, tri := range m.surfTris {
		for i := 0; i < 3; i++ {
			a, b := tri.V[i], tri.V[(i+1)%3]
			vertSet[a] = true
			e := sortedPair(a, b)
			if !edgeSet[e] {
				edgeSet[e] = true
				edgeOrder = append(edgeOrder, e)
			}
		}
	}
	m.surfEdges = edgeOrder
	m.surfVerts = nil
	for v := range vertSet {
		m.surfVerts = append(m.surfVerts, v)
	}
	sort.Ints(m.surfVerts)

	// triangle-triangle neighbours: multimap on sorted edges.
	edgeToTris := map[[2]int][]int{}
	for ti, tri := range m.surfTris {
		for i := 0; i < 3; i++ {
			e := sortedPair(tri.V[i], tri.V[(i+1)%3])
			edgeToTris[e] = append(edgeToTris[e], ti)
		}
	}
	m.triNeighbors = make([][3]int, len(m.surfTris))
	for ti, tri := range m.surfTris {
		for i := 0; i < 3; i++ {
			m.triNeighbors[ti][i] = -1
			e := sortedPair(tri.V[i], tri.V[(i+1)%3])
			for _, other := range edgeToTris[e] {
				if other != ti {
					m.triNeighbors[ti][i] = other
					break
				}
			}
		}
	}

	m.triRestAreas = make([]float64, len(m.surfTris))
	for ti, tri := range m.surfTris {
		m.triRestAreas[ti] = m.triangleArea(tri, m.restPos)
	}
	m.edgeRestAreas = make([]float64, len(m.surfEdges))
	for ei, e := range m.surfEdges {
		m.edgeRestAreas[ei] = linalg.NormVec3(linalg.SubVec3(m.restPos[e[1]], m.restPos[e[0]]))
	}
}

func (m *Mesh) triangleArea(tri Tri, verts []linalg.Vec3) float64 {
	a, b, c := verts[tri.V[0]], verts[tri.V[1]], verts[tri.V[2]]
	cr := linalg.CrossVec3(linalg.SubVec3(b, a), linalg.SubVec3(c, a))
	return 0.5 * linalg.NormVec3(cr)
}

// SurfaceTriangles returns the extracted surface-triangle table.
func (m *Mesh) SurfaceTriangles() []Tri { return m.surfTris }

// SurfaceEdges returns the deduplicated surface-edge table (sorted pairs).
func (m *Mesh) SurfaceEdges() [][2]int { return m.surfEdges }

// SurfaceVertices returns the set of surface vertex indices.
func (m *Mesh) SurfaceVertices() []int { return m.surfVerts }

// TriangleNeighbor returns the neighbouring triangle across local edge i
// (0,1,2 for edges v0-v1, v1-v2, v2-v0), or -1 if the triangle is on a
// mesh boundary with no neighbour.
func (m *Mesh) TriangleNeighbor(tri, i int) int { return m.triNeighbors[tri][i] }

// TriangleRestArea returns the rest-pose area of surface triangle ti.
func (m *Mesh) TriangleRestArea(ti int) float64 { return m.triRestAreas[ti] }

// EdgeRestArea returns the rest-pose "area weight" (length) of surface
// edge ei, used as one term of the edge-edge contact area weight (§4.G).
func (m *Mesh) EdgeRestArea(ei int) float64 { return m.edgeRestAreas[ei] }

// CurrentTriangleArea returns the deformed-configuration area of surface
// triangle ti, used by the degenerate-area-ratio collision-detection skip
// (§4.B, §7).
func (m *Mesh) CurrentTriangleArea(ti int) float64 {
	return m.triangleArea(m.surfTris[ti], m.pos)
}
