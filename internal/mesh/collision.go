// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"github.com/cpmech/tetsim/internal/contact"
	"github.com/cpmech/tetsim/internal/geom"
	"github.com/cpmech/tetsim/internal/linalg"
)

// VFCandidate is a broadphase-surviving vertex-face pair awaiting
// narrow-phase energy evaluation (§4.B, §4.D).
type VFCandidate struct {
	Vertex   int
	Tri      int
	Bary     geom.Barycentric
	Dist     float64
	Inside   bool
	Reversed bool
}

// EECandidate is a broadphase-surviving edge-edge pair awaiting
// narrow-phase energy evaluation.
type EECandidate struct {
	EdgeA, EdgeB int
	U, W         float64
	Dist         float64
	Reversed     bool
}

// sharesVertex reports whether vertex v belongs to triangle tri, the
// "exclude the vertex's own incident faces" rule of self-collision
// detection (§4.B).
func (m *Mesh) sharesVertex(v, ti int) bool {
	tri := m.surfTris[ti]
	return tri.V[0] == v || tri.V[1] == v || tri.V[2] == v
}

// oneRingExcluded reports whether vertex v and triangle ti share a tet,
// excluding one-ring-adjacent vertex-face pairs that are never true
// self-collisions, only neighbouring undeformed geometry (§4.B "exclude
// pairs within the vertex's tetrahedral one-ring").
func (m *Mesh) oneRingExcluded(v, ti int) bool {
	if m.sharesVertex(v, ti) {
		return true
	}
	tri := m.surfTris[ti]
	ring := map[int]bool{}
	for _, k := range m.vertOneRing[v] {
		ring[k] = true
	}
	for _, tv := range tri.V {
		for _, k := range m.vertOneRing[tv] {
			if ring[k] {
				return true
			}
		}
	}
	return false
}

// CandidateVertexFace queries the triangle BVH for broadphase pairs near
// every surface vertex and narrow-phases them with PointTriangleDistance,
// skipping self-adjacent and degenerate-area triangles (§4.B).
func (m *Mesh) CandidateVertexFace(margin float64) []VFCandidate {
	var out []VFCandidate
	for _, v := range m.surfVerts {
		p := m.pos[v]
		hits := m.triTree.QueryPoint(p, margin)
		for _, ti := range hits {
			if m.oneRingExcluded(v, ti) {
				continue
			}
			if geom.DegenerateAreaRatio(m.CurrentTriangleArea(ti), m.triRestAreas[ti]) {
				continue
			}
			tri := m.surfTris[ti]
			a, b, c := m.pos[tri.V[0]], m.pos[tri.V[1]], m.pos[tri.V[2]]
			dist, bw, inside := geom.PointTriangleDistance(p, a, b, c)
			if dist > margin {
				continue
			}
			normal := linalg.CrossVec3(linalg.SubVec3(b, a), linalg.SubVec3(c, a))
			direction := linalg.SubVec3(p, a)
			out = append(out, VFCandidate{
				Vertex: v, Tri: ti, Bary: bw, Dist: dist, Inside: inside,
				Reversed: contact.Reversal(direction, normal),
			})
		}
	}
	return out
}

// edgeSharesVertex reports whether edges ea and eb (indices into
// surfEdges) share an endpoint.
func (m *Mesh) edgeSharesVertex(ea, eb int) bool {
	a, b := m.surfEdges[ea], m.surfEdges[eb]
	return a[0] == b[0] || a[0] == b[1] || a[1] == b[0] || a[1] == b[1]
}

func (m *Mesh) edgeOneRingExcluded(ea, eb int) bool {
	if m.edgeSharesVertex(ea, eb) {
		return true
	}
	a := m.surfEdges[ea]
	ring := map[int]bool{}
	for _, vi := range a {
		for _, k := range m.vertOneRing[vi] {
			ring[k] = true
		}
	}
	b := m.surfEdges[eb]
	for _, vi := range b {
		for _, k := range m.vertOneRing[vi] {
			if ring[k] {
				return true
			}
		}
	}
	return false
}

// CandidateEdgeEdge queries the edge BVH for broadphase pairs and narrow-
// phases them via the closest-point-between-segments kernel (§4.B).
func (m *Mesh) CandidateEdgeEdge(margin float64) []EECandidate {
	var out []EECandidate
	for ea := range m.surfEdges {
		eaPts := m.surfEdges[ea]
		p1, q1 := m.pos[eaPts[0]], m.pos[eaPts[1]]
		hits := m.edgeTree.QuerySegment(p1, q1, margin)
		for _, eb := range hits {
			if eb <= ea {
				continue
			}
			if m.edgeOneRingExcluded(ea, eb) {
				continue
			}
			ebPts := m.surfEdges[eb]
			p2, q2 := m.pos[ebPts[0]], m.pos[ebPts[1]]
			c1, c2, s, t := geom.SegmentSegmentClosestPoints(p1, q1, p2, q2)
			dist := linalg.NormVec3(linalg.SubVec3(c1, c2))
			if dist > margin {
				continue
			}
			out = append(out, EECandidate{EdgeA: ea, EdgeB: eb, U: s, W: t, Dist: dist})
		}
	}
	return out
}

// PenetratesTriangle reports whether surface edge ea's segment actually
// intersects surface triangle ti's interior, the "inside the collision
// cell" penetration flag of §4.B used to decide the reversed-dual energy
// form independent of the cross-product sign heuristic.
func (m *Mesh) PenetratesTriangle(ti, ea int) bool {
	tri := m.surfTris[ti]
	a, b, c := m.pos[tri.V[0]], m.pos[tri.V[1]], m.pos[tri.V[2]]
	e := m.surfEdges[ea]
	return geom.FaceEdgeIntersection(a, b, c, m.pos[e[0]], m.pos[e[1]])
}
