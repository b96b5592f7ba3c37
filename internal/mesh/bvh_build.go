// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"github.com/cpmech/tetsim/internal/bvh"
	"github.com/cpmech/tetsim/internal/linalg"
)

// triBox returns the current-configuration AABB of surface triangle ti.
func (m *Mesh) triBox(ti int) bvh.AABB {
	tri := m.surfTris[ti]
	return bvh.FromPoints(m.pos[tri.V[0]], m.pos[tri.V[1]], m.pos[tri.V[2]])
}

func (m *Mesh) triCentroid(ti int) linalg.Vec3 {
	return m.triBox(ti).Centroid()
}

func (m *Mesh) edgeBox(ei int) bvh.AABB {
	e := m.surfEdges[ei]
	return bvh.FromPoints(m.pos[e[0]], m.pos[e[1]])
}

func (m *Mesh) edgeCentroid(ei int) linalg.Vec3 {
	e := m.surfEdges[ei]
	return linalg.ScaleVec3(0.5, linalg.AddVec3(m.pos[e[0]], m.pos[e[1]]))
}

// buildBVH constructs fresh triangle and edge AABB trees over the current
// (at construction time, rest-pose) surface configuration (§3, §5).
func (m *Mesh) buildBVH() {
	m.triTree = bvh.Build(len(m.surfTris), m.triBox, m.triCentroid)
	m.edgeTree = bvh.Build(len(m.surfEdges), m.edgeBox, m.edgeCentroid)
}

// RefitBVH recomputes node boxes bottom-up after vertex positions change,
// without altering tree topology (§5).
func (m *Mesh) RefitBVH() {
	if len(m.surfTris) > 0 {
		m.triTree.Refit(m.triBox)
	}
	if len(m.surfEdges) > 0 {
		m.edgeTree.Refit(m.edgeBox)
	}
}

// TriangleTree exposes the surface-triangle AABB tree for candidate queries.
func (m *Mesh) TriangleTree() *bvh.Tree { return m.triTree }

// EdgeTree exposes the surface-edge AABB tree for candidate queries.
func (m *Mesh) EdgeTree() *bvh.Tree { return m.edgeTree }
