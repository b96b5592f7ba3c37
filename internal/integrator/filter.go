// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrator

import "github.com/cpmech/tetsim/internal/linalg"

// filter holds the block-diagonal Baraff-Witkin S (and implicitly
// S-bar = I - S) as one 3x3 block per vertex (§4.G): identity except at
// constrained vertices, where the block is (I - n*nT) for a plane
// constraint or zero for a kinematic point constraint. The complement is
// never materialised densely -- applySBar below reconstructs it from S.
type filter struct {
	blocks []linalg.Mat3 // per-vertex S block
}

func newFilter(n int) *filter {
	f := &filter{blocks: make([]linalg.Mat3, n)}
	for i := range f.blocks {
		f.blocks[i] = linalg.Ident3()
	}
	return f
}

// buildFilter assembles S from the active (non-separating) plane
// constraints, applied first, then the kinematic point constraints
// overriding them last, matching the original solver's "kinematic
// constraints are applied LAST, they override any prior plane
// constraints" ordering.
func (o *Integrator) buildFilter() *filter {
	f := newFilter(o.mesh.NumVertices())
	for _, c := range o.plane {
		if c.IsSeparating {
			continue
		}
		n := c.Shape.LocalNormalToWorld(c.LocalNormal)
		n, _ = linalg.UnitVec3(n, 1e-12)
		f.blocks[c.VertexID] = linalg.SubMat3(linalg.Ident3(), linalg.OuterVec3(n, n))
	}
	for _, c := range o.kinematic {
		f.blocks[c.VertexID] = linalg.Mat3{}
	}
	return f
}

// applyS applies the filter block-diagonally: r[v] = S_v * x[v].
func (f *filter) applyS(x []linalg.Vec3) []linalg.Vec3 {
	r := make([]linalg.Vec3, len(x))
	for v := range x {
		r[v] = linalg.MatVec3(f.blocks[v], x[v])
	}
	return r
}

// applySBar applies the complement: r[v] = (I - S_v) * x[v].
func (f *filter) applySBar(x []linalg.Vec3) []linalg.Vec3 {
	r := make([]linalg.Vec3, len(x))
	for v := range x {
		sBar := linalg.SubMat3(linalg.Ident3(), f.blocks[v])
		r[v] = linalg.MatVec3(sBar, x[v])
	}
	return r
}

// constraintTargets returns z, the desired Delta-v at every constrained
// direction: for a kinematic pin, the velocity that closes the gap to
// the shape's current world transform of the pinned local point in one
// step; for a plane constraint, the Delta-v component along the normal
// needed to reach the recorded local closest point (§4.G). f is the
// already-built filter for this step, so S-bar here is guaranteed
// consistent with the S used to build the LHS.
func (o *Integrator) constraintTargets(f *filter) []linalg.Vec3 {
	z := make([]linalg.Vec3, o.mesh.NumVertices())
	for _, c := range o.plane {
		if c.IsSeparating {
			continue
		}
		v := c.VertexID
		world := c.Shape.LocalVertexToWorld(c.LocalClosest)
		xDelta := linalg.SubVec3(world, o.mesh.Position(v))
		vDelta := linalg.SubVec3(linalg.ScaleVec3(1/o.dt, xDelta), o.velocity[v])
		z[v] = vDelta
	}
	for _, c := range o.kinematic {
		v := c.VertexID
		world := c.Shape.LocalVertexToWorld(c.LocalPosition)
		xDelta := linalg.SubVec3(world, o.mesh.Position(v))
		z[v] = linalg.SubVec3(linalg.ScaleVec3(1/o.dt, xDelta), o.velocity[v])
	}
	// per §4.G: z only carries the S-bar (constrained-direction) part.
	return f.applySBar(z)
}
