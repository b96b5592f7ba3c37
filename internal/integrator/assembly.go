// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrator

import (
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/tetsim/internal/contact"
	"github.com/cpmech/tetsim/internal/geom"
	"github.com/cpmech/tetsim/internal/linalg"
	"github.com/cpmech/tetsim/internal/mesh"
)

// dofBlock is one 12x12 local contribution together with the four global
// vertex indices it scatters into, the common shape shared by element and
// contact stiffness contributions during assembly.
type dofBlock struct {
	verts [4]int
	force linalg.Vec12
	stiff linalg.Mat12
}

const (
	contactEps            = 1e-3 // the epsilon offset of every contact spring (§4.D)
	separationEps         = 1e-4 // the hybrid edge-edge energy's cross-over threshold (§4.D)
	collisionMarginFactor = 4
)

func collisionMargin() float64 { return collisionMarginFactor * contactEps }

// assembleSystem builds R (internal elastic force plus active contact
// force, per vertex), the global clamped stiffness K as a gosl sparse
// matrix, and separately returns the contact blocks so the caller can fold
// beta_c*H_contact into C (§4.G "Contact force/Hessian injection... Add
// beta_c*H_contact to C") without ever reading back a compressed matrix's
// internals.
func (o *Integrator) assembleSystem() (R []linalg.Vec3, K *la.CCMatrix, contactBlocks []dofBlock) {
	n := o.mesh.NumVertices()
	R = make([]linalg.Vec3, n)

	var blocks []dofBlock
	for _, c := range o.mesh.AssembleElastic(o.material) {
		t := o.mesh.Tet(c.Tet)
		blocks = append(blocks, dofBlock{verts: t.V, force: c.Force, stiff: c.Stiff})
	}

	contactBlocks = o.assembleContacts()
	blocks = append(blocks, contactBlocks...)

	for _, b := range blocks {
		for p, vi := range b.verts {
			R[vi] = linalg.AddVec3(R[vi], linalg.Vec3{b.force[3*p], b.force[3*p+1], b.force[3*p+2]})
		}
	}

	K = scatterTriplet(n, blocks, 1)
	return
}

// putBlocks writes scale*block[p][q] into an already-initialised triplet
// at global dof coordinates; several calls can accumulate into the same
// triplet before a single ToMatrix conversion, which is how dampingMatrix
// below combines mass, rest stiffness and contact contributions without
// ever adding two compressed matrices together.
func putBlocks(trip *la.Triplet, blocks []dofBlock, scale float64) {
	for _, b := range blocks {
		for p, vi := range b.verts {
			for q, vj := range b.verts {
				for a := 0; a < 3; a++ {
					for c := 0; c < 3; c++ {
						val := scale * b.stiff[3*p+a][3*q+c]
						if val != 0 {
							trip.Put(3*vi+a, 3*vj+c, val)
						}
					}
				}
			}
		}
	}
}

// scatterTriplet puts scale*block[p][q] into a fresh gosl sparse triplet
// at global dof coordinates, converting to a compressed matrix; rebuilding
// from scratch every call realizes the "compressed-index" assembly of
// §4.E without hand-rolled index bookkeeping (same pattern as
// mesh.ScatterTriplet).
func scatterTriplet(n int, blocks []dofBlock, scale float64) *la.CCMatrix {
	trip := new(la.Triplet)
	trip.Init(3*n, 3*n, 144*len(blocks)+1)
	putBlocks(trip, blocks, scale)
	trip.Put(3*n-1, 3*n-1, 0) // guarantees a non-empty triplet even with no blocks
	return trip.ToMatrix(nil)
}

// assembleContacts evaluates every active vertex-face and edge-edge
// contact energy at the classified candidate pairs, weighting each by
// one-third the rest areas of the face and the vertex's one-ring (vertex-
// face) or the sum of the two edges' rest lengths (edge-edge), per §4.G.
func (o *Integrator) assembleContacts() []dofBlock {
	var out []dofBlock
	if o.vertexFaceSelfCollision {
		for _, cand := range o.mesh.CandidateVertexFace(collisionMargin()) {
			stencil, verts := o.vfStencil(cand)
			ringArea := 0.0
			for ti, tri := range o.mesh.SurfaceTriangles() {
				if tri.V[0] == cand.Vertex || tri.V[1] == cand.Vertex || tri.V[2] == cand.Vertex {
					ringArea += o.mesh.TriangleRestArea(ti) / 3
				}
			}
			areaWeight := (o.mesh.TriangleRestArea(cand.Tri) + ringArea) / 3
			energy := contact.NewVertexFaceSqrt(stencil, [3]float64{cand.Bary[0], cand.Bary[1], cand.Bary[2]}, o.collisionStiffness*areaWeight, contactEps, cand.Reversed)
			out = append(out, dofBlock{
				verts: verts,
				force: negate12(energy.Gradient()),
				stiff: linalg.ScaleMat12(-1, energy.ClampedHessian()),
			})
		}
	}
	if o.edgeEdgeSelfCollision {
		for _, cand := range o.mesh.CandidateEdgeEdge(collisionMargin()) {
			stencil, verts := o.eeStencil(cand)
			areaWeight := o.mesh.EdgeRestArea(cand.EdgeA) + o.mesh.EdgeRestArea(cand.EdgeB)
			energy := contact.NewEdgeEdgeHybrid(stencil, cand.U, cand.W, o.collisionStiffness*areaWeight, contactEps, separationEps, cand.Reversed)
			out = append(out, dofBlock{
				verts: verts,
				force: negate12(energy.Gradient()),
				stiff: linalg.ScaleMat12(-1, energy.ClampedHessian()),
			})
		}
	}
	return out
}

// vfStencil packs the collision-vertex-first stencil convention (§3) for
// a vertex-face candidate.
func (o *Integrator) vfStencil(cand mesh.VFCandidate) (geom.Stencil4, [4]int) {
	tri := o.mesh.SurfaceTriangles()[cand.Tri]
	verts := [4]int{cand.Vertex, tri.V[0], tri.V[1], tri.V[2]}
	var s geom.Stencil4
	for i, vi := range verts {
		s[i] = o.mesh.Position(vi)
	}
	return s, verts
}

// eeStencil packs the {edgeA0, edgeA1, edgeB0, edgeB1} stencil convention
// for an edge-edge candidate.
func (o *Integrator) eeStencil(cand mesh.EECandidate) (geom.Stencil4, [4]int) {
	ea := o.mesh.SurfaceEdges()[cand.EdgeA]
	eb := o.mesh.SurfaceEdges()[cand.EdgeB]
	verts := [4]int{ea[0], ea[1], eb[0], eb[1]}
	var s geom.Stencil4
	for i, vi := range verts {
		s[i] = o.mesh.Position(vi)
	}
	return s, verts
}

func negate12(v linalg.Vec12) linalg.Vec12 {
	var r linalg.Vec12
	for i := range v {
		r[i] = -v[i]
	}
	return r
}
