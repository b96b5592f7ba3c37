// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/tetsim/internal/linalg"
	"github.com/cpmech/tetsim/internal/material"
)

// ElementContribution is one tet's force and (clamped-PSD) stiffness
// contribution, in the local 12-dof stacked-vertex ordering (§4.E).
type ElementContribution struct {
	Tet   int
	Force linalg.Vec12
	Stiff linalg.Mat12 // -Vr * dFdxT * H * dFdx, already PSD-clamped upstream
}

// AssembleElastic computes every tet's elastic force and Hessian
// contribution under the given material model. Materials that advertise
// NeedsSVDForEnergy/NeedsSVDForStress are handed the tet's cached SVD;
// UpdateDeformation must have been called first (§4.C, §4.E).
func (m *Mesh) AssembleElastic(model material.Model) []ElementContribution {
	out := make([]ElementContribution, len(m.tets))
	for k := range m.tets {
		t := &m.tets[k]
		var svd *material.SVD3
		if model.NeedsSVDForEnergy() || model.NeedsSVDForStress() {
			svd = &material.SVD3{U: t.U, V: t.Vr, Sigma: t.Sigma}
		}
		P := model.PK1(t.F, svd)
		H := model.ClampedHessian(t.F, svd)

		flatP := linalg.Flatten3(P)
		forceFlat := linalg.MulTransMat9x12Vec9(t.DFDx, flatP)
		force := linalg.ScaleVec12(-t.RestVol, forceFlat)

		K := linalg.SandwichMat9x12(t.DFDx, H)
		stiff := linalg.ScaleMat12(-t.RestVol, K)

		out[k] = ElementContribution{Tet: k, Force: force, Stiff: stiff}
	}
	return out
}

// AssembleDamping computes every tet's damping force and its 9x9 velocity
// Hessian, scaled into local 12x12 blocks exactly like AssembleElastic
// (§4.C); the position cross-term (CrossHessian) is not assembled.
func (m *Mesh) AssembleDamping(model material.Damping) []ElementContribution {
	out := make([]ElementContribution, len(m.tets))
	for k := range m.tets {
		t := &m.tets[k]
		Pd := model.StressDot(t.F, t.Fdot)
		Hv := model.Hessian(t.F, t.Fdot)

		flatPd := linalg.Flatten3(Pd)
		forceFlat := linalg.MulTransMat9x12Vec9(t.DFDx, flatPd)
		force := linalg.ScaleVec12(-t.RestVol, forceFlat)

		K := linalg.SandwichMat9x12(t.DFDx, Hv)
		stiff := linalg.ScaleMat12(-t.RestVol, K)

		out[k] = ElementContribution{Tet: k, Force: force, Stiff: stiff}
	}
	return out
}

// ScatterForce adds every contribution's local 12-vector into a global
// force buffer of length 3*NumVertices.
func (m *Mesh) ScatterForce(contribs []ElementContribution, global []linalg.Vec3) {
	for _, c := range contribs {
		t := &m.tets[c.Tet]
		for p, vi := range t.V {
			global[vi] = linalg.AddVec3(global[vi], linalg.Vec3{c.Force[3*p], c.Force[3*p+1], c.Force[3*p+2]})
		}
	}
}

// ScatterTriplet writes every contribution's local 12x12 block into a
// gosl sparse triplet at its global (3*vi+c, 3*vj+c) coordinates; the
// triplet's own duplicate-entry accumulation on conversion to a CC matrix
// realizes the "rebuild from scratch every step" assembly strategy (§4.E)
// without hand-rolled compressed-index bookkeeping.
func (m *Mesh) ScatterTriplet(contribs []ElementContribution, trip *la.Triplet) {
	for _, c := range contribs {
		t := &m.tets[c.Tet]
		for p, vi := range t.V {
			for q, vj := range t.V {
				for a := 0; a < 3; a++ {
					for b := 0; b < 3; b++ {
						val := c.Stiff[3*p+a][3*q+b]
						if val != 0 {
							trip.Put(3*vi+a, 3*vj+b, val)
						}
					}
				}
			}
		}
	}
}

// NNZUpperBound returns a safe upper bound on the number of non-zero
// entries an assembly over all tets (144 per tet) plus extra contacts
// will produce, for sizing a fresh la.Triplet every step (§4.E).
func (m *Mesh) NNZUpperBound(extraBlocks12x12 int) int {
	return 144*len(m.tets) + 144*extraBlocks12x12
}
