// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import (
	"github.com/cpmech/tetsim/internal/geom"
	"github.com/cpmech/tetsim/internal/linalg"
)

// VertexFaceMcAdams implements the alternate vertex-face energy of
// McadamsCollision.h/.cpp (§SPEC_FULL C.6): unlike VertexFaceCross, the
// triangle's cross-product normal is not renormalised to unit length every
// evaluation -- it is scaled once by a fixed reference magnitude (twice
// the triangle's rest area) recorded at construction, trading exact
// distance measurement near a degenerate triangle for a normal that never
// needs its own degenerate-normalisation guard. Not wired into the
// default integrator configuration (§9 "can be omitted from a minimal
// implementation"); kept for completeness.
type VertexFaceMcAdams struct {
	Stencil  geom.Stencil4
	Mu       float64
	Eps      float64
	RefNorm  float64 // twice the triangle's rest area, the fixed normalising scale
	Reversed bool
}

// NewVertexFaceMcAdams builds the energy; refNorm must be strictly
// positive (the caller supplies 2*restArea of the candidate triangle).
func NewVertexFaceMcAdams(stencil geom.Stencil4, mu, eps, refNorm float64, reversed bool) *VertexFaceMcAdams {
	return &VertexFaceMcAdams{Stencil: stencil, Mu: mu, Eps: eps, RefNorm: refNorm, Reversed: reversed}
}

func (o *VertexFaceMcAdams) springGeomFixedScale() springGeom {
	u, v := geom.VFCoeffs()
	c := geom.CrossRaw(o.Stencil, u, v)
	dc := geom.CrossGradient12(o.Stencil, u, v)
	d2c := geom.CrossHessian12(u, v)

	inv := 1 / o.RefNorm
	n := linalg.ScaleVec3(inv, c)
	var dn geom.Mat3x12
	for i := 0; i < 3; i++ {
		for l := 0; l < 12; l++ {
			dn[i][l] = dc[i][l] * inv
		}
	}
	var d2n [3]linalg.Mat12
	for i := 0; i < 3; i++ {
		d2n[i] = linalg.ScaleMat12(inv, d2c[i])
	}
	return springGeom{n: n, dn: dn, d2n: d2n, ok: true}
}

func (o *VertexFaceMcAdams) eval() (psi float64, grad linalg.Vec12, hess linalg.Mat12) {
	sg := o.springGeomFixedScale()
	s, gradS, hessS := springLength(sg, o.Stencil, vfTCoeffs(), o.Eps, o.Reversed)
	return quadraticFromSpring(o.Mu, s, gradS, hessS)
}

func (o *VertexFaceMcAdams) Psi() float64 {
	psi, _, _ := o.eval()
	return psi
}

func (o *VertexFaceMcAdams) Gradient() linalg.Vec12 {
	_, grad, _ := o.eval()
	return grad
}

func (o *VertexFaceMcAdams) Hessian() linalg.Mat12 {
	_, _, hess := o.eval()
	return hess
}

func (o *VertexFaceMcAdams) ClampedHessian() linalg.Mat12 {
	return linalg.ClampPSD12(o.Hessian())
}
