// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import (
	"github.com/cpmech/tetsim/internal/geom"
	"github.com/cpmech/tetsim/internal/linalg"
)

// VertexFaceCross implements the vertex-face cross-product energy of
// §4.D: stencil {collisionVertex, triA, triB, triC}, normal
// n = (triA-triB) x (triC-triB) normalised, spring length
// s = n.(vertex-triB) - eps, psi = mu*s^2. It needs a non-degenerate
// triangle normal; the integrator itself uses the sqrt-form
// VertexFaceSqrt, and this form is the alternative (§4.D).
type VertexFaceCross struct {
	Stencil  geom.Stencil4
	Mu       float64
	Eps      float64
	Reversed bool

	sg  springGeom
	ok  bool
}

// NewVertexFaceCross builds the energy for a fixed stencil snapshot; the
// normal and its derivatives are evaluated once at construction since the
// stencil does not change within a single assembly pass, while Psi,
// Gradient and Hessian are computed from them on each call.
func NewVertexFaceCross(stencil geom.Stencil4, mu, eps float64, reversed bool) (*VertexFaceCross, bool) {
	u, v := geom.VFCoeffs()
	sg := buildSpringGeom(stencil, u, v, 1e-12)
	return &VertexFaceCross{Stencil: stencil, Mu: mu, Eps: eps, Reversed: reversed, sg: sg, ok: sg.ok}, sg.ok
}

// vfTCoeffs gives t = vertex - triB for the stencil {vertex,triA,triB,triC}.
func vfTCoeffs() [4]float64 { return [4]float64{1, 0, -1, 0} }

func (o *VertexFaceCross) eval() (psi float64, grad linalg.Vec12, hess linalg.Mat12) {
	s, gradS, hessS := springLength(o.sg, o.Stencil, vfTCoeffs(), o.Eps, o.Reversed)
	return quadraticFromSpring(o.Mu, s, gradS, hessS)
}

func (o *VertexFaceCross) Psi() float64 {
	psi, _, _ := o.eval()
	return psi
}

func (o *VertexFaceCross) Gradient() linalg.Vec12 {
	_, grad, _ := o.eval()
	return grad
}

func (o *VertexFaceCross) Hessian() linalg.Mat12 {
	_, _, hess := o.eval()
	return hess
}

func (o *VertexFaceCross) ClampedHessian() linalg.Mat12 {
	return linalg.ClampPSD12(o.Hessian())
}
