// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import (
	"github.com/cpmech/tetsim/internal/geom"
	"github.com/cpmech/tetsim/internal/linalg"
)

// EdgeEdgeBary implements the edge-edge barycentric/sqrt-form energy of
// §4.D: closest points pA = edgeA0 + u*(edgeA1-edgeA0),
// pB = edgeB0 + w*(edgeB1-edgeB0) for the closest-point parameters u,w
// (typically from geom.SegmentSegmentClosestPoints), t = pA - pB,
// psi = mu*(||t||-eps)^2.
type EdgeEdgeBary struct {
	Stencil  geom.Stencil4
	U, W     float64
	Mu       float64
	Eps      float64
	Reversed bool
}

func NewEdgeEdgeBary(stencil geom.Stencil4, u, w, mu, eps float64, reversed bool) *EdgeEdgeBary {
	return &EdgeEdgeBary{Stencil: stencil, U: u, W: w, Mu: mu, Eps: eps, Reversed: reversed}
}

// tCoeffs gives t = (A0+u*(A1-A0)) - (B0+w*(B1-B0))
//
//	= (1-u)*A0 + u*A1 - (1-w)*B0 - w*B1
func (o *EdgeEdgeBary) tCoeffs() [4]float64 {
	return [4]float64{1 - o.U, o.U, -(1 - o.W), -o.W}
}

func (o *EdgeEdgeBary) t() linalg.Vec3 {
	var t linalg.Vec3
	coeffs := o.tCoeffs()
	for k := 0; k < 4; k++ {
		t = linalg.AddVec3(t, linalg.ScaleVec3(coeffs[k], o.Stencil[k]))
	}
	return t
}

func (o *EdgeEdgeBary) eval() (psi float64, grad linalg.Vec12, hess linalg.Mat12) {
	t := o.t()
	r := linalg.NormVec3(t)
	coeffs := o.tCoeffs()

	const tol = 1e-7
	if r < tol {
		return o.Mu * o.Eps * o.Eps, linalg.Vec12{}, linalg.Mat12{}
	}
	dir := linalg.ScaleVec3(1/r, t)
	s := r - o.Eps
	if o.Reversed {
		s = -s
	}

	var gradR linalg.Vec12
	for l := 0; l < 12; l++ {
		vtx, comp := l/3, l%3
		gradR[l] = dir[comp] * coeffs[vtx]
	}

	var hessR linalg.Mat12
	for k := 0; k < 12; k++ {
		vtxK, compK := k/3, k%3
		for l := 0; l < 12; l++ {
			vtxL, compL := l/3, l%3
			var proj float64
			if compK == compL {
				proj = 1
			}
			proj -= dir[compK] * dir[compL]
			hessR[k][l] = proj * coeffs[vtxK] * coeffs[vtxL] / r
		}
	}
	if o.Reversed {
		for l := 0; l < 12; l++ {
			gradR[l] = -gradR[l]
		}
		hessR = linalg.ScaleMat12(-1, hessR)
	}

	return quadraticFromSpring(o.Mu, s, gradR, hessR)
}

func (o *EdgeEdgeBary) Psi() float64 {
	psi, _, _ := o.eval()
	return psi
}

func (o *EdgeEdgeBary) Gradient() linalg.Vec12 {
	_, grad, _ := o.eval()
	return grad
}

func (o *EdgeEdgeBary) Hessian() linalg.Mat12 {
	_, _, hess := o.eval()
	return hess
}

func (o *EdgeEdgeBary) ClampedHessian() linalg.Mat12 {
	return linalg.ClampPSD12(o.Hessian())
}
