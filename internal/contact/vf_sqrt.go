// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import (
	"github.com/cpmech/tetsim/internal/geom"
	"github.com/cpmech/tetsim/internal/linalg"
)

// VertexFaceSqrt implements the preferred production vertex-face energy
// of §4.D: t = v_vertex - (b0*triA+b1*triB+b2*triC) for barycentric
// weights b derived from the current configuration (supplied by the
// caller, typically the mesh's collision-candidate classification), psi =
// mu*(||t||-eps)^2. Well defined even when the cross-product normal
// becomes degenerate, since it never needs a face normal to evaluate.
type VertexFaceSqrt struct {
	Stencil  geom.Stencil4
	Bary     [3]float64
	Mu       float64
	Eps      float64
	Reversed bool
}

func NewVertexFaceSqrt(stencil geom.Stencil4, bary [3]float64, mu, eps float64, reversed bool) *VertexFaceSqrt {
	return &VertexFaceSqrt{Stencil: stencil, Bary: bary, Mu: mu, Eps: eps, Reversed: reversed}
}

// tCoeffs gives t = vertex - (b0*triA+b1*triB+b2*triC).
func (o *VertexFaceSqrt) tCoeffs() [4]float64 {
	return [4]float64{1, -o.Bary[0], -o.Bary[1], -o.Bary[2]}
}

func (o *VertexFaceSqrt) t() linalg.Vec3 {
	var t linalg.Vec3
	coeffs := o.tCoeffs()
	for k := 0; k < 4; k++ {
		t = linalg.AddVec3(t, linalg.ScaleVec3(coeffs[k], o.Stencil[k]))
	}
	return t
}

// Reversal reports whether this stencil's direction already points
// through the face (the penetrated case), per §4.D: "a reversal flag
// obtained from the dot product of the direction with the face normal."
func Reversal(direction, faceNormal linalg.Vec3) bool {
	return linalg.DotVec3(direction, faceNormal) < 0
}

func (o *VertexFaceSqrt) eval() (psi float64, grad linalg.Vec12, hess linalg.Mat12) {
	t := o.t()
	r := linalg.NormVec3(t)
	coeffs := o.tCoeffs()

	const tol = 1e-7
	if r < tol {
		// t degenerate (vertex exactly at the reference point): the
		// distance's gradient is undefined; report zero to avoid NaN
		// propagation, matching the geometry kernels' degenerate convention.
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
	if o.Reversed {
		for l := 0; l < 12; l++ {
			gradR[l] = -gradR[l]
		}
	}

	// d2r/dxdx = (I - dir*dirT)/r projected through the coeffs outer product.
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
		hessR = linalg.ScaleMat12(-1, hessR)
	}

	return quadraticFromSpring(o.Mu, s, gradR, hessR)
}

func (o *VertexFaceSqrt) Psi() float64 {
	psi, _, _ := o.eval()
	return psi
}

func (o *VertexFaceSqrt) Gradient() linalg.Vec12 {
	_, grad, _ := o.eval()
	return grad
}

func (o *VertexFaceSqrt) Hessian() linalg.Mat12 {
	_, _, hess := o.eval()
	return hess
}

func (o *VertexFaceSqrt) ClampedHessian() linalg.Mat12 {
	return linalg.ClampPSD12(o.Hessian())
}
