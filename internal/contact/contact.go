// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package contact implements the vertex-face and edge-edge collision
// energies (§4.D): cross-product and barycentric/sqrt-form variants, their
// gradients, Hessians and PSD-clamped projections, all operating on a
// packed 12-vector stencil of four vertex positions.
package contact

import (
	"github.com/cpmech/tetsim/internal/geom"
	"github.com/cpmech/tetsim/internal/linalg"
)

// Energy is the capability set every contact potential implements; all
// operate on the same Stencil4 (four stacked vertex positions) convention
// as package geom.
type Energy interface {
	// Psi returns the contact energy density.
	Psi() float64

	// Gradient returns the 12-vector dPsi/dx.
	Gradient() linalg.Vec12

	// Hessian returns the (possibly indefinite) 12x12 d2Psi/dxdx.
	Hessian() linalg.Mat12

	// ClampedHessian returns the PSD-clamped projection of Hessian.
	ClampedHessian() linalg.Mat12
}

// springGeom bundles a normalised cross-product normal and its first and
// second derivatives, shared machinery for every cross-product-based
// energy in this package (vertex-face and edge-edge alike).
type springGeom struct {
	n   linalg.Vec3
	dn  geom.Mat3x12
	d2n [3]linalg.Mat12
	ok  bool
}

func buildSpringGeom(s geom.Stencil4, uCoeffs, vCoeffs [4]float64, tol float64) springGeom {
	c := geom.CrossRaw(s, uCoeffs, vCoeffs)
	dc := geom.CrossGradient12(s, uCoeffs, vCoeffs)
	d2c := geom.CrossHessian12(uCoeffs, vCoeffs)
	n, dn, ok := geom.NormalizedGradient(c, dc, tol)
	if !ok {
		return springGeom{ok: false}
	}
	d2n, ok := geom.NormalizedHessian(c, dc, d2c, tol)
	return springGeom{n: n, dn: dn, d2n: d2n, ok: ok}
}

// springLength evaluates s = n.t - eps and its 12-gradient/Hessian, where
// t = combine(stencil, tCoeffs) is a linear combination of the stencil
// vertices (e.g. v_vertex - v_triangleOrigin). reversed flips the sign of
// s per §4.D's penetration-reversed dual convention.
func springLength(sg springGeom, s geom.Stencil4, tCoeffs [4]float64, eps float64, reversed bool) (val float64, grad linalg.Vec12, hess linalg.Mat12) {
	var t linalg.Vec3
	for k := 0; k < 4; k++ {
		t = linalg.AddVec3(t, linalg.ScaleVec3(tCoeffs[k], s[k]))
	}
	val = linalg.DotVec3(sg.n, t) - eps

	for l := 0; l < 12; l++ {
		vtx, comp := l/3, l%3
		var sum float64
		for i := 0; i < 3; i++ {
			sum += sg.dn[i][l] * t[i]
		}
		grad[l] = sum + sg.n[comp]*tCoeffs[vtx]
	}

	for k := 0; k < 12; k++ {
		vtxK, compK := k/3, k%3
		for l := 0; l < 12; l++ {
			vtxL, compL := l/3, l%3
			var sum float64
			for i := 0; i < 3; i++ {
				sum += sg.d2n[i][k][l] * t[i]
			}
			sum += sg.dn[compL][k] * tCoeffs[vtxL]
			sum += sg.dn[compK][l] * tCoeffs[vtxK]
			hess[k][l] = sum
		}
	}

	if reversed {
		val = -val
		for k := 0; k < 12; k++ {
			grad[k] = -grad[k]
		}
		hess = linalg.ScaleMat12(-1, hess)
	}
	return
}

// quadraticFromSpring assembles psi = mu*s^2 and its chain-rule
// gradient/Hessian from the spring length s and its own gradient/Hessian.
func quadraticFromSpring(mu, s float64, gradS linalg.Vec12, hessS linalg.Mat12) (psi float64, grad linalg.Vec12, hess linalg.Mat12) {
	psi = mu * s * s
	for k := 0; k < 12; k++ {
		grad[k] = 2 * mu * s * gradS[k]
	}
	outer := linalg.OuterVec12(gradS, gradS)
	for k := 0; k < 12; k++ {
		for l := 0; l < 12; l++ {
			hess[k][l] = 2 * mu * (outer[k][l] + s*hessS[k][l])
		}
	}
	return
}
