// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package geom implements the collision-geometry kernels shared by the
// vertex-face and edge-edge contact energies (§4.B): normal gradients and
// Hessians of the cross product defining a face or edge-edge "normal",
// point-triangle distance, segment-segment closest points, and face-edge
// intersection.
package geom

import (
	"github.com/cpmech/tetsim/internal/linalg"
)

// Mat3x12 is a 3x12 Jacobian, row-major [component][stacked-vertex-index].
type Mat3x12 = [3][12]float64

// Stencil4 is four stacked 3-vectors (e.g. vertex-face: collision vertex +
// triangle, or edge-edge: two segment endpoints each).
type Stencil4 = [4]linalg.Vec3

// Flatten12 stacks the four stencil vertices into a 12-vector.
func Flatten12(s Stencil4) linalg.Vec12 {
	return linalg.FlattenVerts12(s[0], s[1], s[2], s[3])
}

// combine evaluates sum_k coeffs[k]*s[k] for a Stencil4.
func combine(s Stencil4, coeffs [4]float64) linalg.Vec3 {
	var r linalg.Vec3
	for k := 0; k < 4; k++ {
		r = linalg.AddVec3(r, linalg.ScaleVec3(coeffs[k], s[k]))
	}
	return r
}

// CrossRaw evaluates u x v where u = sum uCoeffs[k]*s[k] and
// v = sum vCoeffs[k]*s[k], i.e. the unnormalised cross product used to
// build either a face normal (vertex-face case) or an edge-pair normal
// (edge-edge case).
func CrossRaw(s Stencil4, uCoeffs, vCoeffs [4]float64) linalg.Vec3 {
	u := combine(s, uCoeffs)
	v := combine(s, vCoeffs)
	return linalg.CrossVec3(u, v)
}

// CrossGradient12 returns the 3x12 Jacobian of CrossRaw with respect to the
// 12 flattened stencil coordinates. Because the cross product is bilinear
// in u and v, and u, v are themselves linear combinations of the stencil
// vertices, the Jacobian block for vertex k is
// uCoeffs[k]*(-[v]x) + vCoeffs[k]*[u]x, a fixed sparse pattern (§4.B).
func CrossGradient12(s Stencil4, uCoeffs, vCoeffs [4]float64) Mat3x12 {
	u := combine(s, uCoeffs)
	v := combine(s, vCoeffs)
	su := skew(u)
	sv := skew(v)
	var J Mat3x12
	for k := 0; k < 4; k++ {
		var block linalg.Mat3
		if uCoeffs[k] != 0 {
			block = linalg.AddMat3(block, linalg.ScaleMat3(-uCoeffs[k], sv))
		}
		if vCoeffs[k] != 0 {
			block = linalg.AddMat3(block, linalg.ScaleMat3(vCoeffs[k], su))
		}
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				J[r][3*k+c] = block[r][c]
			}
		}
	}
	return J
}

func skew(v linalg.Vec3) linalg.Mat3 {
	return linalg.Mat3{
		{0, -v[2], v[1]},
		{v[2], 0, -v[0]},
		{-v[1], v[0], 0},
	}
}

// leviCivita returns the Levi-Civita symbol epsilon_{mab}.
func leviCivita(m, a, b int) float64 {
	if m == a || a == b || m == b {
		return 0
	}
	// (0,1,2),(1,2,0),(2,0,1) even; others odd
	switch [3]int{m, a, b} {
	case [3]int{0, 1, 2}, [3]int{1, 2, 0}, [3]int{2, 0, 1}:
		return 1
	default:
		return -1
	}
}

// CrossHessian12 returns the rank-3 Hessian of CrossRaw, a fixed sparse
// tensor with entries in {-1,0,+1} scaled by the (also {-1,0,1}-valued)
// uCoeffs/vCoeffs products; returned as three 12x12 matrices, one per
// output component m (§4.B, "a fixed sparse rank-3 tensor with entries in
// {-1,0,+1}").
func CrossHessian12(uCoeffs, vCoeffs [4]float64) [3]linalg.Mat12 {
	var H [3]linalg.Mat12
	for p := 0; p < 4; p++ {
		for q := 0; q < 4; q++ {
			scal := uCoeffs[p]*vCoeffs[q] - uCoeffs[q]*vCoeffs[p]
			if scal == 0 {
				continue
			}
			for alpha := 0; alpha < 3; alpha++ {
				for beta := 0; beta < 3; beta++ {
					if alpha == beta {
						continue
					}
					for m := 0; m < 3; m++ {
						e := leviCivita(m, alpha, beta)
						if e == 0 {
							continue
						}
						H[m][3*p+alpha][3*q+beta] = e * scal
					}
				}
			}
		}
	}
	return H
}

// NormalizedGradient returns n = c/||c|| together with its 3x12 Jacobian,
// given the raw (unnormalised) cross product c and its Jacobian dc. When
// ||c|| falls below tol the face/edge configuration is degenerate; the
// caller (not this kernel, per §4.B) decides what to do, so a zero normal
// and zero Jacobian are returned.
func NormalizedGradient(c linalg.Vec3, dc Mat3x12, tol float64) (n linalg.Vec3, dn Mat3x12, ok bool) {
	r := linalg.NormVec3(c)
	if r < tol {
		return linalg.Vec3{}, Mat3x12{}, false
	}
	n = linalg.ScaleVec3(1/r, c)
	for k := 0; k < 12; k++ {
		var dck linalg.Vec3
		for j := 0; j < 3; j++ {
			dck[j] = dc[j][k]
		}
		dot := linalg.DotVec3(n, dck)
		for i := 0; i < 3; i++ {
			dn[i][k] = (dck[i] - n[i]*dot) / r
		}
	}
	ok = true
	return
}

// NormalizedHessian returns the rank-3 Hessian of the normalised normal
// n = c/||c||, given the raw cross product c, its Jacobian dc and its
// Hessian d2c, via the quotient-rule expansion of the projection
// I - n*nᵀ (§4.B).
func NormalizedHessian(c linalg.Vec3, dc Mat3x12, d2c [3]linalg.Mat12, tol float64) (d2n [3]linalg.Mat12, ok bool) {
	r := linalg.NormVec3(c)
	if r < tol {
		return [3]linalg.Mat12{}, false
	}
	n := linalg.ScaleVec3(1/r, c)
	_, dn, _ := NormalizedGradient(c, dc, tol)

	// dr[k] = d||c||/dx_k = n . dc[:,k]
	var dr [12]float64
	for k := 0; k < 12; k++ {
		var dck linalg.Vec3
		for j := 0; j < 3; j++ {
			dck[j] = dc[j][k]
		}
		dr[k] = linalg.DotVec3(n, dck)
	}
	for i := 0; i < 3; i++ {
		for k := 0; k < 12; k++ {
			for l := 0; l < 12; l++ {
				term1 := -(dr[l] / r) * dn[i][k]

				var sumJDnDc float64
				for j := 0; j < 3; j++ {
					sumJDnDc += dn[j][l] * dc[j][k]
				}
				term2 := (-dn[i][l]*dr[k] - n[i]*sumJDnDc) / r

				var sumJPijD2c float64
				for j := 0; j < 3; j++ {
					pij := -n[i] * n[j]
					if i == j {
						pij += 1
					}
					sumJPijD2c += pij * d2c[j][k][l]
				}
				term3 := sumJPijD2c / r

				d2n[i][k][l] = term1 + term2 + term3
			}
		}
	}
	ok = true
	return
}

// VFCoeffs returns the (u,v) linear combination coefficients for the
// vertex-face cross product, given a stencil ordered
// {collisionVertex, triA, triB, triC}: u = triA-triB, v = triC-triB, so
// that n = u x v is the triangle normal independent of the collision
// vertex; it equals -(triB-triA) x (triC-triA), so for a triangle wound
// counter-clockwise seen from outside it points inward. This matches the
// production convention (the spec's own
// variable names differ but describe the identical construction).
func VFCoeffs() (u, v [4]float64) {
	return [4]float64{0, 1, -1, 0}, [4]float64{0, 0, -1, 1}
}

// EECoeffs returns the (u,v) coefficients for the edge-edge cross product,
// given a stencil ordered {edgeA0, edgeA1, edgeB0, edgeB1}: u = A1-A0
// (first edge direction), v = B1-B0 (second edge direction).
func EECoeffs() (u, v [4]float64) {
	return [4]float64{-1, 1, 0, 0}, [4]float64{0, 0, -1, 1}
}

// DegenerateAreaRatio reports whether the ratio of current to rest area is
// below the threshold used to skip degenerate triangles during collision
// detection (§7, supplemented from original_source TET_Mesh_Faster.cpp).
func DegenerateAreaRatio(currentArea, restArea float64) bool {
	if restArea <= 0 {
		return true
	}
	return currentArea/restArea < 1e-4
}
