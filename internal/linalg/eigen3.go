// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import "math"

// EigSym3 returns the eigenvalues (ascending) and an orthonormal eigenvector
// basis of the symmetric matrix A, using the closed-form trigonometric
// solution of the characteristic cubic (Smith's algorithm). This is the
// "closed-form eigensystem of 3x3" kernel of §4.A; SVDRV calls it on FᵀF
// for every tet, every step, and ScalingModesRotated takes its
// eigenvectors as input.
func EigSym3(A Mat3) (vals Vec3, vecs Mat3) {
	p1 := A[0][1]*A[0][1] + A[0][2]*A[0][2] + A[1][2]*A[1][2]
	if p1 == 0 {
		// already diagonal
		vals = Vec3{A[0][0], A[1][1], A[2][2]}
		vecs = Ident3()
		sortEig3(&vals, &vecs)
		return
	}
	q := Trace3(A) / 3
	p2 := (A[0][0]-q)*(A[0][0]-q) + (A[1][1]-q)*(A[1][1]-q) + (A[2][2]-q)*(A[2][2]-q) + 2*p1
	p := math.Sqrt(p2 / 6)
	var B Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			B[i][j] = (A[i][j] - boolDiag(i, j)*q) / p
		}
	}
	r := Det3(B) / 2
	if r > 1 {
		r = 1
	}
	if r < -1 {
		r = -1
	}
	phi := math.Acos(r) / 3

	eig1 := q + 2*p*math.Cos(phi)
	eig3 := q + 2*p*math.Cos(phi+2*math.Pi/3)
	eig2 := 3*q - eig1 - eig3
	vals = Vec3{eig1, eig2, eig3}

	for k := 0; k < 3; k++ {
		vecs[k] = eigvec3(A, vals[k])
	}
	// transpose so vecs[i] is a column vector in matrix form: vecs stored
	// as rows here, convert to column convention used by callers (V with
	// eigenvectors as columns).
	vecs = Transpose3(vecs)
	sortEig3(&vals, &vecs)
	return
}

func boolDiag(i, j int) float64 {
	if i == j {
		return 1
	}
	return 0
}

// eigvec3 finds a unit eigenvector of symmetric A for eigenvalue lam via the
// cross product of two rows of (A - lam I), picking the pair with the
// largest cross-product norm for numerical stability.
func eigvec3(A Mat3, lam float64) Vec3 {
	var M Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			M[i][j] = A[i][j] - boolDiag(i, j)*lam
		}
	}
	r0 := Vec3{M[0][0], M[0][1], M[0][2]}
	r1 := Vec3{M[1][0], M[1][1], M[1][2]}
	r2 := Vec3{M[2][0], M[2][1], M[2][2]}
	best := Vec3{1, 0, 0}
	bestNorm := -1.0
	for _, c := range [][2]Vec3{{r0, r1}, {r0, r2}, {r1, r2}} {
		v := CrossVec3(c[0], c[1])
		n := NormVec3(v)
		if n > bestNorm {
			bestNorm = n
			best = v
		}
	}
	if bestNorm < 1e-300 {
		// A - lam I is (numerically) zero: any unit vector works.
		return Vec3{1, 0, 0}
	}
	u, _ := UnitVec3(best, 0)
	return u
}

// sortEig3 sorts eigenvalues ascending, permuting eigenvector columns to match.
func sortEig3(vals *Vec3, vecs *Mat3) {
	idx := [3]int{0, 1, 2}
	for i := 1; i < 3; i++ {
		for j := i; j > 0 && vals[idx[j]] < vals[idx[j-1]]; j-- {
			idx[j], idx[j-1] = idx[j-1], idx[j]
		}
	}
	nv := *vals
	var nvec Mat3
	for k, id := range idx {
		nv[k] = vals[id]
		for r := 0; r < 3; r++ {
			nvec[r][k] = vecs[r][id]
		}
	}
	*vals = nv
	*vecs = nvec
}
