// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import "math"

// SVDRV factors F = U * diag(Sigma) * Vᵀ so that U and V are proper
// rotations (det = +1) and any reflection in F is absorbed into the third
// singular value Sigma[2], which then carries the sign of det(F). This is
// the "rotation-variant SVD" required throughout the material eigensystems
// (§4.A): downstream code assumes det(U) = det(V) = 1 unconditionally.
func SVDRV(F Mat3) (U, V Mat3, Sigma Vec3) {
	// V and squared singular values come from the eigendecomposition of the
	// symmetric positive-semidefinite FᵀF.
	FtF := MatMul3(Transpose3(F), F)
	lam, vecs := EigSym3(FtF)
	// EigSym3 returns ascending order; we want descending (largest singular
	// value first) to match the conventional Sigma0 >= Sigma1 layout.
	lam = Vec3{lam[2], lam[1], lam[0]}
	V = Mat3{
		{vecs[0][2], vecs[0][1], vecs[0][0]},
		{vecs[1][2], vecs[1][1], vecs[1][0]},
		{vecs[2][2], vecs[2][1], vecs[2][0]},
	}
	if Det3(V) < 0 {
		// flip the last column to make V a proper rotation
		for i := 0; i < 3; i++ {
			V[i][2] = -V[i][2]
		}
	}
	for i := 0; i < 3; i++ {
		if lam[i] < 0 {
			lam[i] = 0
		}
	}
	Sigma = Vec3{math.Sqrt(lam[0]), math.Sqrt(lam[1]), math.Sqrt(lam[2])}

	// U columns are FV_i / sigma_i when sigma_i is non-trivial; degenerate
	// columns are completed to an orthonormal, proper-rotation basis.
	FV := MatMul3(F, V)
	var u0, u1, u2 Vec3
	const tol = 1e-9
	col := func(M Mat3, j int) Vec3 { return Vec3{M[0][j], M[1][j], M[2][j]} }
	setCol := func(M *Mat3, j int, v Vec3) {
		M[0][j], M[1][j], M[2][j] = v[0], v[1], v[2]
	}
	if Sigma[0] > tol {
		u0, _ = UnitVec3(col(FV, 0), tol)
	} else {
		u0 = Vec3{1, 0, 0}
	}
	if Sigma[1] > tol {
		u1raw := col(FV, 1)
		// re-orthogonalise against u0 for robustness
		u1raw = SubVec3(u1raw, ScaleVec3(DotVec3(u1raw, u0), u0))
		u1, _ = UnitVec3(u1raw, tol)
	} else {
		u1 = gramSchmidtComplete(u0)
	}
	u2 = CrossVec3(u0, u1)

	U = Ident3()
	setCol(&U, 0, u0)
	setCol(&U, 1, u1)
	setCol(&U, 2, u2)

	// absorb any reflection of F into the smallest singular value so that
	// det(U) = det(V) = +1 holds unconditionally. U's third column stays
	// cross(u0,u1) -- only Sigma[2] flips, otherwise the two negations
	// cancel and U*Sigma*V^T no longer reconstructs F.
	if Det3(F) < 0 {
		Sigma[2] = -Sigma[2]
	}
	return
}

// gramSchmidtComplete returns a unit vector orthogonal to u (used to
// complete an orthonormal basis when a singular value is (near) zero).
func gramSchmidtComplete(u Vec3) Vec3 {
	var a Vec3
	if math.Abs(u[0]) <= math.Abs(u[1]) && math.Abs(u[0]) <= math.Abs(u[2]) {
		a = Vec3{1, 0, 0}
	} else if math.Abs(u[1]) <= math.Abs(u[2]) {
		a = Vec3{0, 1, 0}
	} else {
		a = Vec3{0, 0, 1}
	}
	a = SubVec3(a, ScaleVec3(DotVec3(a, u), u))
	v, ok := UnitVec3(a, 1e-12)
	if !ok {
		return Vec3{0, 1, 0}
	}
	return v
}

// Polar returns the polar decomposition F = R*S with R = U*Vᵀ a proper
// rotation and S = V*diag(Sigma)*Vᵀ symmetric positive-semidefinite.
func Polar(F Mat3) (R, S Mat3) {
	U, V, Sigma := SVDRV(F)
	R = MatMul3(U, Transpose3(V))
	var D Mat3
	D[0][0], D[1][1], D[2][2] = Sigma[0], Sigma[1], Sigma[2]
	S = MatMul3(MatMul3(V, D), Transpose3(V))
	return
}
