// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import "math"

// twistBasis and flipBasis are the six universal, rotationally covariant
// 3x3 basis matrices (off-diagonal +-1, scaled by 1/sqrt2) shared by every
// isotropic hyperelastic eigensystem (§4.A).
var sqrt2inv = 1 / math.Sqrt2

func twistBasis() [3]Mat3 {
	return [3]Mat3{
		{{0, 0, 0}, {0, 0, -sqrt2inv}, {0, sqrt2inv, 0}},
		{{0, 0, sqrt2inv}, {0, 0, 0}, {-sqrt2inv, 0, 0}},
		{{0, -sqrt2inv, 0}, {sqrt2inv, 0, 0}, {0, 0, 0}},
	}
}

func flipBasis() [3]Mat3 {
	return [3]Mat3{
		{{0, 0, 0}, {0, 0, sqrt2inv}, {0, sqrt2inv, 0}},
		{{0, 0, sqrt2inv}, {0, 0, 0}, {sqrt2inv, 0, 0}},
		{{0, sqrt2inv, 0}, {sqrt2inv, 0, 0}, {0, 0, 0}},
	}
}

// TwistFlipModes rotates the six universal bases into world space as
// U*Bi*Vᵀ and flattens them; columns 0-2 are twist modes, 3-5 are flip
// modes, matching the layout of the 9x9 eigenmatrix described in §4.A.
func TwistFlipModes(U, V Mat3) (twist, flip [3]Vec9) {
	Vt := Transpose3(V)
	tb := twistBasis()
	fb := flipBasis()
	for i := 0; i < 3; i++ {
		twist[i] = Flatten3(MatMul3(MatMul3(U, tb[i]), Vt))
		flip[i] = Flatten3(MatMul3(MatMul3(U, fb[i]), Vt))
	}
	return
}

// ScalingModesDiag returns the three "scaling" eigenvectors U*e_i*Vᵀ used
// when the material's 3x3 scaling block is already diagonal in the
// singular basis (ARAP).
func ScalingModesDiag(U, V Mat3) (modes [3]Vec9) {
	for i := 0; i < 3; i++ {
		var D Mat3
		D[i][i] = 1
		modes[i] = Flatten3(MatMul3(MatMul3(U, D), Transpose3(V)))
	}
	return
}

// ScalingModesRotated returns the three scaling eigenvectors
// U*diag(q_i)*Vᵀ, one per column q_i of a 3x3 orthogonal Q whose columns
// diagonalise a material-dependent 3x3 matrix (e.g. StVK's λσᵢσⱼ block);
// Q's columns are the eigenvectors returned by EigSym3.
func ScalingModesRotated(U, V, Q Mat3) (modes [3]Vec9) {
	Vt := Transpose3(V)
	for i := 0; i < 3; i++ {
		var qi Mat3
		for r := 0; r < 3; r++ {
			qi[r][r] = Q[r][i]
		}
		modes[i] = Flatten3(MatMul3(MatMul3(U, qi), Vt))
	}
	return
}

// DRDF returns the flattened 9x9 gradient of the rotation factor R = U*Vᵀ
// with respect to F, expressed directly in the twist/flip eigenbasis with
// eigenvalues lambda_i = 2/(sigma_j+sigma_k) (cyclic). Used by velocity-
// Green damping (§4.A, §4.C). When sigma_j+sigma_k is near zero (two
// singular values both near zero, a degenerate/inverted configuration) the
// corresponding eigenvalue is clamped to a large-but-finite value rather
// than dividing by zero.
func DRDF(U, V Mat3, Sigma Vec3) Mat9 {
	twist, flip := TwistFlipModes(U, V)
	const floor = 1e-6
	denom := func(j, k int) float64 {
		d := Sigma[j] + Sigma[k]
		if math.Abs(d) < floor {
			if d < 0 {
				return -floor
			}
			return floor
		}
		return d
	}
	// cyclic pairing: twist0 <-> (sigma1,sigma2), twist1 <-> (sigma0,sigma2), twist2 <-> (sigma0,sigma1)
	lambdas := [3]float64{2 / denom(1, 2), 2 / denom(0, 2), 2 / denom(0, 1)}
	var H Mat9
	for i := 0; i < 3; i++ {
		H = AddScaledMat9(H, lambdas[i], OuterVec9(twist[i], twist[i]))
	}
	_ = flip // flip modes do not contribute to dR/dF (R only rotates, no reflection component)
	return H
}

// DJDF returns the 3x3 matrix whose columns are the cross products of the
// other two columns of F (Eqn. 19, "Stable Neo-Hookean Flesh Simulation"):
// column i = F_{i+1} x F_{i+2} (cyclic). This is ∂J/∂F where J = det(F).
func DJDF(F Mat3) Mat3 {
	col := func(j int) Vec3 { return Vec3{F[0][j], F[1][j], F[2][j]} }
	c0, c1, c2 := col(0), col(1), col(2)
	g0 := CrossVec3(c1, c2)
	g1 := CrossVec3(c2, c0)
	g2 := CrossVec3(c0, c1)
	var G Mat3
	for r := 0; r < 3; r++ {
		G[r][0], G[r][1], G[r][2] = g0[r], g1[r], g2[r]
	}
	return G
}

// skew3 returns the skew-symmetric cross-product matrix [v]x.
func skew3(v Vec3) Mat3 {
	return Mat3{
		{0, -v[2], v[1]},
		{v[2], 0, -v[0]},
		{-v[1], v[0], 0},
	}
}

// CrossProductHessianJ returns the 9x9 "fractal cross product" Hessian of
// J = det(F): a block matrix with skew-symmetric 3x3 [F_i]x blocks off the
// diagonal zero blocks on the diagonal, sign pattern per Eqn. 29 of
// "Stable Neo-Hookean Flesh Simulation". Columns/rows are grouped in
// column-major flattened triples (block i,j corresponds to flattened
// indices [3i:3i+3, 3j:3j+3]).
func CrossProductHessianJ(F Mat3) Mat9 {
	col := func(j int) Vec3 { return Vec3{F[0][j], F[1][j], F[2][j]} }
	f0, f1, f2 := col(0), col(1), col(2)
	var H Mat9
	place := func(bi, bj int, B Mat3) {
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				H[3*bi+r][3*bj+c] = B[r][c]
			}
		}
	}
	place(0, 1, ScaleMat3(-1, skew3(f2)))
	place(1, 0, skew3(f2))
	place(0, 2, skew3(f1))
	place(2, 0, ScaleMat3(-1, skew3(f1)))
	place(1, 2, ScaleMat3(-1, skew3(f0)))
	place(2, 1, skew3(f0))
	return H
}
