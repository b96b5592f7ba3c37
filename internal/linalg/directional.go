// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

// Ident9 returns the 9x9 identity matrix.
func Ident9() (I Mat9) {
	for i := 0; i < 9; i++ {
		I[i][i] = 1
	}
	return
}

// DirectionalHessian9 assembles the 9x9 Hessian H = dP/dF of a stress
// function P(F) from its exact directional derivative dP(F, dF), evaluated
// at the 9 standard basis directions of F (dF = e_i e_jᵀ). Because dP is by
// construction linear in its second argument for every material in this
// package, sweeping the 9 basis directions reconstructs the full linear
// map exactly -- this is an analytic differentiation, not a finite
// difference: no step size or truncation error is involved.
func DirectionalHessian9(dP func(dF Mat3) Mat3) Mat9 {
	var H Mat9
	col := 0
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			var dF Mat3
			dF[i][j] = 1
			flat := Flatten3(dP(dF))
			for r := 0; r < 9; r++ {
				H[r][col] = flat[r]
			}
			col++
		}
	}
	return H
}

// AssembleFromEigenbasis9 reconstructs a symmetric 9x9 matrix from a full
// orthonormal eigenbasis (9 flattened eigenvectors) and their eigenvalues;
// when clamp is true, negative eigenvalues are replaced by zero. Used by
// materials (ARAP) whose analytic twist/flip/scaling eigensystem is known
// exactly, avoiding a generic numeric eigendecomposition (§4.A, §4.C).
func AssembleFromEigenbasis9(vecs [9]Vec9, lambdas [9]float64, clamp bool) (H Mat9) {
	for k := 0; k < 9; k++ {
		lam := lambdas[k]
		if clamp && lam < 0 {
			continue
		}
		H = AddScaledMat9(H, lam, OuterVec9(vecs[k], vecs[k]))
	}
	return
}
