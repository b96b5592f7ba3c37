// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import "gonum.org/v1/gonum/mat"

// ClampPSD9 projects the symmetric 9x9 matrix H onto the positive
// semidefinite cone by eigenvalue clamping: compute the symmetric
// eigendecomposition, replace negative eigenvalues with zero, reassemble.
// This is the generic clamp used by StVK, both Stable Neo-Hookean variants
// and Bonet-Wood Neo-Hookean; ARAP, whose eigensystem is analytic, clamps
// via its own twist/flip/scaling eigenvalues instead (§4.C).
func ClampPSD9(H Mat9) Mat9 {
	sym := mat.NewSymDense(9, nil)
	for i := 0; i < 9; i++ {
		for j := i; j < 9; j++ {
			sym.SetSym(i, j, H[i][j])
		}
	}
	var eig mat.EigSym
	if !eig.Factorize(sym, true) {
		return H
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	var out Mat9
	for k := 0; k < 9; k++ {
		lam := vals[k]
		if lam <= 0 {
			continue
		}
		for i := 0; i < 9; i++ {
			vi := vecs.At(i, k)
			if vi == 0 {
				continue
			}
			for j := 0; j < 9; j++ {
				out[i][j] += lam * vi * vecs.At(j, k)
			}
		}
	}
	return out
}

// ClampPSD12 is the 12x12 analogue of ClampPSD9, used for contact energy
// Hessians (§4.D) which act on four stacked vertex positions.
func ClampPSD12(H Mat12) Mat12 {
	sym := mat.NewSymDense(12, nil)
	for i := 0; i < 12; i++ {
		for j := i; j < 12; j++ {
			sym.SetSym(i, j, H[i][j])
		}
	}
	var eig mat.EigSym
	if !eig.Factorize(sym, true) {
		return H
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	var out Mat12
	for k := 0; k < 12; k++ {
		lam := vals[k]
		if lam <= 0 {
			continue
		}
		for i := 0; i < 12; i++ {
			vi := vecs.At(i, k)
			if vi == 0 {
				continue
			}
			for j := 0; j < 12; j++ {
				out[i][j] += lam * vi * vecs.At(j, k)
			}
		}
	}
	return out
}

// MinEigSym9 returns the smallest eigenvalue of a symmetric 9x9 matrix;
// used by the PSD test property (§8 property 5).
func MinEigSym9(H Mat9) float64 {
	sym := mat.NewSymDense(9, nil)
	for i := 0; i < 9; i++ {
		for j := i; j < 9; j++ {
			sym.SetSym(i, j, H[i][j])
		}
	}
	var eig mat.EigSym
	eig.Factorize(sym, false)
	vals := eig.Values(nil)
	m := vals[0]
	for _, v := range vals {
		if v < m {
			m = v
		}
	}
	return m
}

// MinEigSym12 is the 12x12 analogue of MinEigSym9.
func MinEigSym12(H Mat12) float64 {
	sym := mat.NewSymDense(12, nil)
	for i := 0; i < 12; i++ {
		for j := i; j < 12; j++ {
			sym.SetSym(i, j, H[i][j])
		}
	}
	var eig mat.EigSym
	eig.Factorize(sym, false)
	vals := eig.Values(nil)
	m := vals[0]
	for _, v := range vals {
		if v < m {
			m = v
		}
	}
	return m
}
