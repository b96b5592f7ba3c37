// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

func randMat3(rng *rand.Rand, scale float64) Mat3 {
	var A Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			A[i][j] = scale * (2*rng.Float64() - 1)
		}
	}
	return A
}

func Test_flatten_roundtrip(tst *testing.T) {
	chk.PrintTitle("flatten_roundtrip")
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		A := randMat3(rng, 10)
		B := Unflatten3(Flatten3(A))
		if A != B {
			tst.Fatalf("round trip failed: %v != %v", A, B)
		}
	}
}

func Test_svd_validity(tst *testing.T) {
	chk.PrintTitle("svd_validity")
	rng := rand.New(rand.NewSource(2))
	// sample deformation scales across a fixed range rather than a single
	// magnitude, so the SVD is exercised from near-identity to strongly
	// stretched/compressed matrices.
	scales := utl.LinSpace(0.1, 5, 10)
	for i := 0; i < 200; i++ {
		F := randMat3(rng, scales[i%len(scales)])
		U, V, Sigma := SVDRV(F)
		var D Mat3
		D[0][0], D[1][1], D[2][2] = Sigma[0], Sigma[1], Sigma[2]
		rec := MatMul3(MatMul3(U, D), Transpose3(V))
		diff := SubMat3(rec, F)
		if math.Sqrt(FrobeniusNormSq3(diff)) > 1e-8 {
			tst.Fatalf("SVD reconstruction failed: F=%v rec=%v", F, rec)
		}
		if math.Abs(Det3(U)-1) > 1e-8 {
			tst.Fatalf("det(U) != 1: %v", Det3(U))
		}
		if math.Abs(Det3(V)-1) > 1e-8 {
			tst.Fatalf("det(V) != 1: %v", Det3(V))
		}
		detF := Det3(F)
		if detF*Sigma[2] < -1e-12 {
			tst.Fatalf("sign(Sigma[2]) != sign(det F): detF=%v sigma2=%v", detF, Sigma[2])
		}
	}
}

func Test_psd_clamp(tst *testing.T) {
	chk.PrintTitle("psd_clamp")
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 20; i++ {
		var H Mat9
		for r := 0; r < 9; r++ {
			for c := 0; c < 9; c++ {
				H[r][c] = 2*rng.Float64() - 1
			}
		}
		H = SymmetrizeMat9(H)
		clamped := ClampPSD9(H)
		if MinEigSym9(clamped) < -1e-8 {
			tst.Fatalf("clamped Hessian not PSD: min eig = %v", MinEigSym9(clamped))
		}
	}
}

func Test_eigsym3_reconstruction(tst *testing.T) {
	chk.PrintTitle("eigsym3_reconstruction")
	rng := rand.New(rand.NewSource(4))
	for i := 0; i < 100; i++ {
		A := randMat3(rng, 3)
		A = ScaleMat3(0.5, AddMat3(A, Transpose3(A)))
		vals, vecs := EigSym3(A)
		var D Mat3
		D[0][0], D[1][1], D[2][2] = vals[0], vals[1], vals[2]
		rec := MatMul3(MatMul3(vecs, D), Transpose3(vecs))
		if math.Sqrt(FrobeniusNormSq3(SubMat3(rec, A))) > 1e-8 {
			tst.Fatalf("eigsym3 reconstruction failed")
		}
	}
}
