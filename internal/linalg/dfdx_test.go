// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_dfdx_matches_finite_difference(tst *testing.T) {
	chk.PrintTitle("dfdx_matches_finite_difference")
	rng := rand.New(rand.NewSource(40))
	v0 := Vec3{0, 0, 0}
	v1 := Vec3{1 + 0.1*rng.Float64(), 0.05 * rng.Float64(), 0}
	v2 := Vec3{0.05 * rng.Float64(), 1 + 0.1*rng.Float64(), 0}
	v3 := Vec3{0, 0, 1 + 0.1*rng.Float64()}
	Dm := Mat3{
		{v1[0] - v0[0], v2[0] - v0[0], v3[0] - v0[0]},
		{v1[1] - v0[1], v2[1] - v0[1], v3[1] - v0[1]},
		{v1[2] - v0[2], v2[2] - v0[2], v3[2] - v0[2]},
	}
	DmInv := Inverse3(Dm)
	dFdx := BuildDFDX(DmInv)

	computeF := func(a, b, c, d Vec3) Mat3 {
		Ds := Mat3{
			{b[0] - a[0], c[0] - a[0], d[0] - a[0]},
			{b[1] - a[1], c[1] - a[1], d[1] - a[1]},
			{b[2] - a[2], c[2] - a[2], d[2] - a[2]},
		}
		return MatMul3(Ds, DmInv)
	}

	x := FlattenVerts12(v0, v1, v2, v3)
	const h = 1e-6
	for k := 0; k < 12; k++ {
		xp, xm := x, x
		xp[k] += h
		xm[k] -= h
		a, b, c, d := UnflattenVerts12(xp)
		Fp := computeF(a, b, c, d)
		a, b, c, d = UnflattenVerts12(xm)
		Fm := computeF(a, b, c, d)
		dF := ScaleMat3(1/(2*h), SubMat3(Fp, Fm))
		flat := Flatten3(dF)
		for m := 0; m < 9; m++ {
			if math.Abs(flat[m]-dFdx[m][k]) > 1e-5 {
				tst.Fatalf("dFdx[%d][%d]=%v != fd %v", m, k, dFdx[m][k], flat[m])
			}
		}
	}
}
