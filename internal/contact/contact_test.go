// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/tetsim/internal/geom"
	"github.com/cpmech/tetsim/internal/linalg"
)

func randStencil(rng *rand.Rand) geom.Stencil4 {
	var s geom.Stencil4
	for k := 0; k < 4; k++ {
		for c := 0; c < 3; c++ {
			s[k][c] = 2*rng.Float64() - 1
		}
	}
	return s
}

// checkGradientFD verifies Gradient matches a central difference of Psi
// under perturbation of each of the 12 stencil coordinates, and Hessian
// matches a central difference of Gradient.
func checkGradientFD(tst *testing.T, name string, build func(s geom.Stencil4) Energy, s geom.Stencil4) {
	const h = 1e-6
	e := build(s)
	grad := e.Gradient()
	hess := e.Hessian()
	for k := 0; k < 12; k++ {
		sp, sm := s, s
		sp[k/3][k%3] += h
		sm[k/3][k%3] -= h
		psiP := build(sp).Psi()
		psiM := build(sm).Psi()
		dPsi := (psiP - psiM) / (2 * h)
		if math.Abs(dPsi-grad[k]) > 1e-4*(1+math.Abs(dPsi)) {
			tst.Fatalf("%s: grad[%d]=%v != fd %v", name, k, grad[k], dPsi)
		}

		gradP := build(sp).Gradient()
		gradM := build(sm).Gradient()
		for l := 0; l < 12; l++ {
			dG := (gradP[l] - gradM[l]) / (2 * h)
			if math.Abs(dG-hess[l][k]) > 1e-3*(1+math.Abs(dG)) {
				tst.Fatalf("%s: hess[%d][%d]=%v != fd %v", name, l, k, hess[l][k], dG)
			}
		}
	}
}

func Test_vf_cross_gradient_hessian(tst *testing.T) {
	chk.PrintTitle("vf_cross_gradient_hessian")
	rng := rand.New(rand.NewSource(20))
	for i := 0; i < 5; i++ {
		s := geom.Stencil4{
			{0.1, 0.1, 1.5},
			{0, 0, 0},
			{1, 0, 0},
			{0, 1, 0},
		}
		for k := range s {
			for c := 0; c < 3; c++ {
				s[k][c] += 0.05 * (2*rng.Float64() - 1)
			}
		}
		build := func(st geom.Stencil4) Energy {
			e, _ := NewVertexFaceCross(st, 10, 0.1, false)
			return e
		}
		checkGradientFD(tst, "vf_cross", build, s)
	}
}

func Test_vf_sqrt_gradient_hessian(tst *testing.T) {
	chk.PrintTitle("vf_sqrt_gradient_hessian")
	rng := rand.New(rand.NewSource(21))
	for i := 0; i < 5; i++ {
		s := geom.Stencil4{
			{0.2, 0.3, 1.2},
			{0, 0, 0},
			{1, 0, 0},
			{0, 1, 0},
		}
		for k := range s {
			for c := 0; c < 3; c++ {
				s[k][c] += 0.05 * (2*rng.Float64() - 1)
			}
		}
		bary := [3]float64{0.2, 0.3, 0.5}
		build := func(st geom.Stencil4) Energy {
			return NewVertexFaceSqrt(st, bary, 10, 0.1, false)
		}
		checkGradientFD(tst, "vf_sqrt", build, s)
	}
}

func Test_ee_cross_gradient_hessian(tst *testing.T) {
	chk.PrintTitle("ee_cross_gradient_hessian")
	s := geom.Stencil4{
		{0, 0, 0},
		{1, 0, 0},
		{0.5, -0.5, 1},
		{0.5, 0.5, 1},
	}
	build := func(st geom.Stencil4) Energy {
		e, _ := NewEdgeEdgeCross(st, 10, 0.1, false)
		return e
	}
	checkGradientFD(tst, "ee_cross", build, s)
}

func Test_ee_bary_gradient_hessian(tst *testing.T) {
	chk.PrintTitle("ee_bary_gradient_hessian")
	s := geom.Stencil4{
		{0, 0, 0},
		{1, 0, 0},
		{0.5, -0.5, 1},
		{0.5, 0.5, 1},
	}
	build := func(st geom.Stencil4) Energy {
		return NewEdgeEdgeBary(st, 0.5, 0.5, 10, 0.1, false)
	}
	checkGradientFD(tst, "ee_bary", build, s)
}

func Test_contact_clamped_hessian_psd(tst *testing.T) {
	chk.PrintTitle("contact_clamped_hessian_psd")
	s := geom.Stencil4{
		{0.1, 0.1, 1.5},
		{0, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
	}
	vfc, _ := NewVertexFaceCross(s, 10, 0.1, false)
	if linalg.MinEigSym12(vfc.ClampedHessian()) < -1e-7 {
		tst.Fatalf("vf_cross clamped Hessian not PSD")
	}
	vfs := NewVertexFaceSqrt(s, [3]float64{0.2, 0.3, 0.5}, 10, 0.1, false)
	if linalg.MinEigSym12(vfs.ClampedHessian()) < -1e-7 {
		tst.Fatalf("vf_sqrt clamped Hessian not PSD")
	}
}

func Test_contact_negated_dual_matches_non_reversed(tst *testing.T) {
	chk.PrintTitle("contact_negated_dual_matches_non_reversed")
	s := geom.Stencil4{
		{0.1, 0.1, 1.5},
		{0, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
	}
	fwd, _ := NewVertexFaceCross(s, 10, 0.1, false)
	rev, _ := NewVertexFaceCross(s, 10, 0.1, true)
	if math.Abs(fwd.Psi()-rev.Psi()) > 1e-9 {
		tst.Fatalf("reversed dual psi mismatch: %v != %v", fwd.Psi(), rev.Psi())
	}
}
