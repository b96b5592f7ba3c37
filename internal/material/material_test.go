// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/tetsim/internal/linalg"
)

// nearIdentity returns a deformation gradient close to the identity so
// that log/inverse-based models (NeoHookeanBW, SNHWithBarrier) stay in
// their well-defined domain (J > 0) across the finite-difference stencil.
func nearIdentity(rng *rand.Rand, scale float64) linalg.Mat3 {
	F := linalg.Ident3()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			F[i][j] += scale * (2*rng.Float64() - 1)
		}
	}
	return F
}

func svdOf(F linalg.Mat3) *SVD3 {
	U, V, Sigma := linalg.SVDRV(F)
	return &SVD3{U: U, V: V, Sigma: Sigma}
}

// checkStressMatchesEnergy verifies PK1 = dPsi/dF by central differences.
func checkStressMatchesEnergy(tst *testing.T, m Model, F linalg.Mat3) {
	const h = 1e-6
	P := m.PK1(F, svdOf(F))
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			Fp, Fm := F, F
			Fp[i][j] += h
			Fm[i][j] -= h
			dPsi := (m.Psi(Fp, svdOf(Fp)) - m.Psi(Fm, svdOf(Fm))) / (2 * h)
			if math.Abs(dPsi-P[i][j]) > 1e-4*(1+math.Abs(dPsi)) {
				tst.Fatalf("%s: PK1[%d][%d]=%v != dPsi/dF=%v", m.Name(), i, j, P[i][j], dPsi)
			}
		}
	}
}

// checkHessianMatchesStress verifies Hessian = dPK1/dF by central differences.
func checkHessianMatchesStress(tst *testing.T, m Model, F linalg.Mat3) {
	const h = 1e-6
	H := m.Hessian(F, svdOf(F))
	col := 0
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			Fp, Fm := F, F
			Fp[i][j] += h
			Fm[i][j] -= h
			Pp := m.PK1(Fp, svdOf(Fp))
			Pm := m.PK1(Fm, svdOf(Fm))
			dP := linalg.ScaleMat3(1/(2*h), linalg.SubMat3(Pp, Pm))
			flat := linalg.Flatten3(dP)
			for r := 0; r < 9; r++ {
				if math.Abs(flat[r]-H[r][col]) > 1e-3*(1+math.Abs(flat[r])) {
					tst.Fatalf("%s: Hessian col %d row %d = %v != fd %v", m.Name(), col, r, H[r][col], flat[r])
				}
			}
			col++
		}
	}
}

func checkClampedHessianPSD(tst *testing.T, m Model, F linalg.Mat3) {
	Hc := m.ClampedHessian(F, svdOf(F))
	if linalg.MinEigSym9(Hc) < -1e-7 {
		tst.Fatalf("%s: clamped Hessian not PSD, min eig=%v", m.Name(), linalg.MinEigSym9(Hc))
	}
}

func materialsUnderTest() []Model {
	mu, lambda := LameFromYoungPoisson(1e5, 0.3)
	prms := fun.Prms{{N: "mu", V: mu}, {N: "lambda", V: lambda}}
	arap, _ := New("arap", fun.Prms{{N: "mu", V: mu}})
	stvk, _ := New("stvk", prms)
	snh, _ := New("snh", prms)
	bw, _ := New("neohookean-bw", prms)
	barrier, _ := New("snh-barrier", append(append(fun.Prms{}, prms...), &fun.Prm{N: "kappaBarrier", V: 0.5}))
	return []Model{arap, stvk, snh, bw, barrier}
}

func Test_material_stress_matches_energy(tst *testing.T) {
	chk.PrintTitle("material_stress_matches_energy")
	rng := rand.New(rand.NewSource(10))
	for _, m := range materialsUnderTest() {
		for i := 0; i < 5; i++ {
			F := nearIdentity(rng, 0.15)
			checkStressMatchesEnergy(tst, m, F)
		}
	}
}

func Test_material_hessian_matches_stress(tst *testing.T) {
	chk.PrintTitle("material_hessian_matches_stress")
	rng := rand.New(rand.NewSource(11))
	for _, m := range materialsUnderTest() {
		for i := 0; i < 5; i++ {
			F := nearIdentity(rng, 0.15)
			checkHessianMatchesStress(tst, m, F)
		}
	}
}

func Test_material_clamped_hessian_psd(tst *testing.T) {
	chk.PrintTitle("material_clamped_hessian_psd")
	rng := rand.New(rand.NewSource(12))
	for _, m := range materialsUnderTest() {
		for i := 0; i < 10; i++ {
			F := nearIdentity(rng, 0.3)
			checkClampedHessianPSD(tst, m, F)
		}
	}
}

func Test_velocity_green_damping(tst *testing.T) {
	chk.PrintTitle("velocity_green_damping")
	d, err := NewDamping("velocity-green", fun.Prms{{N: "muD", V: 0.1}})
	if err != nil {
		tst.Fatal(err)
	}
	rng := rand.New(rand.NewSource(13))
	F := nearIdentity(rng, 0.1)
	Fdot := linalg.ScaleMat3(0.2, linalg.Ident3())
	Fdot[0][1] += 0.05

	const h = 1e-6
	S := d.StressDot(F, Fdot)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			Fdp, Fdm := Fdot, Fdot
			Fdp[i][j] += h
			Fdm[i][j] -= h
			dPsi := (d.PsiDot(F, Fdp) - d.PsiDot(F, Fdm)) / (2 * h)
			if math.Abs(dPsi-S[i][j]) > 1e-4*(1+math.Abs(dPsi)) {
				tst.Fatalf("StressDot[%d][%d]=%v != dPsiDot/dFdot=%v", i, j, S[i][j], dPsi)
			}
		}
	}

	H := d.Hessian(F, Fdot)
	col := 0
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			Fdp, Fdm := Fdot, Fdot
			Fdp[i][j] += h
			Fdm[i][j] -= h
			Sp := d.StressDot(F, Fdp)
			Sm := d.StressDot(F, Fdm)
			dS := linalg.ScaleMat3(1/(2*h), linalg.SubMat3(Sp, Sm))
			flat := linalg.Flatten3(dS)
			for r := 0; r < 9; r++ {
				if math.Abs(flat[r]-H[r][col]) > 1e-3*(1+math.Abs(flat[r])) {
					tst.Fatalf("Hessian col %d row %d = %v != fd %v", col, r, H[r][col], flat[r])
				}
			}
			col++
		}
	}
}
