// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"math"

	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/tetsim/internal/linalg"
)

// StableNeoHookean implements the simplified production variant of
// "Stable Neo-Hookean Flesh Simulation" (Smith, Goes, Kim), dropping the
// log(I_C+1) safeguard (§4.C): mu is unchanged, lambda is reparametrised as
// lambda' = lambda + mu with shift alpha = 1 + mu/lambda' so that psi
// vanishes at F = I.
//
//	psi = mu/2*(I_C - 3) - mu*(J-1) + lambda'/2*(J-alpha)^2
type StableNeoHookean struct {
	Mu, LambdaPrime, Alpha float64
}

func init() {
	allocators["snh"] = func(prms fun.Prms) Model {
		mu := prm(prms, "mu")
		lambda := prm(prms, "lambda")
		lp := lambda + mu
		return &StableNeoHookean{Mu: mu, LambdaPrime: lp, Alpha: 1 + mu/lp}
	}
}

func (o *StableNeoHookean) Name() string            { return "snh" }
func (o *StableNeoHookean) NeedsSVDForEnergy() bool { return false }
func (o *StableNeoHookean) NeedsSVDForStress() bool { return false }

func (o *StableNeoHookean) ic(F linalg.Mat3) float64 { return linalg.FrobeniusNormSq3(F) }

func (o *StableNeoHookean) Psi(F linalg.Mat3, svd *SVD3) float64 {
	J := linalg.Det3(F)
	d := J - o.Alpha
	return 0.5*o.Mu*(o.ic(F)-3) - o.Mu*(J-1) + 0.5*o.LambdaPrime*d*d
}

func (o *StableNeoHookean) PK1(F linalg.Mat3, svd *SVD3) linalg.Mat3 {
	J := linalg.Det3(F)
	dJdF := linalg.DJDF(F)
	coef := o.LambdaPrime*(J-o.Alpha) - o.Mu
	return linalg.AddMat3(linalg.ScaleMat3(o.Mu, F), linalg.ScaleMat3(coef, dJdF))
}

// Hessian reconstructs H = mu*I9 + coef*CrossProductHessianJ(F) +
// lambda'*g*gT, with g = flatten(dJ/dF) -- the exact analytic Hessian of
// the stabilised energy (§4.A "Fractal cross product Hessian of J").
func (o *StableNeoHookean) Hessian(F linalg.Mat3, svd *SVD3) linalg.Mat9 {
	J := linalg.Det3(F)
	dJdF := linalg.DJDF(F)
	g := linalg.Flatten3(dJdF)
	coef := o.LambdaPrime*(J-o.Alpha) - o.Mu
	H := linalg.ScaleMat9(o.Mu, linalg.Ident9())
	H = linalg.AddScaledMat9(H, coef, linalg.CrossProductHessianJ(F))
	H = linalg.AddScaledMat9(H, o.LambdaPrime, linalg.OuterVec9(g, g))
	return H
}

func (o *StableNeoHookean) ClampedHessian(F linalg.Mat3, svd *SVD3) linalg.Mat9 {
	return linalg.ClampPSD9(o.Hessian(F, svd))
}

// StableNeoHookeanBarrier adds a log barrier on J = det(F) that diverges as
// J -> 0+, preventing elements from inverting through zero volume; the
// barrier term is only evaluated when J is within the barrier's domain
// (§SPEC_FULL C.5, from original_source SNHWithBarrier.h/.cpp).
type StableNeoHookeanBarrier struct {
	StableNeoHookean
	KappaBarrier float64
}

func init() {
	allocators["snh-barrier"] = func(prms fun.Prms) Model {
		mu := prm(prms, "mu")
		lambda := prm(prms, "lambda")
		lp := lambda + mu
		return &StableNeoHookeanBarrier{
			StableNeoHookean: StableNeoHookean{Mu: mu, LambdaPrime: lp, Alpha: 1 + mu/lp},
			KappaBarrier:     prmOr(prms, "kappaBarrier", 1.0),
		}
	}
}

func (o *StableNeoHookeanBarrier) Name() string { return "snh-barrier" }

func (o *StableNeoHookeanBarrier) barrierActive(J float64) bool { return J > 1e-9 && J < 1 }

func (o *StableNeoHookeanBarrier) Psi(F linalg.Mat3, svd *SVD3) float64 {
	base := o.StableNeoHookean.Psi(F, svd)
	J := linalg.Det3(F)
	if !o.barrierActive(J) {
		return base
	}
	return base + o.KappaBarrier*(J-1)*(J-1)*logBarrier(J)
}

// logBarrier returns -ln(J) guarded against the non-physical region J<=0;
// callers only evaluate it once barrierActive has confirmed 0 < J < 1.
func logBarrier(J float64) float64 {
	return -ln(J)
}

func (o *StableNeoHookeanBarrier) PK1(F linalg.Mat3, svd *SVD3) linalg.Mat3 {
	base := o.StableNeoHookean.PK1(F, svd)
	J := linalg.Det3(F)
	if !o.barrierActive(J) {
		return base
	}
	dJdF := linalg.DJDF(F)
	d := J - 1
	// d/dJ[ kappa*(J-1)^2*(-ln J) ] = 2*kappa*(J-1)*(-ln J) - kappa*(J-1)^2/J
	dPsidJ := 2*o.KappaBarrier*d*logBarrier(J) - o.KappaBarrier*d*d/J
	return linalg.AddMat3(base, linalg.ScaleMat3(dPsidJ, dJdF))
}

func (o *StableNeoHookeanBarrier) Hessian(F linalg.Mat3, svd *SVD3) linalg.Mat9 {
	return o.hessianRaw(F)
}

func (o *StableNeoHookeanBarrier) hessianRaw(F linalg.Mat3) linalg.Mat9 {
	base := o.StableNeoHookean.Hessian(F, nil)
	J := linalg.Det3(F)
	if !o.barrierActive(J) {
		return base
	}
	dJdF := linalg.DJDF(F)
	g := linalg.Flatten3(dJdF)
	d := J - 1
	dPsidJ := 2*o.KappaBarrier*d*logBarrier(J) - o.KappaBarrier*d*d/J
	// d2Psi/dJ2
	d2PsidJ2 := 2*o.KappaBarrier*logBarrier(J) - 4*o.KappaBarrier*d/J + o.KappaBarrier*d*d/(J*J)
	H := base
	H = linalg.AddScaledMat9(H, dPsidJ, linalg.CrossProductHessianJ(F))
	H = linalg.AddScaledMat9(H, d2PsidJ2, linalg.OuterVec9(g, g))
	return H
}

func (o *StableNeoHookeanBarrier) ClampedHessian(F linalg.Mat3, svd *SVD3) linalg.Mat9 {
	return linalg.ClampPSD9(o.hessianRaw(F))
}

func ln(x float64) float64 {
	return math.Log(x)
}
