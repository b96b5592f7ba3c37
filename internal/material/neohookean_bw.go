// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"math"

	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/tetsim/internal/linalg"
)

// NeoHookeanBW implements the classical Bonet-Wood compressible
// Neo-Hookean model (as opposed to the stabilised variant in snh.go):
//
//	psi = mu/2*(I_C - 3) - mu*ln(J) + lambda/2*ln(J)^2
//
// This form keeps the original log(J) barrier the stabilised variant
// drops, so J must stay strictly positive; it is not suitable for
// elements that may invert (§SPEC_FULL C.7, supplemented from
// original_source NeoHookean.h/.cpp).
type NeoHookeanBW struct {
	Mu, Lambda float64
}

func init() {
	allocators["neohookean-bw"] = func(prms fun.Prms) Model {
		return &NeoHookeanBW{Mu: prm(prms, "mu"), Lambda: prm(prms, "lambda")}
	}
}

func (o *NeoHookeanBW) Name() string            { return "neohookean-bw" }
func (o *NeoHookeanBW) NeedsSVDForEnergy() bool { return false }
func (o *NeoHookeanBW) NeedsSVDForStress() bool { return false }

func (o *NeoHookeanBW) Psi(F linalg.Mat3, svd *SVD3) float64 {
	J := linalg.Det3(F)
	lnJ := math.Log(J)
	ic := linalg.FrobeniusNormSq3(F)
	return 0.5*o.Mu*(ic-3) - o.Mu*lnJ + 0.5*o.Lambda*lnJ*lnJ
}

// PK1 = mu*F + (lambda*ln(J) - mu) * Finv^T, the standard Bonet-Wood stress.
func (o *NeoHookeanBW) PK1(F linalg.Mat3, svd *SVD3) linalg.Mat3 {
	J := linalg.Det3(F)
	lnJ := math.Log(J)
	FinvT := linalg.Transpose3(linalg.Inverse3(F))
	coef := o.Lambda*lnJ - o.Mu
	return linalg.AddMat3(linalg.ScaleMat3(o.Mu, F), linalg.ScaleMat3(coef, FinvT))
}

// dPK1 is the exact linear part of PK1(F+dF)-PK1(F) in dF, used to build
// the Hessian via the directional-derivative technique (§4.A): with
// g(F) = Finv^T, dg = -Finv^T * dF^T * Finv^T.
func (o *NeoHookeanBW) dPK1(F, dF linalg.Mat3) linalg.Mat3 {
	J := linalg.Det3(F)
	lnJ := math.Log(J)
	Finv := linalg.Inverse3(F)
	FinvT := linalg.Transpose3(Finv)
	coef := o.Lambda*lnJ - o.Mu

	// d(ln J) = tr(Finv * dF)
	dlnJ := linalg.Trace3(linalg.MatMul3(Finv, dF))
	dFinvT := linalg.ScaleMat3(-1, linalg.MatMul3(FinvT, linalg.MatMul3(linalg.Transpose3(dF), FinvT)))

	term1 := linalg.ScaleMat3(o.Mu, dF)
	term2 := linalg.ScaleMat3(o.Lambda*dlnJ, FinvT)
	term3 := linalg.ScaleMat3(coef, dFinvT)
	return linalg.AddMat3(term1, linalg.AddMat3(term2, term3))
}

func (o *NeoHookeanBW) Hessian(F linalg.Mat3, svd *SVD3) linalg.Mat9 {
	return linalg.DirectionalHessian9(func(dF linalg.Mat3) linalg.Mat3 { return o.dPK1(F, dF) })
}

func (o *NeoHookeanBW) ClampedHessian(F linalg.Mat3, svd *SVD3) linalg.Mat9 {
	return linalg.ClampPSD9(o.Hessian(F, svd))
}
