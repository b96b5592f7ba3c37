// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/tetsim/internal/linalg"
)

// StVK implements the Saint Venant-Kirchhoff model: Green strain
// E = 1/2(FtF - I), psi = mu*||E||^2 + 1/2*lambda*tr(E)^2 (§4.C). The
// Hessian is built exactly with DirectionalHessian9 and clamped with the
// generic numeric ClampPSD9; no analytic eigensystem (EigSym3 or
// twist/flip/scaling modes) is used for this material.
type StVK struct {
	Mu, Lambda float64
}

func init() {
	allocators["stvk"] = func(prms fun.Prms) Model {
		return &StVK{Mu: prm(prms, "mu"), Lambda: prm(prms, "lambda")}
	}
}

func (o *StVK) Name() string            { return "stvk" }
func (o *StVK) NeedsSVDForEnergy() bool { return false }
func (o *StVK) NeedsSVDForStress() bool { return false }

func greenStrain(F linalg.Mat3) linalg.Mat3 {
	FtF := linalg.MatMul3(linalg.Transpose3(F), F)
	return linalg.ScaleMat3(0.5, linalg.SubMat3(FtF, linalg.Ident3()))
}

func (o *StVK) Psi(F linalg.Mat3, svd *SVD3) float64 {
	E := greenStrain(F)
	trE := linalg.Trace3(E)
	return o.Mu*linalg.FrobeniusNormSq3(E) + 0.5*o.Lambda*trE*trE
}

func (o *StVK) PK1(F linalg.Mat3, svd *SVD3) linalg.Mat3 {
	E := greenStrain(F)
	trE := linalg.Trace3(E)
	inner := linalg.AddMat3(linalg.ScaleMat3(2*o.Mu, E), linalg.ScaleMat3(o.Lambda*trE, linalg.Ident3()))
	return linalg.MatMul3(F, inner)
}

// dPK1 returns the exact linear part of PK1(F+dF) - PK1(F) in
// dF, used by DirectionalHessian9 to build the Hessian without resorting
// to a finite difference (§4.A).
func (o *StVK) dPK1(F, dF linalg.Mat3) linalg.Mat3 {
	E := greenStrain(F)
	trE := linalg.Trace3(E)
	Ft := linalg.Transpose3(F)
	dFt := linalg.Transpose3(dF)
	dE := linalg.ScaleMat3(0.5, linalg.AddMat3(linalg.MatMul3(dFt, F), linalg.MatMul3(Ft, dF)))
	dTrE := linalg.Trace3(dE)

	term1 := linalg.MatMul3(dF, linalg.AddMat3(linalg.ScaleMat3(2*o.Mu, E), linalg.ScaleMat3(o.Lambda*trE, linalg.Ident3())))
	term2 := linalg.MatMul3(F, linalg.AddMat3(linalg.ScaleMat3(2*o.Mu, dE), linalg.ScaleMat3(o.Lambda*dTrE, linalg.Ident3())))
	return linalg.AddMat3(term1, term2)
}

func (o *StVK) Hessian(F linalg.Mat3, svd *SVD3) linalg.Mat9 {
	return linalg.DirectionalHessian9(func(dF linalg.Mat3) linalg.Mat3 { return o.dPK1(F, dF) })
}

func (o *StVK) ClampedHessian(F linalg.Mat3, svd *SVD3) linalg.Mat9 {
	return linalg.ClampPSD9(o.Hessian(F, svd))
}
