// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/tetsim/internal/linalg"
)

// ARAP implements psi = mu*||F-R||^2 ("as rigid as possible"), with the
// analytic twist/flip/scaling eigensystem of §4.C: twist eigenvalues
// lambda_i = 2*mu*(1 - 2/(sigma_j+sigma_k)), flip and scaling eigenvalues
// both equal to 2*mu.
type ARAP struct {
	Mu float64
}

func init() {
	allocators["arap"] = func(prms fun.Prms) Model {
		return &ARAP{Mu: prm(prms, "mu")}
	}
}

func (o *ARAP) Name() string             { return "arap" }
func (o *ARAP) NeedsSVDForEnergy() bool  { return true }
func (o *ARAP) NeedsSVDForStress() bool  { return true }

func (o *ARAP) rotation(svd *SVD3) linalg.Mat3 {
	return linalg.MatMul3(svd.U, linalg.Transpose3(svd.V))
}

func (o *ARAP) Psi(F linalg.Mat3, svd *SVD3) float64 {
	R := o.rotation(svd)
	diff := linalg.SubMat3(F, R)
	return o.Mu * linalg.FrobeniusNormSq3(diff)
}

func (o *ARAP) PK1(F linalg.Mat3, svd *SVD3) linalg.Mat3 {
	R := o.rotation(svd)
	return linalg.ScaleMat3(2*o.Mu, linalg.SubMat3(F, R))
}

func (o *ARAP) Hessian(F linalg.Mat3, svd *SVD3) linalg.Mat9 {
	dRdF := linalg.DRDF(svd.U, svd.V, svd.Sigma)
	return linalg.ScaleMat9(2*o.Mu, linalg.SubMat9(linalg.Ident9(), dRdF))
}

func (o *ARAP) ClampedHessian(F linalg.Mat3, svd *SVD3) linalg.Mat9 {
	twist, flip := linalg.TwistFlipModes(svd.U, svd.V)
	scaling := linalg.ScalingModesDiag(svd.U, svd.V)

	var vecs [9]linalg.Vec9
	var lambdas [9]float64
	s := svd.Sigma
	denom := func(j, k int) float64 {
		d := s[j] + s[k]
		const floor = 1e-6
		if d >= 0 && d < floor {
			return floor
		}
		if d < 0 && d > -floor {
			return -floor
		}
		return d
	}
	twistLambda := [3]float64{
		2 * o.Mu * (1 - 2/denom(1, 2)),
		2 * o.Mu * (1 - 2/denom(0, 2)),
		2 * o.Mu * (1 - 2/denom(0, 1)),
	}
	for i := 0; i < 3; i++ {
		vecs[i] = twist[i]
		lambdas[i] = twistLambda[i]
		vecs[3+i] = flip[i]
		lambdas[3+i] = 2 * o.Mu
		vecs[6+i] = scaling[i]
		lambdas[6+i] = 2 * o.Mu
	}
	return linalg.AssembleFromEigenbasis9(vecs, lambdas, true)
}
