// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/tetsim/internal/linalg"
)

// Damping is the capability set of a rate-dependent (velocity) material,
// kept distinct from Model since damping forces depend on Fdot as well as
// F and contribute to the integrator's velocity-level stiffness rather
// than its elastic stiffness (§4.C).
type Damping interface {
	Name() string

	// PsiDot returns the damping energy density for the given deformation
	// gradient and its time derivative.
	PsiDot(F, Fdot linalg.Mat3) float64

	// StressDot returns PK1_d, the damping stress.
	StressDot(F, Fdot linalg.Mat3) linalg.Mat3

	// Hessian returns dPK1_d/dFdot, holding F fixed -- the velocity Hessian
	// used as the integrator's damping matrix C.
	Hessian(F, Fdot linalg.Mat3) linalg.Mat9

	// CrossHessian returns dPK1_d/dF, holding Fdot fixed -- an asymmetric
	// position-velocity cross term that may be dropped from the implicit
	// solve without losing stability (§4.C).
	CrossHessian(F, Fdot linalg.Mat3) linalg.Mat9
}

// dampingAllocators holds the registered damping models, parallel to
// allocators for elastic Model implementations.
var dampingAllocators = map[string]func(prms fun.Prms) Damping{}

// NewDamping constructs the named damping model from its parameters.
func NewDamping(name string, prms fun.Prms) (Damping, error) {
	alloc, ok := dampingAllocators[name]
	if !ok {
		return nil, chk.Err("material: damping model %q is not available", name)
	}
	return alloc(prms), nil
}

// VelocityGreenDamping implements the isotropic Rayleigh-like damping of
// §4.C: Edot = 1/2(FdotT*F + FT*Fdot), psi_d = mu_d*||Edot||^2,
// PK1_d = mu_d * F * (FT*Fdot + FdotT*F).
type VelocityGreenDamping struct {
	MuD float64
}

func init() {
	dampingAllocators["velocity-green"] = func(prms fun.Prms) Damping {
		return &VelocityGreenDamping{MuD: prm(prms, "muD")}
	}
}

func (o *VelocityGreenDamping) Name() string { return "velocity-green" }

func edot(F, Fdot linalg.Mat3) linalg.Mat3 {
	FdotTF := linalg.MatMul3(linalg.Transpose3(Fdot), F)
	FTFdot := linalg.MatMul3(linalg.Transpose3(F), Fdot)
	return linalg.ScaleMat3(0.5, linalg.AddMat3(FdotTF, FTFdot))
}

func (o *VelocityGreenDamping) PsiDot(F, Fdot linalg.Mat3) float64 {
	E := edot(F, Fdot)
	return o.MuD * linalg.FrobeniusNormSq3(E)
}

func (o *VelocityGreenDamping) StressDot(F, Fdot linalg.Mat3) linalg.Mat3 {
	FTFdot := linalg.MatMul3(linalg.Transpose3(F), Fdot)
	FdotTF := linalg.MatMul3(linalg.Transpose3(Fdot), F)
	return linalg.ScaleMat3(o.MuD, linalg.MatMul3(F, linalg.AddMat3(FTFdot, FdotTF)))
}

// Hessian is the exact linear map dFdot -> d(PK1_d) holding F fixed:
// d(PK1_d) = mu_d*F*(FT*dFdot + dFdotT*F).
func (o *VelocityGreenDamping) Hessian(F, Fdot linalg.Mat3) linalg.Mat9 {
	return linalg.DirectionalHessian9(func(dFdot linalg.Mat3) linalg.Mat3 {
		Ft := linalg.Transpose3(F)
		inner := linalg.AddMat3(linalg.MatMul3(Ft, dFdot), linalg.MatMul3(linalg.Transpose3(dFdot), F))
		return linalg.ScaleMat3(o.MuD, linalg.MatMul3(F, inner))
	})
}

// CrossHessian is the linear map dF -> d(PK1_d) holding Fdot fixed; not
// symmetric in general, so callers may drop it from the implicit solve
// per §4.C.
func (o *VelocityGreenDamping) CrossHessian(F, Fdot linalg.Mat3) linalg.Mat9 {
	return linalg.DirectionalHessian9(func(dF linalg.Mat3) linalg.Mat3 {
		Ft := linalg.Transpose3(F)
		dFt := linalg.Transpose3(dF)
		inner := linalg.AddMat3(linalg.MatMul3(Ft, Fdot), linalg.MatMul3(linalg.Transpose3(Fdot), F))
		dInner := linalg.AddMat3(linalg.MatMul3(dFt, Fdot), linalg.MatMul3(linalg.Transpose3(Fdot), dF))
		term1 := linalg.MatMul3(dF, inner)
		term2 := linalg.MatMul3(F, dInner)
		return linalg.ScaleMat3(o.MuD, linalg.AddMat3(term1, term2))
	})
}
