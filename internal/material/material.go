// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package material implements the isotropic hyperelastic and
// velocity-Green damping models (§4.C): ARAP, StVK, Stable Neo-Hookean,
// Bonet-Wood Neo-Hookean and the SNH-with-barrier variant, plus their
// analytic or PSD-clamped fourth-order Hessians.
//
// Materials are re-expressed as trait-style capability sets rather than a
// class hierarchy (§9): a Model is chosen by name at construction and used
// thereafter only through the Model interface, mirroring the gosl-based
// mdl/solid factory pattern this package is grounded on.
package material

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/tetsim/internal/linalg"
)

// SVD3 is the cached rotation-variant SVD of a deformation gradient,
// computed once per tet per step by the mesh (§3) and threaded through to
// whichever material needs it.
type SVD3 struct {
	U, V  linalg.Mat3
	Sigma linalg.Vec3
}

// Model is the capability set every hyperelastic material implements.
type Model interface {
	// Name identifies the material for logging and scene files.
	Name() string

	// NeedsSVDForEnergy/NeedsSVDForStress advertise whether Psi/PK1 require
	// a valid SVD to be supplied; the mesh only computes the (relatively
	// expensive) per-tet SVD when some active material asks for it.
	NeedsSVDForEnergy() bool
	NeedsSVDForStress() bool

	// Psi returns the strain energy density psi(F).
	Psi(F linalg.Mat3, svd *SVD3) float64

	// PK1 returns the first Piola-Kirchhoff stress dPsi/dF.
	PK1(F linalg.Mat3, svd *SVD3) linalg.Mat3

	// Hessian returns the (possibly indefinite) 9x9 stress derivative dP/dF.
	Hessian(F linalg.Mat3, svd *SVD3) linalg.Mat9

	// ClampedHessian returns a positive semi-definite projection of
	// Hessian, by the material's analytic eigensystem where available or
	// else by generic numeric eigenvalue clamping (§4.C).
	ClampedHessian(F linalg.Mat3, svd *SVD3) linalg.Mat9
}

// allocators holds all available hyperelastic models; name -> constructor.
var allocators = map[string]func(prms fun.Prms) Model{}

// New constructs the named hyperelastic model from its parameters.
func New(name string, prms fun.Prms) (Model, error) {
	alloc, ok := allocators[name]
	if !ok {
		return nil, chk.Err("material: model %q is not available", name)
	}
	return alloc(prms), nil
}

// prm looks up a named scalar parameter, panicking (a programmer error,
// §7 tier 1) if it is missing -- material construction happens once at
// scene build and a missing required parameter is not recoverable.
func prm(prms fun.Prms, name string) float64 {
	for _, p := range prms {
		if p.N == name {
			return p.V
		}
	}
	chk.Panic("material: missing required parameter %q", name)
	return 0
}

// prmOr looks up a named scalar parameter, returning def if absent.
func prmOr(prms fun.Prms, name string, def float64) float64 {
	for _, p := range prms {
		if p.N == name {
			return p.V
		}
	}
	return def
}

// LameFromYoungPoisson converts Young's modulus E and Poisson's ratio nu
// into the Lame parameters (mu, lambda) used throughout this package.
func LameFromYoungPoisson(E, nu float64) (mu, lambda float64) {
	mu = E / (2 * (1 + nu))
	lambda = E * nu / ((1 + nu) * (1 - 2*nu))
	return
}
