// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrator

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/cpmech/tetsim/internal/linalg"
)

// linearSystem bundles the per-vertex mass diagonal and the two sparse
// matrices the backward-Euler assembly produces, so the matrix-free CG
// operator below can form A = M - hC - h^2K and its S-projection without
// ever materialising S or S-bar as sparse matrices themselves (§4.G).
type linearSystem struct {
	mass []float64 // diagonal, one entry per vertex (applies to all 3 components)
	C, K *la.CCMatrix
	h    float64
	f    *filter
}

func flatten(v []linalg.Vec3) []float64 {
	out := make([]float64, 3*len(v))
	for i, x := range v {
		out[3*i], out[3*i+1], out[3*i+2] = x[0], x[1], x[2]
	}
	return out
}

func unflatten(x []float64) []linalg.Vec3 {
	n := len(x) / 3
	out := make([]linalg.Vec3, n)
	for i := range out {
		out[i] = linalg.Vec3{x[3*i], x[3*i+1], x[3*i+2]}
	}
	return out
}

// applyA returns A*x = (M - h*C - h^2*K) * x.
func (sys *linearSystem) applyA(x []linalg.Vec3) []linalg.Vec3 {
	flat := flatten(x)
	y := make([]float64, len(flat))
	if sys.C != nil {
		la.SpMatVecMulAdd(y, -sys.h, sys.C, flat)
	}
	if sys.K != nil {
		la.SpMatVecMulAdd(y, -sys.h*sys.h, sys.K, flat)
	}
	r := unflatten(y)
	for i := range r {
		r[i] = linalg.AddVec3(r[i], linalg.ScaleVec3(sys.mass[i], x[i]))
	}
	return r
}

// applyProjected returns (S*A*S + S-bar) * x, the left-hand side of the
// projected system §4.G solves.
func (sys *linearSystem) applyProjected(x []linalg.Vec3) []linalg.Vec3 {
	sx := sys.f.applyS(x)
	asx := sys.applyA(sx)
	sasx := sys.f.applyS(asx)
	sbarX := sys.f.applySBar(x)
	out := make([]linalg.Vec3, len(x))
	for i := range out {
		out[i] = linalg.AddVec3(sasx[i], sbarX[i])
	}
	return out
}

func dot(a, b []linalg.Vec3) float64 {
	var s float64
	for i := range a {
		s += linalg.DotVec3(a[i], b[i])
	}
	return s
}

func axpy(alpha float64, x []linalg.Vec3, y []linalg.Vec3) []linalg.Vec3 {
	r := make([]linalg.Vec3, len(x))
	for i := range r {
		r[i] = linalg.AddVec3(linalg.ScaleVec3(alpha, x[i]), y[i])
	}
	return r
}

// jacobiPreconditioner builds a diagonal preconditioner from the mass
// diagonal alone, the cheapest choice consistent with M dominating A -hC
// -h^2K at reasonable timesteps; no gosl/gonum package in the pack
// supplies a generic preconditioned CG, so this loop is hand-written,
// mirroring the Eigen ConjugateGradient solver the original calls with
// its default Jacobi preconditioner.
func jacobiPreconditioner(mass []float64) []float64 {
	p := make([]float64, len(mass))
	for i, m := range mass {
		if m > 1e-300 {
			p[i] = 1 / m
		} else {
			p[i] = 1
		}
	}
	return p
}

func applyPrecond(p []float64, r []linalg.Vec3) []linalg.Vec3 {
	out := make([]linalg.Vec3, len(r))
	for i := range out {
		out[i] = linalg.ScaleVec3(p[i], r[i])
	}
	return out
}

const (
	cgMaxIterFactor = 2
	cgTol           = 1e-6
)

// projectedCG solves (S*A*S + S-bar) y = rhs by preconditioned conjugate
// gradient, returning the solution, the iteration count and the final
// residual norm -- reported, not fatal, per §7's "iterative failures"
// tier.
func projectedCG(sys *linearSystem, rhs []linalg.Vec3) (y []linalg.Vec3, iters int, residual float64) {
	n := len(rhs)
	y = make([]linalg.Vec3, n)
	precond := jacobiPreconditioner(sys.mass)

	r := make([]linalg.Vec3, n)
	copy(r, rhs)
	z := applyPrecond(precond, r)
	p := make([]linalg.Vec3, n)
	copy(p, z)
	rz := dot(r, z)

	rhsNorm := math.Sqrt(dot(rhs, rhs))
	if rhsNorm < 1e-300 {
		return y, 0, 0
	}

	maxIter := cgMaxIterFactor * 3 * n
	for iter := 0; iter < maxIter; iter++ {
		Ap := sys.applyProjected(p)
		pAp := dot(p, Ap)
		if math.Abs(pAp) < 1e-300 {
			break
		}
		alpha := rz / pAp
		y = axpy(alpha, p, y)
		r = axpy(-alpha, Ap, r)

		residual = math.Sqrt(dot(r, r)) / rhsNorm
		iters = iter + 1
		if residual < cgTol {
			break
		}

		z = applyPrecond(precond, r)
		rzNew := dot(r, z)
		beta := rzNew / rz
		p = axpy(beta, p, z)
		rz = rzNew
	}
	return
}
