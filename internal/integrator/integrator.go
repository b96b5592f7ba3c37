// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrator

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/tetsim/internal/diag"
	"github.com/cpmech/tetsim/internal/linalg"
	"github.com/cpmech/tetsim/internal/material"
	"github.com/cpmech/tetsim/internal/mesh"
)

// DampingMode selects the velocity Jacobian C used in the backward-Euler
// assembly (§4.G): Rayleigh mixes mass and rest-pose stiffness; Energy
// uses the material's own damping Hessian directly and drops Rayleigh.
type DampingMode int

const (
	DampingRayleigh DampingMode = iota
	DampingEnergy
)

// Integrator owns the mesh and material references, the per-vertex
// velocity state, the constraint lists, and the solve parameters (§4.G).
type Integrator struct {
	mesh     *mesh.Mesh
	material material.Model
	damping  material.Damping

	velocity []linalg.Vec3
	external []linalg.Vec3
	gravity  linalg.Vec3
	oneRing  []float64 // rest one-ring volume per vertex, the mass-matrix diagonal

	dt                      float64
	rayleighAlpha           float64
	rayleighBeta            float64
	dampingMode             DampingMode
	collisionStiffness      float64
	collisionDampingBeta    float64
	vertexFaceSelfCollision bool
	edgeEdgeSelfCollision   bool

	kinematic       []KinematicConstraint
	plane           []PlaneConstraint
	collisionShapes []KinematicShape

	k0 []dofBlock // rest-pose stiffness blocks, computed once and cached for the Rayleigh C = alpha*M + beta*K0 term

	Logger io.Writer

	// Clock times each step's phases (collision refit, assembly, CG),
	// advisory only and never gating correctness (§SPEC_FULL A).
	Clock diag.Stopwatch

	lastCGIterations int
	lastCGResidual   float64
}

// New builds an integrator over the given mesh and elastic material, with
// the mesh's one-ring-volume mass matrix (mesh.BuildMassMatrix, §4.G),
// grounded on the teacher's practice of building long-lived structural
// matrices once at construction (e.g. fem/domain.go's stiffness
// allocation) rather than every step.
func New(m *mesh.Mesh, mdl material.Model) *Integrator {
	o := &Integrator{
		mesh:                 m,
		material:             mdl,
		velocity:             make([]linalg.Vec3, m.NumVertices()),
		external:             make([]linalg.Vec3, m.NumVertices()),
		dt:                   1.0 / 60.0,
		rayleighAlpha:        0.01,
		rayleighBeta:         0.01,
		collisionStiffness:   1.0,
		collisionDampingBeta: 0.001,
		vertexFaceSelfCollision: true,
		edgeEdgeSelfCollision:   true,
	}
	o.oneRing = m.BuildMassMatrix()
	return o
}

// SetDamping installs a rate-dependent damping material and switches the
// assembly to the energy-damping C variant (§4.G).
func (o *Integrator) SetDamping(d material.Damping) {
	o.damping = d
	o.dampingMode = DampingEnergy
}

// SetTimestep sets h (§6 "setTimestep").
func (o *Integrator) SetTimestep(h float64) { o.dt = h }

// SetRayleigh sets the Rayleigh coefficients and switches to the Rayleigh
// C variant (§6 "setRayleigh").
func (o *Integrator) SetRayleigh(alpha, beta float64) {
	o.rayleighAlpha, o.rayleighBeta = alpha, beta
	o.dampingMode = DampingRayleigh
}

// SetCollisionStiffness sets mu_c (§6 "setCollisionStiffness").
func (o *Integrator) SetCollisionStiffness(mu float64) { o.collisionStiffness = mu }

// SetCollisionDampingBeta sets beta_c (§6 "setCollisionDampingBeta").
func (o *Integrator) SetCollisionDampingBeta(beta float64) { o.collisionDampingBeta = beta }

// VertexFaceSelfCollisionsOn toggles vertex-face self-collision handling.
func (o *Integrator) VertexFaceSelfCollisionsOn(on bool) { o.vertexFaceSelfCollision = on }

// EdgeEdgeSelfCollisionsOn toggles edge-edge self-collision handling.
func (o *Integrator) EdgeEdgeSelfCollisionsOn(on bool) { o.edgeEdgeSelfCollision = on }

// AddGravity adds a uniform body force, scaled by each vertex's one-ring
// rest volume (§6 "addGravity").
func (o *Integrator) AddGravity(g linalg.Vec3) {
	o.gravity = linalg.AddVec3(o.gravity, g)
	for v := range o.external {
		o.external[v] = linalg.AddVec3(o.external[v], linalg.ScaleVec3(o.oneRing[v], g))
	}
}

// AddKinematicCollisionObject registers a shape that surface vertices may
// collide against (generating plane constraints), distinct from a
// KinematicConstraint pin (§6 "addKinematicCollisionObject").
func (o *Integrator) AddKinematicCollisionObject(shape KinematicShape) {
	o.collisionShapes = append(o.collisionShapes, shape)
}

// Velocity returns the current velocity of vertex i.
func (o *Integrator) Velocity(i int) linalg.Vec3 { return o.velocity[i] }

// LastCGStats returns the iteration count and residual norm of the most
// recent solve, reported (not fatal) per §7's "iterative failures" tier.
func (o *Integrator) LastCGStats() (iterations int, residual float64) {
	return o.lastCGIterations, o.lastCGResidual
}

// logf writes to the configured Logger sink, or directly to the process's
// standard output via io.Pf when none is set (§6, §9 "logging is a sink
// interface").
func (o *Integrator) logf(format string, args ...interface{}) {
	if o.Logger != nil {
		io.Ff(o.Logger, format, args...)
		return
	}
	io.Pf(format, args...)
}
