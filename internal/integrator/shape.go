// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package integrator implements the implicit backward-Euler velocity
// stepper (§4.G): kinematic and plane constraint lifecycle, the
// Baraff-Witkin filter matrix, contact force/Hessian injection, and a
// projected preconditioned conjugate-gradient solve over the assembled
// sparse system.
package integrator

import "github.com/cpmech/tetsim/internal/linalg"

// KinematicShape is the capability set an external rigid or animated
// collider exposes to the integrator (§6); the core makes no assumption
// about the shape's internal representation.
type KinematicShape interface {
	Inside(p linalg.Vec3) bool
	SignedDistance(p linalg.Vec3) float64
	ClosestPoint(p linalg.Vec3) (localPoint, localNormal linalg.Vec3)
	LocalVertexToWorld(local linalg.Vec3) linalg.Vec3
	WorldVertexToLocal(world linalg.Vec3) linalg.Vec3
	LocalNormalToWorld(localNormal linalg.Vec3) linalg.Vec3
}
