// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shape provides the minimal kinematic-shape primitives (cube,
// sphere) needed to exercise the integrator package's KinematicShape
// interface in integration tests; full shape libraries (cylinders,
// meshes-as-colliders, animated transforms) are out of scope (§1
// Non-goals: "kinematic-shape primitive implementations beyond the
// minimal cube/sphere").
package shape

import "github.com/cpmech/tetsim/internal/linalg"

// transform places a unit primitive (sphere of radius 1, cube of side 1
// centered at the origin) in world space as R*S*x + t, matching the
// original solver's KINEMATIC_SHAPE convention. It is embedded by every
// shape so the local/world transform pair is written once.
type transform struct {
	rotation    linalg.Mat3
	scale       linalg.Mat3
	scaleInv    linalg.Mat3
	translation linalg.Vec3
}

func newTransform(center linalg.Vec3, scale float64) transform {
	s := linalg.ScaleMat3(scale, linalg.Ident3())
	return transform{
		rotation:    linalg.Ident3(),
		scale:       s,
		scaleInv:    linalg.Inverse3(s),
		translation: center,
	}
}

// worldVertexToLocal maps a world point into the primitive's unit local
// frame: invert translation, then rotation, then scale, in that order.
func (t transform) worldVertexToLocal(world linalg.Vec3) linalg.Vec3 {
	centered := linalg.SubVec3(world, t.translation)
	unrotated := linalg.MatVec3(linalg.Transpose3(t.rotation), centered)
	return linalg.MatVec3(t.scaleInv, unrotated)
}

// localVertexToWorld is the inverse of worldVertexToLocal.
func (t transform) localVertexToWorld(local linalg.Vec3) linalg.Vec3 {
	scaled := linalg.MatVec3(t.scale, local)
	rotated := linalg.MatVec3(t.rotation, scaled)
	return linalg.AddVec3(rotated, t.translation)
}

// localNormalToWorld transforms a local-frame normal by the inverse
// transpose of rotation*scale, then renormalizes -- non-uniform scale
// does not preserve normal direction under a plain forward transform.
func (t transform) localNormalToWorld(n linalg.Vec3) linalg.Vec3 {
	rs := linalg.MatMul3(t.rotation, t.scale)
	invT := linalg.Transpose3(linalg.Inverse3(rs))
	world := linalg.MatVec3(invT, n)
	unit, ok := linalg.UnitVec3(world, 1e-14)
	if !ok {
		return n
	}
	return unit
}

// uniformScale returns the primitive's scale factor along its first
// local axis, used to convert local-frame distances into world units
// for the uniform-scale shapes this package implements.
func (t transform) uniformScale() float64 { return t.scale[0][0] }
