// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import "github.com/cpmech/tetsim/internal/linalg"

// Sphere is a unit sphere (radius 1 before scaling) placed by transform,
// grounded on original_source/core/Geometry/src/Sphere.cpp.
type Sphere struct {
	transform
}

// NewSphere places a sphere of the given world radius at center.
func NewSphere(center linalg.Vec3, radius float64) *Sphere {
	return &Sphere{transform: newTransform(center, radius)}
}

func (s *Sphere) Inside(p linalg.Vec3) bool {
	return linalg.NormVec3(s.worldVertexToLocal(p)) < 1.0
}

func (s *Sphere) SignedDistance(p linalg.Vec3) float64 {
	radius := linalg.NormVec3(s.worldVertexToLocal(p))
	return (radius - 1.0) * s.uniformScale()
}

// ClosestPoint returns the local-frame point where the ray from the
// origin through the query exits the unit sphere, and the outward
// normal there -- for a sphere these coincide, matching Sphere.cpp's
// "this is the one instance where both of these are the same".
func (s *Sphere) ClosestPoint(p linalg.Vec3) (localPoint, localNormal linalg.Vec3) {
	local := s.worldVertexToLocal(p)
	unit, ok := linalg.UnitVec3(local, 1e-14)
	if !ok {
		unit = linalg.Vec3{0, 1, 0}
	}
	return unit, unit
}

func (s *Sphere) LocalVertexToWorld(local linalg.Vec3) linalg.Vec3 { return s.localVertexToWorld(local) }
func (s *Sphere) WorldVertexToLocal(world linalg.Vec3) linalg.Vec3 { return s.worldVertexToLocal(world) }
func (s *Sphere) LocalNormalToWorld(n linalg.Vec3) linalg.Vec3     { return s.localNormalToWorld(n) }
