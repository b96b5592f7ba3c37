// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"math"
	"testing"

	"github.com/cpmech/tetsim/internal/linalg"
)

func Test_sphere_inside_and_signed_distance(t *testing.T) {
	s := NewSphere(linalg.Vec3{0, 0, 0}, 2)

	if !s.Inside(linalg.Vec3{1, 0, 0}) {
		t.Fatalf("point at radius 1 inside a radius-2 sphere should be inside")
	}
	if s.Inside(linalg.Vec3{3, 0, 0}) {
		t.Fatalf("point at radius 3 outside a radius-2 sphere should not be inside")
	}

	d := s.SignedDistance(linalg.Vec3{4, 0, 0})
	if math.Abs(d-2) > 1e-9 {
		t.Fatalf("signed distance at radius 4 from a radius-2 sphere = %v, want 2", d)
	}

	d = s.SignedDistance(linalg.Vec3{0, 0, 0})
	if math.Abs(d-(-2)) > 1e-9 {
		t.Fatalf("signed distance at the center of a radius-2 sphere = %v, want -2", d)
	}
}

func Test_sphere_closest_point_matches_normal(t *testing.T) {
	s := NewSphere(linalg.Vec3{0, 0, 0}, 1)
	p, n := s.ClosestPoint(linalg.Vec3{5, 0, 0})
	if p != n {
		t.Fatalf("sphere closest point %v and normal %v should coincide", p, n)
	}
	if math.Abs(linalg.NormVec3(p)-1) > 1e-9 {
		t.Fatalf("sphere closest point %v should lie on the unit sphere", p)
	}
}

func Test_cube_inside_and_face_selection(t *testing.T) {
	c := NewCube(linalg.Vec3{0, 0, 0}, 2)

	if !c.Inside(linalg.Vec3{0.9, 0, 0}) {
		t.Fatalf("point just inside a side-2 cube should be inside")
	}
	if c.Inside(linalg.Vec3{1.1, 0, 0}) {
		t.Fatalf("point just outside a side-2 cube should not be inside")
	}

	_, n := c.ClosestPoint(linalg.Vec3{10, 0, 0})
	if n != (linalg.Vec3{1, 0, 0}) {
		t.Fatalf("closest face normal for a point far along +x = %v, want (1,0,0)", n)
	}
}

func Test_cube_roundtrips_through_local_and_world(t *testing.T) {
	c := NewCube(linalg.Vec3{1, 2, 3}, 4)
	world := linalg.Vec3{2, 2, 2}
	local := c.WorldVertexToLocal(world)
	back := c.LocalVertexToWorld(local)
	if linalg.NormVec3(linalg.SubVec3(world, back)) > 1e-9 {
		t.Fatalf("round trip world->local->world = %v, want %v", back, world)
	}
}
