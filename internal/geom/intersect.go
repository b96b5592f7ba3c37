// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"math"

	"github.com/cpmech/tetsim/internal/linalg"
)

// FaceEdgeIntersection reports whether the segment p0-p1 intersects the
// triangle (a,b,c), via the Moeller-Trumbore ray/triangle test restricted
// to the segment's parameter range t in [0,1]. Used to decide whether two
// mutually-colliding edges already have their adjacent triangles
// interpenetrating, which flips the sign of the contact force (§4.B).
func FaceEdgeIntersection(a, b, c, p0, p1 linalg.Vec3) bool {
	const eps = 1e-12
	edge1 := linalg.SubVec3(b, a)
	edge2 := linalg.SubVec3(c, a)
	dir := linalg.SubVec3(p1, p0)
	h := linalg.CrossVec3(dir, edge2)
	det := linalg.DotVec3(edge1, h)
	if math.Abs(det) < eps {
		return false // segment parallel to the triangle plane
	}
	invDet := 1 / det
	s := linalg.SubVec3(p0, a)
	u := invDet * linalg.DotVec3(s, h)
	if u < 0 || u > 1 {
		return false
	}
	q := linalg.CrossVec3(s, edge1)
	v := invDet * linalg.DotVec3(dir, q)
	if v < 0 || u+v > 1 {
		return false
	}
	t := invDet * linalg.DotVec3(edge2, q)
	return t >= 0 && t <= 1
}
