// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import "github.com/cpmech/tetsim/internal/linalg"

// Plane is a point-normal plane: {p : Normal.(p-Point) = 0}. The sign
// convention is Normal pointing outward from whatever solid the plane
// bounds.
type Plane struct {
	Point  linalg.Vec3
	Normal linalg.Vec3
}

// SignedDistance returns Normal.(p-Point), positive on the side Normal
// points to; Normal is assumed unit (callers normalise at construction).
func (pl Plane) SignedDistance(p linalg.Vec3) float64 {
	return linalg.DotVec3(pl.Normal, linalg.SubVec3(p, pl.Point))
}

// BisectorPlane returns the plane through point, whose normal is the
// normalised average of the two unit face normals a and b -- the
// collision-cell bisector construction of a surface triangle's
// face-neighbour boundary (§ Glossary "collision cell"). ok is false when
// a and b are near-antiparallel and the average degenerates to zero.
func BisectorPlane(point, a, b linalg.Vec3) (pl Plane, ok bool) {
	sum := linalg.AddVec3(a, b)
	n, ok := linalg.UnitVec3(sum, 1e-12)
	if !ok {
		return Plane{}, false
	}
	return Plane{Point: point, Normal: n}, true
}
