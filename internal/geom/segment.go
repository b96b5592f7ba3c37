// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"math"

	"github.com/cpmech/tetsim/internal/linalg"
)

// SegmentSegmentClosestPoints computes the closest points between segments
// p1-q1 and p2-q2 using the classical parametric solve; s, t in [0,1] are
// the interpolation parameters along each segment (s=0 -> p1, s=1 -> q1,
// similarly t for p2/q2). When the segments are nearly parallel the
// parametric system is singular; in that case the midpoint of each
// segment is returned as a stable fall-back (§4.B).
func SegmentSegmentClosestPoints(p1, q1, p2, q2 linalg.Vec3) (c1, c2 linalg.Vec3, s, t float64) {
	d1 := linalg.SubVec3(q1, p1) // direction of segment 1
	d2 := linalg.SubVec3(q2, p2) // direction of segment 2
	r := linalg.SubVec3(p1, p2)

	a := linalg.DotVec3(d1, d1)
	e := linalg.DotVec3(d2, d2)
	f := linalg.DotVec3(d2, r)

	const eps = 1e-12

	if a <= eps && e <= eps {
		// both segments degenerate to points
		return p1, p2, 0, 0
	}
	if a <= eps {
		s = 0
		t = clamp01(f / e)
	} else {
		c := linalg.DotVec3(d1, r)
		if e <= eps {
			t = 0
			s = clamp01(-c / a)
		} else {
			b := linalg.DotVec3(d1, d2)
			denom := a*e - b*b
			if denom > eps {
				s = clamp01((b*f - c*e) / denom)
			} else {
				// near-parallel: parametric solve is singular, fall back to
				// the midpoint-of-midpoints construction.
				mid1 := linalg.ScaleVec3(0.5, linalg.AddVec3(p1, q1))
				mid2 := linalg.ScaleVec3(0.5, linalg.AddVec3(p2, q2))
				return mid1, mid2, 0.5, 0.5
			}
			t = (b*s + f) / e
			if t < 0 {
				t = 0
				s = clamp01(-c / a)
			} else if t > 1 {
				t = 1
				s = clamp01((b - c) / a)
			}
		}
	}
	c1 = linalg.AddVec3(p1, linalg.ScaleVec3(s, d1))
	c2 = linalg.AddVec3(p2, linalg.ScaleVec3(t, d2))
	return
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) {
		return 0.5
	}
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
