// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"math"

	"github.com/cpmech/tetsim/internal/linalg"
)

// Barycentric holds the barycentric weights of a point with respect to a
// triangle (a,b,c), in the order (wa, wb, wc), wa+wb+wc == 1.
type Barycentric = linalg.Vec3

// ProjectToPlane computes the barycentric coordinates of the orthogonal
// projection of p onto the plane of triangle (a,b,c); it is a pure
// in-plane test and does not clamp to the triangle interior (§4.B).
func ProjectToPlane(p, a, b, c linalg.Vec3) Barycentric {
	v0 := linalg.SubVec3(b, a)
	v1 := linalg.SubVec3(c, a)
	v2 := linalg.SubVec3(p, a)
	d00 := linalg.DotVec3(v0, v0)
	d01 := linalg.DotVec3(v0, v1)
	d11 := linalg.DotVec3(v1, v1)
	d20 := linalg.DotVec3(v2, v0)
	d21 := linalg.DotVec3(v2, v1)
	denom := d00*d11 - d01*d01
	if math.Abs(denom) < 1e-300 {
		return Barycentric{1, 0, 0}
	}
	v := (d11*d20 - d01*d21) / denom
	w := (d00*d21 - d01*d20) / denom
	u := 1 - v - w
	return Barycentric{u, v, w}
}

// InsideTriangle reports whether barycentric weights correspond to a point
// inside (or on the boundary of) the triangle.
func InsideTriangle(bw Barycentric) bool {
	const tol = -1e-12
	return bw[0] >= tol && bw[1] >= tol && bw[2] >= tol
}

// PointTriangleDistance returns the Euclidean distance from p to the
// closest point of triangle (a,b,c), the barycentric weights of that
// closest point, and whether the closest point lies in the triangle's
// interior (as opposed to an edge or vertex) (§4.B). When the plane
// projection falls outside the triangle, the minimum is taken over the
// three edge projections (clamped to the edge) and the three vertices.
func PointTriangleDistance(p, a, b, c linalg.Vec3) (dist float64, bw Barycentric, inside bool) {
	planeBW := ProjectToPlane(p, a, b, c)
	if InsideTriangle(planeBW) {
		closest := linalg.AddVec3(linalg.AddVec3(linalg.ScaleVec3(planeBW[0], a), linalg.ScaleVec3(planeBW[1], b)), linalg.ScaleVec3(planeBW[2], c))
		return linalg.NormVec3(linalg.SubVec3(p, closest)), planeBW, true
	}

	type cand struct {
		d  float64
		bw Barycentric
	}
	best := cand{d: math.MaxFloat64}

	tryEdge := func(p0, p1 linalg.Vec3, w0idx, w1idx, otherIdx int) {
		d := linalg.SubVec3(p1, p0)
		len2 := linalg.DotVec3(d, d)
		t := 0.0
		if len2 > 1e-300 {
			t = linalg.DotVec3(linalg.SubVec3(p, p0), d) / len2
		}
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
		closest := linalg.AddVec3(p0, linalg.ScaleVec3(t, d))
		dist := linalg.NormVec3(linalg.SubVec3(p, closest))
		var bw Barycentric
		bw[w0idx] = 1 - t
		bw[w1idx] = t
		bw[otherIdx] = 0
		if dist < best.d {
			best = cand{d: dist, bw: bw}
		}
	}
	tryEdge(a, b, 0, 1, 2)
	tryEdge(b, c, 1, 2, 0)
	tryEdge(c, a, 2, 0, 1)

	return best.d, best.bw, false
}
