// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/tetsim/internal/linalg"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

func Test_cross_gradient_finite_difference(tst *testing.T) {
	chk.PrintTitle("cross_gradient_finite_difference")
	rng := rand.New(rand.NewSource(5))
	uC, vC := VFCoeffs()
	for trial := 0; trial < 10; trial++ {
		var s Stencil4
		for i := range s {
			s[i] = linalg.Vec3{rng.Float64(), rng.Float64(), rng.Float64()}
		}
		dc := CrossGradient12(s, uC, vC)
		x0 := Flatten12(s)
		const h = 1e-6
		for k := 0; k < 12; k++ {
			xp := x0
			xm := x0
			xp[k] += h
			xm[k] -= h
			sp, sm := s, s
			setStencil(&sp, xp)
			setStencil(&sm, xm)
			cp := CrossRaw(sp, uC, vC)
			cm := CrossRaw(sm, uC, vC)
			for j := 0; j < 3; j++ {
				fd := (cp[j] - cm[j]) / (2 * h)
				if math.Abs(fd-dc[j][k]) > 1e-5 {
					tst.Fatalf("cross gradient mismatch at k=%d j=%d: fd=%v analytic=%v", k, j, fd, dc[j][k])
				}
			}
		}
	}
}

func setStencil(s *Stencil4, x linalg.Vec12) {
	v0, v1, v2, v3 := linalg.UnflattenVerts12(x)
	s[0], s[1], s[2], s[3] = v0, v1, v2, v3
}

func Test_point_triangle_distance_inside(tst *testing.T) {
	chk.PrintTitle("point_triangle_distance_inside")
	a := linalg.Vec3{0, 0, 0}
	b := linalg.Vec3{1, 0, 0}
	c := linalg.Vec3{0, 1, 0}
	p := linalg.Vec3{0.25, 0.25, 0.5}
	d, bw, inside := PointTriangleDistance(p, a, b, c)
	if !inside {
		tst.Fatalf("expected projection inside the triangle")
	}
	if math.Abs(d-0.5) > 1e-12 {
		tst.Fatalf("expected distance 0.5, got %v", d)
	}
	sum := bw[0] + bw[1] + bw[2]
	if math.Abs(sum-1) > 1e-9 {
		tst.Fatalf("barycentric weights do not sum to 1: %v", sum)
	}
}

func Test_segment_segment_perpendicular(tst *testing.T) {
	chk.PrintTitle("segment_segment_perpendicular")
	p1 := linalg.Vec3{-1, 0, 0}
	q1 := linalg.Vec3{1, 0, 0}
	p2 := linalg.Vec3{0, -1, 1}
	q2 := linalg.Vec3{0, 1, 1}
	c1, c2, s, t := SegmentSegmentClosestPoints(p1, q1, p2, q2)
	if math.Abs(s-0.5) > 1e-9 || math.Abs(t-0.5) > 1e-9 {
		tst.Fatalf("expected midpoints, got s=%v t=%v", s, t)
	}
	if math.Abs(linalg.NormVec3(linalg.SubVec3(c1, c2))-1) > 1e-9 {
		tst.Fatalf("expected closest-point distance 1, got %v", linalg.NormVec3(linalg.SubVec3(c1, c2)))
	}
}

// Test_cross_raw_matches_r3_oracle cross-checks CrossRaw against
// gonum's independent r3/floats vector implementations, as a second
// pair of eyes on the hand-rolled 12-wide Jacobians above.
func Test_cross_raw_matches_r3_oracle(tst *testing.T) {
	chk.PrintTitle("cross_raw_matches_r3_oracle")
	rng := rand.New(rand.NewSource(7))
	uC, vC := VFCoeffs()
	for trial := 0; trial < 10; trial++ {
		var s Stencil4
		for i := range s {
			s[i] = linalg.Vec3{rng.Float64(), rng.Float64(), rng.Float64()}
		}
		got := CrossRaw(s, uC, vC)

		u := combine(s, uC)
		v := combine(s, vC)
		want := r3.Cross(toR3(u), toR3(v))

		if d := floats.Distance([]float64{got[0], got[1], got[2]}, []float64{want.X, want.Y, want.Z}, 2); d > 1e-9 {
			tst.Fatalf("CrossRaw disagrees with r3.Cross oracle: got %v want %v (dist %v)", got, want, d)
		}
	}
}

func combine(s Stencil4, c [4]float64) linalg.Vec3 {
	var out linalg.Vec3
	for i := 0; i < 4; i++ {
		out = linalg.AddVec3(out, linalg.ScaleVec3(c[i], s[i]))
	}
	return out
}

func toR3(v linalg.Vec3) r3.Vec {
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}
}

func Test_face_edge_intersection(tst *testing.T) {
	chk.PrintTitle("face_edge_intersection")
	a := linalg.Vec3{0, 0, 0}
	b := linalg.Vec3{1, 0, 0}
	c := linalg.Vec3{0, 1, 0}
	p0 := linalg.Vec3{0.2, 0.2, -1}
	p1 := linalg.Vec3{0.2, 0.2, 1}
	if !FaceEdgeIntersection(a, b, c, p0, p1) {
		tst.Fatalf("expected intersection")
	}
	p2 := linalg.Vec3{5, 5, -1}
	p3 := linalg.Vec3{5, 5, 1}
	if FaceEdgeIntersection(a, b, c, p2, p3) {
		tst.Fatalf("expected no intersection")
	}
}
