// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bvh

import (
	"math/rand"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/tetsim/internal/linalg"
)

func Test_bvh_invariant_after_refit(tst *testing.T) {
	chk.PrintTitle("bvh_invariant_after_refit")
	rng := rand.New(rand.NewSource(30))
	n := 200
	pts := make([]linalg.Vec3, n)
	for i := range pts {
		pts[i] = linalg.Vec3{rng.Float64(), rng.Float64(), rng.Float64()}
	}
	boxFor := func(i int) AABB { return FromPoints(pts[i]) }
	centroidFor := func(i int) linalg.Vec3 { return pts[i] }
	tree := Build(n, boxFor, centroidFor)

	for i := range pts {
		pts[i] = linalg.AddVec3(pts[i], linalg.Vec3{0.1 * rng.Float64(), 0, 0})
	}
	tree.Refit(boxFor)
	tree.CheckInvariant(boxFor, 1e-9)
}

func Test_bvh_refit_tracks_uniform_translation(tst *testing.T) {
	chk.PrintTitle("bvh_refit_tracks_uniform_translation")
	rng := rand.New(rand.NewSource(31))
	n := 1000
	tris := make([][3]linalg.Vec3, n)
	for i := range tris {
		c := linalg.Vec3{10 * rng.Float64(), 10 * rng.Float64(), 10 * rng.Float64()}
		tris[i] = [3]linalg.Vec3{
			linalg.AddVec3(c, linalg.Vec3{0, 0, 0}),
			linalg.AddVec3(c, linalg.Vec3{0.1, 0, 0}),
			linalg.AddVec3(c, linalg.Vec3{0, 0.1, 0}),
		}
	}
	boxFor := func(i int) AABB { return FromPoints(tris[i][0], tris[i][1], tris[i][2]) }
	centroidFor := func(i int) linalg.Vec3 {
		return linalg.ScaleVec3(1.0/3.0, linalg.AddVec3(linalg.AddVec3(tris[i][0], tris[i][1]), tris[i][2]))
	}
	tree := Build(n, boxFor, centroidFor)
	before := tree.Root()

	shift := linalg.Vec3{1, 0, 0}
	for i := range tris {
		for j := range tris[i] {
			tris[i][j] = linalg.AddVec3(tris[i][j], shift)
		}
	}
	tree.Refit(boxFor)
	after := tree.Root()

	for c := 0; c < 3; c++ {
		if d := (after.Min[c] - before.Min[c]) - shift[c]; d > 1e-9 || d < -1e-9 {
			tst.Fatalf("root min axis %d shifted by %v, want %v", c, after.Min[c]-before.Min[c], shift[c])
		}
		if d := (after.Max[c] - before.Max[c]) - shift[c]; d > 1e-9 || d < -1e-9 {
			tst.Fatalf("root max axis %d shifted by %v, want %v", c, after.Max[c]-before.Max[c], shift[c])
		}
	}
}

func Test_bvh_query_finds_nearby(tst *testing.T) {
	chk.PrintTitle("bvh_query_finds_nearby")
	// more primitives than one leaf holds, so the distant point 2 is split
	// into a leaf of its own and a whole-leaf query near the origin skips it
	pts := []linalg.Vec3{{0, 0, 0}, {1, 0, 0}, {5, 5, 5}, {0.01, 0, 0}, {0.02, 0, 0}}
	boxFor := func(i int) AABB { return FromPoints(pts[i]) }
	centroidFor := func(i int) linalg.Vec3 { return pts[i] }
	tree := Build(len(pts), boxFor, centroidFor)

	hits := tree.QueryPoint(linalg.Vec3{0, 0, 0}, 0.1)
	foundSelf, foundNear, foundFar := false, false, false
	for _, h := range hits {
		switch h {
		case 0:
			foundSelf = true
		case 3:
			foundNear = true
		case 2:
			foundFar = true
		}
	}
	if !foundSelf || !foundNear {
		tst.Fatalf("expected to find primitives 0 and 3, got %v", hits)
	}
	if foundFar {
		tst.Fatalf("unexpectedly found distant primitive 2: %v", hits)
	}
}
