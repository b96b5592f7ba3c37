// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package bvh implements a static-topology axis-aligned bounding-volume
// hierarchy over a fixed set of primitives (§4.F): built once from rest
// geometry by recursive median-axis splits, refit bottom-up against the
// current configuration every step, queried for broadphase proximity
// candidates that the caller narrow-phases exactly.
package bvh

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/tetsim/internal/linalg"
)

// AABB is an axis-aligned box.
type AABB struct {
	Min, Max linalg.Vec3
}

// Union returns the smallest box containing both a and b.
func Union(a, b AABB) AABB {
	var r AABB
	for i := 0; i < 3; i++ {
		r.Min[i] = min(a.Min[i], b.Min[i])
		r.Max[i] = max(a.Max[i], b.Max[i])
	}
	return r
}

// FromPoints returns the box bounding the given points.
func FromPoints(pts ...linalg.Vec3) AABB {
	if len(pts) == 0 {
		return AABB{}
	}
	b := AABB{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		for i := 0; i < 3; i++ {
			b.Min[i] = min(b.Min[i], p[i])
			b.Max[i] = max(b.Max[i], p[i])
		}
	}
	return b
}

// Inflate returns b expanded by eps on every side.
func (b AABB) Inflate(eps float64) AABB {
	return AABB{
		Min: linalg.Vec3{b.Min[0] - eps, b.Min[1] - eps, b.Min[2] - eps},
		Max: linalg.Vec3{b.Max[0] + eps, b.Max[1] + eps, b.Max[2] + eps},
	}
}

// Overlaps reports whether b and o intersect.
func (b AABB) Overlaps(o AABB) bool {
	for i := 0; i < 3; i++ {
		if b.Max[i] < o.Min[i] || o.Max[i] < b.Min[i] {
			return false
		}
	}
	return true
}

// Contains reports whether the point p lies within b.
func (b AABB) Contains(p linalg.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

func (b AABB) Centroid() linalg.Vec3 {
	return linalg.ScaleVec3(0.5, linalg.AddVec3(b.Min, b.Max))
}

func (b AABB) longestAxis() int {
	ext := linalg.SubVec3(b.Max, b.Min)
	axis := 0
	if ext[1] > ext[axis] {
		axis = 1
	}
	if ext[2] > ext[axis] {
		axis = 2
	}
	return axis
}

const maxLeafSize = 4

type node struct {
	box         AABB
	left, right int // -1 for leaves
	prims       []int
}

// Tree is a static-topology bounding volume hierarchy over primitive
// indices 0..n-1; the boxFor callback passed to Build and Refit supplies
// each primitive's current bounds.
type Tree struct {
	nodes []node
	root  int
}

// Build constructs the tree by recursive median-axis splits over the rest
// configuration given by boxFor/centroidFor (§4.F): "choose the longest
// axis of the current node box, cut at its midpoint, partition primitives
// by their centroid along that axis, recurse."
func Build(n int, boxFor func(i int) AABB, centroidFor func(i int) linalg.Vec3) *Tree {
	if n == 0 {
		return &Tree{root: -1}
	}
	t := &Tree{}
	prims := make([]int, n)
	for i := range prims {
		prims[i] = i
	}
	t.root = t.build(prims, boxFor, centroidFor)
	return t
}

func (t *Tree) build(prims []int, boxFor func(i int) AABB, centroidFor func(i int) linalg.Vec3) int {
	var box AABB
	box = boxFor(prims[0])
	for _, p := range prims[1:] {
		box = Union(box, boxFor(p))
	}
	idx := len(t.nodes)
	t.nodes = append(t.nodes, node{box: box, left: -1, right: -1})

	if len(prims) <= maxLeafSize {
		t.nodes[idx].prims = append([]int(nil), prims...)
		return idx
	}

	axis := box.longestAxis()
	mid := box.Centroid()[axis]
	var left, right []int
	for _, p := range prims {
		if centroidFor(p)[axis] < mid {
			left = append(left, p)
		} else {
			right = append(right, p)
		}
	}
	// degenerate split (all centroids on one side): fall back to a
	// balanced split by sorted order so the recursion still terminates.
	if len(left) == 0 || len(right) == 0 {
		sorted := append([]int(nil), prims...)
		sort.Slice(sorted, func(i, j int) bool {
			return centroidFor(sorted[i])[axis] < centroidFor(sorted[j])[axis]
		})
		h := len(sorted) / 2
		left, right = sorted[:h], sorted[h:]
	}

	li := t.build(left, boxFor, centroidFor)
	ri := t.build(right, boxFor, centroidFor)
	t.nodes[idx].left = li
	t.nodes[idx].right = ri
	return idx
}

// Root returns the bounding box of the tree's root node.
func (t *Tree) Root() AABB {
	if t.root < 0 {
		return AABB{}
	}
	return t.nodes[t.root].box
}

// Refit recomputes every node's bounds bottom-up against the current
// configuration: leaves recompute directly from boxFor, interior nodes
// take the union of their children (§4.F).
func (t *Tree) Refit(boxFor func(i int) AABB) {
	if t.root < 0 {
		return
	}
	t.refit(t.root, boxFor)
}

func (t *Tree) refit(i int, boxFor func(i int) AABB) AABB {
	nd := &t.nodes[i]
	if nd.left < 0 {
		var box AABB
		box = boxFor(nd.prims[0])
		for _, p := range nd.prims[1:] {
			box = Union(box, boxFor(p))
		}
		nd.box = box
		return box
	}
	lb := t.refit(nd.left, boxFor)
	rb := t.refit(nd.right, boxFor)
	nd.box = Union(lb, rb)
	return nd.box
}

// QueryBox returns all primitive indices stored beneath nodes whose box
// overlaps the inflated query box; the caller must narrow-phase exactly.
func (t *Tree) QueryBox(q AABB, eps float64) []int {
	if t.root < 0 {
		return nil
	}
	qi := q.Inflate(eps)
	var out []int
	t.queryBox(t.root, qi, &out)
	return out
}

func (t *Tree) queryBox(i int, q AABB, out *[]int) {
	nd := &t.nodes[i]
	if !nd.box.Overlaps(q) {
		return
	}
	if nd.left < 0 {
		*out = append(*out, nd.prims...)
		return
	}
	t.queryBox(nd.left, q, out)
	t.queryBox(nd.right, q, out)
}

// QueryPoint returns candidate primitives within eps of point p.
func (t *Tree) QueryPoint(p linalg.Vec3, eps float64) []int {
	return t.QueryBox(AABB{Min: p, Max: p}, eps)
}

// QuerySegment returns candidate primitives within eps of the segment a-b,
// using the segment's own bounding box as the query (§4.F "point-pair
// bounding box").
func (t *Tree) QuerySegment(a, b linalg.Vec3, eps float64) []int {
	return t.QueryBox(FromPoints(a, b), eps)
}

// CheckInvariant asserts that every primitive stored beneath a node lies
// inside that node's box (within eps), per §8 Testable Property 8; used
// by tests, not by the hot path.
func (t *Tree) CheckInvariant(boxFor func(i int) AABB, eps float64) {
	if t.root < 0 {
		return
	}
	t.checkInvariant(t.root, boxFor, eps)
}

func (t *Tree) checkInvariant(i int, boxFor func(i int) AABB, eps float64) {
	nd := &t.nodes[i]
	for _, p := range nd.prims {
		pb := boxFor(p)
		inflated := nd.box.Inflate(eps)
		if !inflated.Contains(pb.Min) || !inflated.Contains(pb.Max) {
			chk.Panic("bvh: primitive %d escapes node bounds", p)
		}
	}
	if nd.left >= 0 {
		t.checkInvariant(nd.left, boxFor, eps)
		t.checkInvariant(nd.right, boxFor, eps)
	}
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
