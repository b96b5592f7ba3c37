// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrator

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/tetsim/internal/linalg"
	"github.com/cpmech/tetsim/internal/material"
	"github.com/cpmech/tetsim/internal/mesh"
)

// identityShape pins a vertex exactly at a recorded world point: its local
// and world frames coincide, so AttachKinematicConstraints-style pinning
// reduces to "hold this point fixed".
type identityShape struct{}

func (identityShape) Inside(p linalg.Vec3) bool                 { return false }
func (identityShape) SignedDistance(p linalg.Vec3) float64      { return 1 }
func (identityShape) ClosestPoint(p linalg.Vec3) (linalg.Vec3, linalg.Vec3) {
	return p, linalg.Vec3{0, 1, 0}
}
func (identityShape) LocalVertexToWorld(local linalg.Vec3) linalg.Vec3 { return local }
func (identityShape) WorldVertexToLocal(world linalg.Vec3) linalg.Vec3 { return world }
func (identityShape) LocalNormalToWorld(n linalg.Vec3) linalg.Vec3     { return n }

func singleTet() *mesh.Mesh {
	verts := []linalg.Vec3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1},
	}
	return mesh.New(verts, [][4]int{{0, 1, 2, 3}})
}

func stvkModel(t *testing.T) material.Model {
	mdl, err := material.New("stvk", fun.Prms{
		&fun.Prm{N: "mu", V: 1000},
		&fun.Prm{N: "lambda", V: 1000},
	})
	if err != nil {
		t.Fatalf("material.New: %v", err)
	}
	return mdl
}

// pinBase fixes vertices 0, 1 and 2 at their rest positions, leaving
// vertex 3 (the apex) free, per the single-tet-stretch scenario.
func pinBase(o *Integrator, m *mesh.Mesh) {
	for _, v := range []int{0, 1, 2} {
		o.kinematic = append(o.kinematic, KinematicConstraint{
			Shape: identityShape{}, VertexID: v, LocalPosition: m.RestPosition(v),
		})
	}
}

func Test_single_tet_backward_euler_step_is_stable(t *testing.T) {
	m := singleTet()
	mdl := stvkModel(t)
	o := New(m, mdl)
	o.SetTimestep(1.0 / 240.0)
	o.SetRayleigh(0.01, 0.01)
	pinBase(o, m)
	o.AddGravity(linalg.Vec3{0, -9.8, 0})

	if ok, err := o.Solve(); !ok || err != nil {
		t.Fatalf("Solve reported failure: ok=%v err=%v", ok, err)
	}

	v := o.Velocity(3)
	for i, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			t.Fatalf("apex velocity component %d not finite: %v", i, c)
		}
	}

	apex := m.Position(3)
	rest := m.RestPosition(3)
	disp := linalg.NormVec3(linalg.SubVec3(apex, rest))
	if disp > 0.1 {
		t.Fatalf("apex displaced %v after one step, want <= 0.1", disp)
	}

	for _, v := range []int{0, 1, 2} {
		d := linalg.NormVec3(linalg.SubVec3(m.Position(v), m.RestPosition(v)))
		if d > 1e-9 {
			t.Fatalf("pinned vertex %d moved by %v", v, d)
		}
	}
}

func Test_single_tet_backward_euler_step_is_deterministic(t *testing.T) {
	run := func() linalg.Vec3 {
		m := singleTet()
		mdl := stvkModel(t)
		o := New(m, mdl)
		o.SetTimestep(1.0 / 240.0)
		o.SetRayleigh(0.01, 0.01)
		pinBase(o, m)
		o.AddGravity(linalg.Vec3{0, -9.8, 0})
		o.Solve()
		return o.Velocity(3)
	}
	a := run()
	b := run()
	if a != b {
		t.Fatalf("non-deterministic step: %v vs %v", a, b)
	}
}

func Test_filter_blocks_pinned_and_plane_vertices(t *testing.T) {
	m := singleTet()
	mdl := stvkModel(t)
	o := New(m, mdl)
	o.kinematic = append(o.kinematic, KinematicConstraint{
		Shape: identityShape{}, VertexID: 0, LocalPosition: m.RestPosition(0),
	})
	o.plane = append(o.plane, PlaneConstraint{
		Shape: identityShape{}, VertexID: 3,
		LocalClosest: m.RestPosition(3), LocalNormal: linalg.Vec3{0, 1, 0},
	})

	f := o.buildFilter()

	var zero linalg.Mat3
	if f.blocks[0] != zero {
		t.Fatalf("pinned vertex block not zero: %v", f.blocks[0])
	}

	want := linalg.SubMat3(linalg.Ident3(), linalg.OuterVec3(linalg.Vec3{0, 1, 0}, linalg.Vec3{0, 1, 0}))
	if f.blocks[3] != want {
		t.Fatalf("plane vertex block = %v, want %v", f.blocks[3], want)
	}

	for _, v := range []int{1, 2} {
		if f.blocks[v] != linalg.Ident3() {
			t.Fatalf("free vertex %d block = %v, want identity", v, f.blocks[v])
		}
	}
}

// testSphere is a minimal KinematicShape centred at the origin, used by
// Test_constraint_churn_removes_separating_plane_constraint below; unlike
// identityShape (a constant signed distance, suited to pinning), its
// SignedDistance genuinely tracks distance to a surface so a plane
// constraint attached to it can separate.
type testSphere struct{ radius float64 }

func (s testSphere) Inside(p linalg.Vec3) bool            { return linalg.NormVec3(p) < s.radius }
func (s testSphere) SignedDistance(p linalg.Vec3) float64 { return linalg.NormVec3(p) - s.radius }
func (s testSphere) ClosestPoint(p linalg.Vec3) (linalg.Vec3, linalg.Vec3) {
	n := linalg.ScaleVec3(1/linalg.NormVec3(p), p)
	return n, n
}
func (s testSphere) LocalVertexToWorld(local linalg.Vec3) linalg.Vec3 { return local }
func (s testSphere) WorldVertexToLocal(world linalg.Vec3) linalg.Vec3 { return world }
func (s testSphere) LocalNormalToWorld(n linalg.Vec3) linalg.Vec3     { return n }

// Test_constraint_churn_removes_separating_plane_constraint covers §8
// scenario S4: a vertex held by a plane constraint, pulled off the
// surface by a tangential force, must have its constraint dropped once
// it separates and then move freely in the force direction.
func Test_constraint_churn_removes_separating_plane_constraint(t *testing.T) {
	m := singleTet()
	mdl := stvkModel(t)
	o := New(m, mdl)
	o.SetTimestep(1.0 / 60.0)
	o.SetRayleigh(0.01, 0.01)
	pinBase(o, m)

	sphere := testSphere{radius: 1}
	apexRest := m.RestPosition(3)
	o.AddPlaneConstraint(sphere, 3, apexRest, apexRest)
	o.external[3] = linalg.Vec3{50, 0, 0}

	removedAt := -1
	for step := 0; step < 60; step++ {
		if _, err := o.Solve(); err != nil {
			t.Fatalf("step %d: Solve error: %v", step, err)
		}
		if len(o.plane) == 0 {
			removedAt = step
			break
		}
	}
	if removedAt < 0 {
		t.Fatalf("plane constraint was never dropped after 60 steps")
	}

	apex := m.Position(3)
	if apex[0] <= apexRest[0] {
		t.Fatalf("apex did not move in the force direction after separation: rest %v now %v", apexRest, apex)
	}
}

// Test_self_collision_detects_approaching_surfaces covers §8 scenario S3
// in miniature: two tets stacked with a small gap, the upper one falling
// under gravity onto the pinned lower one, must produce a non-empty
// vertex-face candidate list once they approach.
func Test_self_collision_detects_approaching_surfaces(t *testing.T) {
	const gap = 0.05
	verts := []linalg.Vec3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0.3, 0.3, 1},
		{0, 1 + gap, 0}, {1, 1 + gap, 0}, {0, 2 + gap, 0}, {0.3, 1.3 + gap, 1},
	}
	tets := [][4]int{{0, 1, 2, 3}, {4, 5, 6, 7}}
	m := mesh.New(verts, tets)
	mdl := stvkModel(t)
	o := New(m, mdl)
	o.SetTimestep(1.0 / 60.0)
	o.SetRayleigh(0.01, 0.01)
	o.EdgeEdgeSelfCollisionsOn(false)
	for _, v := range []int{0, 1, 2} {
		o.kinematic = append(o.kinematic, KinematicConstraint{
			Shape: identityShape{}, VertexID: v, LocalPosition: m.RestPosition(v),
		})
	}
	o.AddGravity(linalg.Vec3{0, -9.8, 0})

	found := false
	for step := 0; step < 40 && !found; step++ {
		if _, err := o.Solve(); err != nil {
			t.Fatalf("step %d: Solve error: %v", step, err)
		}
		if len(m.CandidateVertexFace(collisionMargin())) > 0 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a vertex-face candidate once the falling tet approached the pinned one")
	}
}

// Test_energy_damping_dissipates_kinetic_energy covers §8 scenario S6: no
// gravity, an initial velocity field, monotonically decaying kinetic
// energy under Rayleigh (velocity) damping.
func Test_energy_damping_dissipates_kinetic_energy(t *testing.T) {
	m := singleTet()
	mdl := stvkModel(t)
	o := New(m, mdl)
	o.SetTimestep(1.0 / 60.0)
	o.SetRayleigh(0.2, 0.2)

	rng := 1.0
	for v := range o.velocity {
		o.velocity[v] = linalg.Vec3{rng, 0, 0}
		rng = -rng
	}

	kineticEnergy := func() float64 {
		var ke float64
		for v, vel := range o.velocity {
			ke += 0.5 * o.oneRing[v] * linalg.DotVec3(vel, vel)
		}
		return ke
	}

	prev := kineticEnergy()
	for step := 0; step < 100; step++ {
		if _, err := o.Solve(); err != nil {
			t.Fatalf("step %d: Solve error: %v", step, err)
		}
		cur := kineticEnergy()
		if cur > prev+1e-12 {
			t.Fatalf("step %d: kinetic energy increased: %v -> %v", step, prev, cur)
		}
		prev = cur
	}
}

func Test_projected_CG_solves_diagonal_system_exactly(t *testing.T) {
	n := 4
	mass := []float64{1, 1, 1, 1}
	f := newFilter(n)
	sys := &linearSystem{mass: mass, h: 0, f: f}

	rhs := make([]linalg.Vec3, n)
	for i := range rhs {
		rhs[i] = linalg.Vec3{float64(i + 1), 0, 0}
	}

	y, iters, residual := projectedCG(sys, rhs)
	if iters == 0 {
		t.Fatalf("expected at least one CG iteration")
	}
	if residual > cgTol*10 {
		t.Fatalf("residual %v too large after %d iterations", residual, iters)
	}
	for i := range y {
		want := float64(i + 1)
		if math.Abs(y[i][0]-want) > 1e-6 {
			t.Fatalf("y[%d] = %v, want %v", i, y[i], want)
		}
	}
}
