// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/tetsim/internal/linalg"
)

// SetPositions overwrites every vertex's current position and marks every
// tet's deformation cache stale; callers must then call UpdateDeformation
// before reading F, Fdot, or the SVD factors of any tet (§3, §7 tier 1).
func (m *Mesh) SetPositions(pos []linalg.Vec3) {
	if len(pos) != len(m.pos) {
		chk.Panic("mesh: SetPositions given %d positions, mesh has %d vertices", len(pos), len(m.pos))
	}
	copy(m.pos, pos)
	for k := range m.tets {
		m.tets[k].svdStale = true
	}
}

// SetVelocities overwrites every vertex's current velocity.
func (m *Mesh) SetVelocities(vel []linalg.Vec3) {
	if len(vel) != len(m.vel) {
		chk.Panic("mesh: SetVelocities given %d velocities, mesh has %d vertices", len(vel), len(m.vel))
	}
	copy(m.vel, vel)
}

// UpdateDeformation recomputes F, Ḟ and the rotation-variant SVD of F for
// every tet from the current vertex positions and velocities, and flags
// any tet that has inverted (det F <= 0) (§4.A, §7).
func (m *Mesh) UpdateDeformation() {
	for i := range m.inverted {
		m.inverted[i] = false
	}
	for k := range m.tets {
		t := &m.tets[k]
		v0, v1, v2, v3 := m.pos[t.V[0]], m.pos[t.V[1]], m.pos[t.V[2]], m.pos[t.V[3]]
		Ds := edgeMatrix(v0, v1, v2, v3)
		t.F = linalg.MatMul3(Ds, t.DmInv)

		vd0, vd1, vd2, vd3 := m.vel[t.V[0]], m.vel[t.V[1]], m.vel[t.V[2]], m.vel[t.V[3]]
		DsDot := edgeMatrix(vd0, vd1, vd2, vd3)
		// DsDot above uses edgeMatrix's own v0-origin convention; since
		// velocities add linearly, edgeMatrix(vd0,...) already equals the
		// time-derivative of Ds.
		t.Fdot = linalg.MatMul3(DsDot, t.DmInv)

		t.U, t.Vr, t.Sigma = linalg.SVDRV(t.F)
		t.svdStale = false

		if linalg.Det3(t.F) <= 0 {
			for _, vi := range t.V {
				m.inverted[vi] = true
			}
		}
	}
}

// IsInverted reports whether vertex i belongs to a tet with non-positive
// determinant of F, as of the last UpdateDeformation (§4.A, §7).
func (m *Mesh) IsInverted(i int) bool { return m.inverted[i] }

// SVD returns the cached rotation-variant SVD factors of tet k; panics if
// UpdateDeformation has not been called since the last position change
// (§7 tier 1, "stale cache read").
func (m *Mesh) SVD(k int) (U, V linalg.Mat3, Sigma linalg.Vec3) {
	t := &m.tets[k]
	if t.svdStale {
		chk.Panic("mesh: tet %d SVD read while stale; call UpdateDeformation first", k)
	}
	return t.U, t.Vr, t.Sigma
}
