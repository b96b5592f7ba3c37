// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrator

import "github.com/cpmech/tetsim/internal/linalg"

// KinematicConstraint pins a vertex to a local coordinate of a kinematic
// shape; the target displacement places the vertex at the shape's current
// world transform of that local point (§4.G).
type KinematicConstraint struct {
	Shape         KinematicShape
	VertexID      int
	LocalPosition linalg.Vec3
}

// PlaneConstraint records a vertex currently touching a collision shape:
// the shape, the vertex, the local closest point and outward normal at
// attachment time, and whether the constraint has since been flagged for
// removal (§4.G).
type PlaneConstraint struct {
	Shape        KinematicShape
	VertexID     int
	LocalClosest linalg.Vec3
	LocalNormal  linalg.Vec3
	IsSeparating bool
}

// AttachKinematicConstraints records a kinematic pin for every surface
// vertex outside the shape, storing its local coordinate at attachment
// time (§4.G, §6 "attachKinematicConstraints").
func (o *Integrator) AttachKinematicConstraints(shape KinematicShape) {
	for _, v := range o.mesh.SurfaceVertices() {
		p := o.mesh.Position(v)
		if shape.Inside(p) {
			continue
		}
		local := shape.WorldVertexToLocal(p)
		o.kinematic = append(o.kinematic, KinematicConstraint{Shape: shape, VertexID: v, LocalPosition: local})
	}
}

// AddPlaneConstraint records a new plane (surface) contact constraint
// directly, e.g. from an external scripted scenario (§6
// "addPlaneConstraint").
func (o *Integrator) AddPlaneConstraint(shape KinematicShape, vertexID int, localClosest, localNormal linalg.Vec3) {
	o.plane = append(o.plane, PlaneConstraint{Shape: shape, VertexID: vertexID, LocalClosest: localClosest, LocalNormal: localNormal})
}

// findNewSurfaceConstraints scans every kinematic collision shape for
// surface vertices that have newly entered it and records a plane
// constraint for each, done before the solve per §4.G's scheduling rule.
func (o *Integrator) findNewSurfaceConstraints() {
	for _, shape := range o.collisionShapes {
		for _, v := range o.mesh.SurfaceVertices() {
			if o.hasPlaneConstraint(shape, v) {
				continue
			}
			p := o.mesh.Position(v)
			if !shape.Inside(p) {
				continue
			}
			localPoint, localNormal := shape.ClosestPoint(p)
			o.plane = append(o.plane, PlaneConstraint{Shape: shape, VertexID: v, LocalClosest: localPoint, LocalNormal: localNormal})
		}
	}
}

func (o *Integrator) hasPlaneConstraint(shape KinematicShape, v int) bool {
	for i := range o.plane {
		if o.plane[i].Shape == shape && o.plane[i].VertexID == v && !o.plane[i].IsSeparating {
			return true
		}
	}
	return false
}

// dropSeparatingConstraints removes every plane constraint flagged
// IsSeparating, done after the solve per §4.G's scheduling rule.
func (o *Integrator) dropSeparatingConstraints() {
	kept := o.plane[:0]
	for _, c := range o.plane {
		if !c.IsSeparating {
			kept = append(kept, c)
		}
	}
	o.plane = kept
}

const separationSlack = 1e-6

// findSeparatingSurfaceConstraints flags plane constraints whose vertex
// has moved outside the shape by more than the slack, or whose
// unfiltered pre-solve RHS direction already points away from the
// surface, per §4.G / §7's "consult the unfiltered RHS before the
// filter clobbers direction-of-force information".
func (o *Integrator) findSeparatingSurfaceConstraints(unfiltered []linalg.Vec3) {
	for i := range o.plane {
		c := &o.plane[i]
		if c.IsSeparating {
			continue
		}
		p := o.mesh.Position(c.VertexID)
		if c.Shape.SignedDistance(p) > separationSlack {
			c.IsSeparating = true
			continue
		}
		dir := unfiltered[c.VertexID]
		norm := linalg.NormVec3(dir)
		if norm > 1 {
			dir = linalg.ScaleVec3(1/norm, dir)
		}
		normal := c.Shape.LocalNormalToWorld(c.LocalNormal)
		if linalg.DotVec3(dir, normal) > separationSlack {
			c.IsSeparating = true
		}
	}
}
