// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import "github.com/cpmech/tetsim/internal/linalg"

// Cube is a unit cube ([-0.5, 0.5]^3 before scaling) placed by
// transform, grounded on original_source/core/Geometry/src/Cube.cpp.
type Cube struct {
	transform
}

// NewCube places a cube of the given world side length at center.
func NewCube(center linalg.Vec3, side float64) *Cube {
	return &Cube{transform: newTransform(center, side)}
}

func (c *Cube) Inside(p linalg.Vec3) bool {
	t := c.worldVertexToLocal(p)
	return t[0] >= -0.5 && t[0] <= 0.5 && t[1] >= -0.5 && t[1] <= 0.5 && t[2] >= -0.5 && t[2] <= 0.5
}

func (c *Cube) SignedDistance(p linalg.Vec3) float64 {
	t := c.worldVertexToLocal(p)
	scale := c.uniformScale()
	if c.Inside(p) {
		xMin := min2(0.5-t[0], t[0]+0.5)
		yMin := min2(0.5-t[1], t[1]+0.5)
		zMin := min2(0.5-t[2], t[2]+0.5)
		return -min2(min2(xMin, yMin), zMin) * scale
	}
	var diff linalg.Vec3
	for i := 0; i < 3; i++ {
		switch {
		case t[i] > 0.5:
			diff[i] = t[i] - 0.5
		case t[i] < -0.5:
			diff[i] = -0.5 - t[i]
		}
	}
	return linalg.NormVec3(diff) * scale
}

// ClosestPoint projects the query onto whichever of the cube's six
// faces (in local coordinates) is nearest, matching Cube.cpp's
// getClosestPoint face-selection order exactly.
func (c *Cube) ClosestPoint(p linalg.Vec3) (localPoint, localNormal linalg.Vec3) {
	t := c.worldVertexToLocal(p)
	diffs := [6]float64{
		0.5 + t[0], 0.5 - t[0],
		0.5 + t[1], 0.5 - t[1],
		0.5 + t[2], 0.5 - t[2],
	}
	minIndex, minFound := 0, diffs[0]
	for i := 1; i < 6; i++ {
		if diffs[i] < minFound {
			minFound, minIndex = diffs[i], i
		}
	}
	localPoint = t
	switch minIndex {
	case 0:
		localPoint[0] = -0.5
		localNormal = linalg.Vec3{-1, 0, 0}
	case 1:
		localPoint[0] = 0.5
		localNormal = linalg.Vec3{1, 0, 0}
	case 2:
		localPoint[1] = -0.5
		localNormal = linalg.Vec3{0, -1, 0}
	case 3:
		localPoint[1] = 0.5
		localNormal = linalg.Vec3{0, 1, 0}
	case 4:
		localPoint[2] = -0.5
		localNormal = linalg.Vec3{0, 0, -1}
	case 5:
		localPoint[2] = 0.5
		localNormal = linalg.Vec3{0, 0, 1}
	}
	return localPoint, localNormal
}

func (c *Cube) LocalVertexToWorld(local linalg.Vec3) linalg.Vec3 { return c.localVertexToWorld(local) }
func (c *Cube) WorldVertexToLocal(world linalg.Vec3) linalg.Vec3 { return c.worldVertexToLocal(world) }
func (c *Cube) LocalNormalToWorld(n linalg.Vec3) linalg.Vec3     { return c.localNormalToWorld(n) }

func min2(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
