// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import (
	"github.com/cpmech/tetsim/internal/geom"
	"github.com/cpmech/tetsim/internal/linalg"
)

// EdgeEdgeHybrid implements the edge-edge hybrid energy of §4.D: it
// defers to the barycentric variant except when the repulsion direction
// (the closest-point separation) falls below separationEps, in which case
// it falls back to the cross-product form whose magnitude stays well
// defined when the two edges are colinear.
type EdgeEdgeHybrid struct {
	bary *EdgeEdgeBary
	crss *EdgeEdgeCross
	useCross bool
}

// NewEdgeEdgeHybrid builds the hybrid energy. separationEps is the norm
// below which the barycentric closest-point separation is considered too
// small to trust (near-colinear edges), triggering the cross-product
// fallback.
func NewEdgeEdgeHybrid(stencil geom.Stencil4, u, w, mu, eps, separationEps float64, reversed bool) *EdgeEdgeHybrid {
	bary := NewEdgeEdgeBary(stencil, u, w, mu, eps, reversed)
	if linalg.NormVec3(bary.t()) >= separationEps {
		return &EdgeEdgeHybrid{bary: bary, useCross: false}
	}
	crss, ok := NewEdgeEdgeCross(stencil, mu, eps, reversed)
	if !ok {
		// both forms degenerate (truly coincident edges): keep the
		// barycentric form, which at least returns a finite energy at r=0.
		return &EdgeEdgeHybrid{bary: bary, useCross: false}
	}
	return &EdgeEdgeHybrid{crss: crss, useCross: true}
}

func (o *EdgeEdgeHybrid) active() Energy {
	if o.useCross {
		return o.crss
	}
	return o.bary
}

func (o *EdgeEdgeHybrid) Psi() float64                  { return o.active().Psi() }
func (o *EdgeEdgeHybrid) Gradient() linalg.Vec12        { return o.active().Gradient() }
func (o *EdgeEdgeHybrid) Hessian() linalg.Mat12         { return o.active().Hessian() }
func (o *EdgeEdgeHybrid) ClampedHessian() linalg.Mat12  { return o.active().ClampedHessian() }
