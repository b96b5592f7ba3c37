// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import (
	"github.com/cpmech/tetsim/internal/geom"
	"github.com/cpmech/tetsim/internal/linalg"
)

// EdgeEdgeCross implements the edge-edge analogue of VertexFaceCross
// (§4.D): stencil {edgeA0, edgeA1, edgeB0, edgeB1}, normal
// n = (edgeA1-edgeA0) x (edgeB1-edgeB0) normalised, spring length
// s = n.(edgeA0-edgeB0) - eps; its magnitude remains well defined even
// when the two edges are colinear, unlike the barycentric variant.
type EdgeEdgeCross struct {
	Stencil  geom.Stencil4
	Mu       float64
	Eps      float64
	Reversed bool

	sg springGeom
}

func NewEdgeEdgeCross(stencil geom.Stencil4, mu, eps float64, reversed bool) (*EdgeEdgeCross, bool) {
	u, v := geom.EECoeffs()
	sg := buildSpringGeom(stencil, u, v, 1e-12)
	return &EdgeEdgeCross{Stencil: stencil, Mu: mu, Eps: eps, Reversed: reversed, sg: sg}, sg.ok
}

func eeTCoeffs() [4]float64 { return [4]float64{1, 0, -1, 0} }

func (o *EdgeEdgeCross) eval() (psi float64, grad linalg.Vec12, hess linalg.Mat12) {
	s, gradS, hessS := springLength(o.sg, o.Stencil, eeTCoeffs(), o.Eps, o.Reversed)
	return quadraticFromSpring(o.Mu, s, gradS, hessS)
}

func (o *EdgeEdgeCross) Psi() float64 {
	psi, _, _ := o.eval()
	return psi
}

func (o *EdgeEdgeCross) Gradient() linalg.Vec12 {
	_, grad, _ := o.eval()
	return grad
}

func (o *EdgeEdgeCross) Hessian() linalg.Mat12 {
	_, _, hess := o.eval()
	return hess
}

func (o *EdgeEdgeCross) ClampedHessian() linalg.Mat12 {
	return linalg.ClampPSD12(o.Hessian())
}
