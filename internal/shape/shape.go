// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import "github.com/cpmech/tetsim/internal/integrator"

var (
	_ integrator.KinematicShape = (*Sphere)(nil)
	_ integrator.KinematicShape = (*Cube)(nil)
)
