// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sceneio

import (
	"bytes"
	"fmt"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/tetsim/internal/linalg"
)

// WriteOBJ writes the current surface (vertices plus 1-based triangle
// indices) as a Wavefront OBJ file (§6 "OBJ surface export"): one
// "v x y z" line per vertex followed by one "f i0 i1 i2" line per
// surface triangle.
func WriteOBJ(path string, verts []linalg.Vec3, tris [][3]int) {
	var buf bytes.Buffer
	for _, v := range verts {
		fmt.Fprintf(&buf, "v %.17g %.17g %.17g\n", v[0], v[1], v[2])
	}
	for _, t := range tris {
		fmt.Fprintf(&buf, "f %d %d %d\n", t[0]+1, t[1]+1, t[2]+1)
	}
	io.WriteFile(path, &buf)
}
