// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// tetsim-bunny runs the "bunny drop" end-to-end scenario (§8 S2): load a
// TetGen tet mesh, rotate and place it above a kinematic floor cube, and
// step the implicit integrator forward, writing an OBJ frame of the
// surface every so often. It is a thin CLI around internal/sceneio,
// internal/mesh, internal/material and internal/integrator, in the style
// of the teacher's own flag-driven cmd/ drivers rather than the
// MPI/simulation-file machinery root main.go uses -- this core has no
// persisted .sim file format (§6 "there is no persisted state layout").
package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/tetsim/internal/diag"
	"github.com/cpmech/tetsim/internal/integrator"
	"github.com/cpmech/tetsim/internal/linalg"
	"github.com/cpmech/tetsim/internal/material"
	"github.com/cpmech/tetsim/internal/mesh"
	"github.com/cpmech/tetsim/internal/sceneio"
	"github.com/cpmech/tetsim/internal/shape"
)

func main() {
	meshBase := flag.String("mesh", "", "TetGen basename (reads <mesh>.1.node/.face/.ele/.edge)")
	outDir := flag.String("out", "frames", "directory to write OBJ frames into")
	steps := flag.Int("steps", 800, "number of backward-Euler steps to run (§8 S2: 800)")
	dt := flag.Float64("dt", 1.0/60.0, "timestep in seconds (§8 S2: 1/60)")
	everyN := flag.Int("every", 20, "write an OBJ frame every N steps")
	youngsE := flag.Float64("E", 6, "Young's modulus of the SNH material (§8 S2: 6)")
	poissonNu := flag.Float64("nu", 0.45, "Poisson ratio of the SNH material (§8 S2: 0.45)")
	flag.Parse()

	if *meshBase == "" {
		chk.Panic("tetsim-bunny: -mesh is required, e.g. -mesh data/bunny (reads data/bunny.1.node etc.)")
	}

	scene := sceneio.LoadTetGen(*meshBase)
	rotateX90(scene.Vertices)
	translate(scene.Vertices, linalg.Vec3{0.5, 0.5, 1})

	m := mesh.New(scene.Vertices, scene.Tets)

	mu, lambda := lame(*youngsE, *poissonNu)
	mdl, err := material.New("snh", fun.Prms{
		&fun.Prm{N: "mu", V: mu},
		&fun.Prm{N: "lambda", V: lambda},
	})
	if err != nil {
		chk.Panic("tetsim-bunny: %v", err)
	}

	o := integrator.New(m, mdl)
	o.SetTimestep(*dt)
	o.AddGravity(linalg.Vec3{0, -1, 0})

	floor := shape.NewCube(linalg.Vec3{0, -10, 0}, 10)
	o.AddKinematicCollisionObject(floor)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		chk.Panic("tetsim-bunny: cannot create output directory %q: %v", *outDir, err)
	}
	log := diag.NewLog(os.Stdout, true)

	for step := 0; step < *steps; step++ {
		ok, err := o.Solve()
		if err != nil {
			log.Error("step %d: %v\n", step, err)
			break
		}
		if !ok {
			log.Warn("step %d did not converge\n", step)
		}

		onFrame := *everyN > 0 && step%*everyN == 0
		if onFrame {
			iters, residual := o.LastCGStats()
			log.Info("step %d: cg_iters=%d residual=%v\n", step, iters, residual)
		}

		inverted := 0
		for k := 0; k < m.NumTets(); k++ {
			if linalg.Det3(m.Tet(k).F) <= 0 {
				inverted++
			}
		}
		if inverted > 0 {
			log.Warn("step %d: %d inverted tets\n", step, inverted)
		}

		if onFrame {
			writeFrame(m, *outDir, step)
		}
	}
	writeFrame(m, *outDir, *steps)
}

// rotateX90 rotates points 90 degrees about the x-axis in place
// (§8 S2 "rotate 90deg about the x-axis"): (x,y,z) -> (x,-z,y).
func rotateX90(verts []linalg.Vec3) {
	for i, v := range verts {
		verts[i] = linalg.Vec3{v[0], -v[2], v[1]}
	}
}

func translate(verts []linalg.Vec3, d linalg.Vec3) {
	for i, v := range verts {
		verts[i] = linalg.AddVec3(v, d)
	}
}

// lame converts engineering constants to the Lame parameters every
// material in this package is parameterized by.
func lame(E, nu float64) (mu, lambda float64) {
	mu = E / (2 * (1 + nu))
	lambda = E * nu / ((1 + nu) * (1 - 2*nu))
	return mu, lambda
}

func writeFrame(m *mesh.Mesh, outDir string, step int) {
	verts := make([]linalg.Vec3, m.NumVertices())
	for v := range verts {
		verts[v] = m.Position(v)
	}
	tris := m.SurfaceTriangles()
	idx := make([][3]int, len(tris))
	for i, tri := range tris {
		idx[i] = tri.V
	}
	path := filepath.Join(outDir, io.Sf("frame_%04d.obj", step))
	sceneio.WriteOBJ(path, verts, idx)
}
