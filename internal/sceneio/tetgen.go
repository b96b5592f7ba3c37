// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sceneio implements the scene loaders and exporters the core
// treats as external collaborators (§6): a TetGen .node/.face/.ele/.edge
// reader and an OBJ surface writer. Neither format carries named
// columns, so gosl's io.ReadTable (keyed-column tables) does not fit;
// file reads still go through gosl's io.ReadFile, matching the
// teacher's own "read the whole file, then parse" idiom in
// inp.ReadSim, with bufio.Scanner/strconv doing the line-oriented
// tokenizing no pack dependency provides for this bespoke format.
package sceneio

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/tetsim/internal/linalg"
)

// Scene is the plain construction input the mesh package consumes (§6
// "Scene construction inputs"): rest vertices, surface triangles (kept
// for export/validation; the mesh package re-derives its own surface
// from tet connectivity) and tets.
type Scene struct {
	Vertices []linalg.Vec3
	Surface  [][3]int
	Tets     [][4]int
	Edges    [][2]int
}

// LoadTetGen reads the four sibling files <base>.1.node, .1.face,
// .1.ele, .1.edge and returns the assembled Scene (§6 "TetGen on-disk
// format"). Each file begins with a count line; subsequent lines carry
// a 1-based primitive index followed by its fields.
func LoadTetGen(base string) *Scene {
	var s Scene
	s.Vertices = readNodes(base + ".1.node")
	s.Surface = readFaces(base + ".1.face")
	s.Tets = readTets(base + ".1.ele")
	s.Edges = readEdges(base + ".1.edge")
	return &s
}

func readLines(path string) []string {
	b, err := io.ReadFile(path)
	if err != nil {
		chk.Panic("sceneio: cannot read %q: %v", path, err)
	}
	var lines []string
	sc := bufio.NewScanner(strings.NewReader(string(b)))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func fields(line string) []string { return strings.Fields(line) }

func atof(s, path string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		chk.Panic("sceneio: %q: cannot parse float %q", path, s)
	}
	return v
}

func atoi(s, path string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		chk.Panic("sceneio: %q: cannot parse int %q", path, s)
	}
	return v
}

// count parses the leading count field of a TetGen header line.
func count(lines []string, path string) int {
	if len(lines) == 0 {
		chk.Panic("sceneio: %q: empty file", path)
	}
	return atoi(fields(lines[0])[0], path)
}

func readNodes(path string) []linalg.Vec3 {
	lines := readLines(path)
	n := count(lines, path)
	verts := make([]linalg.Vec3, n)
	for i := 0; i < n; i++ {
		f := fields(lines[i+1])
		if len(f) < 4 {
			chk.Panic("sceneio: %q: node line %d has %d fields, want >= 4", path, i, len(f))
		}
		verts[i] = linalg.Vec3{atof(f[1], path), atof(f[2], path), atof(f[3], path)}
	}
	return verts
}

// readFaces parses "idx v0 v1 v2 boundaryMarker" lines, converting
// TetGen's 1-based vertex indices to 0-based.
func readFaces(path string) [][3]int {
	lines := readLines(path)
	n := count(lines, path)
	faces := make([][3]int, n)
	for i := 0; i < n; i++ {
		f := fields(lines[i+1])
		if len(f) < 4 {
			chk.Panic("sceneio: %q: face line %d has %d fields, want >= 4", path, i, len(f))
		}
		faces[i] = [3]int{atoi(f[1], path) - 1, atoi(f[2], path) - 1, atoi(f[3], path) - 1}
	}
	return faces
}

// readTets parses "idx v0 v1 v2 v3" lines, 1-based to 0-based.
func readTets(path string) [][4]int {
	lines := readLines(path)
	n := count(lines, path)
	tets := make([][4]int, n)
	for i := 0; i < n; i++ {
		f := fields(lines[i+1])
		if len(f) < 5 {
			chk.Panic("sceneio: %q: ele line %d has %d fields, want >= 5", path, i, len(f))
		}
		tets[i] = [4]int{atoi(f[1], path) - 1, atoi(f[2], path) - 1, atoi(f[3], path) - 1, atoi(f[4], path) - 1}
	}
	return tets
}

// readEdges parses "idx v0 v1 boundaryMarker" lines, 1-based to 0-based.
func readEdges(path string) [][2]int {
	lines := readLines(path)
	n := count(lines, path)
	edges := make([][2]int, n)
	for i := 0; i < n; i++ {
		f := fields(lines[i+1])
		if len(f) < 3 {
			chk.Panic("sceneio: %q: edge line %d has %d fields, want >= 3", path, i, len(f))
		}
		edges[i] = [2]int{atoi(f[1], path) - 1, atoi(f[2], path) - 1}
	}
	return edges
}

// Normalize rescales vertices in place to fit the unit cube centred at
// (0.5, 0.5, 0.5) (§6 "Optional normalisation... an external helper").
func Normalize(verts []linalg.Vec3) {
	if len(verts) == 0 {
		return
	}
	lo, hi := verts[0], verts[0]
	for _, v := range verts[1:] {
		for c := 0; c < 3; c++ {
			if v[c] < lo[c] {
				lo[c] = v[c]
			}
			if v[c] > hi[c] {
				hi[c] = v[c]
			}
		}
	}
	extent := 0.0
	for c := 0; c < 3; c++ {
		if d := hi[c] - lo[c]; d > extent {
			extent = d
		}
	}
	if extent == 0 {
		return
	}
	for i, v := range verts {
		for c := 0; c < 3; c++ {
			verts[i][c] = (v[c]-lo[c])/extent + 0.5 - (hi[c]-lo[c])/extent/2
		}
	}
}
