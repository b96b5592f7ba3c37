// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sceneio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpmech/tetsim/internal/linalg"
)

func writeFixture(t *testing.T, dir string) string {
	base := filepath.Join(dir, "cube")
	files := map[string]string{
		".1.node": "4 3 0 0\n1 0 0 0\n2 1 0 0\n3 0 1 0\n4 0 0 1\n",
		".1.face": "4 1\n1 1 2 3 0\n2 1 2 4 0\n3 1 3 4 0\n4 2 3 4 0\n",
		".1.ele":  "1 4 0\n1 1 2 3 4\n",
		".1.edge": "1 1\n1 1 2 0\n",
	}
	for suffix, content := range files {
		if err := os.WriteFile(base+suffix, []byte(content), 0o644); err != nil {
			t.Fatalf("write fixture %s: %v", suffix, err)
		}
	}
	return base
}

func Test_LoadTetGen_reads_single_tet(t *testing.T) {
	base := writeFixture(t, t.TempDir())
	s := LoadTetGen(base)

	if len(s.Vertices) != 4 {
		t.Fatalf("got %d vertices, want 4", len(s.Vertices))
	}
	want := linalg.Vec3{0, 0, 1}
	if s.Vertices[3] != want {
		t.Fatalf("vertex 3 = %v, want %v", s.Vertices[3], want)
	}
	if len(s.Tets) != 1 || s.Tets[0] != [4]int{0, 1, 2, 3} {
		t.Fatalf("tets = %v, want [[0 1 2 3]]", s.Tets)
	}
	if len(s.Surface) != 4 {
		t.Fatalf("got %d surface triangles, want 4", len(s.Surface))
	}
	if len(s.Edges) != 1 || s.Edges[0] != [2]int{0, 1} {
		t.Fatalf("edges = %v, want [[0 1]]", s.Edges)
	}
}

func Test_Normalize_centers_in_unit_cube(t *testing.T) {
	verts := []linalg.Vec3{{0, 0, 0}, {2, 2, 2}}
	Normalize(verts)
	for _, v := range verts {
		for c := 0; c < 3; c++ {
			if v[c] < -1e-9 || v[c] > 1+1e-9 {
				t.Fatalf("normalized vertex %v escapes [0,1] on axis %d", v, c)
			}
		}
	}
	mid := linalg.ScaleVec3(0.5, linalg.AddVec3(verts[0], verts[1]))
	want := linalg.Vec3{0.5, 0.5, 0.5}
	if linalg.NormVec3(linalg.SubVec3(mid, want)) > 1e-9 {
		t.Fatalf("midpoint %v, want centered at %v", mid, want)
	}
}

func Test_WriteOBJ_round_trips_counts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.obj")
	verts := []linalg.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	tris := [][3]int{{0, 1, 2}}
	WriteOBJ(path, verts, tris)

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back obj: %v", err)
	}
	content := string(b)
	if !strings.Contains(content, "f 1 2 3") {
		t.Fatalf("obj content missing 1-based face line:\n%s", content)
	}
	if !strings.Contains(content, "v 0 0 0") {
		t.Fatalf("obj content missing vertex line:\n%s", content)
	}
}

func Test_LoadTetGen_panics_on_malformed_file(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "bad")
	for suffix, content := range map[string]string{
		".1.node": "not-a-number\n",
		".1.face": "0\n",
		".1.ele":  "0\n",
		".1.edge": "0\n",
	} {
		if err := os.WriteFile(base+suffix, []byte(content), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected a panic parsing a malformed node count")
		}
	}()
	LoadTetGen(base)
}
