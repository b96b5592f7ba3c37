// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

// Mat9x12 is the 9x12 change-of-basis Jacobian dF/dx mapping a flattened
// 12-vector of four stacked vertex positions to a flattened 9-vector
// deformation gradient (§3, §4.E).
type Mat9x12 = [9][12]float64

// BuildDFDX returns dF/dx for a tet given the inverse of its rest edge
// matrix Dm: with Ds = [v1-v0|v2-v0|v3-v0] and F = Ds*DmInv,
// dF_ij/d(v_p)_c = delta(i,c) * w_p[j], where w0 = -(row-sum of DmInv)
// and w_{k+1} = DmInv's k-th row (k=0,1,2), the standard tet-FEM change of
// basis (e.g. Sifakis & Barbic, "FEM Simulation of 3D Deformable Solids").
func BuildDFDX(DmInv Mat3) (dFdx Mat9x12) {
	var w [4][3]float64
	for j := 0; j < 3; j++ {
		w[0][j] = -(DmInv[0][j] + DmInv[1][j] + DmInv[2][j])
		w[1][j] = DmInv[0][j]
		w[2][j] = DmInv[1][j]
		w[3][j] = DmInv[2][j]
	}
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			m := 3*j + i
			for p := 0; p < 4; p++ {
				dFdx[m][3*p+i] = w[p][j]
			}
		}
	}
	return
}

// MulMat9x12Vec12 returns dFdx * x, mapping a stacked-vertex 12-vector to a
// flattened deformation-gradient-shaped 9-vector.
func MulMat9x12Vec12(dFdx Mat9x12, x Vec12) (r Vec9) {
	for m := 0; m < 9; m++ {
		var s float64
		for k := 0; k < 12; k++ {
			s += dFdx[m][k] * x[k]
		}
		r[m] = s
	}
	return
}

// MulTransMat9x12Vec9 returns dFdxᵀ * y, scattering a flattened 9-vector
// (e.g. stress) into the 12-vector of per-vertex force contributions.
func MulTransMat9x12Vec9(dFdx Mat9x12, y Vec9) (r Vec12) {
	for k := 0; k < 12; k++ {
		var s float64
		for m := 0; m < 9; m++ {
			s += dFdx[m][k] * y[m]
		}
		r[k] = s
	}
	return
}

// SandwichMat9x12 returns dFdxᵀ * H * dFdx, the 12x12 element stiffness
// block built from a material's 9x9 Hessian (§4.E).
func SandwichMat9x12(dFdx Mat9x12, H Mat9) (K Mat12) {
	// T = H * dFdx (9x12)
	var T [9][12]float64
	for i := 0; i < 9; i++ {
		for k := 0; k < 12; k++ {
			var s float64
			for j := 0; j < 9; j++ {
				s += H[i][j] * dFdx[j][k]
			}
			T[i][k] = s
		}
	}
	// K = dFdxT * T
	for r := 0; r < 12; r++ {
		for c := 0; c < 12; c++ {
			var s float64
			for m := 0; m < 9; m++ {
				s += dFdx[m][r] * T[m][c]
			}
			K[r][c] = s
		}
	}
	return
}
