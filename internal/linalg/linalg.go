// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package linalg implements the fixed-size 3/9/12 vector and matrix kernels
// shared by the material, collision and assembly layers: flatten/unflatten,
// rotation-variant SVD, polar decomposition, and the closed-form 3x3
// eigensystem used by the analytic material eigensystems.
package linalg

import "math"

// Vec3 is a fixed-size 3-vector; world-space point, displacement or force.
type Vec3 = [3]float64

// Mat3 is a 3x3 matrix stored row-major as [row][col].
type Mat3 = [3][3]float64

// Vec9 is a flattened 3x3 matrix in column-major order.
type Vec9 = [9]float64

// Mat9 is a 9x9 matrix acting on flattened 3x3 matrices.
type Mat9 = [9][9]float64

// Vec12 stacks four Vec3 (e.g. the four vertices of a tet or a contact stencil).
type Vec12 = [12]float64

// Mat12 is a 12x12 matrix, e.g. an elastic or contact element Hessian.
type Mat12 = [12][12]float64

// AddVec3 returns a+b.
func AddVec3(a, b Vec3) Vec3 { return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }

// SubVec3 returns a-b.
func SubVec3(a, b Vec3) Vec3 { return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

// ScaleVec3 returns s*a.
func ScaleVec3(s float64, a Vec3) Vec3 { return Vec3{s * a[0], s * a[1], s * a[2]} }

// DotVec3 returns a.b.
func DotVec3(a, b Vec3) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

// CrossVec3 returns axb.
func CrossVec3(a, b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// NormVec3 returns the Euclidean norm of a.
func NormVec3(a Vec3) float64 { return math.Sqrt(DotVec3(a, a)) }

// UnitVec3 returns a/||a||; the boolean is false (zero vector returned) if
// ||a|| is below tol, matching the "divide by zero is handled by callers"
// convention of the geometry kernels.
func UnitVec3(a Vec3, tol float64) (Vec3, bool) {
	n := NormVec3(a)
	if n < tol {
		return Vec3{}, false
	}
	return ScaleVec3(1/n, a), true
}

// Ident3 returns the 3x3 identity.
func Ident3() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// AddMat3 returns A+B.
func AddMat3(A, B Mat3) (C Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			C[i][j] = A[i][j] + B[i][j]
		}
	}
	return
}

// SubMat3 returns A-B.
func SubMat3(A, B Mat3) (C Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			C[i][j] = A[i][j] - B[i][j]
		}
	}
	return
}

// ScaleMat3 returns s*A.
func ScaleMat3(s float64, A Mat3) (C Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			C[i][j] = s * A[i][j]
		}
	}
	return
}

// MatMul3 returns A*B.
func MatMul3(A, B Mat3) (C Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += A[i][k] * B[k][j]
			}
			C[i][j] = s
		}
	}
	return
}

// MatVec3 returns A*v.
func MatVec3(A Mat3, v Vec3) (r Vec3) {
	for i := 0; i < 3; i++ {
		r[i] = A[i][0]*v[0] + A[i][1]*v[1] + A[i][2]*v[2]
	}
	return
}

// OuterVec3 returns the outer product a*bᵀ as a 3x3 matrix.
func OuterVec3(a, b Vec3) (H Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			H[i][j] = a[i] * b[j]
		}
	}
	return
}

// Transpose3 returns Aᵀ.
func Transpose3(A Mat3) (T Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			T[j][i] = A[i][j]
		}
	}
	return
}

// Trace3 returns tr(A).
func Trace3(A Mat3) float64 { return A[0][0] + A[1][1] + A[2][2] }

// Det3 returns det(A).
func Det3(A Mat3) float64 {
	return A[0][0]*(A[1][1]*A[2][2]-A[1][2]*A[2][1]) -
		A[0][1]*(A[1][0]*A[2][2]-A[1][2]*A[2][0]) +
		A[0][2]*(A[1][0]*A[2][1]-A[1][1]*A[2][0])
}

// FrobeniusNormSq3 returns sum of squares of the entries of A.
func FrobeniusNormSq3(A Mat3) float64 {
	var s float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s += A[i][j] * A[i][j]
		}
	}
	return s
}

// Inverse3 returns the inverse of A; callers guarantee det(A) != 0 (rest
// tets have strictly positive volume, an invariant asserted at mesh
// construction, so Dm is always invertible).
func Inverse3(A Mat3) Mat3 {
	d := Det3(A)
	id := 1 / d
	var inv Mat3
	inv[0][0] = (A[1][1]*A[2][2] - A[1][2]*A[2][1]) * id
	inv[0][1] = (A[0][2]*A[2][1] - A[0][1]*A[2][2]) * id
	inv[0][2] = (A[0][1]*A[1][2] - A[0][2]*A[1][1]) * id
	inv[1][0] = (A[1][2]*A[2][0] - A[1][0]*A[2][2]) * id
	inv[1][1] = (A[0][0]*A[2][2] - A[0][2]*A[2][0]) * id
	inv[1][2] = (A[0][2]*A[1][0] - A[0][0]*A[1][2]) * id
	inv[2][0] = (A[1][0]*A[2][1] - A[1][1]*A[2][0]) * id
	inv[2][1] = (A[0][1]*A[2][0] - A[0][0]*A[2][1]) * id
	inv[2][2] = (A[0][0]*A[1][1] - A[0][1]*A[1][0]) * id
	return inv
}

// Flatten3 flattens A into a 9-vector in column-major order.
func Flatten3(A Mat3) (v Vec9) {
	k := 0
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			v[k] = A[i][j]
			k++
		}
	}
	return
}

// Unflatten3 is the inverse of Flatten3.
func Unflatten3(v Vec9) (A Mat3) {
	k := 0
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			A[i][j] = v[k]
			k++
		}
	}
	return
}

// FlattenVerts12 stacks four vertex positions into a 12-vector, x,y,z per
// vertex consecutively; the ordering used throughout the contact and
// per-tet assembly kernels.
func FlattenVerts12(v0, v1, v2, v3 Vec3) (x Vec12) {
	copy(x[0:3], v0[:])
	copy(x[3:6], v1[:])
	copy(x[6:9], v2[:])
	copy(x[9:12], v3[:])
	return
}

// UnflattenVerts12 is the inverse of FlattenVerts12.
func UnflattenVerts12(x Vec12) (v0, v1, v2, v3 Vec3) {
	copy(v0[:], x[0:3])
	copy(v1[:], x[3:6])
	copy(v2[:], x[6:9])
	copy(v3[:], x[9:12])
	return
}

// MatMulMat9Vec9 returns H*v for a 9x9 matrix H and 9-vector v.
func MatMulMat9Vec9(H Mat9, v Vec9) (r Vec9) {
	for i := 0; i < 9; i++ {
		var s float64
		for j := 0; j < 9; j++ {
			s += H[i][j] * v[j]
		}
		r[i] = s
	}
	return
}

// MatMulMat12Vec12 returns K*v for a 12x12 matrix K and 12-vector v.
func MatMulMat12Vec12(K Mat12, v Vec12) (r Vec12) {
	for i := 0; i < 12; i++ {
		var s float64
		for j := 0; j < 12; j++ {
			s += K[i][j] * v[j]
		}
		r[i] = s
	}
	return
}

// OuterVec9 returns the outer product a*bᵀ as a 9x9 matrix.
func OuterVec9(a, b Vec9) (H Mat9) {
	for i := 0; i < 9; i++ {
		for j := 0; j < 9; j++ {
			H[i][j] = a[i] * b[j]
		}
	}
	return
}

// OuterVec12 returns the outer product a*bᵀ as a 12x12 matrix.
func OuterVec12(a, b Vec12) (H Mat12) {
	for i := 0; i < 12; i++ {
		for j := 0; j < 12; j++ {
			H[i][j] = a[i] * b[j]
		}
	}
	return
}

// AddScaledMat9 returns H + s*G.
func AddScaledMat9(H Mat9, s float64, G Mat9) (R Mat9) {
	for i := 0; i < 9; i++ {
		for j := 0; j < 9; j++ {
			R[i][j] = H[i][j] + s*G[i][j]
		}
	}
	return
}

// AddScaledMat12 returns K + s*G.
func AddScaledMat12(K Mat12, s float64, G Mat12) (R Mat12) {
	for i := 0; i < 12; i++ {
		for j := 0; j < 12; j++ {
			R[i][j] = K[i][j] + s*G[i][j]
		}
	}
	return
}

// ScaleMat9 returns s*H.
func ScaleMat9(s float64, H Mat9) (R Mat9) {
	for i := 0; i < 9; i++ {
		for j := 0; j < 9; j++ {
			R[i][j] = s * H[i][j]
		}
	}
	return
}

// SubMat9 returns A-B.
func SubMat9(A, B Mat9) (R Mat9) {
	for i := 0; i < 9; i++ {
		for j := 0; j < 9; j++ {
			R[i][j] = A[i][j] - B[i][j]
		}
	}
	return
}

// ScaleVec12 returns s*v.
func ScaleVec12(s float64, v Vec12) (r Vec12) {
	for i := 0; i < 12; i++ {
		r[i] = s * v[i]
	}
	return
}

// ScaleMat12 returns s*K.
func ScaleMat12(s float64, K Mat12) (R Mat12) {
	for i := 0; i < 12; i++ {
		for j := 0; j < 12; j++ {
			R[i][j] = s * K[i][j]
		}
	}
	return
}

// SymmetrizeMat9 returns (H+Hᵀ)/2.
func SymmetrizeMat9(H Mat9) (S Mat9) {
	for i := 0; i < 9; i++ {
		for j := 0; j < 9; j++ {
			S[i][j] = 0.5 * (H[i][j] + H[j][i])
		}
	}
	return
}
