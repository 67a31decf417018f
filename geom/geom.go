// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package geom provides the small amount of 3D linear algebra the
// fixed-function pipeline needs: a point type and a 4x4 matrix.
//
// Matrices are stored column-major, the same element order glLoadMatrixf
// and glMultMatrixf expect, so a [16]float32 from client code can be used
// directly:
//
//	| m[0]  m[4]  m[8]   m[12] |
//	| m[1]  m[5]  m[9]   m[13] |
//	| m[2]  m[6]  m[10]  m[14] |
//	| m[3]  m[7]  m[11]  m[15] |
package geom

import "math"

// Vec3 is a point or direction in 3D space.
type Vec3 struct {
	X, Y, Z float32
}

// V3 is shorthand for Vec3{x, y, z}.
func V3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Mat4 is a 4x4 matrix in column-major order.
type Mat4 [16]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// At returns the element at the given row and column.
func (m Mat4) At(row, col int) float32 {
	return m[col*4+row]
}

// Mul returns m * n. Transforming a point by the result is the same as
// transforming it by n first and then by m.
func (m Mat4) Mul(n Mat4) Mat4 {
	var r Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * n[col*4+k]
			}
			r[col*4+row] = sum
		}
	}
	return r
}

// TransformPoint applies m to p treating p as (x, y, z, 1).
// The bottom row is ignored: there is no perspective divide.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		X: m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12],
		Y: m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13],
		Z: m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14],
	}
}

// IsIdentity reports whether m is exactly the identity matrix.
func (m Mat4) IsIdentity() bool {
	return m == Identity()
}

// Translation returns a matrix translating by (x, y, z), as glTranslatef.
func Translation(x, y, z float32) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = x, y, z
	return m
}

// Scaling returns a matrix scaling by (x, y, z), as glScalef.
func Scaling(x, y, z float32) Mat4 {
	m := Identity()
	m[0], m[5], m[10] = x, y, z
	return m
}

// Rotation returns a matrix rotating by angle degrees counter-clockwise
// around the axis (x, y, z), as glRotatef. The axis is normalized; a
// zero axis yields the identity.
func Rotation(angle, x, y, z float32) Mat4 {
	l := float32(math.Sqrt(float64(x*x + y*y + z*z)))
	if l == 0 {
		return Identity()
	}
	x, y, z = x/l, y/l, z/l

	rad := float64(angle) * math.Pi / 180
	c := float32(math.Cos(rad))
	s := float32(math.Sin(rad))
	t := 1 - c

	return Mat4{
		x*x*t + c, y*x*t + z*s, x*z*t - y*s, 0,
		x*y*t - z*s, y*y*t + c, y*z*t + x*s, 0,
		x*z*t + y*s, y*z*t - x*s, z*z*t + c, 0,
		0, 0, 0, 1,
	}
}

// Ortho returns a parallel projection matrix, as glOrtho.
// Degenerate ranges (left == right, bottom == top, near == far) yield the
// identity, mirroring the GL_INVALID_VALUE case where nothing changes.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	if left == right || bottom == top || near == far {
		return Identity()
	}
	m := Identity()
	m[0] = 2 / (right - left)
	m[5] = 2 / (top - bottom)
	m[10] = -2 / (far - near)
	m[12] = -(right + left) / (right - left)
	m[13] = -(top + bottom) / (top - bottom)
	m[14] = -(far + near) / (far - near)
	return m
}

// Frustum returns a perspective projection matrix, as glFrustum.
// Invalid arguments (non-positive near or far, or degenerate ranges)
// yield the identity.
func Frustum(left, right, bottom, top, near, far float32) Mat4 {
	if near <= 0 || far <= 0 || left == right || bottom == top || near == far {
		return Identity()
	}
	var m Mat4
	m[0] = 2 * near / (right - left)
	m[5] = 2 * near / (top - bottom)
	m[8] = (right + left) / (right - left)
	m[9] = (top + bottom) / (top - bottom)
	m[10] = -(far + near) / (far - near)
	m[11] = -1
	m[14] = -2 * far * near / (far - near)
	return m
}
