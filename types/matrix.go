package types

import "github.com/chewxy/math32"

// A 4x4 matrix stored in column-major order, matching the float4[4] column
// layout the kernels expect. Element (row r, col c) lives at index c*4+r.
type Mat4 [16]float32

// Create an identity matrix.
func Ident4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Create a translation matrix.
func Translate3D(x, y, z float32) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// Create a scale matrix.
func Scale3D(x, y, z float32) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// Create a rotation matrix around the X axis.
func RotateX3D(angle float32) Mat4 {
	sin, cos := math32.Sincos(angle)
	return Mat4{
		1, 0, 0, 0,
		0, cos, sin, 0,
		0, -sin, cos, 0,
		0, 0, 0, 1,
	}
}

// Create a rotation matrix around the Y axis.
func RotateY3D(angle float32) Mat4 {
	sin, cos := math32.Sincos(angle)
	return Mat4{
		cos, 0, -sin, 0,
		0, 1, 0, 0,
		sin, 0, cos, 0,
		0, 0, 0, 1,
	}
}

// Get element at row r and column c.
func (m Mat4) At(row, col int) float32 {
	return m[col*4+row]
}

// Get column c as a Vec4.
func (m Mat4) Col(col int) Vec4 {
	return Vec4{m[col*4], m[col*4+1], m[col*4+2], m[col*4+3]}
}

// Multiply two matrices.
func (m Mat4) Mul4(m2 Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * m2[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// Multiply matrix with a 4 component vector.
func (m Mat4) Mul4x1(v Vec4) Vec4 {
	return Vec4{
		m[0]*v[0] + m[4]*v[1] + m[8]*v[2] + m[12]*v[3],
		m[1]*v[0] + m[5]*v[1] + m[9]*v[2] + m[13]*v[3],
		m[2]*v[0] + m[6]*v[1] + m[10]*v[2] + m[14]*v[3],
		m[3]*v[0] + m[7]*v[1] + m[11]*v[2] + m[15]*v[3],
	}
}

// Transform a point (w = 1).
func (m Mat4) MulPoint(v Vec3) Vec3 {
	return m.Mul4x1(v.Vec4(1)).Vec3()
}

// Transform a direction (w = 0); translation is ignored.
func (m Mat4) MulDir(v Vec3) Vec3 {
	return m.Mul4x1(v.Vec4(0)).Vec3()
}

// Get the translation component.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[12], m[13], m[14]}
}

// Invert a matrix that only contains rotation and translation. The inverse of
// such a matrix is the transposed rotation followed by the negated, rotated
// translation.
func (m Mat4) InvRigid() Mat4 {
	out := Mat4{
		m[0], m[4], m[8], 0,
		m[1], m[5], m[9], 0,
		m[2], m[6], m[10], 0,
		0, 0, 0, 1,
	}
	t := out.MulDir(m.Translation())
	out[12], out[13], out[14] = -t[0], -t[1], -t[2]
	return out
}

// Compose a transformation matrix as translation * rotation * scale.
func TRS(position Vec3, orientation Quat, scale Vec3) Mat4 {
	return Translate3D(position[0], position[1], position[2]).
		Mul4(orientation.Mat4()).
		Mul4(Scale3D(scale[0], scale[1], scale[2]))
}
