package camera

import (
	"math"

	"github.com/phanxgames/evergreen"
)

// Mat4 is a 4x4 matrix in column-major order.
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	var m Mat4
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}

// Perspective builds a right-handed projection with a vertical field of view
// in radians, mapping depth to [-1, 1].
func Perspective(fovY, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovY/2)
	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = (far + near) / (near - far)
	m[11] = -1
	m[14] = 2 * far * near / (near - far)
	return m
}

// LookAt builds a view matrix for an eye looking at center.
func LookAt(eye, center, up evergreen.Vec3) Mat4 {
	f := normalize(center.Sub(eye))
	s := normalize(cross(f, up))
	u := cross(s, f)
	var m Mat4
	m[0], m[4], m[8] = s.X, s.Y, s.Z
	m[1], m[5], m[9] = u.X, u.Y, u.Z
	m[2], m[6], m[10] = -f.X, -f.Y, -f.Z
	m[12] = -dot(s, eye)
	m[13] = -dot(u, eye)
	m[14] = dot(f, eye)
	m[15] = 1
	return m
}

// Mul returns a * b.
func (a Mat4) Mul(b Mat4) Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				r[j*4+i] += a[k*4+i] * b[j*4+k]
			}
		}
	}
	return r
}

// Apply transforms the point v (w=1) and returns clip-space x, y, z, w.
func (m Mat4) Apply(v evergreen.Vec3) (x, y, z, w float64) {
	x = m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]
	y = m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]
	z = m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]
	w = m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]
	return
}

func dot(a, b evergreen.Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func cross(a, b evergreen.Vec3) evergreen.Vec3 {
	return evergreen.Vec3{X: a.Y*b.Z - a.Z*b.Y, Y: a.Z*b.X - a.X*b.Z, Z: a.X*b.Y - a.Y*b.X}
}

func normalize(v evergreen.Vec3) evergreen.Vec3 {
	l := v.Len()
	if l < 1e-10 {
		return evergreen.Vec3{}
	}
	return v.Scale(1 / l)
}
