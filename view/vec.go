// Package view holds the scene-space math around the text: the perspective
// camera that eases after the cursor and the cursor's motion trail.
//
// Scene space uses em units. Line n of the text sits at y = -(n-1)*height,
// so text grows downwards from the origin; the camera looks down -z.
package view

import "math"

// Vec2 is a 2D vector.
type Vec2 struct{ X, Y float32 }

// Add returns v + w.
func (v Vec2) Add(w Vec2) Vec2 { return Vec2{v.X + w.X, v.Y + w.Y} }

// Sub returns v - w.
func (v Vec2) Sub(w Vec2) Vec2 { return Vec2{v.X - w.X, v.Y - w.Y} }

// Mul returns v scaled by s.
func (v Vec2) Mul(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float32 { return float32(math.Hypot(float64(v.X), float64(v.Y))) }

// Normalize returns v scaled to unit length, or v if it is zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

// Vec3 is a 3D vector.
type Vec3 struct{ X, Y, Z float32 }

func (v Vec3) add(w Vec3) Vec3    { return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }
func (v Vec3) sub(w Vec3) Vec3    { return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }
func (v Vec3) mul(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) dot(w Vec3) float32 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }
func (v Vec3) cross(w Vec3) Vec3 {
	return Vec3{v.Y*w.Z - v.Z*w.Y, v.Z*w.X - v.X*w.Z, v.X*w.Y - v.Y*w.X}
}

func (v Vec3) normalize() Vec3 {
	l := float32(math.Sqrt(float64(v.dot(v))))
	if l == 0 {
		return v
	}
	return v.mul(1 / l)
}

// Mat4 is a 4x4 matrix in column-major order, the layout WGSL expects.
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

// Mul returns m * n, applying n first.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for col := range 4 {
		for row := range 4 {
			var s float32
			for k := range 4 {
				s += m[k*4+row] * n[col*4+k]
			}
			out[col*4+row] = s
		}
	}
	return out
}

// Transform returns m * (x, y, z, 1) as homogeneous clip coordinates.
func (m Mat4) Transform(p Vec3) [4]float32 {
	var out [4]float32
	for row := range 4 {
		out[row] = m[row]*p.X + m[4+row]*p.Y + m[8+row]*p.Z + m[12+row]
	}
	return out
}
