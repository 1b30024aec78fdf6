package view

import "math"

// DefaultDistance is the camera's initial distance from the text plane.
const DefaultDistance = 20

// Camera is a right-handed perspective camera with an infinite far plane.
type Camera struct {
	Pos    Vec3
	Target Vec3
	Up     Vec3

	// FOV is the vertical field of view in radians.
	FOV    float32
	Aspect float32
	Near   float32
}

// NewCamera returns a camera looking at the origin from DefaultDistance.
func NewCamera() Camera {
	return Camera{
		Pos:    Vec3{0, 0, DefaultDistance},
		Up:     Vec3{0, 1, 0},
		FOV:    math.Pi / 4,
		Aspect: 1.5,
		Near:   0.1,
	}
}

// View returns the look-at matrix from Pos to Target.
func (c *Camera) View() Mat4 {
	f := c.Target.sub(c.Pos).normalize()
	s := f.cross(c.Up).normalize()
	u := s.cross(f)
	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.dot(c.Pos), -u.dot(c.Pos), f.dot(c.Pos), 1,
	}
}

// Projection returns the infinite-far perspective matrix with a [0, 1]
// depth range.
func (c *Camera) Projection() Mat4 {
	f := float32(1 / math.Tan(float64(c.FOV)/2))
	return Mat4{
		f / c.Aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, -1, -1,
		0, 0, -c.Near, 0,
	}
}

// ViewProj returns Projection * View, ready for the shader uniform.
func (c *Camera) ViewProj() [16]float32 {
	return c.Projection().Mul(c.View())
}

// SetViewport updates the aspect ratio after a resize. Empty sizes are
// ignored.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// Zoom moves the camera along z proportionally to its distance; positive
// delta moves away.
func (c *Camera) Zoom(delta float32) {
	c.Pos.Z += c.Pos.Z * delta * 0.1
}

// Follow eases the camera towards the cursor cell at (x, y) of size w x h.
// The position moves by followStrength of the remaining distance in x and
// y; the target moves by lookatStrength in all axes.
func (c *Camera) Follow(x, y, w, h, followStrength, lookatStrength float32) {
	focus := Vec3{x + w/2, y + h/4, 0}
	c.Pos.X -= (c.Pos.X - focus.X) * followStrength
	c.Pos.Y -= (c.Pos.Y - focus.Y) * followStrength
	c.Target = c.Target.add(focus.sub(c.Target).mul(lookatStrength))
}

// CursorCell returns the scene position of the cell at a 1-indexed line
// and 0-indexed character.
func CursorCell(line, char int, advance, height float32) (x, y float32) {
	return float32(char) * advance, float32(line-1) * -height
}
