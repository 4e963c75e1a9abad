package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera keeps its projection fixed after creation apart from Aspect, which
// follows the viewport. Position and Target are driven per frame.
type Camera struct {
	FovY   float32 // degrees
	Near   float32
	Far    float32
	Aspect float32

	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
}

func NewCamera(fovY, near, far float32) *Camera {
	return &Camera{
		FovY:   fovY,
		Near:   near,
		Far:    far,
		Aspect: 1,
		Up:     mgl32.Vec3{0, 1, 0},
	}
}

func (c *Camera) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// LookAt re-aims the camera at target.
func (c *Camera) LookAt(target mgl32.Vec3) {
	c.Target = target
}

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

func (c *Camera) Projection() mgl32.Mat4 {
	aspect := c.Aspect
	if aspect == 0 {
		aspect = 1.0
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}
