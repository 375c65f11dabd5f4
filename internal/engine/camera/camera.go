// Package camera provides the scene camera.
package camera

import (
	"github.com/Faultbox/orrery/pkg/math"
)

// Camera is a fixed look-at camera with a symmetric frustum whose
// horizontal extent follows the viewport aspect ratio.
type Camera struct {
	Eye    math.Vec3
	Target math.Vec3
	Up     math.Vec3

	// Frustum half-height at the near plane; the half-width is
	// HalfHeight × aspect.
	HalfHeight float32
	Near       float32
	Far        float32
}

// New creates a camera at (0, 3, -10) looking at the origin, with
// near 1 and far 50.
func New() *Camera {
	return &Camera{
		Eye:        math.Vec3{X: 0, Y: 3, Z: -10},
		Target:     math.Vec3{},
		Up:         math.Vec3{X: 0, Y: 1, Z: 0},
		HalfHeight: 1,
		Near:       1,
		Far:        50,
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *Camera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Eye, c.Target, c.Up)
}

// ProjectionMatrix returns the projection for a width×height viewport.
// A degenerate viewport is treated as square.
func (c *Camera) ProjectionMatrix(width, height int) math.Mat4 {
	ratio := float32(1)
	if width > 0 && height > 0 {
		ratio = float32(width) / float32(height)
	}
	w := c.HalfHeight * ratio
	return math.Frustum(-w, w, -c.HalfHeight, c.HalfHeight, c.Near, c.Far)
}

// ViewProjection returns projection × view for a width×height viewport.
func (c *Camera) ViewProjection(width, height int) math.Mat4 {
	return c.ProjectionMatrix(width, height).Mul(c.ViewMatrix())
}
