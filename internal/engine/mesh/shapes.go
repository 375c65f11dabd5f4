package mesh

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/orrery/pkg/math"
)

// DefaultRingSegments is the resolution of an orbit circle.
const DefaultRingSegments = 100

// Circle builds segments points on a circle of the given radius in the XZ
// plane, for drawing as a line loop. Point i sits at angle 2πi/segments
// from +X towards +Z.
func Circle(radius float32, segments int) (*Mesh, error) {
	if radius <= 0 || segments < 3 {
		return nil, fmt.Errorf("circle radius=%g segments=%d: %w", radius, segments, ErrInvalidParameter)
	}
	if segments > MaxVertices {
		return nil, fmt.Errorf("circle with %d segments exceeds %d: %w", segments, MaxVertices, ErrInvalidParameter)
	}

	pos := make([]float32, 0, segments*3)
	for i := 0; i < segments; i++ {
		angle := 2 * math32.Pi * float32(i) / float32(segments)
		sin, cos := math32.Sincos(angle)
		pos = append(pos, radius*cos, 0, radius*sin)
	}
	return &Mesh{Positions: pos}, nil
}

// WireBoxVertexCount is the number of line vertices in a wireframe box
// (12 edges, two endpoints each).
const WireBoxVertexCount = 24

// WireBox builds the 12 edges of an axis-aligned box as line segments.
func WireBox(min, max math.Vec3) *Mesh {
	return &Mesh{Positions: []float32{
		// Bottom face
		min.X, min.Y, min.Z, max.X, min.Y, min.Z,
		max.X, min.Y, min.Z, max.X, min.Y, max.Z,
		max.X, min.Y, max.Z, min.X, min.Y, max.Z,
		min.X, min.Y, max.Z, min.X, min.Y, min.Z,
		// Top face
		min.X, max.Y, min.Z, max.X, max.Y, min.Z,
		max.X, max.Y, min.Z, max.X, max.Y, max.Z,
		max.X, max.Y, max.Z, min.X, max.Y, max.Z,
		min.X, max.Y, max.Z, min.X, max.Y, min.Z,
		// Verticals
		min.X, min.Y, min.Z, min.X, max.Y, min.Z,
		max.X, min.Y, min.Z, max.X, max.Y, min.Z,
		max.X, min.Y, max.Z, max.X, max.Y, max.Z,
		min.X, min.Y, max.Z, min.X, max.Y, max.Z,
	}}
}

// UnitWireCube is a wireframe cube with half-extent 1 centred on the
// origin. Scale it by the wanted half-extent in the model matrix.
func UnitWireCube() *Mesh {
	return WireBox(math.Vec3{X: -1, Y: -1, Z: -1}, math.Vec3{X: 1, Y: 1, Z: 1})
}

// Quad builds a 2x2 quad in the XY plane for drawing as a triangle fan,
// with v increasing downwards so images appear upright.
func Quad() *Mesh {
	return &Mesh{
		Positions: []float32{
			-1, 1, 0,
			-1, -1, 0,
			1, -1, 0,
			1, 1, 0,
		},
		TexCoords: []float32{
			0, 0,
			0, 1,
			1, 1,
			1, 0,
		},
	}
}
