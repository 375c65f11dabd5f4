// Package mesh builds the procedural geometry the scene draws: UV spheres,
// orbit circles, wireframe cubes and screen quads.
package mesh

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter is returned for non-positive sizes or band counts and
// for meshes too large for 16-bit indices.
var ErrInvalidParameter = errors.New("invalid mesh parameter")

// MaxVertices is the largest vertex count addressable with uint16 indices.
const MaxVertices = math.MaxUint16 + 1

// Mesh is immutable vertex data. Positions and Normals hold xyz triples,
// TexCoords uv pairs. Normals, TexCoords and Indices may be empty.
type Mesh struct {
	Positions []float32
	Normals   []float32
	TexCoords []float32
	Indices   []uint16
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// Validate checks that the parallel arrays agree and every index is in range.
func (m *Mesh) Validate() error {
	n := m.VertexCount()
	if len(m.Positions)%3 != 0 {
		return fmt.Errorf("positions length %d not a multiple of 3: %w", len(m.Positions), ErrInvalidParameter)
	}
	if len(m.Normals) != 0 && len(m.Normals) != 3*n {
		return fmt.Errorf("%d normals for %d vertices: %w", len(m.Normals)/3, n, ErrInvalidParameter)
	}
	if len(m.TexCoords) != 0 && len(m.TexCoords) != 2*n {
		return fmt.Errorf("%d texcoords for %d vertices: %w", len(m.TexCoords)/2, n, ErrInvalidParameter)
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("index %d at %d out of range [0,%d): %w", idx, i, n, ErrInvalidParameter)
		}
	}
	return nil
}
