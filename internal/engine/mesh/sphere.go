package mesh

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Sphere builds a UV sphere centred on the origin with
// (latitudeBands+1)*(longitudeBands+1) vertices and
// 2*latitudeBands*longitudeBands triangles.
//
// Texture coordinates run from (1,1) at the first vertex to (0,0) at the
// last, so equirectangular maps appear mirrored unless the art accounts for
// it. The last column duplicates the first position with u=0 to close the
// seam.
func Sphere(radius float32, latitudeBands, longitudeBands int) (*Mesh, error) {
	if radius <= 0 || latitudeBands <= 0 || longitudeBands <= 0 {
		return nil, fmt.Errorf("sphere radius=%g bands=%dx%d: %w",
			radius, latitudeBands, longitudeBands, ErrInvalidParameter)
	}
	count := (latitudeBands + 1) * (longitudeBands + 1)
	if count > MaxVertices {
		return nil, fmt.Errorf("sphere with %d vertices exceeds %d: %w", count, MaxVertices, ErrInvalidParameter)
	}

	m := &Mesh{
		Positions: make([]float32, 0, count*3),
		Normals:   make([]float32, 0, count*3),
		TexCoords: make([]float32, 0, count*2),
		Indices:   make([]uint16, 0, latitudeBands*longitudeBands*6),
	}

	for lat := 0; lat <= latitudeBands; lat++ {
		theta := float32(lat) * math32.Pi / float32(latitudeBands)
		sinTheta, cosTheta := math32.Sincos(theta)

		for long := 0; long <= longitudeBands; long++ {
			phi := float32(long) * 2 * math32.Pi / float32(longitudeBands)
			sinPhi, cosPhi := math32.Sincos(phi)

			x := cosPhi * sinTheta
			y := cosTheta
			z := sinPhi * sinTheta

			m.Normals = append(m.Normals, x, y, z)
			m.Positions = append(m.Positions, radius*x, radius*y, radius*z)
			m.TexCoords = append(m.TexCoords,
				1-float32(long)/float32(longitudeBands),
				1-float32(lat)/float32(latitudeBands))
		}
	}

	for lat := 0; lat < latitudeBands; lat++ {
		for long := 0; long < longitudeBands; long++ {
			first := uint16(lat*(longitudeBands+1) + long)
			second := first + uint16(longitudeBands) + 1

			m.Indices = append(m.Indices,
				first, second, first+1,
				second, second+1, first+1)
		}
	}

	return m, nil
}
