package mesh

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSphereCounts(t *testing.T) {
	tests := []struct {
		lat, long int
	}{
		{1, 1},
		{2, 3},
		{40, 40},
		{7, 13},
	}

	for _, tt := range tests {
		m, err := Sphere(1, tt.lat, tt.long)
		require.NoError(t, err)

		assert.Equal(t, (tt.lat+1)*(tt.long+1), m.VertexCount())
		assert.Len(t, m.Indices, 6*tt.lat*tt.long)
		assert.Len(t, m.Normals, len(m.Positions))
		assert.Len(t, m.TexCoords, 2*m.VertexCount())
		assert.NoError(t, m.Validate())
	}
}

func TestSphereOnSurface(t *testing.T) {
	const radius = 0.6
	m, err := Sphere(radius, 40, 40)
	require.NoError(t, err)

	for i := 0; i < m.VertexCount(); i++ {
		x, y, z := m.Positions[i*3], m.Positions[i*3+1], m.Positions[i*3+2]
		assert.InDelta(t, radius, math32.Sqrt(x*x+y*y+z*z), 1e-5)

		nx, ny, nz := m.Normals[i*3], m.Normals[i*3+1], m.Normals[i*3+2]
		assert.InDelta(t, 1, math32.Sqrt(nx*nx+ny*ny+nz*nz), 1e-5)
	}
}

func TestSphereTexCoordsMirrored(t *testing.T) {
	m, err := Sphere(1, 4, 8)
	require.NoError(t, err)

	assert.Equal(t, float32(1), m.TexCoords[0])
	assert.Equal(t, float32(1), m.TexCoords[1])

	last := len(m.TexCoords) - 2
	assert.Equal(t, float32(0), m.TexCoords[last])
	assert.Equal(t, float32(0), m.TexCoords[last+1])
}

func TestSphereIndexLayout(t *testing.T) {
	m, err := Sphere(1, 2, 3)
	require.NoError(t, err)

	// First quad: first=0, second=4.
	assert.Equal(t, []uint16{0, 4, 1, 4, 5, 1}, m.Indices[:6])
	// First quad of the second band: first=4, second=8.
	assert.Equal(t, []uint16{4, 8, 5, 8, 9, 5}, m.Indices[18:24])
}

func TestSphereInvalid(t *testing.T) {
	tests := []struct {
		name      string
		radius    float32
		lat, long int
	}{
		{"zero radius", 0, 10, 10},
		{"negative radius", -1, 10, 10},
		{"zero lat", 1, 0, 10},
		{"negative long", 1, 10, -2},
		{"too many vertices", 1, 300, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Sphere(tt.radius, tt.lat, tt.long)
			assert.True(t, errors.Is(err, ErrInvalidParameter))
		})
	}
}

func TestCircle(t *testing.T) {
	m, err := Circle(2.4, DefaultRingSegments)
	require.NoError(t, err)
	assert.Equal(t, DefaultRingSegments, m.VertexCount())

	// First point on +X, quarter turn on +Z.
	assert.InDelta(t, 2.4, m.Positions[0], 1e-6)
	assert.InDelta(t, 2.4, m.Positions[25*3+2], 1e-5)

	for i := 0; i < m.VertexCount(); i++ {
		x, y, z := m.Positions[i*3], m.Positions[i*3+1], m.Positions[i*3+2]
		assert.Zero(t, y)
		assert.InDelta(t, 2.4, math32.Hypot(x, z), 1e-5)
	}

	_, err = Circle(1, 2)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	_, err = Circle(-1, 10)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
}

func TestUnitWireCube(t *testing.T) {
	m := UnitWireCube()
	assert.Equal(t, WireBoxVertexCount, m.VertexCount())
	for _, v := range m.Positions {
		assert.True(t, v == 1 || v == -1)
	}
}

func TestQuad(t *testing.T) {
	m := Quad()
	assert.Equal(t, 4, m.VertexCount())
	require.NoError(t, m.Validate())
	// Top-left corner samples the top-left of the image.
	assert.Equal(t, []float32{-1, 1, 0}, m.Positions[:3])
	assert.Equal(t, []float32{0, 0}, m.TexCoords[:2])
}

func TestValidate(t *testing.T) {
	m := &Mesh{
		Positions: []float32{0, 0, 0, 1, 0, 0},
		Indices:   []uint16{0, 1, 2},
	}
	assert.True(t, errors.Is(m.Validate(), ErrInvalidParameter))

	m.Indices = []uint16{0, 1}
	m.TexCoords = []float32{0, 0}
	assert.True(t, errors.Is(m.Validate(), ErrInvalidParameter))
}
