package lighting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamped(t *testing.T) {
	l := PointLight{
		Ambient:   [4]float32{-0.5, 0.2, 1.5, 1},
		Diffuse:   [4]float32{2, 2, 2, 2},
		Shininess: 0,
	}
	c := l.Clamped()

	assert.Equal(t, [4]float32{0, 0.2, 1, 1}, c.Ambient)
	assert.Equal(t, [4]float32{1, 1, 1, 1}, c.Diffuse)
	assert.Equal(t, float32(1), c.Shininess)
	// The receiver is untouched.
	assert.Equal(t, float32(2), l.Diffuse[0])
}

func TestDefaultAtOrigin(t *testing.T) {
	l := Default()
	assert.Zero(t, l.Position)
	assert.Equal(t, l, l.Clamped())
}
