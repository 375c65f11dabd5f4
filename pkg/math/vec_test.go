package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	assert.Equal(t, Vec3{0, 0, 1}, x.Cross(y))
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 4, 12}.Normalize()
	assert.InDelta(t, 1, n.Length(), 1e-6)
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
}

func TestVec3Distance(t *testing.T) {
	assert.InDelta(t, 5, Vec3{1, 1, 1}.Distance(Vec3{4, 5, 1}), 1e-6)
}

func TestWrapDegrees(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, 0},
		{4, 4},
		{359.5, 359.5},
		{360, 0},
		{361, 1},
		{725, 5},
		{-90, 270},
		{-720, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, WrapDegrees(tt.in), 1e-4, "WrapDegrees(%v)", tt.in)
	}
}

func TestWrapDegreesRange(t *testing.T) {
	for _, d := range []float32{-1e-7, -1e-3, 1e6 + 0.25, 359.99999} {
		w := WrapDegrees(d)
		assert.GreaterOrEqual(t, w, float32(0))
		assert.Less(t, w, float32(360))
	}
}

func TestRadians(t *testing.T) {
	assert.InDelta(t, 3.14159265, Radians(180), 1e-6)
	assert.InDelta(t, 1.6406095, Radians(94), 1e-6)
}
