package math

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const eps = 1e-5

func assertMat(t *testing.T, want mgl32.Mat4, got Mat4) {
	t.Helper()
	assert.True(t, got.ApproxEqual(Mat4(want), eps), "got %v\nwant %v", got, want)
}

func TestIdentity(t *testing.T) {
	m := Identity()
	assert.Equal(t, Mat4(mgl32.Ident4()), m)
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	assert.Equal(t, m, m.Mul(Identity()))
	assert.Equal(t, m, Identity().Mul(m))
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)
	assert.Equal(t, Vec3{5, 10, 15}, m.Origin())
	assertMat(t, mgl32.Translate3D(5, 10, 15), m)
}

func TestScale(t *testing.T) {
	assertMat(t, mgl32.Scale3D(2, 3, 4), Scale(2, 3, 4))
	assert.Equal(t, Vec3{2, 4, 6}, Scale(2, 2, 2).TransformPoint(Vec3{1, 2, 3}))
}

func TestTransformPoint(t *testing.T) {
	got := Translate(10, 20, 30).TransformPoint(Vec3{1, 2, 3})
	assert.Equal(t, Vec3{11, 22, 33}, got)
}

func TestRotateY90(t *testing.T) {
	got := RotateYDeg(90).TransformPoint(Vec3{1, 0, 0})

	// (1,0,0) ends up on -Z.
	assert.InDelta(t, 0, got.X, 1e-6)
	assert.InDelta(t, 0, got.Y, 1e-6)
	assert.InDelta(t, -1, got.Z, 1e-6)
}

func TestRotateYMatchesReference(t *testing.T) {
	for _, deg := range []float32{0, 30, 94, 180, 271.5, -45} {
		assertMat(t, mgl32.HomogRotate3DY(mgl32.DegToRad(deg)), RotateYDeg(deg))
	}
}

func TestMulMatchesReference(t *testing.T) {
	a := RotateYDeg(33).Mul(Translate(2.4, 0, 0))
	want := mgl32.HomogRotate3DY(mgl32.DegToRad(33)).Mul4(mgl32.Translate3D(2.4, 0, 0))
	assertMat(t, want, a)
}

func TestFrustum(t *testing.T) {
	ratio := float32(1280) / 720
	m := Frustum(-ratio, ratio, -1, 1, 1, 50)
	assertMat(t, mgl32.Frustum(-ratio, ratio, -1, 1, 1, 50), m)
}

func TestLookAt(t *testing.T) {
	eye := Vec3{0, 3, -10}
	m := LookAt(eye, Vec3{}, Vec3{0, 1, 0})
	want := mgl32.LookAtV(mgl32.Vec3{0, 3, -10}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	assertMat(t, want, m)

	// The eye maps to the view-space origin.
	p := m.TransformPoint(eye)
	assert.InDelta(t, 0, p.Length(), 1e-5)
}

func TestApproxEqual(t *testing.T) {
	a := Translate(1, 2, 3)
	b := a
	b[12] += 1e-7
	assert.True(t, a.ApproxEqual(b, eps))
	b[12] += 1
	assert.False(t, a.ApproxEqual(b, eps))
}
