package celestial

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/orrery/pkg/math"
)

func testSystem(t *testing.T) *System {
	t.Helper()
	planets := []Body{
		NewPlanet("mercury", 0.15, 1.0, 1.1, 0.1),
		NewPlanet("venus", 0.19, 1.7, 0.5, 0.1),
		NewPlanet("earth", 0.2, 2.4, 0.4, 3),
		NewPlanet("mars", 0.18, 3.3, 0.3, 3),
		NewPlanet("jupiter", 0.4, 4.8, 0.22, 2),
		NewPlanet("saturn", 0.3, 6, 0.15, 2),
		NewPlanet("uranus", 0.28, 7, 0.12, 2),
		NewPlanet("neptune", 0.28, 8, 0.08, 2),
	}
	sys, err := NewSystem(NewStar("sun", 0.6, 1), planets, NewMoon("moon", 0.05, 2, 0.4, 1.0, 0))
	require.NoError(t, err)
	return sys
}

func assertVec(t *testing.T, want, got math.Vec3, eps float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps, "x")
	assert.InDelta(t, want.Y, got.Y, eps, "y")
	assert.InDelta(t, want.Z, got.Z, eps, "z")
}

func TestPlanetAfterTenAdvances(t *testing.T) {
	p := NewPlanet("earth", 0.2, 2.4, 0.4, 3)
	for i := 0; i < 10; i++ {
		p.Advance()
	}

	assert.InDelta(t, 4.0, p.State.Orbit, 1e-4)
	assert.InDelta(t, 30.0, p.State.Rotation, 1e-4)

	want := math.Vec3{
		X: 2.4 * math32.Sin(math.Radians(94)),
		Z: 2.4 * math32.Cos(math.Radians(94)),
	}
	assertVec(t, want, p.OrbitPosition(), 1e-4)
}

func TestAdvanceWraps(t *testing.T) {
	p := NewPlanet("fast", 1, 1, 50, 7)
	for i := 0; i < 100; i++ {
		p.Advance()
		assert.GreaterOrEqual(t, p.State.Orbit, float32(0))
		assert.Less(t, p.State.Orbit, float32(360))
	}
	// 100·50 = 5000 = 13·360 + 320
	assert.InDelta(t, 320, p.State.Orbit, 1e-2)
	// 100·7 = 700 = 360 + 340
	assert.InDelta(t, 340, p.State.Rotation, 1e-2)
}

func TestPlanetTransformMatchesPosition(t *testing.T) {
	sys := testSystem(t)
	for step := 0; step < 50; step++ {
		sys.Advance()
		for i := 0; i < sys.PlanetCount(); i++ {
			assertVec(t, sys.Position(i), sys.WorldTransform(i).Origin(), 1e-4)
		}
	}
}

func TestWorldTransformIdempotent(t *testing.T) {
	sys := testSystem(t)
	sys.Advance()
	sys.Advance()

	for i := range sys.Bodies {
		first := sys.WorldTransform(i)
		second := sys.WorldTransform(i)
		assert.Equal(t, first, second, sys.Bodies[i].Name)
	}
}

func TestStarSpinsInPlace(t *testing.T) {
	sys := testSystem(t)
	for i := 0; i < 45; i++ {
		sys.Advance()
	}
	star := sys.StarIndex()
	assert.InDelta(t, 45, sys.Star().State.Rotation, 1e-3)
	assertVec(t, math.Vec3{}, sys.WorldTransform(star).Origin(), 1e-6)
	assert.True(t, sys.WorldTransform(star).ApproxEqual(math.RotateYDeg(45), 1e-5))
}

func TestMoonFollowsParentLive(t *testing.T) {
	sys := testSystem(t)
	moon := sys.MoonIndex()
	earth := sys.Planet(2)

	earth.State.Orbit = 30
	sys.Moon().State.Orbit = 120

	want := math.RotateYDeg(30).Mul(math.Translate(2.4, 0, 0)).
		Mul(math.RotateYDeg(120)).Mul(math.Translate(0.4, 0, 0)).Origin()
	assertVec(t, want, sys.Position(moon), 1e-4)

	// Moving the planet moves the moon without touching the moon's state.
	earth.State.Orbit = 200
	want = math.RotateYDeg(200).Mul(math.Translate(2.4, 0, 0)).
		Mul(math.RotateYDeg(120)).Mul(math.Translate(0.4, 0, 0)).Origin()
	assertVec(t, want, sys.Position(moon), 1e-4)
	assert.InDelta(t, 0.4, sys.Position(moon).Distance(sys.Position(2)), 1e-4)
}

func TestSelection(t *testing.T) {
	sys := testSystem(t)
	sys.Advance()

	pos, radius := sys.Selected(2)
	assertVec(t, sys.Position(2), pos, 1e-6)
	assert.Equal(t, float32(0.2), radius)

	pos, radius = sys.Selected(8)
	assertVec(t, sys.Position(sys.MoonIndex()), pos, 1e-6)
	assert.Equal(t, float32(0.05), radius)

	pos, radius = sys.Selected(9)
	assertVec(t, math.Vec3{}, pos, 1e-6)
	assert.Equal(t, float32(0.6), radius)

	for _, sel := range []int{-1, 10, 42} {
		assert.Equal(t, sys.StarIndex(), sys.Resolve(sel), "selection %d", sel)
	}
}

func TestNewSystemInvalid(t *testing.T) {
	planets := []Body{NewPlanet("a", 1, 1, 1, 1)}

	_, err := NewSystem(NewStar("sun", 1, 1), planets, NewMoon("moon", 0.1, 3, 1, 1, 0))
	assert.True(t, errors.Is(err, ErrInvalidBody))
	assert.Contains(t, err.Error(), "parent 3")

	_, err = NewSystem(NewStar("sun", 0, 1), planets, NewMoon("moon", -1, 0, 1, 1, 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sun: radius 0")
	assert.Contains(t, err.Error(), "moon: radius -1")

	_, err = NewSystem(NewPlanet("p", 1, 1, 1, 1), planets, NewMoon("moon", 1, 0, 1, 1, 0))
	assert.Contains(t, err.Error(), "want star")
}

func TestReset(t *testing.T) {
	sys := testSystem(t)
	sys.Advance()
	sys.Reset()
	for _, b := range sys.Bodies {
		assert.Zero(t, b.State)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "star", Star.String())
	assert.Equal(t, "planet", Planet.String())
	assert.Equal(t, "moon", Moon.String())
	assert.Equal(t, "unknown", Kind(9).String())
}
