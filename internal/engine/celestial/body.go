// Package celestial holds the animation state and transform hierarchy of
// the star system. It has no graphics dependencies.
package celestial

import (
	"github.com/Faultbox/orrery/pkg/math"
)

// Kind selects how a body's world transform is composed.
type Kind uint8

const (
	Star Kind = iota
	Planet
	Moon
)

func (k Kind) String() string {
	switch k {
	case Star:
		return "star"
	case Planet:
		return "planet"
	case Moon:
		return "moon"
	default:
		return "unknown"
	}
}

// AnimationState holds a body's angles in degrees, kept in [0, 360).
type AnimationState struct {
	Rotation float32
	Orbit    float32
}

// Body is one star, planet or moon. Speeds are in degrees per Advance.
type Body struct {
	Name        string
	Kind        Kind
	Radius      float32
	OrbitRadius float32
	OrbitSpeed  float32
	SpinSpeed   float32

	// Parent is the index of the planet a moon orbits. Unused otherwise.
	Parent int

	State AnimationState
}

// NewStar creates a star spinning in place at the origin.
func NewStar(name string, radius, spinSpeed float32) Body {
	return Body{Name: name, Kind: Star, Radius: radius, SpinSpeed: spinSpeed}
}

// NewPlanet creates a planet orbiting the origin.
func NewPlanet(name string, radius, orbitRadius, orbitSpeed, spinSpeed float32) Body {
	return Body{
		Name:        name,
		Kind:        Planet,
		Radius:      radius,
		OrbitRadius: orbitRadius,
		OrbitSpeed:  orbitSpeed,
		SpinSpeed:   spinSpeed,
	}
}

// NewMoon creates a moon orbiting the planet at index parent.
func NewMoon(name string, radius float32, parent int, orbitRadius, orbitSpeed, spinSpeed float32) Body {
	return Body{
		Name:        name,
		Kind:        Moon,
		Radius:      radius,
		OrbitRadius: orbitRadius,
		OrbitSpeed:  orbitSpeed,
		SpinSpeed:   spinSpeed,
		Parent:      parent,
	}
}

// Advance steps both angles by one frame.
func (b *Body) Advance() {
	b.State.Rotation = math.WrapDegrees(b.State.Rotation + b.SpinSpeed)
	b.State.Orbit = math.WrapDegrees(b.State.Orbit + b.OrbitSpeed)
}

// orbitTransform is rotateY(orbit) × translate(orbitRadius, 0, 0).
func (b *Body) orbitTransform() math.Mat4 {
	return math.RotateYDeg(b.State.Orbit).Mul(math.Translate(b.OrbitRadius, 0, 0))
}

func (b *Body) spinTransform() math.Mat4 {
	return math.RotateYDeg(b.State.Rotation)
}

// OrbitPosition is the centre of the body relative to what it orbits:
// (r·sin(orbit+90°), 0, r·cos(orbit+90°)).
func (b *Body) OrbitPosition() math.Vec3 {
	sin, cos := sincosDeg(b.State.Orbit + 90)
	return math.Vec3{X: b.OrbitRadius * sin, Y: 0, Z: b.OrbitRadius * cos}
}
