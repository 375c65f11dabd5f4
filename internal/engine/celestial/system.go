package celestial

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/orrery/pkg/math"
)

// ErrInvalidBody is returned by NewSystem for inconsistent bodies.
var ErrInvalidBody = errors.New("invalid body")

// System is the body hierarchy. Bodies are laid out by selection index:
// planets at 0..N-1, the moon at N and the star at N+1.
type System struct {
	Bodies []Body
	n      int
}

// NewSystem validates and lays out the bodies.
func NewSystem(star Body, planets []Body, moon Body) (*System, error) {
	var errs []error
	if star.Kind != Star {
		errs = append(errs, fmt.Errorf("%s: kind %s, want star", star.Name, star.Kind))
	}
	if moon.Kind != Moon {
		errs = append(errs, fmt.Errorf("%s: kind %s, want moon", moon.Name, moon.Kind))
	}
	if moon.Parent < 0 || moon.Parent >= len(planets) {
		errs = append(errs, fmt.Errorf("%s: parent %d out of range [0,%d)", moon.Name, moon.Parent, len(planets)))
	}
	for _, p := range planets {
		if p.Kind != Planet {
			errs = append(errs, fmt.Errorf("%s: kind %s, want planet", p.Name, p.Kind))
		}
	}
	bodies := make([]Body, 0, len(planets)+2)
	bodies = append(bodies, planets...)
	bodies = append(bodies, moon, star)
	for _, b := range bodies {
		if b.Radius <= 0 {
			errs = append(errs, fmt.Errorf("%s: radius %g", b.Name, b.Radius))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}

	return &System{Bodies: bodies, n: len(planets)}, nil
}

// PlanetCount returns N.
func (s *System) PlanetCount() int { return s.n }

// MoonIndex returns the moon's index, N.
func (s *System) MoonIndex() int { return s.n }

// StarIndex returns the star's index, N+1.
func (s *System) StarIndex() int { return s.n + 1 }

// Len returns the number of selectable bodies, N+2.
func (s *System) Len() int { return len(s.Bodies) }

// Star returns the star.
func (s *System) Star() *Body { return &s.Bodies[s.n+1] }

// Moon returns the moon.
func (s *System) Moon() *Body { return &s.Bodies[s.n] }

// Planet returns planet i.
func (s *System) Planet(i int) *Body { return &s.Bodies[i] }

// Advance steps every body once, planets before the moon.
func (s *System) Advance() {
	for i := range s.Bodies {
		s.Bodies[i].Advance()
	}
}

// WorldTransform returns the model matrix of body i from the current
// state. It does not mutate anything.
func (s *System) WorldTransform(i int) math.Mat4 {
	b := &s.Bodies[i]
	switch b.Kind {
	case Star:
		return b.spinTransform()
	case Planet:
		return b.orbitTransform().Mul(b.spinTransform())
	case Moon:
		parent := &s.Bodies[b.Parent]
		return parent.orbitTransform().Mul(b.orbitTransform()).Mul(b.spinTransform())
	default:
		return math.Identity()
	}
}

// Position returns the world-space centre of body i.
func (s *System) Position(i int) math.Vec3 {
	b := &s.Bodies[i]
	switch b.Kind {
	case Planet:
		return b.OrbitPosition()
	case Moon:
		return s.WorldTransform(i).Origin()
	default:
		return math.Vec3{}
	}
}

// Resolve maps a selection index to a body index. Indices outside
// [0, N] select the star.
func (s *System) Resolve(selection int) int {
	if selection < 0 || selection > s.n {
		return s.StarIndex()
	}
	return selection
}

// Selected returns the world position and radius of the selected body.
func (s *System) Selected(selection int) (math.Vec3, float32) {
	i := s.Resolve(selection)
	return s.Position(i), s.Bodies[i].Radius
}

// Reset zeroes every body's animation state.
func (s *System) Reset() {
	for i := range s.Bodies {
		s.Bodies[i].State = AnimationState{}
	}
}

func sincosDeg(degrees float32) (sin, cos float32) {
	return math32.Sincos(math.Radians(degrees))
}
