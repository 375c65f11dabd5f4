// Package lighting provides the single Phong point light of the scene.
package lighting

import "github.com/Faultbox/orrery/pkg/math"

// PointLight is a Phong light: a position plus the material response
// colors shared by every lit body.
type PointLight struct {
	Position  math.Vec3
	Ambient   [4]float32
	Diffuse   [4]float32
	Specular  [4]float32
	Shininess float32
}

// Default returns a light at the origin, where the star sits.
func Default() PointLight {
	return PointLight{
		Ambient:   [4]float32{0.15, 0.15, 0.15, 1},
		Diffuse:   [4]float32{1, 1, 1, 1},
		Specular:  [4]float32{0.3, 0.3, 0.3, 1},
		Shininess: 16,
	}
}

// Clamped returns a copy with every color channel in [0, 1] and a
// shininess of at least 1.
func (l PointLight) Clamped() PointLight {
	for _, c := range []*[4]float32{&l.Ambient, &l.Diffuse, &l.Specular} {
		for i := range c {
			if c[i] > 1 {
				c[i] = 1
			}
			if c[i] < 0 {
				c[i] = 0
			}
		}
	}
	if l.Shininess < 1 {
		l.Shininess = 1
	}
	return l
}
