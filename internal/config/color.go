package config

import (
	"fmt"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Color is an RGB color with alpha, written in YAML as "#rrggbb" or
// "#rrggbbaa".
type Color struct {
	colorful.Color
	A float64
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (Color, error) {
	alpha := 1.0
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("color %q: bad alpha: %w", s, err)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return Color{Color: c, A: alpha}, nil
}

// MustColor is ParseColor with an explicit alpha for package defaults.
func MustColor(hex string, alpha float64) Color {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	c.A = alpha
	return c
}

// Vec4 returns the color as float32 RGBA for shader uniforms.
func (c Color) Vec4() [4]float32 {
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}

// String formats the color the way it is read.
func (c Color) String() string {
	if c.A >= 1 {
		return c.Hex()
	}
	return fmt.Sprintf("%s%02x", c.Hex(), uint8(c.A*255+0.5))
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*c = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Color) MarshalYAML() (any, error) {
	return c.String(), nil
}
