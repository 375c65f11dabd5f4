package math

import "github.com/chewxy/math32"

// Radians converts degrees to radians.
func Radians(degrees float32) float32 {
	return degrees * math32.Pi / 180
}

// WrapDegrees maps an angle into [0, 360).
func WrapDegrees(degrees float32) float32 {
	d := math32.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	// Mod of a tiny negative value can round up to exactly 360.
	if d >= 360 {
		d -= 360
	}
	return d
}
