package config

import (
	"errors"
	"fmt"
)

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	g := c.Graphics
	check(g.Width > 0 && g.Height > 0, "graphics: size %dx%d must be positive", g.Width, g.Height)
	check(g.FPSLimit >= 0, "graphics.fps_limit: %d is negative", g.FPSLimit)
	check(g.MaxTextureSize >= 0, "graphics.max_texture_size: %d is negative", g.MaxTextureSize)

	s := c.Scene
	check(s.Camera.Near > 0, "scene.camera.near: %g must be positive", s.Camera.Near)
	check(s.Camera.Far > s.Camera.Near, "scene.camera.far: %g must exceed near %g", s.Camera.Far, s.Camera.Near)
	check(s.Camera.Eye != s.Camera.Target, "scene.camera: eye and target coincide")
	check(s.SphereBands > 0, "scene.sphere_bands: %d must be positive", s.SphereBands)
	check(s.Lighting.Shininess >= 0, "scene.lighting.shininess: %g is negative", s.Lighting.Shininess)

	check(s.Star.Radius > 0, "scene.star: radius %g must be positive", s.Star.Radius)
	check(len(s.Planets) > 0, "scene.planets: at least one planet required")
	for i, p := range s.Planets {
		check(p.Radius > 0, "scene.planets[%d] %s: radius %g must be positive", i, p.Name, p.Radius)
		check(p.OrbitRadius > 0, "scene.planets[%d] %s: orbit_radius %g must be positive", i, p.Name, p.OrbitRadius)
	}
	m := s.Moon
	check(m.Radius > 0, "scene.moon: radius %g must be positive", m.Radius)
	check(m.OrbitRadius > 0, "scene.moon: orbit_radius %g must be positive", m.OrbitRadius)
	check(m.Parent >= 0 && m.Parent < len(s.Planets), "scene.moon: parent %d out of range [0,%d)", m.Parent, len(s.Planets))

	check(s.Rings.Segments >= 3, "scene.rings.segments: %d, need at least 3", s.Rings.Segments)
	check(s.Marker.Scale > 0, "scene.marker.scale: %g must be positive", s.Marker.Scale)

	o := s.Overlay
	check(o.Min < o.Max, "scene.overlay: min %g must be below max %g", o.Min, o.Max)
	check(o.Speed >= 0, "scene.overlay.speed: %g is negative", o.Speed)
	check(o.AlphaCutoff >= 0 && o.AlphaCutoff <= 1, "scene.overlay.alpha_cutoff: %g outside [0,1]", o.AlphaCutoff)
	check(s.Tour.Interval >= 0, "scene.tour.interval: %s is negative", s.Tour.Interval)

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level: unknown level %q", c.Logging.Level))
	}

	return errors.Join(errs...)
}
