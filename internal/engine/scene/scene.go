// Package scene renders the animated star system: orbit rings, textured
// bodies, the selection marker, and the background and drifting overlay.
package scene

import (
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/internal/engine/camera"
	"github.com/Faultbox/orrery/internal/engine/celestial"
	"github.com/Faultbox/orrery/internal/engine/gfx"
	"github.com/Faultbox/orrery/internal/engine/lighting"
	"github.com/Faultbox/orrery/internal/engine/shader"
	"github.com/Faultbox/orrery/internal/engine/texture"
	"github.com/Faultbox/orrery/internal/logger"
	"github.com/Faultbox/orrery/pkg/math"
)

// ErrNoSurface is returned by OnFrame before OnSurfaceReady or after Release.
var ErrNoSurface = errors.New("scene has no surface")

// Scene owns the star system, the camera and every GPU resource of the
// current surface. OnSurfaceReady, OnSurfaceResized, OnFrame and Release
// must be called from the render thread; SetSelectedIndex from anywhere.
type Scene struct {
	cfg     *config.Config
	assets  texture.Source
	shaders *shader.Library

	system *celestial.System
	camera *camera.Camera
	light  lighting.PointLight

	// Surface resources.
	dev        gfx.Device
	programs   *programSet
	bodies     *BodyRenderer
	rings      *RingRenderer
	marker     *MarkerRenderer
	overlay    *OverlayRenderer
	clearColor [4]float32

	width, height int
	viewProj      math.Mat4

	selected atomic.Int32
	reloads  <-chan string
}

// New builds the star system described by cfg. No GPU work happens until
// OnSurfaceReady.
func New(cfg *config.Config, assets texture.Source, shaders *shader.Library) (*Scene, error) {
	system, err := buildSystem(cfg.Scene)
	if err != nil {
		return nil, err
	}

	cam := camera.New()
	cam.Eye = vec3(cfg.Scene.Camera.Eye)
	cam.Target = vec3(cfg.Scene.Camera.Target)
	cam.Near = cfg.Scene.Camera.Near
	cam.Far = cfg.Scene.Camera.Far

	l := cfg.Scene.Lighting
	light := lighting.PointLight{
		Ambient:   l.Ambient.Vec4(),
		Diffuse:   l.Diffuse.Vec4(),
		Specular:  l.Specular.Vec4(),
		Shininess: l.Shininess,
	}

	s := &Scene{
		cfg:     cfg,
		assets:  assets,
		shaders: shaders,
		system:  system,
		camera:  cam,
		light:   light,
		width:   cfg.Graphics.Width,
		height:  cfg.Graphics.Height,
	}
	s.selected.Store(int32(system.StarIndex()))
	return s, nil
}

func buildSystem(cfg config.SceneConfig) (*celestial.System, error) {
	planets := make([]celestial.Body, 0, len(cfg.Planets))
	for _, p := range cfg.Planets {
		planets = append(planets, celestial.NewPlanet(p.Name, p.Radius, p.OrbitRadius, p.OrbitSpeed, p.SpinSpeed))
	}
	m := cfg.Moon
	system, err := celestial.NewSystem(
		celestial.NewStar(cfg.Star.Name, cfg.Star.Radius, cfg.Star.SpinSpeed),
		planets,
		celestial.NewMoon(m.Name, m.Radius, m.Parent, m.OrbitRadius, m.OrbitSpeed, m.SpinSpeed),
	)
	if err != nil {
		return nil, fmt.Errorf("building star system: %w", err)
	}
	return system, nil
}

// bodyConfigs lists body settings in system order: planets, moon, star.
func bodyConfigs(cfg config.SceneConfig) []config.BodyConfig {
	out := make([]config.BodyConfig, 0, len(cfg.Planets)+2)
	out = append(out, cfg.Planets...)
	return append(out, cfg.Moon.BodyConfig, cfg.Star)
}

func vec3(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// System returns the animated star system.
func (s *Scene) System() *celestial.System {
	return s.system
}

// OnSurfaceReady creates every GPU resource on dev. Resources of a previous
// surface are abandoned, not deleted: their handles died with that context.
// Animation restarts from zero.
func (s *Scene) OnSurfaceReady(dev gfx.Device) error {
	s.dropSurface()
	s.system.Reset()

	s.dev = dev
	if err := s.buildSurface(); err != nil {
		s.Release()
		return err
	}

	dev.SetDepthTest(true)
	s.OnSurfaceResized(s.width, s.height)

	logger.Info("scene ready",
		zap.Int("bodies", s.system.Len()),
		zap.Int("width", s.width),
		zap.Int("height", s.height),
		zap.Bool("lighting", s.cfg.Scene.Lighting.Enabled))
	return nil
}

func (s *Scene) buildSurface() error {
	cfg := s.cfg.Scene
	s.clearColor = s.cfg.Graphics.ClearColor.Vec4()

	s.programs = newProgramSet(s.dev, s.shaders)
	names := []string{shader.Body, shader.Flat, shader.Background, shader.Overlay}
	if cfg.Lighting.Enabled {
		names = append(names, shader.Lit)
	}
	if err := s.programs.load(names...); err != nil {
		return err
	}

	textures := texture.NewLoader(s.dev, s.assets, s.cfg.Graphics.MaxTextureSize)

	bodies, err := NewBodyRenderer(s.dev, s.programs, s.system, bodyConfigs(cfg), cfg.SphereBands, textures)
	if err != nil {
		return err
	}
	s.bodies = bodies
	s.bodies.SetLighting(cfg.Lighting.Enabled, s.light, s.camera.Eye)

	radii := make([]float32, 0, s.system.PlanetCount())
	for i := 0; i < s.system.PlanetCount(); i++ {
		radii = append(radii, s.system.Planet(i).OrbitRadius)
	}
	s.rings, err = NewRingRenderer(s.dev, s.programs, radii, cfg.Rings.Segments, cfg.Rings.Color.Vec4())
	if err != nil {
		return err
	}

	s.marker = NewMarkerRenderer(s.dev, s.programs, cfg.Marker.Scale, cfg.Marker.Color.Vec4())

	background, err := textures.LoadOr(cfg.Background.Texture, cfg.Background.Color.Color)
	if err != nil {
		return err
	}
	overlay, err := textures.LoadOr(cfg.Overlay.Texture, cfg.Overlay.Color.Color)
	if err != nil {
		s.dev.DeleteTexture(background)
		return err
	}
	s.overlay = NewOverlayRenderer(s.dev, s.programs, background, overlay, cfg.Overlay)
	return nil
}

// OnSurfaceResized updates the viewport and the view-projection matrix.
func (s *Scene) OnSurfaceResized(width, height int) {
	s.width, s.height = width, height
	s.viewProj = s.camera.ViewProjection(width, height)
	if s.dev != nil {
		s.dev.Viewport(width, height)
	}
}

// ViewProjection returns the current projection × view matrix.
func (s *Scene) ViewProjection() math.Mat4 {
	return s.viewProj
}

// SetSelectedIndex selects a body: 0..N-1 planets, N the moon, anything
// else the star. Safe to call from any goroutine.
func (s *Scene) SetSelectedIndex(i int) {
	if i < 0 || int(int32(i)) != i {
		i = s.system.StarIndex()
	}
	s.selected.Store(int32(i))
}

// SelectedIndex returns the last index passed to SetSelectedIndex.
func (s *Scene) SelectedIndex() int {
	return int(s.selected.Load())
}

// WatchShaders makes OnFrame recompile programs named on ch.
func (s *Scene) WatchShaders(ch <-chan string) {
	s.reloads = ch
}

// OnFrame advances the animation by one step and draws the frame. An error
// aborts the rest of the frame; the next frame starts clean.
func (s *Scene) OnFrame() error {
	if s.dev == nil {
		return ErrNoSurface
	}
	s.applyReloads()

	if err := s.drawFrame(); err != nil {
		// Leave the device in the state the next frame expects.
		s.dev.SetDepthTest(true)
		logger.Frame.Error("frame aborted", zap.Error(err))
		return err
	}
	return nil
}

func (s *Scene) drawFrame() error {
	// Step every body before drawing so an aborted frame cannot leave
	// them out of phase.
	s.system.Advance()

	dev := s.dev
	dev.Clear(s.clearColor)

	dev.SetBlend(false)
	dev.SetDepthTest(false)
	if err := s.overlay.RenderBackground(); err != nil {
		return err
	}
	dev.SetDepthTest(true)
	dev.SetBlend(true)

	if err := s.rings.Render(s.viewProj); err != nil {
		return err
	}

	if err := s.bodies.Render(s.system.StarIndex(), s.viewProj); err != nil {
		return err
	}
	for i := 0; i < s.system.PlanetCount(); i++ {
		if err := s.bodies.Render(i, s.viewProj); err != nil {
			return err
		}
	}
	if err := s.bodies.Render(s.system.MoonIndex(), s.viewProj); err != nil {
		return err
	}

	pos, radius := s.system.Selected(s.SelectedIndex())
	if err := s.marker.Render(s.viewProj, pos, radius); err != nil {
		return err
	}

	dev.SetBlend(true)
	return s.overlay.RenderOverlay(s.viewProj)
}

func (s *Scene) applyReloads() {
	if s.reloads == nil {
		return
	}
	for {
		select {
		case name, ok := <-s.reloads:
			if !ok {
				s.reloads = nil
				return
			}
			if err := s.programs.reload(name); err != nil {
				logger.Error("shader reload failed, keeping previous program",
					zap.String("program", name), zap.Error(err))
			}
		default:
			return
		}
	}
}

// Release deletes every GPU resource of the current surface. Calling it
// again, or before OnSurfaceReady, does nothing.
func (s *Scene) Release() {
	if s.dev == nil {
		return
	}
	if s.overlay != nil {
		s.overlay.Destroy()
	}
	if s.marker != nil {
		s.marker.Destroy()
	}
	if s.rings != nil {
		s.rings.Destroy()
	}
	if s.bodies != nil {
		s.bodies.Destroy()
	}
	if s.programs != nil {
		s.programs.release()
	}
	s.dropSurface()
}

func (s *Scene) dropSurface() {
	s.dev = nil
	s.programs = nil
	s.bodies = nil
	s.rings = nil
	s.marker = nil
	s.overlay = nil
}
