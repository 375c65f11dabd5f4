package scene

import (
	"fmt"

	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/internal/engine/gfx"
	"github.com/Faultbox/orrery/internal/engine/mesh"
	"github.com/Faultbox/orrery/internal/engine/shader"
	"github.com/Faultbox/orrery/pkg/math"
)

// Drift is the motion of the drifting overlay: Offset grows by Speed each
// frame and jumps back to Min once it passes Max.
type Drift struct {
	Offset float32
	Speed  float32
	Min    float32
	Max    float32
	Depth  float32
}

// Advance steps the drift by one frame.
func (d *Drift) Advance() {
	d.Offset += d.Speed
	if d.Offset > d.Max {
		d.Offset = d.Min
	}
}

// Model places the quad at (offset, 1-offset, depth).
func (d *Drift) Model() math.Mat4 {
	return math.Translate(d.Offset, 1-d.Offset, d.Depth)
}

// OverlayRenderer draws the full-screen background and the drifting
// overlay. Both share one quad.
type OverlayRenderer struct {
	dev      gfx.Device
	programs *programSet
	quad     *gpuMesh

	background gfx.Texture
	overlay    gfx.Texture

	drift       Drift
	alphaCutoff float32
}

// NewOverlayRenderer uploads the quad. It takes ownership of both textures.
func NewOverlayRenderer(dev gfx.Device, programs *programSet, background, overlay gfx.Texture, cfg config.OverlayConfig) *OverlayRenderer {
	return &OverlayRenderer{
		dev:        dev,
		programs:   programs,
		quad:       uploadMesh(dev, mesh.Quad()),
		background: background,
		overlay:    overlay,
		drift: Drift{
			Offset: cfg.Start,
			Speed:  cfg.Speed,
			Min:    cfg.Min,
			Max:    cfg.Max,
			Depth:  cfg.Depth,
		},
		alphaCutoff: cfg.AlphaCutoff,
	}
}

// Drift returns the current overlay motion state.
func (ov *OverlayRenderer) Drift() Drift {
	return ov.drift
}

// RenderBackground draws the clip-space background. The caller disables
// the depth test around it.
func (ov *OverlayRenderer) RenderBackground() error {
	p, err := ov.programs.get(shader.Background)
	if err != nil {
		return err
	}
	dc := drawCall{
		program:   p,
		mesh:      ov.quad,
		mode:      gfx.TriangleFan,
		texture:   ov.background,
		clipSpace: true,
	}
	if err := dc.run(ov.dev); err != nil {
		return fmt.Errorf("drawing background: %w", err)
	}
	return nil
}

// RenderOverlay advances the drift and draws the overlay with alpha discard.
func (ov *OverlayRenderer) RenderOverlay(viewProj math.Mat4) error {
	ov.drift.Advance()

	p, err := ov.programs.get(shader.Overlay)
	if err != nil {
		return err
	}
	dc := drawCall{
		program: p,
		mesh:    ov.quad,
		mode:    gfx.TriangleFan,
		mvp:     viewProj.Mul(ov.drift.Model()),
		texture: ov.overlay,
		uniforms: func(dev gfx.Device, p *shader.Program) {
			dev.Uniform1f(p.OptionalUniform("uAlphaCutoff"), ov.alphaCutoff)
		},
	}
	if err := dc.run(ov.dev); err != nil {
		return fmt.Errorf("drawing overlay: %w", err)
	}
	return nil
}

// Destroy releases the quad and both textures.
func (ov *OverlayRenderer) Destroy() {
	ov.quad.release()
	if ov.background != 0 {
		ov.dev.DeleteTexture(ov.background)
		ov.background = 0
	}
	if ov.overlay != 0 {
		ov.dev.DeleteTexture(ov.overlay)
		ov.overlay = 0
	}
}
