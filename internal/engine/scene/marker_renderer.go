package scene

import (
	"fmt"

	"github.com/Faultbox/orrery/internal/engine/gfx"
	"github.com/Faultbox/orrery/internal/engine/mesh"
	"github.com/Faultbox/orrery/internal/engine/shader"
	"github.com/Faultbox/orrery/pkg/math"
)

// MarkerRenderer draws a wireframe cube around the selected body.
type MarkerRenderer struct {
	dev      gfx.Device
	programs *programSet
	cube     *gpuMesh
	scale    float32
	color    [4]float32
}

// NewMarkerRenderer uploads the unit cube. The cube's half-extent is
// scale times the radius passed to Render.
func NewMarkerRenderer(dev gfx.Device, programs *programSet, scale float32, color [4]float32) *MarkerRenderer {
	return &MarkerRenderer{
		dev:      dev,
		programs: programs,
		cube:     uploadMesh(dev, mesh.UnitWireCube()),
		scale:    scale,
		color:    color,
	}
}

// Model returns the marker transform for a body at pos with the given radius.
func (mr *MarkerRenderer) Model(pos math.Vec3, radius float32) math.Mat4 {
	h := radius * mr.scale
	return math.Translate(pos.X, pos.Y, pos.Z).Mul(math.Scale(h, h, h))
}

// Render draws the marker. It keeps no state between calls.
func (mr *MarkerRenderer) Render(viewProj math.Mat4, pos math.Vec3, radius float32) error {
	p, err := mr.programs.get(shader.Flat)
	if err != nil {
		return err
	}
	dc := drawCall{
		program: p,
		mesh:    mr.cube,
		mode:    gfx.Lines,
		mvp:     viewProj.Mul(mr.Model(pos, radius)),
		uniforms: func(dev gfx.Device, p *shader.Program) {
			dev.Uniform4f(p.OptionalUniform("uColor"), mr.color)
		},
	}
	if err := dc.run(mr.dev); err != nil {
		return fmt.Errorf("drawing marker: %w", err)
	}
	return nil
}

// Destroy releases the cube.
func (mr *MarkerRenderer) Destroy() {
	mr.cube.release()
}
