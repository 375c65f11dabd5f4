package scene

import (
	"fmt"

	"github.com/Faultbox/orrery/internal/engine/gfx"
	"github.com/Faultbox/orrery/internal/engine/mesh"
	"github.com/Faultbox/orrery/internal/engine/shader"
	"github.com/Faultbox/orrery/pkg/math"
)

// RingRenderer draws one orbit circle per planet with the flat program.
type RingRenderer struct {
	dev      gfx.Device
	programs *programSet
	rings    []*gpuMesh
	color    [4]float32
}

// NewRingRenderer builds rings of the given radii.
func NewRingRenderer(dev gfx.Device, programs *programSet, radii []float32, segments int, color [4]float32) (*RingRenderer, error) {
	rr := &RingRenderer{dev: dev, programs: programs, color: color}
	for _, r := range radii {
		m, err := mesh.Circle(r, segments)
		if err != nil {
			rr.Destroy()
			return nil, fmt.Errorf("orbit ring %g: %w", r, err)
		}
		rr.rings = append(rr.rings, uploadMesh(dev, m))
	}
	return rr, nil
}

// Render draws every ring. Rings sit at the origin, so the MVP is the
// view-projection itself.
func (rr *RingRenderer) Render(viewProj math.Mat4) error {
	p, err := rr.programs.get(shader.Flat)
	if err != nil {
		return err
	}
	for i, ring := range rr.rings {
		dc := drawCall{
			program: p,
			mesh:    ring,
			mode:    gfx.LineLoop,
			mvp:     viewProj,
			uniforms: func(dev gfx.Device, p *shader.Program) {
				dev.Uniform4f(p.OptionalUniform("uColor"), rr.color)
			},
		}
		if err := dc.run(rr.dev); err != nil {
			return fmt.Errorf("drawing ring %d: %w", i, err)
		}
	}
	return nil
}

// Destroy releases ring geometry.
func (rr *RingRenderer) Destroy() {
	for _, m := range rr.rings {
		m.release()
	}
	rr.rings = nil
}
