package scene

import (
	"github.com/Faultbox/orrery/internal/engine/gfx"
	"github.com/Faultbox/orrery/internal/engine/mesh"
	"github.com/Faultbox/orrery/internal/engine/shader"
	"github.com/Faultbox/orrery/pkg/math"
)

// gpuMesh is a mesh uploaded to the device. A zero buffer means the
// stream is absent.
type gpuMesh struct {
	dev gfx.Device

	positions gfx.Buffer
	texCoords gfx.Buffer
	normals   gfx.Buffer
	indices   gfx.Buffer

	count    int
	enabled  []int32
	released bool
}

func uploadMesh(dev gfx.Device, m *mesh.Mesh) *gpuMesh {
	g := &gpuMesh{
		dev:       dev,
		positions: dev.NewVertexBuffer(m.Positions),
		count:     m.VertexCount(),
	}
	if len(m.TexCoords) > 0 {
		g.texCoords = dev.NewVertexBuffer(m.TexCoords)
	}
	if len(m.Normals) > 0 {
		g.normals = dev.NewVertexBuffer(m.Normals)
	}
	if len(m.Indices) > 0 {
		g.indices = dev.NewIndexBuffer(m.Indices)
		g.count = len(m.Indices)
	}
	return g
}

// bind enables the streams p consumes. aPosition is required; texture
// coordinates and normals are bound only when both sides have them.
func (g *gpuMesh) bind(p *shader.Program) error {
	loc, err := p.Attribute("aPosition")
	if err != nil {
		return err
	}
	g.enable(loc, g.positions, 3)

	if g.texCoords != 0 {
		if loc, err := p.Attribute("aTexCoord"); err == nil {
			g.enable(loc, g.texCoords, 2)
		}
	}
	if g.normals != 0 {
		if loc, err := p.Attribute("aNormal"); err == nil {
			g.enable(loc, g.normals, 3)
		}
	}
	return nil
}

func (g *gpuMesh) enable(loc int32, buf gfx.Buffer, components int) {
	g.dev.EnableAttribute(loc, buf, components)
	g.enabled = append(g.enabled, loc)
}

func (g *gpuMesh) unbind() {
	for _, loc := range g.enabled {
		g.dev.DisableAttribute(loc)
	}
	g.enabled = g.enabled[:0]
}

func (g *gpuMesh) draw(mode gfx.Primitive) {
	if g.indices != 0 {
		g.dev.DrawElements(mode, g.indices, g.count)
		return
	}
	g.dev.DrawArrays(mode, 0, g.count)
}

func (g *gpuMesh) release() {
	if g == nil || g.released {
		return
	}
	g.released = true
	for _, b := range []gfx.Buffer{g.positions, g.texCoords, g.normals, g.indices} {
		if b != 0 {
			g.dev.DeleteBuffer(b)
		}
	}
}

// drawCall is one scoped activation: use the program, bind streams, set
// uniforms, draw, unbind.
type drawCall struct {
	program  *shader.Program
	mesh     *gpuMesh
	mode     gfx.Primitive
	mvp      math.Mat4
	texture  gfx.Texture
	uniforms func(dev gfx.Device, p *shader.Program)

	// clipSpace marks programs that take positions as-is, without uMVP.
	clipSpace bool
}

func (dc drawCall) run(dev gfx.Device) error {
	p := dc.program
	p.Use()

	mvp := int32(-1)
	if !dc.clipSpace {
		loc, err := p.Uniform("uMVP")
		if err != nil {
			return err
		}
		mvp = loc
	}
	if err := dc.mesh.bind(p); err != nil {
		dc.mesh.unbind()
		return err
	}
	defer dc.mesh.unbind()

	if mvp >= 0 {
		dev.UniformMatrix4(mvp, dc.mvp)
	}
	if dc.texture != 0 {
		dev.BindTexture(0, dc.texture)
		dev.Uniform1i(p.OptionalUniform("uTexture"), 0)
	}
	if dc.uniforms != nil {
		dc.uniforms(dev, p)
	}
	dc.mesh.draw(dc.mode)
	return nil
}
