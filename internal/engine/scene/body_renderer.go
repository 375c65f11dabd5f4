package scene

import (
	"fmt"

	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/internal/engine/celestial"
	"github.com/Faultbox/orrery/internal/engine/gfx"
	"github.com/Faultbox/orrery/internal/engine/lighting"
	"github.com/Faultbox/orrery/internal/engine/mesh"
	"github.com/Faultbox/orrery/internal/engine/shader"
	"github.com/Faultbox/orrery/internal/engine/texture"
	"github.com/Faultbox/orrery/pkg/math"
)

// BodyRenderer draws the star, planets and moon as textured spheres.
type BodyRenderer struct {
	dev      gfx.Device
	programs *programSet
	system   *celestial.System

	// Indexed like system.Bodies.
	meshes   []*gpuMesh
	textures []gfx.Texture

	lit   bool
	light lighting.PointLight
	eye   math.Vec3
}

// NewBodyRenderer uploads one sphere and one texture per body.
func NewBodyRenderer(dev gfx.Device, programs *programSet, system *celestial.System,
	bodies []config.BodyConfig, bands int, textures *texture.Loader) (*BodyRenderer, error) {

	br := &BodyRenderer{
		dev:      dev,
		programs: programs,
		system:   system,
	}

	for i, b := range system.Bodies {
		m, err := mesh.Sphere(b.Radius, bands, bands)
		if err != nil {
			br.Destroy()
			return nil, fmt.Errorf("%s sphere: %w", b.Name, err)
		}
		br.meshes = append(br.meshes, uploadMesh(dev, m))

		tex, err := textures.LoadOr(bodies[i].Texture, bodies[i].Color.Color)
		if err != nil {
			br.Destroy()
			return nil, fmt.Errorf("%s texture: %w", b.Name, err)
		}
		br.textures = append(br.textures, tex)
	}

	return br, nil
}

// SetLighting switches planets and the moon to the lit program.
func (br *BodyRenderer) SetLighting(enabled bool, light lighting.PointLight, eye math.Vec3) {
	br.lit = enabled
	br.light = light.Clamped()
	br.eye = eye
}

// Render draws body i from its current animation state.
func (br *BodyRenderer) Render(i int, viewProj math.Mat4) error {
	b := &br.system.Bodies[i]

	name := shader.Body
	if br.lit && b.Kind != celestial.Star {
		name = shader.Lit
	}
	p, err := br.programs.get(name)
	if err != nil {
		return err
	}

	model := br.system.WorldTransform(i)
	dc := drawCall{
		program: p,
		mesh:    br.meshes[i],
		mode:    gfx.Triangles,
		mvp:     viewProj.Mul(model),
		texture: br.textures[i],
	}
	if name == shader.Lit {
		dc.uniforms = func(dev gfx.Device, p *shader.Program) {
			dev.UniformMatrix4(p.OptionalUniform("uModel"), model)
			dev.Uniform3f(p.OptionalUniform("uLightPos"), br.light.Position.Array())
			dev.Uniform3f(p.OptionalUniform("uViewPos"), br.eye.Array())
			dev.Uniform4f(p.OptionalUniform("uAmbient"), br.light.Ambient)
			dev.Uniform4f(p.OptionalUniform("uDiffuse"), br.light.Diffuse)
			dev.Uniform4f(p.OptionalUniform("uSpecular"), br.light.Specular)
			dev.Uniform1f(p.OptionalUniform("uShininess"), br.light.Shininess)
		}
	}

	if err := dc.run(br.dev); err != nil {
		return fmt.Errorf("drawing %s: %w", b.Name, err)
	}
	return nil
}

// Destroy releases meshes and textures.
func (br *BodyRenderer) Destroy() {
	for _, m := range br.meshes {
		m.release()
	}
	for _, t := range br.textures {
		br.dev.DeleteTexture(t)
	}
	br.meshes = nil
	br.textures = nil
}
