// Package gfxtest provides a recording gfx.Device for tests.
package gfxtest

import (
	"fmt"
	"image"
	"regexp"
	"strings"

	"github.com/Faultbox/orrery/internal/engine/gfx"
	"github.com/Faultbox/orrery/pkg/math"
)

// declPattern finds `in`/`uniform` declarations so the recorder can hand out
// locations the way a driver would for active names.
var declPattern = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?(in|uniform)\s+\w+\s+(\w+)\s*;`)

// Draw is a snapshot of the state a draw call was issued with.
type Draw struct {
	Program   gfx.Program
	Mode      gfx.Primitive
	Count     int
	Indexed   bool
	DepthTest bool
	Blend     bool
	Texture   gfx.Texture
	// Attributes lists the enabled attribute names.
	Attributes []string
	// Matrices and Vectors hold the uniform values current for Program.
	Matrices map[string]math.Mat4
	Vectors  map[string][4]float32
}

type program struct {
	attribs  map[string]int32
	uniforms map[string]int32
	names    map[int32]string
	matrices map[string]math.Mat4
	vectors  map[string][4]float32
	deleted  bool
}

// Recorder implements gfx.Device in memory.
type Recorder struct {
	// FailCompile makes CompileProgram fail for any source containing it.
	FailCompile string
	// FailTexture makes NewTexture fail.
	FailTexture bool

	Draws        []Draw
	Ops          []string
	ViewportSize [2]int

	DepthTest bool
	Blend     bool

	programs map[gfx.Program]*program
	current  gfx.Program
	enabled  map[int32]bool
	bound    gfx.Texture
	next     uint32

	buffers  map[gfx.Buffer]bool
	textures map[gfx.Texture]bool

	// DoubleFrees records handles deleted more than once.
	DoubleFrees []string
}

// New returns a Recorder with the depth test enabled, like a fresh GL device.
func New() *Recorder {
	return &Recorder{
		DepthTest: true,
		programs:  make(map[gfx.Program]*program),
		enabled:   make(map[int32]bool),
		buffers:   make(map[gfx.Buffer]bool),
		textures:  make(map[gfx.Texture]bool),
	}
}

func (r *Recorder) handle() uint32 {
	r.next++
	return r.next
}

func (r *Recorder) op(format string, args ...any) {
	r.Ops = append(r.Ops, fmt.Sprintf(format, args...))
}

func (r *Recorder) CompileProgram(vertexSrc, fragmentSrc string) (gfx.Program, error) {
	if r.FailCompile != "" {
		if strings.Contains(vertexSrc, r.FailCompile) {
			return 0, &gfx.ShaderError{Stage: "vertex", Log: "0:1(1): error: syntax error"}
		}
		if strings.Contains(fragmentSrc, r.FailCompile) {
			return 0, &gfx.ShaderError{Stage: "fragment", Log: "0:1(1): error: syntax error"}
		}
	}

	p := &program{
		attribs:  make(map[string]int32),
		uniforms: make(map[string]int32),
		names:    make(map[int32]string),
		matrices: make(map[string]math.Mat4),
		vectors:  make(map[string][4]float32),
	}
	var loc int32
	for _, m := range declPattern.FindAllStringSubmatch(vertexSrc, -1) {
		if m[1] == "in" {
			p.attribs[m[2]] = int32(len(p.attribs))
			continue
		}
		p.uniforms[m[2]] = loc
		p.names[loc] = m[2]
		loc++
	}
	for _, m := range declPattern.FindAllStringSubmatch(fragmentSrc, -1) {
		if m[1] != "uniform" {
			continue
		}
		if _, ok := p.uniforms[m[2]]; ok {
			continue
		}
		p.uniforms[m[2]] = loc
		p.names[loc] = m[2]
		loc++
	}

	id := gfx.Program(r.handle())
	r.programs[id] = p
	r.op("compile %d", id)
	return id, nil
}

func (r *Recorder) DeleteProgram(id gfx.Program) {
	p, ok := r.programs[id]
	if !ok || p.deleted {
		r.DoubleFrees = append(r.DoubleFrees, fmt.Sprintf("program %d", id))
		return
	}
	p.deleted = true
	r.op("delete program %d", id)
}

func (r *Recorder) UseProgram(id gfx.Program) {
	r.current = id
	r.op("use %d", id)
}

func (r *Recorder) AttribLocation(id gfx.Program, name string) int32 {
	if p, ok := r.programs[id]; ok {
		if loc, ok := p.attribs[name]; ok {
			return loc
		}
	}
	return -1
}

func (r *Recorder) UniformLocation(id gfx.Program, name string) int32 {
	if p, ok := r.programs[id]; ok {
		if loc, ok := p.uniforms[name]; ok {
			return loc
		}
	}
	return -1
}

func (r *Recorder) NewVertexBuffer(data []float32) gfx.Buffer {
	b := gfx.Buffer(r.handle())
	r.buffers[b] = true
	return b
}

func (r *Recorder) NewIndexBuffer(data []uint16) gfx.Buffer {
	b := gfx.Buffer(r.handle())
	r.buffers[b] = true
	return b
}

func (r *Recorder) DeleteBuffer(b gfx.Buffer) {
	if !r.buffers[b] {
		r.DoubleFrees = append(r.DoubleFrees, fmt.Sprintf("buffer %d", b))
		return
	}
	r.buffers[b] = false
}

func (r *Recorder) EnableAttribute(location int32, buf gfx.Buffer, components int) {
	r.enabled[location] = true
}

func (r *Recorder) DisableAttribute(location int32) {
	delete(r.enabled, location)
}

func (r *Recorder) uniform(location int32) (*program, string, bool) {
	p, ok := r.programs[r.current]
	if !ok || location < 0 {
		return nil, "", false
	}
	name, ok := p.names[location]
	return p, name, ok
}

func (r *Recorder) UniformMatrix4(location int32, m math.Mat4) {
	if p, name, ok := r.uniform(location); ok {
		p.matrices[name] = m
	}
}

func (r *Recorder) Uniform1i(location int32, v int32) {
	if p, name, ok := r.uniform(location); ok {
		p.vectors[name] = [4]float32{float32(v)}
	}
}

func (r *Recorder) Uniform1f(location int32, v float32) {
	if p, name, ok := r.uniform(location); ok {
		p.vectors[name] = [4]float32{v}
	}
}

func (r *Recorder) Uniform3f(location int32, v [3]float32) {
	if p, name, ok := r.uniform(location); ok {
		p.vectors[name] = [4]float32{v[0], v[1], v[2]}
	}
}

func (r *Recorder) Uniform4f(location int32, v [4]float32) {
	if p, name, ok := r.uniform(location); ok {
		p.vectors[name] = v
	}
}

func (r *Recorder) NewTexture(img *image.RGBA) (gfx.Texture, error) {
	if r.FailTexture {
		return 0, fmt.Errorf("texture upload failed")
	}
	t := gfx.Texture(r.handle())
	r.textures[t] = true
	return t, nil
}

func (r *Recorder) DeleteTexture(t gfx.Texture) {
	if !r.textures[t] {
		r.DoubleFrees = append(r.DoubleFrees, fmt.Sprintf("texture %d", t))
		return
	}
	r.textures[t] = false
}

func (r *Recorder) BindTexture(unit int, t gfx.Texture) {
	r.bound = t
}

func (r *Recorder) DrawArrays(mode gfx.Primitive, first, count int) {
	r.draw(mode, count, false)
}

func (r *Recorder) DrawElements(mode gfx.Primitive, indices gfx.Buffer, count int) {
	r.draw(mode, count, true)
}

func (r *Recorder) draw(mode gfx.Primitive, count int, indexed bool) {
	d := Draw{
		Program:   r.current,
		Mode:      mode,
		Count:     count,
		Indexed:   indexed,
		DepthTest: r.DepthTest,
		Blend:     r.Blend,
		Texture:   r.bound,
		Matrices:  make(map[string]math.Mat4),
		Vectors:   make(map[string][4]float32),
	}
	if p, ok := r.programs[r.current]; ok {
		for name, loc := range p.attribs {
			if r.enabled[loc] {
				d.Attributes = append(d.Attributes, name)
			}
		}
		for k, v := range p.matrices {
			d.Matrices[k] = v
		}
		for k, v := range p.vectors {
			d.Vectors[k] = v
		}
	}
	r.Draws = append(r.Draws, d)
	r.op("draw %s %d", mode, count)
}

func (r *Recorder) SetDepthTest(enabled bool) {
	r.DepthTest = enabled
	r.op("depth %t", enabled)
}

func (r *Recorder) SetBlend(enabled bool) {
	r.Blend = enabled
	r.op("blend %t", enabled)
}

func (r *Recorder) Clear(color [4]float32) {
	r.op("clear")
}

func (r *Recorder) Viewport(width, height int) {
	r.ViewportSize = [2]int{width, height}
}

// Reset forgets recorded draws and ops but keeps resources.
func (r *Recorder) Reset() {
	r.Draws = nil
	r.Ops = nil
}

// EnabledAttributes returns how many attribute slots are still enabled.
func (r *Recorder) EnabledAttributes() int {
	return len(r.enabled)
}

// Live returns the number of programs, buffers and textures not yet deleted.
func (r *Recorder) Live() (programs, buffers, textures int) {
	for _, p := range r.programs {
		if !p.deleted {
			programs++
		}
	}
	for _, live := range r.buffers {
		if live {
			buffers++
		}
	}
	for _, live := range r.textures {
		if live {
			textures++
		}
	}
	return programs, buffers, textures
}

var _ gfx.Device = (*Recorder)(nil)
