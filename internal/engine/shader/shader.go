// Package shader wraps linked GPU programs with name-based attribute and
// uniform binding, and resolves program sources.
package shader

import (
	"errors"
	"fmt"

	"github.com/Faultbox/orrery/internal/engine/gfx"
)

// ErrBindingNotFound is returned when a program has no active attribute or
// uniform with the requested name.
var ErrBindingNotFound = errors.New("binding not found")

// CompileError carries the driver log of a failed compile or link.
type CompileError struct {
	Program string
	Stage   string
	Log     string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("shader %q: %s failed: %s", e.Program, e.Stage, e.Log)
}

// Program is a compiled shader program.
type Program struct {
	dev  gfx.Device
	id   gfx.Program
	name string

	attribs  map[string]int32
	uniforms map[string]int32
	released bool
}

// Compile compiles and links vertexSrc and fragmentSrc.
// A failure is returned as *CompileError.
func Compile(dev gfx.Device, name, vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := dev.CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		ce := &CompileError{Program: name, Stage: "compile", Log: err.Error()}
		var se *gfx.ShaderError
		if errors.As(err, &se) {
			ce.Stage, ce.Log = se.Stage, se.Log
		}
		return nil, ce
	}

	return &Program{
		dev:      dev,
		id:       id,
		name:     name,
		attribs:  make(map[string]int32),
		uniforms: make(map[string]int32),
	}, nil
}

// Name returns the library name the program was compiled from.
func (p *Program) Name() string {
	return p.name
}

// ID returns the device handle.
func (p *Program) ID() gfx.Program {
	return p.id
}

// Use makes p the current program. Call it right before every draw.
func (p *Program) Use() {
	p.dev.UseProgram(p.id)
}

// Attribute returns the slot of the named vertex attribute.
func (p *Program) Attribute(name string) (int32, error) {
	if loc, ok := p.attribs[name]; ok {
		return loc, nil
	}
	loc := p.dev.AttribLocation(p.id, name)
	if loc < 0 {
		return -1, fmt.Errorf("attribute %q in %s: %w", name, p.name, ErrBindingNotFound)
	}
	p.attribs[name] = loc
	return loc, nil
}

// Uniform returns the slot of the named uniform.
func (p *Program) Uniform(name string) (int32, error) {
	if loc, ok := p.uniforms[name]; ok {
		return loc, nil
	}
	loc := p.dev.UniformLocation(p.id, name)
	if loc < 0 {
		return -1, fmt.Errorf("uniform %q in %s: %w", name, p.name, ErrBindingNotFound)
	}
	p.uniforms[name] = loc
	return loc, nil
}

// OptionalUniform is Uniform for bindings a material can live without.
// It returns -1 when absent; device uniform setters ignore -1.
func (p *Program) OptionalUniform(name string) int32 {
	loc, err := p.Uniform(name)
	if err != nil {
		return -1
	}
	return loc
}

// Release deletes the program. Calling it again is a no-op.
func (p *Program) Release() {
	if p == nil || p.released {
		return
	}
	p.released = true
	p.dev.DeleteProgram(p.id)
}
