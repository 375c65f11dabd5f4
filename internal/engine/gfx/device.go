// Package gfx defines the narrow graphics capability set the scene needs and
// an OpenGL 4.1 core implementation of it.
//
// Everything above this package talks to a Device, never to gl directly, so
// the scene can be driven by the recording fake in gfxtest.
package gfx

import (
	"fmt"
	"image"

	"github.com/Faultbox/orrery/pkg/math"
)

// Program is a linked shader program handle.
type Program uint32

// Buffer is a vertex or index buffer handle.
type Buffer uint32

// Texture is a 2D texture handle.
type Texture uint32

// Primitive is the topology used by a draw call.
type Primitive int

const (
	Triangles Primitive = iota
	TriangleFan
	Lines
	LineLoop
)

func (p Primitive) String() string {
	switch p {
	case Triangles:
		return "triangles"
	case TriangleFan:
		return "triangle-fan"
	case Lines:
		return "lines"
	case LineLoop:
		return "line-loop"
	default:
		return fmt.Sprintf("primitive(%d)", int(p))
	}
}

// Device is the graphics API boundary. Implementations are not safe for
// concurrent use; all calls happen on the render thread.
type Device interface {
	// CompileProgram compiles and links a vertex/fragment pair.
	// Failures are reported as *ShaderError.
	CompileProgram(vertexSrc, fragmentSrc string) (Program, error)
	DeleteProgram(p Program)
	UseProgram(p Program)
	// AttribLocation and UniformLocation return -1 for unknown or inactive names.
	AttribLocation(p Program, name string) int32
	UniformLocation(p Program, name string) int32

	NewVertexBuffer(data []float32) Buffer
	NewIndexBuffer(data []uint16) Buffer
	DeleteBuffer(b Buffer)
	// EnableAttribute binds buf to the attribute slot with the given number
	// of float components per vertex.
	EnableAttribute(location int32, buf Buffer, components int)
	DisableAttribute(location int32)

	UniformMatrix4(location int32, m math.Mat4)
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform3f(location int32, v [3]float32)
	Uniform4f(location int32, v [4]float32)

	NewTexture(img *image.RGBA) (Texture, error)
	DeleteTexture(t Texture)
	BindTexture(unit int, t Texture)

	DrawArrays(mode Primitive, first, count int)
	DrawElements(mode Primitive, indices Buffer, count int)

	SetDepthTest(enabled bool)
	SetBlend(enabled bool)
	Clear(color [4]float32)
	Viewport(width, height int)
}

// ShaderError is returned by Device.CompileProgram.
type ShaderError struct {
	Stage string // "vertex", "fragment" or "link"
	Log   string
}

func (e *ShaderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Log)
}
