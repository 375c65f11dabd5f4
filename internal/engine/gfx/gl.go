package gfx

import (
	"fmt"
	"image"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/logger"
	"github.com/Faultbox/orrery/pkg/math"
)

// GL implements Device on top of an OpenGL 4.1 core context.
type GL struct {
	// Core profile needs a bound VAO for any attribute array. One is
	// enough since attributes are re-bound before every draw.
	vao uint32
}

// NewGL initializes the GL function pointers and default state.
// IMPORTANT: Must be called AFTER the OpenGL context is current!
func NewGL() (*GL, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	g := &GL{}
	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	return g, nil
}

// Close releases the shared VAO.
func (g *GL) Close() {
	if g.vao != 0 {
		gl.BindVertexArray(0)
		gl.DeleteVertexArrays(1, &g.vao)
		g.vao = 0
	}
}

// CompileProgram compiles vertex and fragment shaders and links them.
func (g *GL) CompileProgram(vertexSrc, fragmentSrc string) (Program, error) {
	vert, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vert)

	frag, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(frag)

	program := gl.CreateProgram()
	gl.AttachShader(program, vert)
	gl.AttachShader(program, frag)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, &ShaderError{Stage: "link", Log: strings.TrimRight(log, "\x00")}
	}

	return Program(program), nil
}

func compileShader(source string, shaderType uint32, stage string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, &ShaderError{Stage: stage, Log: strings.TrimRight(log, "\x00")}
	}

	return shader, nil
}

func (g *GL) DeleteProgram(p Program) { gl.DeleteProgram(uint32(p)) }

func (g *GL) UseProgram(p Program) { gl.UseProgram(uint32(p)) }

func (g *GL) AttribLocation(p Program, name string) int32 {
	return gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00"))
}

func (g *GL) UniformLocation(p Program, name string) int32 {
	return gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
}

func (g *GL) NewVertexBuffer(data []float32) Buffer {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return Buffer(vbo)
}

func (g *GL) NewIndexBuffer(data []uint16) Buffer {
	var ebo uint32
	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	if len(data) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data)*2, gl.Ptr(data), gl.STATIC_DRAW)
	}
	return Buffer(ebo)
}

func (g *GL) DeleteBuffer(b Buffer) {
	id := uint32(b)
	gl.DeleteBuffers(1, &id)
}

func (g *GL) EnableAttribute(location int32, buf Buffer, components int) {
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(buf))
	gl.VertexAttribPointerWithOffset(uint32(location), int32(components), gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(uint32(location))
}

func (g *GL) DisableAttribute(location int32) {
	gl.DisableVertexAttribArray(uint32(location))
}

func (g *GL) UniformMatrix4(location int32, m math.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, m.Ptr())
}

func (g *GL) Uniform1i(location int32, v int32) { gl.Uniform1i(location, v) }

func (g *GL) Uniform1f(location int32, v float32) { gl.Uniform1f(location, v) }

func (g *GL) Uniform3f(location int32, v [3]float32) {
	gl.Uniform3f(location, v[0], v[1], v[2])
}

func (g *GL) Uniform4f(location int32, v [4]float32) {
	gl.Uniform4f(location, v[0], v[1], v[2], v[3])
}

// NewTexture uploads an RGBA image. Row 0 of the image becomes v=0.
func (g *GL) NewTexture(img *image.RGBA) (Texture, error) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w == 0 || h == 0 {
		return 0, fmt.Errorf("empty image %dx%d", w, h)
	}

	pix := img.Pix
	if img.Stride != w*4 {
		// Sub-images share a larger backing buffer; repack tightly.
		pix = make([]uint8, 0, w*h*4)
		for y := 0; y < h; y++ {
			off := y * img.Stride
			pix = append(pix, img.Pix[off:off+w*4]...)
		}
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteTextures(1, &tex)
		return 0, fmt.Errorf("glTexImage2D failed: 0x%x", code)
	}
	gl.GenerateMipmap(gl.TEXTURE_2D)
	return Texture(tex), nil
}

func (g *GL) DeleteTexture(t Texture) {
	id := uint32(t)
	gl.DeleteTextures(1, &id)
}

func (g *GL) BindTexture(unit int, t Texture) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, uint32(t))
}

func (g *GL) DrawArrays(mode Primitive, first, count int) {
	gl.DrawArrays(glMode(mode), int32(first), int32(count))
}

func (g *GL) DrawElements(mode Primitive, indices Buffer, count int) {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(indices))
	gl.DrawElements(glMode(mode), int32(count), gl.UNSIGNED_SHORT, nil)
}

func (g *GL) SetDepthTest(enabled bool) { toggle(gl.DEPTH_TEST, enabled) }

func (g *GL) SetBlend(enabled bool) { toggle(gl.BLEND, enabled) }

func (g *GL) Clear(color [4]float32) {
	gl.ClearColor(color[0], color[1], color[2], color[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (g *GL) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func toggle(capability uint32, enabled bool) {
	if enabled {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}

func glMode(p Primitive) uint32 {
	switch p {
	case TriangleFan:
		return gl.TRIANGLE_FAN
	case Lines:
		return gl.LINES
	case LineLoop:
		return gl.LINE_LOOP
	default:
		return gl.TRIANGLES
	}
}

var _ Device = (*GL)(nil)
