// Package scene draws the video texture with OpenGL: a full-window quad
// or a rotating cube, plus a pause overlay. Everything here runs on the
// thread owning the GL context.
package scene

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"
)

// Version returns the GLSL version line matching a core context.
func Version(major, minor int) string {
	switch {
	case major == 3 && minor == 2:
		return "#version 150 core"
	case major == 3:
		return fmt.Sprintf("#version 3%d0 core", minor)
	default:
		return fmt.Sprintf("#version %d%d0 core", major, minor)
	}
}

type Program struct {
	id uint32
}

// NewProgram compiles and links a program. version is prepended to both
// sources.
func NewProgram(version, vertex, fragment string) (*Program, error) {
	vs, err := compile(version+"\n"+vertex, gl.VERTEX_SHADER)
	if err != nil {
		return nil, errors.Wrap(err, "vertex shader")
	}
	defer gl.DeleteShader(vs)

	fs, err := compile(version+"\n"+fragment, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, errors.Wrap(err, "fragment shader")
	}
	defer gl.DeleteShader(fs)

	id := gl.CreateProgram()
	gl.AttachShader(id, vs)
	gl.AttachShader(id, fs)
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &n)
		log := strings.Repeat("\x00", int(n+1))
		gl.GetProgramInfoLog(id, n, nil, gl.Str(log))
		gl.DeleteProgram(id)
		return nil, errors.Errorf("failed to link program: %s", strings.TrimRight(log, "\x00"))
	}
	return &Program{id: id}, nil
}

func compile(source string, kind uint32) (uint32, error) {
	shader := gl.CreateShader(kind)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &n)
		log := strings.Repeat("\x00", int(n+1))
		gl.GetShaderInfoLog(shader, n, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, errors.Errorf("failed to compile: %s", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func (p *Program) Use() {
	gl.UseProgram(p.id)
}

func (p *Program) Uniform(name string) int32 {
	return gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
}

func (p *Program) Attrib(name string) uint32 {
	return uint32(gl.GetAttribLocation(p.id, gl.Str(name+"\x00")))
}

func (p *Program) Delete() {
	gl.DeleteProgram(p.id)
}

// mesh is a VAO over one interleaved VBO.
type mesh struct {
	vao, vbo uint32
	count    int32
}

type attrib struct {
	loc  uint32
	size int32
}

func newMesh(data []float32, stride int, attribs ...attrib) *mesh {
	m := &mesh{count: int32(len(data) / stride)}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	offset := 0
	for _, a := range attribs {
		gl.EnableVertexAttribArray(a.loc)
		gl.VertexAttribPointerWithOffset(a.loc, a.size, gl.FLOAT, false, int32(stride*4), uintptr(offset*4))
		offset += int(a.size)
	}
	gl.BindVertexArray(0)
	return m
}

func (m *mesh) draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.count)
	gl.BindVertexArray(0)
}

func (m *mesh) delete() {
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteVertexArrays(1, &m.vao)
}
