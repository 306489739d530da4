package scene

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/dejadejade/glmpv/geom"
)

const cubeVertex = `
in vec3 position;
in vec2 texcoord;
uniform mat4 mvp;
out vec2 uv;

void main() {
	uv = texcoord;
	gl_Position = mvp * vec4(position, 1.0);
}
`

const cubeFragment = `
in vec2 uv;
uniform sampler2D tex;
out vec4 color;

void main() {
	color = texture(tex, uv);
}
`

// Cube draws a texture on every face of a cube.
type Cube struct {
	prog *Program
	mesh *mesh
	mvp  int32
}

func NewCube(version string) (*Cube, error) {
	prog, err := NewProgram(version, cubeVertex, cubeFragment)
	if err != nil {
		return nil, err
	}
	c := &Cube{prog: prog, mvp: prog.Uniform("mvp")}
	c.mesh = newMesh(geom.Cube, geom.CubeStride,
		attrib{loc: prog.Attrib("position"), size: 3},
		attrib{loc: prog.Attrib("texcoord"), size: 2},
	)

	prog.Use()
	gl.Uniform1i(prog.Uniform("tex"), 0)
	return c, nil
}

// Draw renders the cube with depth testing and back-face culling. The
// caller clears the depth buffer.
func (c *Cube) Draw(tex uint32, mvp mgl32.Mat4) {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	defer gl.Disable(gl.DEPTH_TEST)
	defer gl.Disable(gl.CULL_FACE)

	c.prog.Use()
	gl.UniformMatrix4fv(c.mvp, 1, false, &mvp[0])
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	c.mesh.draw()
}

func (c *Cube) Delete() {
	c.mesh.delete()
	c.prog.Delete()
}
