package scene

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/dejadejade/glmpv/geom"
)

const quadVertex = `
in vec2 position;
in vec2 texcoord;
uniform vec4 rect;
out vec2 uv;

void main() {
	uv = texcoord;
	gl_Position = vec4(position * rect.xy + rect.zw, 0.0, 1.0);
}
`

const quadFragment = `
in vec2 uv;
uniform sampler2D tex;
uniform float alpha;
out vec4 color;

void main() {
	vec4 c = texture(tex, uv);
	color = vec4(c.rgb, c.a * alpha);
}
`

// fullRect maps the quad onto the whole viewport.
var fullRect = [4]float32{1, 1, 0, 0}

// Quad draws a texture over a rectangle of the viewport.
type Quad struct {
	prog  *Program
	mesh  *mesh
	rect  int32
	alpha int32
}

func NewQuad(version string) (*Quad, error) {
	prog, err := NewProgram(version, quadVertex, quadFragment)
	if err != nil {
		return nil, err
	}
	q := &Quad{
		prog:  prog,
		rect:  prog.Uniform("rect"),
		alpha: prog.Uniform("alpha"),
	}
	q.mesh = newMesh(geom.Quad, geom.QuadStride,
		attrib{loc: prog.Attrib("position"), size: 2},
		attrib{loc: prog.Attrib("texcoord"), size: 2},
	)

	prog.Use()
	gl.Uniform1i(prog.Uniform("tex"), 0)
	return q, nil
}

// Draw fills the current viewport with tex.
func (q *Quad) Draw(tex uint32) {
	q.draw(tex, fullRect, 1)
}

func (q *Quad) draw(tex uint32, rect [4]float32, alpha float32) {
	q.prog.Use()
	gl.Uniform4f(q.rect, rect[0], rect[1], rect[2], rect[3])
	gl.Uniform1f(q.alpha, alpha)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	q.mesh.draw()
}

func (q *Quad) Delete() {
	q.mesh.delete()
	q.prog.Delete()
}
