// Package geom holds the vertex data and transforms used to draw the
// video texture, independent of any GL context.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// QuadStride is the number of floats per quad vertex: x, y, u, v.
	QuadStride = 4
	// CubeStride is the number of floats per cube vertex: x, y, z, u, v.
	CubeStride = 5
)

// Quad covers normalized device coordinates with two triangles.
var Quad = []float32{
	-1, -1, 0, 0,
	1, -1, 1, 0,
	1, 1, 1, 1,

	-1, -1, 0, 0,
	1, 1, 1, 1,
	-1, 1, 0, 1,
}

// Cube is a cube of side 2 centred on the origin with the full texture on
// every face, wound counter-clockwise when seen from outside.
var Cube = []float32{
	// front
	-1, -1, 1, 0, 0,
	1, -1, 1, 1, 0,
	1, 1, 1, 1, 1,
	-1, -1, 1, 0, 0,
	1, 1, 1, 1, 1,
	-1, 1, 1, 0, 1,

	// back
	1, -1, -1, 0, 0,
	-1, -1, -1, 1, 0,
	-1, 1, -1, 1, 1,
	1, -1, -1, 0, 0,
	-1, 1, -1, 1, 1,
	1, 1, -1, 0, 1,

	// left
	-1, -1, -1, 0, 0,
	-1, -1, 1, 1, 0,
	-1, 1, 1, 1, 1,
	-1, -1, -1, 0, 0,
	-1, 1, 1, 1, 1,
	-1, 1, -1, 0, 1,

	// right
	1, -1, 1, 0, 0,
	1, -1, -1, 1, 0,
	1, 1, -1, 1, 1,
	1, -1, 1, 0, 0,
	1, 1, -1, 1, 1,
	1, 1, 1, 0, 1,

	// top
	-1, 1, 1, 0, 0,
	1, 1, 1, 1, 0,
	1, 1, -1, 1, 1,
	-1, 1, 1, 0, 0,
	1, 1, -1, 1, 1,
	-1, 1, -1, 0, 1,

	// bottom
	-1, -1, -1, 0, 0,
	1, -1, -1, 1, 0,
	1, -1, 1, 1, 1,
	-1, -1, -1, 0, 0,
	1, -1, 1, 1, 1,
	-1, -1, 1, 0, 1,
}

// Aspect returns w/h, or 1 for a degenerate height.
func Aspect(w, h int) float32 {
	if w <= 0 || h <= 0 {
		return 1
	}
	return float32(w) / float32(h)
}

// Camera looks at the origin from Distance along +z.
type Camera struct {
	FovY     float32 // degrees
	Near     float32
	Far      float32
	Distance float32
}

func DefaultCamera() Camera {
	return Camera{FovY: 45, Near: 0.1, Far: 100, Distance: 4.5}
}

// spin axis, tilted so three faces show at once
var axis = mgl32.Vec3{0.5, 1, 0.2}.Normalize()

// Model rotates by angle degrees about the spin axis, after stretching
// x so each face has the video's aspect.
func Model(angle, videoAspect float32) mgl32.Mat4 {
	if videoAspect <= 0 {
		videoAspect = 1
	}
	rot := mgl32.HomogRotate3D(mgl32.DegToRad(angle), axis)
	return rot.Mul4(mgl32.Scale3D(videoAspect, 1, 1))
}

// MVP returns projection * view * model for a viewport of the given
// aspect.
func (c Camera) MVP(viewAspect, videoAspect, angle float32) mgl32.Mat4 {
	proj := mgl32.Perspective(mgl32.DegToRad(c.FovY), viewAspect, c.Near, c.Far)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, c.Distance}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	return proj.Mul4(view).Mul4(Model(angle, videoAspect))
}

// Advance moves angle by speed degrees per second over dt seconds,
// wrapped to [0, 360).
func Advance(angle, speed float32, dt float64) float32 {
	a := math.Mod(float64(angle)+float64(speed)*dt, 360)
	if a < 0 {
		a += 360
	}
	return float32(a)
}

// Rect maps a size x size pixel square whose top-left corner is at
// (x, y) in a viewW x viewH viewport onto the NDC quad: the result
// holds scale x, scale y, offset x, offset y.
func Rect(viewW, viewH, x, y, size int) mgl32.Vec4 {
	if viewW <= 0 || viewH <= 0 {
		return mgl32.Vec4{}
	}
	sx := float32(size) / float32(viewW)
	sy := float32(size) / float32(viewH)
	cx := float32(2*x+size)/float32(viewW) - 1
	cy := 1 - float32(2*y+size)/float32(viewH)
	return mgl32.Vec4{sx, sy, cx, cy}
}
