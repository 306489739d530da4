package scene

import "github.com/go-gl/gl/v4.1-core/gl"

// Begin binds the default framebuffer, sets the viewport and clears it.
// libmpv changes GL state while rendering, so every frame starts here.
func Begin(w, h int, r, g, b float32, depth bool) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(w), int32(h))
	gl.ClearColor(r, g, b, 1)
	mask := uint32(gl.COLOR_BUFFER_BIT)
	if depth {
		mask |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(mask)
}
