//go:build !ios && !android

package mpv

/*
#cgo pkg-config: mpv
#include <stdint.h>
#include <mpv/client.h>
#include <mpv/render_gl.h>

extern void *goGetProcAddress(uintptr_t data, char *name);
extern void goRenderUpdate(uintptr_t data);

static void *get_proc_address(void *ctx, const char *name) {
	return goGetProcAddress((uintptr_t)ctx, (char *)name);
}

static void render_update(void *ctx) {
	goRenderUpdate((uintptr_t)ctx);
}

static int render_context_create(mpv_render_context **res, mpv_handle *mpv, uintptr_t data, int advanced) {
	mpv_opengl_init_params gl_init = {
		.get_proc_address = get_proc_address,
		.get_proc_address_ctx = (void *)data,
	};
	mpv_render_param params[] = {
		{MPV_RENDER_PARAM_API_TYPE, (void *)MPV_RENDER_API_TYPE_OPENGL},
		{MPV_RENDER_PARAM_OPENGL_INIT_PARAMS, &gl_init},
		{MPV_RENDER_PARAM_ADVANCED_CONTROL, &advanced},
		{MPV_RENDER_PARAM_INVALID, NULL},
	};
	return mpv_render_context_create(res, mpv, params);
}

static void render_set_update(mpv_render_context *ctx, uintptr_t data) {
	if (data == 0) {
		mpv_render_context_set_update_callback(ctx, NULL, NULL);
		return;
	}
	mpv_render_context_set_update_callback(ctx, render_update, (void *)data);
}

static int render_fbo(mpv_render_context *ctx, int fbo, int w, int h, int flip) {
	mpv_opengl_fbo target = {
		.fbo = fbo,
		.w = w,
		.h = h,
	};
	mpv_render_param params[] = {
		{MPV_RENDER_PARAM_OPENGL_FBO, &target},
		{MPV_RENDER_PARAM_FLIP_Y, &flip},
		{MPV_RENDER_PARAM_INVALID, NULL},
	};
	return mpv_render_context_render(ctx, params);
}
*/
import "C"

import (
	"runtime/cgo"
	"sync/atomic"
	"unsafe"
)

// RenderContext drives libmpv's OpenGL renderer into host-owned
// framebuffers. All methods except SetUpdateCallback must be called on
// the thread owning the GL context.
type RenderContext struct {
	ctx    *C.mpv_render_context
	self   cgo.Handle
	lookup func(name string) unsafe.Pointer
	update atomic.Value // func()
}

// NewRenderContext creates an OpenGL render context for h. lookup
// resolves GL function names in the current context, e.g.
// glfw.GetProcAddress. The GL context must be current.
func NewRenderContext(h *Handle, lookup func(name string) unsafe.Pointer, advanced bool) (*RenderContext, error) {
	r := &RenderContext{lookup: lookup}
	r.update.Store(func() {})
	r.self = cgo.NewHandle(r)

	adv := C.int(0)
	if advanced {
		adv = 1
	}
	if err := newError(int(C.render_context_create(&r.ctx, h.h, C.uintptr_t(r.self), adv))); err != nil {
		r.self.Delete()
		return nil, err
	}
	return r, nil
}

// SetUpdateCallback installs fn, called from a libmpv thread when a new
// frame is ready or a redraw is needed. fn must not call back into
// libmpv; it should only signal the draw loop.
func (r *RenderContext) SetUpdateCallback(fn func()) {
	if fn == nil {
		C.render_set_update(r.ctx, 0)
		r.update.Store(func() {})
		return
	}
	r.update.Store(fn)
	C.render_set_update(r.ctx, C.uintptr_t(r.self))
}

func (r *RenderContext) notifyUpdate() {
	if fn, ok := r.update.Load().(func()); ok {
		fn()
	}
}

// Update reports what the update callback signalled. It must be called
// after every update callback before rendering.
func (r *RenderContext) Update() RenderUpdate {
	return RenderUpdate(C.mpv_render_context_update(r.ctx))
}

// RenderFBO renders the current frame into fbo of size w x h. fbo 0 is
// the default framebuffer, which needs flipY.
func (r *RenderContext) RenderFBO(fbo uint32, w, h int, flipY bool) error {
	flip := C.int(0)
	if flipY {
		flip = 1
	}
	return newError(int(C.render_fbo(r.ctx, C.int(fbo), C.int(w), C.int(h), flip)))
}

// ReportSwap tells libmpv a buffer swap happened, for frame timing.
func (r *RenderContext) ReportSwap() {
	C.mpv_render_context_report_swap(r.ctx)
}

// Free destroys the render context. No callbacks run after it returns.
func (r *RenderContext) Free() {
	if r.ctx == nil {
		return
	}
	C.mpv_render_context_free(r.ctx)
	r.ctx = nil
	r.self.Delete()
}
