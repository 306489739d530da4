// Package window owns the GLFW window and its OpenGL context. Apart
// from Wake, every function must run on the main, OS-locked thread.
package window

import (
	"time"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
)

type Options struct {
	Title   string
	Width   int
	Height  int
	GLMajor int
	GLMinor int
	VSync   bool
}

type Window struct {
	win *glfw.Window

	onKey    func(glfw.Key, glfw.ModifierKey)
	onResize func(w, h int)
	onClick  func()
	onScroll func(dy float64)
}

func Init() error {
	if err := glfw.Init(); err != nil {
		return errors.Wrap(err, "glfw.Init failed")
	}
	return nil
}

func Terminate() {
	glfw.Terminate()
}

// New creates a window with a core-profile context, makes it current and
// loads the GL entry points.
func New(opts Options) (*Window, error) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, opts.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, opts.GLMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		return nil, errors.Wrap(err, "glfw.CreateWindow failed")
	}
	win.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		win.Destroy()
		return nil, errors.Wrap(err, "gl.Init failed")
	}
	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &Window{win: win}
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Release || w.onKey == nil {
			return
		}
		w.onKey(key, mods)
	})
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button == glfw.MouseButtonLeft && action == glfw.Press && w.onClick != nil {
			w.onClick()
		}
	})
	win.SetScrollCallback(func(_ *glfw.Window, _, dy float64) {
		if w.onScroll != nil {
			w.onScroll(dy)
		}
	})
	return w, nil
}

// ProcAddress resolves a GL function in the current context.
func ProcAddress(name string) unsafe.Pointer {
	return glfw.GetProcAddress(name)
}

// Wake interrupts Wait. It is safe from any goroutine.
func (w *Window) Wake() {
	glfw.PostEmptyEvent()
}

// OnKey is called for presses and repeats.
func (w *Window) OnKey(fn func(key glfw.Key, mods glfw.ModifierKey)) { w.onKey = fn }

// OnResize is called with the new framebuffer size in pixels.
func (w *Window) OnResize(fn func(width, height int)) { w.onResize = fn }

func (w *Window) OnClick(fn func()) { w.onClick = fn }

func (w *Window) OnScroll(fn func(dy float64)) { w.onScroll = fn }

func (w *Window) FramebufferSize() (int, int) {
	return w.win.GetFramebufferSize()
}

func (w *Window) SetTitle(title string) {
	w.win.SetTitle(title)
}

func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose()
}

func (w *Window) Close() {
	w.win.SetShouldClose(true)
}

func (w *Window) Swap() {
	w.win.SwapBuffers()
}

func (w *Window) Poll() {
	glfw.PollEvents()
}

// Wait blocks until an event arrives, Wake is called or timeout passes.
func (w *Window) Wait(timeout time.Duration) {
	glfw.WaitEventsTimeout(timeout.Seconds())
}

func (w *Window) Destroy() {
	w.win.Destroy()
}
