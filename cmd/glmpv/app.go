package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	"github.com/dejadejade/glmpv/frame"
	"github.com/dejadejade/glmpv/geom"
	"github.com/dejadejade/glmpv/input"
	"github.com/dejadejade/glmpv/mpv"
	"github.com/dejadejade/glmpv/player"
	"github.com/dejadejade/glmpv/scene"
	"github.com/dejadejade/glmpv/window"
)

type mode int

const (
	modeSimple mode = iota
	modeFBO
	modeCube
)

func (m mode) String() string {
	switch m {
	case modeSimple:
		return "simple"
	case modeFBO:
		return "fbo"
	case modeCube:
		return "cube"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

const seekStep = 5.0

type app struct {
	mode   mode
	win    *window.Window
	player *player.Player
	render *mpv.RenderContext
	redraw *frame.Signal
	notify chan func()

	target  *scene.Target
	quad    *scene.Quad
	cube    *scene.Cube
	overlay *scene.Overlay
	camera  geom.Camera

	width, height int
	state         player.State
	title         string
	angle         float32
	last          time.Time
	meter         frame.Meter

	resized     bool
	forceRender bool
	dirty       bool
}

// apiError marks failures coming out of libmpv the way users expect.
func apiError(err error) error {
	var mErr mpv.Error
	if errors.As(err, &mErr) {
		return errors.Wrap(err, "mpv API error")
	}
	return err
}

func run(ctx context.Context, m mode, file string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := window.Init(); err != nil {
		return err
	}
	defer window.Terminate()

	win, err := window.New(window.Options{
		Title:   cfg.Window.Title,
		Width:   cfg.Window.Width,
		Height:  cfg.Window.Height,
		GLMajor: cfg.GL.Major,
		GLMinor: cfg.GL.Minor,
		VSync:   cfg.Window.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Destroy()

	a := &app{
		mode:   m,
		win:    win,
		notify: make(chan func(), 64),
		camera: geom.DefaultCamera(),
		meter:  frame.Meter{Interval: 5 * time.Second},
	}

	a.player, err = player.New(player.Options{
		File:     file,
		Client:   m == modeCube,
		OSC:      cfg.MPV.OSC,
		MPV:      cfg.MPVOptions(),
		LogLevel: cfg.Log.MPV,
		Logger:   log.WithField("mode", m.String()),
		Notify:   a.notify,
		Wake:     win.Wake,
	})
	if err != nil {
		return apiError(err)
	}
	defer a.player.Close()

	a.render, err = mpv.NewRenderContext(a.player.Handle(), window.ProcAddress, false)
	if err != nil {
		return apiError(errors.Wrap(err, "failed to initialize mpv GL context"))
	}
	defer a.render.Free()

	a.redraw = frame.NewSignal(win.Wake)
	a.render.SetUpdateCallback(a.redraw.Notify)
	defer a.render.SetUpdateCallback(nil)

	if err := a.setupScene(); err != nil {
		return err
	}
	defer a.deleteScene()

	a.bindInput()
	a.player.OnChange(a.onChange)
	a.player.OnShutdown(win.Close)
	if err := a.player.Start(ctx); err != nil {
		return apiError(err)
	}

	// stopped before the window and GLFW go away
	stopWake := wakeOnCancel(ctx, win.Wake)
	defer stopWake()
	a.loop(ctx)

	if err := a.player.Quit(); err != nil {
		log.Debugf("quit: %v", err)
	}
	return nil
}

func (a *app) setupScene() error {
	a.width, a.height = a.win.FramebufferSize()
	if a.mode == modeSimple {
		return nil
	}

	version := scene.Version(cfg.GL.Major, cfg.GL.Minor)
	var err error
	if a.quad, err = scene.NewQuad(version); err != nil {
		return err
	}
	if a.overlay, err = scene.NewOverlay(a.quad); err != nil {
		return err
	}

	// the cube's texture follows the video size once it is known
	w, h := a.width, a.height
	if a.mode == modeCube {
		w, h = cfg.Window.Width, cfg.Window.Height
		if a.cube, err = scene.NewCube(version); err != nil {
			return err
		}
	}
	a.target, err = scene.NewTarget(w, h)
	return err
}

func (a *app) deleteScene() {
	if a.target != nil {
		a.target.Delete()
	}
	if a.cube != nil {
		a.cube.Delete()
	}
	if a.overlay != nil {
		a.overlay.Delete()
	}
	if a.quad != nil {
		a.quad.Delete()
	}
}

func (a *app) bindInput() {
	a.win.OnKey(func(key glfw.Key, mods glfw.ModifierKey) {
		if a.mode == modeCube && key == glfw.KeyF12 && mods == 0 {
			a.snapshot()
			return
		}
		name, ok := input.Name(key, mods)
		if !ok {
			return
		}
		if err := a.player.Keypress(name); err != nil {
			log.Warnf("keypress %s: %v", name, err)
		}
	})
	a.win.OnResize(func(w, h int) {
		a.width, a.height = w, h
		a.resized = true
	})
	a.win.OnClick(func() {
		if err := a.player.TogglePause(); err != nil {
			log.Warnf("pause: %v", err)
		}
	})
	a.win.OnScroll(func(dy float64) {
		if err := a.player.Seek(dy * seekStep); err != nil {
			log.Warnf("seek: %v", err)
		}
	})
}

// onChange runs on the draw loop for every player state change.
func (a *app) onChange(s player.State) {
	sized := s.Width > 0 && s.Height > 0 && (s.Width != a.state.Width || s.Height != a.state.Height)
	a.state = s
	a.dirty = true

	if title := s.Status(); title != a.title {
		a.title = title
		a.win.SetTitle(title)
	}
	if sized && a.mode == modeCube {
		log.Infof("video size %dx%d", s.Width, s.Height)
		if err := a.target.Resize(s.Width, s.Height); err != nil {
			log.Errorf("resize texture: %v", err)
			return
		}
		a.forceRender = true
	}
}

func (a *app) animated() bool {
	return a.mode == modeCube && !a.state.Paused
}

func (a *app) drain() {
	for {
		select {
		case fn := <-a.notify:
			fn()
		default:
			return
		}
	}
}

func (a *app) loop(ctx context.Context) {
	a.last = time.Now()
	for !a.win.ShouldClose() {
		if d := waitFor(a.animated(), cfg.Window.VSync); d > 0 {
			a.win.Wait(d)
		} else {
			a.win.Poll()
		}
		a.drain()

		if ctx.Err() != nil {
			a.win.Close()
			break
		}

		now := time.Now()
		if a.animated() {
			a.angle = geom.Advance(a.angle, cfg.Cube.Speed, now.Sub(a.last).Seconds())
			a.dirty = true
		}
		a.last = now

		if a.resized {
			a.resized = false
			a.forceRender = true
			if a.mode == modeFBO {
				if err := a.target.Resize(a.width, a.height); err != nil {
					log.Errorf("resize texture: %v", err)
				}
			}
		}

		// Update must follow every update callback, frame or not.
		if a.redraw.Take() && a.render.Update()&mpv.UpdateFrame != 0 {
			a.forceRender = true
		}
		rendered := false
		if a.forceRender {
			a.forceRender = false
			if err := a.renderFrame(); err != nil {
				log.Errorf("render: %v", err)
			}
			a.meter.Rendered()
			rendered = true
		}
		present := a.mode.presents(rendered, a.dirty)
		a.dirty = false
		if !present {
			continue
		}

		a.draw()
		a.win.Swap()
		a.render.ReportSwap()
		a.meter.Swapped()

		if r, ok := a.meter.Tick(now); ok {
			log.Debugf("%.1f frames/s rendered, %.1f swaps/s", r.Renders, r.Swaps)
		}
	}
}

// renderFrame has libmpv draw the latest frame into the window or into
// the texture.
func (a *app) renderFrame() error {
	if a.mode == modeSimple {
		return a.render.RenderFBO(0, a.width, a.height, true)
	}
	w, h := a.target.Size()
	return a.render.RenderFBO(a.target.FBO(), w, h, true)
}

func (a *app) draw() {
	switch a.mode {
	case modeSimple:
		// libmpv drew into the back buffer already
		return
	case modeFBO:
		scene.Begin(a.width, a.height, 0, 0, 0, false)
		a.quad.Draw(a.target.Texture())
	case modeCube:
		scene.Begin(a.width, a.height, 0.08, 0.08, 0.1, true)
		tw, th := a.target.Size()
		mvp := a.camera.MVP(geom.Aspect(a.width, a.height), geom.Aspect(tw, th), a.angle)
		a.cube.Draw(a.target.Texture(), mvp)
	}
	if a.state.Paused {
		a.overlay.Draw(a.width, a.height)
	}
}

func (a *app) snapshot() {
	name := fmt.Sprintf("glmpv-%s.png", time.Now().Format("20060102-150405"))
	path := filepath.Join(cfg.Snapshot.Dir, name)
	if err := scene.Snapshot(a.target, cfg.Snapshot.Width, path); err != nil {
		log.Errorf("snapshot: %v", err)
		return
	}
	log.Infof("snapshot saved to %s", path)
}
