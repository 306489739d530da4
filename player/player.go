package player

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/dejadejade/glmpv/mpv"
	"github.com/dejadejade/glmpv/query"
)

// handle is the part of *mpv.Handle the player drives.
type handle interface {
	Command(args ...string) error
	CommandAsync(userdata uint64, args ...string) error
	GetPropertyAsync(userdata uint64, name string, format mpv.Format) error
	ObserveProperty(userdata uint64, name string, format mpv.Format) error
	WaitEvent(timeout time.Duration) *mpv.Event
	SetWakeupCallback(fn func())
	Close()
}

type Options struct {
	File string
	// Client queries properties through a second handle on the same
	// core, leaving the master's queue to observers and commands.
	Client bool
	OSC    bool
	// MPV holds string options applied before initialization.
	MPV      map[string]string
	LogLevel string
	Logger   logrus.FieldLogger

	// Notify carries callbacks to the draw loop; Wake interrupts it
	// after each one. With a nil Notify callbacks run on the event
	// goroutines.
	Notify chan func()
	Wake   func()
}

const queryClientName = "glmpv-query"

var defaultOptions = map[string]string{
	"vo":                     "libmpv",
	"input-default-bindings": "yes",
	"input-vo-keyboard":      "yes",
}

var errStarted = errors.New("already started")

// Player owns a libmpv core and pumps its events.
type Player struct {
	opts Options
	log  logrus.FieldLogger

	core    *mpv.Handle
	master  handle
	client  handle
	queries *query.Dispatcher

	stateMu sync.Mutex
	state   State
	size    sizeQuery

	onChange   func(State)
	onShutdown func()
	shutdown   sync.Once

	mutex   sync.Mutex
	started bool
	closed  bool
	done    chan struct{}
	cancel  context.CancelFunc
	cgroup  *errgroup.Group
}

// New creates and initializes a core with opts applied.
func New(opts Options) (*Player, error) {
	h, err := mpv.Create()
	if err != nil {
		return nil, errors.Wrap(err, "failed creating context")
	}

	if err := configure(h, opts); err != nil {
		h.TerminateDestroy()
		return nil, err
	}

	var client handle = h
	if opts.Client {
		c, err := h.CreateClient(queryClientName)
		if err != nil {
			h.TerminateDestroy()
			return nil, errors.Wrap(err, "failed creating client")
		}
		client = c
	}

	p := newPlayer(opts, h, client)
	p.core = h
	return p, nil
}

func configure(h *mpv.Handle, opts Options) error {
	for _, name := range sortedKeys(defaultOptions) {
		if _, ok := opts.MPV[name]; ok {
			continue
		}
		if err := h.SetOptionString(name, defaultOptions[name]); err != nil {
			return errors.Wrapf(err, "option %s", name)
		}
	}
	if err := h.SetOptionFlag("osc", opts.OSC); err != nil {
		return errors.Wrap(err, "option osc")
	}
	for _, name := range sortedKeys(opts.MPV) {
		if err := h.SetOptionString(name, opts.MPV[name]); err != nil {
			return errors.Wrapf(err, "option %s=%s", name, opts.MPV[name])
		}
	}

	if err := h.Initialize(); err != nil {
		return errors.Wrap(err, "failed to initialize")
	}
	if opts.LogLevel != "" {
		if err := h.RequestLogMessages(opts.LogLevel); err != nil {
			return errors.Wrap(err, "failed to request log messages")
		}
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func newPlayer(opts Options, master, client handle) *Player {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	if client == nil {
		client = master
	}
	return &Player{
		opts:    opts,
		log:     log,
		master:  master,
		client:  client,
		queries: query.NewDispatcher(),
		done:    make(chan struct{}),
	}
}

// Handle returns the master handle, for creating the render context.
func (p *Player) Handle() *mpv.Handle {
	return p.core
}

// OnChange is called on the draw loop whenever State changes. Set it
// before Start.
func (p *Player) OnChange(fn func(State)) { p.onChange = fn }

// OnShutdown is called once on the draw loop when the core quits, e.g.
// after the user pressed q. Set it before Start.
func (p *Player) OnShutdown(fn func()) { p.onShutdown = fn }

// Start pumps events for every handle and loads the file.
func (p *Player) Start(ctx context.Context) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.started || p.closed {
		return errStarted
	}
	p.started = true

	ctx, p.cancel = context.WithCancel(ctx)
	p.cgroup, ctx = errgroup.WithContext(ctx)
	p.startEvents(ctx, p.master, p.handleEvent)
	if p.client != p.master {
		p.startEvents(ctx, p.client, p.handleClientEvent)
	}

	for _, o := range observed {
		if err := p.master.ObserveProperty(o.userdata, o.name, o.format); err != nil {
			return errors.Wrapf(err, "failed to observe %s", o.name)
		}
	}

	if p.opts.File != "" {
		if err := p.LoadFile(p.opts.File); err != nil {
			return err
		}
	}
	p.log.Infof("Started")
	return nil
}

func (p *Player) handles() []handle {
	if p.client == p.master {
		return []handle{p.master}
	}
	return []handle{p.master, p.client}
}

// Close stops the event goroutines, fails pending queries and destroys
// the handles. Any render context must be freed before.
func (p *Player) Close() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.closed {
		return
	}
	p.closed = true

	close(p.done)
	if p.cancel != nil {
		p.cancel()
	}
	for _, h := range p.handles() {
		h.SetWakeupCallback(nil)
	}
	if p.cgroup != nil {
		if err := p.cgroup.Wait(); err != nil {
			p.log.Warnf("event loop: %v", err)
		}
	}
	p.queries.Cancel(query.ErrClosed)

	if p.client != p.master {
		p.client.Close()
	}
	p.master.Close()
	p.log.Infof("stopped")
}

func (p *Player) LoadFile(path string) error {
	if err := p.master.Command("loadfile", path); err != nil {
		return errors.Wrapf(err, "failed to load %s", path)
	}
	return nil
}

func (p *Player) command(args ...string) error {
	if err := p.master.CommandAsync(0, args...); err != nil {
		return errors.Wrapf(err, "command %s", args[0])
	}
	return nil
}

func (p *Player) TogglePause() error {
	return p.command("cycle", "pause")
}

// Seek moves the playback position by seconds.
func (p *Player) Seek(seconds float64) error {
	return p.command("seek", fmt.Sprintf("%g", seconds), "relative")
}

// Keypress feeds a key name such as "SPACE" or "Ctrl+LEFT" to libmpv's
// input bindings.
func (p *Player) Keypress(key string) error {
	return p.command("keypress", key)
}

func (p *Player) Quit() error {
	return p.command("quit")
}

// State returns a copy of the current playback state.
func (p *Player) State() State {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()
	return p.state
}

// post runs fn on the draw loop.
func (p *Player) post(fn func()) {
	if fn == nil {
		return
	}
	if p.opts.Notify == nil {
		fn()
		return
	}
	select {
	case <-p.done:
		return
	default:
	}
	select {
	case p.opts.Notify <- fn:
	case <-p.done:
		return
	}
	if p.opts.Wake != nil {
		p.opts.Wake()
	}
}
