package player

import (
	"sync"
	"time"

	"github.com/dejadejade/glmpv/mpv"
)

type getCall struct {
	userdata uint64
	name     string
	format   mpv.Format
}

// fakeHandle queues events pushed by the test and records requests.
type fakeHandle struct {
	name string
	log  *[]string

	mu       sync.Mutex
	events   []*mpv.Event
	wakeup   func()
	commands [][]string
	gets     []getCall
	observed []string
	getErr   error
}

func newFake(name string, log *[]string) *fakeHandle {
	return &fakeHandle{name: name, log: log}
}

func (f *fakeHandle) push(events ...*mpv.Event) {
	f.mu.Lock()
	f.events = append(f.events, events...)
	wakeup := f.wakeup
	f.mu.Unlock()
	if wakeup != nil {
		wakeup()
	}
}

func (f *fakeHandle) Command(args ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, args)
	return nil
}

func (f *fakeHandle) CommandAsync(_ uint64, args ...string) error {
	return f.Command(args...)
}

func (f *fakeHandle) GetPropertyAsync(userdata uint64, name string, format mpv.Format) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return f.getErr
	}
	f.gets = append(f.gets, getCall{userdata, name, format})
	return nil
}

func (f *fakeHandle) ObserveProperty(_ uint64, name string, _ mpv.Format) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.observed = append(f.observed, name)
	return nil
}

func (f *fakeHandle) WaitEvent(time.Duration) *mpv.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.events) == 0 {
		return &mpv.Event{ID: mpv.EventNone}
	}
	e := f.events[0]
	f.events = f.events[1:]
	return e
}

func (f *fakeHandle) SetWakeupCallback(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.wakeup = fn
}

func (f *fakeHandle) Close() {
	*f.log = append(*f.log, "close "+f.name)
}

func (f *fakeHandle) lastGet(name string) (getCall, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.gets) - 1; i >= 0; i-- {
		if f.gets[i].name == name {
			return f.gets[i], true
		}
	}
	return getCall{}, false
}

func (f *fakeHandle) commandList() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]string(nil), f.commands...)
}

func (f *fakeHandle) queued() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

func (f *fakeHandle) getCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, g := range f.gets {
		if g.name == name {
			n++
		}
	}
	return n
}
