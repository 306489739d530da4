package player

import (
	"context"

	"github.com/dejadejade/glmpv/internal/logging"
	"github.com/dejadejade/glmpv/mpv"
	"github.com/dejadejade/glmpv/query"
)

const (
	observePause uint64 = iota + 1
	observeTimePos
	observeDuration
)

var observed = []struct {
	userdata uint64
	name     string
	format   mpv.Format
}{
	{observePause, "pause", mpv.FormatFlag},
	{observeTimePos, "time-pos", mpv.FormatDouble},
	{observeDuration, "duration", mpv.FormatDouble},
}

// startEvents installs h's wakeup callback and runs its event goroutine.
// The callback only signals; libmpv forbids calling back into it there.
func (p *Player) startEvents(ctx context.Context, h handle, dispatch func(*mpv.Event) bool) {
	wake := make(chan struct{}, 1)
	// drain whatever was queued before the callback existed
	wake <- struct{}{}
	h.SetWakeupCallback(func() {
		select {
		case wake <- struct{}{}:
		default:
		}
	})
	p.cgroup.Go(func() error {
		p.eventThread(ctx, h, wake, dispatch)
		return nil
	})
}

func (p *Player) eventThread(ctx context.Context, h handle, wake <-chan struct{}, dispatch func(*mpv.Event) bool) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-wake:
		}

		for {
			e := h.WaitEvent(0)
			if e == nil || e.ID == mpv.EventNone {
				break
			}
			if dispatch(e) {
				return
			}
		}
	}
}

// handleEvent reports whether the handle is shutting down.
func (p *Player) handleEvent(e *mpv.Event) bool {
	switch e.ID {
	case mpv.EventShutdown:
		p.shutdown.Do(func() {
			p.log.Infof("core shut down")
			p.post(p.onShutdown)
		})
		return true

	case mpv.EventLogMessage:
		if m := e.LogMessage; m != nil {
			logging.MPVMessage(p.log, m.Prefix, m.Level, m.Text)
		}

	case mpv.EventGetPropertyReply:
		p.resolve(e)

	case mpv.EventPropertyChange:
		p.applyProperty(e.Property)

	case mpv.EventFileLoaded:
		p.log.Infof("file loaded")
		p.refresh()

	case mpv.EventVideoReconfig:
		if err := p.QueryVideoSize(nil); err != nil {
			p.log.Warnf("video size: %v", err)
		}

	case mpv.EventEndFile:
		if f := e.EndFile; f != nil {
			if f.Error != nil {
				p.log.Errorf("playback ended: %s: %v", f.Reason, f.Error)
			} else {
				p.log.Infof("playback ended: %s", f.Reason)
			}
		}

	case mpv.EventCommandReply, mpv.EventSetPropertyReply:
		if e.Error != nil {
			p.log.Warnf("%s %d: %v", e.ID, e.ReplyUserdata, e.Error)
		}

	case mpv.EventQueueOverflow:
		p.log.Warnf("event queue overflow, events were dropped")

	default:
		p.log.Debugf("event: %s", e.ID)
	}
	return false
}

// handleClientEvent serves the query handle. libmpv broadcasts playback
// events to every client; the master already handles those.
func (p *Player) handleClientEvent(e *mpv.Event) bool {
	switch e.ID {
	case mpv.EventShutdown:
		return true
	case mpv.EventGetPropertyReply:
		p.resolve(e)
	}
	return false
}

func (p *Player) resolve(e *mpv.Event) {
	r := query.Reply{Err: e.Error}
	if e.Property != nil {
		r.Name, r.Value = e.Property.Name, e.Property.Value
		if r.Err == nil && r.Value == nil {
			r.Err = mpv.ErrPropertyUnavailable
		}
	}
	if !p.queries.Resolve(e.ReplyUserdata, r) {
		p.log.Debugf("unexpected reply %d for %s", e.ReplyUserdata, r.Name)
	}
}

func (p *Player) refresh() {
	if err := p.QueryTitle(nil); err != nil {
		p.log.Warnf("title: %v", err)
	}
	if err := p.QueryDuration(nil); err != nil {
		p.log.Warnf("duration: %v", err)
	}
}
