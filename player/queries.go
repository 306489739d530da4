package player

import (
	"time"

	"github.com/dejadejade/glmpv/mpv"
	"github.com/dejadejade/glmpv/query"
)

// Query fetches a property asynchronously through the query handle; cb
// runs on the draw loop. cb may be nil.
func (p *Player) Query(name string, format mpv.Format, cb func(query.Reply)) error {
	return p.fetch(name, format, func(r query.Reply) {
		if cb != nil {
			p.post(func() { cb(r) })
		}
	})
}

// fetch is Query without the hop to the draw loop: done runs on the
// event goroutine of the query handle.
func (p *Player) fetch(name string, format mpv.Format, done func(query.Reply)) error {
	return p.queries.Get(name, func(userdata uint64) error {
		return p.client.GetPropertyAsync(userdata, name, format)
	}, done)
}

func (p *Player) QueryTitle(cb func(string)) error {
	return p.fetch("media-title", mpv.FormatString, func(r query.Reply) {
		if r.Err != nil {
			p.log.Debugf("media-title: %v", r.Err)
			return
		}
		title, _ := r.Value.(string)
		p.update(func(s *State) { s.Title = title })
		if cb != nil {
			p.post(func() { cb(title) })
		}
	})
}

func (p *Player) QueryDuration(cb func(time.Duration)) error {
	return p.fetch("duration", mpv.FormatDouble, func(r query.Reply) {
		if r.Err != nil {
			p.log.Debugf("duration: %v", r.Err)
			return
		}
		v, _ := r.Value.(float64)
		d := seconds(v)
		p.update(func(s *State) { s.Duration = d })
		if cb != nil {
			p.post(func() { cb(d) })
		}
	})
}

// sizeQuery pairs the width and height replies of one QueryVideoSize.
type sizeQuery struct {
	gen    uint64
	w, h   int
	got    int
	failed bool
}

// QueryVideoSize fetches the decoded video size. cb runs once both
// replies arrived and neither failed.
func (p *Player) QueryVideoSize(cb func(w, h int)) error {
	p.stateMu.Lock()
	p.size = sizeQuery{gen: p.size.gen + 1}
	gen := p.size.gen
	p.stateMu.Unlock()

	reply := func(width bool) func(query.Reply) {
		return func(r query.Reply) {
			v, _ := r.Value.(int64)

			p.stateMu.Lock()
			if p.size.gen != gen {
				// superseded by a later reconfig
				p.stateMu.Unlock()
				return
			}
			if r.Err != nil {
				p.size.failed = true
			}
			if width {
				p.size.w = int(v)
			} else {
				p.size.h = int(v)
			}
			p.size.got++
			complete := p.size.got == 2 && !p.size.failed
			w, h := p.size.w, p.size.h
			p.stateMu.Unlock()

			if r.Err != nil {
				p.log.Debugf("%s: %v", r.Name, r.Err)
			}
			if !complete {
				return
			}
			p.update(func(s *State) { s.Width, s.Height = w, h })
			if cb != nil {
				p.post(func() { cb(w, h) })
			}
		}
	}

	if err := p.fetch("width", mpv.FormatInt64, reply(true)); err != nil {
		return err
	}
	return p.fetch("height", mpv.FormatInt64, reply(false))
}
