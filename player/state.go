package player

import (
	"fmt"
	"time"

	"github.com/dejadejade/glmpv/mpv"
)

// State is the playback state mirrored from libmpv.
type State struct {
	Title    string
	Paused   bool
	Position time.Duration
	Duration time.Duration
	Width    int
	Height   int
}

func format(d time.Duration) string {
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func seconds(s float64) time.Duration {
	if s < 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}

// Status is the window title: "title  00:01:02 / 00:10:00".
func (s State) Status() string {
	title := s.Title
	if title == "" {
		title = "glmpv"
	}
	status := fmt.Sprintf("%s  %s / %s", title, format(s.Position), format(s.Duration))
	if s.Paused {
		status += "  (paused)"
	}
	return status
}

// update applies fn to the state and reports the result on the draw
// loop if anything changed.
func (p *Player) update(fn func(*State)) {
	p.stateMu.Lock()
	before := p.state
	fn(&p.state)
	after := p.state
	p.stateMu.Unlock()

	if after != before && p.onChange != nil {
		p.post(func() { p.onChange(after) })
	}
}

func (p *Player) applyProperty(prop *mpv.Property) {
	if prop == nil {
		return
	}
	switch prop.Name {
	case "pause":
		v, _ := prop.Flag()
		p.update(func(s *State) { s.Paused = v })
	case "time-pos":
		v, _ := prop.Float()
		p.update(func(s *State) { s.Position = seconds(v) })
	case "duration":
		v, _ := prop.Float()
		p.update(func(s *State) { s.Duration = seconds(v) })
	}
}
