// Package frame synchronises libmpv's render-update callback with the
// host draw loop.
package frame

import "sync/atomic"

// Signal is a redraw flag raised from any thread and consumed by the
// draw loop. Bursts of notifications before a Take coalesce into one.
type Signal struct {
	raised atomic.Bool
	wake   func()
}

// NewSignal returns a lowered Signal. wake, if not nil, is called each
// time the flag goes from lowered to raised, to interrupt a draw loop
// blocked waiting for window events.
func NewSignal(wake func()) *Signal {
	return &Signal{wake: wake}
}

// Notify raises the flag. It never blocks and never calls into libmpv,
// so it is safe as a render-update callback.
func (s *Signal) Notify() {
	if s.raised.CompareAndSwap(false, true) && s.wake != nil {
		s.wake()
	}
}

// Take lowers the flag and reports whether it was raised.
func (s *Signal) Take() bool {
	return s.raised.Swap(false)
}

func (s *Signal) Pending() bool {
	return s.raised.Load()
}
