package main

import (
	"context"
	"sync"
	"time"
)

const (
	waitTimeout = 100 * time.Millisecond
	frameTime   = time.Second / 60
)

// presents reports whether the loop swaps buffers this iteration. In
// simple mode the back buffer holds only what libmpv rendered into it,
// so nothing else may be presented.
func (m mode) presents(rendered, dirty bool) bool {
	if m == modeSimple {
		return rendered
	}
	return rendered || dirty
}

// waitFor is how long the loop blocks for window events; zero polls.
// With vsync the swap paces an animating loop.
func waitFor(animated, vsync bool) time.Duration {
	switch {
	case !animated:
		return waitTimeout
	case vsync:
		return 0
	default:
		return frameTime
	}
}

// wakeOnCancel calls wake when ctx is cancelled. wake is never called
// once the returned stop function has returned.
func wakeOnCancel(ctx context.Context, wake func()) (stop func()) {
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
			wake()
		case <-done:
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
		wg.Wait()
	}
}
