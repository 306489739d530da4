package frame

import "time"

// Meter counts rendered frames and swaps and reports rates once per
// interval.
type Meter struct {
	Interval time.Duration

	start   time.Time
	renders int
	swaps   int
}

type Rate struct {
	Renders float64
	Swaps   float64
}

func (m *Meter) Rendered() { m.renders++ }
func (m *Meter) Swapped()  { m.swaps++ }

// Tick returns the rates since the previous report once Interval has
// elapsed, and false otherwise. The first call only starts the clock.
func (m *Meter) Tick(now time.Time) (Rate, bool) {
	if m.start.IsZero() {
		m.start = now
		return Rate{}, false
	}
	interval := m.Interval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	elapsed := now.Sub(m.start)
	if elapsed < interval {
		return Rate{}, false
	}
	secs := elapsed.Seconds()
	r := Rate{Renders: float64(m.renders) / secs, Swaps: float64(m.swaps) / secs}
	m.start, m.renders, m.swaps = now, 0, 0
	return r, true
}
