package ui

import "time"

// pressTracker turns auto-repeated key events into single presses. Terminals
// report no key release, so a key is considered released once no event for
// it has arrived within window, or once Release is called.
type pressTracker struct {
	window time.Duration
	last   map[string]time.Time
}

func newPressTracker(window time.Duration) *pressTracker {
	return &pressTracker{window: window, last: make(map[string]time.Time)}
}

// Press records an event for name and reports whether it starts a new press.
func (p *pressTracker) Press(name string, now time.Time) bool {
	last, held := p.last[name]
	p.last[name] = now
	return !held || now.Sub(last) >= p.window
}

func (p *pressTracker) Release(name string) {
	delete(p.last, name)
}

func (p *pressTracker) Reset() {
	clear(p.last)
}
