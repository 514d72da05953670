package gesture

import (
	"time"

	"github.com/structsketch/structsketch/backend-go/internal/geom"
)

// DefaultLongPressDelay is how long a glyph must be held to count as a long press.
const DefaultLongPressDelay = 1000 * time.Millisecond

// PressState is the long-press state of one glyph.
type PressState int

const (
	PressIdle PressState = iota
	PressPressed
	PressCancelled
	PressFired
)

func (s PressState) String() string {
	switch s {
	case PressIdle:
		return "idle"
	case PressPressed:
		return "pressed"
	case PressCancelled:
		return "cancelled"
	case PressFired:
		return "fired"
	default:
		return "unknown"
	}
}

type press struct {
	token  uint64
	origin geom.Rect
	state  PressState
	timer  Timer
}

// Tracker runs one long-press state machine per glyph:
//
//	idle -> pressed -> cancelled | fired
//
// Each press gets a fresh token and stops the glyph's previous timer, so a glyph
// never has more than one pending timer and a stale timer can never fire.
type Tracker struct {
	clock  Clock
	delay  time.Duration
	notify func(glyphID string, token uint64)

	seq     uint64
	presses map[string]*press
}

// NewTracker returns a tracker that calls notify from the clock when a press has
// been held for delay. notify should hand the token back through Fire on the
// goroutine that owns the tracker.
func NewTracker(clock Clock, delay time.Duration, notify func(glyphID string, token uint64)) *Tracker {
	if clock == nil {
		clock = SystemClock{}
	}
	if delay <= 0 {
		delay = DefaultLongPressDelay
	}
	return &Tracker{
		clock:   clock,
		delay:   delay,
		notify:  notify,
		presses: make(map[string]*press),
	}
}

// Press starts a hold on glyphID whose bounds are currently origin.
func (t *Tracker) Press(glyphID string, origin geom.Rect) uint64 {
	if p, ok := t.presses[glyphID]; ok && p.timer != nil {
		p.timer.Stop()
	}

	t.seq++
	token := t.seq
	p := &press{token: token, origin: origin, state: PressPressed}
	t.presses[glyphID] = p
	p.timer = t.clock.AfterFunc(t.delay, func() {
		t.notify(glyphID, token)
	})
	return token
}

// Release cancels a pending hold on glyphID.
func (t *Tracker) Release(glyphID string) {
	p, ok := t.presses[glyphID]
	if !ok || p.state != PressPressed {
		return
	}
	if p.timer != nil {
		p.timer.Stop()
	}
	p.state = PressCancelled
}

// ReleaseAll cancels every pending hold.
func (t *Tracker) ReleaseAll() {
	for id := range t.presses {
		t.Release(id)
	}
}

// Fire resolves a timer callback. It reports a long press only for the current
// token of a still-pressed glyph whose bounds equal those recorded at press
// time; a moved glyph was dragged, not held.
func (t *Tracker) Fire(glyphID string, token uint64, current geom.Rect, found bool) bool {
	p, ok := t.presses[glyphID]
	if !ok || p.token != token || p.state != PressPressed {
		return false
	}
	p.timer = nil
	if !found || current != p.origin {
		p.state = PressCancelled
		return false
	}
	p.state = PressFired
	return true
}

// State returns the state of glyphID's latest press.
func (t *Tracker) State(glyphID string) PressState {
	if p, ok := t.presses[glyphID]; ok {
		return p.state
	}
	return PressIdle
}

// Pending returns the number of glyphs with a running timer.
func (t *Tracker) Pending() int {
	n := 0
	for _, p := range t.presses {
		if p.state == PressPressed {
			n++
		}
	}
	return n
}

// Forget drops the record of glyphID, e.g. after it was deleted.
func (t *Tracker) Forget(glyphID string) {
	t.Release(glyphID)
	delete(t.presses, glyphID)
}
