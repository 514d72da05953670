package gesture

import "time"

// Timer is a pending deferred call.
type Timer interface {
	// Stop prevents the call from running and reports whether it was still pending.
	Stop() bool
}

// Clock schedules deferred calls. Tests substitute a manual clock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock schedules with the runtime timer.
type SystemClock struct{}

func (SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
