package clock

import "time"

// Clock abstracts time to keep session expiry deterministic in tests.
type Clock interface {
	Now() time.Time
}

// Timer is a pending callback that can be stopped before it fires.
type Timer interface {
	Stop() bool
}

// Scheduler runs callbacks after a delay. Reveal engines take one so tests
// can drive ticks without sleeping.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// System is the wall clock and the runtime timer scheduler.
type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC()
}

func (System) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
