// Package clock abstracts wall-clock time and timers so schedulers can be
// driven deterministically in tests.
package clock

import "time"

// Timer is a cancellable scheduled callback.
type Timer interface {
	// Stop prevents the timer from firing. It returns false if the timer
	// already fired or was stopped.
	Stop() bool
}

// Clock provides the current time and one-shot timers.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct {
	loc *time.Location
}

// New returns a Clock backed by the system time, reporting times in loc.
// A nil loc means time.Local.
func New(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return realClock{loc: loc}
}

func (c realClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
