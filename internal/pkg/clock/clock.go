package clock

import "time"

// Clock abstracts wall-clock time. Status resolution and permission
// expiry depend on the current time of day, so everything that needs
// "now" takes a Clock instead of calling time.Now directly.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns a Clock backed by time.Now.
func System() Clock {
	return systemClock{}
}

// Fixed is a Clock frozen at a single instant, for tests.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time { return f.Instant }

// At returns a Clock frozen at t.
func At(t time.Time) Clock {
	return Fixed{Instant: t}
}
