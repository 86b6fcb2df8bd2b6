package clock

import "time"

// Interface is the time source used by tracekit components.  It exposes the
// subset of the stdlib time package needed to timestamp spans and drive
// periodic work, so that tests can substitute a deterministic source.
type Interface interface {
	Now() time.Time
	Since(time.Time) time.Duration
	NewTicker(time.Duration) Ticker
}

type systemClock struct{}

func (sc systemClock) Now() time.Time {
	return time.Now()
}

func (sc systemClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

func (sc systemClock) NewTicker(d time.Duration) Ticker {
	return systemTicker{time.NewTicker(d)}
}

// System returns a clock backed by the time package
func System() Interface {
	return systemClock{}
}
