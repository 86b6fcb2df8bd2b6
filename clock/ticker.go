package clock

import "time"

// Ticker represents a repeating event source.  It is the analog of time.Ticker.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type systemTicker struct {
	*time.Ticker
}

func (st systemTicker) C() <-chan time.Time {
	return st.Ticker.C
}

// WrapTicker wraps a time.Ticker in a clock.Ticker.  A typical usage would be
// WrapTicker(time.NewTicker(time.Second)).
func WrapTicker(t *time.Ticker) Ticker {
	return systemTicker{t}
}
