package clock

import "time"

// Clock abstracts the timer surface used by the verification pipelines and
// the tracking job, so tests can advance time deterministically instead of
// sleeping through real delays.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
	NewTicker(d time.Duration) Ticker
}

// Timer is a scheduled one-shot callback
type Timer interface {
	Stop() bool
}

// Ticker delivers periodic ticks on a channel
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}

// Real is the wall-clock implementation backed by the time package
type Real struct{}

func NewReal() *Real { return &Real{} }

func (*Real) Now() time.Time { return time.Now() }

func (*Real) AfterFunc(d time.Duration, f func()) Timer {
	return realTimer{time.AfterFunc(d, f)}
}

func (*Real) NewTicker(d time.Duration) Ticker {
	return realTicker{time.NewTicker(d)}
}

type realTimer struct{ t *time.Timer }

func (rt realTimer) Stop() bool { return rt.t.Stop() }

type realTicker struct{ t *time.Ticker }

func (rt realTicker) Chan() <-chan time.Time { return rt.t.C }
func (rt realTicker) Stop()                  { rt.t.Stop() }
