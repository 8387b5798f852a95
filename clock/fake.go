package clock

import (
	"sync"
	"time"
)

// Fake is a virtual clock for tests. Time only moves when Advance is
// called; due timers fire synchronously, in deadline order, before Advance
// returns. Callbacks may schedule further timers.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	timers  []*fakeTimer
	tickers []*fakeTicker
}

func NewFake() *Fake {
	return &Fake{now: time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &fakeTimer{clk: f, deadline: f.now.Add(d), fn: fn}
	f.timers = append(f.timers, t)
	return t
}

func (f *Fake) NewTicker(d time.Duration) Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	tk := &fakeTicker{clk: f, interval: d, next: f.now.Add(d), ch: make(chan time.Time, 64)}
	f.tickers = append(f.tickers, tk)
	return tk
}

// Advance moves the clock forward by d, firing every timer and ticker tick
// that falls due along the way.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)

	for {
		t, due := f.nextDueLocked(target)
		if t == nil && due.IsZero() {
			break
		}
		f.now = due
		if t != nil {
			t.stopped = true
			fn := t.fn
			f.removeTimerLocked(t)
			// run outside the lock so callbacks can schedule new timers
			f.mu.Unlock()
			fn()
			f.mu.Lock()
		}
	}

	f.now = target
	f.mu.Unlock()
}

// nextDueLocked finds the earliest pending event at or before target. It
// returns the due timer (nil if the event is a ticker tick, which it
// delivers itself) and the event time, or (nil, zero) when nothing is due.
func (f *Fake) nextDueLocked(target time.Time) (*fakeTimer, time.Time) {
	var earliest time.Time
	var earliestTimer *fakeTimer

	for _, t := range f.timers {
		if t.stopped || t.deadline.After(target) {
			continue
		}
		if earliest.IsZero() || t.deadline.Before(earliest) {
			earliest = t.deadline
			earliestTimer = t
		}
	}
	for _, tk := range f.tickers {
		if tk.stopped || tk.next.After(target) {
			continue
		}
		if earliest.IsZero() || tk.next.Before(earliest) {
			earliest = tk.next
			earliestTimer = nil
		}
	}
	if earliest.IsZero() {
		return nil, time.Time{}
	}
	if earliestTimer == nil {
		// deliver the tick and reschedule
		for _, tk := range f.tickers {
			if !tk.stopped && tk.next.Equal(earliest) {
				select {
				case tk.ch <- earliest:
				default:
				}
				tk.next = tk.next.Add(tk.interval)
			}
		}
	}
	return earliestTimer, earliest
}

func (f *Fake) removeTimerLocked(t *fakeTimer) {
	for i, cur := range f.timers {
		if cur == t {
			f.timers = append(f.timers[:i], f.timers[i+1:]...)
			return
		}
	}
}

type fakeTimer struct {
	clk      *Fake
	deadline time.Time
	fn       func()
	stopped  bool
}

func (t *fakeTimer) Stop() bool {
	t.clk.mu.Lock()
	defer t.clk.mu.Unlock()
	wasPending := !t.stopped
	t.stopped = true
	return wasPending
}

type fakeTicker struct {
	clk      *Fake
	interval time.Duration
	next     time.Time
	ch       chan time.Time
	stopped  bool
}

func (t *fakeTicker) Chan() <-chan time.Time { return t.ch }

func (t *fakeTicker) Stop() {
	t.clk.mu.Lock()
	defer t.clk.mu.Unlock()
	t.stopped = true
}
