// Package clock abstracts the passage of time, so that code which waits
// between remote calls can be tested without real waits.
//
// Production code uses Real(). Tests use NewFake(), whose After advances
// the fake time immediately and records how long the caller asked to wait.
package clock

import (
	"sync"
	"time"
)

type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After returns a channel that receives the current time after
	// duration d elapses. Equivalent to time.After.
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func Real() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// Fake is a deterministic Clock. Every call to After moves the fake time
// forward by the requested duration and returns an already fired channel.
type Fake struct {
	lock  sync.Mutex
	now   time.Time
	waits []time.Duration
}

func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.now
}

func (f *Fake) After(d time.Duration) <-chan time.Time {
	f.lock.Lock()
	defer f.lock.Unlock()

	if d > 0 {
		f.now = f.now.Add(d)
	}
	f.waits = append(f.waits, d)

	ch := make(chan time.Time, 1)
	ch <- f.now
	return ch
}

// Advance moves the fake time forward without counting as a wait.
func (f *Fake) Advance(d time.Duration) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.now = f.now.Add(d)
}

// Waits returns every duration passed to After, in call order.
func (f *Fake) Waits() []time.Duration {
	f.lock.Lock()
	defer f.lock.Unlock()
	waits := make([]time.Duration, len(f.waits))
	copy(waits, f.waits)
	return waits
}
