// Package schedule runs ordered (delay, action) sequences on a single
// scheduler so timed page effects never chain timers by hand.
package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/sourcegraph/conc"
)

// Clock hands out timer channels. Channels must be buffered so a clock
// never blocks on a sequence that was cancelled.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

// RealClock is backed by the time package.
func RealClock() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now() }

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Step is one entry of a sequence: wait Delay after the previous step,
// then run Action.
type Step struct {
	Delay  time.Duration
	Action func()
}

// After is shorthand for building a Step.
func After(d time.Duration, action func()) Step {
	return Step{Delay: d, Action: action}
}

// Scheduler owns every goroutine started for a sequence. Close cancels
// pending steps and waits for running ones.
type Scheduler struct {
	clock  Clock
	ctx    context.Context
	cancel context.CancelFunc
	wg     conc.WaitGroup
}

// New returns a scheduler on clock, or on the real clock when nil.
func New(clock Clock) *Scheduler {
	if clock == nil {
		clock = RealClock()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{clock: clock, ctx: ctx, cancel: cancel}
}

// Clock returns the clock the scheduler runs on.
func (s *Scheduler) Clock() Clock { return s.clock }

// Sequence is a handle on a running Run call.
type Sequence struct {
	cancelOnce sync.Once
	cancelled  chan struct{}
	done       chan struct{}
}

// Cancel drops every step that has not started yet.
func (q *Sequence) Cancel() {
	q.cancelOnce.Do(func() { close(q.cancelled) })
}

// Done is closed once the sequence finished or was cancelled.
func (q *Sequence) Done() <-chan struct{} { return q.done }

// Run executes steps in order on one goroutine. Timers for every step are
// armed before Run returns, at the cumulative offset of each step.
func (s *Scheduler) Run(steps ...Step) *Sequence {
	q := &Sequence{
		cancelled: make(chan struct{}),
		done:      make(chan struct{}),
	}

	timers := make([]<-chan time.Time, len(steps))
	var offset time.Duration
	for i, step := range steps {
		if step.Delay > 0 {
			offset += step.Delay
		}
		timers[i] = s.clock.After(offset)
	}

	s.wg.Go(func() {
		defer close(q.done)
		for i, step := range steps {
			select {
			case <-timers[i]:
			case <-q.cancelled:
				return
			case <-s.ctx.Done():
				return
			}
			if step.Action != nil {
				step.Action()
			}
		}
	})
	return q
}

// Every runs action each interval until the scheduler is closed.
func (s *Scheduler) Every(interval time.Duration, action func()) {
	s.wg.Go(func() {
		for {
			select {
			case <-s.clock.After(interval):
				action()
			case <-s.ctx.Done():
				return
			}
		}
	})
}

// Close cancels pending steps and waits for in-flight actions.
func (s *Scheduler) Close() {
	s.cancel()
	s.wg.Wait()
}
