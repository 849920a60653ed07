package schedule

import (
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestRunExecutesStepsInOrder(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	s := New(clock)
	defer s.Close()

	var mu sync.Mutex
	var got []string
	record := func(name string) func() {
		return func() {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, name)
		}
	}

	seq := s.Run(
		After(100*time.Millisecond, record("first")),
		After(200*time.Millisecond, record("second")),
	)

	if clock.Pending() != 2 {
		t.Fatalf("expected 2 armed timers, got %d", clock.Pending())
	}

	clock.Advance(300 * time.Millisecond)
	<-seq.Done()

	if diff := cmp.Diff([]string{"first", "second"}, got); diff != "" {
		t.Fatalf("steps mismatch (-want +got):\n%s", diff)
	}
}

func TestRunStopsAtCancel(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	s := New(clock)
	defer s.Close()

	ran := make(chan struct{}, 1)
	seq := s.Run(After(time.Second, func() { ran <- struct{}{} }))
	seq.Cancel()
	<-seq.Done()

	clock.Advance(time.Second)
	select {
	case <-ran:
		t.Fatal("cancelled step ran")
	default:
	}
}

func TestCloseDropsPendingSteps(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	s := New(clock)

	ran := false
	seq := s.Run(After(time.Minute, func() { ran = true }))
	s.Close()
	<-seq.Done()

	if ran {
		t.Fatal("step ran after Close")
	}
}

func TestZeroDelayFiresImmediately(t *testing.T) {
	s := New(NewManualClock(time.Unix(0, 0)))
	defer s.Close()

	done := make(chan struct{})
	seq := s.Run(After(0, func() { close(done) }))
	<-seq.Done()

	select {
	case <-done:
	default:
		t.Fatal("zero-delay step did not run")
	}
}
