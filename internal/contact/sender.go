package contact

import (
	"context"
	"time"

	"github.com/Zachkp/portfolio/internal/schedule"
)

// Message is what a successful submit would deliver.
type Message struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

// Sender delivers a message. The site only ships MockSender.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, msg Message) error

func (f SenderFunc) Send(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}

// MockSender waits Delay to stand in for network latency and then
// succeeds, or fails with ErrSimulatedFailure when Fail is set.
type MockSender struct {
	Clock schedule.Clock
	Delay time.Duration
	Fail  bool
}

func (m MockSender) Send(ctx context.Context, _ Message) error {
	if m.Delay > 0 {
		clock := m.Clock
		if clock == nil {
			clock = schedule.RealClock()
		}
		select {
		case <-clock.After(m.Delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if m.Fail {
		return ErrSimulatedFailure
	}
	return nil
}
