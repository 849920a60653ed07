package projects

import (
	"math"
	"time"
)

// Counter animation timings.
const (
	CounterDuration = 2000 * time.Millisecond
	FrameInterval   = 100 * time.Millisecond
	// FrameCount is the frame at which a counter reaches its target.
	FrameCount = int(CounterDuration / FrameInterval)
)

// Stat is a headline number on the projects page.
type Stat struct {
	Label  string `yaml:"label"`
	Target int    `yaml:"target"`
	Suffix string `yaml:"suffix"`
}

// CountAt is the displayed value elapsed into a linear count from 0 to
// target, rounded down.
func CountAt(target int, elapsed, duration time.Duration) int {
	if duration <= 0 {
		return target
	}
	progress := float64(elapsed) / float64(duration)
	progress = math.Max(0, math.Min(progress, 1))
	return int(math.Floor(progress * float64(target)))
}

// Frame returns the counter value for the given frame number and whether
// the animation has reached its target.
func Frame(target, frame int) (value int, done bool) {
	frame = min(max(frame, 0), FrameCount)
	elapsed := time.Duration(frame) * FrameInterval
	return CountAt(target, elapsed, CounterDuration), elapsed >= CounterDuration
}
