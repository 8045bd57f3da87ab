package engine

import (
	"sync"
	"time"
)

// Task is a handle to a scheduled one-shot callback.
type Task interface {
	// Stop cancels the task. It reports false if the task already ran or
	// was already stopped.
	Stop() bool
}

// Scheduler runs a callback once after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Task
}

// WallClock schedules with time.AfterFunc. Callbacks run on their own goroutine.
var WallClock Scheduler = wallClock{}

type wallClock struct{}

func (wallClock) AfterFunc(d time.Duration, fn func()) Task {
	return time.AfterFunc(d, fn)
}

// ManualScheduler queues callbacks until the caller fires them. Delays are
// recorded but never waited on, so tests decide exactly when an enemy turn
// happens.
type ManualScheduler struct {
	mu    sync.Mutex
	queue []*manualTask
}

type manualTask struct {
	s     *ManualScheduler
	delay time.Duration
	fn    func()
	done  bool
}

// NewManualScheduler returns an empty ManualScheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc queues fn.
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTask{s: s, delay: d, fn: fn}
	s.queue = append(s.queue, t)
	return t
}

// Pending returns the number of queued, not yet run or stopped, tasks.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.queue {
		if !t.done {
			n++
		}
	}
	return n
}

// Delays returns the delays of pending tasks, in scheduling order.
func (s *ManualScheduler) Delays() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []time.Duration
	for _, t := range s.queue {
		if !t.done {
			out = append(out, t.delay)
		}
	}
	return out
}

// RunPending runs every task queued so far on the calling goroutine and
// returns how many ran. Tasks scheduled by those callbacks stay queued.
func (s *ManualScheduler) RunPending() int {
	s.mu.Lock()
	batch := s.queue
	s.queue = nil
	s.mu.Unlock()

	ran := 0
	for _, t := range batch {
		s.mu.Lock()
		skip := t.done
		t.done = true
		s.mu.Unlock()
		if skip {
			continue
		}
		t.fn()
		ran++
	}
	return ran
}

func (t *manualTask) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}
