package service

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// AutosaveScheduler debounces repeated save requests for the same design
// into at most one flush per quiet period. It is a convenience layer for
// the editing surface and sits entirely outside the persistence
// contract: nothing in the core distinguishes a debounced write from a
// direct one.
type AutosaveScheduler struct {
	delay time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
	// pending keeps the latest flush func so Flush fires the newest
	// version, not the one the timer captured.
	pending map[string]func()
	stopped bool
}

// NewAutosaveScheduler creates a scheduler with the given quiet period.
func NewAutosaveScheduler(delay time.Duration) *AutosaveScheduler {
	if delay <= 0 {
		delay = 2 * time.Second
	}
	return &AutosaveScheduler{
		delay:   delay,
		timers:  make(map[string]*time.Timer),
		pending: make(map[string]func()),
	}
}

// Schedule queues flush to run after the quiet period. A second call for
// the same design id before the period elapses resets the clock and
// replaces the queued flush.
func (s *AutosaveScheduler) Schedule(designID string, flush func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.pending[designID] = flush
	if timer, ok := s.timers[designID]; ok {
		timer.Reset(s.delay)
		return
	}
	s.timers[designID] = time.AfterFunc(s.delay, func() {
		s.fire(designID)
	})
}

// Cancel drops any queued flush for the design without running it.
func (s *AutosaveScheduler) Cancel(designID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if timer, ok := s.timers[designID]; ok {
		timer.Stop()
		delete(s.timers, designID)
	}
	delete(s.pending, designID)
}

// Flush runs the queued flush for the design immediately, if any.
func (s *AutosaveScheduler) Flush(designID string) {
	s.fire(designID)
}

// Stop cancels every queued flush and rejects new schedules.
func (s *AutosaveScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
	for id := range s.pending {
		delete(s.pending, id)
	}
	logrus.Debug("Autosave scheduler stopped")
}

func (s *AutosaveScheduler) fire(designID string) {
	s.mu.Lock()
	flush := s.pending[designID]
	delete(s.pending, designID)
	if timer, ok := s.timers[designID]; ok {
		timer.Stop()
		delete(s.timers, designID)
	}
	s.mu.Unlock()
	if flush != nil {
		flush()
	}
}
