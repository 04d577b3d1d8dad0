package game

import (
	"sync"
	"time"
)

// Scheduler calls fn periodically until stopped
type Scheduler interface {
	Start(interval time.Duration, fn func())
	Stop()
}

// TickerScheduler drives ticks from a time.Ticker goroutine.
// Stop never waits for the goroutine, so it is safe to call from inside fn;
// a callback already past the ticker when Stop runs is discarded by the game.
type TickerScheduler struct {
	mu   sync.Mutex
	stop chan struct{}
}

func NewTickerScheduler() *TickerScheduler {
	return &TickerScheduler{}
}

func (s *TickerScheduler) Start(interval time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop != nil {
		close(s.stop)
	}
	stop := make(chan struct{})
	s.stop = stop

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				select {
				case <-stop:
					return
				default:
				}
				fn()
			}
		}
	}()
}

func (s *TickerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
}

// Running reports whether a ticker goroutine is active
func (s *TickerScheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop != nil
}

// ManualScheduler fires only when told to. Used by tests and replays to
// step a game without real time passing.
type ManualScheduler struct {
	mu       sync.Mutex
	fn       func()
	interval time.Duration
	starts   int
	stops    int
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) Start(interval time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fn = fn
	s.interval = interval
	s.starts++
}

func (s *ManualScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fn != nil {
		s.stops++
	}
	s.fn = nil
}

// Fire runs the callback once. Returns false when stopped.
func (s *ManualScheduler) Fire() bool {
	s.mu.Lock()
	fn := s.fn
	s.mu.Unlock()

	if fn == nil {
		return false
	}
	fn()
	return true
}

// FireN fires up to n times, stopping early if the scheduler is stopped
func (s *ManualScheduler) FireN(n int) int {
	fired := 0
	for i := 0; i < n; i++ {
		if !s.Fire() {
			break
		}
		fired++
	}
	return fired
}

// Callback returns the currently scheduled function, or nil
func (s *ManualScheduler) Callback() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fn
}

func (s *ManualScheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fn != nil
}

func (s *ManualScheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// Counts returns how many times Start and Stop took effect
func (s *ManualScheduler) Counts() (starts, stops int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.starts, s.stops
}
