package render

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Completion is the single observation emitted when a batch settles.
type Completion struct {
	Generation uint64
	Total      int
	Loaded     int
	Failed     int
	Elapsed    time.Duration
}

type StatsSnapshot struct {
	Generation uint64
	Total      int
	Loaded     int
	Failed     int
	Sealed     bool
	Completed  bool
}

var closedDone = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// LoadingStats counts terminal outcomes for the current batch generation.
// Increments carrying an older generation are dropped. A batch completes once
// it is sealed (no more cards will be added) and loaded+failed == total > 0.
type LoadingStats struct {
	mu         sync.Mutex
	generation uint64
	total      int
	loaded     int
	failed     int
	sealed     bool
	completed  bool
	started    time.Time
	done       chan struct{}

	logger     *zap.Logger
	onComplete func(Completion)
}

func NewLoadingStats(logger *zap.Logger, onComplete func(Completion)) *LoadingStats {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoadingStats{
		logger:     logger,
		onComplete: onComplete,
		done:       closedDone,
	}
}

// Reset starts a new generation with zeroed counters. Waiters on the previous
// generation are released.
func (s *LoadingStats) Reset() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.releaseLocked()
	s.generation++
	s.total, s.loaded, s.failed = 0, 0, 0
	s.sealed, s.completed = false, false
	s.started = time.Now()
	s.done = make(chan struct{})
	return s.generation
}

func (s *LoadingStats) IncrementTotal(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.acceptsLocked(gen) || s.sealed {
		return false
	}
	s.total++
	return true
}

func (s *LoadingStats) IncrementLoaded(gen uint64) bool {
	return s.settle(gen, true)
}

func (s *LoadingStats) IncrementFailed(gen uint64) bool {
	return s.settle(gen, false)
}

// Seal marks the batch as fully constructed. An empty batch completes
// silently.
func (s *LoadingStats) Seal(gen uint64) {
	s.mu.Lock()
	if !s.acceptsLocked(gen) || s.sealed {
		s.mu.Unlock()
		return
	}
	s.sealed = true
	if s.total == 0 {
		s.completed = true
		s.releaseLocked()
		s.mu.Unlock()
		return
	}
	obs, done, fire := s.checkCompleteLocked()
	s.mu.Unlock()

	if fire {
		s.emit(obs, done)
	}
}

func (s *LoadingStats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StatsSnapshot{
		Generation: s.generation,
		Total:      s.total,
		Loaded:     s.loaded,
		Failed:     s.failed,
		Sealed:     s.sealed,
		Completed:  s.completed,
	}
}

// Done is closed when gen completes or is superseded.
func (s *LoadingStats) Done(gen uint64) <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return closedDone
	}
	return s.done
}

func (s *LoadingStats) settle(gen uint64, success bool) bool {
	s.mu.Lock()
	if !s.acceptsLocked(gen) || s.loaded+s.failed >= s.total {
		s.mu.Unlock()
		return false
	}
	if success {
		s.loaded++
	} else {
		s.failed++
	}
	obs, done, fire := s.checkCompleteLocked()
	s.mu.Unlock()

	if fire {
		s.emit(obs, done)
	}
	return true
}

func (s *LoadingStats) acceptsLocked(gen uint64) bool {
	return gen == s.generation && gen != 0 && !s.completed
}

// checkCompleteLocked marks the batch complete. The returned channel is
// closed by emit once observers have run.
func (s *LoadingStats) checkCompleteLocked() (Completion, chan struct{}, bool) {
	if !s.sealed || s.completed || s.total == 0 || s.loaded+s.failed != s.total {
		return Completion{}, nil, false
	}
	s.completed = true
	return Completion{
		Generation: s.generation,
		Total:      s.total,
		Loaded:     s.loaded,
		Failed:     s.failed,
		Elapsed:    time.Since(s.started),
	}, s.done, true
}

func (s *LoadingStats) releaseLocked() {
	closeOnce(s.done)
}

func closeOnce(ch chan struct{}) {
	select {
	case <-ch:
	default:
		close(ch)
	}
}

func (s *LoadingStats) emit(c Completion, done chan struct{}) {
	s.logger.Info("이미지 로딩 완료",
		zap.String("summary", FormatCompletion(c)),
		zap.Uint64("generation", c.Generation),
		zap.Int("loaded", c.Loaded),
		zap.Int("failed", c.Failed),
		zap.Int("total", c.Total),
		zap.Duration("elapsed", c.Elapsed),
	)
	if s.onComplete != nil {
		s.onComplete(c)
	}

	s.mu.Lock()
	closeOnce(done)
	s.mu.Unlock()
}

// FormatCompletion renders "loaded/total 성공, failed/total 실패".
func FormatCompletion(c Completion) string {
	return fmt.Sprintf("%d/%d 성공, %d/%d 실패", c.Loaded, c.Total, c.Failed, c.Total)
}
