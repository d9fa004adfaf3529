package util

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "CLOSED"
	CircuitStateOpen     CircuitState = "OPEN"
	CircuitStateHalfOpen CircuitState = "HALF_OPEN"
)

func (s CircuitState) String() string {
	return string(s)
}

// HealthCheckFunc probes the guarded dependency while the circuit is open.
type HealthCheckFunc func(ctx context.Context) bool

type CircuitBreakerConfig struct {
	Name                string
	FailureThreshold    int
	ResetTimeout        time.Duration
	HealthCheckInterval time.Duration
	HealthCheckTimeout  time.Duration
}

// CircuitBreaker stops calling a failing dependency after FailureThreshold
// consecutive failures. While open it either waits ResetTimeout or, with a
// health check, probes every HealthCheckInterval before letting one call
// through (half-open).
type CircuitBreaker struct {
	cfg CircuitBreakerConfig

	mu                  sync.Mutex
	state               CircuitState
	failureCount        int
	nextRetryTime       time.Time
	nextHealthCheckTime time.Time
	isHealthChecking    bool

	healthCheck HealthCheckFunc
	logger      *zap.Logger
}

func NewCircuitBreaker(cfg CircuitBreakerConfig, healthCheck HealthCheckFunc, logger *zap.Logger) *CircuitBreaker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 1
	}
	if cfg.HealthCheckTimeout <= 0 {
		cfg.HealthCheckTimeout = 5 * time.Second
	}
	return &CircuitBreaker{
		cfg:         cfg,
		state:       CircuitStateClosed,
		healthCheck: healthCheck,
		logger:      logger.With(zap.String("breaker", cfg.Name)),
	}
}

func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == CircuitStateOpen {
		now := time.Now()
		switch {
		case cb.healthCheck != nil && now.After(cb.nextHealthCheckTime) && !cb.isHealthChecking:
			cb.isHealthChecking = true
			go cb.runHealthCheck()
		case cb.healthCheck == nil && now.After(cb.nextRetryTime):
			cb.transitionTo(CircuitStateHalfOpen)
		}
	}
	return cb.state
}

func (cb *CircuitBreaker) CanExecute() bool {
	return cb.State() != CircuitStateOpen
}

// Execute runs fn unless the circuit is open and records its outcome.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if !cb.CanExecute() {
		return ErrCircuitOpen
	}
	if err := fn(); err != nil {
		cb.RecordFailure()
		return err
	}
	cb.RecordSuccess()
	return nil
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == CircuitStateHalfOpen {
		cb.logger.Info("Circuit recovered")
		cb.failureCount = 0
		cb.transitionTo(CircuitStateClosed)
		return
	}
	cb.failureCount = 0
}

func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount++
	cb.logger.Warn("Circuit failure recorded",
		zap.Int("count", cb.failureCount),
		zap.Int("threshold", cb.cfg.FailureThreshold),
	)

	if cb.state == CircuitStateHalfOpen || cb.failureCount >= cb.cfg.FailureThreshold {
		now := time.Now()
		cb.nextRetryTime = now.Add(cb.cfg.ResetTimeout)
		cb.nextHealthCheckTime = now.Add(cb.cfg.HealthCheckInterval)
		cb.transitionTo(CircuitStateOpen)
	}
}

func (cb *CircuitBreaker) runHealthCheck() {
	ctx, cancel := context.WithTimeout(context.Background(), cb.cfg.HealthCheckTimeout)
	defer cancel()

	healthy := cb.healthCheck(ctx)

	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.isHealthChecking = false
	if cb.state != CircuitStateOpen {
		return
	}
	if healthy {
		cb.transitionTo(CircuitStateHalfOpen)
		return
	}
	cb.logger.Warn("Circuit health check failed")
	cb.nextHealthCheckTime = time.Now().Add(cb.cfg.HealthCheckInterval)
}

// transitionTo must be called with mu held.
func (cb *CircuitBreaker) transitionTo(next CircuitState) {
	prev := cb.state
	cb.state = next
	if prev == next {
		return
	}
	cb.logger.Info("Circuit state changed",
		zap.String("from", prev.String()),
		zap.String("to", next.String()),
		zap.Int("failure_count", cb.failureCount),
	)
}

func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount = 0
	cb.nextRetryTime = time.Time{}
	cb.transitionTo(CircuitStateClosed)
}

type CircuitBreakerStatus struct {
	State         CircuitState
	FailureCount  int
	NextRetryTime *time.Time
}

func (cb *CircuitBreaker) Status() CircuitBreakerStatus {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	status := CircuitBreakerStatus{State: cb.state, FailureCount: cb.failureCount}
	if cb.state == CircuitStateOpen {
		next := cb.nextRetryTime
		status.NextRetryTime = &next
	}
	return status
}
