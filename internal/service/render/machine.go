package render

import (
	"context"
	"sync"
	"time"
)

// LoadStatus is the photo state of a single card.
type LoadStatus int

const (
	StatusPending LoadStatus = iota
	StatusLoaded
	StatusFailed
)

func (s LoadStatus) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "pending"
	}
}

func (s LoadStatus) Terminal() bool {
	return s != StatusPending
}

type Trigger int

const (
	TriggerLoad Trigger = iota
	TriggerError
	TriggerTimeout
)

func (t Trigger) String() string {
	switch t {
	case TriggerLoad:
		return "load"
	case TriggerError:
		return "error"
	default:
		return "timeout"
	}
}

// TerminalFunc is called exactly once, outside the machine's lock.
type TerminalFunc func(status LoadStatus, trigger Trigger)

// LoadStateMachine races a photo load against a timeout. The first trigger
// moves it out of Pending; every later trigger is a no-op.
type LoadStateMachine struct {
	mu       sync.Mutex
	status   LoadStatus
	trigger  Trigger
	timer    *time.Timer
	cancel   context.CancelFunc
	settled  time.Time
	done     chan struct{}
	terminal TerminalFunc
}

func NewLoadStateMachine(onTerminal TerminalFunc) *LoadStateMachine {
	return &LoadStateMachine{
		status:   StatusPending,
		done:     make(chan struct{}),
		terminal: onTerminal,
	}
}

// Arm starts the timeout and remembers the cancel func of the paired fetch.
// Both are released on the terminal transition. Arming a settled machine just
// cancels the fetch.
func (m *LoadStateMachine) Arm(timeout time.Duration, cancel context.CancelFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status.Terminal() {
		if cancel != nil {
			cancel()
		}
		return
	}
	m.cancel = cancel
	m.timer = time.AfterFunc(timeout, func() {
		m.Transition(TriggerTimeout)
	})
}

// Transition applies trigger and reports whether it caused the terminal
// transition.
func (m *LoadStateMachine) Transition(trigger Trigger) bool {
	m.mu.Lock()
	if m.status.Terminal() {
		m.mu.Unlock()
		return false
	}

	if trigger == TriggerLoad {
		m.status = StatusLoaded
	} else {
		m.status = StatusFailed
	}
	m.trigger = trigger
	m.settled = time.Now()

	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	close(m.done)

	status, notify := m.status, m.terminal
	m.mu.Unlock()

	if notify != nil {
		notify(status, trigger)
	}
	return true
}

func (m *LoadStateMachine) Status() LoadStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Outcome returns the status and the trigger that settled it. The trigger is
// meaningless while the status is Pending.
func (m *LoadStateMachine) Outcome() (LoadStatus, Trigger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status, m.trigger
}

// Done is closed on the terminal transition.
func (m *LoadStateMachine) Done() <-chan struct{} {
	return m.done
}
