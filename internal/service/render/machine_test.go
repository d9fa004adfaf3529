package render

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStateMachine_FirstTriggerWins(t *testing.T) {
	var calls atomic.Int32
	var got LoadStatus
	m := NewLoadStateMachine(func(status LoadStatus, _ Trigger) {
		calls.Add(1)
		got = status
	})

	assert.True(t, m.Transition(TriggerLoad))
	assert.False(t, m.Transition(TriggerError))
	assert.False(t, m.Transition(TriggerTimeout))

	assert.Equal(t, StatusLoaded, m.Status())
	assert.Equal(t, StatusLoaded, got)
	assert.Equal(t, int32(1), calls.Load())
}

func TestLoadStateMachine_ConcurrentTriggers(t *testing.T) {
	for range 200 {
		var calls atomic.Int32
		m := NewLoadStateMachine(func(LoadStatus, Trigger) { calls.Add(1) })

		var wins atomic.Int32
		var wg sync.WaitGroup
		for _, trig := range []Trigger{TriggerLoad, TriggerError, TriggerTimeout, TriggerLoad} {
			wg.Add(1)
			go func(trig Trigger) {
				defer wg.Done()
				if m.Transition(trig) {
					wins.Add(1)
				}
			}(trig)
		}
		wg.Wait()

		require.Equal(t, int32(1), wins.Load())
		require.Equal(t, int32(1), calls.Load())
		require.True(t, m.Status().Terminal())
	}
}

func TestLoadStateMachine_TimeoutCancelsFetch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	settled := make(chan Trigger, 1)
	m := NewLoadStateMachine(func(_ LoadStatus, trig Trigger) { settled <- trig })
	m.Arm(20*time.Millisecond, cancel)

	select {
	case trig := <-settled:
		assert.Equal(t, TriggerTimeout, trig)
	case <-time.After(time.Second):
		t.Fatal("timeout never fired")
	}

	assert.Equal(t, StatusFailed, m.Status())
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	_, ok := <-m.Done()
	assert.False(t, ok)
}

func TestLoadStateMachine_LoadStopsTimer(t *testing.T) {
	var calls atomic.Int32
	m := NewLoadStateMachine(func(LoadStatus, Trigger) { calls.Add(1) })
	_, cancel := context.WithCancel(context.Background())
	m.Arm(30*time.Millisecond, cancel)

	require.True(t, m.Transition(TriggerLoad))
	time.Sleep(60 * time.Millisecond)

	status, trig := m.Outcome()
	assert.Equal(t, StatusLoaded, status)
	assert.Equal(t, TriggerLoad, trig)
	assert.Equal(t, int32(1), calls.Load())
}

func TestLoadStateMachine_ArmAfterSettle(t *testing.T) {
	m := NewLoadStateMachine(nil)
	require.True(t, m.Transition(TriggerError))

	ctx, cancel := context.WithCancel(context.Background())
	m.Arm(time.Hour, cancel)
	assert.Error(t, ctx.Err())
}
