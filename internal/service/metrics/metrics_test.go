package metrics

import (
	"testing"
	"time"

	"github.com/kapu/busan-tour-bot-go/internal/service/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMetrics(t *testing.T) {
	m, err := NewRenderMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	m.PhotoSettled(render.StatusLoaded, render.TriggerLoad)
	m.PhotoSettled(render.StatusFailed, render.TriggerTimeout)
	m.PhotoSettled(render.StatusFailed, render.TriggerTimeout)
	m.CacheHit()
	m.CacheMiss()
	m.CacheMiss()
	m.CardSkipped()
	m.BatchCompleted(render.Completion{Total: 4, Loaded: 3, Failed: 1, Elapsed: 120 * time.Millisecond})

	assert.InDelta(t, 1, testutil.ToFloat64(m.photosTotal.WithLabelValues("loaded", "load")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.photosTotal.WithLabelValues("failed", "timeout")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.cacheLookups.WithLabelValues("hit")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.cacheLookups.WithLabelValues("miss")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.cardsSkipped), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.batchesTotal), 0)
}

func TestRenderMetrics_DoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewRenderMetrics(reg)
	require.NoError(t, err)
	_, err = NewRenderMetrics(reg)
	assert.Error(t, err)
}
