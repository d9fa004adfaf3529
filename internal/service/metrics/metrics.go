// Package metrics exposes Prometheus metrics for photo rendering.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/kapu/busan-tour-bot-go/internal/service/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RenderMetrics implements render.Recorder and photo.CacheRecorder.
type RenderMetrics struct {
	registry *prometheus.Registry

	photosTotal      *prometheus.CounterVec
	cacheLookups     *prometheus.CounterVec
	cardsSkipped     prometheus.Counter
	batchesTotal     prometheus.Counter
	batchDuration    prometheus.Histogram
	batchFailedRatio prometheus.Histogram
}

func NewRenderMetrics(registry *prometheus.Registry) (*RenderMetrics, error) {
	m := &RenderMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *RenderMetrics) initMetrics() {
	m.photosTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "busan_photo_loads_total",
			Help: "Photo loads by final status and trigger",
		},
		[]string{"status", "trigger"},
	)
	m.cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "busan_photo_cache_lookups_total",
			Help: "Image URL cache lookups",
		},
		[]string{"result"},
	)
	m.cardsSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "busan_cards_skipped_total",
		Help: "Cards dropped because construction failed",
	})
	m.batchesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "busan_batches_completed_total",
		Help: "Card batches whose photos all settled",
	})
	m.batchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "busan_batch_duration_seconds",
		Help:    "Time from render start until every photo settled",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
	})
	m.batchFailedRatio = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "busan_batch_failed_ratio",
		Help:    "Share of cards per batch that fell back to the icon",
		Buckets: prometheus.LinearBuckets(0, 0.1, 11),
	})
}

func (m *RenderMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.photosTotal.Describe(ch)
	m.cacheLookups.Describe(ch)
	m.cardsSkipped.Describe(ch)
	m.batchesTotal.Describe(ch)
	m.batchDuration.Describe(ch)
	m.batchFailedRatio.Describe(ch)
}

func (m *RenderMetrics) Collect(ch chan<- prometheus.Metric) {
	m.photosTotal.Collect(ch)
	m.cacheLookups.Collect(ch)
	m.cardsSkipped.Collect(ch)
	m.batchesTotal.Collect(ch)
	m.batchDuration.Collect(ch)
	m.batchFailedRatio.Collect(ch)
}

func (m *RenderMetrics) PhotoSettled(status render.LoadStatus, trigger render.Trigger) {
	m.photosTotal.WithLabelValues(status.String(), trigger.String()).Inc()
}

func (m *RenderMetrics) CardSkipped() {
	m.cardsSkipped.Inc()
}

func (m *RenderMetrics) BatchCompleted(c render.Completion) {
	m.batchesTotal.Inc()
	m.batchDuration.Observe(c.Elapsed.Seconds())
	if c.Total > 0 {
		m.batchFailedRatio.Observe(float64(c.Failed) / float64(c.Total))
	}
}

func (m *RenderMetrics) CacheHit() {
	m.cacheLookups.WithLabelValues("hit").Inc()
}

func (m *RenderMetrics) CacheMiss() {
	m.cacheLookups.WithLabelValues("miss").Inc()
}

// Server serves /metrics from a registry.
type Server struct {
	srv    *http.Server
	logger *zap.Logger
}

func NewServer(addr string, registry *prometheus.Registry, logger *zap.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

func (s *Server) Start() {
	go func() {
		s.logger.Info("Metrics server listening", zap.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Metrics server stopped", zap.Error(err))
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
