package app

import (
	"context"
	"fmt"

	"github.com/kapu/busan-tour-bot-go/internal/adapter"
	"github.com/kapu/busan-tour-bot-go/internal/bot"
	"github.com/kapu/busan-tour-bot-go/internal/config"
	"github.com/kapu/busan-tour-bot-go/internal/constants"
	"github.com/kapu/busan-tour-bot-go/internal/domain"
	"github.com/kapu/busan-tour-bot-go/internal/iris"
	"github.com/kapu/busan-tour-bot-go/internal/service/cache"
	"github.com/kapu/busan-tour-bot-go/internal/service/database"
	"github.com/kapu/busan-tour-bot-go/internal/service/metrics"
	"github.com/kapu/busan-tour-bot-go/internal/service/photo"
	"github.com/kapu/busan-tour-bot-go/internal/service/recommend"
	"github.com/kapu/busan-tour-bot-go/internal/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// Container bundles assembled services for constructing runtime components like Bot.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	botDeps *bot.Dependencies
	closers []func()
}

// NewBot instantiates a bot using the pre-built dependency graph.
func (c *Container) NewBot() (*bot.Bot, error) {
	if c == nil || c.botDeps == nil {
		return nil, fmt.Errorf("bot dependencies not initialized")
	}
	return bot.NewBot(c.botDeps)
}

// Close releases Redis and Postgres connections in reverse order of creation.
func (c *Container) Close() {
	if c == nil {
		return
	}
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// Build assembles all infrastructure services. Redis and Postgres are optional:
// without Redis photo URLs stay in process memory, without Postgres
// recommendations come from the embedded dataset.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	// Static data
	recData, err := domain.LoadRecommendationData()
	if err != nil {
		return nil, fmt.Errorf("failed to load recommendations: %w", err)
	}
	texts, err := domain.LoadTexts()
	if err != nil {
		return nil, fmt.Errorf("failed to load texts: %w", err)
	}
	details, err := domain.LoadAttractionDetails()
	if err != nil {
		return nil, fmt.Errorf("failed to load attraction details: %w", err)
	}

	// Messaging primitives
	irisClient := iris.NewClient(cfg.Iris.BaseURL, logger)
	irisWS := iris.NewWebSocket(cfg.Iris.WSURL,
		constants.WebSocketConfig.MaxReconnectAttempts,
		constants.WebSocketConfig.ReconnectDelay,
		logger)
	messageAdapter := adapter.NewMessageAdapter(cfg.Bot.Prefix)
	formatter := adapter.NewResponseFormatter(cfg.Bot.Prefix, texts)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	renderMetrics, err := metrics.NewRenderMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register render metrics: %w", err)
	}

	// Photo URL cache, optionally backed by Redis
	cacheOpts := []photo.CacheOption{
		photo.WithBaseURL(cfg.Photo.BaseURL),
		photo.WithRecorder(renderMetrics),
	}
	if cfg.Redis.Enabled() {
		cacheSvc, cacheErr := cache.NewCacheService(cache.CacheConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if cacheErr != nil {
			return nil, fmt.Errorf("failed to create cache service: %w", cacheErr)
		}
		closers = append(closers, func() {
			_ = cacheSvc.Close()
		})
		cacheOpts = append(cacheOpts, photo.WithStore(photo.NewRedisURLStore(cacheSvc)))
	} else {
		logger.Info("Redis not configured, photo URLs cached in memory only")
	}
	imageCache := photo.NewImageCache(logger, cacheOpts...)

	// Recommendation source, optionally served from Postgres
	var source recommend.Source = recommend.NewStaticSource(recData)
	if cfg.Postgres.Enabled() {
		postgresSvc, dbErr := database.NewPostgresService(database.PostgresConfig{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			Database: cfg.Postgres.Database,
		}, logger)
		if dbErr != nil {
			return nil, fmt.Errorf("failed to create postgres service: %w", dbErr)
		}
		closers = append(closers, func() {
			_ = postgresSvc.Close()
		})
		if err = postgresSvc.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("failed to ensure schema: %w", err)
		}

		breaker := util.NewCircuitBreaker(util.CircuitBreakerConfig{
			Name:                "postgres",
			FailureThreshold:    constants.CircuitBreakerConfig.FailureThreshold,
			ResetTimeout:        constants.CircuitBreakerConfig.ResetTimeout,
			HealthCheckInterval: constants.CircuitBreakerConfig.HealthCheckInterval,
			HealthCheckTimeout:  constants.CircuitBreakerConfig.HealthCheckTimeout,
		}, func(ctx context.Context) bool {
			return postgresSvc.Ping(ctx) == nil
		}, logger)

		source = recommend.NewFallbackSource(recommend.NewRepository(postgresSvc, logger), source, breaker, logger)
		logger.Info("Serving recommendations from PostgreSQL with embedded fallback")
	}

	deps := &bot.Dependencies{
		Config:          cfg,
		Logger:          logger,
		IrisClient:      irisClient,
		IrisWebSocket:   irisWS,
		MessageAdapter:  messageAdapter,
		Formatter:       formatter,
		Recommendations: source,
		Details:         details,
		Photos:          imageCache,
		PhotoLoader:     photo.NewHTTPLoader(nil),
		RenderRecorder:  renderMetrics,
	}
	if cfg.Metrics.Addr != "" {
		deps.MetricsServer = metrics.NewServer(cfg.Metrics.Addr, registry, logger)
	}

	return &Container{
		Config:  cfg,
		Logger:  logger,
		botDeps: deps,
		closers: closers,
	}, nil
}
