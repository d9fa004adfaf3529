package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kapu/busan-tour-bot-go/internal/adapter"
	"github.com/kapu/busan-tour-bot-go/internal/command"
	"github.com/kapu/busan-tour-bot-go/internal/config"
	"github.com/kapu/busan-tour-bot-go/internal/constants"
	"github.com/kapu/busan-tour-bot-go/internal/domain"
	"github.com/kapu/busan-tour-bot-go/internal/iris"
	"github.com/kapu/busan-tour-bot-go/internal/service/recommend"
	"github.com/kapu/busan-tour-bot-go/internal/service/render"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

const (
	maxConcurrentCommands = 32
	sendTimeout           = 10 * time.Second
)

// MessageStream is the inbound side of Iris.
type MessageStream interface {
	Connect(ctx context.Context) error
	OnMessage(callback iris.MessageCallback) func()
	Disconnect() error
}

// MetricsServer is started with the bot and stopped on shutdown.
type MetricsServer interface {
	Start()
	Shutdown(ctx context.Context) error
}

type Dependencies struct {
	Config          *config.Config
	Logger          *zap.Logger
	IrisClient      iris.Sender
	IrisWebSocket   MessageStream
	MessageAdapter  *adapter.MessageAdapter
	Formatter       *adapter.ResponseFormatter
	Recommendations recommend.Source
	Details         *domain.AttractionDetails
	Photos          render.URLResolver
	PhotoLoader     render.Loader
	RenderRecorder  render.Recorder
	MetricsServer   MetricsServer
}

type Bot struct {
	cfg        *config.Config
	logger     *zap.Logger
	sender     iris.Sender
	stream     MessageStream
	adapter    *adapter.MessageAdapter
	rooms      *roomRenderer
	dispatcher command.Dispatcher
	registry   *command.Registry
	metrics    MetricsServer

	handlers *pool.Pool
	slots    chan struct{}

	mu          sync.RWMutex
	stopped     bool
	unsubscribe func()
	shutdown    sync.Once
}

func NewBot(deps *Dependencies) (*Bot, error) {
	if deps == nil {
		return nil, fmt.Errorf("bot dependencies must not be nil")
	}
	if deps.Config == nil || deps.IrisClient == nil || deps.IrisWebSocket == nil {
		return nil, fmt.Errorf("bot requires config and iris client/websocket")
	}
	if deps.MessageAdapter == nil || deps.Formatter == nil || deps.Recommendations == nil {
		return nil, fmt.Errorf("bot requires message adapter, formatter and recommendation source")
	}
	if deps.Photos == nil || deps.PhotoLoader == nil {
		return nil, fmt.Errorf("bot requires photo resolver and loader")
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []render.PipelineOption{
		render.WithConfig(render.PipelineConfig{
			Timeout:     deps.Config.Photo.Timeout,
			Concurrency: deps.Config.Photo.Concurrency,
		}),
	}
	if deps.RenderRecorder != nil {
		opts = append(opts, render.WithRecorder(deps.RenderRecorder))
	}

	b := &Bot{
		cfg:      deps.Config,
		logger:   logger,
		sender:   deps.IrisClient,
		stream:   deps.IrisWebSocket,
		adapter:  deps.MessageAdapter,
		rooms:    newRoomRenderer(deps.Photos, deps.PhotoLoader, logger, opts...),
		registry: command.NewRegistry(),
		metrics:  deps.MetricsServer,
		handlers: pool.New().WithMaxGoroutines(maxConcurrentCommands),
		slots:    make(chan struct{}, maxConcurrentCommands),
	}

	cmdDeps := &command.Dependencies{
		Recommendations: deps.Recommendations,
		Details:         deps.Details,
		Renderer:        b.rooms,
		Sessions:        command.NewSessionStore(0),
		Formatter:       deps.Formatter,
		SendMessage:     b.sendMessage,
		DefaultLocale:   deps.Config.Bot.DefaultLocale,
		WaitForPhotos:   deps.Config.Bot.WaitForPhotos,
		PhotoWait:       deps.Config.Photo.Timeout + constants.Render.WaitGrace,
		Logger:          logger,
	}
	command.RegisterAll(b.registry, cmdDeps)
	b.dispatcher = command.NewSequentialDispatcher(b.registry, command.DefaultNormalize, logger)

	logger.Info("Bot initialized",
		zap.Strings("commands", b.registry.Names()),
		zap.Strings("rooms", deps.Config.Kakao.Rooms),
		zap.Bool("wait_for_photos", deps.Config.Bot.WaitForPhotos),
	)
	return b, nil
}

// Start subscribes to Iris and blocks until ctx ends. A failed first dial is
// logged; the WebSocket keeps retrying in the background.
func (b *Bot) Start(ctx context.Context) error {
	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		return fmt.Errorf("bot already shut down")
	}
	b.unsubscribe = b.stream.OnMessage(b.onMessage)
	b.mu.Unlock()

	if b.metrics != nil {
		b.metrics.Start()
	}

	if err := b.stream.Connect(ctx); err != nil {
		b.logger.Warn("Initial Iris connection failed, retrying in background", zap.Error(err))
	}

	b.logger.Info("Bot is listening for messages")
	<-ctx.Done()
	return nil
}

// onMessage never blocks the read loop: when every handler slot is busy the
// message is dropped.
func (b *Bot) onMessage(message *iris.Message) {
	if message == nil {
		return
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.stopped {
		return
	}
	select {
	case b.slots <- struct{}{}:
	default:
		b.logger.Warn("Command handlers busy, dropping message", zap.String("room", message.Room))
		return
	}
	b.handlers.Go(func() {
		defer func() { <-b.slots }()
		ctx, cancel := context.WithTimeout(context.Background(), b.commandTimeout())
		defer cancel()
		b.handleMessage(ctx, message)
	})
}

func (b *Bot) commandTimeout() time.Duration {
	return b.cfg.Photo.Timeout + constants.Render.WaitGrace + sendTimeout
}

func (b *Bot) handleMessage(ctx context.Context, message *iris.Message) {
	if message == nil || !b.cfg.IsRoomAllowed(message.Room) {
		return
	}

	parsed := b.adapter.ParseMessage(message)
	if parsed == nil || parsed.Type == domain.CommandUnknown {
		return
	}

	cmdCtx := domain.NewCommandContext(message.Room, message.Room, message.SenderName(), parsed.RawMessage, true)
	b.logger.Info("Command received",
		zap.String("room", cmdCtx.Room),
		zap.String("sender", cmdCtx.Sender),
		zap.String("command", parsed.Type.String()),
	)

	if _, err := b.dispatcher.Publish(ctx, cmdCtx, command.CommandEvent{Type: parsed.Type, Params: parsed.Params}); err != nil {
		b.logger.Error("Command failed",
			zap.String("room", cmdCtx.Room),
			zap.String("command", parsed.Type.String()),
			zap.Error(err),
		)
	}
}

func (b *Bot) sendMessage(room, message string) error {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	if err := b.sender.SendMessage(ctx, room, message); err != nil {
		return fmt.Errorf("send to %s: %w", room, err)
	}
	return nil
}

// Board exposes the card board of a room.
func (b *Bot) Board(room string) *render.Board {
	return b.rooms.Board(room)
}

// Shutdown stops listening, waits for in-flight commands until ctx ends and
// closes every room pipeline.
func (b *Bot) Shutdown(ctx context.Context) error {
	var shutdownErr error
	b.shutdown.Do(func() {
		b.mu.Lock()
		b.stopped = true
		unsubscribe := b.unsubscribe
		b.mu.Unlock()

		if unsubscribe != nil {
			unsubscribe()
		}
		if err := b.stream.Disconnect(); err != nil {
			b.logger.Warn("Failed to close Iris WebSocket", zap.Error(err))
		}

		drained := make(chan struct{})
		go func() {
			b.handlers.Wait()
			close(drained)
		}()
		select {
		case <-drained:
		case <-ctx.Done():
			b.logger.Warn("Timed out waiting for in-flight commands")
			shutdownErr = ctx.Err()
		}

		b.rooms.Close()

		if b.metrics != nil {
			if err := b.metrics.Shutdown(ctx); err != nil && shutdownErr == nil {
				shutdownErr = err
			}
		}
		b.logger.Info("Bot stopped")
	})
	return shutdownErr
}
