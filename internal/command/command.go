package command

import (
	"context"
	"strings"
	"time"

	"github.com/kapu/busan-tour-bot-go/internal/adapter"
	"github.com/kapu/busan-tour-bot-go/internal/domain"
	"github.com/kapu/busan-tour-bot-go/internal/service/recommend"
	"github.com/kapu/busan-tour-bot-go/internal/service/render"
	"go.uber.org/zap"
)

type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error
}

// CommandEvent is one parsed command waiting to be dispatched.
type CommandEvent struct {
	Type   domain.CommandType
	Params map[string]any
}

// Dispatcher executes command events and reports how many ran.
type Dispatcher interface {
	Publish(ctx context.Context, cmdCtx *domain.CommandContext, events ...CommandEvent) (int, error)
}

// Renderer draws an attraction list into the card board of a room.
type Renderer interface {
	Render(ctx context.Context, room string, attractions []domain.Attraction) (*render.Batch, error)
}

type Dependencies struct {
	Recommendations recommend.Source
	Details         *domain.AttractionDetails
	Renderer        Renderer
	Sessions        *SessionStore
	Formatter       *adapter.ResponseFormatter
	SendMessage     func(room, message string) error
	DefaultLocale   string
	// WaitForPhotos holds the recommendation reply for up to PhotoWait so the
	// summary reflects settled photos.
	WaitForPhotos bool
	PhotoWait     time.Duration
	Logger        *zap.Logger
}

func (d *Dependencies) locale(params map[string]any) string {
	if locale, ok := params["locale"].(string); ok && locale != "" {
		return locale
	}
	if d.DefaultLocale != "" {
		return d.DefaultLocale
	}
	return domain.DefaultLocale
}

func (d *Dependencies) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

func nameParam(params map[string]any) string {
	name, _ := params["name"].(string)
	return strings.TrimSpace(name)
}
