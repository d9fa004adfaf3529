package command

import (
	"context"
	"maps"

	"github.com/kapu/busan-tour-bot-go/internal/domain"
	"github.com/kapu/busan-tour-bot-go/pkg/errors"
	"github.com/sourcegraph/conc/panics"
	"go.uber.org/zap"
)

// NormalizeFunc converts a command type plus params into the registry key and
// the parameter map used for execution.
type NormalizeFunc func(domain.CommandType, map[string]any) (string, map[string]any)

// DefaultNormalize keys handlers by command type name.
func DefaultNormalize(cmdType domain.CommandType, params map[string]any) (string, map[string]any) {
	return cmdType.String(), params
}

type sequentialDispatcher struct {
	registry  *Registry
	normalize NormalizeFunc
	logger    *zap.Logger
}

// NewSequentialDispatcher runs events in order and stops at the first error.
// A panicking handler is converted into an error for its event.
func NewSequentialDispatcher(registry *Registry, normalize NormalizeFunc, logger *zap.Logger) Dispatcher {
	if normalize == nil {
		normalize = DefaultNormalize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &sequentialDispatcher{registry: registry, normalize: normalize, logger: logger}
}

func (d *sequentialDispatcher) Publish(ctx context.Context, cmdCtx *domain.CommandContext, events ...CommandEvent) (int, error) {
	if d == nil || d.registry == nil {
		return 0, nil
	}

	executed := 0
	for _, event := range events {
		if event.Type == domain.CommandUnknown || !event.Type.IsValid() {
			continue
		}

		key, params := d.normalize(event.Type, cloneParams(event.Params))
		if err := d.execute(ctx, cmdCtx, key, params); err != nil {
			return executed, err
		}
		executed++
	}
	return executed, nil
}

func (d *sequentialDispatcher) execute(ctx context.Context, cmdCtx *domain.CommandContext, key string, params map[string]any) error {
	var err error
	var catcher panics.Catcher
	catcher.Try(func() {
		err = d.registry.Execute(ctx, cmdCtx, key, params)
	})
	if recovered := catcher.Recovered(); recovered != nil {
		d.logger.Error("Command handler panicked",
			zap.String("command", key),
			zap.String("room", cmdCtx.Room),
			zap.Any("panic", recovered.Value),
		)
		return errors.NewServiceError("command handler panicked", "command", key, recovered.AsError())
	}
	return err
}

func cloneParams(src map[string]any) map[string]any {
	if len(src) == 0 {
		return map[string]any{}
	}
	return maps.Clone(src)
}
