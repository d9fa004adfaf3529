package command

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/kapu/busan-tour-bot-go/internal/domain"
)

// ErrUnknownCommand is returned when a command dispatch is attempted for an
// unregistered key.
var ErrUnknownCommand = errors.New("unknown command")

// Registry stores command handlers keyed by lowercase name.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Command
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Command)}
}

// Register adds a handler. A later handler with the same name replaces the
// earlier one.
func (r *Registry) Register(handlers ...Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, handler := range handlers {
		if handler == nil {
			continue
		}
		r.handlers[strings.ToLower(handler.Name())] = handler
	}
}

func (r *Registry) Execute(ctx context.Context, cmdCtx *domain.CommandContext, key string, params map[string]any) error {
	if r == nil {
		return fmt.Errorf("command registry is nil")
	}

	handler := r.getHandler(key)
	if handler == nil {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, key)
	}

	return handler.Execute(ctx, cmdCtx, params)
}

func (r *Registry) Count() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

// Names lists the registered keys in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) getHandler(key string) Command {
	if key == "" {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.handlers[strings.ToLower(key)]
}
