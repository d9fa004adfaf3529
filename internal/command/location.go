package command

import (
	"context"
	"fmt"

	"github.com/kapu/busan-tour-bot-go/internal/domain"
)

type LocationCommand struct {
	deps *Dependencies
}

func NewLocationCommand(deps *Dependencies) *LocationCommand {
	return &LocationCommand{deps: deps}
}

func (c *LocationCommand) Name() string {
	return domain.CommandLocation.String()
}

func (c *LocationCommand) Description() string {
	return "관광지 위치를 지도로 보여줍니다"
}

func (c *LocationCommand) Execute(_ context.Context, cmdCtx *domain.CommandContext, params map[string]any) error {
	if c == nil || c.deps == nil || c.deps.SendMessage == nil || c.deps.Formatter == nil {
		return fmt.Errorf("location command dependencies not configured")
	}

	name := nameParam(params)
	if name == "" {
		return c.deps.SendMessage(cmdCtx.Room, c.deps.Formatter.FormatHelp())
	}
	// prefer the canonical spelling from the last recommendation
	if attraction, ok := c.deps.Sessions.FindAttraction(cmdCtx.Room, name); ok {
		name = attraction.Name
	}
	return c.deps.SendMessage(cmdCtx.Room, c.deps.Formatter.FormatLocation(c.deps.locale(params), name))
}
