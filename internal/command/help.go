package command

import (
	"context"

	"github.com/kapu/busan-tour-bot-go/internal/domain"
)

type HelpCommand struct {
	deps *Dependencies
}

func NewHelpCommand(deps *Dependencies) *HelpCommand {
	return &HelpCommand{deps: deps}
}

func (c *HelpCommand) Name() string {
	return domain.CommandHelp.String()
}

func (c *HelpCommand) Description() string {
	return "도움말을 표시합니다"
}

func (c *HelpCommand) Execute(_ context.Context, cmdCtx *domain.CommandContext, _ map[string]any) error {
	return c.deps.SendMessage(cmdCtx.Room, c.deps.Formatter.FormatHelp())
}

// RegisterAll wires every bot command into registry.
func RegisterAll(registry *Registry, deps *Dependencies) {
	registry.Register(
		NewRecommendCommand(deps),
		NewDetailCommand(deps),
		NewLocationCommand(deps),
		NewTypesCommand(deps),
		NewHelpCommand(deps),
	)
}
