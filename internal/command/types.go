package command

import (
	"context"

	"github.com/kapu/busan-tour-bot-go/internal/domain"
)

type TypesCommand struct {
	deps *Dependencies
}

func NewTypesCommand(deps *Dependencies) *TypesCommand {
	return &TypesCommand{deps: deps}
}

func (c *TypesCommand) Name() string {
	return domain.CommandTypes.String()
}

func (c *TypesCommand) Description() string {
	return "16가지 MBTI 유형 목록"
}

func (c *TypesCommand) Execute(_ context.Context, cmdCtx *domain.CommandContext, params map[string]any) error {
	return c.deps.SendMessage(cmdCtx.Room, c.deps.Formatter.FormatTypes(c.deps.locale(params)))
}
