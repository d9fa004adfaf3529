package command

import (
	"context"
	"fmt"

	"github.com/kapu/busan-tour-bot-go/internal/domain"
)

type DetailCommand struct {
	deps *Dependencies
}

func NewDetailCommand(deps *Dependencies) *DetailCommand {
	return &DetailCommand{deps: deps}
}

func (c *DetailCommand) Name() string {
	return domain.CommandDetail.String()
}

func (c *DetailCommand) Description() string {
	return "관광지 추천 이유와 상세 정보"
}

// Execute answers with the recommendation reason when the attraction appeared
// in the room's last recommendation, plus any static detail entry.
func (c *DetailCommand) Execute(_ context.Context, cmdCtx *domain.CommandContext, params map[string]any) error {
	if c == nil || c.deps == nil || c.deps.SendMessage == nil || c.deps.Formatter == nil {
		return fmt.Errorf("detail command dependencies not configured")
	}

	locale := c.deps.locale(params)
	name := nameParam(params)
	if name == "" {
		return c.deps.SendMessage(cmdCtx.Room, c.deps.Formatter.FormatHelp())
	}

	attraction, reasonKnown := c.deps.Sessions.FindAttraction(cmdCtx.Room, name)
	detail := c.deps.Details.Find(name)
	if !reasonKnown && detail == nil {
		return c.deps.SendMessage(cmdCtx.Room, c.deps.Formatter.FormatUnknownAttraction(locale, name))
	}
	if !reasonKnown {
		attraction = domain.Attraction{Name: name}
	}

	return c.deps.SendMessage(cmdCtx.Room, c.deps.Formatter.FormatDetail(locale, attraction, reasonKnown, detail))
}
