package command

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/kapu/busan-tour-bot-go/internal/constants"
	"github.com/kapu/busan-tour-bot-go/internal/domain"
	"github.com/kapu/busan-tour-bot-go/internal/service/recommend"
	"go.uber.org/zap"
)

type RecommendCommand struct {
	deps *Dependencies
}

func NewRecommendCommand(deps *Dependencies) *RecommendCommand {
	return &RecommendCommand{deps: deps}
}

func (c *RecommendCommand) Name() string {
	return domain.CommandRecommend.String()
}

func (c *RecommendCommand) Description() string {
	return "MBTI 유형별 부산 관광지를 추천합니다"
}

func (c *RecommendCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error {
	if err := c.ensureDeps(); err != nil {
		return err
	}

	locale := c.deps.locale(params)
	formatter := c.deps.Formatter

	mbti, ok := params["mbti"].(domain.MBTIType)
	if !ok {
		input, _ := params["input"].(string)
		return c.deps.SendMessage(cmdCtx.Room, formatter.FormatUnknownType(locale, input))
	}

	rec, err := c.deps.Recommendations.Get(ctx, mbti, locale)
	if err != nil {
		if stderrors.Is(err, recommend.ErrUnknownType) {
			return c.deps.SendMessage(cmdCtx.Room, formatter.FormatUnknownType(locale, mbti.String()))
		}
		c.deps.logger().Error("Failed to load recommendation",
			zap.String("mbti", mbti.String()),
			zap.String("locale", locale),
			zap.Error(err),
		)
		return c.deps.SendMessage(cmdCtx.Room, formatter.FormatLoadingError(locale))
	}

	c.deps.Sessions.Remember(cmdCtx.Room, rec)

	batch, err := c.deps.Renderer.Render(ctx, cmdCtx.Room, rec.Attractions)
	if err != nil {
		c.deps.logger().Error("Failed to render attraction cards",
			zap.String("room", cmdCtx.Room),
			zap.String("mbti", mbti.String()),
			zap.Error(err),
		)
		return c.deps.SendMessage(cmdCtx.Room, formatter.FormatLoadingError(locale))
	}

	if c.deps.WaitForPhotos {
		wait := c.deps.PhotoWait
		if wait <= 0 {
			wait = constants.ImageLoad.Timeout + constants.Render.WaitGrace
		}
		waitCtx, cancel := context.WithTimeout(ctx, wait)
		if err := batch.Wait(waitCtx); err != nil {
			loaded, failed, pending := batch.Counts()
			c.deps.logger().Debug("Replying before every photo settled",
				zap.Int("loaded", loaded),
				zap.Int("failed", failed),
				zap.Int("pending", pending),
			)
		}
		cancel()
	}

	c.deps.logger().Info("Recommendation served",
		zap.String("room", cmdCtx.Room),
		zap.String("mbti", mbti.String()),
		zap.String("locale", rec.Locale),
		zap.Int("cards", len(batch.Cards)),
		zap.Int("skipped", len(batch.Skipped)),
	)
	return c.deps.SendMessage(cmdCtx.Room, formatter.FormatRecommendation(locale, rec, batch.Cards))
}

func (c *RecommendCommand) ensureDeps() error {
	if c == nil || c.deps == nil {
		return fmt.Errorf("recommend command dependencies not configured")
	}
	if c.deps.SendMessage == nil {
		return fmt.Errorf("message callback not configured")
	}
	if c.deps.Recommendations == nil || c.deps.Renderer == nil || c.deps.Formatter == nil {
		return fmt.Errorf("recommend services not configured")
	}
	return nil
}
