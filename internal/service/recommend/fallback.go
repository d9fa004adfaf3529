package recommend

import (
	"context"
	stderrors "errors"

	"github.com/kapu/busan-tour-bot-go/internal/domain"
	"github.com/kapu/busan-tour-bot-go/internal/util"
	"go.uber.org/zap"
)

// FallbackSource prefers primary and serves fallback whenever primary fails
// or its circuit is open. ErrUnknownType from primary is trusted only when
// fallback agrees.
type FallbackSource struct {
	primary  Source
	fallback Source
	breaker  *util.CircuitBreaker
	logger   *zap.Logger
}

func NewFallbackSource(primary, fallback Source, breaker *util.CircuitBreaker, logger *zap.Logger) *FallbackSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackSource{
		primary:  primary,
		fallback: fallback,
		breaker:  breaker,
		logger:   logger,
	}
}

func (s *FallbackSource) Get(ctx context.Context, mbti domain.MBTIType, locale string) (*domain.Recommendation, error) {
	var rec *domain.Recommendation
	err := s.breaker.Execute(func() error {
		var err error
		rec, err = s.primary.Get(ctx, mbti, locale)
		if stderrors.Is(err, ErrUnknownType) {
			// missing rows are not an outage
			return nil
		}
		return err
	})
	if err == nil && rec != nil {
		return rec, nil
	}

	if err != nil {
		s.logger.Warn("Primary recommendation source unavailable, using fallback",
			zap.String("type", mbti.String()),
			zap.String("locale", locale),
			zap.Error(err),
		)
	}
	return s.fallback.Get(ctx, mbti, locale)
}
