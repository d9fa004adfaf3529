package recommend

import (
	"context"
	stderrors "errors"

	"github.com/kapu/busan-tour-bot-go/internal/domain"
)

var ErrUnknownType = stderrors.New("unknown mbti type")

// Source returns the ordered recommendation for a type in a locale. Locales
// without data fall back to Korean.
type Source interface {
	Get(ctx context.Context, mbti domain.MBTIType, locale string) (*domain.Recommendation, error)
}

// StaticSource serves the embedded dataset.
type StaticSource struct {
	data *domain.RecommendationData
}

func NewStaticSource(data *domain.RecommendationData) *StaticSource {
	return &StaticSource{data: data}
}

func (s *StaticSource) Get(_ context.Context, mbti domain.MBTIType, locale string) (*domain.Recommendation, error) {
	rec, ok := s.data.Lookup(mbti, locale)
	if !ok {
		return nil, ErrUnknownType
	}
	return rec, nil
}
