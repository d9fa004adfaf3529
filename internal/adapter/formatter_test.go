package adapter

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kapu/busan-tour-bot-go/internal/domain"
	"github.com/kapu/busan-tour-bot-go/internal/service/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticResolver struct{}

func (staticResolver) Resolve(_ context.Context, name, _ string) string {
	return "https://photos.test/" + name
}

type selectiveLoader struct {
	fail map[string]bool
}

func (l selectiveLoader) Load(_ context.Context, url string) error {
	if l.fail[strings.TrimPrefix(url, "https://photos.test/")] {
		return errors.New("404")
	}
	return nil
}

func newFormatter(t *testing.T) *ResponseFormatter {
	t.Helper()
	texts, err := domain.LoadTexts()
	require.NoError(t, err)
	return NewResponseFormatter("!", texts)
}

func renderCards(t *testing.T, fail map[string]bool, attractions ...domain.Attraction) []*render.Card {
	t.Helper()
	p := render.NewPipeline(staticResolver{}, selectiveLoader{fail: fail}, render.NewBoard(), zap.NewNop(),
		render.WithConfig(render.PipelineConfig{Timeout: time.Second}))
	t.Cleanup(p.Close)

	batch, err := p.Render(context.Background(), attractions)
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, batch.Wait(ctx))
	return batch.Cards
}

func TestFormatRecommendation(t *testing.T) {
	f := newFormatter(t)
	rec := &domain.Recommendation{
		Type:  domain.ENFP,
		Title: "자유로운 영혼의 부산",
		Attractions: []domain.Attraction{
			{Name: "감천문화마을", Category: "문화마을", Reason: "알록달록한 골목"},
			{Name: "태종대", Category: "자연경관", Reason: "절벽 산책"},
		},
	}
	cards := renderCards(t, map[string]bool{"태종대": true}, rec.Attractions...)

	out := f.FormatRecommendation("ko", rec, cards)

	assert.Contains(t, out, "ENFP")
	assert.Contains(t, out, "1. ")
	assert.Contains(t, out, "감천문화마을 (문화마을)")
	assert.Contains(t, out, "📷 https://photos.test/감천문화마을")
	assert.Contains(t, out, "🖼️ 사진 없음")
	assert.Contains(t, out, "사진 1/2장 로딩 완료")
	assert.Less(t, strings.Index(out, "감천문화마을"), strings.Index(out, "태종대"))
	assert.NotContains(t, out, "https://photos.test/태종대")
}

func TestFormatRecommendation_Empty(t *testing.T) {
	f := newFormatter(t)
	out := f.FormatRecommendation("en", &domain.Recommendation{Type: domain.INTJ}, nil)
	assert.True(t, strings.HasPrefix(out, "❌"))
}

func TestFormatTypes(t *testing.T) {
	f := newFormatter(t)
	out := f.FormatTypes("en")
	for _, group := range domain.MBTIGroups {
		for _, mbti := range group.Types {
			assert.Contains(t, out, mbti.String())
		}
	}
	assert.Less(t, strings.Index(out, "INTJ"), strings.Index(out, "ESFP"))
}

func TestFormatDetail(t *testing.T) {
	f := newFormatter(t)
	details, err := domain.LoadAttractionDetails()
	require.NoError(t, err)

	a := domain.Attraction{Name: "범어사", Category: "사찰", Reason: "고요한 산사"}
	out := f.FormatDetail("ko", a, true, details.Find("범어사"))
	assert.Contains(t, out, "고요한 산사")
	assert.Contains(t, out, "주소")
	assert.Contains(t, out, "https://www.google.com/maps/search/")

	out = f.FormatDetail("en", domain.Attraction{Name: "Somewhere"}, false, nil)
	assert.Contains(t, out, "Show Location")
	assert.NotContains(t, out, "Why")
}

func TestMapsURL(t *testing.T) {
	assert.Equal(t, "https://www.google.com/maps/search/%ED%83%9C%EC%A2%85%EB%8C%80%20%EB%B6%80%EC%82%B0", MapsURL("태종대"))
}

func TestFormatHelpUsesPrefix(t *testing.T) {
	f := NewResponseFormatter("/", nil)
	out := f.FormatHelp()
	assert.Contains(t, out, "/mbti ENFP")
	assert.NotContains(t, out, "!mbti")
}
