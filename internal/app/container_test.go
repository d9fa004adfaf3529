package app

import (
	"context"
	"testing"
	"time"

	"github.com/kapu/busan-tour-bot-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuild_InMemoryStack(t *testing.T) {
	cfg := &config.Config{
		Iris:  config.IrisConfig{BaseURL: "http://localhost:3000", WSURL: "ws://localhost:3000/ws"},
		Kakao: config.KakaoConfig{Rooms: []string{"부산여행방"}},
		Photo: config.PhotoConfig{BaseURL: "https://photos.test", Timeout: time.Second, Concurrency: 2},
		Bot:   config.BotConfig{Prefix: "!", DefaultLocale: "ko"},
	}

	container, err := Build(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(container.Close)

	assert.Nil(t, container.botDeps.MetricsServer)
	assert.NotNil(t, container.botDeps.Recommendations)

	b, err := container.NewBot()
	require.NoError(t, err)
	require.NoError(t, b.Shutdown(context.Background()))
}

func TestBuild_RejectsNilInputs(t *testing.T) {
	_, err := Build(context.Background(), nil, zap.NewNop())
	assert.Error(t, err)

	_, err = Build(context.Background(), &config.Config{}, nil)
	assert.Error(t, err)

	var c *Container
	_, err = c.NewBot()
	assert.Error(t, err)
	c.Close()
}
