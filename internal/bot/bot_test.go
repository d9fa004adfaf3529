package bot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kapu/busan-tour-bot-go/internal/adapter"
	"github.com/kapu/busan-tour-bot-go/internal/config"
	"github.com/kapu/busan-tour-bot-go/internal/domain"
	"github.com/kapu/busan-tour-bot-go/internal/iris"
	"github.com/kapu/busan-tour-bot-go/internal/service/photo"
	"github.com/kapu/busan-tour-bot-go/internal/service/recommend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSender struct {
	mu   sync.Mutex
	sent map[string][]string
}

func (f *fakeSender) SendMessage(_ context.Context, room, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sent == nil {
		f.sent = map[string][]string{}
	}
	f.sent[room] = append(f.sent[room], message)
	return nil
}

func (f *fakeSender) messages(room string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent[room]...)
}

type fakeStream struct {
	mu          sync.Mutex
	callback    iris.MessageCallback
	connectErr  error
	disconnects int
}

func (f *fakeStream) Connect(context.Context) error { return f.connectErr }

func (f *fakeStream) OnMessage(cb iris.MessageCallback) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callback = cb
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.callback = nil
	}
}

func (f *fakeStream) Disconnect() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disconnects++
	return nil
}

func (f *fakeStream) push(msg *iris.Message) bool {
	f.mu.Lock()
	cb := f.callback
	f.mu.Unlock()
	if cb == nil {
		return false
	}
	cb(msg)
	return true
}

type okLoader struct{}

func (okLoader) Load(context.Context, string) error { return nil }

// blockingSender holds every send until release is closed.
type blockingSender struct {
	release chan struct{}
}

func (s *blockingSender) SendMessage(context.Context, string, string) error {
	<-s.release
	return nil
}

func newTestBot(t *testing.T) (*Bot, *fakeSender, *fakeStream) {
	t.Helper()
	sender := &fakeSender{}
	b, stream := newTestBotWithSender(t, sender)
	return b, sender, stream
}

func newTestBotWithSender(t *testing.T, sender iris.Sender) (*Bot, *fakeStream) {
	t.Helper()
	data, err := domain.LoadRecommendationData()
	require.NoError(t, err)
	texts, err := domain.LoadTexts()
	require.NoError(t, err)
	details, err := domain.LoadAttractionDetails()
	require.NoError(t, err)

	cfg := &config.Config{
		Kakao: config.KakaoConfig{Rooms: []string{"부산여행방"}},
		Photo: config.PhotoConfig{Timeout: time.Second, Concurrency: 4},
		Bot:   config.BotConfig{Prefix: "!", DefaultLocale: "ko", WaitForPhotos: true},
	}
	stream := &fakeStream{}

	b, err := NewBot(&Dependencies{
		Config:          cfg,
		Logger:          zap.NewNop(),
		IrisClient:      sender,
		IrisWebSocket:   stream,
		MessageAdapter:  adapter.NewMessageAdapter("!"),
		Formatter:       adapter.NewResponseFormatter("!", texts),
		Recommendations: recommend.NewStaticSource(data),
		Details:         details,
		Photos:          photo.NewImageCache(zap.NewNop()),
		PhotoLoader:     okLoader{},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Shutdown(context.Background()) })
	return b, stream
}

func TestNewBot_RequiresDependencies(t *testing.T) {
	_, err := NewBot(nil)
	assert.Error(t, err)

	_, err = NewBot(&Dependencies{Config: &config.Config{}})
	assert.Error(t, err)
}

func TestHandleMessage_Recommend(t *testing.T) {
	b, sender, _ := newTestBot(t)

	b.handleMessage(context.Background(), &iris.Message{Msg: "!mbti enfp", Room: "부산여행방"})

	msgs := sender.messages("부산여행방")
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "ENFP")

	board := b.Board("부산여행방")
	require.NotNil(t, board)
	assert.Positive(t, board.Len())
}

func TestHandleMessage_DetailAfterRecommend(t *testing.T) {
	b, sender, _ := newTestBot(t)
	ctx := context.Background()

	b.handleMessage(ctx, &iris.Message{Msg: "!intj", Room: "부산여행방"})
	b.handleMessage(ctx, &iris.Message{Msg: "!상세 범어사", Room: "부산여행방"})

	msgs := sender.messages("부산여행방")
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[1], "범어사")
	assert.Contains(t, msgs[1], "💡")
}

func TestHandleMessage_IgnoresOtherRoomsAndChatter(t *testing.T) {
	b, sender, _ := newTestBot(t)
	ctx := context.Background()

	b.handleMessage(ctx, &iris.Message{Msg: "!mbti enfp", Room: "다른방"})
	b.handleMessage(ctx, &iris.Message{Msg: "안녕하세요", Room: "부산여행방"})
	b.handleMessage(ctx, nil)

	assert.Empty(t, sender.messages("다른방"))
	assert.Empty(t, sender.messages("부산여행방"))
	assert.Nil(t, b.Board("다른방"))
}

func TestBot_StartAndShutdown(t *testing.T) {
	b, sender, stream := newTestBot(t)
	stream.connectErr = errors.New("dial refused")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.Start(ctx) }()

	require.Eventually(t, func() bool {
		return stream.push(&iris.Message{Msg: "!도움말", Room: "부산여행방"})
	}, time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		return len(sender.messages("부산여행방")) == 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()
	require.NoError(t, b.Shutdown(shutdownCtx))
	assert.Equal(t, 1, stream.disconnects)

	// late messages after shutdown are dropped
	assert.False(t, stream.push(&iris.Message{Msg: "!도움말", Room: "부산여행방"}))
	_, err := b.rooms.Render(context.Background(), "부산여행방", nil)
	assert.Error(t, err)
}

func TestBot_ShutdownDeadlineWithSaturatedHandlers(t *testing.T) {
	sender := &blockingSender{release: make(chan struct{})}
	b, _ := newTestBotWithSender(t, sender)
	t.Cleanup(func() { close(sender.release) })

	pushed := make(chan struct{})
	go func() {
		defer close(pushed)
		for i := 0; i < maxConcurrentCommands+8; i++ {
			b.onMessage(&iris.Message{Msg: "!도움말", Room: "부산여행방"})
		}
	}()
	select {
	case <-pushed:
	case <-time.After(2 * time.Second):
		t.Fatal("onMessage blocked with every handler busy")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := b.Shutdown(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}
