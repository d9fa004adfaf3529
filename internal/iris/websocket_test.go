package iris

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newIrisServer(t *testing.T, frames ...string) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for _, f := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
				return
			}
		}
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestWebSocket_DeliversMessages(t *testing.T) {
	srv := newIrisServer(t,
		`not json`,
		`{"msg":"!mbti enfp","room":"부산여행방","sender":"lee"}`,
	)

	ws := NewWebSocket(wsURL(srv), 1, 10*time.Millisecond, zap.NewNop())
	received := make(chan *Message, 1)
	unsubscribe := ws.OnMessage(func(m *Message) { received <- m })
	defer unsubscribe()

	require.NoError(t, ws.Connect(context.Background()))
	defer ws.Disconnect()

	select {
	case m := <-received:
		assert.Equal(t, "!mbti enfp", m.Text())
		assert.Equal(t, "부산여행방", m.Room)
		assert.Equal(t, "lee", m.SenderName())
	case <-time.After(2 * time.Second):
		t.Fatal("no message delivered")
	}
	assert.True(t, ws.IsConnected())
}

func TestWebSocket_GivesUpAfterMaxAttempts(t *testing.T) {
	ws := NewWebSocket("ws://127.0.0.1:1/ws", 2, 5*time.Millisecond, zap.NewNop())

	states := make(chan WebSocketState, 32)
	ws.OnStateChange(func(s WebSocketState) { states <- s })

	require.Error(t, ws.Connect(context.Background()))
	require.Eventually(t, func() bool {
		select {
		case <-ws.done:
			return true
		default:
			return false
		}
	}, 2*time.Second, 5*time.Millisecond)

	assert.Equal(t, WSStateFailed, ws.State())
	require.NoError(t, ws.Disconnect())
}

func TestWebSocket_DisconnectStopsListener(t *testing.T) {
	srv := newIrisServer(t)
	ws := NewWebSocket(wsURL(srv), 3, time.Hour, zap.NewNop())

	require.NoError(t, ws.Connect(context.Background()))
	require.NoError(t, ws.Disconnect())

	<-ws.done
	assert.Equal(t, WSStateDisconnected, ws.State())
	ws.RemoveAllListeners()
}

func TestWebSocket_DisconnectClosesUntrackedConn(t *testing.T) {
	srv := newIrisServer(t)
	ws := NewWebSocket(wsURL(srv), 3, time.Hour, zap.NewNop())

	// a conn the listener owns but Disconnect never sees, as when a redial
	// lands after Disconnect read ws.conn
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.NoError(t, err)

	runCtx, cancel := context.WithCancel(context.Background())
	ws.mu.Lock()
	ws.cancel = cancel
	ws.done = make(chan struct{})
	ws.mu.Unlock()
	go ws.run(runCtx, conn)

	start := time.Now()
	require.NoError(t, ws.Disconnect())
	assert.Less(t, time.Since(start), 2*time.Second)

	select {
	case <-ws.done:
	default:
		t.Fatal("listener still running after Disconnect")
	}
}

func TestWebSocket_DialAfterCancelDropsConn(t *testing.T) {
	srv := newIrisServer(t)
	ws := NewWebSocket(wsURL(srv), 1, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	conn, err := ws.dial(ctx)
	assert.Error(t, err)
	assert.Nil(t, conn)

	ws.mu.Lock()
	defer ws.mu.Unlock()
	assert.Nil(t, ws.conn)
}
