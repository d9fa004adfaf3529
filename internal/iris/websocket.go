package iris

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type MessageCallback func(message *Message)

type StateCallback func(state WebSocketState)

type callbackEntry[T any] struct {
	id       int
	callback T
}

// WebSocket keeps a subscription to the Iris message stream alive. After a
// dropped connection it redials every reconnectDelay until
// maxReconnectAttempts consecutive dials have failed.
type WebSocket struct {
	wsURL                string
	maxReconnectAttempts int
	reconnectDelay       time.Duration
	dialer               *websocket.Dialer
	logger               *zap.Logger

	mu     sync.Mutex
	conn   *websocket.Conn
	state  WebSocketState
	cancel context.CancelFunc
	done   chan struct{}

	callbacksMu      sync.RWMutex
	messageCallbacks []callbackEntry[MessageCallback]
	stateCallbacks   []callbackEntry[StateCallback]
	nextCallbackID   int
}

func NewWebSocket(wsURL string, maxReconnectAttempts int, reconnectDelay time.Duration, logger *zap.Logger) *WebSocket {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebSocket{
		wsURL:                wsURL,
		maxReconnectAttempts: maxReconnectAttempts,
		reconnectDelay:       reconnectDelay,
		dialer:               &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		logger:               logger,
		state:                WSStateDisconnected,
		nextCallbackID:       1,
	}
}

// Connect dials once and starts the listener. A failed first dial is
// returned, and the listener keeps retrying in the background.
func (ws *WebSocket) Connect(ctx context.Context) error {
	ws.mu.Lock()
	if ws.done != nil {
		ws.mu.Unlock()
		ws.logger.Warn("WebSocket already started")
		return nil
	}
	runCtx, cancel := context.WithCancel(ctx)
	ws.cancel = cancel
	ws.done = make(chan struct{})
	ws.mu.Unlock()

	conn, err := ws.dial(runCtx)
	go ws.run(runCtx, conn)
	return err
}

func (ws *WebSocket) dial(ctx context.Context) (*websocket.Conn, error) {
	ws.setState(WSStateConnecting)
	conn, _, err := ws.dialer.DialContext(ctx, ws.wsURL, nil)
	if err != nil {
		ws.logger.Error("Failed to connect WebSocket", zap.Error(err))
		ws.setState(WSStateFailed)
		return nil, err
	}

	ws.mu.Lock()
	if ctx.Err() != nil {
		ws.mu.Unlock()
		_ = conn.Close()
		return nil, ctx.Err()
	}
	ws.conn = conn
	ws.mu.Unlock()

	ws.setState(WSStateConnected)
	ws.logger.Info("WebSocket connected", zap.String("url", ws.wsURL))
	return conn, nil
}

func (ws *WebSocket) run(ctx context.Context, conn *websocket.Conn) {
	defer close(ws.done)
	defer ws.logger.Info("WebSocket listener stopped")

	attempts := 0
	for {
		if conn != nil {
			attempts = 0
			ws.readLoop(ctx, conn)
		}
		if ctx.Err() != nil {
			return
		}

		attempts++
		if attempts > ws.maxReconnectAttempts {
			ws.logger.Error("Max reconnect attempts reached", zap.Int("attempts", attempts-1))
			ws.setState(WSStateFailed)
			return
		}

		ws.setState(WSStateReconnecting)
		ws.logger.Info("Scheduling reconnect",
			zap.Int("attempt", attempts),
			zap.Int("max", ws.maxReconnectAttempts),
			zap.Duration("delay", ws.reconnectDelay),
		)

		select {
		case <-time.After(ws.reconnectDelay):
		case <-ctx.Done():
			return
		}

		var err error
		if conn, err = ws.dial(ctx); err != nil {
			conn = nil
		}
	}
}

// readLoop owns conn: it is closed when ctx ends even if Disconnect never
// saw it.
func (ws *WebSocket) readLoop(ctx context.Context, conn *websocket.Conn) {
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				ws.logger.Error("WebSocket read error", zap.Error(err))
			}
			_ = conn.Close()
			ws.mu.Lock()
			if ws.conn == conn {
				ws.conn = nil
			}
			ws.mu.Unlock()
			ws.setState(WSStateDisconnected)
			return
		}
		ws.handleMessage(data)
	}
}

func (ws *WebSocket) handleMessage(data []byte) {
	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		preview := string(data)
		if len(preview) > 200 {
			preview = preview[:200]
		}
		ws.logger.Error("Failed to parse message", zap.Error(err), zap.String("data", preview))
		return
	}

	ws.callbacksMu.RLock()
	callbacks := make([]callbackEntry[MessageCallback], len(ws.messageCallbacks))
	copy(callbacks, ws.messageCallbacks)
	ws.callbacksMu.RUnlock()

	for _, entry := range callbacks {
		entry.callback(&message)
	}
}

// OnMessage registers a callback and returns its unsubscribe func.
func (ws *WebSocket) OnMessage(callback MessageCallback) func() {
	ws.callbacksMu.Lock()
	defer ws.callbacksMu.Unlock()

	id := ws.nextCallbackID
	ws.nextCallbackID++
	ws.messageCallbacks = append(ws.messageCallbacks, callbackEntry[MessageCallback]{id: id, callback: callback})

	return func() {
		ws.callbacksMu.Lock()
		defer ws.callbacksMu.Unlock()
		ws.messageCallbacks = removeEntry(ws.messageCallbacks, id)
	}
}

func (ws *WebSocket) OnStateChange(callback StateCallback) func() {
	ws.callbacksMu.Lock()
	defer ws.callbacksMu.Unlock()

	id := ws.nextCallbackID
	ws.nextCallbackID++
	ws.stateCallbacks = append(ws.stateCallbacks, callbackEntry[StateCallback]{id: id, callback: callback})

	return func() {
		ws.callbacksMu.Lock()
		defer ws.callbacksMu.Unlock()
		ws.stateCallbacks = removeEntry(ws.stateCallbacks, id)
	}
}

func removeEntry[T any](entries []callbackEntry[T], id int) []callbackEntry[T] {
	for i, entry := range entries {
		if entry.id == id {
			return append(entries[:i], entries[i+1:]...)
		}
	}
	return entries
}

func (ws *WebSocket) setState(next WebSocketState) {
	ws.mu.Lock()
	prev := ws.state
	ws.state = next
	ws.mu.Unlock()

	if prev == next {
		return
	}
	ws.logger.Info("WebSocket state changed",
		zap.String("from", prev.String()),
		zap.String("to", next.String()),
	)

	ws.callbacksMu.RLock()
	callbacks := make([]callbackEntry[StateCallback], len(ws.stateCallbacks))
	copy(callbacks, ws.stateCallbacks)
	ws.callbacksMu.RUnlock()

	for _, entry := range callbacks {
		entry.callback(next)
	}
}

func (ws *WebSocket) State() WebSocketState {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.state
}

func (ws *WebSocket) IsConnected() bool {
	return ws.State() == WSStateConnected
}

// Disconnect stops reconnecting, closes the connection and waits up to five
// seconds for the listener to exit.
func (ws *WebSocket) Disconnect() error {
	ws.mu.Lock()
	cancel, done, conn := ws.cancel, ws.done, ws.conn
	ws.conn = nil
	ws.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	var closeErr error
	if conn != nil {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		closeErr = conn.Close()
	}

	select {
	case <-done:
		ws.logger.Info("WebSocket disconnected")
	case <-time.After(5 * time.Second):
		ws.logger.Warn("Timeout waiting for listener to stop")
	}
	ws.setState(WSStateDisconnected)
	return closeErr
}

func (ws *WebSocket) RemoveAllListeners() {
	ws.callbacksMu.Lock()
	defer ws.callbacksMu.Unlock()
	ws.messageCallbacks = nil
	ws.stateCallbacks = nil
}
