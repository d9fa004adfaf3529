package iris

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockClient(t *testing.T) (*Client, *httpmock.MockTransport) {
	t.Helper()
	transport := httpmock.NewMockTransport()
	return NewClient("http://iris.test/", nil, WithHTTPClient(&http.Client{Transport: transport})), transport
}

func TestClient_SendMessage(t *testing.T) {
	c, transport := newMockClient(t)

	var got ReplyRequest
	transport.RegisterResponder(http.MethodPost, "http://iris.test/reply",
		func(req *http.Request) (*http.Response, error) {
			body, err := io.ReadAll(req.Body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(body, &got))
			return httpmock.NewStringResponse(http.StatusOK, `{}`), nil
		})

	require.NoError(t, c.SendMessage(context.Background(), "부산여행방", "안녕하세요"))
	assert.Equal(t, ReplyRequest{Type: "text", Room: "부산여행방", Data: "안녕하세요"}, got)
}

func TestClient_SendMessageError(t *testing.T) {
	c, transport := newMockClient(t)
	transport.RegisterResponder(http.MethodPost, "http://iris.test/reply",
		httpmock.NewStringResponder(http.StatusInternalServerError, "down"))

	err := c.SendMessage(context.Background(), "room", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Iris API error")
}

func TestClient_GetConfigAndPing(t *testing.T) {
	c, transport := newMockClient(t)
	transport.RegisterResponder(http.MethodGet, "http://iris.test/config",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, Config{Port: 3000, PollingSpeed: 100}))

	cfg, err := c.GetConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
	assert.NoError(t, c.Ping(context.Background()))
}

func TestMessage_Text(t *testing.T) {
	sender := "kim"
	m := &Message{Msg: " !mbti intj ", Sender: &sender}
	assert.Equal(t, "!mbti intj", m.Text())
	assert.Equal(t, "kim", m.SenderName())

	m.JSON = &MessageJSON{Message: "!위치 태종대"}
	assert.Equal(t, "!위치 태종대", m.Text())

	var nilMsg *Message
	assert.Empty(t, nilMsg.Text())
	assert.Empty(t, (&Message{}).SenderName())
}
