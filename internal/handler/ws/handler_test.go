package ws

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/emoji-bot/backend/internal/service/ai"
	chatservice "github.com/zhouzirui/emoji-bot/backend/internal/service/chat"
)

type frame struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

func dial(t *testing.T, chatSvc *chatservice.Service) *websocket.Conn {
	t.Helper()
	return dialHandler(t, New(chatSvc, nil))
}

func dialHandler(t *testing.T, h *Handler) *websocket.Conn {
	t.Helper()

	r := chi.NewRouter()
	h.RegisterRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var f frame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

// readUntilReply collects progress frames and returns the reply payload.
func readUntilReply(t *testing.T, conn *websocket.Conn) (map[string]any, []string) {
	t.Helper()

	var stages []string
	for {
		f := readFrame(t, conn)
		require.Equal(t, "result", f.Type)
		switch f.Data["type"] {
		case "progress":
			stages = append(stages, f.Data["stage"].(string))
		case "reply":
			reply, ok := f.Data["reply"].(map[string]any)
			require.True(t, ok)
			return reply, stages
		}
	}
}

func TestWebSocketTextTurn(t *testing.T) {
	gen := ai.GeneratorFunc(func(context.Context, string) (string, error) {
		return "So excited today", nil
	})
	conn := dial(t, chatservice.NewService(ai.NewService("stub", gen, nil), nil))

	hello := readFrame(t, conn)
	assert.Equal(t, "result", hello.Type)
	assert.Equal(t, "connected", hello.Data["type"])
	assert.Equal(t, true, hello.Data["available"])

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type": "text",
		"data": map[string]string{"text": "🎈 party?"},
	}))

	reply, stages := readUntilReply(t, conn)
	assert.Equal(t, "So excited today 🎉", reply["reply"])
	assert.Equal(t, "ok", reply["outcome"])
	assert.Equal(t, []string{"composing", "normalizing", "inferring", "appending", "displaying"}, stages)
}

func TestWebSocketEmptyTextGetsGuidance(t *testing.T) {
	gen := ai.GeneratorFunc(func(context.Context, string) (string, error) {
		t.Error("generator must not be called for empty input")
		return "", nil
	})
	conn := dial(t, chatservice.NewService(ai.NewService("stub", gen, nil), nil))
	readFrame(t, conn)

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type": "text",
		"data": map[string]string{"text": "   "},
	}))

	reply, stages := readUntilReply(t, conn)
	assert.Equal(t, chatservice.GuidanceMessage, reply["reply"])
	assert.Empty(t, stages)
}

func TestWebSocketUnavailable(t *testing.T) {
	conn := dial(t, chatservice.NewService(nil, nil))

	hello := readFrame(t, conn)
	assert.Equal(t, false, hello.Data["available"])
	assert.Equal(t, chatservice.UnavailableMessage, hello.Data["warning"])

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type": "text",
		"data": map[string]string{"text": "hello"},
	}))

	reply, _ := readUntilReply(t, conn)
	assert.Equal(t, chatservice.UnavailableMessage, reply["reply"])
}

func TestWebSocketUnsupportedType(t *testing.T) {
	conn := dial(t, chatservice.NewService(nil, nil))
	readFrame(t, conn)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "audio"}))

	f := readFrame(t, conn)
	assert.Equal(t, "error", f.Type)
	assert.Equal(t, "unsupported message type: audio", f.Data["message"])
}

func TestWebSocketSurvivesTurnLongerThanPongWait(t *testing.T) {
	var calls atomic.Int32
	gen := ai.GeneratorFunc(func(context.Context, string) (string, error) {
		if calls.Add(1) == 1 {
			time.Sleep(600 * time.Millisecond)
		}
		return "happy to help", nil
	})
	h := New(chatservice.NewService(ai.NewService("stub", gen, nil), nil), nil)
	h.pongWait = 200 * time.Millisecond
	h.pingPeriod = 50 * time.Millisecond

	conn := dialHandler(t, h)
	readFrame(t, conn)

	for i := 0; i < 2; i++ {
		require.NoError(t, conn.WriteJSON(map[string]any{
			"type": "text",
			"data": map[string]string{"text": "hi"},
		}))
		reply, _ := readUntilReply(t, conn)
		assert.Equal(t, "happy to help 😊", reply["reply"])
	}
	assert.EqualValues(t, 2, calls.Load())
}

func TestWebSocketQueuesSubmissionsInOrder(t *testing.T) {
	gen := ai.GeneratorFunc(func(_ context.Context, p string) (string, error) {
		return p[strings.LastIndex(p, " ")+1:], nil
	})
	conn := dial(t, chatservice.NewService(ai.NewService("stub", gen, nil), nil))
	readFrame(t, conn)

	for _, text := range []string{"one", "two", "three"} {
		require.NoError(t, conn.WriteJSON(map[string]any{
			"type": "text",
			"data": map[string]string{"text": text},
		}))
	}
	for _, want := range []string{"one", "two", "three"} {
		reply, _ := readUntilReply(t, conn)
		assert.Equal(t, want, reply["reply"])
	}
}
