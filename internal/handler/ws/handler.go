package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/zhouzirui/emoji-bot/backend/internal/model/chat"
	chatService "github.com/zhouzirui/emoji-bot/backend/internal/service/chat"
)

const (
	defaultPongWait   = 60 * time.Second
	defaultPingPeriod = 54 * time.Second
	writeWait         = 10 * time.Second

	// maxPending 单个连接上排队等待处理的消息上限
	maxPending = 8
)

// Handler WebSocket聊天处理器
type Handler struct {
	chatSvc  *chatService.Service
	logger   *zap.Logger
	upgrader websocket.Upgrader

	pongWait   time.Duration
	pingPeriod time.Duration
}

// New 创建WebSocket处理器
func New(chatSvc *chatService.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		chatSvc: chatSvc,
		logger:  logger.Named("websocket"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		pongWait:   defaultPongWait,
		pingPeriod: defaultPingPeriod,
	}
}

// RegisterRoutes 注册WebSocket路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws", h.handleWebSocket)
}

type inboundMessage struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// TextMessage 文本消息
type TextMessage struct {
	Text string `json:"text"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// connection 一个WebSocket连接的写端，写操作串行化
type connection struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	logger  *zap.Logger
}

// handleWebSocket 处理WebSocket连接。
// 读循环始终在读，保证长时间生成期间 pong 仍能续期读超时；
// 提交交给单个 worker 按顺序逐个处理。
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", zap.Error(err))
		return
	}
	defer ws.Close()

	h.logger.Debug("new connection", zap.String("remote", r.RemoteAddr))

	c := &connection{conn: ws, logger: h.logger}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	ws.SetReadDeadline(time.Now().Add(h.pongWait))
	ws.SetPongHandler(func(string) error {
		ws.SetReadDeadline(time.Now().Add(h.pongWait))
		return nil
	})

	go h.pingLoop(ctx, ws)

	available := h.chatSvc.Available()
	connected := map[string]any{
		"type":      "connected",
		"available": available,
	}
	if !available {
		connected["warning"] = chatService.UnavailableMessage
	}
	c.sendResult(connected)

	jobs := make(chan string, maxPending)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		h.runTurns(ctx, c, jobs)
	}()
	defer wg.Wait()
	defer close(jobs)
	defer cancel()

	for {
		var msg inboundMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("read error", zap.Error(err))
			}
			return
		}

		ws.SetReadDeadline(time.Now().Add(h.pongWait))
		h.handleMessage(c, &msg, jobs)
	}
}

func (h *Handler) handleMessage(c *connection, msg *inboundMessage, jobs chan<- string) {
	switch msg.Type {
	case "text":
		var text TextMessage
		if len(msg.Data) > 0 {
			if err := json.Unmarshal(msg.Data, &text); err != nil {
				c.sendError("invalid text payload")
				return
			}
		}
		select {
		case jobs <- text.Text:
		default:
			c.sendError("too many pending messages")
		}
	default:
		c.sendError("unsupported message type: " + msg.Type)
	}
}

// runTurns 顺序处理本连接的提交，连接关闭后丢弃尚未开始的提交。
func (h *Handler) runTurns(ctx context.Context, c *connection, jobs <-chan string) {
	for text := range jobs {
		if ctx.Err() != nil {
			continue
		}

		if h.chatSvc.Busy() {
			c.sendResult(map[string]any{"type": "busy"})
		}

		reply := h.chatSvc.RespondWithProgress(ctx, text, func(stage chat.Stage) {
			c.sendResult(map[string]any{"type": "progress", "stage": stage})
		})

		c.sendResult(map[string]any{
			"type":  "reply",
			"reply": reply,
		})
	}
}

func (c *connection) sendResult(data map[string]any) {
	c.write(outgoingMessage{Type: "result", Data: data, Timestamp: time.Now().Unix()})
}

func (c *connection) sendError(message string) {
	c.write(outgoingMessage{
		Type:      "error",
		Data:      map[string]string{"message": message},
		Timestamp: time.Now().Unix(),
	})
}

func (c *connection) write(msg outgoingMessage) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(msg); err != nil {
		c.logger.Debug("write failed", zap.String("type", msg.Type), zap.Error(err))
	}
}

// pingLoop 定期发送ping消息。WriteControl 可与 WriteJSON 并发调用。
func (h *Handler) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(h.pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
