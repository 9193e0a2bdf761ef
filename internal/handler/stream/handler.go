package stream

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zhouzirui/emoji-bot/backend/internal/model/chat"
	chatService "github.com/zhouzirui/emoji-bot/backend/internal/service/chat"
	"github.com/zhouzirui/emoji-bot/backend/pkg/utils"
)

const defaultHeartbeat = 8 * time.Second

// Handler 通过 Server-Sent Events 推送处理进度与最终回复
type Handler struct {
	chatSvc   *chatService.Service
	logger    *zap.Logger
	heartbeat time.Duration
}

// New 创建流式处理器
func New(chatSvc *chatService.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		chatSvc:   chatSvc,
		logger:    logger.Named("stream"),
		heartbeat: defaultHeartbeat,
	}
}

// StreamResponse 流式响应数据块
type StreamResponse struct {
	Event    string      `json:"event"`
	ID       string      `json:"id,omitempty"`
	Stage    chat.Stage  `json:"stage,omitempty"`
	Message  string      `json:"message,omitempty"`
	Reply    *chat.Reply `json:"reply,omitempty"`
	Finished bool        `json:"finished,omitempty"`
	Time     string      `json:"time,omitempty"`
	Error    string      `json:"error,omitempty"`
}

// RegisterRoutes 注册流式接口
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/stream", h.handleStream)
}

func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	if !h.chatSvc.Available() {
		utils.RespondError(w, http.StatusServiceUnavailable, chatService.UnavailableMessage)
		return
	}

	if err := h.HandleStreamRequest(r.Context(), w, r.URL.Query().Get("message")); err != nil {
		h.logger.Warn("error handling stream request", zap.Error(err))
	}
}

// HandleStreamRequest 执行一轮对话并依次推送 start、stage、heartbeat、message、end 事件。
// 回复整体发送，不按 token 流式输出。
func (h *Handler) HandleStreamRequest(ctx context.Context, w http.ResponseWriter, userMessage string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return fmt.Errorf("streaming unsupported")
	}

	utils.SetupSSEHeaders(w)
	utils.SendSSEChunk(w, flusher, StreamResponse{Event: "start"})

	// 阶段通知来自处理协程，对 w 的写入只在当前协程进行；缓冲足以容纳一轮的全部阶段。
	stages := make(chan chat.Stage, 8)
	done := make(chan chat.Reply, 1)
	go func() {
		done <- h.chatSvc.RespondWithProgress(ctx, userMessage, func(stage chat.Stage) {
			stages <- stage
		})
	}()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.logger.Debug("client left before reply was ready")
			return nil
		case stage := <-stages:
			h.sendStage(w, flusher, stage)
		case t := <-ticker.C:
			utils.SendSSEChunk(w, flusher, StreamResponse{
				Event:   "heartbeat",
				Message: "awaiting llm response",
				Time:    t.UTC().Format(time.RFC3339),
			})
		case reply := <-done:
			h.drainStages(w, flusher, stages)
			utils.SendSSEChunk(w, flusher, StreamResponse{
				Event: "message",
				ID:    reply.ID,
				Reply: &reply,
			})
			utils.SendSSEChunk(w, flusher, StreamResponse{
				Event:    "end",
				ID:       reply.ID,
				Finished: true,
			})
			return nil
		}
	}
}

func (h *Handler) drainStages(w http.ResponseWriter, flusher http.Flusher, stages <-chan chat.Stage) {
	for {
		select {
		case stage := <-stages:
			h.sendStage(w, flusher, stage)
		default:
			return
		}
	}
}

func (h *Handler) sendStage(w http.ResponseWriter, flusher http.Flusher, stage chat.Stage) {
	utils.SendSSEChunk(w, flusher, StreamResponse{Event: "stage", Stage: stage})
}
