package chat

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/emoji-bot/backend/internal/model/chat"
	chatService "github.com/zhouzirui/emoji-bot/backend/internal/service/chat"
	"github.com/zhouzirui/emoji-bot/backend/pkg/utils"
)

// maxBodyBytes 限制请求体大小
const maxBodyBytes = 1 << 20

// Handler 聊天服务的HTTP处理器
type Handler struct {
	chatSvc *chatService.Service
}

// New 创建聊天处理器
func New(chatSvc *chatService.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
}

// handleChat 处理一次用户提交并返回回复
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message string `json:"message"`
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply := h.chatSvc.Respond(r.Context(), payload.Message)

	status := http.StatusOK
	if reply.Outcome == chat.OutcomeUnavailable {
		status = http.StatusServiceUnavailable
	}
	utils.RespondJSON(w, status, reply)
}
