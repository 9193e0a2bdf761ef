package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/emoji-bot/backend/internal/model/bot"
	chatService "github.com/zhouzirui/emoji-bot/backend/internal/service/chat"
	"github.com/zhouzirui/emoji-bot/backend/pkg/utils"
)

// Handler 机器人资料的HTTP处理器
type Handler struct {
	profile bot.Profile
	chatSvc *chatService.Service
}

// New 创建资料处理器
func New(profile bot.Profile, chatSvc *chatService.Service) *Handler {
	return &Handler{
		profile: profile,
		chatSvc: chatSvc,
	}
}

// Status 展示层启用输入框前需要的信息
type Status struct {
	Profile   bot.Profile `json:"profile"`
	Available bool        `json:"available"`
	Warning   string      `json:"warning,omitempty"`
}

// RegisterRoutes 注册资料相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/profile", h.handleProfile)
}

// handleProfile 返回资料以及推理后端是否可用
func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	status := Status{
		Profile:   h.profile,
		Available: h.chatSvc.Available(),
	}
	if !status.Available {
		status.Warning = chatService.UnavailableMessage
	}
	utils.RespondJSON(w, http.StatusOK, status)
}
