package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/zhouzirui/emoji-bot/backend/internal/handler/chat"
	"github.com/zhouzirui/emoji-bot/backend/internal/handler/profile"
	"github.com/zhouzirui/emoji-bot/backend/internal/handler/stream"
	"github.com/zhouzirui/emoji-bot/backend/internal/handler/web"
	"github.com/zhouzirui/emoji-bot/backend/internal/handler/ws"
	middlewarePkg "github.com/zhouzirui/emoji-bot/backend/internal/middleware"
	"github.com/zhouzirui/emoji-bot/backend/internal/model/bot"
	chatService "github.com/zhouzirui/emoji-bot/backend/internal/service/chat"
)

// NewRouter 将 HTTP 路由绑定到核心服务
func NewRouter(chatSvc *chatService.Service, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	web.RegisterRoutes(r)

	r.Route("/api", func(api chi.Router) {
		profile.New(bot.Default(), chatSvc).RegisterRoutes(api)
		chat.New(chatSvc).RegisterRoutes(api)
		stream.New(chatSvc, logger).RegisterRoutes(api)
		ws.New(chatSvc, logger).RegisterRoutes(api)
	})

	return r
}
