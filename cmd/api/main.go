package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/zhouzirui/emoji-bot/backend/internal/config"
	"github.com/zhouzirui/emoji-bot/backend/internal/handler"
	"github.com/zhouzirui/emoji-bot/backend/internal/logging"
	"github.com/zhouzirui/emoji-bot/backend/internal/service/ai"
	"github.com/zhouzirui/emoji-bot/backend/internal/service/chat"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 加载 .env 文件
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if envErr != nil {
		logger.Debug("no .env file loaded, using system environment only", zap.Error(envErr))
	}

	// 推理后端初始化失败时仍然启动服务，页面会提示不可用并禁用输入。
	aiService, err := ai.NewFromConfig(ctx, cfg.AI, logger)
	if err != nil {
		logger.Warn("text generation unavailable",
			zap.String("backend", string(cfg.AI.Backend)),
			zap.Error(err),
		)
		aiService = nil
	} else {
		logger.Info("text generation initialized",
			zap.String("backend", aiService.Backend()),
			zap.String("model", cfg.AI.Model),
			zap.Int("max_length", cfg.AI.Generation.MaxLength),
			zap.Float32("temperature", cfg.AI.Generation.Temperature),
		)
	}

	chatService := chat.NewService(aiService, logger)
	router := handler.NewRouter(chatService, logger)

	startServer(ctx, cfg.Server, router, logger)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, logger *zap.Logger) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("emoji bot listening", zap.String("addr", addr))
	if err := runServer(ctx, srv); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("server stopped")
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
