package ai

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/zhouzirui/emoji-bot/backend/internal/config"
)

// NewFromConfig 按配置初始化推理后端，只执行一次；失败则进程生命周期内都无法回答。
func NewFromConfig(ctx context.Context, cfg config.AIConfig, logger *zap.Logger) (*Service, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("%s backend is not configured: missing credentials or model", cfg.Backend)
	}

	var (
		gen TextGenerator
		err error
	)
	switch cfg.Backend {
	case config.BackendArk:
		gen, err = newArkGenerator(ctx, cfg)
	case config.BackendOpenAI:
		gen, err = NewOpenAIGenerator(cfg)
	case config.BackendGemini:
		gen, err = NewGeminiGenerator(ctx, cfg)
	default:
		err = fmt.Errorf("unsupported backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s backend: %w", cfg.Backend, err)
	}

	return NewService(string(cfg.Backend), gen, logger), nil
}

func newArkGenerator(ctx context.Context, cfg config.AIConfig) (*ChainGenerator, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return NewChainGenerator(ctx, chatModel)
}
