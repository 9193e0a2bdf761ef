package ai

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/zhouzirui/emoji-bot/backend/internal/config"
)

// OpenAIGenerator 访问任意 OpenAI 兼容的 chat completions 接口
type OpenAIGenerator struct {
	client      openai.Client
	model       string
	maxTokens   int64
	temperature float64
}

// NewOpenAIGenerator 创建关闭重试的客户端
func NewOpenAIGenerator(cfg config.AIConfig) (*OpenAIGenerator, error) {
	if !cfg.OpenAI.Enabled() {
		return nil, errors.New("OPENAI_API_KEY is required for the openai backend")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.OpenAI.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.OpenAI.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.OpenAI.BaseURL))
	}

	return &OpenAIGenerator{
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		maxTokens:   int64(cfg.Generation.MaxLength),
		temperature: float64(cfg.Generation.Temperature),
	}, nil
}

// Generate 实现 TextGenerator
func (g *OpenAIGenerator) Generate(ctx context.Context, text string) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(text),
		},
		MaxTokens:   openai.Int(g.maxTokens),
		Temperature: openai.Float(g.temperature),
	})
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
