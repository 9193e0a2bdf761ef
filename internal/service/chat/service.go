package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zhouzirui/emoji-bot/backend/internal/analysis/sentiment"
	"github.com/zhouzirui/emoji-bot/backend/internal/model/chat"
	"github.com/zhouzirui/emoji-bot/backend/internal/prompt"
	"github.com/zhouzirui/emoji-bot/backend/internal/service/ai"
)

// 展示给用户的固定文案
const (
	GuidanceMessage    = "Please provide some input for the chatbot to respond to!"
	FallbackMessage    = "I'm sorry, I couldn't generate a meaningful response. Please try again!"
	UnavailableMessage = "The text generation pipeline could not be initialized."
	errorPrefix        = "An error occurred while generating the response: "
)

// Observer 在每个阶段开始时接收通知
type Observer func(chat.Stage)

// Service 一次处理一轮用户输入：拼接、表情转写、生成、追加表情。不保存会话状态。
type Service struct {
	ai     *ai.Service
	gate   chan struct{}
	logger *zap.Logger
}

// NewService 创建处理流水线。aiSvc 为 nil 表示后端初始化失败，此后非空提交都返回 UnavailableMessage。
func NewService(aiSvc *ai.Service, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		ai:     aiSvc,
		gate:   make(chan struct{}, 1),
		logger: logger.Named("chat"),
	}
}

// Available 推理后端是否已初始化
func (s *Service) Available() bool {
	return s.ai != nil
}

// Busy 是否有对话正在占用生成器
func (s *Service) Busy() bool {
	return len(s.gate) > 0
}

// Respond 处理输入并返回要展示的回复
func (s *Service) Respond(ctx context.Context, input string) chat.Reply {
	return s.RespondWithProgress(ctx, input, nil)
}

// RespondWithProgress 与 Respond 相同，额外推送阶段通知供进度提示使用，observe 可为 nil。
func (s *Service) RespondWithProgress(ctx context.Context, input string, observe Observer) (reply chat.Reply) {
	start := time.Now()
	reply = chat.Reply{
		ID:        uuid.NewString(),
		Input:     input,
		CreatedAt: start.UTC(),
	}
	notify := func(stage chat.Stage) {
		if observe != nil {
			observe(stage)
		}
	}

	defer func() {
		reply.DurationMs = time.Since(start).Milliseconds()
		s.logger.Info("turn completed",
			zap.String("id", reply.ID),
			zap.String("outcome", string(reply.Outcome)),
			zap.Int("input_len", len(input)),
			zap.Int("reply_len", len(reply.Text)),
			zap.Int64("duration_ms", reply.DurationMs),
		)
	}()

	if strings.TrimSpace(input) == "" {
		reply.Text = GuidanceMessage
		reply.Outcome = chat.OutcomeEmptyInput
		return reply
	}

	if !s.Available() {
		reply.Text = UnavailableMessage
		reply.Outcome = chat.OutcomeUnavailable
		return reply
	}

	// 后端不支持并发调用，等待上一轮结束。
	select {
	case s.gate <- struct{}{}:
	case <-ctx.Done():
		reply.Text = errorPrefix + ctx.Err().Error()
		reply.Outcome = chat.OutcomeInferenceError
		return reply
	}
	defer func() { <-s.gate }()

	notify(chat.StageComposing)
	composed := prompt.Compose(prompt.SystemPrompt, input)

	notify(chat.StageNormalizing)
	normalized := prompt.Demojize(composed)

	notify(chat.StageInferring)
	// 生成一旦发出就执行到底，调用方离开也不取消。
	text, err := s.ai.Generate(context.WithoutCancel(ctx), normalized)
	switch {
	case errors.Is(err, ai.ErrEmptyGeneration):
		reply.Text = FallbackMessage
		reply.Outcome = chat.OutcomeEmptyGeneration
	case err != nil:
		s.logger.Warn("generation failed", zap.String("id", reply.ID), zap.Error(err))
		reply.Text = errorPrefix + describe(err)
		reply.Outcome = chat.OutcomeInferenceError
	default:
		notify(chat.StageAppending)
		reply.Text = sentiment.Decorate(text)
		reply.Outcome = chat.OutcomeOK
		for _, label := range sentiment.Detect(text) {
			reply.Sentiments = append(reply.Sentiments, string(label))
		}
	}

	notify(chat.StageDisplaying)
	return reply
}

// describe 返回去掉适配层包装后的错误描述
func describe(err error) string {
	var inferenceErr *ai.InferenceError
	if errors.As(err, &inferenceErr) && inferenceErr.Err != nil {
		return inferenceErr.Err.Error()
	}
	return err.Error()
}
