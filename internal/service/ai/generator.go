package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrEmptyGeneration 后端返回成功但没有可用文本
var ErrEmptyGeneration = errors.New("no meaningful response generated")

// TextGenerator 预训练文本生成模型的抽象：输入文本，输出文本。解码参数在构造时确定。
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc 将普通函数适配为 TextGenerator
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate 调用 f
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// InferenceError 包装后端生成过程中的任何失败
type InferenceError struct {
	Backend string
	Err     error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("%s inference failed: %v", e.Backend, e.Err)
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}

// Service 封装推理后端，将失败统一为 ErrEmptyGeneration 或 *InferenceError。
type Service struct {
	backend string
	gen     TextGenerator
	logger  *zap.Logger
}

// NewService 包装 gen，backend 用于日志与错误信息。
func NewService(backend string, gen TextGenerator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		backend: backend,
		gen:     gen,
		logger:  logger.Named("ai"),
	}
}

// Backend 返回后端名称
func (s *Service) Backend() string {
	return s.backend
}

// Generate 只调用一次模型，不重试。
func (s *Service) Generate(ctx context.Context, prompt string) (text string, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &InferenceError{Backend: s.backend, Err: fmt.Errorf("panic: %v", r)}
		}
		s.logger.Debug("generation finished",
			zap.String("backend", s.backend),
			zap.Int("prompt_len", len(prompt)),
			zap.Int("response_len", len(text)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
	}()

	text, err = s.gen.Generate(ctx, prompt)
	if err != nil {
		return "", &InferenceError{Backend: s.backend, Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyGeneration
	}
	return text, nil
}
