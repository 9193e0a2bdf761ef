package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Backend 标识推理后端。
type Backend string

const (
	BackendArk    Backend = "ark"
	BackendOpenAI Backend = "openai"
	BackendGemini Backend = "gemini"
)

// DefaultModel 默认模型，仅适用于 OpenAI 兼容接口（如 Hugging Face 路由、TGI）。
const DefaultModel = "google/t5-v1_1-xxl"

// Generation 每次调用携带的解码参数，进程生命周期内固定不变。
type Generation struct {
	MaxLength   int
	Temperature float32
}

// DefaultGeneration 是唯一支持的解码配置。
var DefaultGeneration = Generation{MaxLength: 1500, Temperature: 0.8}

// Config 聚合整个服务的配置项。
type Config struct {
	Server ServerConfig
	AI     AIConfig
	Log    LogConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, AI: ai, Log: loadLogConfig()}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// LogConfig 描述日志配置。
type LogConfig struct {
	Level string
}

func loadLogConfig() LogConfig {
	return LogConfig{Level: getEnvOrDefault("LOG_LEVEL", "info")}
}

// AIConfig 描述大模型相关配置。
type AIConfig struct {
	Backend    Backend
	Model      string
	Generation Generation
	Ark        ArkConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
}

// ArkConfig 火山方舟凭证。
type ArkConfig struct {
	APIKey    string
	AccessKey string
	SecretKey string
	BaseURL   string
	Region    string
}

// Enabled 表示是否提供了必需的密钥。
func (c ArkConfig) Enabled() bool {
	return c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != "")
}

// OpenAIConfig OpenAI 及兼容其 chat completions 接口的服务（TGI、vLLM、Hugging Face 路由）。
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
}

// Enabled 表示是否提供了必需的密钥。
func (c OpenAIConfig) Enabled() bool {
	return c.APIKey != ""
}

// GeminiConfig Gemini API 凭证。
type GeminiConfig struct {
	APIKey string
}

// Enabled 表示是否提供了必需的密钥。
func (c GeminiConfig) Enabled() bool {
	return c.APIKey != ""
}

// Enabled 表示所选后端是否具备凭证与模型配置。
func (c AIConfig) Enabled() bool {
	if c.Model == "" {
		return false
	}
	switch c.Backend {
	case BackendArk:
		return c.Ark.Enabled()
	case BackendOpenAI:
		return c.OpenAI.Enabled()
	case BackendGemini:
		return c.Gemini.Enabled()
	default:
		return false
	}
}

// NewChatModel 使用配置创建一个方舟模型实例。
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Ark.Enabled() || c.Model == "" {
		return nil, fmt.Errorf("Ark 凭证或模型配置缺失，至少提供 ARK_API_KEY + AI_MODEL 或 AK/SK 组合")
	}

	maxTokens := c.Generation.MaxLength
	temperature := c.Generation.Temperature

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.Ark.BaseURL,
		Region:      c.Ark.Region,
		APIKey:      c.Ark.APIKey,
		AccessKey:   c.Ark.AccessKey,
		SecretKey:   c.Ark.SecretKey,
		Model:       c.Model,
		MaxTokens:   &maxTokens,
		Temperature: &temperature,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	cfg := AIConfig{
		Model:      strings.TrimSpace(os.Getenv("AI_MODEL")),
		Generation: DefaultGeneration,
		Ark: ArkConfig{
			APIKey:    strings.TrimSpace(os.Getenv("ARK_API_KEY")),
			AccessKey: strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
			SecretKey: strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
			BaseURL:   getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
			Region:    getEnvOrDefault("ARK_REGION", "cn-beijing"),
		},
		OpenAI: OpenAIConfig{
			APIKey:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
			BaseURL: strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
		},
		Gemini: GeminiConfig{
			APIKey: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		},
	}

	backend, err := parseBackend(os.Getenv("AI_BACKEND"), cfg)
	if err != nil {
		return AIConfig{}, err
	}
	cfg.Backend = backend

	// 方舟与 Gemini 不认识默认模型名，必须显式配置 AI_MODEL。
	if cfg.Model == "" && backend == BackendOpenAI {
		cfg.Model = DefaultModel
	}

	return cfg, nil
}

// parseBackend 解析 AI_BACKEND；未设置时选择第一个配置了凭证的后端，方舟优先。
func parseBackend(raw string, cfg AIConfig) (Backend, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch Backend(value) {
	case BackendArk, BackendOpenAI, BackendGemini:
		return Backend(value), nil
	case "":
	default:
		return "", fmt.Errorf("invalid AI_BACKEND value %q: want ark, openai or gemini", value)
	}

	switch {
	case cfg.Ark.Enabled():
		return BackendArk, nil
	case cfg.OpenAI.Enabled():
		return BackendOpenAI, nil
	case cfg.Gemini.Enabled():
		return BackendGemini, nil
	default:
		return BackendArk, nil
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
