package chat

// Stage 单轮处理流水线中的阶段
type Stage string

const (
	StageIdle        Stage = "idle"
	StageComposing   Stage = "composing"
	StageNormalizing Stage = "normalizing"
	StageInferring   Stage = "inferring"
	StageAppending   Stage = "appending"
	StageDisplaying  Stage = "displaying"
)
