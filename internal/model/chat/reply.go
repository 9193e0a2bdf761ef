package chat

import "time"

// Outcome 一轮对话的结束方式
type Outcome string

const (
	OutcomeOK              Outcome = "ok"
	OutcomeEmptyInput      Outcome = "empty_input"
	OutcomeEmptyGeneration Outcome = "empty_generation"
	OutcomeInferenceError  Outcome = "inference_error"
	OutcomeUnavailable     Outcome = "unavailable"
)

// Reply 一次提交对应的回复，不做持久化
type Reply struct {
	ID         string    `json:"id"`
	Input      string    `json:"input"`
	Text       string    `json:"reply"`
	Outcome    Outcome   `json:"outcome"`
	Sentiments []string  `json:"sentiments,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	DurationMs int64     `json:"durationMs"`
}
