package shared

import (
	"time"
)

// TokenUsage tracks the tokens consumed by a single generation call.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Model            string
}

// AgentMeta holds operational metadata for one generation call.
type AgentMeta struct {
	AgentName string
	RequestID string
	Usage     TokenUsage
	Latency   time.Duration
}
