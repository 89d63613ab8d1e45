package models

import "time"

// Usage event request types
const (
	RequestTypeTranslation = "translation"
	RequestTypeEvaluation  = "evaluation"
	RequestTypeExample     = "example"
)

// Per-token pricing used to derive a cost estimate from oracle token counts.
// These track the upstream provider's published rates.
const (
	costPerPromptToken     = 0.0000005
	costPerCompletionToken = 0.0000015
)

// UsageEvent records the cost and size of one oracle call. Events are
// write-once and append-only; failures to record them never block gameplay.
type UsageEvent struct {
	ID               int64
	UserID           int64
	SessionID        string
	RequestType      string
	PromptTokens     int
	CompletionTokens int
	Cost             float64
	AttemptCount     int
	GameCompleted    bool
	CreatedAt        time.Time
}

// TokenUsage is the raw token accounting returned by an oracle call.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
}

// Add merges another usage count into u.
func (u *TokenUsage) Add(other TokenUsage) {
	u.PromptTokens += other.PromptTokens
	u.CompletionTokens += other.CompletionTokens
}

// Total returns the combined token count.
func (u TokenUsage) Total() int {
	return u.PromptTokens + u.CompletionTokens
}

// EstimateCost derives a dollar cost from token counts.
func EstimateCost(usage TokenUsage) float64 {
	return float64(usage.PromptTokens)*costPerPromptToken +
		float64(usage.CompletionTokens)*costPerCompletionToken
}
