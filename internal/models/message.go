package models

import "time"

// Transcript entry roles
const (
	MessageRoleDescription = "user_description"
	MessageRoleEvaluation  = "evaluation"
	MessageRoleFinished    = "game_finished"
)

// SessionMessage is one entry in a session's append-only transcript.
// Seq is assigned in acceptance order by the engine, so per-attempt word
// diffs are well-defined against the immediately preceding entry.
type SessionMessage struct {
	ID        int64
	SessionID string
	Seq       int
	Role      string
	Body      MessageBody
	CreatedAt time.Time
}

// MessageBody is the structured payload of a transcript entry. Fields are
// populated per role; the whole struct is stored as a JSON document.
type MessageBody struct {
	Description           string   `json:"description,omitempty"`
	WordsFoundThisAttempt []string `json:"words_found_this_attempt,omitempty"`
	WordsFoundTotal       []string `json:"words_found_total,omitempty"`
	WordsMissed           []string `json:"words_missed,omitempty"`
	Score                 int      `json:"score"`
	AnswerMentioned       bool     `json:"answer_mentioned,omitempty"`
	Fallback              bool     `json:"fallback,omitempty"`
	AttemptCount          int      `json:"attempt_count,omitempty"`
	FinishedByUser        bool     `json:"finished_by_user,omitempty"`
}
