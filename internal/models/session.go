package models

import (
	"strings"
	"time"
)

// SessionStatus is the explicit lifecycle state of a game session.
type SessionStatus string

const (
	StatusInitialized SessionStatus = "initialized"
	StatusInProgress  SessionStatus = "in_progress"
	StatusCompleted   SessionStatus = "completed"
	StatusAbandoned   SessionStatus = "abandoned"
)

// Valid reports whether s is a known status value.
func (s SessionStatus) Valid() bool {
	switch s {
	case StatusInitialized, StatusInProgress, StatusCompleted, StatusAbandoned:
		return true
	}
	return false
}

// Terminal reports whether the status permits no further gameplay.
func (s SessionStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusAbandoned
}

// CanTransitionTo is the single authority on legal status transitions.
// Terminal states never regress.
func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	switch s {
	case StatusInitialized:
		return next == StatusInProgress || next == StatusCompleted || next == StatusAbandoned
	case StatusInProgress:
		return next == StatusCompleted || next == StatusAbandoned
	default:
		return false
	}
}

// EvaluationResult is the evaluator's judgment of one description, and at
// session completion the canonical final result.
type EvaluationResult struct {
	WordsUsed       []string `json:"words_used"`
	AnswerMentioned bool     `json:"answer_mentioned"`
	Quality         string   `json:"quality,omitempty"`
	Fallback        bool     `json:"fallback,omitempty"`
	FinishedByUser  bool     `json:"finished_by_user,omitempty"`
}

// GameSession is one player's attempt at one card in one target language.
// Key word snapshots are frozen at creation; OriginalKeyWords and
// TranslatedKeyWords are index-aligned and equal in length.
type GameSession struct {
	ID                   string
	CardID               string
	UserID               int64
	TargetLanguage       string
	AnswerWord           string
	OriginalKeyWords     []string
	TranslatedKeyWords   []string
	Status               SessionStatus
	WordsFound           []string
	Score                int
	UserDescription      string
	EvaluationResult     *EvaluationResult
	AIExampleDescription string
	StartedAt            time.Time
	CompletedAt          *time.Time
	UpdatedAt            time.Time
}

// WordsMissed derives the still-undiscovered key words. It is recomputed
// from the translated list on every call and never stored as truth.
func (s *GameSession) WordsMissed() []string {
	found := make(map[string]bool, len(s.WordsFound))
	for _, w := range s.WordsFound {
		found[strings.ToLower(w)] = true
	}

	missed := make([]string, 0, len(s.TranslatedKeyWords))
	for _, w := range s.TranslatedKeyWords {
		if !found[strings.ToLower(w)] {
			missed = append(missed, w)
		}
	}
	return missed
}

// AllWordsFound reports whether every translated key word has been discovered.
func (s *GameSession) AllWordsFound() bool {
	return len(s.TranslatedKeyWords) > 0 && len(s.WordsFound) == len(s.TranslatedKeyWords)
}

// ComputeScore returns the integer percentage of key words found, rounded
// half-up and clamped to [0,100].
func ComputeScore(found, total int) int {
	if total <= 0 {
		return 0
	}
	score := (200*found + total) / (2 * total)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// SessionSummary is the list-view projection of a session.
type SessionSummary struct {
	ID             string
	CardID         string
	TargetLanguage string
	AnswerWord     string
	Status         SessionStatus
	Score          int
	WordsFound     int
	WordsTotal     int
	StartedAt      time.Time
	CompletedAt    *time.Time
}
