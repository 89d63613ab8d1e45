package models

import (
	"strings"
	"time"
)

// Difficulty levels for cards
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Card is a reusable game prompt: one answer word plus the key words a
// player should work into their description. Cards are immutable once
// published; only usage_count and is_active change.
type Card struct {
	ID         string
	AnswerWord string
	KeyWords   []string
	Category   string
	Difficulty string
	Language   string
	IsActive   bool
	UsageCount int
	CreatedAt  time.Time
}

// ValidDifficulty reports whether d is one of the known difficulty levels.
func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Validate checks the card invariants: key words are non-empty, contain no
// case-insensitive duplicates, and never include the answer word itself.
func (c *Card) Validate() error {
	if strings.TrimSpace(c.AnswerWord) == "" {
		return NewValidationError("answerWord", "answer word is required")
	}
	if len(c.KeyWords) == 0 {
		return NewValidationError("keyWords", "at least one key word is required")
	}
	if !ValidDifficulty(c.Difficulty) {
		return NewValidationError("difficulty", "difficulty must be easy, medium or hard")
	}

	answer := strings.ToLower(strings.TrimSpace(c.AnswerWord))
	seen := make(map[string]bool, len(c.KeyWords))
	for _, kw := range c.KeyWords {
		normalized := strings.ToLower(strings.TrimSpace(kw))
		if normalized == "" {
			return NewValidationError("keyWords", "key words cannot be empty")
		}
		if normalized == answer {
			return NewValidationError("keyWords", "key words cannot contain the answer word")
		}
		if seen[normalized] {
			return NewValidationError("keyWords", "duplicate key word: "+kw)
		}
		seen[normalized] = true
	}

	return nil
}
