package models

import (
	"testing"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    SessionStatus
		to      SessionStatus
		allowed bool
	}{
		{"initialized to in_progress", StatusInitialized, StatusInProgress, true},
		{"initialized to completed", StatusInitialized, StatusCompleted, true},
		{"initialized to abandoned", StatusInitialized, StatusAbandoned, true},
		{"in_progress to completed", StatusInProgress, StatusCompleted, true},
		{"in_progress to abandoned", StatusInProgress, StatusAbandoned, true},
		{"completed is terminal", StatusCompleted, StatusInProgress, false},
		{"completed cannot restart", StatusCompleted, StatusInitialized, false},
		{"abandoned is terminal", StatusAbandoned, StatusInProgress, false},
		{"in_progress cannot regress", StatusInProgress, StatusInitialized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.allowed)
			}
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	if StatusInitialized.Terminal() || StatusInProgress.Terminal() {
		t.Error("non-terminal statuses reported as terminal")
	}
	if !StatusCompleted.Terminal() || !StatusAbandoned.Terminal() {
		t.Error("terminal statuses not reported as terminal")
	}
}

func TestComputeScore(t *testing.T) {
	tests := []struct {
		name     string
		found    int
		total    int
		expected int
	}{
		{"zero found", 0, 3, 0},
		{"all found", 3, 3, 100},
		{"two thirds rounds up", 2, 3, 67},
		{"one third rounds down", 1, 3, 33},
		{"half", 1, 2, 50},
		{"one sixth rounds to 17", 1, 6, 17},
		{"five sixths rounds to 83", 5, 6, 83},
		{"empty word list", 0, 0, 0},
		{"negative total", 1, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeScore(tt.found, tt.total); got != tt.expected {
				t.Errorf("ComputeScore(%d, %d) = %d, want %d", tt.found, tt.total, got, tt.expected)
			}
		})
	}
}

func TestCardValidate(t *testing.T) {
	tests := []struct {
		name    string
		card    Card
		wantErr bool
	}{
		{
			name: "valid card",
			card: Card{
				AnswerWord: "car",
				KeyWords:   []string{"fast", "red", "metal"},
				Difficulty: DifficultyEasy,
			},
			wantErr: false,
		},
		{
			name: "missing answer word",
			card: Card{
				KeyWords:   []string{"fast"},
				Difficulty: DifficultyEasy,
			},
			wantErr: true,
		},
		{
			name: "no key words",
			card: Card{
				AnswerWord: "car",
				Difficulty: DifficultyMedium,
			},
			wantErr: true,
		},
		{
			name: "duplicate key word case-insensitive",
			card: Card{
				AnswerWord: "car",
				KeyWords:   []string{"Fast", "fast"},
				Difficulty: DifficultyHard,
			},
			wantErr: true,
		},
		{
			name: "key words contain answer word",
			card: Card{
				AnswerWord: "Car",
				KeyWords:   []string{"fast", "car"},
				Difficulty: DifficultyEasy,
			},
			wantErr: true,
		},
		{
			name: "unknown difficulty",
			card: Card{
				AnswerWord: "car",
				KeyWords:   []string{"fast"},
				Difficulty: "extreme",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.card.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWordsMissed(t *testing.T) {
	session := GameSession{
		TranslatedKeyWords: []string{"rapide", "rouge", "metal"},
		WordsFound:         []string{"Rapide"},
	}

	missed := session.WordsMissed()
	if len(missed) != 2 {
		t.Fatalf("expected 2 missed words, got %d: %v", len(missed), missed)
	}
	if missed[0] != "rouge" || missed[1] != "metal" {
		t.Errorf("missed words out of order: %v", missed)
	}

	// found + missed always partitions the translated list
	if len(session.WordsFound)+len(missed) != len(session.TranslatedKeyWords) {
		t.Error("found + missed does not cover the translated key words")
	}
}

func TestAllWordsFound(t *testing.T) {
	session := GameSession{
		TranslatedKeyWords: []string{"a", "b"},
		WordsFound:         []string{"a"},
	}
	if session.AllWordsFound() {
		t.Error("session with missing words reported complete")
	}

	session.WordsFound = []string{"a", "b"}
	if !session.AllWordsFound() {
		t.Error("session with all words found not reported complete")
	}

	empty := GameSession{}
	if empty.AllWordsFound() {
		t.Error("session with no key words must not report complete")
	}
}
