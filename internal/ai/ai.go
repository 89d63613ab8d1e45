// Package ai defines the external oracle boundary: translation of card
// words into the target language, evaluation of free-text descriptions,
// and exemplar generation. The game engine depends only on the interfaces
// here; the HTTP client is one implementation.
package ai

import (
	"context"

	"lingotaboo/internal/models"
)

// Evaluation is the oracle's judgment of one description.
type Evaluation struct {
	// WordsUsed are the key words the oracle recognized in the description,
	// reported using the exact spelling from the key-word list.
	WordsUsed []string

	// AnswerMentioned is true when the description leaks the answer word.
	AnswerMentioned bool

	// Quality is a free-form quality label ("good", "vague", ...).
	Quality string

	// Fallback marks results produced by the deterministic substring
	// matcher instead of a real oracle judgment.
	Fallback bool

	Usage models.TokenUsage
}

// Translation is the oracle's rendering of card words into a target language.
// Words is index-aligned with the input list.
type Translation struct {
	Words      []string
	AnswerWord string
	Usage      models.TokenUsage
}

// Translator converts key words and the answer word into a target language.
type Translator interface {
	Translate(ctx context.Context, words []string, answerWord, from, to string) (*Translation, error)
}

// Evaluator judges which key words a description used and whether the
// answer word was leaked.
type Evaluator interface {
	Evaluate(ctx context.Context, description string, keyWords []string, answerWord, language string) (*Evaluation, error)
}

// ExampleGenerator produces an exemplar description for a completed game.
type ExampleGenerator interface {
	GenerateExample(ctx context.Context, answerWord string, keyWords []string, language string) (string, models.TokenUsage, error)
}
