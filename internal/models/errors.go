package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the game engine. Handlers map these to stable
// response codes; everything else is treated as an internal error.
var (
	// ErrNotFound covers both missing records and records owned by another
	// user, so responses never leak whether a foreign session exists.
	ErrNotFound = errors.New("not found")

	// ErrCardInactive means the card exists but has been deactivated.
	ErrCardInactive = errors.New("card is not active")

	// ErrAlreadyCompleted means the session is in a terminal state.
	ErrAlreadyCompleted = errors.New("session already completed")

	// ErrTranslationFailed means the translation oracle failed during
	// session start. No partial session is created.
	ErrTranslationFailed = errors.New("translation failed")

	// ErrEvaluationFailed means the evaluation oracle failed during a
	// submission. Nothing is recorded; the caller may retry.
	ErrEvaluationFailed = errors.New("evaluation failed")

	// ErrValidation is the base for caller-input errors. Use NewValidationError
	// to attach field detail.
	ErrValidation = errors.New("validation error")
)

// ValidationError carries the field and message detail for a rejected input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError builds a field-level validation error that satisfies
// errors.Is(err, ErrValidation).
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
