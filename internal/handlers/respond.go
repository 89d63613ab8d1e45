package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"lingotaboo/internal/models"
)

// errorBody is the JSON error envelope. Code is a stable machine-readable
// string; Message is for humans and may change.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// respondWithError maps a service error onto an HTTP status and a stable
// error code. Unknown errors become opaque 500s.
func respondWithError(w http.ResponseWriter, err error) {
	var validationErr *models.ValidationError

	switch {
	case errors.As(err, &validationErr):
		respondWithJSON(w, http.StatusBadRequest, errorBody{
			Code:    "validation_failed",
			Message: validationErr.Message,
			Field:   validationErr.Field,
		})
	case errors.Is(err, models.ErrValidation):
		respondWithJSON(w, http.StatusBadRequest, errorBody{
			Code:    "validation_failed",
			Message: err.Error(),
		})
	case errors.Is(err, models.ErrNotFound):
		respondWithJSON(w, http.StatusNotFound, errorBody{
			Code:    "not_found",
			Message: "resource not found",
		})
	case errors.Is(err, models.ErrCardInactive):
		respondWithJSON(w, http.StatusConflict, errorBody{
			Code:    "card_inactive",
			Message: "this card is no longer available for new games",
		})
	case errors.Is(err, models.ErrAlreadyCompleted):
		respondWithJSON(w, http.StatusConflict, errorBody{
			Code:    "session_completed",
			Message: "this game session has already ended",
		})
	case errors.Is(err, models.ErrTranslationFailed):
		log.Printf("Translation failed: %v", err)
		respondWithJSON(w, http.StatusBadGateway, errorBody{
			Code:    "translation_failed",
			Message: "word translation is temporarily unavailable, please retry",
		})
	case errors.Is(err, models.ErrEvaluationFailed):
		log.Printf("Evaluation failed: %v", err)
		respondWithJSON(w, http.StatusBadGateway, errorBody{
			Code:    "evaluation_failed",
			Message: "description evaluation is temporarily unavailable, please retry",
		})
	default:
		log.Printf("Internal error: %v", err)
		respondWithJSON(w, http.StatusInternalServerError, errorBody{
			Code:    "internal_error",
			Message: "internal server error",
		})
	}
}

// decodeJSON parses a request body into dst with a size cap.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return models.NewValidationError("body", "invalid request body")
	}
	return nil
}
