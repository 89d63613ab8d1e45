package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"lingotaboo/internal/models"
)

func TestRespondWithErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", models.ErrNotFound, http.StatusNotFound, "not_found"},
		{"wrapped not found", fmt.Errorf("loading session: %w", models.ErrNotFound), http.StatusNotFound, "not_found"},
		{"validation", models.NewValidationError("description", "too short"), http.StatusBadRequest, "validation_failed"},
		{"card inactive", models.ErrCardInactive, http.StatusConflict, "card_inactive"},
		{"already completed", models.ErrAlreadyCompleted, http.StatusConflict, "session_completed"},
		{"translation failed", fmt.Errorf("%w: upstream 503", models.ErrTranslationFailed), http.StatusBadGateway, "translation_failed"},
		{"evaluation failed", fmt.Errorf("%w: timeout", models.ErrEvaluationFailed), http.StatusBadGateway, "evaluation_failed"},
		{"unknown", errors.New("disk full"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			respondWithError(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			var body errorBody
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("response is not JSON: %v", err)
			}
			if body.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", body.Code, tt.wantCode)
			}
		})
	}
}

func TestRespondWithErrorValidationIncludesField(t *testing.T) {
	w := httptest.NewRecorder()
	respondWithError(w, models.NewValidationError("email", "email is required"))

	var body errorBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body.Field != "email" {
		t.Errorf("field = %q, want email", body.Field)
	}
	if body.Message != "email is required" {
		t.Errorf("message = %q", body.Message)
	}
}

func TestRespondWithErrorDoesNotLeakInternals(t *testing.T) {
	w := httptest.NewRecorder()
	respondWithError(w, errors.New("pq: connection refused at 10.1.2.3"))

	var body errorBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body.Message != "internal server error" {
		t.Errorf("internal error detail leaked: %q", body.Message)
	}
}
