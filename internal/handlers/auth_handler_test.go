package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lingotaboo/internal/service"
)

func newAuthHandler() *AuthHandler {
	return NewAuthHandler(service.NewAuthService(newFakeUserStore(), "test-secret", time.Hour))
}

func TestRegisterAndLogin(t *testing.T) {
	h := newAuthHandler()

	body := `{"email":"new@example.com","password":"password123","name":"New Player"}`
	r := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Register(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, want 201: %s", w.Code, w.Body.String())
	}

	var registered authResponse
	if err := json.NewDecoder(w.Body).Decode(&registered); err != nil {
		t.Fatalf("register response is not JSON: %v", err)
	}
	if registered.Token == "" {
		t.Error("register must return a token")
	}
	if registered.User.Email != "new@example.com" {
		t.Errorf("user email = %q", registered.User.Email)
	}

	r = httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":"new@example.com","password":"password123"}`))
	w = httptest.NewRecorder()
	h.Login(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200: %s", w.Code, w.Body.String())
	}
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"email":`},
		{"bad email", `{"email":"not-an-email","password":"password123","name":"Player"}`},
		{"short password", `{"email":"a@example.com","password":"short","name":"Player"}`},
		{"unknown field", `{"email":"a@example.com","password":"password123","name":"Player","admin":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newAuthHandler()
			r := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.Register(w, r)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestLoginWrongPassword(t *testing.T) {
	h := newAuthHandler()

	r := httptest.NewRequest("POST", "/api/auth/register",
		strings.NewReader(`{"email":"p@example.com","password":"password123","name":"Player"}`))
	h.Register(httptest.NewRecorder(), r)

	r = httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":"p@example.com","password":"wrongpassword"}`))
	w := httptest.NewRecorder()
	h.Login(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var body errorBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if strings.Contains(strings.ToLower(body.Message), "password hash") {
		t.Error("error detail must not hint at internals")
	}
}

func TestLoginUnknownEmailSameShapeAsWrongPassword(t *testing.T) {
	h := newAuthHandler()

	r := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":"ghost@example.com","password":"password123"}`))
	w := httptest.NewRecorder()
	h.Login(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 (same as wrong password)", w.Code)
	}
}
