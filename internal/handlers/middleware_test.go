package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lingotaboo/internal/models"
	"lingotaboo/internal/security"
	"lingotaboo/internal/service"
)

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, userID int64) (*models.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return user, nil
}

func registeredUser(t *testing.T, auth *service.AuthService) (int64, string) {
	t.Helper()
	user, token, err := auth.Register(context.Background(), "player@example.com", "password123", "Player One")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	return user.ID, token
}

func TestRequireAuthPassesUserID(t *testing.T) {
	auth := service.NewAuthService(newFakeUserStore(), "test-secret", time.Hour)
	m := NewMiddleware(auth, nil)

	userID, token := registeredUser(t, auth)

	var gotUserID int64
	handler := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest("GET", "/api/game/stats", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotUserID != userID {
		t.Errorf("user ID in context = %d, want %d", gotUserID, userID)
	}
}

func TestRequireAuthRejectsBadTokens(t *testing.T) {
	auth := service.NewAuthService(newFakeUserStore(), "test-secret", time.Hour)
	m := NewMiddleware(auth, nil)

	handler := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run without valid auth")
	})

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/game/stats", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler(w, r)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", w.Code)
			}
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	auth := service.NewAuthService(newFakeUserStore(), "test-secret", time.Hour)
	m := NewMiddleware(auth, security.NewRateLimiter(2, time.Minute))

	handler := m.RateLimit(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		r := httptest.NewRequest("POST", "/api/auth/login", nil)
		r.RemoteAddr = "203.0.113.9:1234"
		w := httptest.NewRecorder()
		handler(w, r)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, w.Code)
		}
	}

	r := httptest.NewRequest("POST", "/api/auth/login", nil)
	r.RemoteAddr = "203.0.113.9:1234"
	w := httptest.NewRecorder()
	handler(w, r)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", w.Code)
	}
}
