package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"lingotaboo/internal/security"
	"lingotaboo/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const userIDContextKey ContextKey = "userID"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	limiter     *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, limiter *security.RateLimiter) *Middleware {
	return &Middleware{
		authService: authService,
		limiter:     limiter,
	}
}

// RequireAuth verifies the bearer token and puts the user ID on the request
// context. Requests without a valid token get a 401.
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondWithJSON(w, http.StatusUnauthorized, errorBody{
				Code:    "unauthorized",
				Message: "missing bearer token",
			})
			return
		}

		userID, err := m.authService.VerifyToken(token)
		if err != nil {
			respondWithJSON(w, http.StatusUnauthorized, errorBody{
				Code:    "unauthorized",
				Message: "invalid or expired token",
			})
			return
		}

		ctx := context.WithValue(r.Context(), userIDContextKey, userID)
		next(w, r.WithContext(ctx))
	}
}

// RateLimit rejects clients that exceed the configured request rate.
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.limiter != nil && !m.limiter.Allow(security.ClientKey(r)) {
			respondWithJSON(w, http.StatusTooManyRequests, errorBody{
				Code:    "rate_limited",
				Message: "too many requests, slow down",
			})
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// UserIDFromContext retrieves the authenticated user ID, or 0.
func UserIDFromContext(ctx context.Context) int64 {
	userID, ok := ctx.Value(userIDContextKey).(int64)
	if !ok {
		return 0
	}
	return userID
}
