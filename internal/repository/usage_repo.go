package repository

import (
	"context"
	"database/sql"

	"lingotaboo/internal/database"
	"lingotaboo/internal/models"
)

// UsageRepository handles the append-only oracle usage ledger
type UsageRepository struct {
	db *database.DB
}

// NewUsageRepository creates a new usage repository
func NewUsageRepository(db *database.DB) *UsageRepository {
	return &UsageRepository{db: db}
}

// Insert appends one usage event
func (r *UsageRepository) Insert(ctx context.Context, event *models.UsageEvent) error {
	var sessionID sql.NullString
	if event.SessionID != "" {
		sessionID = sql.NullString{String: event.SessionID, Valid: true}
	}

	query := `
		INSERT INTO usage_events
			(user_id, session_id, request_type, prompt_tokens, completion_tokens,
			 cost, attempt_count, game_completed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(ctx, query,
		event.UserID, sessionID, event.RequestType, event.PromptTokens,
		event.CompletionTokens, event.Cost, event.AttemptCount,
		event.GameCompleted, event.CreatedAt)
	if err != nil {
		return err
	}

	event.ID = id
	return nil
}

// TotalCostForUser sums the recorded cost of a user's oracle calls
func (r *UsageRepository) TotalCostForUser(ctx context.Context, userID int64) (float64, error) {
	var total float64
	query := "SELECT COALESCE(SUM(cost), 0) FROM usage_events WHERE user_id = ?"
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&total)
	return total, err
}
