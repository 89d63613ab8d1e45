package repository

import (
	"context"
	"encoding/json"

	"lingotaboo/internal/database"
	"lingotaboo/internal/models"
)

// StatsRepository reads the per-session rows the statistics aggregator
// folds over.
type StatsRepository struct {
	db *database.DB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *database.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// CompletedSessionRow is the slice of a completed session the aggregator needs.
type CompletedSessionRow struct {
	Score          int
	WordsFound     int
	TargetLanguage string
}

// CompletedSessions returns score, words-found count and language for every
// completed session of a user, optionally filtered by target language.
func (r *StatsRepository) CompletedSessions(ctx context.Context, userID int64, targetLanguage string) ([]CompletedSessionRow, error) {
	query := `
		SELECT score, words_found, target_language
		FROM game_sessions
		WHERE user_id = ? AND status = ?
	`
	args := []interface{}{userID, string(models.StatusCompleted)}

	if targetLanguage != "" {
		query += " AND target_language = ?"
		args = append(args, targetLanguage)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []CompletedSessionRow
	for rows.Next() {
		var row CompletedSessionRow
		var foundJSON string

		if err := rows.Scan(&row.Score, &foundJSON, &row.TargetLanguage); err != nil {
			return nil, err
		}

		var found []string
		if err := json.Unmarshal([]byte(foundJSON), &found); err != nil {
			return nil, err
		}
		row.WordsFound = len(found)

		results = append(results, row)
	}

	return results, rows.Err()
}
