package service

import (
	"context"
	"sort"

	"lingotaboo/internal/models"
	"lingotaboo/internal/repository"
)

// StatsStore is the persistence boundary for the statistics aggregator.
type StatsStore interface {
	CompletedSessions(ctx context.Context, userID int64, targetLanguage string) ([]repository.CompletedSessionRow, error)
}

// StatsService derives per-user summary statistics by folding over
// completed sessions.
type StatsService struct {
	stats    StatsStore
	sessions SessionStore
}

// NewStatsService creates a new stats service
func NewStatsService(stats StatsStore, sessions SessionStore) *StatsService {
	return &StatsService{stats: stats, sessions: sessions}
}

// GetUserStats folds over the user's completed sessions. A user with no
// completed games gets the zero-valued result, never an error.
func (s *StatsService) GetUserStats(ctx context.Context, userID int64, targetLanguage string) (*models.UserStats, error) {
	rows, err := s.stats.CompletedSessions(ctx, userID, targetLanguage)
	if err != nil {
		return nil, err
	}

	stats := &models.UserStats{Languages: []string{}}
	if len(rows) == 0 {
		return stats, nil
	}

	totalScore := 0
	languages := make(map[string]bool)
	for _, row := range rows {
		totalScore += row.Score
		stats.TotalWordsFound += row.WordsFound
		if row.Score > stats.BestScore {
			stats.BestScore = row.Score
		}
		if row.TargetLanguage != "" {
			languages[row.TargetLanguage] = true
		}
	}

	stats.TotalGames = len(rows)
	// Round half-up, consistent with session scoring
	stats.AverageScore = (2*totalScore + stats.TotalGames) / (2 * stats.TotalGames)
	stats.AvgWordsFound = float64(stats.TotalWordsFound) / float64(stats.TotalGames)

	for language := range languages {
		stats.Languages = append(stats.Languages, language)
	}
	sort.Strings(stats.Languages)

	return stats, nil
}

// GetUserHistory returns the user's completed and in-progress sessions
// most-recent-first, capped at MaxSessionListLimit. Sessions with no
// accepted submission yet are not history.
func (s *StatsService) GetUserHistory(ctx context.Context, userID int64, targetLanguage string, limit int) ([]models.SessionSummary, error) {
	if limit <= 0 {
		limit = defaultSessionListLimit
	}
	if limit > MaxSessionListLimit {
		limit = MaxSessionListLimit
	}

	history, err := s.sessions.ListHistoryForUser(ctx, userID, targetLanguage, limit)
	if err != nil {
		return nil, err
	}
	if history == nil {
		history = []models.SessionSummary{}
	}
	return history, nil
}
