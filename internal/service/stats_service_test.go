package service

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"lingotaboo/internal/models"
	"lingotaboo/internal/repository"
)

type fakeStatsStore struct {
	rows []repository.CompletedSessionRow
}

func (f *fakeStatsStore) CompletedSessions(_ context.Context, userID int64, targetLanguage string) ([]repository.CompletedSessionRow, error) {
	if targetLanguage == "" {
		return f.rows, nil
	}
	var filtered []repository.CompletedSessionRow
	for _, row := range f.rows {
		if row.TargetLanguage == targetLanguage {
			filtered = append(filtered, row)
		}
	}
	return filtered, nil
}

func TestGetUserStatsAggregates(t *testing.T) {
	store := &fakeStatsStore{rows: []repository.CompletedSessionRow{
		{Score: 100, WordsFound: 3, TargetLanguage: "fr"},
		{Score: 67, WordsFound: 2, TargetLanguage: "fr"},
		{Score: 33, WordsFound: 1, TargetLanguage: "es"},
	}}
	svc := NewStatsService(store, newFakeSessionStore())

	stats, err := svc.GetUserStats(context.Background(), 1, "")
	if err != nil {
		t.Fatalf("GetUserStats() error = %v", err)
	}

	if stats.TotalGames != 3 {
		t.Errorf("TotalGames = %d, want 3", stats.TotalGames)
	}
	// (100+67+33)/3 = 66.67, rounds half-up to 67
	if stats.AverageScore != 67 {
		t.Errorf("AverageScore = %d, want 67", stats.AverageScore)
	}
	if stats.BestScore != 100 {
		t.Errorf("BestScore = %d, want 100", stats.BestScore)
	}
	if stats.TotalWordsFound != 6 {
		t.Errorf("TotalWordsFound = %d, want 6", stats.TotalWordsFound)
	}
	if stats.AvgWordsFound != 2.0 {
		t.Errorf("AvgWordsFound = %v, want 2.0", stats.AvgWordsFound)
	}
	if want := []string{"es", "fr"}; !reflect.DeepEqual(stats.Languages, want) {
		t.Errorf("Languages = %v, want %v", stats.Languages, want)
	}
}

func TestGetUserStatsLanguageFilter(t *testing.T) {
	store := &fakeStatsStore{rows: []repository.CompletedSessionRow{
		{Score: 100, WordsFound: 3, TargetLanguage: "fr"},
		{Score: 50, WordsFound: 1, TargetLanguage: "es"},
	}}
	svc := NewStatsService(store, newFakeSessionStore())

	stats, err := svc.GetUserStats(context.Background(), 1, "fr")
	if err != nil {
		t.Fatalf("GetUserStats() error = %v", err)
	}
	if stats.TotalGames != 1 || stats.BestScore != 100 {
		t.Errorf("filtered stats = %+v, want only the fr session", stats)
	}
	if want := []string{"fr"}; !reflect.DeepEqual(stats.Languages, want) {
		t.Errorf("Languages = %v, want %v", stats.Languages, want)
	}
}

func TestGetUserStatsNoGames(t *testing.T) {
	svc := NewStatsService(&fakeStatsStore{}, newFakeSessionStore())

	stats, err := svc.GetUserStats(context.Background(), 1, "")
	if err != nil {
		t.Fatalf("a user with no games must get the zero value, not an error: %v", err)
	}
	if stats.TotalGames != 0 || stats.AverageScore != 0 || stats.BestScore != 0 {
		t.Errorf("stats = %+v, want zero values", stats)
	}
	if stats.Languages == nil || len(stats.Languages) != 0 {
		t.Errorf("Languages = %#v, want empty non-nil slice", stats.Languages)
	}
}

func historySession(id string, status models.SessionStatus, startedAt time.Time) *models.GameSession {
	return &models.GameSession{
		ID:                 id,
		CardID:             "card-1",
		UserID:             1,
		TargetLanguage:     "fr",
		AnswerWord:         "voiture",
		TranslatedKeyWords: []string{"rapide", "rouge", "acier"},
		WordsFound:         []string{"rapide"},
		Status:             status,
		Score:              33,
		StartedAt:          startedAt,
		UpdatedAt:          startedAt,
	}
}

// History covers played sessions only: a session that was started but
// never submitted to must not appear.
func TestGetUserHistoryExcludesUnplayedSessions(t *testing.T) {
	sessions := newFakeSessionStore()
	ctx := context.Background()
	base := time.Now()

	sessions.Create(ctx, historySession("s-initialized", models.StatusInitialized, base))
	sessions.Create(ctx, historySession("s-in-progress", models.StatusInProgress, base.Add(time.Minute)))
	sessions.Create(ctx, historySession("s-completed", models.StatusCompleted, base.Add(2*time.Minute)))

	svc := NewStatsService(&fakeStatsStore{}, sessions)

	history, err := svc.GetUserHistory(ctx, 1, "", 0)
	if err != nil {
		t.Fatalf("GetUserHistory() error = %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history = %d sessions, want 2", len(history))
	}
	if history[0].ID != "s-completed" || history[1].ID != "s-in-progress" {
		t.Errorf("history order = [%s %s], want most-recent-first without the unplayed session",
			history[0].ID, history[1].ID)
	}
	for _, summary := range history {
		if summary.Status == models.StatusInitialized {
			t.Errorf("initialized session %s leaked into history", summary.ID)
		}
	}
}

func TestGetUserHistoryCapsLimit(t *testing.T) {
	sessions := newFakeSessionStore()
	ctx := context.Background()
	base := time.Now()

	for i := 0; i < MaxSessionListLimit+10; i++ {
		id := fmt.Sprintf("s-%03d", i)
		sessions.Create(ctx, historySession(id, models.StatusCompleted, base.Add(time.Duration(i)*time.Second)))
	}

	svc := NewStatsService(&fakeStatsStore{}, sessions)

	history, err := svc.GetUserHistory(ctx, 1, "", 1000)
	if err != nil {
		t.Fatalf("GetUserHistory() error = %v", err)
	}
	if len(history) != MaxSessionListLimit {
		t.Errorf("history = %d sessions, want the %d cap", len(history), MaxSessionListLimit)
	}
}

func TestGetUserStatsAverageRounding(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   int
	}{
		{"exact", []int{50, 50}, 50},
		{"rounds up at half", []int{50, 51}, 51},
		{"rounds down below half", []int{33, 33, 34}, 33},
		{"single game", []int{17}, 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := make([]repository.CompletedSessionRow, len(tt.scores))
			for i, score := range tt.scores {
				rows[i] = repository.CompletedSessionRow{Score: score, TargetLanguage: "en"}
			}
			svc := NewStatsService(&fakeStatsStore{rows: rows}, newFakeSessionStore())

			stats, err := svc.GetUserStats(context.Background(), 1, "")
			if err != nil {
				t.Fatalf("GetUserStats() error = %v", err)
			}
			if stats.AverageScore != tt.want {
				t.Errorf("AverageScore = %d, want %d", stats.AverageScore, tt.want)
			}
		})
	}
}
