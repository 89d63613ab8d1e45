package service

import (
	"context"
	"log"
	"time"

	"lingotaboo/internal/models"
)

// UsageStore is the persistence boundary for the usage ledger.
type UsageStore interface {
	Insert(ctx context.Context, event *models.UsageEvent) error
	TotalCostForUser(ctx context.Context, userID int64) (float64, error)
}

// UsageService records oracle usage for billing and observability. Ledger
// writes are best-effort: failures are logged and never surface to gameplay.
type UsageService struct {
	store UsageStore
}

// NewUsageService creates a new usage service
func NewUsageService(store UsageStore) *UsageService {
	return &UsageService{store: store}
}

// Record appends a usage event. Nothing is recorded for zero-token calls.
func (s *UsageService) Record(ctx context.Context, event models.UsageEvent) {
	if s == nil || s.store == nil {
		return
	}
	usage := models.TokenUsage{
		PromptTokens:     event.PromptTokens,
		CompletionTokens: event.CompletionTokens,
	}
	if usage.Total() == 0 {
		return
	}

	event.Cost = models.EstimateCost(usage)
	event.CreatedAt = time.Now()

	if err := s.store.Insert(ctx, &event); err != nil {
		log.Printf("Warning: failed to record usage event (type=%s user=%d): %v",
			event.RequestType, event.UserID, err)
	}
}

// TotalCost returns the accumulated oracle cost for one user.
func (s *UsageService) TotalCost(ctx context.Context, userID int64) (float64, error) {
	if s == nil || s.store == nil {
		return 0, nil
	}
	return s.store.TotalCostForUser(ctx, userID)
}
