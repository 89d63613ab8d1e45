package service

import (
	"context"
	"testing"

	"lingotaboo/internal/models"
)

func TestRecordSkipsZeroTokenEvents(t *testing.T) {
	store := &fakeUsageStore{}
	svc := NewUsageService(store)

	svc.Record(context.Background(), models.UsageEvent{
		UserID:      1,
		RequestType: models.RequestTypeTranslation,
	})

	if len(store.events) != 0 {
		t.Errorf("events = %d, want none for a zero-token call", len(store.events))
	}
}

func TestRecordDerivesCost(t *testing.T) {
	store := &fakeUsageStore{}
	svc := NewUsageService(store)

	svc.Record(context.Background(), models.UsageEvent{
		UserID:           1,
		RequestType:      models.RequestTypeEvaluation,
		PromptTokens:     100,
		CompletionTokens: 50,
	})

	if len(store.events) != 1 {
		t.Fatalf("events = %d, want 1", len(store.events))
	}
	event := store.events[0]
	want := models.EstimateCost(models.TokenUsage{PromptTokens: 100, CompletionTokens: 50})
	if event.Cost != want {
		t.Errorf("Cost = %v, want %v", event.Cost, want)
	}
	if event.CreatedAt.IsZero() {
		t.Error("CreatedAt must be stamped on record")
	}
}

func TestTotalCostSumsPerUser(t *testing.T) {
	store := &fakeUsageStore{}
	svc := NewUsageService(store)
	ctx := context.Background()

	svc.Record(ctx, models.UsageEvent{UserID: 1, PromptTokens: 100, CompletionTokens: 50})
	svc.Record(ctx, models.UsageEvent{UserID: 1, PromptTokens: 200, CompletionTokens: 100})
	svc.Record(ctx, models.UsageEvent{UserID: 2, PromptTokens: 1000, CompletionTokens: 500})

	total, err := svc.TotalCost(ctx, 1)
	if err != nil {
		t.Fatalf("TotalCost() error = %v", err)
	}

	want := models.EstimateCost(models.TokenUsage{PromptTokens: 100, CompletionTokens: 50}) +
		models.EstimateCost(models.TokenUsage{PromptTokens: 200, CompletionTokens: 100})
	if total != want {
		t.Errorf("TotalCost = %v, want %v (user 2's events excluded)", total, want)
	}
}
