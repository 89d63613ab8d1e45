package service

import (
	"context"

	"lingotaboo/internal/models"
)

// MaxCardsPerRequest is the hard cap on cards returned per catalog request.
const MaxCardsPerRequest = 10

// CardStore is the persistence boundary for the card catalog.
type CardStore interface {
	GetByID(ctx context.Context, cardID string) (*models.Card, error)
	GetRandomActive(ctx context.Context, count int, category, difficulty string) ([]models.Card, error)
	GetCategories(ctx context.Context) ([]string, error)
	IncrementUsage(ctx context.Context, cardID string) error
}

// CardService exposes the card catalog to clients and the game engine
type CardService struct {
	cards CardStore
}

// NewCardService creates a new card service
func NewCardService(cards CardStore) *CardService {
	return &CardService{cards: cards}
}

// GetRandomCards returns up to count active cards matching the optional
// filters. count is clamped to [1, MaxCardsPerRequest]; zero matches is
// reported as not found.
func (s *CardService) GetRandomCards(ctx context.Context, count int, category, difficulty string) ([]models.Card, error) {
	if count <= 0 {
		count = 1
	}
	if count > MaxCardsPerRequest {
		count = MaxCardsPerRequest
	}
	if difficulty != "" && !models.ValidDifficulty(difficulty) {
		return nil, models.NewValidationError("difficulty", "difficulty must be easy, medium or hard")
	}

	cards, err := s.cards.GetRandomActive(ctx, count, category, difficulty)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, models.ErrNotFound
	}

	return cards, nil
}

// GetCategories returns the distinct category labels across active cards
func (s *CardService) GetCategories(ctx context.Context) ([]string, error) {
	return s.cards.GetCategories(ctx)
}
