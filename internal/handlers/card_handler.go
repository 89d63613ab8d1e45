package handlers

import (
	"net/http"
	"strconv"

	"lingotaboo/internal/models"
	"lingotaboo/internal/service"
)

// CardHandler serves the card catalog
type CardHandler struct {
	cardService *service.CardService
}

// NewCardHandler creates a new card handler
func NewCardHandler(cardService *service.CardService) *CardHandler {
	return &CardHandler{cardService: cardService}
}

// cardResponse is the client view of a card. The key words and answer word
// are part of the game and deliberately visible; the player's challenge is
// using them, not knowing them.
type cardResponse struct {
	ID         string   `json:"id"`
	AnswerWord string   `json:"answerWord"`
	KeyWords   []string `json:"keyWords"`
	Category   string   `json:"category"`
	Difficulty string   `json:"difficulty"`
	Language   string   `json:"language"`
}

func toCardResponse(card models.Card) cardResponse {
	return cardResponse{
		ID:         card.ID,
		AnswerWord: card.AnswerWord,
		KeyWords:   card.KeyWords,
		Category:   card.Category,
		Difficulty: card.Difficulty,
		Language:   card.Language,
	}
}

// GetCards handles GET /api/cards?count=&category=&difficulty=
func (h *CardHandler) GetCards(w http.ResponseWriter, r *http.Request) {
	count := 1
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, models.NewValidationError("count", "count must be a number"))
			return
		}
		count = parsed
	}

	cards, err := h.cardService.GetRandomCards(r.Context(), count,
		r.URL.Query().Get("category"), r.URL.Query().Get("difficulty"))
	if err != nil {
		respondWithError(w, err)
		return
	}

	responses := make([]cardResponse, 0, len(cards))
	for _, card := range cards {
		responses = append(responses, toCardResponse(card))
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"cards": responses})
}

// GetCategories handles GET /api/cards/categories
func (h *CardHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.cardService.GetCategories(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"categories": categories})
}
