package handlers

import (
	"net/http"
	"strconv"
	"time"

	"lingotaboo/internal/models"
	"lingotaboo/internal/service"
)

// GameHandler serves the game session endpoints
type GameHandler struct {
	gameService *service.GameService
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameService *service.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

type startSessionRequest struct {
	CardID         string `json:"cardId"`
	TargetLanguage string `json:"targetLanguage"`
}

type submitRequest struct {
	Description    string `json:"description"`
	IncludeExample bool   `json:"includeExample,omitempty"`
}

type finishRequest struct {
	IncludeExample bool `json:"includeExample,omitempty"`
}

// sessionResponse is the client view of a session. The original-language
// key words stay hidden during play; the client shows the translated set.
type sessionResponse struct {
	ID             string     `json:"id"`
	CardID         string     `json:"cardId"`
	TargetLanguage string     `json:"targetLanguage"`
	AnswerWord     string     `json:"answerWord"`
	KeyWords       []string   `json:"keyWords"`
	Status         string     `json:"status"`
	WordsFound     []string   `json:"wordsFound"`
	Score          int        `json:"score"`
	StartedAt      time.Time  `json:"startedAt"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
}

func toSessionResponse(session *models.GameSession) sessionResponse {
	return sessionResponse{
		ID:             session.ID,
		CardID:         session.CardID,
		TargetLanguage: session.TargetLanguage,
		AnswerWord:     session.AnswerWord,
		KeyWords:       session.TranslatedKeyWords,
		Status:         string(session.Status),
		WordsFound:     session.WordsFound,
		Score:          session.Score,
		StartedAt:      session.StartedAt,
		CompletedAt:    session.CompletedAt,
	}
}

// StartSession handles POST /api/game/sessions
func (h *GameHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if req.CardID == "" {
		respondWithError(w, models.NewValidationError("cardId", "card id is required"))
		return
	}

	session, err := h.gameService.StartSession(r.Context(), UserIDFromContext(r.Context()), req.CardID, req.TargetLanguage)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, toSessionResponse(session))
}

type submitResponse struct {
	WordsFoundThisAttempt []string `json:"wordsFoundThisAttempt"`
	WordsFound            []string `json:"wordsFound"`
	WordsMissed           []string `json:"wordsMissed"`
	Score                 int      `json:"score"`
	IsGameComplete        bool     `json:"isGameComplete"`
	AnswerMentioned       bool     `json:"answerMentioned"`
	Fallback              bool     `json:"fallback,omitempty"`
	AIExample             string   `json:"aiExample,omitempty"`
}

// Submit handles POST /api/game/sessions/{id}/submit
func (h *GameHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, err)
		return
	}

	result, err := h.gameService.Submit(r.Context(), UserIDFromContext(r.Context()),
		r.PathValue("id"), req.Description, req.IncludeExample)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, submitResponse{
		WordsFoundThisAttempt: result.WordsFoundThisAttempt,
		WordsFound:            result.WordsFound,
		WordsMissed:           result.WordsMissed,
		Score:                 result.Score,
		IsGameComplete:        result.IsGameComplete,
		AnswerMentioned:       result.AnswerMentioned,
		Fallback:              result.Fallback,
		AIExample:             result.AIExample,
	})
}

type finishResponse struct {
	WordsFound   []string `json:"wordsFound"`
	WordsMissed  []string `json:"wordsMissed"`
	Score        int      `json:"score"`
	AttemptCount int      `json:"attemptCount"`
	AIExample    string   `json:"aiExample,omitempty"`
}

// Finish handles POST /api/game/sessions/{id}/finish
func (h *GameHandler) Finish(w http.ResponseWriter, r *http.Request) {
	var req finishRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithError(w, err)
			return
		}
	}

	result, err := h.gameService.Finish(r.Context(), UserIDFromContext(r.Context()),
		r.PathValue("id"), req.IncludeExample)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, finishResponse{
		WordsFound:   result.WordsFound,
		WordsMissed:  result.WordsMissed,
		Score:        result.Score,
		AttemptCount: result.AttemptCount,
		AIExample:    result.AIExample,
	})
}

type messageResponse struct {
	Seq       int                `json:"seq"`
	Role      string             `json:"role"`
	Body      models.MessageBody `json:"body"`
	CreatedAt time.Time          `json:"createdAt"`
}

type sessionDetailResponse struct {
	sessionResponse
	WordsMissed []string          `json:"wordsMissed"`
	Category    string            `json:"category,omitempty"`
	Difficulty  string            `json:"difficulty,omitempty"`
	AIExample   string            `json:"aiExample,omitempty"`
	Messages    []messageResponse `json:"messages"`
}

// GetSession handles GET /api/game/sessions/{id}
func (h *GameHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	detail, err := h.gameService.GetSession(r.Context(), UserIDFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		respondWithError(w, err)
		return
	}

	messages := make([]messageResponse, 0, len(detail.Messages))
	for _, message := range detail.Messages {
		messages = append(messages, messageResponse{
			Seq:       message.Seq,
			Role:      message.Role,
			Body:      message.Body,
			CreatedAt: message.CreatedAt,
		})
	}

	respondWithJSON(w, http.StatusOK, sessionDetailResponse{
		sessionResponse: toSessionResponse(detail.Session),
		WordsMissed:     detail.Session.WordsMissed(),
		Category:        detail.Category,
		Difficulty:      detail.Difficulty,
		AIExample:       detail.Session.AIExampleDescription,
		Messages:        messages,
	})
}

type sessionSummaryResponse struct {
	ID             string     `json:"id"`
	CardID         string     `json:"cardId"`
	TargetLanguage string     `json:"targetLanguage"`
	AnswerWord     string     `json:"answerWord"`
	Status         string     `json:"status"`
	Score          int        `json:"score"`
	WordsFound     int        `json:"wordsFound"`
	WordsTotal     int        `json:"wordsTotal"`
	StartedAt      time.Time  `json:"startedAt"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
}

func toSessionSummaryResponses(summaries []models.SessionSummary) []sessionSummaryResponse {
	responses := make([]sessionSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		responses = append(responses, sessionSummaryResponse{
			ID:             summary.ID,
			CardID:         summary.CardID,
			TargetLanguage: summary.TargetLanguage,
			AnswerWord:     summary.AnswerWord,
			Status:         string(summary.Status),
			Score:          summary.Score,
			WordsFound:     summary.WordsFound,
			WordsTotal:     summary.WordsTotal,
			StartedAt:      summary.StartedAt,
			CompletedAt:    summary.CompletedAt,
		})
	}
	return responses
}

// listLimit parses the optional limit query parameter.
func listLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, models.NewValidationError("limit", "limit must be a number")
	}
	return limit, nil
}

// ListSessions handles GET /api/game/sessions?language=&limit=
func (h *GameHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	limit, err := listLimit(r)
	if err != nil {
		respondWithError(w, err)
		return
	}

	summaries, err := h.gameService.ListSessions(r.Context(), UserIDFromContext(r.Context()),
		r.URL.Query().Get("language"), limit)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{"sessions": toSessionSummaryResponses(summaries)})
}
