package handlers

import (
	"net/http"

	"lingotaboo/internal/models"
	"lingotaboo/internal/service"
)

// StatsHandler serves the statistics endpoints
type StatsHandler struct {
	statsService *service.StatsService
	authService  *service.AuthService
	emailService *service.EmailService
	usageService *service.UsageService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *service.StatsService, authService *service.AuthService, emailService *service.EmailService, usageService *service.UsageService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		authService:  authService,
		emailService: emailService,
		usageService: usageService,
	}
}

type statsResponse struct {
	TotalGames      int      `json:"totalGames"`
	AverageScore    int      `json:"averageScore"`
	BestScore       int      `json:"bestScore"`
	TotalWordsFound int      `json:"totalWordsFound"`
	AvgWordsFound   float64  `json:"avgWordsFound"`
	Languages       []string `json:"languages"`
	OracleCost      float64  `json:"oracleCost"`
}

func toStatsResponse(stats *models.UserStats) statsResponse {
	return statsResponse{
		TotalGames:      stats.TotalGames,
		AverageScore:    stats.AverageScore,
		BestScore:       stats.BestScore,
		TotalWordsFound: stats.TotalWordsFound,
		AvgWordsFound:   stats.AvgWordsFound,
		Languages:       stats.Languages,
	}
}

// GetStats handles GET /api/game/stats?language=
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	stats, err := h.statsService.GetUserStats(r.Context(), userID,
		r.URL.Query().Get("language"))
	if err != nil {
		respondWithError(w, err)
		return
	}

	resp := toStatsResponse(stats)
	cost, err := h.usageService.TotalCost(r.Context(), userID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	resp.OracleCost = cost

	respondWithJSON(w, http.StatusOK, resp)
}

// GetHistory handles GET /api/game/history?language=&limit=. History is
// the user's completed and in-progress sessions, most recent first.
func (h *StatsHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := listLimit(r)
	if err != nil {
		respondWithError(w, err)
		return
	}

	history, err := h.statsService.GetUserHistory(r.Context(), UserIDFromContext(r.Context()),
		r.URL.Query().Get("language"), limit)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{"sessions": toSessionSummaryResponses(history)})
}

// SendDigest handles POST /api/game/stats/digest. It emails the caller
// their own progress summary.
func (h *StatsHandler) SendDigest(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	user, err := h.authService.GetUser(r.Context(), userID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	stats, err := h.statsService.GetUserStats(r.Context(), userID, "")
	if err != nil {
		respondWithError(w, err)
		return
	}

	if err := h.emailService.SendProgressDigest(r.Context(), user.Email, user.Name, stats); err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusAccepted, map[string]any{
		"sent":    h.emailService.IsEnabled(),
		"toEmail": user.Email,
	})
}
