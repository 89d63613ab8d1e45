package models

// UserStats summarizes a user's completed games, optionally scoped to one
// target language. A user with no completed games gets the zero value with
// an empty (not nil) Languages slice, never an error.
type UserStats struct {
	TotalGames      int      `json:"total_games"`
	AverageScore    int      `json:"average_score"`
	BestScore       int      `json:"best_score"`
	TotalWordsFound int      `json:"total_words_found"`
	AvgWordsFound   float64  `json:"avg_words_found"`
	Languages       []string `json:"languages"`
}
