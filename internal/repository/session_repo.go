package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lingotaboo/internal/database"
	"lingotaboo/internal/models"
)

// SessionRepository handles game session and transcript database operations
type SessionRepository struct {
	db *database.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *database.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `id, card_id, user_id, target_language, answer_word,
	original_key_words, translated_key_words, status, words_found, score,
	user_description, evaluation_result, ai_example_description,
	started_at, completed_at, updated_at`

func scanSession(scanner interface{ Scan(...interface{}) error }) (*models.GameSession, error) {
	session := &models.GameSession{}
	var (
		originalJSON, translatedJSON, foundJSON string
		status                                  string
		userDescription, aiExample              sql.NullString
		evaluationJSON                          sql.NullString
		completedAt                             sql.NullTime
	)

	err := scanner.Scan(
		&session.ID,
		&session.CardID,
		&session.UserID,
		&session.TargetLanguage,
		&session.AnswerWord,
		&originalJSON,
		&translatedJSON,
		&status,
		&foundJSON,
		&session.Score,
		&userDescription,
		&evaluationJSON,
		&aiExample,
		&session.StartedAt,
		&completedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	session.Status = models.SessionStatus(status)
	if err := json.Unmarshal([]byte(originalJSON), &session.OriginalKeyWords); err != nil {
		return nil, fmt.Errorf("failed to decode original key words: %w", err)
	}
	if err := json.Unmarshal([]byte(translatedJSON), &session.TranslatedKeyWords); err != nil {
		return nil, fmt.Errorf("failed to decode translated key words: %w", err)
	}
	if err := json.Unmarshal([]byte(foundJSON), &session.WordsFound); err != nil {
		return nil, fmt.Errorf("failed to decode words found: %w", err)
	}

	if userDescription.Valid {
		session.UserDescription = userDescription.String
	}
	if aiExample.Valid {
		session.AIExampleDescription = aiExample.String
	}
	if evaluationJSON.Valid && evaluationJSON.String != "" {
		result := &models.EvaluationResult{}
		if err := json.Unmarshal([]byte(evaluationJSON.String), result); err != nil {
			return nil, fmt.Errorf("failed to decode evaluation result: %w", err)
		}
		session.EvaluationResult = result
	}
	if completedAt.Valid {
		session.CompletedAt = &completedAt.Time
	}

	return session, nil
}

func marshalWords(words []string) (string, error) {
	if words == nil {
		words = []string{}
	}
	data, err := json.Marshal(words)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Create inserts a new session with its frozen key word snapshots
func (r *SessionRepository) Create(ctx context.Context, session *models.GameSession) error {
	originalJSON, err := marshalWords(session.OriginalKeyWords)
	if err != nil {
		return err
	}
	translatedJSON, err := marshalWords(session.TranslatedKeyWords)
	if err != nil {
		return err
	}
	foundJSON, err := marshalWords(session.WordsFound)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO game_sessions
			(id, card_id, user_id, target_language, answer_word,
			 original_key_words, translated_key_words, status, words_found, score,
			 started_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		session.ID, session.CardID, session.UserID, session.TargetLanguage,
		session.AnswerWord, originalJSON, translatedJSON, string(session.Status),
		foundJSON, session.Score, session.StartedAt, session.UpdatedAt)
	return err
}

// GetForUser retrieves a session scoped to its owner. A missing session and
// a session owned by someone else are indistinguishable to the caller.
func (r *SessionRepository) GetForUser(ctx context.Context, sessionID string, userID int64) (*models.GameSession, error) {
	query := "SELECT " + sessionColumns + " FROM game_sessions WHERE id = ? AND user_id = ?"

	session, err := scanSession(r.db.QueryRowContext(ctx, query, sessionID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Update persists the mutable session fields after a submit or finish
func (r *SessionRepository) Update(ctx context.Context, session *models.GameSession) error {
	foundJSON, err := marshalWords(session.WordsFound)
	if err != nil {
		return err
	}

	var evaluationJSON sql.NullString
	if session.EvaluationResult != nil {
		data, err := json.Marshal(session.EvaluationResult)
		if err != nil {
			return err
		}
		evaluationJSON = sql.NullString{String: string(data), Valid: true}
	}

	var userDescription, aiExample sql.NullString
	if session.UserDescription != "" {
		userDescription = sql.NullString{String: session.UserDescription, Valid: true}
	}
	if session.AIExampleDescription != "" {
		aiExample = sql.NullString{String: session.AIExampleDescription, Valid: true}
	}

	var completedAt sql.NullTime
	if session.CompletedAt != nil {
		completedAt = sql.NullTime{Time: *session.CompletedAt, Valid: true}
	}

	query := `
		UPDATE game_sessions
		SET status = ?, words_found = ?, score = ?, user_description = ?,
		    evaluation_result = ?, ai_example_description = ?,
		    completed_at = ?, updated_at = ?
		WHERE id = ?
	`
	_, err = r.db.ExecContext(ctx, query,
		string(session.Status), foundJSON, session.Score, userDescription,
		evaluationJSON, aiExample, completedAt, time.Now(), session.ID)
	return err
}

// ListForUser returns session summaries most-recent-first, optionally
// filtered by target language.
func (r *SessionRepository) ListForUser(ctx context.Context, userID int64, targetLanguage string, limit int) ([]models.SessionSummary, error) {
	query := `
		SELECT id, card_id, target_language, answer_word, status, score,
		       words_found, translated_key_words, started_at, completed_at
		FROM game_sessions
		WHERE user_id = ?
	`
	args := []interface{}{userID}

	if targetLanguage != "" {
		query += " AND target_language = ?"
		args = append(args, targetLanguage)
	}

	query += " ORDER BY started_at DESC LIMIT ?"
	args = append(args, limit)

	return r.querySummaries(ctx, query, args)
}

// ListHistoryForUser returns only the sessions that count as play history:
// completed and in-progress ones. Sessions that were started but never
// submitted to stay out.
func (r *SessionRepository) ListHistoryForUser(ctx context.Context, userID int64, targetLanguage string, limit int) ([]models.SessionSummary, error) {
	query := `
		SELECT id, card_id, target_language, answer_word, status, score,
		       words_found, translated_key_words, started_at, completed_at
		FROM game_sessions
		WHERE user_id = ? AND status IN (?, ?)
	`
	args := []interface{}{userID, string(models.StatusCompleted), string(models.StatusInProgress)}

	if targetLanguage != "" {
		query += " AND target_language = ?"
		args = append(args, targetLanguage)
	}

	query += " ORDER BY started_at DESC LIMIT ?"
	args = append(args, limit)

	return r.querySummaries(ctx, query, args)
}

func (r *SessionRepository) querySummaries(ctx context.Context, query string, args []interface{}) ([]models.SessionSummary, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []models.SessionSummary
	for rows.Next() {
		var (
			summary               models.SessionSummary
			status                string
			foundJSON, totalJSON  string
			completedAt           sql.NullTime
		)

		err := rows.Scan(
			&summary.ID,
			&summary.CardID,
			&summary.TargetLanguage,
			&summary.AnswerWord,
			&status,
			&summary.Score,
			&foundJSON,
			&totalJSON,
			&summary.StartedAt,
			&completedAt,
		)
		if err != nil {
			return nil, err
		}

		summary.Status = models.SessionStatus(status)

		var found, total []string
		if err := json.Unmarshal([]byte(foundJSON), &found); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(totalJSON), &total); err != nil {
			return nil, err
		}
		summary.WordsFound = len(found)
		summary.WordsTotal = len(total)

		if completedAt.Valid {
			summary.CompletedAt = &completedAt.Time
		}

		summaries = append(summaries, summary)
	}

	return summaries, rows.Err()
}

// NextSeq returns the next transcript sequence number for a session.
// Callers serialize writes per session, so read-then-insert is safe.
func (r *SessionRepository) NextSeq(ctx context.Context, sessionID string) (int, error) {
	var maxSeq sql.NullInt64
	query := "SELECT MAX(seq) FROM session_messages WHERE session_id = ?"
	if err := r.db.QueryRowContext(ctx, query, sessionID).Scan(&maxSeq); err != nil {
		return 0, err
	}
	return int(maxSeq.Int64) + 1, nil
}

// AppendMessage appends one transcript entry
func (r *SessionRepository) AppendMessage(ctx context.Context, message *models.SessionMessage) error {
	bodyJSON, err := json.Marshal(message.Body)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO session_messages (session_id, seq, role, body, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(ctx, query,
		message.SessionID, message.Seq, message.Role, string(bodyJSON), message.CreatedAt)
	if err != nil {
		return err
	}

	message.ID = id
	return nil
}

// GetMessages returns a session's transcript in append order
func (r *SessionRepository) GetMessages(ctx context.Context, sessionID string) ([]models.SessionMessage, error) {
	query := `
		SELECT id, session_id, seq, role, body, created_at
		FROM session_messages
		WHERE session_id = ?
		ORDER BY seq ASC
	`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.SessionMessage
	for rows.Next() {
		var message models.SessionMessage
		var bodyJSON string

		err := rows.Scan(
			&message.ID,
			&message.SessionID,
			&message.Seq,
			&message.Role,
			&bodyJSON,
			&message.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(bodyJSON), &message.Body); err != nil {
			return nil, fmt.Errorf("failed to decode message body: %w", err)
		}

		messages = append(messages, message)
	}

	return messages, rows.Err()
}

// CountAttempts counts the recorded submissions for a session
func (r *SessionRepository) CountAttempts(ctx context.Context, sessionID string) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM session_messages WHERE session_id = ? AND role = ?"
	err := r.db.QueryRowContext(ctx, query, sessionID, models.MessageRoleDescription).Scan(&count)
	return count, err
}
