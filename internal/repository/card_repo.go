package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"lingotaboo/internal/database"
	"lingotaboo/internal/models"
)

// CardRepository handles card catalog database operations
type CardRepository struct {
	db *database.DB
}

// NewCardRepository creates a new card repository
func NewCardRepository(db *database.DB) *CardRepository {
	return &CardRepository{db: db}
}

const cardColumns = "id, answer_word, key_words, category, difficulty, language, is_active, usage_count, created_at"

func scanCard(scanner interface{ Scan(...interface{}) error }) (*models.Card, error) {
	card := &models.Card{}
	var keyWordsJSON string

	err := scanner.Scan(
		&card.ID,
		&card.AnswerWord,
		&keyWordsJSON,
		&card.Category,
		&card.Difficulty,
		&card.Language,
		&card.IsActive,
		&card.UsageCount,
		&card.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(keyWordsJSON), &card.KeyWords); err != nil {
		return nil, fmt.Errorf("failed to decode key words for card %s: %w", card.ID, err)
	}

	return card, nil
}

// Create inserts a new card. Used by the seeding tool.
func (r *CardRepository) Create(ctx context.Context, card *models.Card) error {
	keyWordsJSON, err := json.Marshal(card.KeyWords)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO cards (id, answer_word, key_words, category, difficulty, language, is_active, usage_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0)
	`
	_, err = r.db.ExecContext(ctx, query,
		card.ID, card.AnswerWord, string(keyWordsJSON), card.Category,
		card.Difficulty, card.Language, card.IsActive)
	return err
}

// GetByID retrieves a card by ID
func (r *CardRepository) GetByID(ctx context.Context, cardID string) (*models.Card, error) {
	query := "SELECT " + cardColumns + " FROM cards WHERE id = ?"

	card, err := scanCard(r.db.QueryRowContext(ctx, query, cardID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return card, nil
}

// GetRandomActive returns up to count active cards matching the optional
// category and difficulty filters, in random order.
func (r *CardRepository) GetRandomActive(ctx context.Context, count int, category, difficulty string) ([]models.Card, error) {
	conditions := []string{"is_active = ?"}
	args := []interface{}{true}

	if category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, category)
	}
	if difficulty != "" {
		conditions = append(conditions, "difficulty = ?")
		args = append(args, difficulty)
	}
	args = append(args, count)

	query := fmt.Sprintf(
		"SELECT %s FROM cards WHERE %s ORDER BY %s LIMIT ?",
		cardColumns,
		strings.Join(conditions, " AND "),
		r.db.Dialect.RandomFunc(),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *card)
	}

	return cards, rows.Err()
}

// GetCategories returns the distinct categories across active cards
func (r *CardRepository) GetCategories(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT category FROM cards
		WHERE is_active = ? AND category != ''
		ORDER BY category
	`

	rows, err := r.db.QueryContext(ctx, query, true)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

// IncrementUsage bumps the card's usage counter in place. The increment
// runs inside the database so concurrent session starts cannot lose updates.
func (r *CardRepository) IncrementUsage(ctx context.Context, cardID string) error {
	query := "UPDATE cards SET usage_count = usage_count + 1 WHERE id = ?"
	_, err := r.db.ExecContext(ctx, query, cardID)
	return err
}
