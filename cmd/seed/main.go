// Command seed loads a starter card deck into the database. It is safe to
// run repeatedly: cards are keyed by answer word and category, and existing
// ones are skipped.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"lingotaboo/internal/config"
	"lingotaboo/internal/database"
	"lingotaboo/internal/models"
	"lingotaboo/internal/repository"
)

type seedCard struct {
	answerWord string
	keyWords   []string
	category   string
	difficulty string
}

var starterDeck = []seedCard{
	{"car", []string{"drive", "road", "wheel"}, "vehicles", models.DifficultyEasy},
	{"bicycle", []string{"pedal", "wheel", "ride"}, "vehicles", models.DifficultyEasy},
	{"airplane", []string{"fly", "wings", "pilot", "sky"}, "vehicles", models.DifficultyMedium},
	{"dog", []string{"bark", "pet", "tail"}, "animals", models.DifficultyEasy},
	{"elephant", []string{"trunk", "big", "gray", "ears"}, "animals", models.DifficultyMedium},
	{"penguin", []string{"bird", "ice", "swim", "black"}, "animals", models.DifficultyMedium},
	{"pizza", []string{"cheese", "oven", "slice"}, "food", models.DifficultyEasy},
	{"breakfast", []string{"morning", "eat", "coffee", "eggs"}, "food", models.DifficultyMedium},
	{"restaurant", []string{"menu", "waiter", "table", "order", "bill"}, "food", models.DifficultyHard},
	{"doctor", []string{"hospital", "sick", "medicine"}, "professions", models.DifficultyEasy},
	{"teacher", []string{"school", "students", "lesson", "explain"}, "professions", models.DifficultyMedium},
	{"architect", []string{"buildings", "design", "plans", "construction", "drawings"}, "professions", models.DifficultyHard},
	{"rain", []string{"water", "clouds", "umbrella"}, "weather", models.DifficultyEasy},
	{"thunderstorm", []string{"lightning", "loud", "dark", "wind"}, "weather", models.DifficultyMedium},
	{"birthday", []string{"cake", "party", "gifts", "candles"}, "celebrations", models.DifficultyMedium},
	{"wedding", []string{"bride", "ring", "ceremony", "guests", "dance"}, "celebrations", models.DifficultyHard},
}

func main() {
	language := flag.String("language", "en", "language of the seeded cards")
	flag.Parse()

	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	cfg := config.Load()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.RunMigrations(ctx, cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	cards := repository.NewCardRepository(db)

	created, skipped := 0, 0
	for _, seed := range starterDeck {
		exists, err := cardExists(ctx, db, seed.answerWord, seed.category, *language)
		if err != nil {
			log.Fatalf("Failed to check for existing card %q: %v", seed.answerWord, err)
		}
		if exists {
			skipped++
			continue
		}

		card := &models.Card{
			ID:         uuid.NewString(),
			AnswerWord: seed.answerWord,
			KeyWords:   seed.keyWords,
			Category:   seed.category,
			Difficulty: seed.difficulty,
			Language:   *language,
			IsActive:   true,
		}
		if err := card.Validate(); err != nil {
			log.Fatalf("Invalid seed card %q: %v", seed.answerWord, err)
		}
		if err := cards.Create(ctx, card); err != nil {
			log.Fatalf("Failed to create card %q: %v", seed.answerWord, err)
		}
		created++
	}

	log.Printf("Seed complete: %d created, %d skipped", created, skipped)
}

func cardExists(ctx context.Context, db *database.DB, answerWord, category, language string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM cards WHERE answer_word = ? AND category = ? AND language = ?",
		answerWord, category, language,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
