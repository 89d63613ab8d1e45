package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const testSchema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL,
	name TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS cards (
	id TEXT PRIMARY KEY,
	answer_word TEXT NOT NULL,
	key_words TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	difficulty TEXT NOT NULL DEFAULT 'easy',
	language TEXT NOT NULL DEFAULT 'en',
	is_active INTEGER NOT NULL DEFAULT 1,
	usage_count INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// TestDatabaseLifecycle exercises open, migrate and the dialect-aware
// query helpers against a throwaway SQLite file.
func TestDatabaseLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dir := t.TempDir()

	// Write a migration the way RunMigrations expects to find it
	migrationsDir := filepath.Join(dir, "sqlite")
	if err := os.MkdirAll(migrationsDir, 0o755); err != nil {
		t.Fatalf("failed to create migrations dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(migrationsDir, "001_init.sql"), []byte(testSchema), 0o644); err != nil {
		t.Fatalf("failed to write migration: %v", err)
	}

	db, err := Initialize(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	if err := db.RunMigrations(ctx, dir); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	// Running again must be a no-op
	if err := db.RunMigrations(ctx, dir); err != nil {
		t.Fatalf("Re-running migrations failed: %v", err)
	}

	for _, table := range []string{"users", "cards", "migrations"} {
		var name string
		err := db.QueryRowContext(ctx,
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}

	// ExecReturningID against an autoincrement table
	id, err := db.ExecReturningID(ctx,
		"INSERT INTO users (email, password_hash, name) VALUES (?, ?, ?)",
		"player@example.com", "hash", "Player")
	if err != nil {
		t.Fatalf("ExecReturningID failed: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero ID")
	}
}

// TestDatabaseTransactions covers the dialect-aware Tx wrapper.
func TestDatabaseTransactions(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dir := t.TempDir()
	db, err := Initialize(filepath.Join(dir, "tx.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, testSchema); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO cards (id, answer_word, key_words) VALUES (?, ?, ?)",
		"card-1", "car", `["fast","red","metal"]`)
	if err != nil {
		tx.Rollback()
		t.Fatalf("Failed to insert in transaction: %v", err)
	}

	if err := tx.Commit(); err != nil {
		t.Fatalf("Failed to commit transaction: %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cards WHERE id = ?", "card-1").Scan(&count); err != nil {
		t.Fatalf("Failed to query after commit: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 card, got %d", count)
	}

	// Rolled back writes must not persist
	tx2, err := db.Begin(ctx)
	if err != nil {
		t.Fatalf("Failed to begin second transaction: %v", err)
	}
	_, err = tx2.ExecContext(ctx,
		"INSERT INTO cards (id, answer_word, key_words) VALUES (?, ?, ?)",
		"card-2", "dog", `["bark"]`)
	if err != nil {
		t.Fatalf("Failed to insert in second transaction: %v", err)
	}
	if err := tx2.Rollback(); err != nil {
		t.Fatalf("Failed to rollback: %v", err)
	}

	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cards WHERE id = ?", "card-2").Scan(&count); err != nil {
		t.Fatalf("Failed to query after rollback: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 cards after rollback, got %d", count)
	}
}
