package models

import "time"

// User is an account that owns game sessions. Authentication lives in the
// service layer; the game engine only ever sees the user ID.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
