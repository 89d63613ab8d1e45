package utils

import (
	"regexp"
	"strings"

	"lingotaboo/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return models.NewValidationError("email", "email is required")
	}
	if !emailRegex.MatchString(email) {
		return models.NewValidationError("email", "invalid email format")
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return models.NewValidationError("password", "password is required")
	}
	if len(password) < 8 {
		return models.NewValidationError("password", "password must be at least 8 characters")
	}
	return nil
}

// ValidateName checks if a name is valid
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.NewValidationError("name", "name is required")
	}
	if len(name) < 2 {
		return models.NewValidationError("name", "name must be at least 2 characters")
	}
	return nil
}
