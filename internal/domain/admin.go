package domain

import "time"

// Admin is a dashboard account. Passwords are stored as bcrypt hashes.
type Admin struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
