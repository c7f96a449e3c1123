package entities

import "time"

// AdminUser represents a console administrator. Credentials are stored as
// bcrypt hashes; the hash never leaves the persistence layer in responses.
type AdminUser struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
