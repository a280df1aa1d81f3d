package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the auth-side identity. The profile row shares its id; email is
// only read back for match notifications and never exposed to other users.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
