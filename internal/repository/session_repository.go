package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionRepository tracks issued tokens so logout can revoke them before
// the JWT itself expires.
type SessionRepository interface {
	Store(ctx context.Context, tokenID string, userID uuid.UUID, ttl time.Duration) error
	// Get returns domain.ErrSessionNotFound for unknown or revoked tokens.
	Get(ctx context.Context, tokenID string) (uuid.UUID, error)
	Delete(ctx context.Context, tokenID string) error
}
