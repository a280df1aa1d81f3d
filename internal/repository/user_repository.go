package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/rithm-app/rithm-backend/internal/domain"
)

type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrEmailAlreadyTaken when
	// the email is in use.
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetEmailByID is the lookup the match notifier uses. Kept separate so
	// callers never pull the password hash along with an address.
	GetEmailByID(ctx context.Context, id uuid.UUID) (string, error)
}
