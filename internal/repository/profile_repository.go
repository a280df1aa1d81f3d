package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/rithm-app/rithm-backend/internal/domain"
)

type ProfileRepository interface {
	// Upsert creates the profile on first write and updates it afterwards.
	// The row is keyed by the auth-side user id; there is no separate
	// create step.
	Upsert(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	// ListComplete returns complete profiles (age, gender and preferences
	// set) excluding the given ids, ordered by id ascending.
	ListComplete(ctx context.Context, exclude []uuid.UUID, limit, offset int) ([]*domain.Profile, error)
	UpdatePheromoneAnalysis(ctx context.Context, id uuid.UUID, analysis string) error
}
