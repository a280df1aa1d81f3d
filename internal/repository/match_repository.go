package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/rithm-app/rithm-backend/internal/domain"
)

type MatchRepository interface {
	// CreateIfAbsent inserts the match unless one already exists for the
	// unordered pair. It reports whether this call created the row, which
	// is what makes notification dispatch exactly-once under concurrent
	// mutual likes.
	CreateIfAbsent(ctx context.Context, match *domain.Match) (bool, error)
	GetByUsers(ctx context.Context, userA, userB uuid.UUID) (*domain.Match, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Match, error)
}
