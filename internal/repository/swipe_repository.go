package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/rithm-app/rithm-backend/internal/domain"
)

type SwipeRepository interface {
	// Create appends one swipe row. Returns domain.ErrSwipeAlreadyExists
	// when a row for this ordered (swiper, swiped) pair exists.
	Create(ctx context.Context, swipe *domain.Swipe) error
	GetByUsers(ctx context.Context, swiperID, swipedID uuid.UUID) (*domain.Swipe, error)
	// ListSwipedIDs returns every id the user has already decided on,
	// likes and passes alike.
	ListSwipedIDs(ctx context.Context, swiperID uuid.UUID) ([]uuid.UUID, error)
}
