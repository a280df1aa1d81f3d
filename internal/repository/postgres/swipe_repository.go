package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rithm-app/rithm-backend/internal/domain"
	"github.com/rithm-app/rithm-backend/internal/repository"
)

// uniqueViolation is the Postgres error code for unique constraint hits.
const uniqueViolation = "23505"

type swipeRepository struct {
	db *sqlx.DB
}

func NewSwipeRepository(db *sqlx.DB) repository.SwipeRepository {
	return &swipeRepository{db: db}
}

func (r *swipeRepository) Create(ctx context.Context, swipe *domain.Swipe) error {
	query := `
		INSERT INTO swipes (swiper_id, swiped_id, liked)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, swipe.SwiperID, swipe.SwipedID, swipe.Liked).
		Scan(&swipe.ID, &swipe.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrSwipeAlreadyExists
		}
		return err
	}
	return nil
}

func (r *swipeRepository) GetByUsers(ctx context.Context, swiperID, swipedID uuid.UUID) (*domain.Swipe, error) {
	var swipe domain.Swipe
	query := `
		SELECT id, swiper_id, swiped_id, liked, created_at
		FROM swipes
		WHERE swiper_id = $1 AND swiped_id = $2
	`
	err := r.db.GetContext(ctx, &swipe, query, swiperID, swipedID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSwipeNotFound
		}
		return nil, err
	}
	return &swipe, nil
}

func (r *swipeRepository) ListSwipedIDs(ctx context.Context, swiperID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := `SELECT swiped_id FROM swipes WHERE swiper_id = $1`
	err := r.db.SelectContext(ctx, &ids, query, swiperID)
	return ids, err
}
