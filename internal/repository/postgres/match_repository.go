package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rithm-app/rithm-backend/internal/domain"
	"github.com/rithm-app/rithm-backend/internal/repository"
)

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) CreateIfAbsent(ctx context.Context, match *domain.Match) (bool, error) {
	// Canonical order so the (user_a, user_b) unique constraint covers the
	// unordered pair.
	match.UserA, match.UserB = domain.OrderPair(match.UserA, match.UserB)

	query := `
		INSERT INTO matches (user_a, user_b)
		VALUES ($1, $2)
		ON CONFLICT (user_a, user_b) DO NOTHING
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, match.UserA, match.UserB).
		Scan(&match.ID, &match.CreatedAt)
	if err != nil {
		// No row returned means the conflict fired: another swipe already
		// claimed this pair.
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *matchRepository) GetByUsers(ctx context.Context, userA, userB uuid.UUID) (*domain.Match, error) {
	userA, userB = domain.OrderPair(userA, userB)

	var match domain.Match
	query := `SELECT id, user_a, user_b, created_at FROM matches WHERE user_a = $1 AND user_b = $2`
	err := r.db.GetContext(ctx, &match, query, userA, userB)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Match, error) {
	var matches []*domain.Match
	query := `
		SELECT id, user_a, user_b, created_at
		FROM matches
		WHERE user_a = $1 OR user_b = $1
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &matches, query, userID)
	return matches, err
}
