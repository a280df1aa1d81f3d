package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rithm-app/rithm-backend/internal/domain"
	"github.com/rithm-app/rithm-backend/internal/repository"
)

const sessionKeyPrefix = "session:"

type sessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) repository.SessionRepository {
	return &sessionRepository{client: client}
}

func (r *sessionRepository) Store(ctx context.Context, tokenID string, userID uuid.UUID, ttl time.Duration) error {
	if err := r.client.Set(ctx, sessionKeyPrefix+tokenID, userID.String(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (r *sessionRepository) Get(ctx context.Context, tokenID string) (uuid.UUID, error) {
	value, err := r.client.Get(ctx, sessionKeyPrefix+tokenID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, domain.ErrSessionNotFound
		}
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("corrupt session value: %w", err)
	}
	return userID, nil
}

func (r *sessionRepository) Delete(ctx context.Context, tokenID string) error {
	return r.client.Del(ctx, sessionKeyPrefix+tokenID).Err()
}
