package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/rithm-app/rithm-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchRepository_CreateIfAbsent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatchRepository(db)

	userA, userB := domain.OrderPair(uuid.New(), uuid.New())

	t.Run("first claim", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO matches")).
			WithArgs(userA, userB).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))

		// Pass the pair reversed; the repo must canonicalize it.
		match := &domain.Match{UserA: userB, UserB: userA}
		created, err := repo.CreateIfAbsent(context.Background(), match)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, userA, match.UserA)
		assert.Equal(t, userB, match.UserB)
		assert.Equal(t, int64(1), match.ID)
	})

	t.Run("already claimed", func(t *testing.T) {
		// ON CONFLICT DO NOTHING yields no row for an existing pair.
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO matches")).
			WithArgs(userA, userB).
			WillReturnError(sql.ErrNoRows)

		created, err := repo.CreateIfAbsent(context.Background(), &domain.Match{UserA: userA, UserB: userB})
		require.NoError(t, err)
		assert.False(t, created)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchRepository_GetByUsers(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatchRepository(db)

	userA, userB := domain.OrderPair(uuid.New(), uuid.New())

	t.Run("found with reversed args", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_a, user_b, created_at FROM matches")).
			WithArgs(userA, userB).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_a", "user_b", "created_at"}).
				AddRow(int64(5), userA.String(), userB.String(), time.Now()))

		match, err := repo.GetByUsers(context.Background(), userB, userA)
		require.NoError(t, err)
		assert.Equal(t, int64(5), match.ID)
	})

	t.Run("absent", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_a, user_b, created_at FROM matches")).
			WithArgs(userA, userB).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_a", "user_b", "created_at"}))

		_, err := repo.GetByUsers(context.Background(), userA, userB)
		assert.ErrorIs(t, err, domain.ErrMatchNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchRepository_ListByUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatchRepository(db)

	me := uuid.New()
	other := uuid.New()
	userA, userB := domain.OrderPair(me, other)

	mock.ExpectQuery(regexp.QuoteMeta("FROM matches")).
		WithArgs(me).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_a", "user_b", "created_at"}).
			AddRow(int64(2), userA.String(), userB.String(), time.Now()))

	matches, err := repo.ListByUser(context.Background(), me)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.True(t, matches[0].HasUser(me))
	assert.NoError(t, mock.ExpectationsWereMet())
}
