package domain

import (
	"time"

	"github.com/google/uuid"
)

// Match is the persisted form of the derived "both sides liked each other"
// state. UserA is always the smaller UUID so the (user_a, user_b) unique
// constraint makes match creation idempotent per unordered pair.
type Match struct {
	ID        int64     `json:"id" db:"id"`
	UserA     uuid.UUID `json:"user_a" db:"user_a"`
	UserB     uuid.UUID `json:"user_b" db:"user_b"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// OrderPair returns the two ids in canonical (user_a, user_b) order.
func OrderPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if a.String() > b.String() {
		return b, a
	}
	return a, b
}

func (m *Match) HasUser(userID uuid.UUID) bool {
	return m.UserA == userID || m.UserB == userID
}

func (m *Match) OtherUser(userID uuid.UUID) (uuid.UUID, bool) {
	if m.UserA == userID {
		return m.UserB, true
	}
	if m.UserB == userID {
		return m.UserA, true
	}
	return uuid.Nil, false
}
