package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema is the durable state of the matching core: profiles keyed by the
// auth-side user id, the append-only swipe ledger, and the derived matches
// table whose unique pair constraint makes match creation race-safe.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS profiles (
	id UUID PRIMARY KEY REFERENCES users (id),
	full_name TEXT NOT NULL DEFAULT '',
	age INT CHECK (age >= 18),
	gender TEXT CHECK (gender IN ('Female', 'Male', 'Other')),
	dating_preference TEXT[] NOT NULL DEFAULT '{}',
	instagram_handle TEXT,
	explore_screenshot_url TEXT,
	digital_pheromone_analysis TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS swipes (
	id BIGSERIAL PRIMARY KEY,
	swiper_id UUID NOT NULL REFERENCES profiles (id),
	swiped_id UUID NOT NULL REFERENCES profiles (id),
	liked BOOLEAN NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE (swiper_id, swiped_id),
	CHECK (swiper_id <> swiped_id)
);

CREATE TABLE IF NOT EXISTS matches (
	id BIGSERIAL PRIMARY KEY,
	user_a UUID NOT NULL REFERENCES profiles (id),
	user_b UUID NOT NULL REFERENCES profiles (id),
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE (user_a, user_b),
	CHECK (user_a < user_b)
);

CREATE INDEX IF NOT EXISTS idx_swipes_swiped ON swipes (swiped_id) WHERE liked;
CREATE INDEX IF NOT EXISTS idx_matches_user_b ON matches (user_b);
`

// EnsureSchema creates the tables if they do not exist yet.
func EnsureSchema(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
