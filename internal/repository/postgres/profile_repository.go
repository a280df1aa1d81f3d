package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rithm-app/rithm-backend/internal/domain"
	"github.com/rithm-app/rithm-backend/internal/repository"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `id, full_name, age, gender, dating_preference,
	instagram_handle, explore_screenshot_url, digital_pheromone_analysis,
	created_at, updated_at`

func (r *profileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (
			id, full_name, age, gender, dating_preference,
			instagram_handle, explore_screenshot_url, digital_pheromone_analysis
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			age = EXCLUDED.age,
			gender = EXCLUDED.gender,
			dating_preference = EXCLUDED.dating_preference,
			instagram_handle = EXCLUDED.instagram_handle,
			explore_screenshot_url = EXCLUDED.explore_screenshot_url,
			digital_pheromone_analysis = EXCLUDED.digital_pheromone_analysis,
			updated_at = CURRENT_TIMESTAMP
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		profile.ID, profile.FullName, profile.Age, genderParam(profile.Gender),
		pq.Array(prefsToStrings(profile.DatingPreference)),
		profile.InstagramHandle, profile.ExploreScreenshotURL, profile.PheromoneAnalysis,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	profile, err := scanProfile(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (r *profileRepository) ListComplete(ctx context.Context, exclude []uuid.UUID, limit, offset int) ([]*domain.Profile, error) {
	excludeIDs := make([]string, 0, len(exclude))
	for _, id := range exclude {
		excludeIDs = append(excludeIDs, id.String())
	}

	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE age IS NOT NULL
		  AND gender IS NOT NULL
		  AND cardinality(dating_preference) > 0
		  AND NOT (id = ANY($1))
		ORDER BY id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(excludeIDs), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

func (r *profileRepository) UpdatePheromoneAnalysis(ctx context.Context, id uuid.UUID, analysis string) error {
	query := `
		UPDATE profiles
		SET digital_pheromone_analysis = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`
	result, err := r.db.ExecContext(ctx, query, analysis, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var profile domain.Profile
	var gender sql.NullString
	var prefs pq.StringArray

	err := row.Scan(
		&profile.ID, &profile.FullName, &profile.Age, &gender, &prefs,
		&profile.InstagramHandle, &profile.ExploreScreenshotURL, &profile.PheromoneAnalysis,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if gender.Valid {
		g := domain.Gender(gender.String)
		profile.Gender = &g
	}
	profile.DatingPreference = stringsToPrefs(prefs)
	return &profile, nil
}

func genderParam(g *domain.Gender) interface{} {
	if g == nil {
		return nil
	}
	return string(*g)
}

func prefsToStrings(prefs []domain.Gender) []string {
	out := make([]string, 0, len(prefs))
	for _, p := range prefs {
		out = append(out, string(p))
	}
	return out
}

func stringsToPrefs(values []string) []domain.Gender {
	out := make([]domain.Gender, 0, len(values))
	for _, v := range values {
		out = append(out, domain.Gender(v))
	}
	return out
}
