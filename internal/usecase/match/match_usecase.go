package match

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rithm-app/rithm-backend/internal/repository"
)

type MatchUseCase struct {
	matchRepo   repository.MatchRepository
	profileRepo repository.ProfileRepository
	logger      *slog.Logger
}

func NewMatchUseCase(
	matchRepo repository.MatchRepository,
	profileRepo repository.ProfileRepository,
	logger *slog.Logger,
) *MatchUseCase {
	return &MatchUseCase{
		matchRepo:   matchRepo,
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// MatchView is the post-match read path: the one place besides the swipe
// response where the other side's Instagram handle is visible.
type MatchView struct {
	MatchID              int64     `json:"match_id"`
	ProfileID            uuid.UUID `json:"profile_id"`
	FullName             string    `json:"full_name"`
	Age                  *int      `json:"age"`
	InstagramHandle      *string   `json:"instagram_handle"`
	ExploreScreenshotURL *string   `json:"explore_screenshot_url"`
	PheromoneAnalysis    *string   `json:"digital_pheromone_analysis"`
	MatchedAt            time.Time `json:"matched_at"`
}

// ListMatches returns every mutual match of the user, newest first.
func (uc *MatchUseCase) ListMatches(ctx context.Context, userID uuid.UUID) ([]*MatchView, error) {
	matches, err := uc.matchRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]*MatchView, 0, len(matches))
	for _, m := range matches {
		otherID, ok := m.OtherUser(userID)
		if !ok {
			continue
		}
		profile, err := uc.profileRepo.GetByID(ctx, otherID)
		if err != nil {
			// A missing counterpart profile should not hide the rest of
			// the list.
			uc.logger.Warn("matched profile lookup failed",
				"match_id", m.ID, "profile_id", otherID, "error", err)
			continue
		}
		views = append(views, &MatchView{
			MatchID:              m.ID,
			ProfileID:            profile.ID,
			FullName:             profile.FullName,
			Age:                  profile.Age,
			InstagramHandle:      profile.InstagramHandle,
			ExploreScreenshotURL: profile.ExploreScreenshotURL,
			PheromoneAnalysis:    profile.PheromoneAnalysis,
			MatchedAt:            m.CreatedAt,
		})
	}
	return views, nil
}
