package feed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rithm-app/rithm-backend/internal/domain"
	"github.com/rithm-app/rithm-backend/internal/repository"
)

const (
	// DefaultLimit matches the page size the web client asks for.
	DefaultLimit = 10
	// candidateBatchSize is how many complete profiles we pull per store
	// query before the symmetric preference filter runs.
	candidateBatchSize = 100
)

type FeedUseCase struct {
	profileRepo repository.ProfileRepository
	swipeRepo   repository.SwipeRepository
	logger      *slog.Logger
}

func NewFeedUseCase(
	profileRepo repository.ProfileRepository,
	swipeRepo repository.SwipeRepository,
	logger *slog.Logger,
) *FeedUseCase {
	return &FeedUseCase{
		profileRepo: profileRepo,
		swipeRepo:   swipeRepo,
		logger:      logger,
	}
}

// Candidate carries just enough to render a swipe card. The Instagram
// handle is deliberately absent; it is only revealed after a match.
type Candidate struct {
	ID                   uuid.UUID `json:"id"`
	FullName             string    `json:"full_name"`
	Age                  *int      `json:"age"`
	ExploreScreenshotURL *string   `json:"explore_screenshot_url"`
}

// NextCandidates returns the next page of swipeable profiles: never the
// requester, never anyone already swiped (like or pass), and only profiles
// where preferences are mutual. Order is ascending profile id, so the same
// ledger state always yields the same page.
func (uc *FeedUseCase) NextCandidates(ctx context.Context, userID uuid.UUID, limit int) ([]*Candidate, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	me, err := uc.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !me.IsComplete() {
		return nil, domain.ErrIncompleteProfile
	}

	swiped, err := uc.swipeRepo.ListSwipedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list swiped ids: %w", err)
	}
	exclude := append(swiped, userID)

	candidates := make([]*Candidate, 0, limit)
	for offset := 0; len(candidates) < limit; {
		page, err := uc.profileRepo.ListComplete(ctx, exclude, candidateBatchSize, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to list profiles: %w", err)
		}
		if len(page) == 0 {
			break
		}

		for _, profile := range page {
			if !domain.MutuallyCompatible(me, profile) {
				continue
			}
			candidates = append(candidates, &Candidate{
				ID:                   profile.ID,
				FullName:             profile.FullName,
				Age:                  profile.Age,
				ExploreScreenshotURL: profile.ExploreScreenshotURL,
			})
			if len(candidates) == limit {
				break
			}
		}
		offset += len(page)
	}

	uc.logger.Debug("candidate page built",
		"user_id", userID, "count", len(candidates), "excluded", len(exclude))
	return candidates, nil
}
