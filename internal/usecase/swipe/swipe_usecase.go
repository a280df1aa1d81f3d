package swipe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rithm-app/rithm-backend/internal/domain"
	"github.com/rithm-app/rithm-backend/internal/repository"
)

// MatchNotifier delivers the "you got a match" email for one recipient.
// Dispatch is best-effort: a failed send never fails the swipe.
type MatchNotifier interface {
	SendMatchNotification(ctx context.Context, recipientEmail, recipientName, matchedName string) error
}

type SwipeUseCase struct {
	swipeRepo   repository.SwipeRepository
	matchRepo   repository.MatchRepository
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
	notifier    MatchNotifier
	logger      *slog.Logger
}

func NewSwipeUseCase(
	swipeRepo repository.SwipeRepository,
	matchRepo repository.MatchRepository,
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
	notifier MatchNotifier,
	logger *slog.Logger,
) *SwipeUseCase {
	return &SwipeUseCase{
		swipeRepo:   swipeRepo,
		matchRepo:   matchRepo,
		profileRepo: profileRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// SwipeRequest represents a directional decision about another profile.
type SwipeRequest struct {
	SwipedID uuid.UUID `json:"swiped_id" binding:"required"`
	Liked    bool      `json:"liked"`
}

// MatchedProfile is what a user may see about the other side once both have
// liked each other. This is the only read path that carries the Instagram
// handle.
type MatchedProfile struct {
	ID                   uuid.UUID `json:"id"`
	FullName             string    `json:"full_name"`
	Age                  *int      `json:"age"`
	InstagramHandle      *string   `json:"instagram_handle"`
	ExploreScreenshotURL *string   `json:"explore_screenshot_url"`
}

// SwipeResponse represents the swipe outcome.
type SwipeResponse struct {
	Matched        bool            `json:"matched"`
	MatchedProfile *MatchedProfile `json:"matched_profile,omitempty"`
}

// RecordSwipe appends the swipe to the ledger and, on a like, checks whether
// the mirror like already exists. The match row insert is idempotent per
// unordered pair, so of two concurrent mutual likes exactly one call claims
// the match and sends the notification emails.
func (uc *SwipeUseCase) RecordSwipe(ctx context.Context, swiperID uuid.UUID, req *SwipeRequest) (*SwipeResponse, error) {
	if swiperID == req.SwipedID {
		return nil, domain.ErrCannotSwipeSelf
	}

	swiperProfile, err := uc.profileRepo.GetByID(ctx, swiperID)
	if err != nil {
		return nil, err
	}
	swipedProfile, err := uc.profileRepo.GetByID(ctx, req.SwipedID)
	if err != nil {
		return nil, err
	}

	swipe := &domain.Swipe{
		SwiperID: swiperID,
		SwipedID: req.SwipedID,
		Liked:    req.Liked,
	}
	if err := uc.swipeRepo.Create(ctx, swipe); err != nil {
		if errors.Is(err, domain.ErrSwipeAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create swipe: %w", err)
	}

	response := &SwipeResponse{Matched: false}
	if !req.Liked {
		return response, nil
	}

	mirror, err := uc.swipeRepo.GetByUsers(ctx, req.SwipedID, swiperID)
	if err != nil {
		if errors.Is(err, domain.ErrSwipeNotFound) {
			return response, nil
		}
		// The swipe is durable; a failed mirror lookup only costs the
		// match detection, which the other side's like will redo.
		uc.logger.Error("mirror swipe lookup failed",
			"swiper_id", swiperID, "swiped_id", req.SwipedID, "error", err)
		return response, nil
	}
	if !mirror.Liked {
		return response, nil
	}

	match := &domain.Match{UserA: swiperID, UserB: req.SwipedID}
	created, err := uc.matchRepo.CreateIfAbsent(ctx, match)
	if err != nil {
		uc.logger.Error("match creation failed",
			"swiper_id", swiperID, "swiped_id", req.SwipedID, "error", err)
		return response, nil
	}

	response.Matched = true
	response.MatchedProfile = &MatchedProfile{
		ID:                   swipedProfile.ID,
		FullName:             swipedProfile.FullName,
		Age:                  swipedProfile.Age,
		InstagramHandle:      swipedProfile.InstagramHandle,
		ExploreScreenshotURL: swipedProfile.ExploreScreenshotURL,
	}

	// Only the call that inserted the match row notifies, so a concurrent
	// mutual like cannot double-send.
	if created {
		uc.notifyMatch(ctx, swiperProfile, swipedProfile)
	}

	return response, nil
}

// notifyMatch emails both sides of a fresh match. Each dispatch is
// independent; partial delivery is logged, never surfaced to the swiper.
func (uc *SwipeUseCase) notifyMatch(ctx context.Context, a, b *domain.Profile) {
	if uc.notifier == nil {
		uc.logger.Debug("match notifier not configured, skipping emails",
			"user_a", a.ID, "user_b", b.ID)
		return
	}

	sent := 0
	for _, side := range []struct {
		recipient *domain.Profile
		other     *domain.Profile
	}{
		{a, b},
		{b, a},
	} {
		address, err := uc.userRepo.GetEmailByID(ctx, side.recipient.ID)
		if err != nil {
			uc.logger.Warn("match notification email lookup failed",
				"user_id", side.recipient.ID, "error", err)
			continue
		}
		if err := uc.notifier.SendMatchNotification(ctx, address, side.recipient.FullName, side.other.FullName); err != nil {
			uc.logger.Warn("match notification send failed",
				"user_id", side.recipient.ID, "error", err)
			continue
		}
		sent++
	}

	uc.logger.Info("match notifications dispatched",
		"user_a", a.ID, "user_b", b.ID, "sent", sent)
}
