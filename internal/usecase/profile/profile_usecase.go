package profile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rithm-app/rithm-backend/internal/domain"
	"github.com/rithm-app/rithm-backend/internal/repository"
)

// ImageAnalyzer produces the one-sentence "digital pheromone" reading of an
// explore-page screenshot.
type ImageAnalyzer interface {
	AnalyzeExploreScreenshot(ctx context.Context, imageURL string) (string, error)
}

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
	analyzer    ImageAnalyzer
	logger      *slog.Logger
}

func NewProfileUseCase(
	profileRepo repository.ProfileRepository,
	analyzer ImageAnalyzer,
	logger *slog.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
		analyzer:    analyzer,
		logger:      logger,
	}
}

// UpsertProfileRequest represents a profile write. The first write creates
// the row; there is no separate create endpoint.
type UpsertProfileRequest struct {
	FullName             string   `json:"full_name" binding:"required,min=1,max=100"`
	Age                  *int     `json:"age" binding:"omitempty,gte=18,lte=120"`
	Gender               *string  `json:"gender" binding:"omitempty"`
	DatingPreference     []string `json:"dating_preference" binding:"omitempty,max=3"`
	InstagramHandle      *string  `json:"instagram_handle" binding:"omitempty,max=30"`
	ExploreScreenshotURL *string  `json:"explore_screenshot_url" binding:"omitempty,url"`
}

// UpsertProfile writes the caller's own profile. Only the subject user ever
// reaches this path; ownership is enforced by taking the id from the session.
func (uc *ProfileUseCase) UpsertProfile(ctx context.Context, userID uuid.UUID, req *UpsertProfileRequest) (*domain.Profile, error) {
	var gender *domain.Gender
	if req.Gender != nil {
		g := domain.Gender(*req.Gender)
		if !g.IsValid() {
			return nil, domain.ErrInvalidInput
		}
		gender = &g
	}

	prefs := make([]domain.Gender, 0, len(req.DatingPreference))
	seen := make(map[domain.Gender]bool)
	for _, p := range req.DatingPreference {
		g := domain.Gender(p)
		if !g.IsValid() {
			return nil, domain.ErrInvalidInput
		}
		if seen[g] {
			continue
		}
		seen[g] = true
		prefs = append(prefs, g)
	}

	// Keep the stored pheromone text across rewrites of the other fields;
	// it belongs to the screenshot, not to this request. A new screenshot
	// invalidates it.
	var analysis *string
	if existing, err := uc.profileRepo.GetByID(ctx, userID); err == nil {
		analysis = existing.PheromoneAnalysis
		if req.ExploreScreenshotURL != nil && existing.ExploreScreenshotURL != nil &&
			*req.ExploreScreenshotURL != *existing.ExploreScreenshotURL {
			analysis = nil
		}
	}

	profile := &domain.Profile{
		ID:                   userID,
		FullName:             req.FullName,
		Age:                  req.Age,
		Gender:               gender,
		DatingPreference:     prefs,
		InstagramHandle:      req.InstagramHandle,
		ExploreScreenshotURL: req.ExploreScreenshotURL,
		PheromoneAnalysis:    analysis,
	}
	if err := uc.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}
	return profile, nil
}

// GetMyProfile returns current user's profile
func (uc *ProfileUseCase) GetMyProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	return uc.profileRepo.GetByID(ctx, userID)
}

// AnalyzeScreenshot runs the image collaborator over the stored screenshot
// and persists the resulting text. Advisory only: no matching decision
// reads this field.
func (uc *ProfileUseCase) AnalyzeScreenshot(ctx context.Context, userID uuid.UUID) (string, error) {
	profile, err := uc.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if profile.ExploreScreenshotURL == nil || *profile.ExploreScreenshotURL == "" {
		return "", domain.ErrInvalidInput
	}
	if uc.analyzer == nil {
		return "", domain.ErrCollaboratorDown
	}

	analysis, err := uc.analyzer.AnalyzeExploreScreenshot(ctx, *profile.ExploreScreenshotURL)
	if err != nil {
		uc.logger.Warn("screenshot analysis failed", "user_id", userID, "error", err)
		return "", fmt.Errorf("%w: %v", domain.ErrCollaboratorDown, err)
	}

	if err := uc.profileRepo.UpdatePheromoneAnalysis(ctx, userID, analysis); err != nil {
		return "", fmt.Errorf("failed to store analysis: %w", err)
	}
	return analysis, nil
}
