package gate

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/rithm-app/rithm-backend/internal/domain"
	"github.com/rithm-app/rithm-backend/internal/repository"
)

// RouteClass groups navigation targets by what they require of the visitor.
type RouteClass string

const (
	RoutePublic     RouteClass = "public"
	RouteAuthOnly   RouteClass = "auth-only"
	RouteOnboarding RouteClass = "onboarding"
	RouteProtected  RouteClass = "protected"
)

const (
	LoginPath      = "/login"
	OnboardingPath = "/signup-steps"
	HomePath       = "/swipe"
)

var routeClasses = map[string]RouteClass{
	"/swipe":        RouteProtected,
	"/account":      RouteProtected,
	"/matches":      RouteProtected,
	"/signup-steps": RouteOnboarding,
	"/login":        RouteAuthOnly,
	"/signup":       RouteAuthOnly,
}

// ClassifyRoute maps a navigation path to its route class. Subpaths inherit
// the class of their prefix; anything unknown is public.
func ClassifyRoute(path string) RouteClass {
	if class, ok := routeClasses[path]; ok {
		return class
	}
	for prefix, class := range routeClasses {
		if strings.HasPrefix(path, prefix+"/") {
			return class
		}
	}
	return RoutePublic
}

// Decision is the gate's only output: pass through or go elsewhere. The
// gate never errors toward the user.
type Decision struct {
	Allow      bool   `json:"allow"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

func allow() Decision {
	return Decision{Allow: true}
}

func redirect(to string) Decision {
	return Decision{RedirectTo: to}
}

type GateUseCase struct {
	profileRepo repository.ProfileRepository
	logger      *slog.Logger
}

func NewGateUseCase(profileRepo repository.ProfileRepository, logger *slog.Logger) *GateUseCase {
	return &GateUseCase{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// Evaluate applies the route-gating policy for one navigation. userID is
// nil for unauthenticated visitors. Evaluated fresh on every call; nothing
// is cached between requests.
func (uc *GateUseCase) Evaluate(ctx context.Context, userID *uuid.UUID, path string) Decision {
	class := ClassifyRoute(path)

	if userID == nil {
		if class == RouteProtected || class == RouteOnboarding {
			return redirect(LoginPath)
		}
		return allow()
	}

	if uc.profileComplete(ctx, *userID) {
		if class == RouteProtected {
			return allow()
		}
		// Login forms, the landing page and the signup wizard are
		// meaningless once the profile is done.
		return redirect(HomePath)
	}

	if class == RouteProtected {
		return redirect(OnboardingPath)
	}
	return allow()
}

// profileComplete fails closed: if the lookup errors, the user is treated
// as incomplete and protected routes stay shut.
func (uc *GateUseCase) profileComplete(ctx context.Context, userID uuid.UUID) bool {
	profile, err := uc.profileRepo.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			uc.logger.Error("profile completeness lookup failed",
				"user_id", userID, "error", err)
		}
		return false
	}
	return profile.IsComplete()
}
