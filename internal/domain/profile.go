package domain

import (
	"time"

	"github.com/google/uuid"
)

// Gender is the small fixed taxonomy users pick from during signup.
type Gender string

const (
	GenderFemale Gender = "Female"
	GenderMale   Gender = "Male"
	GenderOther  Gender = "Other"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderFemale, GenderMale, GenderOther:
		return true
	}
	return false
}

type Profile struct {
	ID                   uuid.UUID `json:"id" db:"id"`
	FullName             string    `json:"full_name" db:"full_name"`
	Age                  *int      `json:"age" db:"age"`
	Gender               *Gender   `json:"gender" db:"gender"`
	DatingPreference     []Gender  `json:"dating_preference" db:"dating_preference"`
	InstagramHandle      *string   `json:"instagram_handle,omitempty" db:"instagram_handle"`
	ExploreScreenshotURL *string   `json:"explore_screenshot_url" db:"explore_screenshot_url"`
	PheromoneAnalysis    *string   `json:"digital_pheromone_analysis" db:"digital_pheromone_analysis"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`
}

// IsComplete is the canonical completeness predicate: a profile enters the
// matching flow once age, gender and at least one dating preference are set.
// Both the access gate and candidate selection use this, nothing else.
func (p *Profile) IsComplete() bool {
	return p != nil && p.Age != nil && p.Gender != nil && len(p.DatingPreference) > 0
}

// Prefers reports whether g is in the profile's dating preference set.
func (p *Profile) Prefers(g Gender) bool {
	for _, pref := range p.DatingPreference {
		if pref == g {
			return true
		}
	}
	return false
}

// MutuallyCompatible reports whether two profiles pass the symmetric
// preference filter: each one's gender is in the other's preference set.
func MutuallyCompatible(a, b *Profile) bool {
	if a.Gender == nil || b.Gender == nil {
		return false
	}
	return a.Prefers(*b.Gender) && b.Prefers(*a.Gender)
}
