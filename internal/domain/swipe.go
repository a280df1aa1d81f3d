package domain

import (
	"time"

	"github.com/google/uuid"
)

// Swipe is an immutable directional decision. At most one row exists per
// ordered (swiper, swiped) pair; both likes and passes are recorded.
type Swipe struct {
	ID        int64     `json:"id" db:"id"`
	SwiperID  uuid.UUID `json:"swiper_id" db:"swiper_id"`
	SwipedID  uuid.UUID `json:"swiped_id" db:"swiped_id"`
	Liked     bool      `json:"liked" db:"liked"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
