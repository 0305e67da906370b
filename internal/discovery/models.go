// internal/discovery/models.go

package discovery

import (
	"github.com/lib/pq"
)

// Candidate is a profile card shown in the discovery feed
type Candidate struct {
	UserID      int64          `json:"user_id" db:"user_id"`
	Username    string         `json:"username" db:"username"`
	DisplayName string         `json:"display_name" db:"display_name"`
	Age         int            `json:"age" db:"age"`
	Gender      *string        `json:"gender,omitempty" db:"gender"`
	City        *string        `json:"city,omitempty" db:"city"`
	Bio         *string        `json:"bio,omitempty" db:"bio"`
	PhotoURL    *string        `json:"photo_url,omitempty" db:"photo_url"`
	Interests   pq.StringArray `json:"interests" db:"interests"`
}

// Filters narrow the candidate query to the seeker's preferences.
// The distance filter only applies when the seeker has a stored location.
type Filters struct {
	SeekerID      int64
	ShowGender    *string // nil means any gender
	MinAge        int
	MaxAge        int
	SeekerLat     *float64
	SeekerLng     *float64
	MaxDistanceKM int // 0 means unlimited
	Limit         int
	Offset        int
}
