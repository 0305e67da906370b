// internal/profile/models.go
// Profile, photo, and preference data structures

package profile

import (
	"time"

	"github.com/lib/pq"
)

// Profile holds the dating profile attached to an account
type Profile struct {
	UserID          int64          `json:"user_id" db:"user_id"`
	DisplayName     string         `json:"display_name" db:"display_name"`
	Birthdate       *time.Time     `json:"birthdate,omitempty" db:"birthdate"`
	Gender          *string        `json:"gender,omitempty" db:"gender"`
	Bio             *string        `json:"bio,omitempty" db:"bio"`
	City            *string        `json:"city,omitempty" db:"city"`
	Latitude        *float64       `json:"latitude,omitempty" db:"latitude"`
	Longitude       *float64       `json:"longitude,omitempty" db:"longitude"`
	Interests       pq.StringArray `json:"interests" db:"interests"`
	PhotoURL        *string        `json:"photo_url,omitempty" db:"photo_url"`
	CompletionScore float64        `json:"completion_score" db:"completion_score"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at" db:"updated_at"`
}

// Photo is an owned entity: only its owner may delete or reorder it
type Photo struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	URL       string    `json:"url" db:"url"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Preferences control which candidates discovery shows the user
type Preferences struct {
	UserID        int64     `json:"user_id" db:"user_id"`
	ShowGender    *string   `json:"show_gender,omitempty" db:"show_gender"` // nil means everyone
	MinAge        int       `json:"min_age" db:"min_age"`
	MaxAge        int       `json:"max_age" db:"max_age"`
	MaxDistanceKM int       `json:"max_distance_km" db:"max_distance_km"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// UpdateProfileRequest is the client-supplied profile update.
// It travels through the body sanitizer before decoding, so identity and
// privilege fields can never reach the write path.
type UpdateProfileRequest struct {
	DisplayName *string  `json:"display_name" validate:"omitempty,min=1,max=50"`
	Birthdate   *string  `json:"birthdate" validate:"omitempty,datetime=2006-01-02"`
	Gender      *string  `json:"gender" validate:"omitempty,oneof=male female nonbinary other"`
	Bio         *string  `json:"bio" validate:"omitempty,max=500"`
	City        *string  `json:"city" validate:"omitempty,max=100"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Interests   []string `json:"interests" validate:"omitempty,max=10,dive,min=1,max=30"`
}

// UpdatePreferencesRequest is the client-supplied preference update
type UpdatePreferencesRequest struct {
	ShowGender    *string `json:"show_gender" validate:"omitempty,oneof=male female nonbinary other"`
	MinAge        *int    `json:"min_age" validate:"omitempty,gte=18,lte=100"`
	MaxAge        *int    `json:"max_age" validate:"omitempty,gte=18,lte=100"`
	MaxDistanceKM *int    `json:"max_distance_km" validate:"omitempty,gte=1,lte=500"`
}

// Age derives the profile owner's age from the birthdate
func (p *Profile) Age() int {
	if p.Birthdate == nil {
		return 0
	}
	now := time.Now()
	age := now.Year() - p.Birthdate.Year()
	if now.YearDay() < p.Birthdate.YearDay() {
		age--
	}
	return age
}
