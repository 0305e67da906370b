// internal/discovery/service.go
// Builds the discovery feed from the seeker's stored preferences.

package discovery

import (
	"context"

	"github.com/heartlinkapp/heartlink-backend/internal/common/apperrors"
	"github.com/heartlinkapp/heartlink-backend/internal/profile"
)

// PreferencesProvider supplies the seeker's discovery preferences and
// profile. Implemented by the profile service.
type PreferencesProvider interface {
	GetPreferences(ctx context.Context, userID int64) (*profile.Preferences, error)
	GetProfile(ctx context.Context, userID int64) (*profile.Profile, error)
}

// Service interface
type Service interface {
	GetCandidates(ctx context.Context, userID int64, limit, offset int) ([]*Candidate, error)
}

// Config holds discovery configuration
type Config struct {
	PageSize int
	MinAge   int
	MaxAge   int
}

type service struct {
	repo   Repository
	prefs  PreferencesProvider
	config *Config
}

// NewService creates a discovery service
func NewService(repo Repository, prefs PreferencesProvider, config *Config) Service {
	return &service{
		repo:   repo,
		prefs:  prefs,
		config: config,
	}
}

// GetCandidates returns the next page of candidate profiles for the seeker
func (s *service) GetCandidates(ctx context.Context, userID int64, limit, offset int) ([]*Candidate, error) {
	prefs, err := s.prefs.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > s.config.PageSize {
		limit = s.config.PageSize
	}
	if offset < 0 {
		offset = 0
	}

	filters := &Filters{
		SeekerID:      userID,
		ShowGender:    prefs.ShowGender,
		MinAge:        clampAge(prefs.MinAge, s.config.MinAge, s.config.MaxAge),
		MaxAge:        clampAge(prefs.MaxAge, s.config.MinAge, s.config.MaxAge),
		MaxDistanceKM: prefs.MaxDistanceKM,
		Limit:         limit,
		Offset:        offset,
	}

	// Distance filtering needs the seeker's own location; without one the
	// feed is simply unfiltered by distance.
	seeker, err := s.prefs.GetProfile(ctx, userID)
	if err != nil && !apperrors.IsKind(err, apperrors.KindResourceNotFound) {
		return nil, err
	}
	if seeker != nil {
		filters.SeekerLat = seeker.Latitude
		filters.SeekerLng = seeker.Longitude
	}

	return s.repo.FindCandidates(ctx, filters)
}

func clampAge(age, min, max int) int {
	if age < min {
		return min
	}
	if age > max {
		return max
	}
	return age
}
