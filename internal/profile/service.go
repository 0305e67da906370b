// internal/profile/service.go
// Business logic for profiles, photos, and discovery preferences

package profile

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/lib/pq"

	"github.com/heartlinkapp/heartlink-backend/internal/common/apperrors"
)

// Service interface
type Service interface {
	// Profiles
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*Profile, error)

	// Photos
	UploadPhoto(ctx context.Context, userID int64, file multipart.File, header *multipart.FileHeader) (*Photo, error)
	ListPhotos(ctx context.Context, userID int64) ([]*Photo, error)
	DeletePhoto(ctx context.Context, photoID int64) error

	// Preferences
	GetPreferences(ctx context.Context, userID int64) (*Preferences, error)
	UpdatePreferences(ctx context.Context, userID int64, req *UpdatePreferencesRequest) (*Preferences, error)
}

// Config holds profile service configuration
type Config struct {
	MaxPhotosPerUser int
	DefaultMinAge    int
	DefaultMaxAge    int
}

type service struct {
	repo    Repository
	uploads UploadService
	config  *Config
}

// NewService creates a profile service
func NewService(repo Repository, uploads UploadService, config *Config) Service {
	return &service{
		repo:    repo,
		uploads: uploads,
		config:  config,
	}
}

func (s *service) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	return s.repo.GetProfile(ctx, userID)
}

// UpdateProfile applies the client-supplied fields over the stored profile.
// The request has already passed the body sanitizer, so identity and
// privilege fields cannot appear here.
func (s *service) UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*Profile, error) {
	current, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		if !apperrors.IsKind(err, apperrors.KindResourceNotFound) {
			return nil, err
		}
		current = &Profile{UserID: userID}
	}

	if req.DisplayName != nil {
		current.DisplayName = *req.DisplayName
	}
	if req.Birthdate != nil {
		birthdate, err := time.Parse("2006-01-02", *req.Birthdate)
		if err != nil {
			return nil, apperrors.New(apperrors.KindMalformedRequest, "invalid birthdate")
		}
		current.Birthdate = &birthdate
	}
	if req.Gender != nil {
		current.Gender = req.Gender
	}
	if req.Bio != nil {
		current.Bio = req.Bio
	}
	if req.City != nil {
		current.City = req.City
	}
	if req.Latitude != nil {
		current.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		current.Longitude = req.Longitude
	}
	if req.Interests != nil {
		current.Interests = pq.StringArray(req.Interests)
	}

	current.CompletionScore = completionScore(current)

	if err := s.repo.UpsertProfile(ctx, current); err != nil {
		return nil, err
	}

	return current, nil
}

// UploadPhoto stores the file and records the photo row
func (s *service) UploadPhoto(ctx context.Context, userID int64, file multipart.File, header *multipart.FileHeader) (*Photo, error) {
	count, err := s.repo.CountPhotos(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= s.config.MaxPhotosPerUser {
		return nil, apperrors.New(apperrors.KindMalformedRequest, "photo limit reached")
	}

	url, err := s.uploads.UploadFile(ctx, file, header, "photos")
	if err != nil {
		return nil, err
	}

	photo := &Photo{
		UserID:   userID,
		URL:      url,
		Position: count,
	}
	if err := s.repo.CreatePhoto(ctx, photo); err != nil {
		return nil, err
	}

	return photo, nil
}

func (s *service) ListPhotos(ctx context.Context, userID int64) ([]*Photo, error) {
	return s.repo.ListPhotos(ctx, userID)
}

// DeletePhoto removes the photo row and its stored file.
// Ownership has already been checked by the authorization guard.
func (s *service) DeletePhoto(ctx context.Context, photoID int64) error {
	photo, err := s.repo.GetPhoto(ctx, photoID)
	if err != nil {
		return err
	}

	if err := s.repo.DeletePhoto(ctx, photoID); err != nil {
		return err
	}

	// Best effort: an orphaned file is preferable to a dangling row
	_ = s.uploads.DeleteFile(ctx, photo.URL)

	return nil
}

// GetPreferences returns stored preferences, or defaults when none exist yet
func (s *service) GetPreferences(ctx context.Context, userID int64) (*Preferences, error) {
	prefs, err := s.repo.GetPreferences(ctx, userID)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindResourceNotFound) {
			return &Preferences{
				UserID:        userID,
				MinAge:        s.config.DefaultMinAge,
				MaxAge:        s.config.DefaultMaxAge,
				MaxDistanceKM: 100,
			}, nil
		}
		return nil, err
	}
	return prefs, nil
}

func (s *service) UpdatePreferences(ctx context.Context, userID int64, req *UpdatePreferencesRequest) (*Preferences, error) {
	current, err := s.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.ShowGender != nil {
		current.ShowGender = req.ShowGender
	}
	if req.MinAge != nil {
		current.MinAge = *req.MinAge
	}
	if req.MaxAge != nil {
		current.MaxAge = *req.MaxAge
	}
	if req.MaxDistanceKM != nil {
		current.MaxDistanceKM = *req.MaxDistanceKM
	}

	if current.MinAge > current.MaxAge {
		return nil, apperrors.New(apperrors.KindMalformedRequest, "minimum age exceeds maximum age")
	}

	if err := s.repo.UpsertPreferences(ctx, current); err != nil {
		return nil, err
	}

	return current, nil
}

// completionScore measures how much of the profile is filled in
func completionScore(p *Profile) float64 {
	total := 7.0
	filled := 0.0

	if p.DisplayName != "" {
		filled++
	}
	if p.Birthdate != nil {
		filled++
	}
	if p.Gender != nil {
		filled++
	}
	if p.Bio != nil && *p.Bio != "" {
		filled++
	}
	if p.City != nil && *p.City != "" {
		filled++
	}
	if p.Latitude != nil && p.Longitude != nil {
		filled++
	}
	if len(p.Interests) > 0 {
		filled++
	}

	return filled / total
}
